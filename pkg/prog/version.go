package prog

import (
	"fmt"
	"os"
	"runtime"
)

// Version identifies the version of ogma.
const Version = "0.1.0"

// VersionProgram implements the -version subprogram.
type VersionProgram struct{}

// Run runs the subprogram.
func (VersionProgram) Run(fds [3]*os.File, f *Flags, _ []string) error {
	if !f.Version {
		return ErrNotSuitable
	}
	if f.JSON {
		fmt.Fprintf(fds[1], `{"version":%q,"goversion":%q}`+"\n",
			Version, runtime.Version())
	} else {
		fmt.Fprintln(fds[1], "Version:", Version)
		fmt.Fprintln(fds[1], "Go version:", runtime.Version())
	}
	return nil
}
