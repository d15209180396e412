//go:build unix

package shell

import (
	"os/signal"

	"golang.org/x/sys/unix"
)

// initSignals adjusts signal handling for the shell: SIGQUIT from the
// terminal should not kill the process with a core dump.
func initSignals() {
	signal.Ignore(unix.SIGQUIT)
}
