// Package shell is the entry point for the terminal interface of ogma,
// covering both batch scripts and the interactive REPL.
package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/kianmeng/ogma/pkg/eval"
	"github.com/kianmeng/ogma/pkg/logutil"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It is always suitable, so it should be
// the last program in a composite.
type Program struct{}

// Run runs the subprogram.
func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	initSignals()
	ev := eval.NewEvaler()

	if err := loadWorkspaceDefs(ev, fds[2]); err != nil {
		return err
	}
	for _, path := range f.Defs {
		if err := loadDefFile(ev, path); err != nil {
			diagShow(fds[2], err)
			return prog.Exit(2)
		}
	}

	if f.CodeInArg {
		if len(args) == 0 {
			return prog.BadUsage("argument required to -c")
		}
		src := parse.Source{Name: "code from -c", Code: args[0]}
		return evalSource(ev, fds, f, src)
	}
	if len(args) > 0 {
		for _, path := range args {
			code, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintln(fds[2], "cannot read script:", err)
				return prog.Exit(2)
			}
			src := parse.Source{Name: path, Code: string(code), IsFile: true}
			if err := evalSource(ev, fds, f, src); err != nil {
				return err
			}
		}
		return nil
	}
	if isatty.IsTerminal(fds[0].Fd()) {
		interact(ev, fds, f)
		return nil
	}
	// Piped input is a batch script.
	code, err := io.ReadAll(fds[0])
	if err != nil {
		fmt.Fprintln(fds[2], "cannot read stdin:", err)
		return prog.Exit(2)
	}
	return evalSource(ev, fds, f, parse.Source{Name: "stdin", Code: string(code)})
}

func loadDefFile(ev *eval.Evaler, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	logger.Println("loading definitions from", path)
	return ev.LoadDefs(parse.Source{Name: path, Code: string(code), IsFile: true})
}

func loadWorkspaceDefs(ev *eval.Evaler, errOut *os.File) error {
	ws, err := loadWorkspace(".")
	if err != nil {
		fmt.Fprintln(errOut, "warning: bad workspace file:", err)
		return nil
	}
	if ws == nil {
		return nil
	}
	for _, path := range ws.Definitions {
		if err := loadDefFile(ev, path); err != nil {
			fmt.Fprintln(errOut, "warning: workspace definitions:", err)
		}
	}
	return nil
}
