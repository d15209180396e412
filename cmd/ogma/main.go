// Command ogma is the pipeline expression language interpreter.
package main

import (
	"os"

	"github.com/kianmeng/ogma/pkg/lsp"
	"github.com/kianmeng/ogma/pkg/prog"
	"github.com/kianmeng/ogma/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(prog.VersionProgram{}, lsp.Program{}, shell.Program{})))
}
