package shell

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kianmeng/ogma/pkg/eval"
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/prog"
	"github.com/kianmeng/ogma/pkg/store"
)

const prompt = "ogma> "

// interact runs the REPL: it reads one statement per line, evaluates it
// with the empty input, and prints the result or the error. Evaluated
// lines are appended to the history store.
func interact(ev *eval.Evaler, fds [3]*os.File, f *prog.Flags) {
	st := openStore(f, fds[2])
	if st != nil {
		defer st.Close()
	}

	fmt.Fprintf(fds[1], "ogma %s\n", prog.Version)
	scanner := bufio.NewScanner(fds[0])
	lineNo := 0
	for {
		fmt.Fprint(fds[1], prompt)
		if !scanner.Scan() {
			fmt.Fprintln(fds[1])
			return
		}
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if st != nil {
			if _, err := st.AddCmd(line); err != nil {
				logger.Println("cannot save history:", err)
			}
		}
		src := parse.Source{Name: fmt.Sprintf("[tty %d]", lineNo), Code: line}
		v, err := ev.Eval(src, nil)
		if err != nil {
			diagShow(fds[2], err)
			continue
		}
		if r := vals.Repr(v); r != "" {
			fmt.Fprintln(fds[1], r)
		}
	}
}

func openStore(f *prog.Flags, errOut *os.File) *store.Store {
	path := f.DB
	if path == "" {
		var err error
		path, err = historyDBPath()
		if err != nil {
			fmt.Fprintln(errOut, "warning: no history:", err)
			return nil
		}
	}
	st, err := store.Open(path)
	if err != nil {
		fmt.Fprintln(errOut, "warning: cannot open history:", err)
		return nil
	}
	return st
}
