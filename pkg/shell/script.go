package shell

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kianmeng/ogma/pkg/diag"
	"github.com/kianmeng/ogma/pkg/eval"
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/prog"
)

// evalSource runs one batch source: with -compileonly it only checks the
// source, otherwise it evaluates it with batch semantics. A failure exits
// with status 2.
func evalSource(ev *eval.Evaler, fds [3]*os.File, f *prog.Flags, src parse.Source) error {
	if f.CompileOnly {
		err := ev.Check(src, nil)
		if f.JSON {
			fds[1].Write(errorsToJSON(err))
			if err != nil {
				return prog.Exit(2)
			}
			return nil
		}
		if err != nil {
			diagShow(fds[2], err)
			return prog.Exit(2)
		}
		return nil
	}
	if evalBatch(ev, src, f.FailFast, fds[1], fds[2]) {
		return nil
	}
	return prog.Exit(2)
}

// evalBatch evaluates the statements of one source. Definitions are
// registered first, so a statement may use a definition declared later in
// the file. Statements are then evaluated independently, each with the
// empty input; a failing statement is reported but does not stop the batch
// or invalidate the registry, unless failFast is set. It reports whether
// every statement succeeded.
func evalBatch(ev *eval.Evaler, src parse.Source, failFast bool, out, errOut *os.File) bool {
	tree, err := parse.Parse(src)
	if err != nil {
		diagShow(errOut, err)
		return false
	}
	ok := true
	for _, st := range tree.Root.Statements {
		if st.Def == nil && st.DefTy == nil {
			continue
		}
		if _, err := ev.EvalStatement(src, st, nil); err != nil {
			diagShow(errOut, err)
			ok = false
			if failFast {
				return false
			}
		}
	}
	for _, st := range tree.Root.Statements {
		if st.Def != nil || st.DefTy != nil {
			continue
		}
		v, err := ev.EvalStatement(src, st, nil)
		if err != nil {
			diagShow(errOut, err)
			ok = false
			if failFast {
				return false
			}
			continue
		}
		if r := vals.Repr(v); r != "" {
			fmt.Fprintln(out, r)
		}
	}
	return ok
}

func diagShow(w *os.File, err error) {
	diag.ShowError(w, err)
}

// jsonError is one error in the output of -compileonly -json.
type jsonError struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

func errorsToJSON(err error) []byte {
	var errs []jsonError
	for _, e := range parse.UnpackErrors(err) {
		errs = append(errs, jsonError{
			FileName: e.Context.Name,
			Start:    e.Context.From,
			End:      e.Context.To,
			Message:  e.Message,
		})
	}
	if errs == nil {
		errs = []jsonError{}
	}
	buf, _ := json.Marshal(errs)
	return append(buf, '\n')
}
