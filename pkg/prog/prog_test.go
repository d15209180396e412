package prog

import (
	"io"
	"os"
	"strings"
	"testing"
)

type testProgram struct {
	suitable bool
	ran      *bool
	err      error
}

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if !p.suitable {
		return ErrNotSuitable
	}
	if p.ran != nil {
		*p.ran = true
	}
	return p.err
}

func run(t *testing.T, p Program, args ...string) (int, string, string) {
	t.Helper()
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	defer devNull.Close()
	outR, outW, _ := os.Pipe()
	errR, errW, _ := os.Pipe()
	exit := Run([3]*os.File{devNull, outW, errW}, append([]string{"ogma"}, args...), p)
	outW.Close()
	errW.Close()
	stdout, _ := io.ReadAll(outR)
	stderr, _ := io.ReadAll(errR)
	return exit, string(stdout), string(stderr)
}

func TestComposite_PicksFirstSuitable(t *testing.T) {
	var first, second bool
	exit, _, _ := run(t, Composite(
		testProgram{suitable: true, ran: &first},
		testProgram{suitable: true, ran: &second}))
	if exit != 0 || !first || second {
		t.Errorf("exit %d, first %v, second %v; want 0, true, false",
			exit, first, second)
	}
}

func TestComposite_SkipsUnsuitable(t *testing.T) {
	var ran bool
	exit, _, _ := run(t, Composite(
		testProgram{suitable: false},
		testProgram{suitable: true, ran: &ran}))
	if exit != 0 || !ran {
		t.Errorf("exit %d, ran %v; want 0, true", exit, ran)
	}
}

func TestBadFlag(t *testing.T) {
	exit, _, stderr := run(t, testProgram{suitable: true}, "-bogus")
	if exit != 2 || !strings.Contains(stderr, "Usage:") {
		t.Errorf("exit %d, stderr %q; want 2 and usage", exit, stderr)
	}
}

func TestHelp(t *testing.T) {
	exit, stdout, _ := run(t, testProgram{suitable: true}, "-help")
	if exit != 0 || !strings.Contains(stdout, "Usage:") {
		t.Errorf("exit %d, stdout %q; want 0 and usage", exit, stdout)
	}
}

func TestVersion(t *testing.T) {
	exit, stdout, _ := run(t, VersionProgram{}, "-version")
	if exit != 0 || !strings.Contains(stdout, Version) {
		t.Errorf("exit %d, stdout %q; want 0 and the version", exit, stdout)
	}
}

func TestBadUsage(t *testing.T) {
	exit, _, stderr := run(t, testProgram{suitable: true, err: BadUsage("bad")})
	if exit != 2 || !strings.Contains(stderr, "bad") {
		t.Errorf("exit %d, stderr %q; want 2 and the message", exit, stderr)
	}
}

func TestExit(t *testing.T) {
	exit, _, _ := run(t, testProgram{suitable: true, err: Exit(3)})
	if exit != 3 {
		t.Errorf("exit %d, want 3", exit)
	}
	if Exit(0) != nil {
		t.Errorf("Exit(0) should be nil")
	}
}

func TestDefsFlag(t *testing.T) {
	var d defsFlag
	if err := d.Set("a.ogma"); err != nil {
		t.Fatal(err)
	}
	if err := d.Set("b.ogma"); err != nil {
		t.Fatal(err)
	}
	if got := d.String(); got != "a.ogma,b.ogma" {
		t.Errorf("got %q", got)
	}
}
