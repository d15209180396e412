package tt

import (
	"fmt"
	"testing"
)

// testT implements the T interface and records Errorf calls.
type testT []string

func (t *testT) Helper() {}

func (t *testT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

func add(x, y int) int { return x + y }

func divmod(x, y int) (int, int) { return x / y, x % y }

func TestPass(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(3),
		Args(0, 0).Rets(0),
	})
	if len(mockT) != 0 {
		t.Errorf("Test errors when it should not: %v", mockT)
	}
}

func TestFail(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(4),
	})
	if len(mockT) != 1 {
		t.Fatalf("Test should report 1 error, got %v", mockT)
	}
	want := "add(1, 2) -> 3, want 4"
	if mockT[0] != want {
		t.Errorf("error message %q, want %q", mockT[0], want)
	}
}

func TestMultipleRets(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("divmod", divmod), Table{
		Args(7, 2).Rets(3, 1),
	})
	if len(mockT) != 0 {
		t.Errorf("Test errors when it should not: %v", mockT)
	}
}

func TestAnyMatcher(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(Any),
	})
	if len(mockT) != 0 {
		t.Errorf("Any matcher should match all values: %v", mockT)
	}
}
