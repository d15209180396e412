package lsp

import (
	"testing"

	lsp "github.com/sourcegraph/go-lsp"

	"github.com/kianmeng/ogma/pkg/tt"
)

func TestLSPPositionFromIdx(t *testing.T) {
	tt.Test(t, tt.Fn("lspPositionFromIdx", lspPositionFromIdx), tt.Table{
		tt.Args("ab", 0).Rets(lsp.Position{Line: 0, Character: 0}),
		tt.Args("ab", 1).Rets(lsp.Position{Line: 0, Character: 1}),
		tt.Args("ab", 2).Rets(lsp.Position{Line: 0, Character: 2}),
		tt.Args("a\nb", 2).Rets(lsp.Position{Line: 1, Character: 0}),
		tt.Args("a\r\nb", 3).Rets(lsp.Position{Line: 1, Character: 0}),
		// "𐀀" is U+10000, which takes two UTF-16 units.
		tt.Args("𐀀x", 4).Rets(lsp.Position{Line: 0, Character: 2}),
		// Index beyond the end of the document clamps to the end.
		tt.Args("ab", 10).Rets(lsp.Position{Line: 0, Character: 2}),
	})
}

func TestDiagnostics(t *testing.T) {
	s := newServer()

	diags := s.diagnostics("file:///ok.ogma", "\\ 1 | + 2")
	if len(diags) != 0 {
		t.Errorf("got %d diagnostics for valid code, want 0", len(diags))
	}

	diags = s.diagnostics("file:///parse.ogma", "\\ 1 | {")
	if len(diags) == 0 {
		t.Fatalf("got no diagnostics for unclosed block")
	}
	if diags[0].Severity != lsp.Error {
		t.Errorf("got severity %v, want %v", diags[0].Severity, lsp.Error)
	}
	if diags[0].Source != "parse error" {
		t.Errorf("got source %q, want %q", diags[0].Source, "parse error")
	}

	diags = s.diagnostics("file:///name.ogma", "bogus-cmd 1 2")
	if len(diags) == 0 {
		t.Fatalf("got no diagnostics for undefined command")
	}
	if diags[0].Source != "name error" {
		t.Errorf("got source %q, want %q", diags[0].Source, "name error")
	}
}

func TestDiagnostics_DefsDoNotLeak(t *testing.T) {
	s := newServer()

	diags := s.diagnostics("file:///defs.ogma", "def twice Num () { * 2 }")
	if len(diags) != 0 {
		t.Errorf("got %d diagnostics for definition, want 0", len(diags))
	}
	// Checking a document must not register its definitions.
	diags = s.diagnostics("file:///use.ogma", "\\ 3 | twice")
	if len(diags) == 0 {
		t.Errorf("definition from a checked document leaked into the evaler")
	}
}

func TestCompletion_IncludesBuiltins(t *testing.T) {
	s := newServer()
	result, err := s.completion(nil, nil, []byte(`{"textDocument":{"uri":"file:///a.ogma"},"position":{"line":0,"character":0}}`))
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	items := result.([]lsp.CompletionItem)
	found := false
	for _, item := range items {
		if item.Label == "append" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("completion items do not include %q", "append")
	}
}
