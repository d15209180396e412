package parse

import (
	"strings"
	"testing"
)

func parseStatement(t *testing.T, code string) *Statement {
	t.Helper()
	tree, err := Parse(SourceForTest(code))
	if err != nil {
		t.Fatalf("Parse(%q) -> error %v, want nil", code, err)
	}
	if len(tree.Root.Statements) != 1 {
		t.Fatalf("Parse(%q) -> %d statements, want 1", code, len(tree.Root.Statements))
	}
	return tree.Root.Statements[0]
}

func parsePipeline(t *testing.T, code string) *Pipeline {
	t.Helper()
	sn := parseStatement(t, code)
	if sn.Pipeline == nil {
		t.Fatalf("Parse(%q) -> not a pipeline statement", code)
	}
	return sn.Pipeline
}

func TestParsePipeline(t *testing.T) {
	pn := parsePipeline(t, "range 0 5 | append --sq { get i | sq } | len")
	if len(pn.Forms) != 3 {
		t.Fatalf("got %d forms, want 3", len(pn.Forms))
	}

	rangeForm := pn.Forms[0]
	if rangeForm.Head.Value != "range" {
		t.Errorf("head = %q, want range", rangeForm.Head.Value)
	}
	if len(rangeForm.Args) != 2 || rangeForm.Args[0].Num != 0 || rangeForm.Args[1].Num != 5 {
		t.Errorf("range args = %v, want numbers 0 and 5", rangeForm.Args)
	}

	appendForm := pn.Forms[1]
	if len(appendForm.Flags) != 1 || appendForm.Flags[0].Name != "sq" {
		t.Fatalf("append flags = %v, want one flag named sq", appendForm.Flags)
	}
	if len(appendForm.Args) != 1 || appendForm.Args[0].Type != Block {
		t.Fatalf("append args = %v, want one block", appendForm.Args)
	}
	block := appendForm.Args[0].Pipeline
	if len(block.Forms) != 2 || block.Forms[0].Head.Value != "get" || block.Forms[1].Head.Value != "sq" {
		t.Errorf("block = %q parsed wrong", SourceText(appendForm.Args[0]))
	}
}

func TestParseLiteralHeadChains(t *testing.T) {
	// A literal head takes no arguments; the rest of the line continues as
	// further stages.
	pn := parsePipeline(t, "4 / 2")
	if len(pn.Forms) != 2 {
		t.Fatalf("got %d forms, want 2", len(pn.Forms))
	}
	if pn.Forms[0].Head.Type != Number || pn.Forms[0].Head.Num != 4 {
		t.Errorf("first head = %v, want number 4", pn.Forms[0].Head)
	}
	if pn.Forms[1].Head.Value != "/" || len(pn.Forms[1].Args) != 1 {
		t.Errorf("second form = %q, want / with one arg", SourceText(pn.Forms[1]))
	}
}

func TestParsePrimaries(t *testing.T) {
	pn := parsePipeline(t, `if #t 1 0`)
	args := pn.Forms[0].Args
	if args[0].Type != Bool || args[0].BoolVal != true {
		t.Errorf("arg 0 = %v, want #t", args[0])
	}
	if args[1].Type != Number || args[1].Num != 1 {
		t.Errorf("arg 1 = %v, want 1", args[1])
	}

	pn = parsePipeline(t, `let $x | + $x #i`)
	if arg := pn.Forms[0].Args[0]; arg.Type != Variable || arg.Value != "x" {
		t.Errorf("let arg = %v, want $x", arg)
	}
	if arg := pn.Forms[1].Args[1]; arg.Type != ImplicitInput {
		t.Errorf("+ arg 1 = %v, want #i", arg)
	}

	pn = parsePipeline(t, `\ 'it''s' | append --x="a b"`)
	if arg := pn.Forms[0].Args[0]; arg.Type != SingleQuoted || arg.Value != "it's" {
		t.Errorf("quoted arg = %q, want it's", arg.Value)
	}
	flag := pn.Forms[1].Flags[0]
	if flag.Value == nil || flag.Value.Type != DoubleQuoted || flag.Value.Value != "a b" {
		t.Errorf("flag value = %v, want \"a b\"", flag.Value)
	}
}

func TestParseDef(t *testing.T) {
	sn := parseStatement(t, "def double Num (n) { * 2 }")
	dn := sn.Def
	if dn == nil {
		t.Fatal("not parsed as def")
	}
	if dn.Name.Name != "double" {
		t.Errorf("name = %q, want double", dn.Name.Name)
	}
	if dn.InType == nil || dn.InType.Name != "Num" {
		t.Errorf("input type = %v, want Num", dn.InType)
	}
	if len(dn.Params) != 1 || dn.Params[0].Name != "n" {
		t.Errorf("params = %v, want [n]", dn.Params)
	}
	if len(dn.Body.Forms) != 1 || dn.Body.Forms[0].Head.Value != "*" {
		t.Errorf("body = %q parsed wrong", SourceText(dn.Body))
	}

	// Wildcard input and multi-line body.
	sn = parseStatement(t, "def foo-bar () {\n \\5\n}")
	if sn.Def == nil || sn.Def.InType != nil {
		t.Errorf("def foo-bar: InType = %v, want nil", sn.Def.InType)
	}
}

func TestParseDefTy(t *testing.T) {
	sn := parseStatement(t, "def-ty Point { x:Num y:Num }")
	dn := sn.DefTy
	if dn == nil {
		t.Fatal("not parsed as def-ty")
	}
	if dn.Name.Name != "Point" {
		t.Errorf("name = %q, want Point", dn.Name.Name)
	}
	if len(dn.Fields) != 2 {
		t.Fatalf("fields = %v, want 2 fields", dn.Fields)
	}
	if dn.Fields[0].Name.Name != "x" || dn.Fields[0].Type.Name != "Num" {
		t.Errorf("field 0 = %q, want x:Num", SourceText(dn.Fields[0]))
	}
}

func TestParseChunk(t *testing.T) {
	code := `def foo-bar () { \5 }

# Testing a comment
foo-bar | + 5

def-ty Foo { x:Num }`
	tree, err := Parse(SourceForTest(code))
	if err != nil {
		t.Fatalf("Parse -> error %v", err)
	}
	sts := tree.Root.Statements
	if len(sts) != 3 {
		t.Fatalf("got %d statements, want 3", len(sts))
	}
	if sts[0].Def == nil || sts[1].Pipeline == nil || sts[2].DefTy == nil {
		t.Errorf("statement kinds wrong: %v", sts)
	}
}

var parseErrorTests = []struct {
	code    string
	wantMsg string
}{
	{"range 0 5 |", "should be a pipeline stage"},
	{"\\ 'abc", "string not terminated"},
	{`\ "a\z"`, "invalid escape sequence"},
	{"\\ #x", "unknown '#' literal"},
	{"\\ $", "should be a variable name"},
	{"append --", "should be a flag name"},
	{"\\ 12x4", "invalid number literal"},
	{"append --c { get x", "should be '}'"},
	{"def foo", "should be an identifier"},
	{"def foo (a {", "should be ')'"},
	{"def-ty Foo { x:Num y: }", "missing a valid type specifier: `field:Type`"},
	{"def-ty Foo x:Num", "should be '{'"},
}

func TestParseErrors(t *testing.T) {
	for _, test := range parseErrorTests {
		_, err := Parse(SourceForTest(test.code))
		if err == nil {
			t.Errorf("Parse(%q) -> nil error, want %q", test.code, test.wantMsg)
			continue
		}
		errs := UnpackErrors(err)
		if len(errs) == 0 {
			t.Errorf("Parse(%q) -> error %v, not unpackable", test.code, err)
			continue
		}
		if !strings.Contains(errs[0].Message, test.wantMsg) {
			t.Errorf("Parse(%q) -> error %q, want %q", test.code, errs[0].Message, test.wantMsg)
		}
	}
}

func TestParseRanges(t *testing.T) {
	code := "range 0 5 | len"
	pn := parsePipeline(t, code)
	lenForm := pn.Forms[1]
	if got := SourceText(lenForm); got != "len" {
		t.Errorf("SourceText(len form) = %q, want len", got)
	}
	r := lenForm.Range()
	if code[r.From:r.To] != "len" {
		t.Errorf("len form range = %v, spans %q", r, code[r.From:r.To])
	}
	if Parent(lenForm) == nil || len(Children(pn)) == 0 {
		t.Error("parse tree parent/children links missing")
	}
}
