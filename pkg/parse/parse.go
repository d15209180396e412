// Package parse implements parsing of pipeline statements and definition
// sources.
//
// The parser builds a tree of nodes, each carrying the source range it was
// parsed from. Parsing is purely syntactic: command names, type annotations
// and field references are resolved later, against a definition registry.
package parse

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/kianmeng/ogma/pkg/diag"
)

// Tree represents a parsed tree.
type Tree struct {
	Root   *Chunk
	Source Source
}

// Parse parses the given source as a chunk of statements. Errors accumulated
// during the parse are combined into the returned error; each of them has
// type *diag.Error and can be recovered with UnpackErrors.
func Parse(src Source) (Tree, error) {
	tree := Tree{&Chunk{}, src}
	ps := &parser{srcName: src.Name, src: src.Code}
	parse(ps, tree.Root)
	ps.done()
	return tree, ps.assembleError()
}

// Errors.
var (
	errShouldBeStage     = newError("", "a pipeline stage")
	errShouldBeCommand   = newError("", "a command name or literal")
	errShouldBePrimary   = newError("", "a literal", "'#i'", "'$' variable", "'{' block")
	errShouldBeIdent     = newError("", "an identifier")
	errShouldBeFlagName  = newError("", "a flag name after '--'")
	errShouldBeVarName   = newError("", "a variable name after '$'")
	errShouldBeLParen    = newError("", "'('")
	errShouldBeRParen    = newError("", "')'")
	errShouldBeLBrace    = newError("", "'{'")
	errShouldBeRBrace    = newError("", "'}'")
	errShouldBeTyField   = newError("missing a valid type specifier: `field:Type`")
	errStrNotTerminated  = newError("string not terminated")
	errInvalidEscape     = newError("invalid escape sequence")
	errUnknownHashLit    = newError("unknown '#' literal", "'#i'", "'#t'", "'#f'")
	errBlockTooDeep      = newError("block nesting too deep")
)

// maxBlockDepth bounds the nesting of blocks, so that pathological input
// fails with a parse error instead of exhausting the stack.
const maxBlockDepth = 100

// Chunk = { Sep } { Statement { Sep } }
type Chunk struct {
	node
	Statements []*Statement
}

func (bn *Chunk) parse(ps *parser) {
	bn.parseSeps(ps)
	for startsStatement(ps.peek()) {
		parse(ps, &Statement{}).addTo(&bn.Statements, bn)
		if bn.parseSeps(ps) == 0 {
			break
		}
	}
}

func isStatementSep(r rune) bool {
	return r == '\r' || r == '\n' || r == ';'
}

// parseSeps parses statement separators along with whitespace. It returns
// the number of statement separators parsed.
func (bn *Chunk) parseSeps(ps *parser) int {
	nseps := 0
	for {
		r := ps.peek()
		if isStatementSep(r) {
			ps.next()
			nseps++
		} else if IsInlineWhitespace(r) || (r == '#' && ps.startsComment()) {
			parseSpaces(ps)
		} else {
			break
		}
	}
	return nseps
}

func startsStatement(r rune) bool {
	return startsPrimary(r)
}

// Statement = Def | DefTy | Pipeline
//
// Exactly one of the three fields is set.
type Statement struct {
	node
	Def      *Def
	DefTy    *DefTy
	Pipeline *Pipeline
}

func (sn *Statement) parse(ps *parser) {
	switch {
	case ps.hasKeyword("def-ty"):
		parse(ps, &DefTy{}).addAs(&sn.DefTy, sn)
	case ps.hasKeyword("def"):
		parse(ps, &Def{}).addAs(&sn.Def, sn)
	default:
		parse(ps, &Pipeline{}).addAs(&sn.Pipeline, sn)
	}
}

// Pipeline = Form { '|' Form }
type Pipeline struct {
	node
	Forms []*Form
}

func (pn *Pipeline) parse(ps *parser) {
	parseSpaces(ps)
	parse(ps, &Form{}).addTo(&pn.Forms, pn)
	for {
		parseSpaces(ps)
		if parseSep(ps, '|') {
			parseSpacesAndNewlines(ps)
			if !startsForm(ps.peek()) {
				ps.error(errShouldBeStage)
				return
			}
			parse(ps, &Form{}).addTo(&pn.Forms, pn)
		} else if pn.lastFormHasLiteralHead() && startsForm(ps.peek()) {
			// A literal head takes no arguments, so "4 / 2" chains into the
			// stages "4" and "/ 2" without an explicit pipe.
			parse(ps, &Form{}).addTo(&pn.Forms, pn)
		} else {
			return
		}
	}
}

func (pn *Pipeline) lastFormHasLiteralHead() bool {
	if len(pn.Forms) == 0 {
		return false
	}
	head := pn.Forms[len(pn.Forms)-1].Head
	return head != nil && head.Type != Bareword
}

// Form = Head { Flag | Arg }
//
// The head is usually a command name (a bareword), but any primary is
// accepted syntactically; a literal head sets the implicit input for the
// rest of the stage.
type Form struct {
	node
	Head  *Primary
	Flags []*Flag
	Args  []*Primary
}

func (fn *Form) parse(ps *parser) {
	parseSpaces(ps)
	if !startsForm(ps.peek()) {
		ps.error(errShouldBeCommand)
		return
	}
	parse(ps, &Primary{}).addAs(&fn.Head, fn)
	if fn.Head.Type != Bareword {
		return
	}
	parseSpaces(ps)
	for {
		r := ps.peek()
		switch {
		case ps.hasPrefix("--"):
			parse(ps, &Flag{}).addTo(&fn.Flags, fn)
		case startsPrimary(r):
			parse(ps, &Primary{}).addTo(&fn.Args, fn)
		default:
			return
		}
		parseSpaces(ps)
	}
}

func startsForm(r rune) bool {
	return startsPrimary(r)
}

// Flag = '--' FlagName [ '=' Primary ]
type Flag struct {
	node
	Name  string
	Value *Primary
}

func (fn *Flag) parse(ps *parser) {
	ps.next()
	ps.next() // the leading "--"
	begin := ps.pos
	for allowedInFlagName(ps.peek()) {
		ps.next()
	}
	fn.Name = ps.src[begin:ps.pos]
	if fn.Name == "" {
		ps.error(errShouldBeFlagName)
		return
	}
	if parseSep(ps, '=') {
		if !startsPrimary(ps.peek()) {
			ps.error(errShouldBePrimary)
			return
		}
		parse(ps, &Primary{}).addAs(&fn.Value, fn)
	}
}

func allowedInFlagName(r rune) bool {
	return allowedInBareword(r) && r != '='
}

// PrimaryType is the type of a Primary.
type PrimaryType int

// Possible values for PrimaryType.
const (
	BadPrimary PrimaryType = iota
	Bareword
	SingleQuoted
	DoubleQuoted
	Number
	Bool
	ImplicitInput
	Variable
	Block
)

// Primary is the smallest expression unit.
type Primary struct {
	node
	Type PrimaryType
	// The string value. Valid for Bareword, SingleQuoted, DoubleQuoted and
	// Variable (without the leading '$').
	Value string
	// The numeric value. Valid for Number.
	Num float64
	// The truth value. Valid for Bool.
	BoolVal bool
	// The nested pipeline. Valid for Block.
	Pipeline *Pipeline
}

func (pn *Primary) parse(ps *parser) {
	r := ps.peek()
	switch {
	case r == '\'':
		pn.singleQuoted(ps)
	case r == '"':
		pn.doubleQuoted(ps)
	case r == '$':
		pn.variable(ps)
	case r == '#':
		pn.hashLiteral(ps)
	case r == '{':
		pn.block(ps)
	case ps.startsNumber():
		pn.number(ps)
	case allowedInBareword(r):
		pn.bareword(ps)
	default:
		ps.error(errShouldBePrimary)
	}
}

func (pn *Primary) singleQuoted(ps *parser) {
	pn.Type = SingleQuoted
	ps.next()
	var buf []rune
	defer func() { pn.Value = string(buf) }()
	for {
		switch r := ps.next(); r {
		case eof:
			ps.error(errStrNotTerminated)
			return
		case '\'':
			if ps.peek() == '\'' {
				// Two consecutive single quotes
				ps.next()
				buf = append(buf, '\'')
			} else {
				// End of string
				return
			}
		default:
			buf = append(buf, r)
		}
	}
}

// The simple double-quote escape sequences.
var doubleEscape = map[rune]rune{
	'n': '\n', 't': '\t', 'r': '\r', '\\': '\\', '"': '"', '\'': '\'',
}

func (pn *Primary) doubleQuoted(ps *parser) {
	pn.Type = DoubleQuoted
	ps.next()
	var buf []rune
	defer func() { pn.Value = string(buf) }()
	for {
		switch r := ps.next(); r {
		case eof:
			ps.error(errStrNotTerminated)
			return
		case '"':
			return
		case '\\':
			if rr, ok := doubleEscape[ps.next()]; ok {
				buf = append(buf, rr)
			} else {
				ps.backup()
				ps.error(errInvalidEscape)
				ps.next()
			}
		default:
			buf = append(buf, r)
		}
	}
}

func (pn *Primary) variable(ps *parser) {
	pn.Type = Variable
	ps.next()
	begin := ps.pos
	for allowedInIdent(ps.peek()) {
		ps.next()
	}
	pn.Value = ps.src[begin:ps.pos]
	if pn.Value == "" {
		ps.error(errShouldBeVarName)
	}
}

func (pn *Primary) hashLiteral(ps *parser) {
	ps.next()
	r := ps.next()
	switch r {
	case 'i':
		pn.Type = ImplicitInput
	case 't', 'f':
		pn.Type = Bool
		pn.BoolVal = r == 't'
	default:
		if r != eof {
			ps.backup()
		}
		ps.error(errUnknownHashLit)
		return
	}
	// A trailing bareword rune would make this something like #table, which
	// is not a literal.
	if allowedInBareword(ps.peek()) {
		ps.error(errUnknownHashLit)
	}
}

func (pn *Primary) block(ps *parser) {
	pn.Type = Block
	ps.next()
	ps.blockDepth++
	defer func() { ps.blockDepth-- }()
	if ps.blockDepth > maxBlockDepth {
		ps.error(errBlockTooDeep)
		return
	}
	parseSpacesAndNewlines(ps)
	parse(ps, &Pipeline{}).addAs(&pn.Pipeline, pn)
	if !parseSep(ps, '}') {
		ps.error(errShouldBeRBrace)
	}
}

func (pn *Primary) number(ps *parser) {
	pn.Type = Number
	begin := ps.pos
	for allowedInBareword(ps.peek()) {
		ps.next()
	}
	text := ps.src[begin:ps.pos]
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		ps.errorp(diag.Ranging{From: begin, To: ps.pos},
			fmt.Errorf("invalid number literal %q", text))
		return
	}
	pn.Num = num
	pn.Value = text
}

func (pn *Primary) bareword(ps *parser) {
	pn.Type = Bareword
	begin := ps.pos
	if ps.peek() == '\\' {
		// The input command is a single backslash, and "\5" is the command
		// applied to the argument 5.
		ps.next()
	} else {
		for allowedInBareword(ps.peek()) {
			ps.next()
		}
	}
	pn.Value = ps.src[begin:ps.pos]
}

func startsPrimary(r rune) bool {
	return r == '\'' || r == '"' || r == '$' || r == '#' || r == '{' ||
		allowedInBareword(r)
}

// Ident is an identifier: a definition name, parameter name, type
// annotation or record field name.
type Ident struct {
	node
	Name string
}

func (in *Ident) parse(ps *parser) {
	begin := ps.pos
	for allowedInIdent(ps.peek()) {
		ps.next()
	}
	in.Name = ps.src[begin:ps.pos]
	if in.Name == "" {
		ps.error(errShouldBeIdent)
	}
}

// Def = 'def' Ident [ Ident ] '(' { Ident } ')' '{' Pipeline '}'
//
// The optional second identifier is the declared input type; without it the
// definition accepts any input.
type Def struct {
	node
	Name   *Ident
	InType *Ident
	Params []*Ident
	Body   *Pipeline
}

func (dn *Def) parse(ps *parser) {
	parseKeyword(ps, "def")
	parseSpaces(ps)
	parse(ps, &Ident{}).addAs(&dn.Name, dn)
	parseSpaces(ps)
	if ps.peek() != '(' {
		parse(ps, &Ident{}).addAs(&dn.InType, dn)
		parseSpaces(ps)
	}
	if !parseSep(ps, '(') {
		ps.error(errShouldBeLParen)
		return
	}
	parseSpaces(ps)
	for allowedInIdent(ps.peek()) {
		parse(ps, &Ident{}).addTo(&dn.Params, dn)
		parseSpaces(ps)
	}
	if !parseSep(ps, ')') {
		ps.error(errShouldBeRParen)
		return
	}
	parseSpaces(ps)
	if !parseSep(ps, '{') {
		ps.error(errShouldBeLBrace)
		return
	}
	ps.blockDepth++
	parseSpacesAndNewlines(ps)
	parse(ps, &Pipeline{}).addAs(&dn.Body, dn)
	ps.blockDepth--
	if !parseSep(ps, '}') {
		ps.error(errShouldBeRBrace)
	}
}

// DefTy = 'def-ty' Ident '{' { TyField } '}'
type DefTy struct {
	node
	Name   *Ident
	Fields []*TyField
}

func (dn *DefTy) parse(ps *parser) {
	parseKeyword(ps, "def-ty")
	parseSpaces(ps)
	parse(ps, &Ident{}).addAs(&dn.Name, dn)
	parseSpaces(ps)
	if !parseSep(ps, '{') {
		ps.error(errShouldBeLBrace)
		return
	}
	ps.blockDepth++
	parseSpacesAndNewlines(ps)
	for allowedInIdent(ps.peek()) {
		parse(ps, &TyField{}).addTo(&dn.Fields, dn)
		parseSpacesAndNewlines(ps)
	}
	ps.blockDepth--
	if !parseSep(ps, '}') {
		ps.error(errShouldBeRBrace)
	}
}

// TyField = Ident ':' Ident
type TyField struct {
	node
	Name *Ident
	Type *Ident
}

func (fn *TyField) parse(ps *parser) {
	parse(ps, &Ident{}).addAs(&fn.Name, fn)
	if !parseSep(ps, ':') {
		ps.error(errShouldBeTyField)
		return
	}
	if !allowedInIdent(ps.peek()) {
		ps.error(errShouldBeTyField)
		return
	}
	parse(ps, &Ident{}).addAs(&fn.Type, fn)
}

// parseKeyword consumes a keyword that the caller has already checked for
// with hasKeyword.
func parseKeyword(ps *parser, kw string) {
	for range kw {
		ps.next()
	}
}

func (ps *parser) hasKeyword(kw string) bool {
	if !ps.hasPrefix(kw) {
		return false
	}
	rest := ps.src[ps.pos+len(kw):]
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return IsWhitespace(r)
}

// startsComment reports whether the parser is looking at the start of a
// comment: a '#' followed by whitespace, another '#', or the end of the
// source. This keeps the '#i', '#t' and '#f' literals out of comment
// territory.
func (ps *parser) startsComment() bool {
	rest := ps.src[ps.pos:]
	if len(rest) == 0 || rest[0] != '#' {
		return false
	}
	if len(rest) == 1 {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest[1:])
	return IsWhitespace(r) || r == '#'
}

// startsNumber reports whether the parser is looking at the start of a
// number literal: a digit, or a '-', '+' or '.' followed by a digit.
func (ps *parser) startsNumber() bool {
	rest := ps.src[ps.pos:]
	if rest == "" {
		return false
	}
	if '0' <= rest[0] && rest[0] <= '9' {
		return true
	}
	if rest[0] == '-' || rest[0] == '+' || rest[0] == '.' {
		return len(rest) > 1 && '0' <= rest[1] && rest[1] <= '9'
	}
	return false
}

func parseSep(ps *parser, sep rune) bool {
	if ps.peek() == sep {
		ps.next()
		return true
	}
	return false
}

func parseSpaces(ps *parser) {
	parseSpacesInner(ps, ps.blockDepth > 0)
}

func parseSpacesAndNewlines(ps *parser) {
	parseSpacesInner(ps, true)
}

func parseSpacesInner(ps *parser, newlines bool) {
	for {
		r := ps.peek()
		switch {
		case IsInlineWhitespace(r):
			ps.next()
		case newlines && (r == '\r' || r == '\n'):
			ps.next()
		case r == '#' && ps.startsComment():
			ps.next()
			for {
				r := ps.peek()
				if r == eof || r == '\r' || r == '\n' {
					break
				}
				ps.next()
			}
		default:
			return
		}
	}
}

// IsInlineWhitespace reports whether r is an inline whitespace character,
// space or tab.
func IsInlineWhitespace(r rune) bool {
	return r == ' ' || r == '\t'
}

// IsWhitespace reports whether r is an inline whitespace character or a
// newline.
func IsWhitespace(r rune) bool {
	return IsInlineWhitespace(r) || r == '\r' || r == '\n'
}

// The following are allowed in barewords: letters, digits, printable
// non-ASCII runes, and the symbols below. Barewords double as command names
// (like "+", "/" and "\") and as unquoted string literals for field and
// column names.
func allowedInBareword(r rune) bool {
	return r == '_' || r == '-' || r == '+' || r == '*' || r == '/' ||
		r == '\\' || r == '<' || r == '>' || r == '=' || r == '!' ||
		r == '?' || r == '.' || r == '%' || r == ':' ||
		('0' <= r && r <= '9') || ('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') || (r >= 0x80 && unicode.IsPrint(r))
}

// Identifiers are barewords without the ':', '=' and '.' punctuation, which
// have syntactic roles in definitions.
func allowedInIdent(r rune) bool {
	return allowedInBareword(r) && r != ':' && r != '=' && r != '.'
}
