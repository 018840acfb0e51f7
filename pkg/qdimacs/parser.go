package qdimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads an extended-QDIMACS document and returns the parsed
// Formula. Failures are reported as *ParseError with a 1-based line
// and column.
func Parse(r io.Reader) (*Formula, error) {
	p := &parser{scanner: bufio.NewScanner(r)}
	p.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return p.parse()
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Formula, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	scanner *bufio.Scanner
	line    int
	f       Formula
	// quantified tracks variables already bound by a block, to reject
	// duplicate quantification.
	quantified map[int]bool
}

func (p *parser) errf(kind ErrorKind, col int, format string, args ...interface{}) error {
	return &ParseError{Kind: kind, Line: p.line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) next() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	p.line++
	return strings.TrimRight(p.scanner.Text(), "\r"), true
}

func (p *parser) parse() (*Formula, error) {
	p.quantified = make(map[int]bool)

	if err := p.parsePreamble(); err != nil {
		return nil, err
	}
	if err := p.parseBody(); err != nil {
		return nil, err
	}
	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading qdimacs data: %w", err)
	}
	// A declared clause count of zero legitimizes an empty matrix;
	// simplification can satisfy every clause of a branch.
	if len(p.f.Matrix) == 0 && p.f.Header.Clauses != 0 {
		return nil, p.errf(StructuralMismatch, 0, "end of input before any clause")
	}
	return &p.f, nil
}

// parsePreamble consumes comments and assumption directives up to and
// including the problem line.
func (p *parser) parsePreamble() error {
	for {
		line, ok := p.next()
		if !ok {
			p.line++
			return p.errf(StructuralMismatch, 0, "end of input before problem line")
		}
		switch {
		case isAssumptionLine(line):
			a, err := p.parseAssumption(line)
			if err != nil {
				return err
			}
			p.f.Assumptions = append(p.f.Assumptions, a)
		case strings.HasPrefix(line, "c"):
			// comment, discarded
		case strings.HasPrefix(line, "p"):
			return p.parseProblemLine(line)
		default:
			return p.errf(MalformedLine, 1, "expected comment, assumption directive or problem line, got %q", line)
		}
	}
}

func (p *parser) parseProblemLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
		return p.errf(MalformedLine, 1, "invalid problem line %q, expected \"p cnf <variables> <clauses>\"", line)
	}
	nbVars, err := strconv.Atoi(fields[2])
	if err != nil || nbVars < 0 {
		return p.errf(MalformedLine, 1, "invalid variable count %q in problem line", fields[2])
	}
	nbClauses, err := strconv.Atoi(fields[3])
	if err != nil || nbClauses < 0 {
		return p.errf(MalformedLine, 1, "invalid clause count %q in problem line", fields[3])
	}
	p.f.Header = Header{Vars: nbVars, Clauses: nbClauses}
	return nil
}

// parseBody consumes quantifier blocks, then clauses, then an optional
// run of trailing blank lines.
func (p *parser) parseBody() error {
	inClauses := false
	for {
		line, ok := p.next()
		if !ok {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			return p.parseTrailingBlanks()
		}
		switch {
		case strings.HasPrefix(line, "e ") || strings.HasPrefix(line, "a "):
			if inClauses {
				return p.errf(MalformedLine, 1, "quantifier block after first clause")
			}
			b, err := p.parseBlock(line)
			if err != nil {
				return err
			}
			p.f.Prefix = append(p.f.Prefix, b)
		default:
			c, err := p.parseClause(line)
			if err != nil {
				return err
			}
			p.f.Matrix = append(p.f.Matrix, c)
			inClauses = true
		}
	}
}

// parseTrailingBlanks accepts blank lines up to end of input; any other
// content after a blank line is an error.
func (p *parser) parseTrailingBlanks() error {
	for {
		line, ok := p.next()
		if !ok {
			return nil
		}
		if strings.TrimSpace(line) != "" {
			return p.errf(MalformedLine, 1, "content after trailing blank line")
		}
	}
}

func (p *parser) parseBlock(line string) (Block, error) {
	var b Block
	switch line[0] {
	case 'e':
		b.Kind = Exists
	case 'a':
		b.Kind = Forall
	}
	t := newTokenizer(line)
	t.mustNext() // quantifier marker, already inspected
	terminated := false
	for {
		tok, col, ok := t.nextToken()
		if !ok {
			break
		}
		if terminated {
			return b, p.errf(MalformedLine, col, "trailing token %q after block terminator", tok)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return b, p.errf(MalformedLine, col, "invalid variable id %q in quantifier block", tok)
		}
		if v == 0 {
			terminated = true
			continue
		}
		if v < 0 || v > p.f.Header.Vars {
			return b, p.errf(UndeclaredVariable, col, "variable %d out of declared bound %d", v, p.f.Header.Vars)
		}
		if p.quantified[v] {
			return b, p.errf(DuplicateQuantification, col, "variable %d quantified more than once", v)
		}
		p.quantified[v] = true
		b.Vars = append(b.Vars, v)
	}
	if !terminated {
		return b, p.errf(StructuralMismatch, len(line)+1, "quantifier block missing terminating 0")
	}
	if len(b.Vars) == 0 {
		return b, p.errf(MalformedLine, 1, "quantifier block with no variables")
	}
	return b, nil
}

func (p *parser) parseClause(line string) (Clause, error) {
	c := Clause{}
	t := newTokenizer(line)
	terminated := false
	for {
		tok, col, ok := t.nextToken()
		if !ok {
			break
		}
		if terminated {
			return nil, p.errf(MalformedLine, col, "trailing token %q after clause terminator", tok)
		}
		lit, err := strconv.Atoi(tok)
		if err != nil {
			return nil, p.errf(MalformedLine, col, "invalid literal %q in clause", tok)
		}
		if lit == 0 {
			terminated = true
			continue
		}
		v := lit
		if v < 0 {
			v = -v
		}
		if v > p.f.Header.Vars {
			return nil, p.errf(UndeclaredVariable, col, "literal %d out of declared bound %d", lit, p.f.Header.Vars)
		}
		c = append(c, lit)
	}
	if !terminated {
		return nil, p.errf(StructuralMismatch, len(line)+1, "clause missing terminating 0")
	}
	return c, nil
}

func isAssumptionLine(line string) bool {
	return strings.HasPrefix(line, "cs int") || strings.HasPrefix(line, "s int ")
}

// parseAssumption parses one "cs int"/"s int" directive line. The
// directive payload is character-scanned rather than field-split
// because brackets and braces bind tighter than spaces.
func (p *parser) parseAssumption(line string) (Assumption, error) {
	var a Assumption
	i := len("cs int")
	if strings.HasPrefix(line, "s int ") {
		i = len("s int ")
	}
	s := &assumptionScanner{line: line, pos: i}

	for {
		c, err := p.parseConstraint(s)
		if err != nil {
			return a, err
		}
		a.Constraints = append(a.Constraints, c)
		s.skipSpaces()
		if s.eol() {
			return a, nil
		}
		if s.peek() != ';' {
			return a, p.errf(MalformedLine, s.col(), "expected %q or end of line in assumption directive, got %q", ";", s.peek())
		}
		s.advance()
	}
}

func (p *parser) parseConstraint(s *assumptionScanner) (IntConstraint, error) {
	var c IntConstraint
	s.skipSpaces()
	if s.eol() {
		return c, p.errf(StructuralMismatch, s.col(), "assumption directive missing constraint")
	}

	if s.peek() == '[' {
		s.advance()
		for {
			s.skipSpaces()
			if s.eol() {
				return c, p.errf(StructuralMismatch, s.col(), "unterminated operand list in assumption directive")
			}
			if s.peek() == ']' {
				s.advance()
				break
			}
			v, col, err := s.readInt()
			if err != nil {
				return c, p.errf(MalformedLine, col, "invalid operand in assumption directive: %v", err)
			}
			if v <= 0 {
				return c, p.errf(MalformedLine, col, "operand %d in assumption directive is not a positive variable id", v)
			}
			c.Vars = append(c.Vars, v)
		}
		s.skipSpaces()
	}

	if s.eol() {
		return c, p.errf(StructuralMismatch, s.col(), "assumption directive missing comparison operator")
	}
	switch s.peek() {
	case '<':
		c.Op = CmpLess
	case '>':
		c.Op = CmpGreater
	case '=':
		c.Op = CmpEquals
	default:
		return c, p.errf(MalformedLine, s.col(), "invalid comparison operator %q in assumption directive", s.peek())
	}
	s.advance()
	s.skipSpaces()

	if !s.eol() && s.peek() == '{' {
		for !s.eol() && s.peek() == '{' {
			pat, err := p.parsePattern(s)
			if err != nil {
				return c, err
			}
			c.Patterns = append(c.Patterns, pat)
			s.skipSpaces()
			// only "=" chains multiple patterns
			if c.Op != CmpEquals {
				break
			}
		}
		return c, nil
	}

	v, col, err := s.readInt()
	if err != nil {
		return c, p.errf(MalformedLine, col, "invalid right-hand side in assumption directive: %v", err)
	}
	c.Value = v
	return c, nil
}

func (p *parser) parsePattern(s *assumptionScanner) ([]uint8, error) {
	s.advance() // '{'
	var pat []uint8
	for {
		if s.eol() {
			return nil, p.errf(StructuralMismatch, s.col(), "unterminated bit pattern in assumption directive")
		}
		switch s.peek() {
		case '}':
			s.advance()
			if len(pat) == 0 {
				return nil, p.errf(MalformedLine, s.col(), "empty bit pattern in assumption directive")
			}
			return pat, nil
		case '0':
			pat = append(pat, 0)
		case '1':
			pat = append(pat, 1)
		default:
			return nil, p.errf(MalformedLine, s.col(), "invalid bit %q in assumption pattern", s.peek())
		}
		s.advance()
	}
}

// assumptionScanner walks an assumption-directive line character by
// character, keeping 1-based column positions for error reports.
type assumptionScanner struct {
	line string
	pos  int
}

func (s *assumptionScanner) eol() bool { return s.pos >= len(s.line) }

func (s *assumptionScanner) peek() byte { return s.line[s.pos] }

func (s *assumptionScanner) advance() { s.pos++ }

func (s *assumptionScanner) col() int { return s.pos + 1 }

func (s *assumptionScanner) skipSpaces() {
	for !s.eol() && s.line[s.pos] == ' ' {
		s.pos++
	}
}

func (s *assumptionScanner) readInt() (int, int, error) {
	start := s.pos
	if !s.eol() && s.line[s.pos] == '-' {
		s.pos++
	}
	for !s.eol() && s.line[s.pos] >= '0' && s.line[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start || (s.pos == start+1 && s.line[start] == '-') {
		return 0, start + 1, fmt.Errorf("expected integer")
	}
	v, err := strconv.Atoi(s.line[start:s.pos])
	if err != nil {
		return 0, start + 1, err
	}
	return v, start + 1, nil
}

// tokenizer splits a line on spaces, reporting the 1-based column of
// each token.
type tokenizer struct {
	line string
	pos  int
}

func newTokenizer(line string) *tokenizer {
	return &tokenizer{line: line}
}

func (t *tokenizer) nextToken() (string, int, bool) {
	for t.pos < len(t.line) && (t.line[t.pos] == ' ' || t.line[t.pos] == '\t') {
		t.pos++
	}
	if t.pos >= len(t.line) {
		return "", 0, false
	}
	start := t.pos
	for t.pos < len(t.line) && t.line[t.pos] != ' ' && t.line[t.pos] != '\t' {
		t.pos++
	}
	return t.line[start:t.pos], start + 1, true
}

func (t *tokenizer) mustNext() string {
	tok, _, ok := t.nextToken()
	if !ok {
		panic("tokenizer: no token")
	}
	return tok
}
