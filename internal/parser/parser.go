// Package parser implements a recursive-descent / precedence-climbing
// parser over the O2L token stream (spec §4.2), grounded on the teacher's
// processor.go + expressions_*.go split (internal/parser in the teacher).
package parser

import (
	"fmt"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/errs"
	"github.com/o2l-lang/o2l/internal/lexer"
	"github.com/o2l-lang/o2l/internal/token"
)

// precedence levels, lowest to highest (spec §4.2 grammar highlights).
const (
	_ int = iota
	precLowest
	precOr         // ||
	precAnd        // &&
	precEquality   // == !=
	precRelational // < > <= >=
	precAdditive   // + -
	precMultiplicative
	precUnary
	precPostfix
)

var precedences = map[token.Kind]int{
	token.OR:      precOr,
	token.AND:     precAnd,
	token.EQ:      precEquality,
	token.NOT_EQ:  precEquality,
	token.LT:      precRelational,
	token.GT:      precRelational,
	token.LTE:     precRelational,
	token.GTE:     precRelational,
	token.PLUS:    precAdditive,
	token.MINUS:   precAdditive,
	token.STAR:    precMultiplicative,
	token.SLASH:   precMultiplicative,
	token.PERCENT: precMultiplicative,
}

// Parser holds the token stream and current/peek lookahead.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  token.Token
	peek token.Token

	errors []error
}

// New creates a Parser reading from l, attributing errors to file.
func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

// skipNewlines consumes any run of NEWLINE/SEMI tokens (statement
// terminators are significant only as separators, never as meaningful
// empty statements; ';' is accepted wherever a newline is, letting
// several statements share one line).
func (p *Parser) skipNewlines() {
	for p.cur.Kind == token.NEWLINE || p.cur.Kind == token.SEMI {
		p.next()
	}
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, p.errorf("expected %s, got %s (%q)", k, p.cur.Kind, p.cur.Lexeme)
	}
	t := p.cur
	p.next()
	return t, nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	e := &errs.SyntaxError{
		File:    p.file,
		Line:    p.cur.Line,
		Column:  p.cur.Column,
		Message: fmt.Sprintf(format, args...),
	}
	p.errors = append(p.errors, e)
	return e
}

// Errors returns every syntax error accumulated during ParseProgram.
func (p *Parser) Errors() []error { return p.errors }

// ParseProgram consumes the whole token stream and returns the resulting
// Program. On any syntax error, parsing stops and the first error is
// returned (spec §7: SyntaxError is not recoverable — "program does not
// start").
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{File: p.file}
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		decl, err := p.parseTopLevelDecl()
		if err != nil {
			return nil, err
		}
		prog.Declarations = append(prog.Declarations, decl)
		p.skipNewlines()
	}
	return prog, nil
}

func (p *Parser) parseTopLevelDecl() (ast.Statement, error) {
	switch p.cur.Kind {
	case token.OBJECT:
		return p.parseObjectDeclaration()
	case token.ENUM:
		return p.parseEnumDeclaration()
	case token.RECORD:
		return p.parseRecordDeclaration()
	case token.PROTOCOL:
		return p.parseProtocolDeclaration()
	case token.NAMESPACE:
		return p.parseNamespace()
	case token.IMPORT, token.AT_IMPORT:
		return p.parseImport()
	default:
		return nil, p.errorf("Only object declarations (Object, Enum, Record, Protocol, namespace, import) are permitted at the top level, got %s", p.cur.Kind)
	}
}
