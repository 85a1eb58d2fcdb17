package ast

import (
	"testing"

	"github.com/o2l-lang/o2l/internal/token"
)

func TestProgramGetTokenEmpty(t *testing.T) {
	p := &Program{File: "<test>"}
	if got := p.GetToken(); got.Kind != "" {
		t.Errorf("empty Program.GetToken() = %+v, want zero Token", got)
	}
}

func TestProgramGetTokenDelegatesToFirstDeclaration(t *testing.T) {
	tok := token.Token{Kind: token.OBJECT, Lexeme: "Object", Line: 3, Column: 1}
	decl := &ObjectDeclaration{Token: tok, Name: "Main"}
	p := &Program{Declarations: []Statement{decl}}

	got := p.GetToken()
	if got != tok {
		t.Errorf("Program.GetToken() = %+v, want %+v", got, tok)
	}
}

func TestNodeKindsImplementGetToken(t *testing.T) {
	tok := token.Token{Kind: token.INT, Lexeme: "1", Line: 1, Column: 1}
	nodes := []Node{
		&IntLiteral{Token: tok, Value: 1},
		&BoolLiteral{Token: tok, Value: true},
		&Identifier{Token: tok, Name: "x"},
		&Break{Token: tok},
		&Continue{Token: tok},
	}
	for _, n := range nodes {
		if n.GetToken() != tok {
			t.Errorf("%T.GetToken() = %+v, want %+v", n, n.GetToken(), tok)
		}
	}
}
