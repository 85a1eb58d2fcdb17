package parser

import (
	"testing"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/lexer"
)

func parseDecl(t *testing.T, src string) ast.Statement {
	t.Helper()
	lx := lexer.New(src)
	p := New(lx, "<test>")
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q): %s", src, err)
	}
	if len(prog.Declarations) != 1 {
		t.Fatalf("ParseProgram(%q) produced %d declarations, want 1", src, len(prog.Declarations))
	}
	return prog.Declarations[0]
}

func TestParseObjectDeclarationWithProtocols(t *testing.T) {
	decl := parseDecl(t, `Object Calc : Greeter, Named { method secret(): Int { return 42 } }`)
	obj, ok := decl.(*ast.ObjectDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.ObjectDeclaration", decl)
	}
	if obj.Name != "Calc" {
		t.Errorf("Name = %q, want Calc", obj.Name)
	}
	if len(obj.Protocols) != 2 || obj.Protocols[0] != "Greeter" || obj.Protocols[1] != "Named" {
		t.Errorf("Protocols = %v, want [Greeter Named]", obj.Protocols)
	}
	if len(obj.Methods) != 1 || obj.Methods[0].Name != "secret" {
		t.Fatalf("Methods = %v, want one method named secret", obj.Methods)
	}
	if obj.Methods[0].External {
		t.Error("secret() should not be marked external")
	}
}

func TestParseExternalMethod(t *testing.T) {
	decl := parseDecl(t, `Object Calc { @external method add(a: Int, b: Int): Int { return a + b } }`)
	obj := decl.(*ast.ObjectDeclaration)
	if !obj.Methods[0].External {
		t.Error("method marked @external should have External = true")
	}
	if len(obj.Methods[0].Params) != 2 {
		t.Fatalf("Params = %v, want 2 params", obj.Methods[0].Params)
	}
	if obj.Methods[0].Params[0].Name != "a" || obj.Methods[0].Params[0].Type != "Int" {
		t.Errorf("Params[0] = %+v, want {a Int}", obj.Methods[0].Params[0])
	}
}

func TestParseGenericTypeNameReconstructedTextually(t *testing.T) {
	decl := parseDecl(t, `Object Box { property items: List<Map<Text, Int>> }`)
	obj := decl.(*ast.ObjectDeclaration)
	if len(obj.Properties) != 1 {
		t.Fatalf("Properties = %v, want 1", obj.Properties)
	}
	want := "List<Map<Text, Int>>"
	if obj.Properties[0].DeclaredType != want {
		t.Errorf("DeclaredType = %q, want %q", obj.Properties[0].DeclaredType, want)
	}
}

func TestParseIfElseIfElseNoParens(t *testing.T) {
	decl := parseDecl(t, `
Object Main {
    method main(): Int {
        if 1 > 2 {
            return 1
        } else if 2 > 3 {
            return 2
        } else {
            return 3
        }
    }
}
`)
	obj := decl.(*ast.ObjectDeclaration)
	body := obj.Methods[0].Body
	if len(body.Statements) != 1 {
		t.Fatalf("method body has %d statements, want 1", len(body.Statements))
	}
	ifStmt, ok := body.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", body.Statements[0])
	}
	if len(ifStmt.ElifConds) != 1 || len(ifStmt.ElifThen) != 1 {
		t.Fatalf("ElifConds/ElifThen = %d/%d, want one else-if arm", len(ifStmt.ElifConds), len(ifStmt.ElifThen))
	}
	if ifStmt.Else == nil {
		t.Fatal("expected a trailing else branch")
	}
}

func TestParseBareReturn(t *testing.T) {
	decl := parseDecl(t, `Object Main { method main() { return } }`)
	obj := decl.(*ast.ObjectDeclaration)
	ret, ok := obj.Methods[0].Body.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("got %T, want *ast.Return", obj.Methods[0].Body.Statements[0])
	}
	if ret.Value != nil {
		t.Errorf("bare return parsed a Value: %+v", ret.Value)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	decl := parseDecl(t, `
Object Main {
    method main(): Int {
        try {
            throw "boom"
        } catch (e) {
            return 1
        } finally {
            return 2
        }
    }
}
`)
	obj := decl.(*ast.ObjectDeclaration)
	tcf, ok := obj.Methods[0].Body.Statements[0].(*ast.TryCatchFinally)
	if !ok {
		t.Fatalf("got %T, want *ast.TryCatchFinally", obj.Methods[0].Body.Statements[0])
	}
	if tcf.CatchName != "e" {
		t.Errorf("CatchName = %q, want e", tcf.CatchName)
	}
	if tcf.Finally == nil {
		t.Error("Finally block missing")
	}
}

func TestParseNewWithConstructorArgs(t *testing.T) {
	decl := parseDecl(t, `Object Main { method main() { x: Calc = new Calc(1, 2) } }`)
	obj := decl.(*ast.ObjectDeclaration)
	varDecl, ok := obj.Methods[0].Body.Statements[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.VariableDeclaration", obj.Methods[0].Body.Statements[0])
	}
	newExpr, ok := varDecl.Initializer.(*ast.New)
	if !ok {
		t.Fatalf("got %T, want *ast.New", varDecl.Initializer)
	}
	if newExpr.ObjectType != "Calc" {
		t.Errorf("ObjectType = %q, want Calc", newExpr.ObjectType)
	}
	if len(newExpr.Args) != 2 {
		t.Errorf("Args = %v, want 2 arguments", newExpr.Args)
	}
}

func TestParseMemberAccessAndMethodCallChain(t *testing.T) {
	decl := parseDecl(t, `Object Main { method main() { a.b.c(1) } }`)
	obj := decl.(*ast.ObjectDeclaration)
	stmt := obj.Methods[0].Body.Statements[0]
	exprStmt, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.ExpressionStatement", stmt)
	}
	call, ok := exprStmt.Expr.(*ast.MethodCall)
	if !ok {
		t.Fatalf("got %T, want *ast.MethodCall", exprStmt.Expr)
	}
	if call.Method != "c" {
		t.Errorf("Method = %q, want c", call.Method)
	}
	if _, ok := call.Receiver.(*ast.MemberAccess); !ok {
		t.Errorf("Receiver = %T, want *ast.MemberAccess (a.b)", call.Receiver)
	}
}

func TestParseImportForms(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantPath   []string
		wantIsUser bool
		wantAll    bool
	}{
		{"library dotted", "import system.os", []string{"system", "os"}, false, false},
		{"user import", "@import utils.math", []string{"utils", "math"}, true, false},
		{"wildcard import", "import data.yaml.*", []string{"data", "yaml"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := parseDecl(t, tt.src)
			imp, ok := decl.(*ast.Import)
			if !ok {
				t.Fatalf("got %T, want *ast.Import", decl)
			}
			if len(imp.Path) != len(tt.wantPath) {
				t.Fatalf("Path = %v, want %v", imp.Path, tt.wantPath)
			}
			for i, p := range tt.wantPath {
				if imp.Path[i] != p {
					t.Errorf("Path[%d] = %q, want %q", i, imp.Path[i], p)
				}
			}
			if imp.IsUser != tt.wantIsUser {
				t.Errorf("IsUser = %v, want %v", imp.IsUser, tt.wantIsUser)
			}
			if imp.All != tt.wantAll {
				t.Errorf("All = %v, want %v", imp.All, tt.wantAll)
			}
		})
	}
}

func TestParseEnumWithExplicitValues(t *testing.T) {
	decl := parseDecl(t, `Enum Color { Red = 1, Green, Blue = 10 }`)
	enum, ok := decl.(*ast.EnumDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.EnumDeclaration", decl)
	}
	want := []ast.EnumMember{{Name: "Red", Value: 1}, {Name: "Green", Value: 2}, {Name: "Blue", Value: 10}}
	if len(enum.Members) != len(want) {
		t.Fatalf("Members = %v, want %v", enum.Members, want)
	}
	for i, m := range want {
		if enum.Members[i] != m {
			t.Errorf("Members[%d] = %+v, want %+v", i, enum.Members[i], m)
		}
	}
}

func TestParseOnlyTopLevelFormsPermitted(t *testing.T) {
	lx := lexer.New(`x: Int = 5`)
	p := New(lx, "<test>")
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected a syntax error for a bare statement at the top level")
	}
}
