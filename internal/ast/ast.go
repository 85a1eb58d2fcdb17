// Package ast defines the O2L abstract syntax tree (spec §3.5). Every node
// carries the token it started from (for source location) and is evaluated
// by a type switch in internal/evaluator, not by double dispatch.
package ast

import "github.com/o2l-lang/o2l/internal/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	GetToken() token.Token
}

// Statement is a Node used in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node used in expression position; every expression
// evaluates to a Value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node produced by parsing one source file.
type Program struct {
	File         string
	Declarations []Statement
}

func (p *Program) GetToken() token.Token {
	if len(p.Declarations) == 0 {
		return token.Token{}
	}
	return p.Declarations[0].GetToken()
}

// ---- Literals & identifiers ----

type IntLiteral struct {
	Token token.Token
	Value int32
}

func (n *IntLiteral) GetToken() token.Token { return n.Token }
func (n *IntLiteral) expressionNode()       {}

type LongLiteral struct {
	Token token.Token
	Value int64
}

func (n *LongLiteral) GetToken() token.Token { return n.Token }
func (n *LongLiteral) expressionNode()       {}

type FloatLiteral struct {
	Token token.Token
	Value float32
}

func (n *FloatLiteral) GetToken() token.Token { return n.Token }
func (n *FloatLiteral) expressionNode()       {}

type DoubleLiteral struct {
	Token token.Token
	Value float64
}

func (n *DoubleLiteral) GetToken() token.Token { return n.Token }
func (n *DoubleLiteral) expressionNode()       {}

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (n *BoolLiteral) GetToken() token.Token { return n.Token }
func (n *BoolLiteral) expressionNode()       {}

type CharLiteral struct {
	Token token.Token
	Value rune
}

func (n *CharLiteral) GetToken() token.Token { return n.Token }
func (n *CharLiteral) expressionNode()       {}

type TextLiteral struct {
	Token token.Token
	Value string
}

func (n *TextLiteral) GetToken() token.Token { return n.Token }
func (n *TextLiteral) expressionNode()       {}

// Identifier resolves a name against the environment.
type Identifier struct {
	Token token.Token
	Name  string
}

func (n *Identifier) GetToken() token.Token { return n.Token }
func (n *Identifier) expressionNode()       {}

// QualifiedIdentifier resolves a dotted name (e.g. a module member) as a
// single lookup key.
type QualifiedIdentifier struct {
	Token token.Token
	Parts []string
}

func (n *QualifiedIdentifier) GetToken() token.Token { return n.Token }
func (n *QualifiedIdentifier) expressionNode()       {}

// This yields the top of the `this` stack.
type This struct {
	Token token.Token
}

func (n *This) GetToken() token.Token { return n.Token }
func (n *This) expressionNode()       {}

// ---- Operators ----

type BinaryOp struct {
	Token token.Token
	Left  Expression
	Op    string // + - * / %
	Right Expression
}

func (n *BinaryOp) GetToken() token.Token { return n.Token }
func (n *BinaryOp) expressionNode()       {}

type Comparison struct {
	Token token.Token
	Left  Expression
	Op    string // == != < > <= >=
	Right Expression
}

func (n *Comparison) GetToken() token.Token { return n.Token }
func (n *Comparison) expressionNode()       {}

type Logical struct {
	Token token.Token
	Left  Expression
	Op    string // && ||
	Right Expression
}

func (n *Logical) GetToken() token.Token { return n.Token }
func (n *Logical) expressionNode()       {}

type Unary struct {
	Token   token.Token
	Op      string // - !
	Operand Expression
}

func (n *Unary) GetToken() token.Token { return n.Token }
func (n *Unary) expressionNode()       {}

// ---- Declarations & assignment ----

type VariableDeclaration struct {
	Token          token.Token
	Name           string
	DeclaredType   string // "" if inferred
	Initializer    Expression
}

func (n *VariableDeclaration) GetToken() token.Token { return n.Token }
func (n *VariableDeclaration) statementNode()        {}

type ConstDeclaration struct {
	Token        token.Token
	Name         string
	DeclaredType string
	Initializer  Expression
}

func (n *ConstDeclaration) GetToken() token.Token { return n.Token }
func (n *ConstDeclaration) statementNode()         {}

type VariableAssignment struct {
	Token token.Token
	Name  string
	Value Expression
}

func (n *VariableAssignment) GetToken() token.Token { return n.Token }
func (n *VariableAssignment) statementNode()         {}
func (n *VariableAssignment) expressionNode()        {}

// PropertyDeclaration declares a property inside an object body. Properties
// are always constants (spec §4.2 "Property declarations are always
// constants").
type PropertyDeclaration struct {
	Token        token.Token
	Name         string
	DeclaredType string
	Initializer  Expression
}

func (n *PropertyDeclaration) GetToken() token.Token { return n.Token }
func (n *PropertyDeclaration) statementNode()         {}

// PropertyAssignment assigns `target.Name = Value`, enforcing the
// property-set-once rule at evaluation time.
type PropertyAssignment struct {
	Token  token.Token
	Target Expression
	Name   string
	Value  Expression
}

func (n *PropertyAssignment) GetToken() token.Token { return n.Token }
func (n *PropertyAssignment) statementNode()         {}
func (n *PropertyAssignment) expressionNode()        {}

// ---- Control flow ----

type If struct {
	Token     token.Token
	Cond      Expression
	Then      *Block
	ElifConds []Expression
	ElifThen  []*Block
	Else      *Block // nil if absent
}

func (n *If) GetToken() token.Token { return n.Token }
func (n *If) statementNode()        {}
func (n *If) expressionNode()       {}

type While struct {
	Token token.Token
	Cond  Expression
	Body  *Block
}

func (n *While) GetToken() token.Token { return n.Token }
func (n *While) statementNode()         {}

type Break struct {
	Token token.Token
}

func (n *Break) GetToken() token.Token { return n.Token }
func (n *Break) statementNode()         {}

type Continue struct {
	Token token.Token
}

func (n *Continue) GetToken() token.Token { return n.Token }
func (n *Continue) statementNode()         {}

type Return struct {
	Token token.Token
	Value Expression // nil if bare `return`
}

func (n *Return) GetToken() token.Token { return n.Token }
func (n *Return) statementNode()         {}

// Block is an ordered list of statements; it evaluates to the value of the
// last statement (or Nil-equivalent if empty — the language has no null,
// so an empty block's "value" is only ever used in statement position).
type Block struct {
	Token      token.Token
	Statements []Statement
}

func (n *Block) GetToken() token.Token { return n.Token }
func (n *Block) statementNode()         {}
func (n *Block) expressionNode()        {}

// ExpressionStatement wraps an expression evaluated for effect.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (n *ExpressionStatement) GetToken() token.Token { return n.Token }
func (n *ExpressionStatement) statementNode()         {}

// ---- Calls & construction ----

// MethodCall is `receiver.method(args)`. Visibility (spec §4.3.3) is
// external iff Receiver is not syntactically an *ast.This node — the
// evaluator checks this with a type assertion rather than a stored flag,
// since it is purely a property of the Receiver expression.
type MethodCall struct {
	Token    token.Token
	Receiver Expression
	Method   string
	Args     []Expression
}

func (n *MethodCall) GetToken() token.Token { return n.Token }
func (n *MethodCall) expressionNode()       {}

// FunctionCall covers call-like forms that are not `recv.method(...)`,
// e.g. `Result.success(x)` / `Result.error(x)`.
type FunctionCall struct {
	Token    token.Token
	Callee   string // e.g. "Result.success"
	Args     []Expression
}

func (n *FunctionCall) GetToken() token.Token { return n.Token }
func (n *FunctionCall) expressionNode()       {}

type New struct {
	Token      token.Token
	ObjectType string
	Args       []Expression
}

func (n *New) GetToken() token.Token { return n.Token }
func (n *New) expressionNode()       {}

// MemberAccess is `expr.name`, either a property read or a bound method
// value reference; the same node type serves both cases.
type MemberAccess struct {
	Token  token.Token
	Object Expression
	Member string
}

func (n *MemberAccess) GetToken() token.Token { return n.Token }
func (n *MemberAccess) expressionNode()       {}

// ---- Collections ----

type ListLiteral struct {
	Token       token.Token
	ElementType string
	Elements    []Expression
}

func (n *ListLiteral) GetToken() token.Token { return n.Token }
func (n *ListLiteral) expressionNode()       {}

type MapEntry struct {
	Key   Expression
	Value Expression
}

type MapLiteral struct {
	Token     token.Token
	KeyType   string
	ValueType string
	Entries   []MapEntry
}

func (n *MapLiteral) GetToken() token.Token { return n.Token }
func (n *MapLiteral) expressionNode()       {}

type SetLiteral struct {
	Token       token.Token
	ElementType string
	Elements    []Expression
}

func (n *SetLiteral) GetToken() token.Token { return n.Token }
func (n *SetLiteral) expressionNode()       {}

// ---- Object / record / enum / protocol declarations ----

type Param struct {
	Name string
	Type string
}

type MethodDeclaration struct {
	Token      token.Token
	Name       string
	External   bool
	Params     []Param
	ReturnType string
	Body       *Block
}

type ConstructorDeclaration struct {
	Token  token.Token
	Params []Param
	Body   *Block
}

type ObjectDeclaration struct {
	Token        token.Token
	Name         string
	Protocols    []string
	Properties   []*PropertyDeclaration
	Constructors []*ConstructorDeclaration
	Methods      []*MethodDeclaration
}

func (n *ObjectDeclaration) GetToken() token.Token { return n.Token }
func (n *ObjectDeclaration) statementNode()         {}

type RecordField struct {
	Name string
	Type string
}

type RecordDeclaration struct {
	Token  token.Token
	Name   string
	Fields []RecordField
}

func (n *RecordDeclaration) GetToken() token.Token { return n.Token }
func (n *RecordDeclaration) statementNode()         {}

type RecordFieldInit struct {
	Name  string
	Value Expression
}

type RecordInstantiation struct {
	Token  token.Token
	Type   string
	Fields []RecordFieldInit
}

func (n *RecordInstantiation) GetToken() token.Token { return n.Token }
func (n *RecordInstantiation) expressionNode()       {}

type RecordFieldAccess struct {
	Token  token.Token
	Record Expression
	Field  string
}

func (n *RecordFieldAccess) GetToken() token.Token { return n.Token }
func (n *RecordFieldAccess) expressionNode()       {}

type EnumMember struct {
	Name  string
	Value int32
}

type EnumDeclaration struct {
	Token   token.Token
	Name    string
	Members []EnumMember
}

func (n *EnumDeclaration) GetToken() token.Token { return n.Token }
func (n *EnumDeclaration) statementNode()         {}

type EnumAccess struct {
	Token  token.Token
	Enum   string
	Member string
}

func (n *EnumAccess) GetToken() token.Token { return n.Token }
func (n *EnumAccess) expressionNode()       {}

type ProtocolSignature struct {
	Name       string
	Params     []Param
	ReturnType string
}

type ProtocolDeclaration struct {
	Token      token.Token
	Name       string
	Signatures []ProtocolSignature
}

func (n *ProtocolDeclaration) GetToken() token.Token { return n.Token }
func (n *ProtocolDeclaration) statementNode()         {}

// ---- Errors & try/catch ----

type Throw struct {
	Token token.Token
	Value Expression
}

func (n *Throw) GetToken() token.Token { return n.Token }
func (n *Throw) statementNode()         {}

type TryCatchFinally struct {
	Token      token.Token
	Try        *Block
	CatchName  string // "" if no catch clause
	Catch      *Block
	Finally    *Block // nil if absent
}

func (n *TryCatchFinally) GetToken() token.Token { return n.Token }
func (n *TryCatchFinally) statementNode()         {}
func (n *TryCatchFinally) expressionNode()        {}

// ---- Modules ----

type Import struct {
	Token    token.Token
	Path     []string // dotted path segments
	IsUser   bool      // true for @import, false for import
	All      bool      // trailing '*'
	Alias    string    // "" if binding under the short name
}

func (n *Import) GetToken() token.Token { return n.Token }
func (n *Import) statementNode()         {}

type Namespace struct {
	Token        token.Token
	Name         string
	Declarations []Statement
}

func (n *Namespace) GetToken() token.Token { return n.Token }
func (n *Namespace) statementNode()         {}
