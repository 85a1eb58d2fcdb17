package parser

import (
	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/token"
)

// parseBlock parses a `{ ... }` statement list.
func (p *Parser) parseBlock() (*ast.Block, error) {
	tok, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	block := &ast.Block{Token: tok}
	for !p.curIs(token.RBRACE) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// parseStatement dispatches on the current token to the right statement
// form; a bare identifier starting a COLON is a variable declaration,
// everything else that isn't a dedicated keyword falls through to the
// expression/assignment form (spec §4.2 statement grammar).
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Kind {
	case token.CONST:
		return p.parseConstDeclaration()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.BREAK:
		tok := p.cur
		p.next()
		return &ast.Break{Token: tok}, nil
	case token.CONTINUE:
		tok := p.cur
		p.next()
		return &ast.Continue{Token: tok}, nil
	case token.RETURN:
		return p.parseReturn()
	case token.THROW:
		return p.parseThrow()
	case token.TRY:
		return p.parseTryCatchFinally()
	case token.PROPERTY:
		return p.parsePropertyDeclaration()
	default:
		if p.curIs(token.IDENT) && p.peekIs(token.COLON) {
			return p.parseVariableDeclaration()
		}
		return p.parseExpressionOrAssignmentStatement()
	}
}

func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	tok := p.cur
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDeclaration{Token: tok, Name: nameTok.Lexeme, DeclaredType: typ}
	if p.curIs(token.ASSIGN) {
		p.next()
		init, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		decl.Initializer = init
	}
	return decl, nil
}

func (p *Parser) parseConstDeclaration() (*ast.ConstDeclaration, error) {
	tok := p.cur
	p.next() // 'const'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.ConstDeclaration{Token: tok, Name: nameTok.Lexeme}
	if p.curIs(token.COLON) {
		p.next()
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		decl.DeclaredType = typ
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	init, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	decl.Initializer = init
	return decl, nil
}

// parseExpressionOrAssignmentStatement parses an expression and, if it's
// immediately followed by '=', reinterprets the already-parsed expression
// as an assignment target (variable or property) rather than threading a
// separate lvalue grammar.
func (p *Parser) parseExpressionOrAssignmentStatement() (ast.Statement, error) {
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if !p.curIs(token.ASSIGN) {
		return &ast.ExpressionStatement{Token: expr.GetToken(), Expr: expr}, nil
	}
	p.next()
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *ast.Identifier:
		return &ast.VariableAssignment{Token: target.Token, Name: target.Name, Value: value}, nil
	case *ast.MemberAccess:
		return &ast.PropertyAssignment{Token: target.Token, Target: target.Object, Name: target.Member, Value: value}, nil
	default:
		return nil, p.errorf("invalid assignment target")
	}
}

func (p *Parser) parseIf() (*ast.If, error) {
	tok := p.cur
	p.next() // 'if'
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.If{Token: tok, Cond: cond, Then: then}
	p.skipNewlines()
	for p.curIs(token.ELSE) {
		p.next() // 'else'
		if p.curIs(token.IF) {
			p.next() // 'if'
			elifCond, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			elifBlk, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.ElifConds = append(node.ElifConds, elifCond)
			node.ElifThen = append(node.ElifThen, elifBlk)
			p.skipNewlines()
			continue
		}
		elseBlk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Else = elseBlk
		break
	}
	return node, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	tok := p.cur
	p.next() // 'while'
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Token: tok, Cond: cond, Body: body}, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	tok := p.cur
	p.next() // 'return'
	if p.curIs(token.NEWLINE) || p.curIs(token.RBRACE) || p.curIs(token.EOF) {
		return &ast.Return{Token: tok}, nil
	}
	val, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.Return{Token: tok, Value: val}, nil
}

func (p *Parser) parseThrow() (*ast.Throw, error) {
	tok := p.cur
	p.next() // 'throw'
	val, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.Throw{Token: tok, Value: val}, nil
}

func (p *Parser) parseTryCatchFinally() (*ast.TryCatchFinally, error) {
	tok := p.cur
	p.next() // 'try'
	tryBlk, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.TryCatchFinally{Token: tok, Try: tryBlk}
	p.skipNewlines()
	if p.curIs(token.CATCH) {
		p.next()
		if p.curIs(token.LPAREN) {
			p.next()
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			node.CatchName = nameTok.Lexeme
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
		}
		catchBlk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Catch = catchBlk
		p.skipNewlines()
	}
	if p.curIs(token.FINALLY) {
		p.next()
		finBlk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Finally = finBlk
	}
	return node, nil
}
