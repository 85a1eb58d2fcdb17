package parser

import (
	"strconv"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/token"
)

// parseExpression is a standard precedence-climbing parser: parsePrefix
// produces the leftmost operand (folding in postfix call/member chains and
// unary operators), then the loop binds infix operators whose precedence
// is strictly greater than the caller's floor.
func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for precedences[p.cur.Kind] > precedence {
		switch p.cur.Kind {
		case token.AND, token.OR:
			left, err = p.parseLogical(left)
		case token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE:
			left, err = p.parseComparison(left)
		default:
			left, err = p.parseBinary(left)
		}
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseBinary(left ast.Expression) (ast.Expression, error) {
	op := p.cur
	prec := precedences[op.Kind]
	p.next()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOp{Token: op, Left: left, Op: string(op.Kind), Right: right}, nil
}

func (p *Parser) parseComparison(left ast.Expression) (ast.Expression, error) {
	op := p.cur
	prec := precedences[op.Kind]
	p.next()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.Comparison{Token: op, Left: left, Op: string(op.Kind), Right: right}, nil
}

func (p *Parser) parseLogical(left ast.Expression) (ast.Expression, error) {
	op := p.cur
	prec := precedences[op.Kind]
	p.next()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.Logical{Token: op, Left: left, Op: string(op.Kind), Right: right}, nil
}

// parsePrefix handles unary operators, with one exception folded in per
// spec §9 (Open Question resolved): a leading '-' immediately in front of
// a numeric literal folds its sign into the literal itself rather than
// producing a Unary node, so -2147483648 lexes/parses as a single Int
// rather than Unary(-, Int(2147483648)) which would overflow Int32.
func (p *Parser) parsePrefix() (ast.Expression, error) {
	switch p.cur.Kind {
	case token.MINUS:
		if isNumericLiteralKind(p.peek.Kind) {
			return p.parseNegativeNumericLiteral()
		}
		tok := p.cur
		p.next()
		operand, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Token: tok, Op: "-", Operand: operand}, nil
	case token.BANG:
		tok := p.cur
		p.next()
		operand, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Token: tok, Op: "!", Operand: operand}, nil
	default:
		primary, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return p.parsePostfix(primary)
	}
}

func isNumericLiteralKind(k token.Kind) bool {
	return k == token.INT || k == token.LONG || k == token.FLOAT || k == token.DOUBLE
}

func (p *Parser) parseNegativeNumericLiteral() (ast.Expression, error) {
	minusTok := p.cur
	p.next() // consume '-'
	return p.parseNumericLiteral(minusTok, true)
}

func (p *Parser) parseNumericLiteral(tok token.Token, negate bool) (ast.Expression, error) {
	numTok := p.cur
	p.next()
	sign := ""
	if negate {
		sign = "-"
	}
	switch numTok.Kind {
	case token.INT:
		n, err := strconv.ParseInt(sign+numTok.Lexeme, 10, 32)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", numTok.Lexeme)
		}
		return &ast.IntLiteral{Token: tok, Value: int32(n)}, nil
	case token.LONG:
		n, err := strconv.ParseInt(sign+numTok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid long literal %q", numTok.Lexeme)
		}
		return &ast.LongLiteral{Token: tok, Value: n}, nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(sign+numTok.Lexeme, 32)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", numTok.Lexeme)
		}
		return &ast.FloatLiteral{Token: tok, Value: float32(f)}, nil
	case token.DOUBLE:
		f, err := strconv.ParseFloat(sign+numTok.Lexeme, 64)
		if err != nil {
			return nil, p.errorf("invalid double literal %q", numTok.Lexeme)
		}
		return &ast.DoubleLiteral{Token: tok, Value: f}, nil
	default:
		return nil, p.errorf("expected numeric literal, got %s", numTok.Kind)
	}
}

// parsePostfix folds member access and call chains onto an already-parsed
// primary expression: `a.b.c(x)` becomes MethodCall{Receiver: MemberAccess{
// MemberAccess{a,b}}, ...} built left to right.
func (p *Parser) parsePostfix(left ast.Expression) (ast.Expression, error) {
	for {
		if !p.curIs(token.DOT) {
			return left, nil
		}
		p.next() // '.'
		memberTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if p.curIs(token.LPAREN) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			left = &ast.MethodCall{Token: memberTok, Receiver: left, Method: memberTok.Lexeme, Args: args}
			continue
		}
		left = &ast.MemberAccess{Token: memberTok, Object: left, Member: memberTok.Lexeme}
	}
}

func (p *Parser) parseArgs() ([]ast.Expression, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.curIs(token.RPAREN) {
		if len(args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		a, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur
	switch tok.Kind {
	case token.INT, token.LONG, token.FLOAT, token.DOUBLE:
		return p.parseNumericLiteral(tok, false)
	case token.STRING:
		p.next()
		return &ast.TextLiteral{Token: tok, Value: tok.Literal.(string)}, nil
	case token.CHAR:
		p.next()
		return &ast.CharLiteral{Token: tok, Value: tok.Literal.(rune)}, nil
	case token.TRUE:
		p.next()
		return &ast.BoolLiteral{Token: tok, Value: true}, nil
	case token.FALSE:
		p.next()
		return &ast.BoolLiteral{Token: tok, Value: false}, nil
	case token.THIS:
		p.next()
		return &ast.This{Token: tok}, nil
	case token.NEW:
		return p.parseNew()
	case token.LPAREN:
		p.next()
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case token.RESULT, token.ERROR:
		return p.parseQualifiedKeywordCall()
	case token.IDENT:
		return p.parseIdentOrTypedLiteral()
	default:
		return nil, p.errorf("unexpected token %s in expression", tok.Kind)
	}
}

// parseQualifiedKeywordCall handles Result.success(x) / Result.error(x) /
// Error.new(...)-style forms, where the qualifier is a language keyword
// rather than an ordinary identifier so it can't flow through the normal
// member-access postfix path.
func (p *Parser) parseQualifiedKeywordCall() (ast.Expression, error) {
	tok := p.cur
	callee := tok.Lexeme
	p.next()
	if p.curIs(token.DOT) {
		p.next()
		memberTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		callee += "." + memberTok.Lexeme
	}
	if p.curIs(token.LPAREN) {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Token: tok, Callee: callee, Args: args}, nil
	}
	return &ast.Identifier{Token: tok, Name: callee}, nil
}

// parseIdentOrTypedLiteral distinguishes a plain identifier/call from the
// built-in typed collection literal forms List<T>[...], Set<T>[...] and
// Map<K,V>{...} (spec §4.2), all of which begin with an IDENT that happens
// to be one of those three names followed immediately by '<'.
func (p *Parser) parseIdentOrTypedLiteral() (ast.Expression, error) {
	tok := p.cur
	if p.peekIs(token.LT) {
		switch tok.Lexeme {
		case "List":
			return p.parseListLiteral()
		case "Set":
			return p.parseSetLiteral()
		case "Map":
			return p.parseMapLiteral()
		}
	}
	p.next()
	if p.curIs(token.LPAREN) {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Token: tok, Callee: tok.Lexeme, Args: args}, nil
	}
	return &ast.Identifier{Token: tok, Name: tok.Lexeme}, nil
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	tok := p.cur
	p.next() // 'List'
	if _, err := p.expect(token.LT); err != nil {
		return nil, err
	}
	elemType, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.GT); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	for !p.curIs(token.RBRACKET) {
		if len(elems) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Token: tok, ElementType: elemType, Elements: elems}, nil
}

func (p *Parser) parseSetLiteral() (ast.Expression, error) {
	tok := p.cur
	p.next() // 'Set'
	if _, err := p.expect(token.LT); err != nil {
		return nil, err
	}
	elemType, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.GT); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	for !p.curIs(token.RBRACKET) {
		if len(elems) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.SetLiteral{Token: tok, ElementType: elemType, Elements: elems}, nil
}

func (p *Parser) parseMapLiteral() (ast.Expression, error) {
	tok := p.cur
	p.next() // 'Map'
	if _, err := p.expect(token.LT); err != nil {
		return nil, err
	}
	keyType, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	valType, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.GT); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var entries []ast.MapEntry
	for !p.curIs(token.RBRACE) {
		if len(entries) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
			p.skipNewlines()
		}
		k, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		v, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: k, Value: v})
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.MapLiteral{Token: tok, KeyType: keyType, ValueType: valType, Entries: entries}, nil
}

func (p *Parser) parseNew() (ast.Expression, error) {
	tok := p.cur
	p.next() // 'new'
	if p.curIs(token.ERROR) {
		// `new Error(...)` builds the same value as the `Error(...)` call.
		return p.parseQualifiedKeywordCall()
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	switch {
	case p.curIs(token.LPAREN):
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &ast.New{Token: tok, ObjectType: nameTok.Lexeme, Args: args}, nil
	case p.curIs(token.LBRACE):
		p.next()
		p.skipNewlines()
		var fields []ast.RecordFieldInit
		for !p.curIs(token.RBRACE) {
			if len(fields) > 0 {
				if _, err := p.expect(token.COMMA); err != nil {
					return nil, err
				}
				p.skipNewlines()
			}
			fieldTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			val, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.RecordFieldInit{Name: fieldTok.Lexeme, Value: val})
			p.skipNewlines()
		}
		if _, err := p.expect(token.RBRACE); err != nil {
			return nil, err
		}
		return &ast.RecordInstantiation{Token: tok, Type: nameTok.Lexeme, Fields: fields}, nil
	default:
		return nil, p.errorf("expected '(' or '{' after new %s", nameTok.Lexeme)
	}
}
