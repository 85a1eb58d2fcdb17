package parser

import (
	"strconv"
	"strings"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/token"
)

// parseTypeName reconstructs a (possibly generic) type annotation
// textually, per spec §4.2: "Generic type annotations... are parsed as
// type-name strings — the parser reconstructs them textually."
func (p *Parser) parseTypeName() (string, error) {
	var nameTok token.Token
	// Built-ins like Result/Error are keywords, not IDENT.
	if p.cur.Kind == token.RESULT || p.cur.Kind == token.ERROR {
		nameTok = p.cur
		p.next()
	} else {
		var err error
		nameTok, err = p.expect(token.IDENT)
		if err != nil {
			return "", err
		}
	}
	var sb strings.Builder
	sb.WriteString(nameTok.Lexeme)
	if p.curIs(token.LT) {
		p.next()
		sb.WriteString("<")
		first := true
		for !p.curIs(token.GT) {
			if !first {
				if _, err := p.expect(token.COMMA); err != nil {
					return "", err
				}
				sb.WriteString(", ")
			}
			first = false
			arg, err := p.parseTypeName()
			if err != nil {
				return "", err
			}
			sb.WriteString(arg)
		}
		if _, err := p.expect(token.GT); err != nil {
			return "", err
		}
		sb.WriteString(">")
	}
	return sb.String(), nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.curIs(token.RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
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
		params = append(params, ast.Param{Name: nameTok.Lexeme, Type: typ})
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseObjectDeclaration() (*ast.ObjectDeclaration, error) {
	tok := p.cur
	p.next() // 'Object'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.ObjectDeclaration{Token: tok, Name: nameTok.Lexeme}

	if p.curIs(token.COLON) {
		p.next()
		for {
			protoTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			decl.Protocols = append(decl.Protocols, protoTok.Lexeme)
			if !p.curIs(token.COMMA) {
				break
			}
			p.next()
		}
	}

	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	for !p.curIs(token.RBRACE) {
		switch {
		case p.curIs(token.PROPERTY):
			prop, err := p.parsePropertyDeclaration()
			if err != nil {
				return nil, err
			}
			decl.Properties = append(decl.Properties, prop)
		case p.curIs(token.CONSTRUCTOR):
			ctor, err := p.parseConstructorDeclaration()
			if err != nil {
				return nil, err
			}
			decl.Constructors = append(decl.Constructors, ctor)
		case p.curIs(token.AT_EXTERNAL) || p.curIs(token.METHOD):
			method, err := p.parseMethodDeclaration()
			if err != nil {
				return nil, err
			}
			decl.Methods = append(decl.Methods, method)
		default:
			return nil, p.errorf("expected property, constructor, or method declaration inside Object %s, got %s", decl.Name, p.cur.Kind)
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parsePropertyDeclaration() (*ast.PropertyDeclaration, error) {
	tok := p.cur
	p.next() // 'property'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	prop := &ast.PropertyDeclaration{Token: tok, Name: nameTok.Lexeme}
	if p.curIs(token.COLON) {
		p.next()
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		prop.DeclaredType = typ
	}
	if p.curIs(token.ASSIGN) {
		p.next()
		val, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		prop.Initializer = val
	}
	return prop, nil
}

func (p *Parser) parseConstructorDeclaration() (*ast.ConstructorDeclaration, error) {
	tok := p.cur
	p.next() // 'constructor'
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ConstructorDeclaration{Token: tok, Params: params, Body: body}, nil
}

func (p *Parser) parseMethodDeclaration() (*ast.MethodDeclaration, error) {
	tok := p.cur
	external := false
	if p.curIs(token.AT_EXTERNAL) {
		external = true
		p.next()
		tok = p.cur
	}
	if _, err := p.expect(token.METHOD); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	var retType string
	if p.curIs(token.COLON) {
		p.next()
		retType, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.MethodDeclaration{
		Token: tok, Name: nameTok.Lexeme, External: external,
		Params: params, ReturnType: retType, Body: body,
	}, nil
}

func (p *Parser) parseEnumDeclaration() (*ast.EnumDeclaration, error) {
	tok := p.cur
	p.next() // 'Enum'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	decl := &ast.EnumDeclaration{Token: tok, Name: nameTok.Lexeme}
	next := int32(0)
	for !p.curIs(token.RBRACE) {
		memberTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		val := next
		if p.curIs(token.ASSIGN) {
			p.next()
			numTok, err := p.expect(token.INT)
			if err != nil {
				return nil, err
			}
			n, convErr := strconv.ParseInt(numTok.Lexeme, 10, 32)
			if convErr != nil {
				return nil, p.errorf("invalid enum value %q", numTok.Lexeme)
			}
			val = int32(n)
		}
		decl.Members = append(decl.Members, ast.EnumMember{Name: memberTok.Lexeme, Value: val})
		next = val + 1
		p.skipNewlines()
		if p.curIs(token.COMMA) {
			p.next()
			p.skipNewlines()
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseRecordDeclaration() (*ast.RecordDeclaration, error) {
	tok := p.cur
	p.next() // 'Record'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	decl := &ast.RecordDeclaration{Token: tok, Name: nameTok.Lexeme}
	for !p.curIs(token.RBRACE) {
		fieldTok, err := p.expect(token.IDENT)
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
		decl.Fields = append(decl.Fields, ast.RecordField{Name: fieldTok.Lexeme, Type: typ})
		p.skipNewlines()
		if p.curIs(token.COMMA) {
			p.next()
			p.skipNewlines()
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseProtocolDeclaration() (*ast.ProtocolDeclaration, error) {
	tok := p.cur
	p.next() // 'Protocol'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	decl := &ast.ProtocolDeclaration{Token: tok, Name: nameTok.Lexeme}
	for !p.curIs(token.RBRACE) {
		if _, err := p.expect(token.METHOD); err != nil {
			return nil, err
		}
		methodName, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		var retType string
		if p.curIs(token.COLON) {
			p.next()
			retType, err = p.parseTypeName()
			if err != nil {
				return nil, err
			}
		}
		decl.Signatures = append(decl.Signatures, ast.ProtocolSignature{
			Name: methodName.Lexeme, Params: params, ReturnType: retType,
		})
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseNamespace() (*ast.Namespace, error) {
	tok := p.cur
	p.next() // 'namespace'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	ns := &ast.Namespace{Token: tok, Name: nameTok.Lexeme}
	for !p.curIs(token.RBRACE) {
		decl, err := p.parseTopLevelDecl()
		if err != nil {
			return nil, err
		}
		ns.Declarations = append(ns.Declarations, decl)
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return ns, nil
}

func (p *Parser) parseImport() (*ast.Import, error) {
	tok := p.cur
	isUser := p.curIs(token.AT_IMPORT)
	p.next() // 'import' or '@import'

	imp := &ast.Import{Token: tok, IsUser: isUser}
	for {
		partTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		imp.Path = append(imp.Path, partTok.Lexeme)
		if p.curIs(token.DOT) {
			p.next()
			if p.curIs(token.STAR) {
				p.next()
				imp.All = true
				break
			}
			continue
		}
		break
	}
	return imp, nil
}
