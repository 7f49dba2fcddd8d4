package parser

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// ParseProgram parses exactly one top-level class followed by end of input.
func (p *Parser) ParseProgram() *ast.Program {
	if !p.curTokenIs(token.CLASS) {
		p.errorf(p.curToken, "a program must start with a class declaration")
		return nil
	}
	class := p.parseClass()
	if class == nil {
		return nil
	}
	if !p.expectPeek(token.EOF) {
		return nil
	}
	return &ast.Program{Class: class}
}

// parseClass parses
//
//	class Name<G, ...> ( declaration ) { members }
//
// where the generics, the declaration and the member block are optional.
func (p *Parser) parseClass() *ast.Class {
	class := &ast.Class{Token: p.curToken, Declaration: typesystem.Struct{}}

	if !p.expectPeek(token.IDENT_UPPER) {
		return nil
	}
	class.Identifier.Name = p.curToken.Lexeme

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		generics := p.parseGenericParameters()
		if generics == nil {
			return nil
		}
		class.Identifier.Generics = generics
	}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		decl := p.parseTypeDeclaration()
		if decl == nil {
			return nil
		}
		class.Declaration = decl
	}

	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		members, ok := p.parseClassMembers()
		if !ok {
			return nil
		}
		class.Members = members
	}
	return class
}

// parseGenericParameters parses <A, B> with the current token on '<'.
func (p *Parser) parseGenericParameters() []string {
	var names []string
	for {
		if !p.expectPeek(token.IDENT_UPPER) {
			return nil
		}
		names = append(names, p.curToken.Lexeme)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.GT) {
		return nil
	}
	return names
}

// parseTypeDeclaration parses the parenthesized body of a class, either
// variant tags (| Tag of T | Other) or struct fields (a: A, b: B).
func (p *Parser) parseTypeDeclaration() typesystem.TypeDeclaration {
	switch {
	case p.peekTokenIs(token.RPAREN):
		p.nextToken()
		return typesystem.Struct{}
	case p.peekTokenIs(token.PIPE):
		var variant typesystem.Variant
		for p.peekTokenIs(token.PIPE) {
			p.nextToken() // '|'
			if !p.expectPeek(token.IDENT_UPPER) {
				return nil
			}
			tag := typesystem.Tag{Name: p.curToken.Lexeme}
			if p.peekTokenIs(token.OF) {
				p.nextToken() // 'of'
				p.nextToken()
				tag.Payload = p.parseType()
				if tag.Payload == nil {
					return nil
				}
			}
			variant.Tags = append(variant.Tags, tag)
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return variant
	case p.peekTokenIs(token.IDENT):
		var st typesystem.Struct
		for p.peekTokenIs(token.IDENT) {
			p.nextToken()
			field := typesystem.Field{Name: p.curToken.Lexeme}
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			field.Type = p.parseType()
			if field.Type == nil {
				return nil
			}
			st.Fields = append(st.Fields, field)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return st
	}
	p.peekError(token.PIPE)
	return nil
}

// parseClassMembers parses { member* } with the current token on '{'.
// Consecutive functions form one group.
func (p *Parser) parseClassMembers() ([]ast.ClassMember, bool) {
	var members []ast.ClassMember
	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		if p.curTokenIs(token.EOF) {
			p.peekError(token.RBRACE)
			return nil, false
		}

		isPublic := true
		if p.curTokenIs(token.PRIVATE) {
			isPublic = false
			p.nextToken()
		}

		switch p.curToken.Type {
		case token.VAL, token.LET:
			constant := p.parseConstant(isPublic)
			if constant == nil {
				return nil, false
			}
			members = append(members, constant)
		case token.FUN:
			fn := p.parseFunction(isPublic)
			if fn == nil {
				return nil, false
			}
			if n := len(members); n > 0 {
				if group, ok := members[n-1].(*ast.FunctionGroup); ok {
					group.Functions = append(group.Functions, fn)
					continue
				}
			}
			members = append(members, &ast.FunctionGroup{Functions: []*ast.Function{fn}})
		case token.CLASS:
			if !isPublic {
				p.errorf(p.curToken, "classes cannot be private")
				return nil, false
			}
			class := p.parseClass()
			if class == nil {
				return nil, false
			}
			members = append(members, class)
		default:
			p.errorf(p.curToken, "expected a class member, got '%s'", p.curToken.Lexeme)
			return nil, false
		}
	}
	p.nextToken() // '}'
	return members, true
}

// parseConstant parses val name = expr with the current token on 'val'.
func (p *Parser) parseConstant(isPublic bool) *ast.Constant {
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	constant := &ast.Constant{Token: p.curToken, IsPublic: isPublic, Name: p.curToken.Lexeme}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	constant.Value = p.parseExpression(LOWEST)
	if constant.Value == nil {
		return nil
	}
	return constant
}

// parseFunction parses
//
//	fun <G> name(a: A, ...)(b: B, ...): R = body
//
// flattening curried parameter groups into one argument list.
func (p *Parser) parseFunction(isPublic bool) *ast.Function {
	fn := &ast.Function{IsPublic: isPublic}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		generics := p.parseGenericParameters()
		if generics == nil {
			return nil
		}
		fn.Generics = generics
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Token = p.curToken
	fn.Name = p.curToken.Lexeme

	if !p.peekTokenIs(token.LPAREN) {
		p.peekError(token.LPAREN)
		return nil
	}
	for p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		args, ok := p.parseArguments()
		if !ok {
			return nil
		}
		fn.Arguments = append(fn.Arguments, args...)
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	fn.ReturnType = p.parseType()
	if fn.ReturnType == nil {
		return nil
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	fn.Body = p.parseExpression(LOWEST)
	if fn.Body == nil {
		return nil
	}
	return fn
}

// parseArguments parses (a: A, b: B) with the current token on '('.
func (p *Parser) parseArguments() ([]ast.Argument, bool) {
	var args []ast.Argument
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return nil, true
	}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		arg := ast.Argument{Token: p.curToken, Name: p.curToken.Lexeme}
		if !p.expectPeek(token.COLON) {
			return nil, false
		}
		p.nextToken()
		arg.Type = p.parseType()
		if arg.Type == nil {
			return nil, false
		}
		args = append(args, arg)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return args, true
}
