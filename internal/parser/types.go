package parser

import (
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// parseType parses a type expression starting at the current token:
//
//	Name | Name<T, ...> | (T, ...) -> R | (T)
func (p *Parser) parseType() typesystem.Type {
	switch p.curToken.Type {
	case token.IDENT_UPPER:
		con := typesystem.TCon{Name: p.curToken.Lexeme}
		if p.peekTokenIs(token.LT) {
			p.nextToken()
			args := p.parseTypeArguments()
			if args == nil {
				return nil
			}
			con.Args = args
		}
		return con
	case token.LPAREN:
		var params []typesystem.Type
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
		} else {
			p.nextToken()
			params = p.parseTypeList(token.RPAREN)
			if params == nil {
				return nil
			}
		}
		if p.peekTokenIs(token.ARROW) {
			p.nextToken() // '->'
			p.nextToken()
			ret := p.parseType()
			if ret == nil {
				return nil
			}
			return typesystem.TFunc{Params: params, ReturnType: ret}
		}
		if len(params) != 1 {
			p.peekError(token.ARROW)
			return nil
		}
		return params[0]
	}
	p.errorf(p.curToken, "expected a type, got '%s'", p.curToken.Lexeme)
	return nil
}

// parseTypeArguments parses <T, ...> with the current token on '<'.
func (p *Parser) parseTypeArguments() []typesystem.Type {
	p.nextToken()
	return p.parseTypeList(token.GT)
}

// parseTypeList parses comma separated types, the first one starting at the
// current token, and consumes the closing token.
func (p *Parser) parseTypeList(closing token.TokenType) []typesystem.Type {
	var types []typesystem.Type
	for {
		t := p.parseType()
		if t == nil {
			return nil
		}
		types = append(types, t)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // ','
		p.nextToken()
	}
	if !p.expectPeek(closing) {
		return nil
	}
	return types
}
