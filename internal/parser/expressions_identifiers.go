package parser

import (
	"strings"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// parseIdentifier parses a value or function name, optionally instantiated:
// x, id<Int>
func (p *Parser) parseIdentifier() ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}
	ident.Generics = p.parseOptionalTypeArguments()
	return ident
}

// parseOptionalTypeArguments reads <T, ...> after a name when it forms a
// valid type argument list. Otherwise the '<' is left for the comparison
// operator and nil is returned.
func (p *Parser) parseOptionalTypeArguments() []typesystem.Type {
	if !p.peekTokenIs(token.LT) {
		return nil
	}
	var args []typesystem.Type
	p.speculate(func() bool {
		p.nextToken() // '<'
		args = p.parseTypeArguments()
		return args != nil
	})
	return args
}

// parseUpperIdentifier handles everything that starts with a type or class
// name:
//
//	Math.Inner.add<Int>       qualified function or value
//	Option.Some<Int>(e)       variant with payload
//	Option.None<Int>          variant without payload
//	Pair<Int, String> { ... } struct constructor
func (p *Parser) parseUpperIdentifier() ast.Expression {
	start := p.curToken
	segments := []string{start.Lexeme}
	for p.peekTokenIs(token.DOT) && p.peekTokenN(2).Type == token.IDENT_UPPER {
		p.nextToken() // '.'
		p.nextToken()
		segments = append(segments, p.curToken.Lexeme)
	}

	if p.peekTokenIs(token.DOT) && p.peekTokenN(2).Type == token.IDENT {
		p.nextToken() // '.'
		p.nextToken()
		ident := &ast.Identifier{
			Token: start,
			Name:  strings.Join(segments, ".") + "." + p.curToken.Lexeme,
		}
		ident.Generics = p.parseOptionalTypeArguments()
		return ident
	}

	switch len(segments) {
	case 1:
		return p.parseStructConstructor(start)
	case 2:
		return p.parseVariantConstructor(start, segments[0], segments[1])
	}
	p.errorf(start, "'%s' is neither a variant constructor nor a qualified name", strings.Join(segments, "."))
	return nil
}
