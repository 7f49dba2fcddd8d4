package parser

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/token"
)

func (p *Parser) parseVariantConstructor(start token.Token, typeName, tag string) ast.Expression {
	generics := p.parseOptionalTypeArguments()
	if !p.peekTokenIs(token.LPAREN) {
		return &ast.NoArgVariant{Token: start, TypeName: typeName, Generics: generics, Tag: tag}
	}
	p.nextToken() // '('
	p.nextToken()
	data := p.parseExpression(LOWEST)
	if data == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.OneArgVariant{Token: start, TypeName: typeName, Generics: generics, Tag: tag, Data: data}
}

// parseStructConstructor parses Name<T> { f = e; ... } with the current
// token on the type name.
func (p *Parser) parseStructConstructor(start token.Token) ast.Expression {
	ctor := &ast.StructConstructor{Token: start, TypeName: start.Lexeme}
	ctor.Generics = p.parseOptionalTypeArguments()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fields, ok := p.parseFieldAssignments(true)
	if !ok {
		return nil
	}
	ctor.Fields = fields
	return ctor
}

// parseFieldAssignments parses f = e; g = e; up to and including the closing
// brace. The separator after the last assignment is optional. An empty list
// is allowed only when allowEmpty is set.
func (p *Parser) parseFieldAssignments(allowEmpty bool) ([]ast.FieldAssignment, bool) {
	var fields []ast.FieldAssignment
	for !p.peekTokenIs(token.RBRACE) {
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		field := ast.FieldAssignment{Token: p.curToken, Name: p.curToken.Lexeme}
		if !p.expectPeek(token.ASSIGN) {
			return nil, false
		}
		p.nextToken()
		field.Value = p.parseExpression(LOWEST)
		if field.Value == nil {
			return nil, false
		}
		fields = append(fields, field)
		if !p.peekTokenIs(token.SEMICOLON) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil, false
	}
	if len(fields) == 0 && !allowEmpty {
		p.errorf(p.curToken, "expected at least one field update")
		return nil, false
	}
	return fields, true
}

// parseBraceExpression parses either a lambda { (a: A) -> body } or a copy
// { old with f = e; ... }, telling them apart by trying the lambda header.
func (p *Parser) parseBraceExpression() ast.Expression {
	start := p.curToken

	if p.peekTokenIs(token.LPAREN) {
		var args []ast.Argument
		isLambda := p.speculate(func() bool {
			p.nextToken() // '('
			var ok bool
			args, ok = p.parseArguments()
			return ok && p.expectPeek(token.ARROW)
		})
		if isLambda {
			return p.parseLambdaBody(start, args)
		}
	}

	p.nextToken()
	old := p.parseExpression(LOWEST)
	if old == nil {
		return nil
	}
	if !p.expectPeek(token.WITH) {
		return nil
	}
	updates, ok := p.parseFieldAssignments(false)
	if !ok {
		return nil
	}
	return &ast.StructWithCopy{Token: start, Old: old, Updates: updates}
}
