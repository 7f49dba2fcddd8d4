package parser

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/token"
)

// parseLambdaBody continues a lambda after its header, with the current
// token on '->'.
func (p *Parser) parseLambdaBody(start token.Token, args []ast.Argument) ast.Expression {
	lambda := &ast.Lambda{Token: start, Arguments: args}
	p.nextToken()
	lambda.Body = p.parseExpression(LOWEST)
	if lambda.Body == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return lambda
}

// parseLetExpression parses val x = e; body (or val _ = e; body).
func (p *Parser) parseLetExpression() ast.Expression {
	p.nextToken()
	let := &ast.Let{Token: p.curToken}
	switch p.curToken.Type {
	case token.IDENT:
		let.Name = p.curToken.Lexeme
	case token.UNDERSCORE:
	default:
		p.errorf(p.curToken, "expected a name or '_' after val, got '%s'", p.curToken.Lexeme)
		return nil
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	let.Value = p.parseExpression(LOWEST)
	if let.Value == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	p.nextToken()
	let.Body = p.parseExpression(LOWEST)
	if let.Body == nil {
		return nil
	}
	return let
}
