package parser

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/token"
)

// parseParenthesized parses ( e ) with '(' as the peek token.
func (p *Parser) parseParenthesized() ast.Expression {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// parseIfExpression parses if (c) then ( e1 ) else ( e2 ).
func (p *Parser) parseIfExpression() ast.Expression {
	expression := &ast.IfElse{Token: p.curToken}
	if expression.Condition = p.parseParenthesized(); expression.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.THEN) {
		return nil
	}
	if expression.Then = p.parseParenthesized(); expression.Then == nil {
		return nil
	}
	if !p.expectPeek(token.ELSE) {
		return nil
	}
	if expression.Else = p.parseParenthesized(); expression.Else == nil {
		return nil
	}
	return expression
}

// parseTryCatchExpression parses try ( e ) catch id ( handler ).
func (p *Parser) parseTryCatchExpression() ast.Expression {
	expression := &ast.TryCatch{Token: p.curToken}
	if expression.Try = p.parseParenthesized(); expression.Try == nil {
		return nil
	}
	if !p.expectPeek(token.CATCH) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expression.ExceptionName = p.curToken.Lexeme
	if expression.Catch = p.parseParenthesized(); expression.Catch == nil {
		return nil
	}
	return expression
}

// parseThrowExpression parses throw<T> e.
func (p *Parser) parseThrowExpression() ast.Expression {
	expression := &ast.Throw{Token: p.curToken}
	if !p.expectPeek(token.LT) {
		return nil
	}
	p.nextToken()
	if expression.Type = p.parseType(); expression.Type == nil {
		return nil
	}
	if !p.expectPeek(token.GT) {
		return nil
	}
	p.nextToken()
	if expression.Expr = p.parseExpression(LOWEST); expression.Expr == nil {
		return nil
	}
	return expression
}

// parseMatchExpression parses match e with | P -> e ...
func (p *Parser) parseMatchExpression() ast.Expression {
	expression := &ast.Match{Token: p.curToken}
	p.nextToken()
	if expression.Expr = p.parseExpression(LOWEST); expression.Expr == nil {
		return nil
	}
	if !p.expectPeek(token.WITH) {
		return nil
	}
	if !p.peekTokenIs(token.PIPE) {
		p.peekError(token.PIPE)
		return nil
	}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken() // '|'
		p.nextToken()
		pattern := p.parsePattern()
		if pattern == nil {
			return nil
		}
		if !p.expectPeek(token.ARROW) {
			return nil
		}
		p.nextToken()
		body := p.parseExpression(LOWEST)
		if body == nil {
			return nil
		}
		expression.Cases = append(expression.Cases, ast.MatchCase{Pattern: pattern, Body: body})
	}
	return expression
}

// parsePattern parses Tag, Tag v, Tag _, v or _.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.IDENT_UPPER:
		pattern := &ast.VariantPattern{Token: p.curToken, Tag: p.curToken.Lexeme}
		if p.peekTokenIs(token.IDENT) {
			p.nextToken()
			pattern.Variable = p.curToken.Lexeme
		} else if p.peekTokenIs(token.UNDERSCORE) {
			p.nextToken()
		}
		return pattern
	case token.IDENT:
		return &ast.VariablePattern{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.UNDERSCORE:
		return &ast.WildcardPattern{Token: p.curToken}
	}
	p.errorf(p.curToken, "expected a pattern, got '%s'", p.curToken.Lexeme)
	return nil
}
