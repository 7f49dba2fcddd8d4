package parser

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP003,
			p.curToken,
			"expression too complex: recursion depth limit exceeded",
		))
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

// parseInfixExpression parses a left associative binary operator.
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	op := binaryOperators[p.curToken.Type]
	expression := &ast.Binary{
		Token:    p.curToken,
		Operator: op,
		Left:     left,
	}
	p.nextToken()
	expression.Right = p.parseExpression(op.Precedence())
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseNotExpression() ast.Expression {
	expression := &ast.Not{Token: p.curToken}
	p.nextToken()
	expression.Expr = p.parseExpression(PREFIX)
	if expression.Expr == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	if p.peekTokenIs(token.RPAREN) {
		lit := &ast.Literal{Token: p.curToken, Kind: ast.UnitLiteral, Text: "()"}
		p.nextToken()
		return lit
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

// parseCallExpression parses f(a, b) with the current token on '('.
func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.Application{Token: p.curToken, Function: function}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return exp
	}
	for {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		exp.Arguments = append(exp.Arguments, arg)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// parseMemberAccess parses expr.field with the current token on '.'.
func (p *Parser) parseMemberAccess(left ast.Expression) ast.Expression {
	exp := &ast.MemberAccess{Token: p.curToken, Expr: left}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	exp.Member = p.curToken.Lexeme
	return exp
}
