package parser

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/token"
)

// parseLiteral keeps the literal text as written; the analyzer decides
// whether it is a valid value of its kind.
func (p *Parser) parseLiteral() ast.Expression {
	lit := &ast.Literal{Token: p.curToken, Text: p.curToken.Lexeme}
	switch p.curToken.Type {
	case token.INT:
		lit.Kind = ast.IntLiteral
	case token.FLOAT:
		lit.Kind = ast.FloatLiteral
	case token.TRUE, token.FALSE:
		lit.Kind = ast.BoolLiteral
	case token.CHAR:
		lit.Kind = ast.CharLiteral
		lit.Text, _ = p.curToken.Literal.(string)
	case token.STRING:
		lit.Kind = ast.StringLiteral
		lit.Text, _ = p.curToken.Literal.(string)
	}
	return lit
}
