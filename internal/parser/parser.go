package parser

import (
	"fmt"
	"strings"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/token"
)

// Precedences of the constructs the Pratt loop handles; binary operators
// take theirs from ast.BinaryOperator.Precedence.
const (
	LOWEST = 0
	PREFIX = 10 // !x
	CALL   = 11 // f(x), x.field
)

// MaxRecursionDepth bounds expression nesting.
const MaxRecursionDepth = 500

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a Pratt parser over a fully lexed token slice. Holding every
// token allows arbitrary lookahead and backtracking.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.DiagnosticError
	depth  int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	p := &Parser{tokens: tokens}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.INT, p.parseLiteral)
	p.registerPrefix(token.FLOAT, p.parseLiteral)
	p.registerPrefix(token.CHAR, p.parseLiteral)
	p.registerPrefix(token.STRING, p.parseLiteral)
	p.registerPrefix(token.TRUE, p.parseLiteral)
	p.registerPrefix(token.FALSE, p.parseLiteral)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.IDENT_UPPER, p.parseUpperIdentifier)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACE, p.parseBraceExpression)
	p.registerPrefix(token.BANG, p.parseNotExpression)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.TRY, p.parseTryCatchExpression)
	p.registerPrefix(token.MATCH, p.parseMatchExpression)
	p.registerPrefix(token.THROW, p.parseThrowExpression)
	p.registerPrefix(token.VAL, p.parseLetExpression)
	p.registerPrefix(token.LET, p.parseLetExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for tt := range binaryOperators {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseMemberAccess)

	p.pos = -1
	p.nextToken()
	return p
}

var binaryOperators = map[token.TokenType]ast.BinaryOperator{
	token.ASTERISK: ast.MUL,
	token.SLASH:    ast.DIV,
	token.PERCENT:  ast.MOD,
	token.PLUS:     ast.PLUS,
	token.MINUS:    ast.MINUS,
	token.CARET:    ast.STR_CONCAT,
	token.LT:       ast.LT,
	token.LTE:      ast.LE,
	token.GT:       ast.GT,
	token.GTE:      ast.GE,
	token.EQ:       ast.STRUCT_EQ,
	token.NOT_EQ:   ast.STRUCT_NE,
	token.AND:      ast.AND,
	token.OR:       ast.OR,
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// Errors returns the errors recorded so far.
func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curToken = p.tokens[p.pos]
	p.peekToken = p.tokenAt(p.pos + 1)
}

func (p *Parser) tokenAt(i int) token.Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// peekTokenN returns the token n positions after the current one.
func (p *Parser) peekTokenN(n int) token.Token {
	return p.tokenAt(p.pos + n)
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errors = append(p.errors, diagnostics.NewError(
		diagnostics.ErrP001,
		p.peekToken,
		describe(t),
		p.peekToken.Lexeme,
	))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP002, tok, tok.Lexeme))
}

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP003, tok, fmt.Sprintf(format, args...)))
}

// speculate runs attempt and rewinds the parser, discarding any errors it
// recorded, when attempt reports failure.
func (p *Parser) speculate(attempt func() bool) bool {
	savedPos := p.pos
	savedErrors := len(p.errors)
	if attempt() && len(p.errors) == savedErrors {
		return true
	}
	p.pos = savedPos
	p.curToken = p.tokens[p.pos]
	p.peekToken = p.tokenAt(p.pos + 1)
	p.errors = p.errors[:savedErrors]
	return false
}

func (p *Parser) peekPrecedence() int {
	if op, ok := binaryOperators[p.peekToken.Type]; ok {
		return op.Precedence()
	}
	switch p.peekToken.Type {
	case token.LPAREN, token.DOT:
		return CALL
	}
	return LOWEST
}

func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.IDENT_UPPER:
		return "type name"
	case token.EOF:
		return "end of input"
	}
	return "'" + strings.ToLower(string(t)) + "'"
}
