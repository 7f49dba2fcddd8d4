package ast

import "github.com/sampl-lang/sampl/internal/token"

type Pattern interface {
	Node
	patternNode()
}

// VariantPattern matches one tag and optionally binds its payload: Some v
type VariantPattern struct {
	Token    token.Token
	Tag      string
	Variable string // "" when nothing is bound
}

func (p *VariantPattern) patternNode()          {}
func (p *VariantPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *VariantPattern) GetToken() token.Token { return p.Token }

// VariablePattern binds the whole scrutinee.
type VariablePattern struct {
	Token token.Token
	Name  string
}

func (p *VariablePattern) patternNode()          {}
func (p *VariablePattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *VariablePattern) GetToken() token.Token { return p.Token }

// WildcardPattern matches anything and binds nothing.
type WildcardPattern struct {
	Token token.Token
}

func (p *WildcardPattern) patternNode()          {}
func (p *WildcardPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *WildcardPattern) GetToken() token.Token { return p.Token }
