package ast

import (
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenProvider
	TokenLiteral() string
}

// ClassMember is a Node that can appear in a class body.
type ClassMember interface {
	Node
	memberNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST our parser produces:
// exactly one top-level class.
type Program struct {
	File  string // Source file path
	Class *Class
}

func (p *Program) TokenLiteral() string {
	if p.Class == nil {
		return ""
	}
	return p.Class.TokenLiteral()
}

// Class is a (possibly nested) class with its type declaration and members.
// class Pair<A, B>(a: A, b: B) { ... }
type Class struct {
	Token       token.Token // The 'class' token
	Identifier  typesystem.TypeIdentifier
	Declaration typesystem.TypeDeclaration // never nil; empty struct when absent
	Members     []ClassMember
}

func (c *Class) memberNode()           {}
func (c *Class) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Class) GetToken() token.Token { return c.Token }

// Constant is a class-level value binding.
// private val x = 1
type Constant struct {
	Token    token.Token // The identifier token
	IsPublic bool
	Name     string
	Value    Expression
}

func (c *Constant) memberNode()           {}
func (c *Constant) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Constant) GetToken() token.Token { return c.Token }

// Argument is a named, typed parameter of a function or lambda.
type Argument struct {
	Token token.Token
	Name  string
	Type  typesystem.Type
}

// Function is a named class function. Curried parameter groups are flattened.
// fun <A> id(a: A): A = a
type Function struct {
	Token      token.Token // The identifier token
	IsPublic   bool
	Name       string
	Generics   []string
	Arguments  []Argument
	ReturnType typesystem.Type
	Body       Expression
}

func (f *Function) TokenLiteral() string  { return f.Token.Lexeme }
func (f *Function) GetToken() token.Token { return f.Token }

// Type of the function's signature.
func (f *Function) Type() typesystem.TFunc {
	var params []typesystem.Type
	for _, a := range f.Arguments {
		params = append(params, a.Type)
	}
	return typesystem.TFunc{Params: params, ReturnType: f.ReturnType}
}

// FunctionGroup holds consecutive functions that may refer to each other.
type FunctionGroup struct {
	Functions []*Function
}

func (fg *FunctionGroup) memberNode() {}
func (fg *FunctionGroup) TokenLiteral() string {
	if len(fg.Functions) == 0 {
		return ""
	}
	return fg.Functions[0].TokenLiteral()
}
func (fg *FunctionGroup) GetToken() token.Token {
	if len(fg.Functions) == 0 {
		return token.Token{}
	}
	return fg.Functions[0].Token
}
