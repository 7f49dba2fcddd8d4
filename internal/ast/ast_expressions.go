package ast

import (
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

type LiteralKind int

const (
	UnitLiteral LiteralKind = iota
	IntLiteral
	FloatLiteral
	BoolLiteral
	CharLiteral
	StringLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case UnitLiteral:
		return "Unit"
	case IntLiteral:
		return "Int"
	case FloatLiteral:
		return "Float"
	case BoolLiteral:
		return "Bool"
	case CharLiteral:
		return "Char"
	case StringLiteral:
		return "String"
	}
	return "unknown"
}

// Literal keeps the claimed kind and the source text; Char and String text
// is the content between the quotes with escapes left in place.
type Literal struct {
	Token token.Token
	Kind  LiteralKind
	Text  string
}

func (l *Literal) expressionNode()       {}
func (l *Literal) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Literal) GetToken() token.Token { return l.Token }

// Identifier refers to a value or function, optionally qualified by class
// names (Math.add) and instantiated with generics (id<Int>).
type Identifier struct {
	Token    token.Token
	Name     string
	Generics []typesystem.Type
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// NoArgVariant constructs a tag without payload: Option.None<Int>
type NoArgVariant struct {
	Token    token.Token
	TypeName string
	Generics []typesystem.Type
	Tag      string
}

func (n *NoArgVariant) expressionNode()       {}
func (n *NoArgVariant) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NoArgVariant) GetToken() token.Token { return n.Token }

// OneArgVariant constructs a tag with payload: Option.Some(1)
type OneArgVariant struct {
	Token    token.Token
	TypeName string
	Generics []typesystem.Type
	Tag      string
	Data     Expression
}

func (o *OneArgVariant) expressionNode()       {}
func (o *OneArgVariant) TokenLiteral() string  { return o.Token.Lexeme }
func (o *OneArgVariant) GetToken() token.Token { return o.Token }

type FieldAssignment struct {
	Token token.Token
	Name  string
	Value Expression
}

// StructConstructor: Pair { a = 1; b = "s"; }
type StructConstructor struct {
	Token    token.Token
	TypeName string
	Generics []typesystem.Type
	Fields   []FieldAssignment
}

func (s *StructConstructor) expressionNode()       {}
func (s *StructConstructor) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StructConstructor) GetToken() token.Token { return s.Token }

// StructWithCopy: { p with a = 2 }
type StructWithCopy struct {
	Token   token.Token
	Old     Expression
	Updates []FieldAssignment
}

func (s *StructWithCopy) expressionNode()       {}
func (s *StructWithCopy) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StructWithCopy) GetToken() token.Token { return s.Token }

// MemberAccess: p.a
type MemberAccess struct {
	Token  token.Token // The '.' token
	Expr   Expression
	Member string
}

func (m *MemberAccess) expressionNode()       {}
func (m *MemberAccess) TokenLiteral() string  { return m.Token.Lexeme }
func (m *MemberAccess) GetToken() token.Token { return m.Token }

type Not struct {
	Token token.Token // The '!' token
	Expr  Expression
}

func (n *Not) expressionNode()       {}
func (n *Not) TokenLiteral() string  { return n.Token.Lexeme }
func (n *Not) GetToken() token.Token { return n.Token }

type Binary struct {
	Token    token.Token // The operator token
	Operator BinaryOperator
	Left     Expression
	Right    Expression
}

func (b *Binary) expressionNode()       {}
func (b *Binary) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Binary) GetToken() token.Token { return b.Token }

// Throw: throw<Int> "message"
type Throw struct {
	Token token.Token
	Type  typesystem.Type
	Expr  Expression
}

func (t *Throw) expressionNode()       {}
func (t *Throw) TokenLiteral() string  { return t.Token.Lexeme }
func (t *Throw) GetToken() token.Token { return t.Token }

type IfElse struct {
	Token     token.Token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (i *IfElse) expressionNode()       {}
func (i *IfElse) TokenLiteral() string  { return i.Token.Lexeme }
func (i *IfElse) GetToken() token.Token { return i.Token }

type MatchCase struct {
	Pattern Pattern
	Body    Expression
}

type Match struct {
	Token token.Token
	Expr  Expression
	Cases []MatchCase
}

func (m *Match) expressionNode()       {}
func (m *Match) TokenLiteral() string  { return m.Token.Lexeme }
func (m *Match) GetToken() token.Token { return m.Token }

// Application: f(a, b)
type Application struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (a *Application) expressionNode()       {}
func (a *Application) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Application) GetToken() token.Token { return a.Token }

// Lambda: { (a: Int) -> a + 1 }
type Lambda struct {
	Token     token.Token
	Arguments []Argument
	Body      Expression
}

func (l *Lambda) expressionNode()       {}
func (l *Lambda) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Lambda) GetToken() token.Token { return l.Token }

// TryCatch: try ( e ) catch err ( handler )
type TryCatch struct {
	Token         token.Token
	Try           Expression
	ExceptionName string
	Catch         Expression
}

func (t *TryCatch) expressionNode()       {}
func (t *TryCatch) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TryCatch) GetToken() token.Token { return t.Token }

// Let: val x = e; body. An empty Name is the anonymous binding `val _`.
type Let struct {
	Token token.Token
	Name  string
	Value Expression
	Body  Expression
}

func (l *Let) expressionNode()       {}
func (l *Let) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Let) GetToken() token.Token { return l.Token }
