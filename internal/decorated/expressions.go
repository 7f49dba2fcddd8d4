package decorated

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// ExpressionVisitor handles every kind of decorated expression. Renderers
// implement it in full, so adding a node kind breaks every renderer at
// compile time until it is handled.
type ExpressionVisitor interface {
	VisitLiteral(e *Literal)
	VisitVariableIdentifier(e *VariableIdentifier)
	VisitNoArgVariant(e *NoArgVariant)
	VisitOneArgVariant(e *OneArgVariant)
	VisitStructConstructor(e *StructConstructor)
	VisitStructWithCopy(e *StructWithCopy)
	VisitStructMemberAccess(e *StructMemberAccess)
	VisitNot(e *Not)
	VisitBinary(e *Binary)
	VisitThrow(e *Throw)
	VisitIfElse(e *IfElse)
	VisitMatch(e *Match)
	VisitFunctionApplication(e *FunctionApplication)
	VisitLambda(e *Lambda)
	VisitTryCatch(e *TryCatch)
	VisitLet(e *Let)
}

type Expression interface {
	Type() typesystem.Type
	Accept(v ExpressionVisitor)
}

type Literal struct {
	Kind         ast.LiteralKind
	Text         string
	ResolvedType typesystem.Type
}

func (e *Literal) Type() typesystem.Type      { return e.ResolvedType }
func (e *Literal) Accept(v ExpressionVisitor) { v.VisitLiteral(e) }

// VariableCategory says what an identifier resolved to.
type VariableCategory int

const (
	Value VariableCategory = iota
	ClassFunctionRef
	ProvidedFunctionRef
)

// VariableIdentifier keeps the generic instantiation it was checked with.
type VariableIdentifier struct {
	Name         string
	Generics     []typesystem.Type
	Category     VariableCategory
	ResolvedType typesystem.Type
}

func (e *VariableIdentifier) Type() typesystem.Type      { return e.ResolvedType }
func (e *VariableIdentifier) Accept(v ExpressionVisitor) { v.VisitVariableIdentifier(e) }

type NoArgVariant struct {
	TypeName     string
	Tag          string
	Generics     []typesystem.Type
	ResolvedType typesystem.Type
}

func (e *NoArgVariant) Type() typesystem.Type      { return e.ResolvedType }
func (e *NoArgVariant) Accept(v ExpressionVisitor) { v.VisitNoArgVariant(e) }

type OneArgVariant struct {
	TypeName     string
	Tag          string
	Generics     []typesystem.Type
	Data         Expression
	ResolvedType typesystem.Type
}

func (e *OneArgVariant) Type() typesystem.Type      { return e.ResolvedType }
func (e *OneArgVariant) Accept(v ExpressionVisitor) { v.VisitOneArgVariant(e) }

type FieldAssignment struct {
	Name  string
	Value Expression
}

type StructConstructor struct {
	TypeName     string
	Generics     []typesystem.Type
	Fields       []FieldAssignment
	ResolvedType typesystem.Type
}

func (e *StructConstructor) Type() typesystem.Type      { return e.ResolvedType }
func (e *StructConstructor) Accept(v ExpressionVisitor) { v.VisitStructConstructor(e) }

type StructWithCopy struct {
	Old          Expression
	Updates      []FieldAssignment
	ResolvedType typesystem.Type
}

func (e *StructWithCopy) Type() typesystem.Type      { return e.ResolvedType }
func (e *StructWithCopy) Accept(v ExpressionVisitor) { v.VisitStructWithCopy(e) }

type StructMemberAccess struct {
	Expr         Expression
	Member       string
	ResolvedType typesystem.Type
}

func (e *StructMemberAccess) Type() typesystem.Type      { return e.ResolvedType }
func (e *StructMemberAccess) Accept(v ExpressionVisitor) { v.VisitStructMemberAccess(e) }

type Not struct {
	Expr Expression
}

func (e *Not) Type() typesystem.Type      { return typesystem.Bool }
func (e *Not) Accept(v ExpressionVisitor) { v.VisitNot(e) }

type Binary struct {
	Operator     ast.BinaryOperator
	Left         Expression
	Right        Expression
	ResolvedType typesystem.Type
}

func (e *Binary) Type() typesystem.Type      { return e.ResolvedType }
func (e *Binary) Accept(v ExpressionVisitor) { v.VisitBinary(e) }

// Throw has whatever type was asked for in throw<T>.
type Throw struct {
	Expr         Expression
	ResolvedType typesystem.Type
}

func (e *Throw) Type() typesystem.Type      { return e.ResolvedType }
func (e *Throw) Accept(v ExpressionVisitor) { v.VisitThrow(e) }

type IfElse struct {
	Condition    Expression
	Then         Expression
	Else         Expression
	ResolvedType typesystem.Type
}

func (e *IfElse) Type() typesystem.Type      { return e.ResolvedType }
func (e *IfElse) Accept(v ExpressionVisitor) { v.VisitIfElse(e) }

type MatchCase struct {
	Pattern Pattern
	Body    Expression
}

type Match struct {
	Expr         Expression
	Cases        []MatchCase
	ResolvedType typesystem.Type
}

func (e *Match) Type() typesystem.Type      { return e.ResolvedType }
func (e *Match) Accept(v ExpressionVisitor) { v.VisitMatch(e) }

// FunctionApplication has the callee's return type, or a function over the
// remaining parameters when fewer arguments than parameters are supplied.
type FunctionApplication struct {
	Function     Expression
	Arguments    []Expression
	ResolvedType typesystem.Type
}

func (e *FunctionApplication) Type() typesystem.Type      { return e.ResolvedType }
func (e *FunctionApplication) Accept(v ExpressionVisitor) { v.VisitFunctionApplication(e) }

// IsPartial reports whether the application supplies fewer arguments than the callee takes.
func (e *FunctionApplication) IsPartial() bool {
	fn, ok := e.Function.Type().(typesystem.TFunc)
	return ok && len(e.Arguments) < len(fn.Params)
}

type Lambda struct {
	Arguments    []Argument
	Body         Expression
	ResolvedType typesystem.Type
}

func (e *Lambda) Type() typesystem.Type      { return e.ResolvedType }
func (e *Lambda) Accept(v ExpressionVisitor) { v.VisitLambda(e) }

type TryCatch struct {
	Try           Expression
	ExceptionName string
	Catch         Expression
	ResolvedType  typesystem.Type
}

func (e *TryCatch) Type() typesystem.Type      { return e.ResolvedType }
func (e *TryCatch) Accept(v ExpressionVisitor) { v.VisitTryCatch(e) }

// Let binds Value to Name while evaluating Body. An empty Name discards Value.
type Let struct {
	Name  string
	Value Expression
	Body  Expression
}

func (e *Let) Type() typesystem.Type      { return e.Body.Type() }
func (e *Let) Accept(v ExpressionVisitor) { v.VisitLet(e) }
