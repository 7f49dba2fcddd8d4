package decorated

import (
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// MemberVisitor handles every kind of class member.
type MemberVisitor interface {
	VisitClass(c *Class)
	VisitConstant(c *Constant)
	VisitFunctionGroup(g *FunctionGroup)
}

type ClassMember interface {
	Accept(v MemberVisitor)
	memberNode()
}

// Program is a type checked module: one root class.
type Program struct {
	Class *Class
}

type Class struct {
	Identifier  typesystem.TypeIdentifier
	Declaration typesystem.TypeDeclaration
	Members     []ClassMember
}

func (c *Class) Accept(v MemberVisitor) { v.VisitClass(c) }
func (c *Class) memberNode()            {}

type Constant struct {
	IsPublic bool
	Name     string
	Value    Expression
	Type     typesystem.Type
}

func (c *Constant) Accept(v MemberVisitor) { v.VisitConstant(c) }
func (c *Constant) memberNode()            {}

type Argument struct {
	Name string
	Type typesystem.Type
}

// ClassFunction is a named function declared in a class body.
type ClassFunction struct {
	Category   symbols.FunctionCategory
	IsPublic   bool
	Name       string
	Generics   []string
	Arguments  []Argument
	ReturnType typesystem.Type
	Body       Expression
}

// Type of the function's signature.
func (f *ClassFunction) Type() typesystem.TFunc {
	var params []typesystem.Type
	for _, a := range f.Arguments {
		params = append(params, a.Type)
	}
	return typesystem.TFunc{Params: params, ReturnType: f.ReturnType}
}

type FunctionGroup struct {
	Functions []*ClassFunction
}

func (g *FunctionGroup) Accept(v MemberVisitor) { v.VisitFunctionGroup(g) }
func (g *FunctionGroup) memberNode()            {}

// PublicMembers lists the names of the public constants and functions of a class.
func (c *Class) PublicMembers() []string {
	var names []string
	for _, m := range c.Members {
		switch m := m.(type) {
		case *Constant:
			if m.IsPublic {
				names = append(names, m.Name)
			}
		case *FunctionGroup:
			for _, f := range m.Functions {
				if f.IsPublic {
					names = append(names, f.Name)
				}
			}
		}
	}
	return names
}
