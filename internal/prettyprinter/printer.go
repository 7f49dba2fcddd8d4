package prettyprinter

import (
	"strings"

	"github.com/sampl-lang/sampl/internal/codegen"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// Printer renders a decorated tree as canonical source. Re-parsing and
// re-checking its output yields the tree it was given.
type Printer struct {
	q *codegen.IndentationQueue
}

func New(strategy codegen.Strategy) *Printer {
	return &Printer{q: codegen.NewQueue(strategy)}
}

// Print renders a whole program.
func Print(program *decorated.Program, strategy codegen.Strategy) string {
	p := New(strategy)
	program.Class.Accept(p)
	return p.q.Render() + "\n"
}

// PrintExpression renders a single expression.
func PrintExpression(e decorated.Expression, strategy codegen.Strategy) string {
	p := New(strategy)
	e.Accept(p)
	return p.q.Render()
}

// sub returns a printer writing to a fresh queue with the same strategy.
func (p *Printer) sub() *Printer {
	return New(p.q.Strategy())
}

func (p *Printer) VisitClass(c *decorated.Class) {
	header := "class " + c.Identifier.String()
	hasDeclaration := !c.Declaration.IsEmpty()
	hasMembers := len(c.Members) > 0

	if !hasDeclaration && !hasMembers {
		p.q.AddLine(header)
		return
	}
	if hasDeclaration {
		p.q.AddLine(header + "(")
		p.q.Indented(func() { p.printDeclaration(c.Declaration) })
		if !hasMembers {
			p.q.AddLine(")")
			return
		}
		header = ")"
	}
	p.q.AddLine(header + " {")
	p.q.Indented(func() {
		for i, m := range c.Members {
			if i > 0 {
				p.q.AddEmptyLine()
			}
			m.Accept(p)
		}
	})
	p.q.AddLine("}")
}

func (p *Printer) printDeclaration(d typesystem.TypeDeclaration) {
	switch d := d.(type) {
	case typesystem.Variant:
		for _, tag := range d.Tags {
			if tag.Payload == nil {
				p.q.AddLine("| " + tag.Name)
			} else {
				p.q.AddLine("| " + tag.Name + " of " + tag.Payload.String())
			}
		}
	case typesystem.Struct:
		for _, f := range d.Fields {
			p.q.AddLine(f.Name + ": " + f.Type.String() + ",")
		}
	}
}

func visibility(isPublic bool) string {
	if isPublic {
		return ""
	}
	return "private "
}

func (p *Printer) VisitConstant(c *decorated.Constant) {
	p.assignment(visibility(c.IsPublic)+"val "+c.Name+" =", c.Value)
}

func (p *Printer) VisitFunctionGroup(g *decorated.FunctionGroup) {
	for i, f := range g.Functions {
		if i > 0 {
			p.q.AddEmptyLine()
		}
		var sb strings.Builder
		sb.WriteString(visibility(f.IsPublic))
		sb.WriteString("fun ")
		if len(f.Generics) > 0 {
			sb.WriteString("<" + strings.Join(f.Generics, ", ") + "> ")
		}
		sb.WriteString(f.Name)
		sb.WriteString("(" + arguments(f.Arguments) + "): ")
		sb.WriteString(f.ReturnType.String())
		sb.WriteString(" =")
		p.q.AddLine(sb.String())
		p.q.Indented(func() { p.q.Append(p.render(f.Body)) })
	}
}

// assignment writes "head e" when e fits on one line and "head" followed by
// e as an indented block otherwise.
func (p *Printer) assignment(head string, e decorated.Expression) {
	body := p.render(e)
	if body.IsSingleLine() {
		p.q.AddLine(head + " " + body.Render())
		return
	}
	p.q.AddLine(head)
	p.q.Indented(func() { p.q.Append(body) })
}

func arguments(args []decorated.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Name + ": " + a.Type.String()
	}
	return strings.Join(parts, ", ")
}

func typeArguments(types []typesystem.Type) string {
	if len(types) == 0 {
		return ""
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
