package prettyprinter

import (
	"strings"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/codegen"
	"github.com/sampl-lang/sampl/internal/decorated"
)

// render prints e into a queue of its own.
func (p *Printer) render(e decorated.Expression) *codegen.IndentationQueue {
	s := p.sub()
	e.Accept(s)
	return s.q
}

// inline prints e on one line, parenthesized when it binds looser than min.
func (p *Printer) inline(e decorated.Expression, min int) string {
	text := p.render(e).RenderSingleLine()
	if decorated.Precedence(e) < min {
		return "(" + text + ")"
	}
	return text
}

// delimited prints e where it is followed by a keyword such as 'with'.
// Matches and lets are parenthesized there to keep them from reading on.
func (p *Printer) delimited(e decorated.Expression) string {
	switch e.(type) {
	case *decorated.Match, *decorated.Let:
		return "(" + p.inline(e, 0) + ")"
	}
	return p.inline(e, 0)
}

func (p *Printer) VisitLiteral(e *decorated.Literal) {
	switch e.Kind {
	case ast.CharLiteral:
		p.q.AddLine("'" + e.Text + "'")
	case ast.StringLiteral:
		p.q.AddLine(`"` + e.Text + `"`)
	case ast.UnitLiteral:
		p.q.AddLine("()")
	default:
		p.q.AddLine(e.Text)
	}
}

func (p *Printer) VisitVariableIdentifier(e *decorated.VariableIdentifier) {
	p.q.AddLine(e.Name + typeArguments(e.Generics))
}

func (p *Printer) VisitNoArgVariant(e *decorated.NoArgVariant) {
	p.q.AddLine(e.TypeName + "." + e.Tag + typeArguments(e.Generics))
}

func (p *Printer) VisitOneArgVariant(e *decorated.OneArgVariant) {
	p.q.AddLine(e.TypeName + "." + e.Tag + typeArguments(e.Generics) + "(" + p.inline(e.Data, 0) + ")")
}

func (p *Printer) fieldAssignments(fields []decorated.FieldAssignment) []string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + " = " + p.inline(f.Value, 0)
	}
	return parts
}

func (p *Printer) VisitStructConstructor(e *decorated.StructConstructor) {
	head := e.TypeName + typeArguments(e.Generics)
	if len(e.Fields) == 0 {
		p.q.AddLine(head + " {}")
		return
	}
	p.q.AddLine(head + " { " + strings.Join(p.fieldAssignments(e.Fields), "; ") + "; }")
}

func (p *Printer) VisitStructWithCopy(e *decorated.StructWithCopy) {
	p.q.AddLine("{ " + p.delimited(e.Old) + " with " + strings.Join(p.fieldAssignments(e.Updates), "; ") + " }")
}

func (p *Printer) VisitStructMemberAccess(e *decorated.StructMemberAccess) {
	p.q.AddLine(p.inline(e.Expr, decorated.ApplicationPrecedence) + "." + e.Member)
}

func (p *Printer) VisitNot(e *decorated.Not) {
	p.q.AddLine("!" + p.inline(e.Expr, decorated.PrefixPrecedence))
}

// VisitBinary parenthesizes the right operand at equal precedence too,
// since every operator associates to the left.
func (p *Printer) VisitBinary(e *decorated.Binary) {
	prec := e.Operator.Precedence()
	p.q.AddLine(p.inline(e.Left, prec) + " " + e.Operator.String() + " " + p.inline(e.Right, prec+1))
}

func (p *Printer) VisitThrow(e *decorated.Throw) {
	p.q.AddLine("throw<" + e.ResolvedType.String() + "> " + p.inline(e.Expr, 0))
}

// bracketed writes head ( a ) middle ( b ) on one line when both parts fit,
// and as indented blocks otherwise.
func (p *Printer) bracketed(head string, a decorated.Expression, middle string, b decorated.Expression) {
	first, second := p.render(a), p.render(b)
	if first.IsSingleLine() && second.IsSingleLine() {
		p.q.AddLine(head + " (" + first.RenderSingleLine() + ") " + middle + " (" + second.RenderSingleLine() + ")")
		return
	}
	p.q.AddLine(head + " (")
	p.q.Indented(func() { p.q.Append(first) })
	p.q.AddLine(") " + middle + " (")
	p.q.Indented(func() { p.q.Append(second) })
	p.q.AddLine(")")
}

func (p *Printer) VisitIfElse(e *decorated.IfElse) {
	p.bracketed("if ("+p.inline(e.Condition, 0)+") then", e.Then, "else", e.Else)
}

func (p *Printer) VisitTryCatch(e *decorated.TryCatch) {
	p.bracketed("try", e.Try, "catch "+e.ExceptionName, e.Catch)
}

func (p *Printer) VisitMatch(e *decorated.Match) {
	p.q.AddLine("match " + p.delimited(e.Expr) + " with")
	p.q.Indented(func() {
		for _, c := range e.Cases {
			head := "| " + printPattern(c.Pattern) + " ->"
			body := p.render(c.Body)
			switch {
			case decorated.EndsInMatch(c.Body):
				p.q.AddLine(head + " (")
				p.q.Indented(func() { p.q.Append(body) })
				p.q.AddLine(")")
			case body.IsSingleLine():
				p.q.AddLine(head + " " + body.RenderSingleLine())
			default:
				p.q.AddLine(head)
				p.q.Indented(func() { p.q.Append(body) })
			}
		}
	})
}

func (p *Printer) VisitFunctionApplication(e *decorated.FunctionApplication) {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = p.inline(a, 0)
	}
	p.q.AddLine(p.inline(e.Function, decorated.ApplicationPrecedence) + "(" + strings.Join(args, ", ") + ")")
}

func (p *Printer) VisitLambda(e *decorated.Lambda) {
	head := "{ (" + arguments(e.Arguments) + ") ->"
	body := p.render(e.Body)
	if body.IsSingleLine() {
		p.q.AddLine(head + " " + body.RenderSingleLine() + " }")
		return
	}
	p.q.AddLine(head)
	p.q.Indented(func() { p.q.Append(body) })
	p.q.AddLine("}")
}

func (p *Printer) VisitLet(e *decorated.Let) {
	name := e.Name
	if name == "" {
		name = "_"
	}
	value := p.render(e.Value)
	if value.IsSingleLine() {
		p.q.AddLine("val " + name + " = " + value.RenderSingleLine() + ";")
	} else {
		p.q.AddLine("val " + name + " = (")
		p.q.Indented(func() { p.q.Append(value) })
		p.q.AddLine(");")
	}
	e.Body.Accept(p)
}

type patternPrinter struct {
	text string
}

func (pp *patternPrinter) VisitVariantPattern(p *decorated.VariantPattern) {
	pp.text = p.Tag
	if p.Variable != "" {
		pp.text += " " + p.Variable
	}
}

func (pp *patternPrinter) VisitVariablePattern(p *decorated.VariablePattern) { pp.text = p.Name }
func (pp *patternPrinter) VisitWildcardPattern(p *decorated.WildcardPattern) { pp.text = "_" }

func printPattern(p decorated.Pattern) string {
	pp := &patternPrinter{}
	p.Accept(pp)
	return pp.text
}
