package transpiler

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/codegen"
	"github.com/sampl-lang/sampl/internal/config"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// render transpiles e into a queue of its own.
func (t *Transpiler) render(e decorated.Expression) *codegen.IndentationQueue {
	s := t.sub()
	e.Accept(s)
	return s.q
}

// inline transpiles e as text to be embedded in a larger line. Multi-line
// results keep their relative indentation.
func (t *Transpiler) inline(e decorated.Expression) string {
	return t.render(e).Render()
}

// operand transpiles e where it is followed or preceded by an operator,
// parenthesized unless it is a primary expression in Kotlin.
func (t *Transpiler) operand(e decorated.Expression) string {
	text := t.inline(e)
	if isPrimary(e) {
		return text
	}
	return "(" + text + ")"
}

func isPrimary(e decorated.Expression) bool {
	switch e := e.(type) {
	case *decorated.Literal, *decorated.NoArgVariant, *decorated.OneArgVariant,
		*decorated.StructConstructor, *decorated.StructWithCopy, *decorated.StructMemberAccess,
		*decorated.Let:
		return true
	case *decorated.VariableIdentifier:
		return e.Category == decorated.Value
	case *decorated.FunctionApplication:
		return !e.IsPartial()
	}
	return false
}

func (t *Transpiler) VisitLiteral(e *decorated.Literal) {
	switch e.Kind {
	case ast.UnitLiteral:
		t.q.AddLine("Unit")
	case ast.CharLiteral:
		t.q.AddLine("'" + hostEscapes(e.Text, false) + "'")
	case ast.StringLiteral:
		t.q.AddLine(`"` + hostEscapes(e.Text, true) + `"`)
	default:
		t.q.AddLine(e.Text)
	}
}

// hostEscapes rewrites source escapes as Kotlin ones. Kotlin has no \0, and
// a bare $ in a string starts a template.
func hostEscapes(text string, isString bool) string {
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\\' && i+1 < len(text):
			i++
			if text[i] == '0' {
				sb.WriteString(`\u0000`)
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(text[i])
			}
		case c == '$' && isString:
			sb.WriteString(`\$`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func (t *Transpiler) VisitVariableIdentifier(e *decorated.VariableIdentifier) {
	if e.Category == decorated.Value {
		t.q.AddLine(hostName(e.Name))
		return
	}
	fn, ok := e.ResolvedType.(typesystem.TFunc)
	if !ok {
		t.q.AddLine(t.callee(e))
		return
	}
	t.q.AddLine(t.closure(t.callee(e), nil, fn.Params))
}

// callee spells a function name with its instantiation.
func (t *Transpiler) callee(e *decorated.VariableIdentifier) string {
	return hostName(e.Name) + t.typeArguments(e.Generics)
}

func (t *Transpiler) typeArguments(types []typesystem.Type) string {
	if len(types) == 0 {
		return ""
	}
	return "<" + t.hostTypes(types) + ">"
}

// closure calls fn with the supplied arguments, abstracting over the
// parameters beyond them. The k-th parameter is named _tempV<k>.
func (t *Transpiler) closure(fn string, supplied []string, params []typesystem.Type) string {
	if len(supplied) >= len(params) {
		return fn + "(" + strings.Join(supplied, ", ") + ")"
	}
	if len(params) == 0 {
		return "{ " + fn + "() }"
	}
	args := append([]string(nil), supplied...)
	var declared []string
	for k := len(supplied); k < len(params); k++ {
		name := config.PlaceholderPrefix + strconv.Itoa(k)
		args = append(args, name)
		declared = append(declared, name+": "+t.hostType(params[k]))
	}
	return "{ " + strings.Join(declared, ", ") + " -> " + fn + "(" + strings.Join(args, ", ") + ") }"
}

func (t *Transpiler) VisitNoArgVariant(e *decorated.NoArgVariant) {
	t.q.AddLine(t.typeName(e.TypeName) + "." + hostName(e.Tag))
}

func (t *Transpiler) VisitOneArgVariant(e *decorated.OneArgVariant) {
	t.q.AddLine(t.typeName(e.TypeName) + "." + hostName(e.Tag) + t.tagArguments(e) + "(" + t.inline(e.Data) + ")")
}

// tagArguments instantiates the placeholders a tag class declares: those
// its payload mentions.
func (t *Transpiler) tagArguments(e *decorated.OneArgVariant) string {
	c, ok := t.lookupClass(e.TypeName)
	if !ok {
		return ""
	}
	variant, ok := c.Declaration.(typesystem.Variant)
	if !ok {
		return ""
	}
	tag, ok := variant.Tag(e.Tag)
	if !ok {
		return ""
	}
	used := usedPlaceholders(c.Identifier.Generics, tag.Payload)
	var args []typesystem.Type
	for i, g := range c.Identifier.Generics {
		if used.Contains(g) && i < len(e.Generics) {
			args = append(args, e.Generics[i])
		}
	}
	return t.typeArguments(args)
}

func (t *Transpiler) fieldArguments(fields []decorated.FieldAssignment) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = hostName(f.Name) + " = " + t.inline(f.Value)
	}
	return strings.Join(parts, ", ")
}

func (t *Transpiler) VisitStructConstructor(e *decorated.StructConstructor) {
	t.q.AddLine(t.typeName(e.TypeName) + t.typeArguments(e.Generics) + "(" + t.fieldArguments(e.Fields) + ")")
}

func (t *Transpiler) VisitStructWithCopy(e *decorated.StructWithCopy) {
	t.q.AddLine(t.operand(e.Old) + ".copy(" + t.fieldArguments(e.Updates) + ")")
}

func (t *Transpiler) VisitStructMemberAccess(e *decorated.StructMemberAccess) {
	t.q.AddLine(t.operand(e.Expr) + "." + hostName(e.Member))
}

func (t *Transpiler) VisitNot(e *decorated.Not) {
	t.q.AddLine("!" + t.operand(e.Expr))
}

func hostOperator(op ast.BinaryOperator) string {
	if op == ast.STR_CONCAT {
		return "+"
	}
	return op.String()
}

func (t *Transpiler) VisitBinary(e *decorated.Binary) {
	t.q.AddLine(t.operand(e.Left) + " " + hostOperator(e.Operator) + " " + t.operand(e.Right))
}

func (t *Transpiler) VisitThrow(e *decorated.Throw) {
	t.q.AddLine("throw " + config.ExceptionClassName + "(" + t.inline(e.Expr) + ")")
}

func (t *Transpiler) VisitIfElse(e *decorated.IfElse) {
	t.q.AddLine("if (" + t.inline(e.Condition) + ") {")
	t.q.Indented(func() { t.q.Append(t.render(e.Then)) })
	t.q.AddLine("} else {")
	t.q.Indented(func() { t.q.Append(t.render(e.Else)) })
	t.q.AddLine("}")
}

// VisitMatch lowers a match to a when over a fresh subject variable, one
// branch per arm in source order. Catch-all arms become the else branch.
func (t *Transpiler) VisitMatch(e *decorated.Match) {
	subject := config.MatchSubjectPrefix + strconv.Itoa(t.depth)
	typeName := ""
	if con, ok := e.Expr.Type().(typesystem.TCon); ok {
		typeName = t.typeName(con.Name)
	}

	t.depth++
	defer func() { t.depth-- }()

	t.q.AddLine("when (val " + subject + " = " + t.inline(e.Expr) + ") {")
	t.q.Indented(func() {
		for _, c := range e.Cases {
			var binding string
			switch p := c.Pattern.(type) {
			case *decorated.VariantPattern:
				t.q.AddLine("is " + typeName + "." + hostName(p.Tag) + " -> {")
				if p.Variable != "" {
					binding = "val " + hostName(p.Variable) + " = " + subject + "." + config.PayloadFieldName
				}
			case *decorated.VariablePattern:
				t.q.AddLine("else -> {")
				binding = "val " + hostName(p.Name) + " = " + subject
			case *decorated.WildcardPattern:
				t.q.AddLine("else -> {")
			}
			t.q.Indented(func() {
				if binding != "" {
					t.q.AddLine(binding)
				}
				t.q.Append(t.render(c.Body))
			})
			t.q.AddLine("}")
		}
	})
	t.q.AddLine("}")
}

func (t *Transpiler) VisitFunctionApplication(e *decorated.FunctionApplication) {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = t.inline(a)
	}
	var fn string
	if id, ok := e.Function.(*decorated.VariableIdentifier); ok {
		fn = t.callee(id)
	} else {
		fn = t.operand(e.Function)
	}
	var params []typesystem.Type
	if ft, ok := e.Function.Type().(typesystem.TFunc); ok {
		params = ft.Params
	}
	t.q.AddLine(t.closure(fn, args, params))
}

func (t *Transpiler) VisitLambda(e *decorated.Lambda) {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = hostName(a.Name) + ": " + t.hostType(a.Type)
	}
	head := "{ " + strings.Join(args, ", ") + " ->"
	if len(args) == 0 {
		head = "{ ->"
	}
	body := t.render(e.Body)
	if body.IsSingleLine() {
		t.q.AddLine(head + " " + body.Render() + " }")
		return
	}
	t.q.AddLine(head)
	t.q.Indented(func() { t.q.Append(body) })
	t.q.AddLine("}")
}

func (t *Transpiler) VisitTryCatch(e *decorated.TryCatch) {
	t.q.AddLine("try {")
	t.q.Indented(func() { t.q.Append(t.render(e.Try)) })
	t.q.AddLine("} catch (" + config.CaughtExceptionName + ": " + config.ExceptionClassName + ") {")
	t.q.Indented(func() {
		t.q.AddLine("val " + hostName(e.ExceptionName) + " = " + config.CaughtExceptionName + "." + config.ExceptionMessageField)
		t.q.Append(t.render(e.Catch))
	})
	t.q.AddLine("}")
}

// VisitLet opens a run block holding a chain of bindings. A binding that
// would redeclare a name of the same block starts a nested block instead.
func (t *Transpiler) VisitLet(e *decorated.Let) {
	t.q.AddLine("run {")
	t.q.Indented(func() {
		declared := set.New[string](0)
		var rest decorated.Expression = e
		for {
			let, ok := rest.(*decorated.Let)
			if !ok || (let.Name != "" && declared.Contains(let.Name)) {
				break
			}
			value := t.inline(let.Value)
			if let.Name == "" {
				t.q.AddLine(value)
			} else {
				declared.Insert(let.Name)
				t.q.AddLine("val " + hostName(let.Name) + " = " + value)
			}
			rest = let.Body
		}
		t.q.Append(t.render(rest))
	})
	t.q.AddLine("}")
}
