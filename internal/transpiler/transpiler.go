// Package transpiler renders a decorated program as Kotlin source.
//
// Classes become Kotlin classes whose constants and functions live in a
// companion object. Variants are sealed classes, structs are plain classes
// with a copy function, and curried applications become closures.
package transpiler

import (
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/sampl-lang/sampl/internal/codegen"
	"github.com/sampl-lang/sampl/internal/config"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// Options control the parts of the output that depend on project settings.
type Options struct {
	// EntryPoint allows a host main function when the root class has an
	// eligible main.
	EntryPoint bool
}

// Transpiler is a member and expression visitor writing Kotlin.
type Transpiler struct {
	q        *codegen.IndentationQueue
	scope    *scope
	index    map[string]indexedClass
	generics []string // placeholders in scope
	depth    int      // number of enclosing matches
}

// scope holds the classes visible by simple name inside one class body.
type scope struct {
	classes map[string]*decorated.Class
	parent  *scope
}

func (s *scope) lookup(name string) (*decorated.Class, bool) {
	for ; s != nil; s = s.parent {
		if c, ok := s.classes[name]; ok {
			return c, true
		}
	}
	return nil, false
}

func New(strategy codegen.Strategy) *Transpiler {
	return &Transpiler{q: codegen.NewQueue(strategy), index: map[string]indexedClass{}}
}

// Transpile renders a whole program: the runtime header, the root class
// and, when allowed and possible, a main function calling the root's main.
func Transpile(program *decorated.Program, strategy codegen.Strategy, opts Options) string {
	t := New(strategy)
	t.indexClasses(program.Class, "")
	t.header()
	program.Class.Accept(t)
	if opts.EntryPoint && hasEntryPoint(program.Class) {
		t.q.AddEmptyLine()
		t.q.AddLine("fun " + config.MainFuncName + "(" + config.HostMainArgs + ") {")
		t.q.Indented(func() {
			t.q.AddLine(hostName(program.Class.Identifier.Name) + "." + hostName(config.MainFuncName) + "()")
		})
		t.q.AddLine("}")
	}
	return t.q.Render() + "\n"
}

// TranspileExpression renders a single expression.
func TranspileExpression(e decorated.Expression, strategy codegen.Strategy) string {
	t := New(strategy)
	e.Accept(t)
	return t.q.Render()
}

func (t *Transpiler) header() {
	exception := config.ExceptionClassName
	field := config.ExceptionMessageField
	t.q.AddLine("class " + exception + "(val " + field + ": String) : RuntimeException(" + field + ")")
	t.q.AddEmptyLine()
	t.q.AddLine("fun " + config.IntToStringFuncName + "(i: Int): String = i.toString()")
	t.q.AddEmptyLine()
	t.q.AddLine("fun " + config.FloatToStringFuncName + "(f: Double): String = f.toString()")
	t.q.AddEmptyLine()
	t.q.AddLine("fun " + config.CharToStringFuncName + "(c: Char): String = c.toString()")
	t.q.AddEmptyLine()
}

// hasEntryPoint reports whether the class has a public, non-generic main
// taking no arguments and returning Unit.
func hasEntryPoint(c *decorated.Class) bool {
	for _, m := range c.Members {
		g, ok := m.(*decorated.FunctionGroup)
		if !ok {
			continue
		}
		for _, f := range g.Functions {
			if f.IsPublic && f.Name == config.MainFuncName && len(f.Generics) == 0 &&
				len(f.Arguments) == 0 && typesystem.Equal(f.ReturnType, typesystem.Unit) {
				return true
			}
		}
	}
	return false
}

// sub returns a transpiler writing to a fresh queue in the same scope.
func (t *Transpiler) sub() *Transpiler {
	return &Transpiler{
		q:        codegen.NewQueue(t.q.Strategy()),
		scope:    t.scope,
		index:    t.index,
		generics: t.generics,
		depth:    t.depth,
	}
}

func (t *Transpiler) enter(c *decorated.Class) {
	classes := map[string]*decorated.Class{c.Identifier.Name: c}
	for _, m := range c.Members {
		if nested, ok := m.(*decorated.Class); ok {
			classes[nested.Identifier.Name] = nested
		}
	}
	t.scope = &scope{classes: classes, parent: t.scope}
}

func (t *Transpiler) exit() {
	t.scope = t.scope.parent
}

// withGenerics runs block with the given placeholders in scope, replacing
// the enclosing ones.
func (t *Transpiler) withGenerics(generics []string, block func()) {
	saved := t.generics
	t.generics = generics
	defer func() { t.generics = saved }()
	block()
}

func (t *Transpiler) VisitClass(c *decorated.Class) {
	t.enter(c)
	defer t.exit()
	t.withGenerics(c.Identifier.Generics, func() { t.class(c) })
}

// class writes the declaration and body of c. The declaration sees the
// class placeholders, members are visited without them.
func (t *Transpiler) class(c *decorated.Class) {
	var sections []func()
	switch d := c.Declaration.(type) {
	case typesystem.Variant:
		t.q.AddLine("sealed class " + variantHeader(c.Identifier) + " {")
		for _, tag := range d.Tags {
			sections = append(sections, func() { t.q.AddLine(t.tagClass(c.Identifier, tag)) })
		}
	case typesystem.Struct:
		if d.IsEmpty() {
			if len(c.Members) == 0 {
				t.q.AddLine("class " + declaredName(c.Identifier))
				return
			}
			t.q.AddLine("class " + declaredName(c.Identifier) + " {")
			break
		}
		t.q.AddLine("class " + declaredName(c.Identifier) + "(")
		t.q.Indented(func() {
			for i, f := range d.Fields {
				line := "val " + hostName(f.Name) + ": " + t.hostType(f.Type)
				if i < len(d.Fields)-1 {
					line += ","
				}
				t.q.AddLine(line)
			}
		})
		t.q.AddLine(") {")
		sections = append(sections, func() { t.copyFunction(c.Identifier, d) })
	}

	var statics []decorated.ClassMember
	var nested []*decorated.Class
	for _, m := range c.Members {
		if n, ok := m.(*decorated.Class); ok {
			nested = append(nested, n)
		} else {
			statics = append(statics, m)
		}
	}
	if len(statics) > 0 {
		sections = append(sections, func() { t.withGenerics(nil, func() { t.companion(statics) }) })
	}
	for _, n := range nested {
		sections = append(sections, func() { n.Accept(t) })
	}

	t.q.Indented(func() {
		for i, section := range sections {
			if i > 0 {
				t.q.AddEmptyLine()
			}
			section()
		}
	})
	t.q.AddLine("}")
}

func declaredName(id typesystem.TypeIdentifier) string {
	if len(id.Generics) == 0 {
		return hostName(id.Name)
	}
	return hostName(id.Name) + "<" + strings.Join(id.Generics, ", ") + ">"
}

// variantHeader declares every placeholder covariant so that tags can
// extend the sealed class with Nothing in unused positions.
func variantHeader(id typesystem.TypeIdentifier) string {
	if len(id.Generics) == 0 {
		return hostName(id.Name)
	}
	params := make([]string, len(id.Generics))
	for i, g := range id.Generics {
		params[i] = "out " + g
	}
	return hostName(id.Name) + "<" + strings.Join(params, ", ") + ">"
}

// tagClass declares one tag of a variant. Placeholders the payload does not
// mention are Nothing in the supertype.
func (t *Transpiler) tagClass(id typesystem.TypeIdentifier, tag typesystem.Tag) string {
	used := usedPlaceholders(id.Generics, tag.Payload)
	supertype := hostName(id.Name)
	if len(id.Generics) > 0 {
		args := make([]string, len(id.Generics))
		for i, g := range id.Generics {
			if used.Contains(g) {
				args[i] = g
			} else {
				args[i] = config.BottomTypeName
			}
		}
		supertype += "<" + strings.Join(args, ", ") + ">"
	}
	if tag.Payload == nil {
		return "object " + hostName(tag.Name) + " : " + supertype + "()"
	}
	own := ""
	if params := filterPlaceholders(id.Generics, used); len(params) > 0 {
		own = "<" + strings.Join(params, ", ") + ">"
	}
	return "class " + hostName(tag.Name) + own + "(val " + config.PayloadFieldName + ": " + t.hostType(tag.Payload) + ") : " + supertype + "()"
}

func usedPlaceholders(generics []string, payload typesystem.Type) *set.Set[string] {
	used := set.New[string](len(generics))
	if payload == nil {
		return used
	}
	for _, g := range generics {
		if typesystem.Mentions(payload, g) {
			used.Insert(g)
		}
	}
	return used
}

func filterPlaceholders(generics []string, used *set.Set[string]) []string {
	var out []string
	for _, g := range generics {
		if used.Contains(g) {
			out = append(out, g)
		}
	}
	return out
}

func (t *Transpiler) copyFunction(id typesystem.TypeIdentifier, d typesystem.Struct) {
	params := make([]string, len(d.Fields))
	values := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		name := hostName(f.Name)
		params[i] = name + ": " + t.hostType(f.Type) + " = this." + name
		values[i] = name + " = " + name
	}
	t.q.AddLine("fun copy(" + strings.Join(params, ", ") + "): " + declaredName(id) + " =")
	t.q.Indented(func() {
		t.q.AddLine(hostName(id.Name) + "(" + strings.Join(values, ", ") + ")")
	})
}

func (t *Transpiler) companion(members []decorated.ClassMember) {
	t.q.AddLine("companion object {")
	t.q.Indented(func() {
		for i, m := range members {
			if i > 0 {
				t.q.AddEmptyLine()
			}
			m.Accept(t)
		}
	})
	t.q.AddLine("}")
}

func visibility(isPublic bool) string {
	if isPublic {
		return ""
	}
	return "private "
}

func (t *Transpiler) VisitConstant(c *decorated.Constant) {
	t.definition(visibility(c.IsPublic)+"val "+hostName(c.Name)+": "+t.hostType(c.Type)+" =", c.Value)
}

func (t *Transpiler) VisitFunctionGroup(g *decorated.FunctionGroup) {
	first := true
	for _, f := range g.Functions {
		if f.Category != symbols.UserDefined {
			continue
		}
		if !first {
			t.q.AddEmptyLine()
		}
		first = false
		t.withGenerics(f.Generics, func() { t.function(f) })
	}
}

func (t *Transpiler) function(f *decorated.ClassFunction) {
	head := visibility(f.IsPublic) + "fun "
	if len(f.Generics) > 0 {
		head += "<" + strings.Join(f.Generics, ", ") + "> "
	}
	args := make([]string, len(f.Arguments))
	for i, a := range f.Arguments {
		args[i] = hostName(a.Name) + ": " + t.hostType(a.Type)
	}
	head += hostName(f.Name) + "(" + strings.Join(args, ", ") + "): " + t.hostType(f.ReturnType) + " ="
	t.definition(head, f.Body)
}

// definition writes "head body" when the body fits on one line and the body
// as an indented block below head otherwise.
func (t *Transpiler) definition(head string, body decorated.Expression) {
	q := t.render(body)
	if q.IsSingleLine() {
		t.q.AddLine(head + " " + q.Render())
		return
	}
	t.q.AddLine(head)
	t.q.Indented(func() { t.q.Append(q) })
}
