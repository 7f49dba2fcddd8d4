package transpiler

import (
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// indexedClass is a class together with its path from the root class.
type indexedClass struct {
	class *decorated.Class
	path  string
}

// indexClasses records every class reachable from c. When two classes
// share a simple name the first one in source order wins.
func (t *Transpiler) indexClasses(c *decorated.Class, parent string) {
	path := c.Identifier.Name
	if parent != "" {
		path = parent + "." + path
	}
	if _, ok := t.index[c.Identifier.Name]; !ok {
		t.index[c.Identifier.Name] = indexedClass{class: c, path: path}
	}
	for _, m := range c.Members {
		if nested, ok := m.(*decorated.Class); ok {
			t.indexClasses(nested, path)
		}
	}
}

// lookupClass finds a class by simple name, preferring the lexical scope.
func (t *Transpiler) lookupClass(name string) (*decorated.Class, bool) {
	if c, ok := t.scope.lookup(name); ok {
		return c, true
	}
	if ic, ok := t.index[name]; ok {
		return ic.class, true
	}
	return nil, false
}

// typeName spells a type name so that it resolves from the current class
// body. Nested types that escaped their class are qualified with their
// path.
func (t *Transpiler) typeName(name string) string {
	switch name {
	case typesystem.Bool.Name:
		return "Boolean"
	case typesystem.Float.Name:
		return "Double"
	}
	if slices.Contains(t.generics, name) {
		return name
	}
	if _, ok := t.scope.lookup(name); ok {
		return hostName(name)
	}
	if ic, ok := t.index[name]; ok {
		return hostName(ic.path)
	}
	return hostName(name)
}

// hostType spells a type in Kotlin.
func (t *Transpiler) hostType(ty typesystem.Type) string {
	switch ty := ty.(type) {
	case typesystem.TCon:
		name := t.typeName(ty.Name)
		if len(ty.Args) == 0 {
			return name
		}
		return name + "<" + t.hostTypes(ty.Args) + ">"
	case typesystem.TFunc:
		return "(" + t.hostTypes(ty.Params) + ") -> " + t.hostType(ty.ReturnType)
	}
	return ty.String()
}

func (t *Transpiler) hostTypes(types []typesystem.Type) string {
	parts := make([]string, len(types))
	for i, ty := range types {
		parts[i] = t.hostType(ty)
	}
	return strings.Join(parts, ", ")
}

// Kotlin hard keywords that are valid identifiers in source programs.
var hostKeywords = set.From([]string{
	"as", "break", "continue", "do", "for", "in", "interface", "is", "null",
	"object", "package", "return", "super", "this", "typealias", "typeof",
	"var", "when", "while",
})

// hostName quotes the parts of a possibly qualified name that Kotlin
// reserves.
func hostName(name string) string {
	if !strings.Contains(name, ".") {
		if hostKeywords.Contains(name) {
			return "`" + name + "`"
		}
		return name
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = hostName(p)
	}
	return strings.Join(parts, ".")
}
