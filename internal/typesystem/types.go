package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all type expressions.
type Type interface {
	String() string
	Apply(Subst) Type
	typeNode()
}

// TCon is a named type, optionally applied to type arguments: Int, Pair<A, B>.
// Generic placeholders are TCons without arguments.
type TCon struct {
	Name string
	Args []Type
}

func (t TCon) typeNode() {}

func (t TCon) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}

func (t TCon) Apply(s Subst) Type {
	if len(t.Args) == 0 {
		if replacement, ok := s[t.Name]; ok {
			return replacement
		}
		return t
	}
	return TCon{Name: t.Name, Args: applyAll(t.Args, s)}
}

// TFunc represents a function type (e.g. (Int, Int) -> Bool).
type TFunc struct {
	Params     []Type
	ReturnType Type
}

func (t TFunc) typeNode() {}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.ReturnType.String())
}

func (t TFunc) Apply(s Subst) Type {
	return TFunc{Params: applyAll(t.Params, s), ReturnType: t.ReturnType.Apply(s)}
}

func applyAll(types []Type, s Subst) []Type {
	if len(types) == 0 {
		return nil
	}
	out := make([]Type, len(types))
	for i, t := range types {
		out[i] = t.Apply(s)
	}
	return out
}

// Primitive types.
var (
	Unit   = TCon{Name: "Unit"}
	Int    = TCon{Name: "Int"}
	Float  = TCon{Name: "Float"}
	Bool   = TCon{Name: "Bool"}
	Char   = TCon{Name: "Char"}
	String = TCon{Name: "String"}
)

// Primitives lists the built-in types in declaration order.
var Primitives = []TCon{Unit, Int, Float, Bool, Char, String}

// Subst is a mapping from generic placeholder names to types.
type Subst map[string]Type

// Zip builds a substitution binding each placeholder to the type at the same position.
func Zip(placeholders []string, types []Type) Subst {
	s := Subst{}
	for i, name := range placeholders {
		if i < len(types) {
			s[name] = types[i]
		}
	}
	return s
}

// Placeholders returns the placeholders as argument-less type constructors.
func Placeholders(names []string) []Type {
	if len(names) == 0 {
		return nil
	}
	out := make([]Type, len(names))
	for i, n := range names {
		out[i] = TCon{Name: n}
	}
	return out
}

// Equal is structural equality.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case TCon:
		b, ok := b.(TCon)
		return ok && a.Name == b.Name && equalAll(a.Args, b.Args)
	case TFunc:
		b, ok := b.(TFunc)
		return ok && equalAll(a.Params, b.Params) && Equal(a.ReturnType, b.ReturnType)
	}
	return false
}

func equalAll(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Mentions reports whether the type refers to the given name anywhere.
func Mentions(t Type, name string) bool {
	switch t := t.(type) {
	case TCon:
		if t.Name == name {
			return true
		}
		for _, a := range t.Args {
			if Mentions(a, name) {
				return true
			}
		}
	case TFunc:
		for _, p := range t.Params {
			if Mentions(p, name) {
				return true
			}
		}
		return Mentions(t.ReturnType, name)
	}
	return false
}
