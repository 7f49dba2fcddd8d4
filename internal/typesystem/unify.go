package typesystem

import "fmt"

// Unify matches a declared type containing generic placeholders against a
// concrete type, extending s with the bindings it discovers. Matching is
// one-way: placeholders only occur on the declared side.
func Unify(declared, actual Type, placeholders []string, s Subst) error {
	switch d := declared.(type) {
	case TCon:
		if len(d.Args) == 0 && isPlaceholder(d.Name, placeholders) {
			if bound, ok := s[d.Name]; ok {
				if !Equal(bound, actual) {
					return fmt.Errorf("%s is bound to both %s and %s", d.Name, bound, actual)
				}
				return nil
			}
			s[d.Name] = actual
			return nil
		}
		a, ok := actual.(TCon)
		if !ok || a.Name != d.Name || len(a.Args) != len(d.Args) {
			return fmt.Errorf("expected %s, got %s", declared.Apply(s), actual)
		}
		for i := range d.Args {
			if err := Unify(d.Args[i], a.Args[i], placeholders, s); err != nil {
				return err
			}
		}
		return nil
	case TFunc:
		a, ok := actual.(TFunc)
		if !ok || len(a.Params) != len(d.Params) {
			return fmt.Errorf("expected %s, got %s", declared.Apply(s), actual)
		}
		for i := range d.Params {
			if err := Unify(d.Params[i], a.Params[i], placeholders, s); err != nil {
				return err
			}
		}
		return Unify(d.ReturnType, a.ReturnType, placeholders, s)
	}
	return fmt.Errorf("unsupported type %v", declared)
}

func isPlaceholder(name string, placeholders []string) bool {
	for _, p := range placeholders {
		if p == name {
			return true
		}
	}
	return false
}
