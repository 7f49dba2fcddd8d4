package analyzer

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-set/v3"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// declareGenerics registers generic placeholders as opaque types.
func declareGenerics(env *symbols.Env, generics []string) *symbols.Env {
	for _, g := range generics {
		env = env.DeclareType(g, symbols.TypeInfo{Identifier: typesystem.TypeIdentifier{Name: g}})
	}
	return env
}

func checkGenericNames(generics []string, tok token.Token, where string) error {
	seen := set.New[string](len(generics))
	for _, g := range generics {
		if !seen.Insert(g) {
			return diagnostics.NewError(diagnostics.ErrA004, tok, g, "generics of "+where)
		}
	}
	return nil
}

// validateDeclaration checks the body of a class's type with the class's
// generic placeholders in scope.
func validateDeclaration(id typesystem.TypeIdentifier, declaration typesystem.TypeDeclaration, env *symbols.Env, tok token.Token) error {
	env = declareGenerics(env, id.Generics)
	switch d := declaration.(type) {
	case typesystem.Variant:
		tags := set.New[string](len(d.Tags))
		for _, tag := range d.Tags {
			if !tags.Insert(tag.Name) {
				return diagnostics.NewError(diagnostics.ErrA003, tok, fmt.Sprintf("duplicate tag '%s' in %s", tag.Name, id))
			}
			if tag.Payload == nil {
				continue
			}
			if err := validateType(tag.Payload, env, tok, diagnostics.ErrA003); err != nil {
				return err
			}
		}
	case typesystem.Struct:
		fields := set.New[string](len(d.Fields))
		for _, field := range d.Fields {
			if err := checkName(field.Name, tok); err != nil {
				return err
			}
			if !fields.Insert(field.Name) {
				return diagnostics.NewError(diagnostics.ErrA003, tok, fmt.Sprintf("duplicate field '%s' in %s", field.Name, id))
			}
			if err := validateType(field.Type, env, tok, diagnostics.ErrA003); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateType checks that every name in t is a declared type applied to
// the right number of arguments. Unknown names are reported with
// unknownCode; wrong arity is always an invalid type declaration.
func validateType(t typesystem.Type, env *symbols.Env, tok token.Token, unknownCode diagnostics.ErrorCode) error {
	switch t := t.(type) {
	case typesystem.TCon:
		info, ok := env.LookupType(t.Name)
		if !ok {
			if unknownCode == diagnostics.ErrA001 {
				return diagnostics.NewError(diagnostics.ErrA001, tok, "type", t.Name)
			}
			return diagnostics.NewError(unknownCode, tok, "unknown type "+t.Name)
		}
		if len(t.Args) != len(info.Identifier.Generics) {
			return diagnostics.NewError(diagnostics.ErrA003, tok,
				fmt.Sprintf("%s expects %d type arguments, got %d", t.Name, len(info.Identifier.Generics), len(t.Args)))
		}
		for _, arg := range t.Args {
			if err := validateType(arg, env, tok, unknownCode); err != nil {
				return err
			}
		}
	case typesystem.TFunc:
		for _, p := range t.Params {
			if err := validateType(p, env, tok, unknownCode); err != nil {
				return err
			}
		}
		return validateType(t.ReturnType, env, tok, unknownCode)
	}
	return nil
}

func validateTypes(types []typesystem.Type, env *symbols.Env, tok token.Token) error {
	for _, t := range types {
		if err := validateType(t, env, tok, diagnostics.ErrA001); err != nil {
			return err
		}
	}
	return nil
}

// checkClassNames requires every class name to be unique across the whole
// program and keeps generic placeholders apart from class names. A name
// repeated by an enclosing class is left to EnterClass, which reports the
// cycle.
func checkClassNames(root *ast.Class) error {
	classes := set.New[string](0)
	var collect func(c *ast.Class, enclosing []string) error
	collect = func(c *ast.Class, enclosing []string) error {
		name := c.Identifier.Name
		if slices.Contains(enclosing, name) {
			return nil
		}
		if !classes.Insert(name) {
			return diagnostics.NewError(diagnostics.ErrA004, c.Token, name, "class names of the program")
		}
		enclosing = append(enclosing, name)
		for _, member := range c.Members {
			if nested, ok := member.(*ast.Class); ok {
				if err := collect(nested, slices.Clip(enclosing)); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := collect(root, nil); err != nil {
		return err
	}
	return checkPlaceholders(root, classes)
}

func checkPlaceholders(c *ast.Class, classes *set.Set[string]) error {
	for _, g := range c.Identifier.Generics {
		if classes.Contains(g) {
			return diagnostics.NewError(diagnostics.ErrA004, c.Token, g, "generics of class "+c.Identifier.Name+" and class names")
		}
	}
	for _, member := range c.Members {
		switch m := member.(type) {
		case *ast.FunctionGroup:
			for _, fn := range m.Functions {
				for _, g := range fn.Generics {
					if classes.Contains(g) {
						return diagnostics.NewError(diagnostics.ErrA004, fn.Token, g, "generics of "+fn.Name+" and class names")
					}
				}
			}
		case *ast.Class:
			if err := checkPlaceholders(m, classes); err != nil {
				return err
			}
		}
	}
	return nil
}
