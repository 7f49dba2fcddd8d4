package analyzer

import (
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// instantiation lists the types bound to generics in declaration order.
// A placeholder that nothing determined is a type mismatch.
func instantiation(generics []string, subst typesystem.Subst, tok token.Token, what string) ([]typesystem.Type, error) {
	var out []typesystem.Type
	for _, g := range generics {
		t, ok := subst[g]
		if !ok {
			return nil, mismatch(tok, "cannot infer type argument %s of %s", g, what)
		}
		out = append(out, t)
	}
	return out, nil
}

// declaredType looks up a named type used in a constructor.
func declaredType(name string, env *symbols.Env, tok token.Token) (symbols.TypeInfo, error) {
	info, ok := env.LookupType(name)
	if !ok {
		return symbols.TypeInfo{}, undefined(tok, "type", name)
	}
	return info, nil
}

// valueType finds the class behind the type of a value. A value may carry a
// nested class out of the class that declares it, so the lookup falls back
// to every class of the program.
func valueType(name string, env *symbols.Env) (symbols.TypeInfo, bool) {
	if info, ok := env.LookupType(name); ok {
		return info, true
	}
	return env.LookupClassType(name)
}

// structOf returns the struct declaration behind t together with the
// substitution of its generics by t's type arguments.
func structOf(t typesystem.Type, env *symbols.Env, tok token.Token) (typesystem.Struct, typesystem.Subst, error) {
	con, ok := t.(typesystem.TCon)
	if ok {
		if info, found := valueType(con.Name, env); found {
			if st, isStruct := info.Declaration.(typesystem.Struct); isStruct {
				return st, typesystem.Zip(info.Identifier.Generics, con.Args), nil
			}
		}
	}
	return typesystem.Struct{}, nil, mismatch(tok, "expected a struct, got %s", t)
}

// variantOf is structOf for variant types.
func variantOf(t typesystem.Type, env *symbols.Env, tok token.Token) (typesystem.Variant, typesystem.Subst, error) {
	con, ok := t.(typesystem.TCon)
	if ok {
		if info, found := valueType(con.Name, env); found {
			if v, isVariant := info.Declaration.(typesystem.Variant); isVariant {
				return v, typesystem.Zip(info.Identifier.Generics, con.Args), nil
			}
		}
	}
	return typesystem.Variant{}, nil, mismatch(tok, "expected a variant, got %s", t)
}

// constructorSubst starts the substitution for a constructor of info. With
// explicit type arguments it is complete; otherwise it is empty and filled
// by inference.
func constructorSubst(info symbols.TypeInfo, explicit []typesystem.Type, env *symbols.Env, tok token.Token) (typesystem.Subst, error) {
	if len(explicit) == 0 {
		return typesystem.Subst{}, nil
	}
	if len(explicit) != len(info.Identifier.Generics) {
		return nil, mismatch(tok, "%s expects %d type arguments, got %d", info.Identifier.Name, len(info.Identifier.Generics), len(explicit))
	}
	if err := validateTypes(explicit, env, tok); err != nil {
		return nil, err
	}
	return typesystem.Zip(info.Identifier.Generics, explicit), nil
}

// expectType checks actual against declared, binding the placeholders of
// generics in subst as it goes.
func expectType(declared, actual typesystem.Type, generics []string, subst typesystem.Subst, tok token.Token, what string) error {
	if err := typesystem.Unify(declared, actual, generics, subst); err != nil {
		return mismatch(tok, "%s: %v", what, err)
	}
	return nil
}
