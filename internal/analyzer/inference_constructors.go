package analyzer

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// variantTag resolves Type.Tag to the variant's type info and the tag.
func variantTag(typeName, tagName string, env *symbols.Env, tok token.Token) (symbols.TypeInfo, typesystem.Tag, error) {
	info, err := declaredType(typeName, env, tok)
	if err != nil {
		return info, typesystem.Tag{}, err
	}
	variant, ok := info.Declaration.(typesystem.Variant)
	if !ok {
		return info, typesystem.Tag{}, mismatch(tok, "%s is not a variant type", typeName)
	}
	tag, ok := variant.Tag(tagName)
	if !ok {
		return info, typesystem.Tag{}, undefined(tok, "tag", typeName+"."+tagName)
	}
	return info, tag, nil
}

func checkNoArgVariant(n *ast.NoArgVariant, env *symbols.Env) (decorated.Expression, error) {
	info, tag, err := variantTag(n.TypeName, n.Tag, env, n.Token)
	if err != nil {
		return nil, err
	}
	if tag.Payload != nil {
		return nil, mismatch(n.Token, "tag %s.%s needs a value of type %s", n.TypeName, n.Tag, tag.Payload)
	}
	subst, err := constructorSubst(info, n.Generics, env, n.Token)
	if err != nil {
		return nil, err
	}
	generics, err := instantiation(info.Identifier.Generics, subst, n.Token, n.TypeName+"."+n.Tag)
	if err != nil {
		return nil, err
	}
	return &decorated.NoArgVariant{
		TypeName:     n.TypeName,
		Tag:          n.Tag,
		Generics:     generics,
		ResolvedType: typesystem.TCon{Name: n.TypeName, Args: generics},
	}, nil
}

func checkOneArgVariant(n *ast.OneArgVariant, env *symbols.Env) (decorated.Expression, error) {
	info, tag, err := variantTag(n.TypeName, n.Tag, env, n.Token)
	if err != nil {
		return nil, err
	}
	if tag.Payload == nil {
		return nil, mismatch(n.Token, "tag %s.%s takes no value", n.TypeName, n.Tag)
	}
	subst, err := constructorSubst(info, n.Generics, env, n.Token)
	if err != nil {
		return nil, err
	}
	data, err := checkExpression(n.Data, env)
	if err != nil {
		return nil, err
	}
	if err := expectType(tag.Payload, data.Type(), info.Identifier.Generics, subst, n.Data.GetToken(), "payload of "+n.TypeName+"."+n.Tag); err != nil {
		return nil, err
	}
	generics, err := instantiation(info.Identifier.Generics, subst, n.Token, n.TypeName+"."+n.Tag)
	if err != nil {
		return nil, err
	}
	return &decorated.OneArgVariant{
		TypeName:     n.TypeName,
		Tag:          n.Tag,
		Generics:     generics,
		Data:         data,
		ResolvedType: typesystem.TCon{Name: n.TypeName, Args: generics},
	}, nil
}

// checkStructConstructor requires every field of the struct exactly once.
func checkStructConstructor(n *ast.StructConstructor, env *symbols.Env) (decorated.Expression, error) {
	info, err := declaredType(n.TypeName, env, n.Token)
	if err != nil {
		return nil, err
	}
	st, ok := info.Declaration.(typesystem.Struct)
	if !ok {
		return nil, mismatch(n.Token, "%s is not a struct type", n.TypeName)
	}
	subst, err := constructorSubst(info, n.Generics, env, n.Token)
	if err != nil {
		return nil, err
	}

	assigned := set.New[string](len(n.Fields))
	var fields []decorated.FieldAssignment
	for _, f := range n.Fields {
		field, ok := st.Field(f.Name)
		if !ok {
			return nil, undefined(f.Token, "field", n.TypeName+"."+f.Name)
		}
		if !assigned.Insert(f.Name) {
			return nil, diagnostics.NewError(diagnostics.ErrA004, f.Token, f.Name, "constructor of "+n.TypeName)
		}
		value, err := checkExpression(f.Value, env)
		if err != nil {
			return nil, err
		}
		if err := expectType(field.Type, value.Type(), info.Identifier.Generics, subst, f.Token, "field "+f.Name); err != nil {
			return nil, err
		}
		fields = append(fields, decorated.FieldAssignment{Name: f.Name, Value: value})
	}
	for _, field := range st.Fields {
		if !assigned.Contains(field.Name) {
			return nil, mismatch(n.Token, "missing field '%s' in %s constructor", field.Name, n.TypeName)
		}
	}

	generics, err := instantiation(info.Identifier.Generics, subst, n.Token, n.TypeName)
	if err != nil {
		return nil, err
	}
	return &decorated.StructConstructor{
		TypeName:     n.TypeName,
		Generics:     generics,
		Fields:       fields,
		ResolvedType: typesystem.TCon{Name: n.TypeName, Args: generics},
	}, nil
}

func checkStructWithCopy(n *ast.StructWithCopy, env *symbols.Env) (decorated.Expression, error) {
	old, err := checkExpression(n.Old, env)
	if err != nil {
		return nil, err
	}
	st, subst, err := structOf(old.Type(), env, n.Token)
	if err != nil {
		return nil, err
	}

	updated := set.New[string](len(n.Updates))
	var updates []decorated.FieldAssignment
	for _, u := range n.Updates {
		field, ok := st.Field(u.Name)
		if !ok {
			return nil, undefined(u.Token, "field", u.Name)
		}
		if !updated.Insert(u.Name) {
			return nil, diagnostics.NewError(diagnostics.ErrA004, u.Token, u.Name, "copy of "+old.Type().String())
		}
		value, err := checkExpression(u.Value, env)
		if err != nil {
			return nil, err
		}
		if want := field.Type.Apply(subst); !typesystem.Equal(want, value.Type()) {
			return nil, mismatch(u.Token, "field %s: expected %s, got %s", u.Name, want, value.Type())
		}
		updates = append(updates, decorated.FieldAssignment{Name: u.Name, Value: value})
	}
	return &decorated.StructWithCopy{Old: old, Updates: updates, ResolvedType: old.Type()}, nil
}

// describePayload is used in match diagnostics.
func describePayload(tag typesystem.Tag) string {
	if tag.Payload == nil {
		return tag.Name
	}
	return fmt.Sprintf("%s of %s", tag.Name, tag.Payload)
}
