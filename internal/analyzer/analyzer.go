package analyzer

import (
	"fmt"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
	"github.com/sampl-lang/sampl/internal/utils"
)

// TypeCheck checks a whole program against env and returns the decorated
// tree together with the environment after the root class. The first
// violation aborts checking.
func TypeCheck(program *ast.Program, env *symbols.Env) (*decorated.Program, *symbols.Env, error) {
	if program == nil || program.Class == nil {
		return nil, nil, diagnostics.NewError(diagnostics.ErrP003, token.Token{}, "program has no root class")
	}
	if err := checkClassNames(program.Class); err != nil {
		return nil, nil, err
	}
	class, out, err := checkClass(program.Class, env)
	if err != nil {
		return nil, nil, err
	}
	return &decorated.Program{Class: class}, out, nil
}

// CheckMember checks one class member under env and returns the environment
// its later siblings see.
func CheckMember(member ast.ClassMember, env *symbols.Env) (decorated.ClassMember, *symbols.Env, error) {
	switch m := member.(type) {
	case *ast.Constant:
		return checkConstant(m, env)
	case *ast.FunctionGroup:
		return checkFunctionGroup(m, env)
	case *ast.Class:
		return checkClass(m, env)
	}
	return nil, nil, diagnostics.NewError(diagnostics.ErrP003, member.GetToken(), "unknown class member")
}

func checkConstant(c *ast.Constant, env *symbols.Env) (decorated.ClassMember, *symbols.Env, error) {
	if err := checkName(c.Name, c.Token); err != nil {
		return nil, nil, err
	}
	value, err := checkExpression(c.Value, env)
	if err != nil {
		return nil, nil, err
	}
	constant := &decorated.Constant{
		IsPublic: c.IsPublic,
		Name:     c.Name,
		Value:    value,
		Type:     value.Type(),
	}
	return constant, env.BindValue(c.Name, constant.Type), nil
}

// checkClass enters the class, registers its own type and the types of its
// directly nested classes, validates the declaration, threads the members
// left to right and exits. The public members are then bound under their
// qualified names in the environment that is returned.
func checkClass(c *ast.Class, env *symbols.Env) (*decorated.Class, *symbols.Env, error) {
	name := c.Identifier.Name
	inner, err := env.EnterClass(name, c.Token)
	if err != nil {
		return nil, nil, err
	}

	declaration := normalizeDeclaration(c.Declaration)
	if err := checkGenericNames(c.Identifier.Generics, c.Token, "class "+name); err != nil {
		return nil, nil, err
	}
	inner, err = declareClassType(inner, c.Token, c.Identifier, declaration)
	if err != nil {
		return nil, nil, err
	}
	inner, err = declareNestedTypes(inner, c)
	if err != nil {
		return nil, nil, err
	}
	if err := validateDeclaration(c.Identifier, declaration, inner, c.Token); err != nil {
		return nil, nil, err
	}
	if err := checkTagNames(c, declaration); err != nil {
		return nil, nil, err
	}

	class := &decorated.Class{Identifier: c.Identifier, Declaration: declaration}
	for _, member := range c.Members {
		var dm decorated.ClassMember
		dm, inner, err = CheckMember(member, inner)
		if err != nil {
			return nil, nil, err
		}
		class.Members = append(class.Members, dm)
	}

	out := inner.ExitClass()
	return class, bindExports(out, class, name), nil
}

func declareClassType(env *symbols.Env, tok token.Token, id typesystem.TypeIdentifier, declaration typesystem.TypeDeclaration) (*symbols.Env, error) {
	for _, p := range typesystem.Primitives {
		if p.Name == id.Name {
			return nil, diagnostics.NewError(diagnostics.ErrA003, tok, "cannot redeclare primitive type "+id.Name)
		}
	}
	return env.DeclareClassType(id.Name, symbols.TypeInfo{Identifier: id, Declaration: declaration}), nil
}

// checkTagNames rejects a tag named like its class or one of the classes
// nested in it; both would be members of the same scope in the output.
func checkTagNames(c *ast.Class, declaration typesystem.TypeDeclaration) error {
	v, ok := declaration.(typesystem.Variant)
	if !ok {
		return nil
	}
	classes := map[string]bool{c.Identifier.Name: true}
	for _, member := range c.Members {
		if nested, ok := member.(*ast.Class); ok {
			classes[nested.Identifier.Name] = true
		}
	}
	for _, tag := range v.Tags {
		if classes[tag.Name] {
			return diagnostics.NewError(diagnostics.ErrA003, c.Token,
				fmt.Sprintf("tag '%s' of %s clashes with class %s", tag.Name, c.Identifier.Name, tag.Name))
		}
	}
	return nil
}

// normalizeDeclaration maps every empty declaration to the empty struct.
func normalizeDeclaration(d typesystem.TypeDeclaration) typesystem.TypeDeclaration {
	if d == nil || d.IsEmpty() {
		return typesystem.Struct{}
	}
	return d
}

// declareNestedTypes registers the directly nested classes so that the
// declaration and the members may refer to them before they are checked.
func declareNestedTypes(env *symbols.Env, c *ast.Class) (*symbols.Env, error) {
	seen := map[string]bool{}
	var err error
	for _, member := range c.Members {
		nested, ok := member.(*ast.Class)
		if !ok {
			continue
		}
		if seen[nested.Identifier.Name] {
			return nil, diagnostics.NewError(diagnostics.ErrA004, nested.Token, nested.Identifier.Name, "nested classes of "+c.Identifier.Name)
		}
		seen[nested.Identifier.Name] = true
		env, err = declareClassType(env, nested.Token, nested.Identifier, normalizeDeclaration(nested.Declaration))
		if err != nil {
			return nil, err
		}
	}
	return env, nil
}

// bindExports binds the public constants and functions of class, including
// those of its nested classes, under names qualified with prefix.
func bindExports(env *symbols.Env, class *decorated.Class, prefix string) *symbols.Env {
	for _, member := range class.Members {
		switch m := member.(type) {
		case *decorated.Constant:
			if m.IsPublic {
				env = env.BindValue(utils.QualifiedName(prefix, m.Name), m.Type)
			}
		case *decorated.FunctionGroup:
			for _, f := range m.Functions {
				if f.IsPublic {
					env = env.BindFunction(utils.QualifiedName(prefix, f.Name), f.Type(), f.Generics, f.Category)
				}
			}
		case *decorated.Class:
			env = bindExports(env, m, utils.QualifiedName(prefix, m.Identifier.Name))
		}
	}
	return env
}
