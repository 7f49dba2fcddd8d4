package analyzer

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/config"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// checkFunctionGroup binds every signature of the group before checking any
// body, so functions of one group may call each other in any order.
func checkFunctionGroup(g *ast.FunctionGroup, env *symbols.Env) (decorated.ClassMember, *symbols.Env, error) {
	names := set.New[string](len(g.Functions))
	for _, fn := range g.Functions {
		if err := checkName(fn.Name, fn.Token); err != nil {
			return nil, nil, err
		}
		if !names.Insert(fn.Name) {
			return nil, nil, diagnostics.NewError(diagnostics.ErrA004, fn.Token, fn.Name, "function group")
		}
		if err := checkSignature(fn, env); err != nil {
			return nil, nil, err
		}
	}

	groupEnv := env
	for _, fn := range g.Functions {
		groupEnv = groupEnv.BindFunction(fn.Name, fn.Type(), fn.Generics, symbols.UserDefined)
	}

	group := &decorated.FunctionGroup{}
	for _, fn := range g.Functions {
		checked, err := checkFunctionBody(fn, groupEnv)
		if err != nil {
			return nil, nil, err
		}
		group.Functions = append(group.Functions, checked)
	}
	return group, groupEnv, nil
}

func checkSignature(fn *ast.Function, env *symbols.Env) error {
	if err := checkGenericNames(fn.Generics, fn.Token, "function "+fn.Name); err != nil {
		return err
	}
	sigEnv := declareGenerics(env, fn.Generics)
	if err := checkArguments(fn.Arguments, sigEnv, "arguments of "+fn.Name); err != nil {
		return err
	}
	return validateType(fn.ReturnType, sigEnv, fn.Token, diagnostics.ErrA001)
}

// checkArguments validates argument types and rejects repeated names.
func checkArguments(args []ast.Argument, env *symbols.Env, where string) error {
	names := set.New[string](len(args))
	for _, arg := range args {
		if err := checkName(arg.Name, arg.Token); err != nil {
			return err
		}
		if !names.Insert(arg.Name) {
			return diagnostics.NewError(diagnostics.ErrA004, arg.Token, arg.Name, where)
		}
		if err := validateType(arg.Type, env, arg.Token, diagnostics.ErrA001); err != nil {
			return err
		}
	}
	return nil
}

// bindArguments extends env with the arguments and returns their decorated form.
func bindArguments(args []ast.Argument, env *symbols.Env) ([]decorated.Argument, *symbols.Env) {
	var out []decorated.Argument
	for _, arg := range args {
		env = env.BindValue(arg.Name, arg.Type)
		out = append(out, decorated.Argument{Name: arg.Name, Type: arg.Type})
	}
	return out, env
}

func checkFunctionBody(fn *ast.Function, env *symbols.Env) (*decorated.ClassFunction, error) {
	arguments, bodyEnv := bindArguments(fn.Arguments, declareGenerics(env, fn.Generics))
	body, err := checkExpression(fn.Body, bodyEnv)
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(body.Type(), fn.ReturnType) {
		return nil, mismatch(fn.Body.GetToken(), "function %s returns %s, but its body has type %s", fn.Name, fn.ReturnType, body.Type())
	}
	return &decorated.ClassFunction{
		Category:   symbols.UserDefined,
		IsPublic:   fn.IsPublic,
		Name:       fn.Name,
		Generics:   fn.Generics,
		Arguments:  arguments,
		ReturnType: fn.ReturnType,
		Body:       body,
	}, nil
}

func mismatch(tok token.Token, format string, args ...interface{}) error {
	return diagnostics.NewError(diagnostics.ErrA002, tok, fmt.Sprintf(format, args...))
}

// checkName rejects a declared name that generated code could capture.
func checkName(name string, tok token.Token) error {
	if config.IsReserved(name) {
		return diagnostics.NewError(diagnostics.ErrA006, tok, name)
	}
	return nil
}

func undefined(tok token.Token, kind, name string) error {
	return diagnostics.NewError(diagnostics.ErrA001, tok, kind, name)
}
