package analyzer

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// checkApplication checks a call. Supplying fewer arguments than the callee
// takes is a partial application whose type is a function over the
// remaining parameters.
func checkApplication(n *ast.Application, env *symbols.Env) (decorated.Expression, error) {
	var args []decorated.Expression
	for _, a := range n.Arguments {
		arg, err := checkExpression(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	var callee decorated.Expression
	var err error
	if ident, ok := n.Function.(*ast.Identifier); ok && len(ident.Generics) == 0 {
		callee, err = checkIdentifier(ident, env, nonNil(args))
	} else {
		callee, err = checkExpression(n.Function, env)
	}
	if err != nil {
		return nil, err
	}

	fn, ok := callee.Type().(typesystem.TFunc)
	if !ok {
		return nil, mismatch(n.Token, "cannot call a value of type %s", callee.Type())
	}
	if len(args) > len(fn.Params) {
		return nil, mismatch(n.Token, "too many arguments: %s takes %d, got %d", fn, len(fn.Params), len(args))
	}
	for i, arg := range args {
		if !typesystem.Equal(fn.Params[i], arg.Type()) {
			return nil, mismatch(n.Arguments[i].GetToken(), "argument %d: expected %s, got %s", i+1, fn.Params[i], arg.Type())
		}
	}

	var result typesystem.Type = fn.ReturnType
	if len(args) < len(fn.Params) {
		result = typesystem.TFunc{Params: fn.Params[len(args):], ReturnType: fn.ReturnType}
	}
	return &decorated.FunctionApplication{Function: callee, Arguments: args, ResolvedType: result}, nil
}

// nonNil marks an identifier as a callee even when no arguments are supplied.
func nonNil(args []decorated.Expression) []decorated.Expression {
	if args == nil {
		return []decorated.Expression{}
	}
	return args
}
