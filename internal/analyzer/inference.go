package analyzer

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// checkExpression computes the type of e from the types of its children.
func checkExpression(e ast.Expression, env *symbols.Env) (decorated.Expression, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return checkLiteral(n)
	case *ast.Identifier:
		return checkIdentifier(n, env, nil)
	case *ast.NoArgVariant:
		return checkNoArgVariant(n, env)
	case *ast.OneArgVariant:
		return checkOneArgVariant(n, env)
	case *ast.StructConstructor:
		return checkStructConstructor(n, env)
	case *ast.StructWithCopy:
		return checkStructWithCopy(n, env)
	case *ast.MemberAccess:
		return checkMemberAccess(n, env)
	case *ast.Not:
		return checkNot(n, env)
	case *ast.Binary:
		return checkBinary(n, env)
	case *ast.Throw:
		return checkThrow(n, env)
	case *ast.IfElse:
		return checkIfElse(n, env)
	case *ast.Match:
		return checkMatch(n, env)
	case *ast.Application:
		return checkApplication(n, env)
	case *ast.Lambda:
		return checkLambda(n, env)
	case *ast.TryCatch:
		return checkTryCatch(n, env)
	case *ast.Let:
		return checkLet(n, env)
	}
	return nil, diagnostics.NewError(diagnostics.ErrP003, e.GetToken(), "unsupported expression")
}

func checkNot(n *ast.Not, env *symbols.Env) (decorated.Expression, error) {
	operand, err := checkExpression(n.Expr, env)
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(operand.Type(), typesystem.Bool) {
		return nil, mismatch(n.Token, "operator '!' expects Bool, got %s", operand.Type())
	}
	return &decorated.Not{Expr: operand}, nil
}

var (
	numericTypes    = []typesystem.Type{typesystem.Int, typesystem.Float}
	comparableTypes = []typesystem.Type{typesystem.Int, typesystem.Float, typesystem.Char, typesystem.String}
)

func oneOf(t typesystem.Type, types []typesystem.Type) bool {
	for _, candidate := range types {
		if typesystem.Equal(t, candidate) {
			return true
		}
	}
	return false
}

// binaryResult returns the result type of op applied to operands of type t,
// which is already known to be the type of both sides.
func binaryResult(op ast.BinaryOperator, t typesystem.Type) (typesystem.Type, bool) {
	switch op {
	case ast.MUL, ast.DIV, ast.MOD, ast.PLUS, ast.MINUS:
		return t, oneOf(t, numericTypes)
	case ast.STR_CONCAT:
		return t, typesystem.Equal(t, typesystem.String)
	case ast.LT, ast.LE, ast.GT, ast.GE:
		return typesystem.Bool, oneOf(t, comparableTypes)
	case ast.STRUCT_EQ, ast.STRUCT_NE:
		return typesystem.Bool, true
	case ast.AND, ast.OR:
		return t, typesystem.Equal(t, typesystem.Bool)
	}
	return nil, false
}

func checkBinary(n *ast.Binary, env *symbols.Env) (decorated.Expression, error) {
	left, err := checkExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := checkExpression(n.Right, env)
	if err != nil {
		return nil, err
	}
	lt, rt := left.Type(), right.Type()
	if !typesystem.Equal(lt, rt) {
		return nil, mismatch(n.Token, "operator '%s' cannot be applied to %s and %s", n.Operator, lt, rt)
	}
	result, ok := binaryResult(n.Operator, lt)
	if !ok {
		return nil, mismatch(n.Token, "operator '%s' cannot be applied to %s", n.Operator, lt)
	}
	return &decorated.Binary{Operator: n.Operator, Left: left, Right: right, ResolvedType: result}, nil
}

// checkIdentifier resolves a value or function name. args are the already
// checked arguments when the identifier is the callee of an application;
// they drive generic inference when no type arguments are written.
func checkIdentifier(n *ast.Identifier, env *symbols.Env, args []decorated.Expression) (decorated.Expression, error) {
	if t, ok := env.LookupValue(n.Name); ok {
		if len(n.Generics) > 0 {
			return nil, mismatch(n.Token, "value '%s' does not take type arguments", n.Name)
		}
		return &decorated.VariableIdentifier{Name: n.Name, Category: decorated.Value, ResolvedType: t}, nil
	}

	info, ok := env.LookupFunction(n.Name)
	if !ok {
		return nil, undefined(n.Token, "identifier", n.Name)
	}
	ident := &decorated.VariableIdentifier{Name: n.Name, Category: decorated.ClassFunctionRef}
	if info.Category == symbols.Provided {
		ident.Category = decorated.ProvidedFunctionRef
	}

	if len(info.Generics) == 0 {
		if len(n.Generics) > 0 {
			return nil, mismatch(n.Token, "function '%s' is not generic", n.Name)
		}
		ident.ResolvedType = info.Type
		return ident, nil
	}

	var subst typesystem.Subst
	switch {
	case len(n.Generics) > 0:
		if len(n.Generics) != len(info.Generics) {
			return nil, mismatch(n.Token, "function '%s' expects %d type arguments, got %d", n.Name, len(info.Generics), len(n.Generics))
		}
		if err := validateTypes(n.Generics, env, n.Token); err != nil {
			return nil, err
		}
		subst = typesystem.Zip(info.Generics, n.Generics)
	case args != nil:
		subst = typesystem.Subst{}
		for i, arg := range args {
			if i >= len(info.Type.Params) {
				break
			}
			if err := typesystem.Unify(info.Type.Params[i], arg.Type(), info.Generics, subst); err != nil {
				return nil, mismatch(n.Token, "argument %d of %s: %v", i+1, n.Name, err)
			}
		}
	default:
		return nil, mismatch(n.Token, "generic function '%s' needs type arguments here", n.Name)
	}

	generics, err := instantiation(info.Generics, subst, n.Token, n.Name)
	if err != nil {
		return nil, err
	}
	ident.Generics = generics
	ident.ResolvedType = info.Type.Apply(subst)
	return ident, nil
}

func checkMemberAccess(n *ast.MemberAccess, env *symbols.Env) (decorated.Expression, error) {
	receiver, err := checkExpression(n.Expr, env)
	if err != nil {
		return nil, err
	}
	st, subst, err := structOf(receiver.Type(), env, n.Token)
	if err != nil {
		return nil, err
	}
	field, ok := st.Field(n.Member)
	if !ok {
		return nil, undefined(n.Token, "field", n.Member)
	}
	return &decorated.StructMemberAccess{Expr: receiver, Member: n.Member, ResolvedType: field.Type.Apply(subst)}, nil
}
