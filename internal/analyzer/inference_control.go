package analyzer

import (
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

func checkIfElse(n *ast.IfElse, env *symbols.Env) (decorated.Expression, error) {
	cond, err := checkExpression(n.Condition, env)
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(cond.Type(), typesystem.Bool) {
		return nil, mismatch(n.Condition.GetToken(), "condition must be Bool, got %s", cond.Type())
	}
	then, err := checkExpression(n.Then, env)
	if err != nil {
		return nil, err
	}
	els, err := checkExpression(n.Else, env)
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(then.Type(), els.Type()) {
		return nil, mismatch(n.Token, "if branches differ: %s and %s", then.Type(), els.Type())
	}
	return &decorated.IfElse{Condition: cond, Then: then, Else: els, ResolvedType: then.Type()}, nil
}

func checkThrow(n *ast.Throw, env *symbols.Env) (decorated.Expression, error) {
	if err := validateType(n.Type, env, n.Token, diagnostics.ErrA001); err != nil {
		return nil, err
	}
	msg, err := checkExpression(n.Expr, env)
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(msg.Type(), typesystem.String) {
		return nil, mismatch(n.Token, "throw expects a String message, got %s", msg.Type())
	}
	return &decorated.Throw{Expr: msg, ResolvedType: n.Type}, nil
}

func checkTryCatch(n *ast.TryCatch, env *symbols.Env) (decorated.Expression, error) {
	body, err := checkExpression(n.Try, env)
	if err != nil {
		return nil, err
	}
	if err := checkName(n.ExceptionName, n.Token); err != nil {
		return nil, err
	}
	handler, err := checkExpression(n.Catch, env.BindValue(n.ExceptionName, typesystem.String))
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(body.Type(), handler.Type()) {
		return nil, mismatch(n.Token, "try has type %s but catch has type %s", body.Type(), handler.Type())
	}
	return &decorated.TryCatch{Try: body, ExceptionName: n.ExceptionName, Catch: handler, ResolvedType: body.Type()}, nil
}

func checkLet(n *ast.Let, env *symbols.Env) (decorated.Expression, error) {
	if err := checkName(n.Name, n.Token); err != nil {
		return nil, err
	}
	value, err := checkExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	bodyEnv := env
	if n.Name != "" {
		bodyEnv = env.BindValue(n.Name, value.Type())
	}
	body, err := checkExpression(n.Body, bodyEnv)
	if err != nil {
		return nil, err
	}
	return &decorated.Let{Name: n.Name, Value: value, Body: body}, nil
}

func checkLambda(n *ast.Lambda, env *symbols.Env) (decorated.Expression, error) {
	if err := checkArguments(n.Arguments, env, "lambda arguments"); err != nil {
		return nil, err
	}
	arguments, bodyEnv := bindArguments(n.Arguments, env)
	body, err := checkExpression(n.Body, bodyEnv)
	if err != nil {
		return nil, err
	}
	var params []typesystem.Type
	for _, a := range arguments {
		params = append(params, a.Type)
	}
	return &decorated.Lambda{
		Arguments:    arguments,
		Body:         body,
		ResolvedType: typesystem.TFunc{Params: params, ReturnType: body.Type()},
	}, nil
}

// checkMatch checks every arm against the same starting environment. A
// variable or wildcard arm matches everything, so at most one is allowed
// and only as the last arm; without one every tag must be covered.
func checkMatch(n *ast.Match, env *symbols.Env) (decorated.Expression, error) {
	scrutinee, err := checkExpression(n.Expr, env)
	if err != nil {
		return nil, err
	}
	variant, subst, err := variantOf(scrutinee.Type(), env, n.Expr.GetToken())
	if err != nil {
		return nil, err
	}

	covered := set.New[string](len(variant.Tags))
	catchAll := false
	match := &decorated.Match{Expr: scrutinee}
	for _, c := range n.Cases {
		tok := c.Pattern.GetToken()
		if catchAll {
			return nil, diagnostics.NewError(diagnostics.ErrA005, tok, "unreachable arm after a catch-all pattern")
		}

		var pattern decorated.Pattern
		armEnv := env
		switch p := c.Pattern.(type) {
		case *ast.VariantPattern:
			tag, ok := variant.Tag(p.Tag)
			if !ok {
				return nil, undefined(tok, "tag", scrutinee.Type().String()+"."+p.Tag)
			}
			if !covered.Insert(p.Tag) {
				return nil, diagnostics.NewError(diagnostics.ErrA005, tok, "tag "+p.Tag+" is matched twice")
			}
			if p.Variable != "" {
				if err := checkName(p.Variable, tok); err != nil {
					return nil, err
				}
				if tag.Payload == nil {
					return nil, mismatch(tok, "tag %s has no value to bind to %s", describePayload(tag), p.Variable)
				}
				armEnv = env.BindValue(p.Variable, tag.Payload.Apply(subst))
			}
			pattern = &decorated.VariantPattern{Tag: p.Tag, Variable: p.Variable}
		case *ast.VariablePattern:
			if err := checkName(p.Name, tok); err != nil {
				return nil, err
			}
			catchAll = true
			armEnv = env.BindValue(p.Name, scrutinee.Type())
			pattern = &decorated.VariablePattern{Name: p.Name}
		case *ast.WildcardPattern:
			catchAll = true
			pattern = &decorated.WildcardPattern{}
		default:
			return nil, diagnostics.NewError(diagnostics.ErrP003, tok, "unsupported pattern")
		}

		body, err := checkExpression(c.Body, armEnv)
		if err != nil {
			return nil, err
		}
		if match.ResolvedType == nil {
			match.ResolvedType = body.Type()
		} else if !typesystem.Equal(match.ResolvedType, body.Type()) {
			return nil, mismatch(c.Body.GetToken(), "match arms differ: %s and %s", match.ResolvedType, body.Type())
		}
		match.Cases = append(match.Cases, decorated.MatchCase{Pattern: pattern, Body: body})
	}

	if !catchAll {
		var missing []string
		for _, tag := range variant.Tags {
			if !covered.Contains(tag.Name) {
				missing = append(missing, tag.Name)
			}
		}
		if len(missing) > 0 {
			return nil, diagnostics.NewError(diagnostics.ErrA005, n.Token, "missing tags "+strings.Join(missing, ", "))
		}
	}
	return match, nil
}
