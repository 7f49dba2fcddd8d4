package analyzer

import (
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/pipeline"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/token"
)

// TypeCheckProcessor decorates ctx.AstRoot. The environment starts with the
// primitive types and the prelude.
type TypeCheckProcessor struct{}

func (tp *TypeCheckProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if ctx.AstRoot == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP003, token.Token{}, "type checker: no syntax tree"))
		return ctx
	}

	program, env, err := TypeCheck(ctx.AstRoot, symbols.New())
	if err != nil {
		d, ok := diagnostics.AsDiagnostic(err)
		if !ok {
			d = diagnostics.NewError(diagnostics.ErrP003, token.Token{}, err.Error())
		}
		ctx.AddError(d)
		return ctx
	}
	ctx.Decorated = program
	ctx.Env = env
	return ctx
}
