package transpiler

import (
	"github.com/sampl-lang/sampl/internal/codegen"
	"github.com/sampl-lang/sampl/internal/pipeline"
)

// KotlinProcessor transpiles ctx.Decorated into ctx.HostCode.
type KotlinProcessor struct{}

func (kp *KotlinProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.Decorated == nil {
		return ctx
	}
	settings := ctx.Settings()
	ctx.HostCode = Transpile(ctx.Decorated, codegen.Spaces(settings.Indent.Host), Options{
		EntryPoint: settings.EmitEntryPoint(),
	})
	return ctx
}
