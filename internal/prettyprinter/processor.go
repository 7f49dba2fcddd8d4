package prettyprinter

import (
	"github.com/sampl-lang/sampl/internal/codegen"
	"github.com/sampl-lang/sampl/internal/pipeline"
)

// FormatProcessor renders ctx.Decorated into ctx.Canonical.
type FormatProcessor struct{}

func (fp *FormatProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.Decorated == nil {
		return ctx
	}
	ctx.Canonical = Print(ctx.Decorated, codegen.Spaces(ctx.Settings().Indent.Pretty))
	return ctx
}
