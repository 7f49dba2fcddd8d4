package lexer

import (
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/pipeline"
	"github.com/sampl-lang/sampl/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	ctx.TokenStream = Tokenize(ctx.SourceCode)

	for _, tok := range ctx.TokenStream {
		if tok.Type == token.ILLEGAL {
			ctx.AddError(diagnostics.NewError(diagnostics.ErrP003, tok, "illegal token '"+tok.Lexeme+"'"))
			break
		}
	}
	return ctx
}
