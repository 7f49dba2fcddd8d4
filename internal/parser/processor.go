package parser

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/lexer"
	"github.com/sampl-lang/sampl/internal/pipeline"
	"github.com/sampl-lang/sampl/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if ctx.TokenStream == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP003, token.Token{}, "parser: token stream is nil"))
		return ctx
	}

	parser := New(ctx.TokenStream)
	program := parser.ParseProgram()
	if errs := parser.Errors(); len(errs) > 0 {
		// Fail fast: later errors are usually consequences of the first.
		ctx.AddError(errs[0])
		return ctx
	}
	program.File = ctx.FilePath
	ctx.AstRoot = program
	return ctx
}

// ParseSource lexes and parses source in one step.
func ParseSource(source string) (*ast.Program, error) {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(&pipeline.PipelineContext{SourceCode: source})
	if ctx.Failed() {
		return nil, ctx.Errors[0]
	}
	return ctx.AstRoot, nil
}
