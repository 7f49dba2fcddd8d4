package pipeline

import (
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/config"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/token"
)

// PipelineContext carries one compilation through the stages.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	Config     *config.Config

	TokenStream []token.Token
	AstRoot     *ast.Program
	Decorated   *decorated.Program
	Env         *symbols.Env

	// Canonical is the pretty printed program, HostCode the transpiled one.
	Canonical string
	HostCode  string

	Errors []*diagnostics.DiagnosticError
}

// NewContext creates a context for source read from filePath. A nil cfg
// means the default configuration.
func NewContext(source, filePath string, cfg *config.Config) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PipelineContext{SourceCode: source, FilePath: filePath, Config: cfg}
}

func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// AddError records err, stamping the file path when it is missing.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// Settings returns the configuration, or the defaults when none is set.
func (ctx *PipelineContext) Settings() *config.Config {
	if ctx.Config == nil {
		return config.Default()
	}
	return ctx.Config
}
