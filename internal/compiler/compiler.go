// Package compiler assembles the processing stages into the pipelines the
// command line uses.
package compiler

import (
	"context"

	"github.com/sampl-lang/sampl/internal/analyzer"
	"github.com/sampl-lang/sampl/internal/cache"
	"github.com/sampl-lang/sampl/internal/config"
	"github.com/sampl-lang/sampl/internal/lexer"
	"github.com/sampl-lang/sampl/internal/parser"
	"github.com/sampl-lang/sampl/internal/pipeline"
	"github.com/sampl-lang/sampl/internal/prettyprinter"
	"github.com/sampl-lang/sampl/internal/transpiler"
)

// Check parses and type checks.
func Check() *pipeline.Pipeline {
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.TypeCheckProcessor{},
	)
}

// Format produces the canonical text and verifies that it round trips.
func Format() *pipeline.Pipeline {
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.TypeCheckProcessor{},
		&prettyprinter.FormatProcessor{},
		&RoundTripProcessor{},
	)
}

// Build runs every stage, ending with the Kotlin output.
func Build() *pipeline.Pipeline {
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.TypeCheckProcessor{},
		&prettyprinter.FormatProcessor{},
		&RoundTripProcessor{},
		&transpiler.KotlinProcessor{},
	)
}

// Result is the outcome of a cached build.
type Result struct {
	Context *pipeline.PipelineContext
	// Cached is set when the output came from the store.
	Cached  bool
	BuildID string
}

// CachedBuild builds source, reusing the output stored for an identical
// source and configuration. A nil store disables caching. Only successful
// builds are stored.
func CachedBuild(ctx context.Context, store *cache.Store, source, path string, cfg *config.Config) (Result, error) {
	pctx := pipeline.NewContext(source, path, cfg)
	if store == nil {
		return Result{Context: Build().Run(pctx)}, nil
	}

	key := cache.Key(source, pctx.Settings())
	entry, ok, err := store.Lookup(ctx, key)
	if err != nil {
		return Result{}, err
	}
	if ok {
		pctx.Canonical = entry.Canonical
		pctx.HostCode = entry.Kotlin
		return Result{Context: pctx, Cached: true, BuildID: entry.BuildID}, nil
	}

	pctx = Build().Run(pctx)
	if pctx.Failed() {
		return Result{Context: pctx}, nil
	}
	entry, err = store.Store(ctx, cache.Entry{
		Key:       key,
		Source:    source,
		Canonical: pctx.Canonical,
		Kotlin:    pctx.HostCode,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Context: pctx, BuildID: entry.BuildID}, nil
}
