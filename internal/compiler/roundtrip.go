package compiler

import (
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/sampl-lang/sampl/internal/analyzer"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/parser"
	"github.com/sampl-lang/sampl/internal/pipeline"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/token"
)

// RoundTripProcessor checks that the canonical text of a program parses and
// type checks back to the same decorated tree.
type RoundTripProcessor struct{}

func (rp *RoundTripProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.Decorated == nil {
		return ctx
	}
	if err := VerifyRoundTrip(ctx.Decorated, ctx.Canonical); err != nil {
		d, ok := diagnostics.AsDiagnostic(err)
		if !ok {
			d = diagnostics.NewError(diagnostics.ErrR001, token.Token{}, err.Error())
		}
		ctx.AddError(d)
	}
	return ctx
}

// VerifyRoundTrip reparses canonical and compares the result with program.
// Failures are reported as R001 errors.
func VerifyRoundTrip(program *decorated.Program, canonical string) error {
	raw, err := parser.ParseSource(canonical)
	if err != nil {
		return diagnostics.NewError(diagnostics.ErrR001, token.Token{}, "canonical text does not parse: "+messageOf(err))
	}
	reparsed, _, err := analyzer.TypeCheck(raw, symbols.New())
	if err != nil {
		return diagnostics.NewError(diagnostics.ErrR001, token.Token{}, "canonical text does not type check: "+messageOf(err))
	}
	if !reflect.DeepEqual(program, reparsed) {
		return diagnostics.NewError(diagnostics.ErrR001, token.Token{}, firstDifference(program, reparsed))
	}
	return nil
}

func messageOf(err error) string {
	if d, ok := diagnostics.AsDiagnostic(err); ok {
		return d.Message()
	}
	return err.Error()
}

var dumper = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// firstDifference describes the first line on which the dumps of two trees
// disagree.
func firstDifference(want, got *decorated.Program) string {
	a := strings.Split(dumper.Sdump(want), "\n")
	b := strings.Split(dumper.Sdump(got), "\n")
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return "tree differs: " + strings.TrimSpace(a[i]) + " became " + strings.TrimSpace(b[i])
		}
	}
	return "tree differs in length"
}
