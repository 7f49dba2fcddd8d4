package prettyprinter_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/tools/txtar"

	"github.com/sampl-lang/sampl/internal/analyzer"
	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/codegen"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/parser"
	"github.com/sampl-lang/sampl/internal/prettyprinter"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

func check(t *testing.T, source string) *decorated.Program {
	t.Helper()
	raw, err := parser.ParseSource(source)
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, source)
	}
	program, _, err := analyzer.TypeCheck(raw, symbols.New())
	if err != nil {
		t.Fatalf("type error: %v\nsource:\n%s", err, source)
	}
	return program
}

func archiveFile(t *testing.T, a *txtar.Archive, name string) string {
	t.Helper()
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("archive has no %s", name)
	return ""
}

func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden files found")
	}
	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}
			input := archiveFile(t, archive, "input.sampl")
			want := archiveFile(t, archive, "want.sampl")

			original := check(t, input)
			got := prettyprinter.Print(original, codegen.TwoSpaces)
			if got != want {
				t.Fatalf("canonical output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
			}

			reparsed := check(t, got)
			if !reflect.DeepEqual(original, reparsed) {
				t.Fatalf("round trip changed the tree\n--- original ---\n%s\n--- reparsed ---\n%s",
					spew.Sdump(original), spew.Sdump(reparsed))
			}
			if again := prettyprinter.Print(reparsed, codegen.TwoSpaces); again != got {
				t.Errorf("printing is not idempotent\n%s", again)
			}
		})
	}
}

func TestIndentationFollowsStrategy(t *testing.T) {
	program := check(t, "class Main { fun one(): Int = 1 }")
	got := prettyprinter.Print(program, codegen.FourSpaces)
	want := "class Main {\n    fun one(): Int =\n        1\n}\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBareClass(t *testing.T) {
	program := check(t, "class Main")
	if got := prettyprinter.Print(program, codegen.TwoSpaces); got != "class Main\n" {
		t.Errorf("expected a bare header, got %q", got)
	}
}

func TestPrintExpression(t *testing.T) {
	tests := []struct {
		name string
		expr decorated.Expression
		want string
	}{
		{
			name: "LeftNestedBinary",
			expr: &decorated.Binary{
				Operator:     ast.MUL,
				Left:         &decorated.Binary{Operator: ast.PLUS, Left: intLit("1"), Right: intLit("2"), ResolvedType: typesystem.Int},
				Right:        intLit("3"),
				ResolvedType: typesystem.Int,
			},
			want: "(1 + 2) * 3",
		},
		{
			name: "AnonymousLet",
			expr: &decorated.Let{Value: intLit("1"), Body: intLit("2")},
			want: "val _ = 1;\n2",
		},
		{
			name: "LetInsideBinary",
			expr: &decorated.Binary{
				Operator:     ast.PLUS,
				Left:         intLit("1"),
				Right:        &decorated.Let{Name: "x", Value: intLit("2"), Body: intLit("3")},
				ResolvedType: typesystem.Int,
			},
			want: "1 + (val x = 2; 3)",
		},
		{
			name: "NotOfApplication",
			expr: &decorated.Not{Expr: &decorated.FunctionApplication{
				Function:     &decorated.VariableIdentifier{Name: "f", ResolvedType: typesystem.TFunc{ReturnType: typesystem.Bool}},
				ResolvedType: typesystem.Bool,
			}},
			want: "!f()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prettyprinter.PrintExpression(tt.expr, codegen.TwoSpaces); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestUpdateGolden(t *testing.T) {
	if os.Getenv("SAMPL_UPDATE_GOLDEN") == "" {
		t.Skip("set SAMPL_UPDATE_GOLDEN=1 to rewrite testdata")
	}
	paths, _ := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	for _, path := range paths {
		archive, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatal(err)
		}
		got := prettyprinter.Print(check(t, archiveFile(t, archive, "input.sampl")), codegen.TwoSpaces)
		for i := range archive.Files {
			if archive.Files[i].Name == "want.sampl" {
				archive.Files[i].Data = []byte(got)
			}
		}
		if err := os.WriteFile(path, txtar.Format(archive), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func intLit(text string) decorated.Expression {
	return &decorated.Literal{Kind: ast.IntLiteral, Text: text, ResolvedType: typesystem.Int}
}
