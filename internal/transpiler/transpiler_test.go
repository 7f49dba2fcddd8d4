package transpiler_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/sampl-lang/sampl/internal/analyzer"
	"github.com/sampl-lang/sampl/internal/codegen"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/parser"
	"github.com/sampl-lang/sampl/internal/symbols"
	"github.com/sampl-lang/sampl/internal/transpiler"
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

func transpile(t *testing.T, source string) string {
	t.Helper()
	return transpiler.Transpile(check(t, source), codegen.FourSpaces, transpiler.Options{EntryPoint: true})
}

func expectContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(output, f) {
			t.Errorf("output does not contain %q\n%s", f, output)
		}
	}
}

func expectNotContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if strings.Contains(output, f) {
			t.Errorf("output unexpectedly contains %q\n%s", f, output)
		}
	}
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
			files := map[string]string{}
			for _, f := range archive.Files {
				files[f.Name] = string(f.Data)
			}
			input, ok := files["input.sampl"]
			if !ok {
				t.Fatal("archive has no input.sampl")
			}
			want, ok := files["want.kt"]
			if !ok {
				t.Fatal("archive has no want.kt")
			}
			if got := transpile(t, input); got != want {
				t.Fatalf("kotlin output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
			}
		})
	}
}

func TestPartialApplicationNumbersPlaceholdersFromSuppliedCount(t *testing.T) {
	out := transpile(t, `class Main {
  fun add3(a: Int, b: Int, c: Int): Int = a + b + c
  val one = add3(1)
  val two = add3(1, 2)
  val all = add3(1, 2, 3)
}`)
	expectContains(t, out,
		"val one: (Int, Int) -> Int = { _tempV1: Int, _tempV2: Int -> add3(1, _tempV1, _tempV2) }",
		"val two: (Int) -> Int = { _tempV2: Int -> add3(1, 2, _tempV2) }",
		"val all: Int = add3(1, 2, 3)",
	)
}

func TestFunctionUsedAsValueBecomesClosure(t *testing.T) {
	out := transpile(t, `class Main {
  fun inc(a: Int): Int = a + 1
  fun <T> id(x: T): T = x
  val f = inc
  val g = id<String>
  val p = println
}`)
	expectContains(t, out,
		"val f: (Int) -> Int = { _tempV0: Int -> inc(_tempV0) }",
		"val g: (String) -> String = { _tempV0: String -> id<String>(_tempV0) }",
		"val p: (String) -> Unit = { _tempV0: String -> println(_tempV0) }",
	)
}

func TestEntryPoint(t *testing.T) {
	tests := []struct {
		name   string
		source string
		opts   transpiler.Options
		want   bool
	}{
		{
			name:   "eligible",
			source: `class App { fun main(): Unit = () }`,
			opts:   transpiler.Options{EntryPoint: true},
			want:   true,
		},
		{
			name:   "disabled by options",
			source: `class App { fun main(): Unit = () }`,
			opts:   transpiler.Options{EntryPoint: false},
		},
		{
			name:   "private main",
			source: `class App { private fun main(): Unit = () }`,
			opts:   transpiler.Options{EntryPoint: true},
		},
		{
			name:   "main with arguments",
			source: `class App { fun main(a: Int): Unit = () }`,
			opts:   transpiler.Options{EntryPoint: true},
		},
		{
			name:   "main returning Int",
			source: `class App { fun main(): Int = 0 }`,
			opts:   transpiler.Options{EntryPoint: true},
		},
		{
			name:   "main in a nested class",
			source: `class App { class Inner { fun main(): Unit = () } }`,
			opts:   transpiler.Options{EntryPoint: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := transpiler.Transpile(check(t, tt.source), codegen.FourSpaces, tt.opts)
			got := strings.Contains(out, "fun main(args: Array<String>) {\n    App.main()\n}")
			if got != tt.want {
				t.Errorf("entry point emitted = %v, want %v\n%s", got, tt.want, out)
			}
		})
	}
}

func TestLiteralsUseHostSpelling(t *testing.T) {
	out := transpile(t, `class Main {
  val u = ()
  val f = 1.5
  val b = true && false
  val c = '\0'
  val s = "costs $5\n"
  val t = "a" ^ "b"
}`)
	expectContains(t, out,
		"val u: Unit = Unit",
		"val f: Double = 1.5",
		"val b: Boolean = true && false",
		`val c: Char = '\u0000'`,
		`val s: String = "costs \$5\n"`,
		`val t: String = "a" + "b"`,
	)
}

func TestOperandsAreParenthesized(t *testing.T) {
	out := transpile(t, `class Main {
  val a = (1 + 2) * 3
  val b = !(1 < 2)
  val c = {(x: Int) -> x}(1)
}`)
	expectContains(t, out,
		"val a: Int = (1 + 2) * 3",
		"val b: Boolean = !(1 < 2)",
		"val c: Int = ({ x: Int -> x })(1)",
	)
}

func TestReservedNamesAreQuoted(t *testing.T) {
	out := transpile(t, `class Main {
  fun is(in: Int): Int = in
  val when = is(1)
}`)
	expectContains(t, out,
		"fun `is`(`in`: Int): Int = `in`",
		"val `when`: Int = `is`(1)",
	)
}

func TestEmptyClasses(t *testing.T) {
	out := transpile(t, `class Main {
  class Empty
  class Holder {
    val x = 1
  }
}`)
	expectContains(t, out,
		"    class Empty\n",
		"    class Holder {\n        companion object {\n            val x: Int = 1\n        }\n    }",
	)
	expectNotContains(t, out, "fun copy(")
}

func TestNestedTypesAreQualifiedOutsideTheirParent(t *testing.T) {
	out := transpile(t, `class Main {
  class Outer {
    class Inner(value: Int)
    val make = Inner { value = 1; }
  }
  val v = Outer.make
}`)
	expectContains(t, out,
		"    class Outer {\n        companion object {\n            val make: Inner = Inner(value = 1)\n        }\n\n        class Inner(",
		"val v: Main.Outer.Inner = Outer.make",
	)
}

func TestEscapedNestedTypesAreMatchedAndAccessed(t *testing.T) {
	out := transpile(t, `class Main {
  class A {
    class B(| X | Y)
    class P(x: Int)
    fun mk(): B = B.X
    fun point(): P = P { x = 1; }
  }
  val v = match A.mk() with | X -> 1 | Y -> 2
  val w = A.point().x
}`)
	expectContains(t, out,
		"when (val _match0 = A.mk()) {",
		"is Main.A.B.X -> {",
		"is Main.A.B.Y -> {",
		"A.point().x",
	)
}

func TestIndentationFollowsStrategy(t *testing.T) {
	program := check(t, `class Main { val x = 1 }`)
	out := transpiler.Transpile(program, codegen.TwoSpaces, transpiler.Options{})
	expectContains(t, out, "class Main {\n  companion object {\n    val x: Int = 1\n  }\n}\n")
}

func TestTranspileExpression(t *testing.T) {
	program := check(t, `class Main { val x = if (true) then (1) else (2) }`)
	constant := program.Class.Members[0].(*decorated.Constant)
	got := transpiler.TranspileExpression(constant.Value, codegen.TwoSpaces)
	want := "if (true) {\n  1\n} else {\n  2\n}"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestUpdateGolden rewrites the want.kt sections from the current output.
// It only runs when SAMPL_UPDATE_GOLDEN is set.
func TestUpdateGolden(t *testing.T) {
	if os.Getenv("SAMPL_UPDATE_GOLDEN") == "" {
		t.Skip("set SAMPL_UPDATE_GOLDEN to rewrite golden files")
	}
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range paths {
		archive, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatal(err)
		}
		var out string
		for _, f := range archive.Files {
			if f.Name == "input.sampl" {
				out = transpile(t, string(f.Data))
			}
		}
		for i := range archive.Files {
			if archive.Files[i].Name == "want.kt" {
				archive.Files[i].Data = []byte(out)
			}
		}
		if err := os.WriteFile(path, txtar.Format(archive), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}
