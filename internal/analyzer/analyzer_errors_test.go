package analyzer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sampl-lang/sampl/internal/diagnostics"
)

// expectAnalyzerError asserts that checking fails with the given code.
func expectAnalyzerError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	program, env, err := checkSource(t, input)
	if err == nil {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	if program != nil || env != nil {
		t.Errorf("a failed check must not return partial results")
	}
	d, ok := diagnostics.AsDiagnostic(err)
	if !ok || d.Code != code {
		t.Fatalf("expected error %s, got %v\ninput: %s", code, err, input)
	}
	return d
}

// expectAnalyzerErrorContains asserts an error with the given code whose message contains substr.
func expectAnalyzerErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	d := expectAnalyzerError(t, input, code)
	if !strings.Contains(d.Error(), substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, d.Error())
	}
}

// ---------------------------------------------------------------------------
// C001 — Cyclic dependency
// ---------------------------------------------------------------------------

func TestC001_ClassNestedInItself(t *testing.T) {
	input := `
class A {
  class B {
    class A
  }
}`
	d := expectAnalyzerError(t, input, diagnostics.ErrC001)
	if !strings.Contains(d.Message(), "A -> B -> A") {
		t.Errorf("expected the class chain in %q", d.Message())
	}
	if !errors.Is(d, diagnostics.ErrCyclicDependency) {
		t.Errorf("expected errors.Is to match ErrCyclicDependency")
	}
}

func TestC001_DirectSelfNesting(t *testing.T) {
	expectAnalyzerError(t, "class A { class A }", diagnostics.ErrC001)
}

// ---------------------------------------------------------------------------
// L001 — Invalid literal
// ---------------------------------------------------------------------------

func TestL001_Literals(t *testing.T) {
	tests := []struct {
		name  string
		value string
		text  string
	}{
		{"IntOverflow", "99999999999", "99999999999"},
		{"IntWithLetters", "12abc", "12abc"},
		{"LongChar", "'ab'", "ab"},
		{"EmptyChar", "''", "''"},
		{"BadEscape", `"a\q"`, `a\q`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := expectAnalyzerError(t, "class Main {\n  val x = "+tt.value+"\n}", diagnostics.ErrL001)
			if d.Line() != 2 {
				t.Errorf("expected line 2, got %d", d.Line())
			}
			if tt.text != "''" && !strings.Contains(d.Message(), tt.text) {
				t.Errorf("expected %q in %q", tt.text, d.Message())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// A001 — Undefined identifier
// ---------------------------------------------------------------------------

func TestA001_UndefinedValue(t *testing.T) {
	expectAnalyzerErrorContains(t, "class Main { val x = y }", diagnostics.ErrA001, "'y'")
}

func TestA001_UnknownTypeInSignature(t *testing.T) {
	expectAnalyzerErrorContains(t, "class Main { fun f(a: Foo): Int = 1 }", diagnostics.ErrA001, "type 'Foo'")
}

func TestA001_ClassGenericsNotVisibleToMembers(t *testing.T) {
	expectAnalyzerError(t, `
class Main {
  class Box<T>(v: T) {
    fun get(b: Box<T>): T = b.v
  }
}`, diagnostics.ErrA001)
}

func TestA001_PrivateMemberNotExported(t *testing.T) {
	expectAnalyzerError(t, `
class Main {
  class M { private val x = 1 }
  val y = M.x
}`, diagnostics.ErrA001)
}

func TestA001_UnknownTagAndField(t *testing.T) {
	expectAnalyzerError(t, `
class Main {
  class O(| A | B)
  val x = O.C
}`, diagnostics.ErrA001)
	expectAnalyzerError(t, `
class Main {
  class P(a: Int)
  val p = P { a = 1; }
  val x = p.b
}`, diagnostics.ErrA001)
}

// ---------------------------------------------------------------------------
// A002 — Type mismatch
// ---------------------------------------------------------------------------

func TestA002_Mismatches(t *testing.T) {
	tests := []struct {
		name    string
		members string
	}{
		{"BinaryOperands", `val x = 1 + "s"`},
		{"ConcatInts", `val x = 1 ^ 2`},
		{"CompareBools", `val x = true < false`},
		{"NotInt", `val x = !1`},
		{"IfCondition", `val x = if (1) then (1) else (2)`},
		{"IfBranches", `val x = if (true) then (1) else ("s")`},
		{"ReturnType", `fun f(): Int = "s"`},
		{"TooManyArguments", "fun f(a: Int): Int = a\n val x = f(1, 2)"},
		{"ArgumentType", "fun f(a: Int): Int = a\n val x = f('c')"},
		{"NotAFunction", "val a = 1\n val b = a(1)"},
		{"ThrowMessage", `val x = throw<Int> 1`},
		{"TryCatchTypes", `val x = try (1) catch e (e)`},
		{"UninferredGeneric", "class O<T>(| None | Some of T)\n val x = O.None"},
		{"GenericValueNeedsArguments", "fun <A> id(a: A): A = a\n val f = id"},
		{"NonGenericWithArguments", "fun f(a: Int): Int = a\n val x = f<Int>(1)"},
		{"MissingField", "class P(a: Int, b: Int)\n val p = P { a = 1; }"},
		{"FieldType", "class P(a: Int)\n val p = P { a = \"s\"; }"},
		{"CopyFieldType", "class P(a: Int)\n val p = P { a = 1; }\n val q = { p with a = 'c' }"},
		{"MatchOnInt", `val x = match 1 with | _ -> 1`},
		{"MatchArmTypes", "class O(| A | B)\n val x = match O.A with | A -> 1 | B -> \"s\""},
		{"BindPayloadlessTag", "class O(| A | B)\n val x = match O.A with | A v -> 1 | B -> 2"},
		{"PayloadType", "class O<T>(| Some of T)\n val x = O.Some<Int>(\"s\")"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerError(t, "class Main {\n "+tt.members+"\n}", diagnostics.ErrA002)
		})
	}
}

// ---------------------------------------------------------------------------
// A003 — Invalid type declaration
// ---------------------------------------------------------------------------

func TestA003_Declarations(t *testing.T) {
	tests := []struct {
		name  string
		class string
	}{
		{"UnknownFieldType", "class Box(v: Foo)"},
		{"UnknownPayloadType", "class O(| Some of Foo)"},
		{"DuplicateTag", "class O(| A | A)"},
		{"DuplicateField", "class P(a: Int, a: Int)"},
		{"MissingTypeArgument", "class Box<T>(v: T)\n class Bad(b: Box)"},
		{"PrimitiveRedeclared", "class Int"},
		{"TagNamedLikeItsClass", "class O(| O | P)"},
		{"TagNamedLikeNestedClass", "class O(| A | B) {\n class A\n }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerError(t, "class Main {\n "+tt.class+"\n}", diagnostics.ErrA003)
		})
	}
}

// ---------------------------------------------------------------------------
// A004 — Duplicate identifier
// ---------------------------------------------------------------------------

func TestA004_Duplicates(t *testing.T) {
	tests := []struct {
		name    string
		members string
	}{
		{"Arguments", `fun f(a: Int, a: Int): Int = a`},
		{"Generics", `fun <A, A> f(a: A): A = a`},
		{"FunctionsInGroup", "fun f(): Int = 1\n fun f(): Int = 2"},
		{"LambdaArguments", `val f = { (a: Int, a: Int) -> a }`},
		{"NestedClasses", "class A\n class A"},
		{"ClassGenerics", `class P<A, A>(a: A)`},
		{"ConstructorFields", "class P(a: Int)\n val p = P { a = 1; a = 2; }"},
		{"ClassesInSiblings", "class A { class T }\n class C { class T }"},
		{"ClassInCousin", "class A { class B { class T } }\n class T"},
		{"ClassGenericNamedLikeClass", "class T\n class Box<T>(v: T)"},
		{"FunctionGenericNamedLikeClass", "class T\n fun <T> id(a: T): T = a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerError(t, "class Main {\n "+tt.members+"\n}", diagnostics.ErrA004)
		})
	}
}

// ---------------------------------------------------------------------------
// A005 — Match coverage
// ---------------------------------------------------------------------------

func TestA005_MissingTag(t *testing.T) {
	expectAnalyzerErrorContains(t, `
class Main {
  class O(| A | B | C)
  val x = match O.A with | A -> 1 | B -> 2
}`, diagnostics.ErrA005, "missing tags C")
}

func TestA005_CatchAllNotLast(t *testing.T) {
	expectAnalyzerError(t, `
class Main {
  class O(| A | B)
  val x = match O.A with | _ -> 1 | A -> 2
}`, diagnostics.ErrA005)
}

func TestA005_DuplicateTag(t *testing.T) {
	expectAnalyzerError(t, `
class Main {
  class O(| A | B)
  val x = match O.A with | A -> 1 | A -> 2 | B -> 3
}`, diagnostics.ErrA005)
}

func TestA004_SameNameInSeparateClasses(t *testing.T) {
	expectAnalyzerErrorContains(t, `
class Main {
  class A {
    class T(x: Int)
    fun mk(): T = T { x = 1; }
  }
  class C {
    class T(| P | Q)
    fun use(t: T): Int = match t with | P -> 1 | Q -> 2
  }
  val z = C.use(A.mk())
}`, diagnostics.ErrA004, "duplicate identifier 'T'")
}

// ---------------------------------------------------------------------------
// A006 — Reserved identifier
// ---------------------------------------------------------------------------

func TestA006_ReservedNames(t *testing.T) {
	tests := []struct {
		name    string
		members string
	}{
		{"Constant", `val _x = 1`},
		{"Function", `fun _f(): Int = 1`},
		{"Argument", `fun f(_a: Int): Int = _a`},
		{"LambdaArgument", `val f = { (_a: Int) -> _a }`},
		{"Let", `val x = val _y = 1; _y`},
		{"CatchName", `val x = try (throw<String> "boom") catch _e (_e)`},
		{"TagVariable", "class O(| A of Int | B)\n val x = match O.A(1) with | A _v -> _v | B -> 0"},
		{"PatternVariable", "class O(| A | B)\n val x = match O.A with | _o -> 1"},
		{"Field", `class P(_a: Int)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerError(t, "class Main {\n "+tt.members+"\n}", diagnostics.ErrA006)
		})
	}
}

func TestA006_GeneratedNamesCannotBeCaptured(t *testing.T) {
	tests := []struct {
		name    string
		members string
	}{
		{"Placeholder", "fun add(a: Int, b: Int): Int = a + b\n fun g(_tempV1: Int): (Int) -> Int = add(_tempV1)"},
		{"CaughtException", `fun h(_e: String): String = try (throw<String> "boom") catch m (_e)`},
		{"MatchSubject", "class O(| N | M)\n fun h(_match0: Int, o: O): Int = match o with | N -> _match0 | M -> 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerErrorContains(t, "class Main {\n "+tt.members+"\n}", diagnostics.ErrA006, "reserved identifier")
		})
	}
}
