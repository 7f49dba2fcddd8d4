package parser_test

import (
	"testing"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/parser"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := parser.ParseSource(input)
	if err != nil {
		t.Fatalf("unexpected parse error: %v\ninput: %s", err, input)
	}
	return program
}

// parseExpr parses input as the initializer of a single constant.
func parseExpr(t *testing.T, input string) ast.Expression {
	t.Helper()
	program := mustParse(t, "class Main { val it = "+input+" }")
	return program.Class.Members[0].(*ast.Constant).Value
}

func TestParseClassDeclarations(t *testing.T) {
	program := mustParse(t, `
class Main {
  class Option<T>(| None | Some of T)
  class Pair<A, B>(a: A, b: (A) -> B,)
  class Empty
  class Only { val x = 1 }
}`)
	members := program.Class.Members
	if len(members) != 4 {
		t.Fatalf("expected 4 nested classes, got %d", len(members))
	}

	option := members[0].(*ast.Class)
	variant, ok := option.Declaration.(typesystem.Variant)
	if !ok || len(variant.Tags) != 2 {
		t.Fatalf("expected a two-tag variant, got %#v", option.Declaration)
	}
	if variant.Tags[0].Payload != nil || variant.Tags[1].Payload.String() != "T" {
		t.Errorf("unexpected tags %#v", variant.Tags)
	}
	if option.Identifier.String() != "Option<T>" {
		t.Errorf("expected Option<T>, got %s", option.Identifier)
	}

	pair := members[1].(*ast.Class)
	st := pair.Declaration.(typesystem.Struct)
	if len(st.Fields) != 2 || st.Fields[1].Type.String() != "(A) -> B" {
		t.Errorf("unexpected struct fields %#v", st.Fields)
	}

	empty := members[2].(*ast.Class)
	if !empty.Declaration.IsEmpty() || len(empty.Members) != 0 {
		t.Errorf("expected empty class, got %#v", empty)
	}
	if only := members[3].(*ast.Class); len(only.Members) != 1 {
		t.Errorf("expected one member in Only")
	}
}

func TestConsecutiveFunctionsFormOneGroup(t *testing.T) {
	program := mustParse(t, `
class Main {
  fun isEven(n: Int): Bool = if (n == 0) then (true) else (isOdd(n - 1))
  private fun isOdd(n: Int): Bool = if (n == 0) then (false) else (isEven(n - 1))
  val x = 1
  fun <A> id(a: A): A = a
  fun add(a: Int)(b: Int): Int = a + b
}`)
	members := program.Class.Members
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	first := members[0].(*ast.FunctionGroup)
	if len(first.Functions) != 2 || first.Functions[1].IsPublic {
		t.Errorf("expected isEven and private isOdd in one group")
	}
	last := members[2].(*ast.FunctionGroup)
	if len(last.Functions) != 2 {
		t.Fatalf("expected id and add in one group")
	}
	if got := last.Functions[0].Generics; len(got) != 1 || got[0] != "A" {
		t.Errorf("expected generics [A], got %v", got)
	}
	add := last.Functions[1]
	if len(add.Arguments) != 2 || add.Type().String() != "(Int, Int) -> Int" {
		t.Errorf("expected curried groups to flatten, got %s", add.Type())
	}
}

func TestOperatorPrecedence(t *testing.T) {
	exp := parseExpr(t, "1 + 2 * 3 == 7 && !b || c")
	or, ok := exp.(*ast.Binary)
	if !ok || or.Operator != ast.OR {
		t.Fatalf("expected || at the root, got %#v", exp)
	}
	and := or.Left.(*ast.Binary)
	if and.Operator != ast.AND {
		t.Fatalf("expected && under ||")
	}
	eq := and.Left.(*ast.Binary)
	plus := eq.Left.(*ast.Binary)
	if eq.Operator != ast.STRUCT_EQ || plus.Operator != ast.PLUS {
		t.Fatalf("unexpected nesting")
	}
	if mul := plus.Right.(*ast.Binary); mul.Operator != ast.MUL {
		t.Errorf("expected * to bind tighter than +")
	}
	if _, ok := and.Right.(*ast.Not); !ok {
		t.Errorf("expected !b as right operand of &&")
	}

	sub := parseExpr(t, "a - b - c").(*ast.Binary)
	if _, ok := sub.Left.(*ast.Binary); !ok {
		t.Errorf("expected left associativity for -")
	}
}

func TestGenericArgumentsVersusComparison(t *testing.T) {
	call := parseExpr(t, "id<Int>(1)").(*ast.Application)
	ident := call.Function.(*ast.Identifier)
	if len(ident.Generics) != 1 || ident.Generics[0].String() != "Int" {
		t.Errorf("expected id<Int>, got %#v", ident)
	}

	cmp := parseExpr(t, "a < b").(*ast.Binary)
	if cmp.Operator != ast.LT {
		t.Errorf("expected comparison, got %v", cmp.Operator)
	}

	cmp2 := parseExpr(t, "a < (b) == c > d")
	if _, ok := cmp2.(*ast.Binary); !ok {
		t.Errorf("expected comparisons, got %#v", cmp2)
	}
}

func TestConstructors(t *testing.T) {
	some := parseExpr(t, "Option.Some<Int>(1)").(*ast.OneArgVariant)
	if some.TypeName != "Option" || some.Tag != "Some" || len(some.Generics) != 1 {
		t.Errorf("unexpected variant %#v", some)
	}
	none := parseExpr(t, "Option.None").(*ast.NoArgVariant)
	if none.Tag != "None" || none.Generics != nil {
		t.Errorf("unexpected variant %#v", none)
	}
	pair := parseExpr(t, `Pair<Int, String> { a = 1; b = "s"; }`).(*ast.StructConstructor)
	if len(pair.Fields) != 2 || pair.Fields[1].Name != "b" || len(pair.Generics) != 2 {
		t.Errorf("unexpected struct constructor %#v", pair)
	}
	copied := parseExpr(t, "{ p with a = 2; b = 3 }").(*ast.StructWithCopy)
	if len(copied.Updates) != 2 {
		t.Errorf("expected two updates, got %d", len(copied.Updates))
	}
	qualified := parseExpr(t, "Math.Inner.add(1).field").(*ast.MemberAccess)
	app := qualified.Expr.(*ast.Application)
	if name := app.Function.(*ast.Identifier).Name; name != "Math.Inner.add" {
		t.Errorf("expected Math.Inner.add, got %s", name)
	}
}

func TestLambdaVersusCopy(t *testing.T) {
	lambda := parseExpr(t, "{ (a: Int, b: Int) -> a + b }").(*ast.Lambda)
	if len(lambda.Arguments) != 2 {
		t.Errorf("expected two lambda arguments")
	}
	if _, ok := parseExpr(t, "{ () -> 1 }").(*ast.Lambda); !ok {
		t.Errorf("expected zero-argument lambda")
	}
	copied := parseExpr(t, "{ (p) with a = 1 }").(*ast.StructWithCopy)
	if _, ok := copied.Old.(*ast.Identifier); !ok {
		t.Errorf("expected parenthesized identifier as the copied value")
	}
}

func TestControlExpressions(t *testing.T) {
	m := parseExpr(t, `match o with | Some v -> v | None -> 0 | other -> 1 | _ -> 2`).(*ast.Match)
	if len(m.Cases) != 4 {
		t.Fatalf("expected 4 arms, got %d", len(m.Cases))
	}
	if p := m.Cases[0].Pattern.(*ast.VariantPattern); p.Variable != "v" {
		t.Errorf("expected Some v")
	}
	if _, ok := m.Cases[2].Pattern.(*ast.VariablePattern); !ok {
		t.Errorf("expected variable pattern")
	}
	if _, ok := m.Cases[3].Pattern.(*ast.WildcardPattern); !ok {
		t.Errorf("expected wildcard pattern")
	}

	let := parseExpr(t, `val _ = println("a"); val x = 1; x`).(*ast.Let)
	if let.Name != "" {
		t.Errorf("expected anonymous binding, got %q", let.Name)
	}
	if inner := let.Body.(*ast.Let); inner.Name != "x" {
		t.Errorf("expected nested let for x")
	}

	tc := parseExpr(t, `try (throw<Int> "boom") catch e (0)`).(*ast.TryCatch)
	if tc.ExceptionName != "e" {
		t.Errorf("expected exception name e")
	}
	if th := tc.Try.(*ast.Throw); th.Type.String() != "Int" {
		t.Errorf("expected throw<Int>")
	}

	ife := parseExpr(t, "if (a) then (1) else (2)").(*ast.IfElse)
	if ife.Condition == nil || ife.Then == nil || ife.Else == nil {
		t.Errorf("incomplete if expression")
	}

	if lit := parseExpr(t, "()").(*ast.Literal); lit.Kind != ast.UnitLiteral {
		t.Errorf("expected unit literal")
	}
}
