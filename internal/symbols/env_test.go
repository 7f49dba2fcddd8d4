package symbols

import (
	"errors"
	"slices"
	"testing"

	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

func TestNewRegistersPrimitivesAndPrelude(t *testing.T) {
	env := New()
	for _, p := range typesystem.Primitives {
		if _, ok := env.LookupType(p.Name); !ok {
			t.Errorf("primitive %s not declared", p.Name)
		}
	}
	fn, ok := env.LookupFunction("println")
	if !ok {
		t.Fatalf("println not in prelude")
	}
	if fn.Category != Provided {
		t.Errorf("expected println to be provided, got %s", fn.Category)
	}
}

func TestBindersReturnNewEnv(t *testing.T) {
	base := New()
	withX := base.BindValue("x", typesystem.Int)
	if _, ok := base.LookupValue("x"); ok {
		t.Errorf("binding x leaked into the base env")
	}
	if typ, ok := withX.LookupValue("x"); !ok || !typesystem.Equal(typ, typesystem.Int) {
		t.Errorf("expected x: Int, got %v", typ)
	}

	// Sibling branches from the same env stay independent.
	left := withX.BindValue("y", typesystem.Bool)
	right := withX.BindValue("y", typesystem.String)
	l, _ := left.LookupValue("y")
	r, _ := right.LookupValue("y")
	if !typesystem.Equal(l, typesystem.Bool) || !typesystem.Equal(r, typesystem.String) {
		t.Errorf("sibling envs interfered: %v, %v", l, r)
	}
}

func TestEnterClassDetectsCycles(t *testing.T) {
	env, err := New().EnterClass("A", token.Token{Line: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env, err = env.EnterClass("B", token.Token{Line: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = env.EnterClass("A", token.Token{Line: 3})
	if !errors.Is(err, diagnostics.ErrCyclicDependency) {
		t.Fatalf("expected cyclic dependency, got %v", err)
	}
	if d, _ := diagnostics.AsDiagnostic(err); d.Line() != 3 {
		t.Errorf("expected error at line 3, got %d", d.Line())
	}
	if got := env.Classes(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("expected [A B], got %v", got)
	}
}

func TestExitClassRestoresScope(t *testing.T) {
	outer := New().BindValue("x", typesystem.Int)
	inner, err := outer.EnterClass("A", token.Token{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner = inner.BindValue("y", typesystem.Bool).BindValue("x", typesystem.String)
	if inner.CurrentClass() != "A" {
		t.Errorf("expected current class A, got %q", inner.CurrentClass())
	}

	after := inner.ExitClass()
	if _, ok := after.LookupValue("y"); ok {
		t.Errorf("y escaped its class")
	}
	if typ, _ := after.LookupValue("x"); !typesystem.Equal(typ, typesystem.Int) {
		t.Errorf("expected outer x: Int to be restored, got %v", typ)
	}
	if after.CurrentClass() != "" {
		t.Errorf("expected empty class stack, got %v", after.Classes())
	}
}

func TestClassTypesOutliveTheirScope(t *testing.T) {
	inner, err := New().EnterClass("A", token.Token{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info := TypeInfo{Identifier: typesystem.TypeIdentifier{Name: "B"}, Declaration: typesystem.Struct{}}
	inner = inner.DeclareClassType("B", info)
	if _, ok := inner.LookupType("B"); !ok {
		t.Fatalf("B is not in scope inside A")
	}

	after := inner.ExitClass()
	if _, ok := after.LookupType("B"); ok {
		t.Errorf("B is still in scope after A")
	}
	got, ok := after.LookupClassType("B")
	if !ok || got.Identifier.Name != "B" {
		t.Errorf("expected B to stay registered as a class type, got %v, %v", got, ok)
	}
	if _, ok := after.LookupClassType("Int"); ok {
		t.Errorf("primitives are not class types")
	}
}

func TestNameListings(t *testing.T) {
	env := New().BindValue("x", typesystem.Int)
	if !slices.Contains(env.ValueNames(), "x") {
		t.Errorf("x missing from %v", env.ValueNames())
	}
	if !slices.Contains(env.FunctionNames(), "println") {
		t.Errorf("println missing from %v", env.FunctionNames())
	}
	if !slices.Contains(env.TypeNames(), "Int") {
		t.Errorf("Int missing from %v", env.TypeNames())
	}
	if names := NewEmpty().ValueNames(); len(names) != 0 {
		t.Errorf("empty env lists values %v", names)
	}
}
