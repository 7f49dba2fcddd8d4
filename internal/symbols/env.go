package symbols

import (
	"strings"

	"github.com/sampl-lang/sampl/internal/config"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/token"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

// FunctionCategory tells user-defined class functions apart from prelude ones.
type FunctionCategory int

const (
	UserDefined FunctionCategory = iota
	Provided
)

func (c FunctionCategory) String() string {
	if c == Provided {
		return "provided"
	}
	return "user-defined"
}

type FunctionInfo struct {
	Type     typesystem.TFunc
	Generics []string
	Category FunctionCategory
}

// TypeInfo is a declared type. Declaration is nil for primitives and for
// generic placeholders, which are opaque.
type TypeInfo struct {
	Identifier  typesystem.TypeIdentifier
	Declaration typesystem.TypeDeclaration
}

// classFrame is one entry of the persistent stack of classes being checked.
// It remembers the scope at entry so ExitClass can restore it.
type classFrame struct {
	name      string
	values    *PersistentMap[typesystem.Type]
	functions *PersistentMap[FunctionInfo]
	types     *PersistentMap[TypeInfo]
	parent    *classFrame
}

// Env is the immutable type checking environment. Every binder returns a
// new Env and leaves the receiver untouched.
type Env struct {
	values    *PersistentMap[typesystem.Type]
	functions *PersistentMap[FunctionInfo]
	types     *PersistentMap[TypeInfo]
	classes   *classFrame

	// classTypes holds every class type declared so far, in or out of
	// scope. Class names are unique in a program, so a type met in a
	// value can always be resolved here.
	classTypes *PersistentMap[TypeInfo]
}

// NewEmpty returns an environment without primitives or prelude.
func NewEmpty() *Env {
	return &Env{
		values:    EmptyMap[typesystem.Type](),
		functions: EmptyMap[FunctionInfo](),
		types:     EmptyMap[TypeInfo](),

		classTypes: EmptyMap[TypeInfo](),
	}
}

// New returns an environment with the primitive types and the prelude.
func New() *Env {
	env := NewEmpty()
	for _, p := range typesystem.Primitives {
		env = env.DeclareType(p.Name, TypeInfo{Identifier: typesystem.TypeIdentifier{Name: p.Name}})
	}
	for _, fn := range Prelude() {
		env = env.BindFunction(fn.Name, fn.Type, nil, Provided)
	}
	return env
}

// PreludeFunction is a function supplied by the runtime rather than by user code.
type PreludeFunction struct {
	Name string
	Type typesystem.TFunc
}

func Prelude() []PreludeFunction {
	unary := func(param, ret typesystem.Type) typesystem.TFunc {
		return typesystem.TFunc{Params: []typesystem.Type{param}, ReturnType: ret}
	}
	return []PreludeFunction{
		{config.PrintlnFuncName, unary(typesystem.String, typesystem.Unit)},
		{config.IntToStringFuncName, unary(typesystem.Int, typesystem.String)},
		{config.FloatToStringFuncName, unary(typesystem.Float, typesystem.String)},
		{config.CharToStringFuncName, unary(typesystem.Char, typesystem.String)},
	}
}

func (e *Env) with(f func(next *Env)) *Env {
	next := *e
	f(&next)
	return &next
}

func (e *Env) BindValue(name string, typ typesystem.Type) *Env {
	return e.with(func(n *Env) { n.values = e.values.Put(name, typ) })
}

func (e *Env) BindFunction(name string, typ typesystem.TFunc, generics []string, category FunctionCategory) *Env {
	info := FunctionInfo{Type: typ, Generics: generics, Category: category}
	return e.with(func(n *Env) { n.functions = e.functions.Put(name, info) })
}

func (e *Env) DeclareType(name string, info TypeInfo) *Env {
	return e.with(func(n *Env) { n.types = e.types.Put(name, info) })
}

// DeclareClassType declares a class type in scope and records it for
// LookupClassType.
func (e *Env) DeclareClassType(name string, info TypeInfo) *Env {
	return e.with(func(n *Env) {
		n.types = e.types.Put(name, info)
		n.classTypes = e.classTypes.Put(name, info)
	})
}

// LookupClassType finds a class type by name whether or not it is in scope.
func (e *Env) LookupClassType(name string) (TypeInfo, bool) {
	return e.classTypes.Get(name)
}

func (e *Env) LookupValue(name string) (typesystem.Type, bool) {
	return e.values.Get(name)
}

func (e *Env) LookupFunction(name string) (FunctionInfo, bool) {
	return e.functions.Get(name)
}

func (e *Env) LookupType(name string) (TypeInfo, bool) {
	return e.types.Get(name)
}

// EnterClass pushes name onto the stack of classes being checked. A class
// that is already on the stack is a cyclic dependency.
func (e *Env) EnterClass(name string, tok token.Token) (*Env, error) {
	for f := e.classes; f != nil; f = f.parent {
		if f.name == name {
			return nil, diagnostics.NewError(diagnostics.ErrC001, tok, strings.Join(append(e.Classes(), name), " -> "))
		}
	}
	frame := &classFrame{
		name:      name,
		values:    e.values,
		functions: e.functions,
		types:     e.types,
		parent:    e.classes,
	}
	return e.with(func(n *Env) { n.classes = frame }), nil
}

// ExitClass pops the innermost class and restores the scope it was entered
// with. Class types declared inside stay known to LookupClassType.
func (e *Env) ExitClass() *Env {
	frame := e.classes
	if frame == nil {
		return e
	}
	return &Env{
		values:     frame.values,
		functions:  frame.functions,
		types:      frame.types,
		classes:    frame.parent,
		classTypes: e.classTypes,
	}
}

// Classes lists the classes being checked, outermost first.
func (e *Env) Classes() []string {
	var names []string
	for f := e.classes; f != nil; f = f.parent {
		names = append([]string{f.name}, names...)
	}
	return names
}

// CurrentClass is the innermost class being checked, or "" at top level.
func (e *Env) CurrentClass() string {
	if e.classes == nil {
		return ""
	}
	return e.classes.name
}

func (e *Env) ValueNames() []string    { return e.values.Keys() }
func (e *Env) FunctionNames() []string { return e.functions.Keys() }
func (e *Env) TypeNames() []string     { return e.types.Keys() }
