package decorated

// Precedence levels; a higher level binds tighter.
const (
	MatchPrecedence       = 0
	LetPrecedence         = 1
	ThrowPrecedence       = 2
	PrefixPrecedence      = 10
	ApplicationPrecedence = 11
	AtomPrecedence        = 12
)

// Precedence returns the binding strength of an expression's outermost construct.
func Precedence(e Expression) int {
	switch e := e.(type) {
	case *Match:
		return MatchPrecedence
	case *Let:
		return LetPrecedence
	case *Throw:
		return ThrowPrecedence
	case *Binary:
		return e.Operator.Precedence()
	case *Not:
		return PrefixPrecedence
	case *FunctionApplication, *StructMemberAccess:
		return ApplicationPrecedence
	}
	return AtomPrecedence
}

// EndsInMatch reports whether the rightmost part of e is an unparenthesized
// match, whose arms would swallow anything written after it.
func EndsInMatch(e Expression) bool {
	switch e := e.(type) {
	case *Match:
		return true
	case *Let:
		return EndsInMatch(e.Body)
	case *Throw:
		return EndsInMatch(e.Expr)
	}
	return false
}
