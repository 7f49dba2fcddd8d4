package decorated

type PatternVisitor interface {
	VisitVariantPattern(p *VariantPattern)
	VisitVariablePattern(p *VariablePattern)
	VisitWildcardPattern(p *WildcardPattern)
}

type Pattern interface {
	Accept(v PatternVisitor)
	// IsCatchAll reports whether the pattern matches every value.
	IsCatchAll() bool
}

type VariantPattern struct {
	Tag      string
	Variable string
}

func (p *VariantPattern) Accept(v PatternVisitor) { v.VisitVariantPattern(p) }
func (p *VariantPattern) IsCatchAll() bool        { return false }

type VariablePattern struct {
	Name string
}

func (p *VariablePattern) Accept(v PatternVisitor) { v.VisitVariablePattern(p) }
func (p *VariablePattern) IsCatchAll() bool        { return true }

type WildcardPattern struct{}

func (p *WildcardPattern) Accept(v PatternVisitor) { v.VisitWildcardPattern(p) }
func (p *WildcardPattern) IsCatchAll() bool        { return true }
