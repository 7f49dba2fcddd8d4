package typesystem

import "strings"

// TypeIdentifier names a declared type together with its generic placeholders.
type TypeIdentifier struct {
	Name     string
	Generics []string
}

func (ti TypeIdentifier) String() string {
	if len(ti.Generics) == 0 {
		return ti.Name
	}
	return ti.Name + "<" + strings.Join(ti.Generics, ", ") + ">"
}

// Type is the identifier applied to its own placeholders.
func (ti TypeIdentifier) Type() TCon {
	return TCon{Name: ti.Name, Args: Placeholders(ti.Generics)}
}

// TypeDeclaration is the body of a declared type: a Variant or a Struct.
type TypeDeclaration interface {
	IsEmpty() bool
	declarationNode()
}

type Tag struct {
	Name    string
	Payload Type // nil for tags without associated data
}

type Variant struct {
	Tags []Tag
}

func (v Variant) IsEmpty() bool    { return len(v.Tags) == 0 }
func (v Variant) declarationNode() {}

// Tag looks up a tag by name.
func (v Variant) Tag(name string) (Tag, bool) {
	for _, t := range v.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

type Field struct {
	Name string
	Type Type
}

type Struct struct {
	Fields []Field
}

func (s Struct) IsEmpty() bool    { return len(s.Fields) == 0 }
func (s Struct) declarationNode() {}

// Field looks up a field by name.
func (s Struct) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
