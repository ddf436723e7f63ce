package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Void
	Boolean
	Char
	Int
	Long
	Double

	// Null is the type of the null literal.
	Null
)

// Basic represents a primitive type, void, or the null type.
type Basic struct {
	typ
	kind  BasicKind
	name  string
	slots int // stack frame slots a value of this type occupies
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Name implements Type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid: nil,
	Void:    {kind: Void, name: "void", slots: 0},
	Boolean: {kind: Boolean, name: "boolean", slots: 1},
	Char:    {kind: Char, name: "char", slots: 1},
	Int:     {kind: Int, name: "int", slots: 1},
	Long:    {kind: Long, name: "long", slots: 2},
	Double:  {kind: Double, name: "double", slots: 2},
	Null:    {kind: Null, name: "null", slots: 1},
}

// LookupBasic returns the primitive type for a Java keyword, or nil.
func LookupBasic(keyword string) *Basic {
	for _, b := range Typ {
		if b != nil && b.kind != Null && b.name == keyword {
			return b
		}
	}
	return nil
}
