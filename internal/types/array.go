package types

// Array represents an array type Elem[].
type Array struct {
	typ
	elem Type
}

// NewArray creates a new array type with the given element type.
func NewArray(elem Type) *Array {
	return &Array{elem: elem}
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// Name implements Type.
func (a *Array) Name() string {
	return a.elem.Name() + "[]"
}

// String implements Type.
func (a *Array) String() string {
	return a.elem.String() + "[]"
}
