package types

// Identical reports whether x and y are identical types.
//
// Classes are identical only to themselves; basic types compare by kind
// and arrays by element type. An Unresolved type is identical only to
// itself, so two failed references to the same name stay distinct.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return Identical(x.elem, y.elem)
		}
	}
	return false
}

// IsValid reports whether t is a usable type: not nil, not Unresolved,
// and not an array of something unresolved.
func IsValid(t Type) bool {
	switch t := t.(type) {
	case nil:
		return false
	case *Unresolved:
		return false
	case *Array:
		return IsValid(t.elem)
	case *Basic:
		return t.kind != Invalid
	}
	return true
}

// IsReference reports whether values of type t are references:
// classes, interfaces, arrays and the null type.
func IsReference(t Type) bool {
	switch t := t.(type) {
	case *Class, *Array:
		return true
	case *Basic:
		return t.kind == Null
	}
	return false
}

// IsPrimitive reports whether t is one of the Java primitive types.
func IsPrimitive(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.kind >= Boolean && b.kind <= Double
}

// IsVoid reports whether t is void.
func IsVoid(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.kind == Void
}

// Slots returns the number of frame slots a value of type t occupies.
func Slots(t Type) int {
	if b, ok := t.(*Basic); ok {
		return b.slots
	}
	return 1
}

// IsSubclass reports whether c is sup or a subclass of sup, following
// superclass links. Unresolved links end the walk.
func IsSubclass(c, sup *Class) bool {
	seen := make(map[*Class]bool)
	for c != nil && !seen[c] {
		if c == sup {
			return true
		}
		seen[c] = true
		next, _ := c.super.(*Class)
		c = next
	}
	return false
}
