// Package types implements the type and binding model of the J-- front end:
// types, name definitions (Defn), lexical contexts and stack frame layout.
// This package has no dependency on the checker.
package types

// Type is the interface implemented by all types.
type Type interface {
	// Name returns the simple name of the type.
	Name() string

	// String returns a human-readable representation of the type.
	String() string

	// IsInterface reports whether the type is an interface type.
	IsInterface() bool

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType()            {}
func (typ) IsInterface() bool { return false }

// Unresolved stands in for a written type name that could not be resolved.
// It lets declarations that mention the name keep going after the failure
// has been reported.
type Unresolved struct {
	typ
	name string
}

// NewUnresolved returns a placeholder for the written name.
func NewUnresolved(name string) *Unresolved {
	return &Unresolved{name: name}
}

// Name implements Type.
func (u *Unresolved) Name() string { return u.name }

// String implements Type.
func (u *Unresolved) String() string { return u.name + "?" }
