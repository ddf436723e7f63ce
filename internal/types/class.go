package types

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/jmm/internal/syntax"
)

// ClassState tracks how much of a class is known.
type ClassState uint8

const (
	// ClassDeclared: the name is bound, the shape (supertypes, members)
	// is not known yet.
	ClassDeclared ClassState = iota
	// ClassComplete: supertypes are resolved; members may still be added
	// while the declaration registers its member headers.
	ClassComplete
)

// Class represents a class or interface type.
//
// A Class is allocated when its declaration is declared and is shared by
// every binding that names it. Complete fills in the supertypes in place
// exactly once, so holders that captured the Class before resolution see
// the resolved shape afterwards.
type Class struct {
	typ
	name      string // simple name
	qualified string // fully qualified name; equal to name in the unnamed package
	pos       syntax.Pos
	iface     bool
	mods      syntax.Modifiers

	state      ClassState
	super      Type
	interfaces []Type

	fields  []*Field
	methods []*Method
	ctors   []*Method
}

// NewClass creates a placeholder class in state ClassDeclared.
func NewClass(pos syntax.Pos, name string, iface bool) *Class {
	return &Class{name: name, qualified: name, pos: pos, iface: iface}
}

// NewExternalClass creates an already complete class for an imported or
// predeclared name. A nil super means the class has no superclass (the
// root class).
func NewExternalClass(qualified string, super Type) *Class {
	name := qualified
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		name = qualified[i+1:]
	}
	c := &Class{name: name, qualified: qualified}
	c.Complete(super, nil)
	return c
}

// Name implements Type.
func (c *Class) Name() string { return c.name }

// QualifiedName returns the fully qualified name.
func (c *Class) QualifiedName() string { return c.qualified }

// SetQualifiedName sets the qualified name, e.g. once the package is known.
func (c *Class) SetQualifiedName(q string) { c.qualified = q }

// String implements Type.
func (c *Class) String() string { return c.qualified }

// IsInterface implements Type.
func (c *Class) IsInterface() bool { return c.iface }

// Pos returns the declaration position; NoPos for external classes.
func (c *Class) Pos() syntax.Pos { return c.pos }

// Modifiers returns the declaration modifiers.
func (c *Class) Modifiers() syntax.Modifiers { return c.mods }

// SetModifiers sets the declaration modifiers.
func (c *Class) SetModifiers(m syntax.Modifiers) { c.mods = m }

// State returns the resolution state.
func (c *Class) State() ClassState { return c.state }

// IsComplete reports whether the supertypes have been resolved.
func (c *Class) IsComplete() bool { return c.state == ClassComplete }

// Complete records the resolved supertypes. It panics if called twice:
// a class is resolved by exactly one step.
func (c *Class) Complete(super Type, interfaces []Type) {
	if c.state == ClassComplete {
		panic(fmt.Sprintf("types: class %s completed twice", c.qualified))
	}
	c.super = super
	c.interfaces = interfaces
	c.state = ClassComplete
}

// Super returns the superclass, or nil for the root class and for classes
// that are not complete yet.
func (c *Class) Super() Type { return c.super }

// Interfaces returns the implemented (or, for interfaces, extended)
// interfaces in written order.
func (c *Class) Interfaces() []Type { return c.interfaces }

// ----------------------------------------------------------------------------
// Members

// Field is a field signature.
type Field struct {
	name string
	pos  syntax.Pos
	typ  Type
	mods syntax.Modifiers
}

// NewField creates a field signature.
func NewField(pos syntax.Pos, name string, typ Type, mods syntax.Modifiers) *Field {
	return &Field{name: name, pos: pos, typ: typ, mods: mods}
}

func (f *Field) Name() string                { return f.name }
func (f *Field) Pos() syntax.Pos             { return f.pos }
func (f *Field) Type() Type                  { return f.typ }
func (f *Field) Modifiers() syntax.Modifiers { return f.mods }
func (f *Field) IsStatic() bool              { return f.mods.Has(syntax.Static) }

// Param is a formal parameter of a method signature.
type Param struct {
	Name string
	Pos  syntax.Pos
	Type Type
}

// Method is a method or constructor signature.
type Method struct {
	name   string
	pos    syntax.Pos
	params []Param
	result Type // Typ[Void] for void methods and constructors
	mods   syntax.Modifiers
	ctor   bool
}

// NewMethod creates a method signature. A nil result means void.
func NewMethod(pos syntax.Pos, name string, params []Param, result Type, mods syntax.Modifiers) *Method {
	if result == nil {
		result = Typ[Void]
	}
	return &Method{name: name, pos: pos, params: params, result: result, mods: mods}
}

// NewConstructor creates a constructor signature.
func NewConstructor(pos syntax.Pos, name string, params []Param, mods syntax.Modifiers) *Method {
	m := NewMethod(pos, name, params, nil, mods)
	m.ctor = true
	return m
}

func (m *Method) Name() string                { return m.name }
func (m *Method) Pos() syntax.Pos             { return m.pos }
func (m *Method) Params() []Param             { return m.params }
func (m *Method) Result() Type                { return m.result }
func (m *Method) Modifiers() syntax.Modifiers { return m.mods }
func (m *Method) IsConstructor() bool         { return m.ctor }
func (m *Method) IsStatic() bool              { return m.mods.Has(syntax.Static) }

// Signature renders name(T1,T2).
func (m *Method) Signature() string {
	var b strings.Builder
	b.WriteString(m.name)
	b.WriteByte('(')
	for i, p := range m.params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Type.String())
	}
	b.WriteByte(')')
	return b.String()
}

// sameParams reports whether two signatures take identical parameter types.
func sameParams(x, y *Method) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i].Type, y.params[i].Type) {
			return false
		}
	}
	return true
}

// AddField adds a field to the member scope. If a field with the same name
// already exists, it is returned and f is not added.
func (c *Class) AddField(f *Field) *Field {
	if existing := c.LookupField(f.name); existing != nil {
		return existing
	}
	c.fields = append(c.fields, f)
	return nil
}

// AddMethod adds a method or constructor to the member scope. If one with
// the same name and identical parameter types exists, it is returned and m
// is not added. Overloads are allowed.
func (c *Class) AddMethod(m *Method) *Method {
	list := &c.methods
	if m.ctor {
		list = &c.ctors
	}
	for _, existing := range *list {
		if existing.name == m.name && sameParams(existing, m) {
			return existing
		}
	}
	*list = append(*list, m)
	return nil
}

// LookupField returns the field declared in c with the given name, or nil.
// Inherited fields are not searched.
func (c *Class) LookupField(name string) *Field {
	for _, f := range c.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// LookupMethods returns the methods declared in c with the given name.
func (c *Class) LookupMethods(name string) []*Method {
	var ms []*Method
	for _, m := range c.methods {
		if m.name == name {
			ms = append(ms, m)
		}
	}
	return ms
}

// Fields returns the declared fields in declaration order.
func (c *Class) Fields() []*Field { return c.fields }

// Methods returns the declared methods in declaration order.
func (c *Class) Methods() []*Method { return c.methods }

// Constructors returns the declared constructors in declaration order.
func (c *Class) Constructors() []*Method { return c.ctors }
