package types

import "github.com/you-not-fish/jmm/internal/syntax"

// Defn is what a name denotes in a Context: either a type name or a local
// variable (which includes formal parameters).
//
// The set of implementations is closed; consumers switch over
//
//	*TypeNameDefn
//	*LocalVariableDefn
type Defn interface {
	// Type returns the bound type.
	Type() Type

	aDefn() // marker method to restrict implementations
}

// TypeNameDefn binds a name to a type. It is immutable.
//
// For a class declared in the current unit the bound type is the Class
// placeholder, which is completed in place later.
type TypeNameDefn struct {
	typ Type
}

// NewTypeNameDefn creates a type name definition.
func NewTypeNameDefn(t Type) *TypeNameDefn {
	return &TypeNameDefn{typ: t}
}

// Type returns the exact Type passed to NewTypeNameDefn.
func (d *TypeNameDefn) Type() Type { return d.typ }

func (*TypeNameDefn) aDefn() {}

// InitState records whether a local has definitely been assigned.
// The only transition is Uninitialized -> Initialized.
type InitState uint8

const (
	Uninitialized InitState = iota
	Initialized
)

func (s InitState) String() string {
	if s == Initialized {
		return "initialized"
	}
	return "uninitialized"
}

// LocalVariableDefn binds a name to a stack-resident local or parameter.
// All locals live at a fixed offset from the base of the stack frame.
type LocalVariableDefn struct {
	name   string
	pos    syntax.Pos
	typ    Type
	offset int
	param  bool
	state  InitState
}

// NewLocalVariableDefn creates an uninitialized local at the given frame
// offset. The offset comes from the caller's Frame; uniqueness is the
// Frame's contract, not checked here.
func NewLocalVariableDefn(pos syntax.Pos, name string, t Type, offset int) *LocalVariableDefn {
	return &LocalVariableDefn{name: name, pos: pos, typ: t, offset: offset}
}

// NewParamDefn creates a formal parameter binding. Parameters receive
// their value from the caller, so they start out initialized.
func NewParamDefn(pos syntax.Pos, name string, t Type, offset int) *LocalVariableDefn {
	d := NewLocalVariableDefn(pos, name, t, offset)
	d.param = true
	d.state = Initialized
	return d
}

// Type returns the variable's type.
func (d *LocalVariableDefn) Type() Type { return d.typ }

func (*LocalVariableDefn) aDefn() {}

// Name returns the variable name.
func (d *LocalVariableDefn) Name() string { return d.name }

// Pos returns the declaration position.
func (d *LocalVariableDefn) Pos() syntax.Pos { return d.pos }

// Offset returns the variable's offset in the stack frame.
func (d *LocalVariableDefn) Offset() int { return d.offset }

// IsParam reports whether the variable is a formal parameter (or this).
func (d *LocalVariableDefn) IsParam() bool { return d.param }

// Initialize marks the variable as definitely assigned. Idempotent.
func (d *LocalVariableDefn) Initialize() { d.state = Initialized }

// IsInitialized reports whether Initialize has been called.
func (d *LocalVariableDefn) IsInitialized() bool { return d.state == Initialized }

// State returns the initialization state.
func (d *LocalVariableDefn) State() InitState { return d.state }

// DefnPos returns where d was declared, or NoPos when unknown
// (predeclared and imported names).
func DefnPos(d Defn) syntax.Pos {
	switch d := d.(type) {
	case *TypeNameDefn:
		if c, ok := d.typ.(*Class); ok {
			return c.Pos()
		}
	case *LocalVariableDefn:
		return d.pos
	}
	return syntax.NoPos
}
