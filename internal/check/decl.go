package check

import (
	"fmt"

	"github.com/you-not-fish/jmm/internal/diag"
	"github.com/you-not-fish/jmm/internal/syntax"
	"github.com/you-not-fish/jmm/internal/types"
)

// Phase is the binding state of a type declaration.
// The only transitions are Parsed -> Declared -> PreAnalyzed.
type Phase uint8

const (
	Parsed Phase = iota
	Declared
	PreAnalyzed
)

func (p Phase) String() string {
	switch p {
	case Parsed:
		return "parsed"
	case Declared:
		return "declared"
	case PreAnalyzed:
		return "pre-analyzed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// TypeDecl is a class or interface declaration taking part in two-phase
// binding.
//
// All DeclareThisType calls of a unit must precede all PreAnalyze calls;
// otherwise a declaration could refer to a sibling that is not visible
// yet. Out-of-order calls are reported as diag.PhaseOrder and do not
// change the declaration.
type TypeDecl interface {
	// Name returns the simple name of the declared type.
	Name() string

	// Pos returns the position of the declared name.
	Pos() syntax.Pos

	// ThisType returns the type the declaration defines. It is the same
	// *types.Class from construction on; PreAnalyze completes it in place.
	ThisType() *types.Class

	// SuperType returns the superclass (Object for interfaces), or nil
	// before pre-analysis.
	SuperType() types.Type

	// SuperInterfaces returns the implemented interfaces of a class or the
	// extended interfaces of an interface, in written order, or nil before
	// pre-analysis.
	SuperInterfaces() []types.Type

	// Phase returns the current binding phase.
	Phase() Phase

	// Context returns the member context created by PreAnalyze, or nil.
	Context() *types.Context

	// DeclareThisType binds Name to ThisType in ctx, the unit context.
	DeclareThisType(ctx *types.Context)

	// PreAnalyze resolves the supertypes and member headers in ctx.
	PreAnalyze(ctx *types.Context)
}

// NewTypeDecl returns the TypeDecl for a class or interface declaration,
// or nil for any other declaration and for declarations whose name was
// lost to a syntax error.
func NewTypeDecl(d syntax.Decl) TypeDecl {
	if d.DeclName() == nil {
		return nil
	}
	switch d := d.(type) {
	case *syntax.ClassDecl:
		return NewClassDecl(d)
	case *syntax.InterfaceDecl:
		return NewInterfaceDecl(d)
	}
	return nil
}

// recorder is implemented by declarations that can record into an Info.
type recorder interface {
	setInfo(info *Info)
}

// typeDecl holds the state shared by class and interface declarations.
type typeDecl struct {
	name  *syntax.Name
	this  *types.Class
	phase Phase
	info  *Info

	super   types.Type
	ifaces  []types.Type
	members *types.Context
}

func (d *typeDecl) Name() string                  { return d.name.Value }
func (d *typeDecl) Pos() syntax.Pos               { return d.name.Pos() }
func (d *typeDecl) ThisType() *types.Class        { return d.this }
func (d *typeDecl) SuperType() types.Type         { return d.super }
func (d *typeDecl) SuperInterfaces() []types.Type { return d.ifaces }
func (d *typeDecl) Phase() Phase                  { return d.phase }
func (d *typeDecl) Context() *types.Context       { return d.members }
func (d *typeDecl) setInfo(info *Info)            { d.info = info }

// checkPhase reports a PhaseOrder diagnostic unless d is in phase want.
func (d *typeDecl) checkPhase(ctx *types.Context, want Phase, step string) bool {
	if d.phase == want {
		return true
	}
	ctx.Errorf(d.Pos(), diag.PhaseOrder,
		"cannot %s %s: declaration is %s, want %s", step, d.Name(), d.phase, want)
	return false
}

// DeclareThisType implements TypeDecl.
func (d *typeDecl) DeclareThisType(ctx *types.Context) {
	if !d.checkPhase(ctx, Parsed, "declare") {
		return
	}
	defn := types.NewTypeNameDefn(d.this)
	if existing := ctx.Insert(d.Name(), defn); existing != nil {
		e := diag.New(d.Pos(), diag.DuplicateDefinition, "duplicate class: %s", d.Name())
		if pos := types.DefnPos(existing); pos.IsValid() {
			e.WithRelated(pos, "previously defined here")
		} else {
			e.Msg = fmt.Sprintf("%s is already defined as %s", d.Name(), existing.Type())
		}
		ctx.Report(e)
	} else if d.info != nil {
		d.info.Defs[d.name] = defn
	}
	// A duplicate still advances so that its own members get bound.
	d.phase = Declared
}

// complete resolves the class shape and registers the member headers.
func (d *typeDecl) complete(ctx *types.Context, super types.Type, ifaces []types.Type, members []syntax.Member) {
	d.this.Complete(super, ifaces)
	d.super = super
	d.ifaces = ifaces

	d.members = types.NewClassContext(ctx, d.this)
	r := &resolver{ctx: d.members, info: d.info}
	for _, m := range members {
		r.member(d.this, m)
	}
	d.phase = PreAnalyzed
}

// ----------------------------------------------------------------------------
// Classes

// ClassDecl is a class declaration.
type ClassDecl struct {
	typeDecl
	decl *syntax.ClassDecl
}

// NewClassDecl creates a class declaration in phase Parsed.
func NewClassDecl(decl *syntax.ClassDecl) *ClassDecl {
	c := types.NewClass(decl.Name.Pos(), decl.Name.Value, false)
	c.SetModifiers(decl.Mods)
	return &ClassDecl{
		typeDecl: typeDecl{name: decl.Name, this: c},
		decl:     decl,
	}
}

// Syntax returns the declaration's syntax tree.
func (d *ClassDecl) Syntax() *syntax.ClassDecl { return d.decl }

// PreAnalyze implements TypeDecl.
//
// The superclass defaults to Object. A superclass that is an interface,
// the class itself, or one of its subclasses is reported and replaced by
// Object so that the hierarchy stays acyclic.
func (d *ClassDecl) PreAnalyze(ctx *types.Context) {
	if !d.checkPhase(ctx, Declared, "pre-analyze") {
		return
	}
	r := &resolver{ctx: ctx, info: d.info}

	var super types.Type = types.Object()
	if d.decl.Super != nil {
		super = r.superclass(d.decl.Super, d.this)
	}
	ifaces := r.interfaces(d.decl.Interfaces, d.this, "implements")

	d.complete(ctx, super, ifaces, d.decl.Members)

	if len(d.this.Constructors()) == 0 {
		// implicit default constructor
		mods := d.decl.Mods & (syntax.Public | syntax.Protected | syntax.Private)
		d.this.AddMethod(types.NewConstructor(d.Pos(), d.Name(), nil, mods))
	}
}

// ----------------------------------------------------------------------------
// Interfaces

// InterfaceDecl is an interface declaration.
type InterfaceDecl struct {
	typeDecl
	decl *syntax.InterfaceDecl
}

// NewInterfaceDecl creates an interface declaration in phase Parsed.
func NewInterfaceDecl(decl *syntax.InterfaceDecl) *InterfaceDecl {
	c := types.NewClass(decl.Name.Pos(), decl.Name.Value, true)
	c.SetModifiers(decl.Mods | syntax.Abstract)
	return &InterfaceDecl{
		typeDecl: typeDecl{name: decl.Name, this: c},
		decl:     decl,
	}
}

// Syntax returns the declaration's syntax tree.
func (d *InterfaceDecl) Syntax() *syntax.InterfaceDecl { return d.decl }

// PreAnalyze implements TypeDecl. The super type of an interface is
// always Object.
func (d *InterfaceDecl) PreAnalyze(ctx *types.Context) {
	if !d.checkPhase(ctx, Declared, "pre-analyze") {
		return
	}
	r := &resolver{ctx: ctx, info: d.info}
	ifaces := r.interfaces(d.decl.Extends, d.this, "extends")
	d.complete(ctx, types.Object(), ifaces, d.decl.Members)
}
