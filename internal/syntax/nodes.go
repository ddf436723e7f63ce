// Package syntax holds the syntax tree consumed by the declaration checker:
// compilation units, class and interface declarations, member headers and
// written type references.
//
// Method bodies are not represented. The checker only needs declaration
// shapes; statements are the business of later passes.
package syntax

// ----------------------------------------------------------------------------
// Interfaces

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Decl is the interface for top-level type declarations.
type Decl interface {
	Node
	DeclName() *Name
	aDecl()
}

// Member is the interface for class and interface body members.
type Member interface {
	Node
	aMember()
}

// TypeExpr is the interface for written type references.
type TypeExpr interface {
	Node
	aTypeExpr()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// SetPos sets the node position. Used by the parser and by tests that build
// trees by hand.
func (n *node) SetPos(pos Pos) { n.pos = pos }

type decl struct{ node }

func (*decl) aDecl() {}

type member struct{ node }

func (*member) aMember() {}

type typeExpr struct{ node }

func (*typeExpr) aTypeExpr() {}

// ----------------------------------------------------------------------------
// Modifiers

// Modifiers is a set of declaration modifiers.
type Modifiers uint16

const (
	Public Modifiers = 1 << iota
	Protected
	Private
	Static
	Abstract
	Final
)

var modifierNames = [...]struct {
	mod  Modifiers
	name string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Private, "private"},
	{Static, "static"},
	{Abstract, "abstract"},
	{Final, "final"},
}

// ModifierFromString maps a Java modifier keyword to its flag.
// Unknown keywords map to zero.
func ModifierFromString(s string) Modifiers {
	for _, m := range modifierNames {
		if m.name == s {
			return m.mod
		}
	}
	return 0
}

// Has reports whether all flags in m2 are set in m.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// Names returns the modifier keywords in canonical order.
func (m Modifiers) Names() []string {
	var names []string
	for _, e := range modifierNames {
		if m.Has(e.mod) {
			names = append(names, e.name)
		}
	}
	return names
}

// ----------------------------------------------------------------------------
// Files and declarations

// File is one compilation unit.
type File struct {
	node
	Filename string
	Package  *QualifiedName // nil for the unnamed package
	Imports  []*ImportDecl
	Decls    []Decl
}

// ImportDecl is a single-type import: import a.b.C;
// On-demand imports (a.b.*) are parsed with OnDemand set.
type ImportDecl struct {
	node
	Path     *QualifiedName
	OnDemand bool
}

// ClassDecl represents a class declaration:
// class Name extends Super implements I1, I2 { Members }
type ClassDecl struct {
	decl
	Mods       Modifiers
	Name       *Name
	Super      TypeExpr   // nil when there is no extends clause
	Interfaces []TypeExpr // implements clause, in written order
	Members    []Member
}

// DeclName implements Decl.
func (d *ClassDecl) DeclName() *Name { return d.Name }

// InterfaceDecl represents an interface declaration:
// interface Name extends I1, I2 { Members }
type InterfaceDecl struct {
	decl
	Mods    Modifiers
	Name    *Name
	Extends []TypeExpr // in written order
	Members []Member
}

// DeclName implements Decl.
func (d *InterfaceDecl) DeclName() *Name { return d.Name }

// FieldDecl declares one or more fields of the same type: int x, y;
type FieldDecl struct {
	member
	Mods  Modifiers
	Type  TypeExpr
	Names []*Name
}

// MethodDecl is a method header. Result is nil for void.
type MethodDecl struct {
	member
	Mods    Modifiers
	Result  TypeExpr
	Name    *Name
	Params  []*Param
	HasBody bool
}

// ConstructorDecl is a constructor header.
type ConstructorDecl struct {
	member
	Mods   Modifiers
	Name   *Name
	Params []*Param
}

// Param is a formal parameter.
type Param struct {
	node
	Type     TypeExpr // for a variable arity parameter, the array type
	Name     *Name
	Variadic bool
}

// ----------------------------------------------------------------------------
// Names and type expressions

// Name is an identifier. Used as a simple type reference as well.
type Name struct {
	typeExpr
	Value string
}

// QualifiedName is a dotted name: java.lang.Object.
type QualifiedName struct {
	typeExpr
	Parts []*Name
}

// String returns the dotted form.
func (q *QualifiedName) String() string {
	s := ""
	for i, p := range q.Parts {
		if i > 0 {
			s += "."
		}
		s += p.Value
	}
	return s
}

// Last returns the final identifier.
func (q *QualifiedName) Last() *Name {
	return q.Parts[len(q.Parts)-1]
}

// PrimitiveType is a primitive type keyword: int, boolean, char, ...
type PrimitiveType struct {
	typeExpr
	Keyword string
}

// ArrayType is Elem[].
type ArrayType struct {
	typeExpr
	Elem TypeExpr
}

// ----------------------------------------------------------------------------
// Constructors

// NewName creates a Name at pos.
func NewName(pos Pos, value string) *Name {
	n := &Name{Value: value}
	n.pos = pos
	return n
}

// TypeString renders a written type reference.
func TypeString(e TypeExpr) string {
	switch e := e.(type) {
	case nil:
		return "void"
	case *Name:
		return e.Value
	case *QualifiedName:
		return e.String()
	case *PrimitiveType:
		return e.Keyword
	case *ArrayType:
		return TypeString(e.Elem) + "[]"
	}
	return "?"
}
