package syntax

import (
	"fmt"
	"io"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// Maximum number of syntax errors reported per file.
const maxErrors = 10

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrorHandler is called for each syntax error.
type ErrorHandler func(pos Pos, msg string)

// Parser builds declaration trees from Java source using the tree-sitter
// Java grammar. Only declaration structure is extracted; bodies are skipped.
type Parser struct {
	filename string
	src      []byte

	errh   ErrorHandler
	errcnt int
	first  error
}

// NewParser creates a new Parser for the given source.
// The entire source is read into memory.
func NewParser(filename string, src io.Reader, errh ErrorHandler) *Parser {
	p := &Parser{filename: filename, errh: errh}
	buf, err := io.ReadAll(src)
	if err != nil {
		p.errorAt(NewPos(filename, 1, 1), "error reading source file: "+err.Error())
	}
	p.src = buf
	return p
}

// Err returns the first syntax error, or nil.
func (p *Parser) Err() error {
	return p.first
}

// Parse parses the source and returns the compilation unit.
// The result is never nil; on syntax errors it holds whatever declarations
// could be recovered.
func (p *Parser) Parse() *File {
	f := &File{Filename: p.filename}
	f.pos = NewPos(p.filename, 1, 1)

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		p.errorAt(f.pos, fmt.Sprintf("loading Java grammar: %v", err))
		return f
	}

	tree := parser.Parse(p.src, nil)
	if tree == nil {
		p.errorAt(f.pos, "parser returned no tree")
		return f
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		p.reportErrors(root)
	}

	for i := uint(0); i < root.NamedChildCount(); i++ {
		n := root.NamedChild(i)
		switch n.Kind() {
		case "package_declaration":
			f.Package = p.qualifiedName(p.nameChild(n))
		case "import_declaration":
			if imp := p.importDecl(n); imp != nil {
				f.Imports = append(f.Imports, imp)
			}
		case "class_declaration":
			f.Decls = append(f.Decls, p.classDecl(n))
		case "interface_declaration":
			f.Decls = append(f.Decls, p.interfaceDecl(n))
		}
	}
	return f
}

// ----------------------------------------------------------------------------
// Errors

func (p *Parser) errorAt(pos Pos, msg string) {
	if p.first == nil {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++
	if p.errh != nil && p.errcnt <= maxErrors {
		p.errh(pos, msg)
	}
}

// reportErrors walks the tree and reports ERROR and MISSING nodes.
func (p *Parser) reportErrors(n *sitter.Node) {
	if n == nil || p.errcnt >= maxErrors {
		return
	}
	switch {
	case n.IsMissing():
		p.errorAt(p.pos(n), fmt.Sprintf("missing %s", n.Kind()))
		return
	case n.IsError():
		p.errorAt(p.pos(n), fmt.Sprintf("unexpected %q", p.text(n)))
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		p.reportErrors(n.Child(i))
	}
}

// ----------------------------------------------------------------------------
// Helpers

func (p *Parser) pos(n *sitter.Node) Pos {
	pt := n.StartPosition()
	return NewPos(p.filename, uint32(pt.Row)+1, uint32(pt.Column)+1)
}

func (p *Parser) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(p.src)
}

// childOfKind returns the first named child with the given kind.
func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c.Kind() == kind {
			return c
		}
	}
	return nil
}

// nameChild returns the first identifier or scoped_identifier child.
func (p *Parser) nameChild(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		switch c.Kind() {
		case "identifier", "scoped_identifier":
			return c
		}
	}
	return nil
}

func (p *Parser) name(n *sitter.Node) *Name {
	if n == nil {
		return nil
	}
	return NewName(p.pos(n), p.text(n))
}

// qualifiedName flattens identifier / scoped_identifier /
// scoped_type_identifier nodes into a QualifiedName.
func (p *Parser) qualifiedName(n *sitter.Node) *QualifiedName {
	if n == nil {
		return nil
	}
	q := &QualifiedName{}
	q.pos = p.pos(n)
	var flatten func(*sitter.Node)
	flatten = func(n *sitter.Node) {
		switch n.Kind() {
		case "identifier", "type_identifier":
			q.Parts = append(q.Parts, p.name(n))
		default:
			for i := uint(0); i < n.NamedChildCount(); i++ {
				flatten(n.NamedChild(i))
			}
		}
	}
	flatten(n)
	if len(q.Parts) == 0 {
		return nil
	}
	return q
}

func (p *Parser) modifiers(n *sitter.Node) Modifiers {
	mods := childOfKind(n, "modifiers")
	if mods == nil {
		return 0
	}
	var m Modifiers
	for i := uint(0); i < mods.ChildCount(); i++ {
		m |= ModifierFromString(mods.Child(i).Kind())
	}
	return m
}

// ----------------------------------------------------------------------------
// Declarations

func (p *Parser) importDecl(n *sitter.Node) *ImportDecl {
	path := p.qualifiedName(p.nameChild(n))
	if path == nil {
		return nil
	}
	imp := &ImportDecl{Path: path, OnDemand: childOfKind(n, "asterisk") != nil}
	imp.pos = p.pos(n)
	return imp
}

func (p *Parser) classDecl(n *sitter.Node) *ClassDecl {
	d := &ClassDecl{
		Mods: p.modifiers(n),
		Name: p.name(n.ChildByFieldName("name")),
	}
	d.pos = p.pos(n)
	if sc := childOfKind(n, "superclass"); sc != nil && sc.NamedChildCount() > 0 {
		d.Super = p.typeExpr(sc.NamedChild(sc.NamedChildCount() - 1))
	}
	if si := childOfKind(n, "super_interfaces"); si != nil {
		d.Interfaces = p.typeList(childOfKind(si, "type_list"))
	}
	if body := n.ChildByFieldName("body"); body != nil {
		d.Members = p.members(body)
	}
	return d
}

func (p *Parser) interfaceDecl(n *sitter.Node) *InterfaceDecl {
	d := &InterfaceDecl{
		Mods: p.modifiers(n),
		Name: p.name(n.ChildByFieldName("name")),
	}
	d.pos = p.pos(n)
	if ext := childOfKind(n, "extends_interfaces"); ext != nil {
		d.Extends = p.typeList(childOfKind(ext, "type_list"))
	}
	if body := n.ChildByFieldName("body"); body != nil {
		d.Members = p.members(body)
	}
	return d
}

func (p *Parser) typeList(n *sitter.Node) []TypeExpr {
	if n == nil {
		return nil
	}
	var list []TypeExpr
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if t := p.typeExpr(n.NamedChild(i)); t != nil {
			list = append(list, t)
		}
	}
	return list
}

func (p *Parser) members(body *sitter.Node) []Member {
	var list []Member
	for i := uint(0); i < body.NamedChildCount(); i++ {
		n := body.NamedChild(i)
		switch n.Kind() {
		case "field_declaration", "constant_declaration":
			list = append(list, p.fieldDecls(n)...)
		case "method_declaration":
			list = append(list, p.methodDecl(n))
		case "constructor_declaration":
			list = append(list, p.constructorDecl(n))
		}
	}
	return list
}

// fieldDecls converts one field declaration. A declarator with its own
// dimensions (int a[]) has a different type from its siblings and gets a
// FieldDecl of its own; declaration order is preserved.
func (p *Parser) fieldDecls(n *sitter.Node) []Member {
	mods := p.modifiers(n)
	typ := n.ChildByFieldName("type")
	first := p.typeExpr(typ)
	used := false
	elem := func() TypeExpr {
		if !used {
			used = true
			return first
		}
		if first == nil {
			return nil
		}
		return p.typeExpr(typ)
	}

	var list []Member
	newDecl := func(at *sitter.Node, t TypeExpr) *FieldDecl {
		d := &FieldDecl{Mods: mods, Type: t}
		if len(list) == 0 {
			at = n
		}
		d.pos = p.pos(at)
		list = append(list, d)
		return d
	}

	var cur *FieldDecl
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c.Kind() != "variable_declarator" {
			continue
		}
		name := p.name(c.ChildByFieldName("name"))
		if name == nil {
			continue
		}
		if dims := c.ChildByFieldName("dimensions"); dims != nil {
			d := newDecl(c, p.wrapDims(elem(), dims))
			d.Names = []*Name{name}
			cur = nil
			continue
		}
		if cur == nil {
			cur = newDecl(c, elem())
		}
		cur.Names = append(cur.Names, name)
	}
	if len(list) == 0 {
		newDecl(n, elem())
	}
	return list
}

func (p *Parser) methodDecl(n *sitter.Node) *MethodDecl {
	d := &MethodDecl{
		Mods:    p.modifiers(n),
		Name:    p.name(n.ChildByFieldName("name")),
		Params:  p.params(n.ChildByFieldName("parameters")),
		HasBody: n.ChildByFieldName("body") != nil,
	}
	d.pos = p.pos(n)
	if t := n.ChildByFieldName("type"); t != nil && t.Kind() != "void_type" {
		d.Result = p.typeExpr(t)
	}
	return d
}

func (p *Parser) constructorDecl(n *sitter.Node) *ConstructorDecl {
	d := &ConstructorDecl{
		Mods:   p.modifiers(n),
		Name:   p.name(n.ChildByFieldName("name")),
		Params: p.params(n.ChildByFieldName("parameters")),
	}
	d.pos = p.pos(n)
	return d
}

func (p *Parser) params(n *sitter.Node) []*Param {
	if n == nil {
		return nil
	}
	var list []*Param
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c.Kind() == "spread_parameter" {
			list = append(list, p.spreadParam(c))
			continue
		}
		if c.Kind() != "formal_parameter" {
			continue
		}
		param := &Param{
			Type: p.typeExpr(c.ChildByFieldName("type")),
			Name: p.name(c.ChildByFieldName("name")),
		}
		param.pos = p.pos(c)
		if dims := c.ChildByFieldName("dimensions"); dims != nil {
			param.Type = p.wrapDims(param.Type, dims)
		}
		list = append(list, param)
	}
	return list
}

// spreadParam converts a variable arity parameter (int... xs). Its type is
// an array of the written element type.
func (p *Parser) spreadParam(n *sitter.Node) *Param {
	param := &Param{Variadic: true}
	param.pos = p.pos(n)
	var dims *sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		switch c.Kind() {
		case "modifiers", "annotation", "marker_annotation":
		case "variable_declarator":
			param.Name = p.name(c.ChildByFieldName("name"))
			dims = c.ChildByFieldName("dimensions")
		default:
			if param.Type == nil {
				param.Type = p.typeExpr(c)
			}
		}
	}
	if param.Type != nil {
		a := &ArrayType{Elem: param.Type}
		a.pos = param.Type.Pos()
		param.Type = p.wrapDims(a, dims)
	}
	return param
}

// ----------------------------------------------------------------------------
// Types

func (p *Parser) typeExpr(n *sitter.Node) TypeExpr {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "type_identifier", "identifier":
		return p.name(n)
	case "scoped_type_identifier", "scoped_identifier":
		q := p.qualifiedName(n)
		if q == nil {
			return nil
		}
		if len(q.Parts) == 1 {
			return q.Parts[0]
		}
		return q
	case "generic_type":
		// Type arguments are outside the subset; keep the raw type.
		if n.NamedChildCount() > 0 {
			return p.typeExpr(n.NamedChild(0))
		}
		return nil
	case "integral_type", "floating_point_type", "boolean_type":
		t := &PrimitiveType{Keyword: p.text(n)}
		t.pos = p.pos(n)
		return t
	case "array_type":
		return p.wrapDims(p.typeExpr(n.ChildByFieldName("element")), n.ChildByFieldName("dimensions"))
	}
	p.errorAt(p.pos(n), fmt.Sprintf("unsupported type syntax %s", n.Kind()))
	return nil
}

// wrapDims wraps elem in one ArrayType per "[]" in dims.
func (p *Parser) wrapDims(elem TypeExpr, dims *sitter.Node) TypeExpr {
	if elem == nil || dims == nil {
		return elem
	}
	t := elem
	for i := uint(0); i < dims.ChildCount(); i++ {
		if dims.Child(i).Kind() != "[" {
			continue
		}
		a := &ArrayType{Elem: t}
		a.pos = elem.Pos()
		t = a
	}
	return t
}
