package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, children in source order.
// If visitor returns false, children are not visited. Parts missing after
// a syntax error (nil fields) are skipped.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		if n.Package != nil {
			Walk(n.Package, v)
		}
		for _, imp := range n.Imports {
			if imp != nil {
				Walk(imp, v)
			}
		}
		for _, d := range n.Decls {
			Walk(d, v)
		}

	case *ImportDecl:
		if n.Path != nil {
			Walk(n.Path, v)
		}

	case *ClassDecl:
		walkName(n.Name, v)
		Walk(n.Super, v)
		walkTypes(n.Interfaces, v)
		walkMembers(n.Members, v)

	case *InterfaceDecl:
		walkName(n.Name, v)
		walkTypes(n.Extends, v)
		walkMembers(n.Members, v)

	case *FieldDecl:
		Walk(n.Type, v)
		for _, name := range n.Names {
			walkName(name, v)
		}

	case *MethodDecl:
		Walk(n.Result, v)
		walkName(n.Name, v)
		walkParams(n.Params, v)

	case *ConstructorDecl:
		walkName(n.Name, v)
		walkParams(n.Params, v)

	case *Param:
		Walk(n.Type, v)
		walkName(n.Name, v)

	case *QualifiedName:
		for _, p := range n.Parts {
			walkName(p, v)
		}

	case *ArrayType:
		Walk(n.Elem, v)

	// Leaf nodes: Name, PrimitiveType
	}
}

func walkName(n *Name, v Visitor) {
	if n != nil {
		Walk(n, v)
	}
}

func walkTypes(list []TypeExpr, v Visitor) {
	for _, t := range list {
		Walk(t, v)
	}
}

func walkMembers(list []Member, v Visitor) {
	for _, m := range list {
		Walk(m, v)
	}
}

func walkParams(list []*Param, v Visitor) {
	for _, p := range list {
		if p != nil {
			Walk(p, v)
		}
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
