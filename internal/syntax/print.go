package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) mods(m Modifiers) {
	if m != 0 {
		p.printf("Mods: %s\n", strings.Join(m.Names(), " "))
	}
}

func (p *printer) typeList(label string, list []TypeExpr) {
	if len(list) == 0 {
		return
	}
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = TypeString(t)
	}
	p.printf("%s: %s\n", label, strings.Join(names, ", "))
}

func (p *printer) params(list []*Param) {
	if len(list) == 0 {
		return
	}
	p.printf("Params:\n")
	p.indent++
	for _, f := range list {
		typ := TypeString(f.Type)
		if a, ok := f.Type.(*ArrayType); ok && f.Variadic {
			typ = TypeString(a.Elem) + "..."
		}
		p.printf("%s %s\n", typ, nameString(f.Name))
	}
	p.indent--
}

func nameString(n *Name) string {
	if n == nil {
		return "<missing>"
	}
	return n.Value
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		if n.Package != nil {
			p.printf("Package: %s\n", n.Package)
		}
		for _, imp := range n.Imports {
			p.print(imp)
		}
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *ImportDecl:
		path := n.Path.String()
		if n.OnDemand {
			path += ".*"
		}
		p.printf("ImportDecl %s %s\n", n.pos, path)

	case *ClassDecl:
		p.printf("ClassDecl %s\n", n.pos)
		p.indent++
		p.mods(n.Mods)
		p.printf("Name: %s\n", nameString(n.Name))
		if n.Super != nil {
			p.printf("Super: %s\n", TypeString(n.Super))
		}
		p.typeList("Implements", n.Interfaces)
		for _, m := range n.Members {
			p.print(m)
		}
		p.indent--

	case *InterfaceDecl:
		p.printf("InterfaceDecl %s\n", n.pos)
		p.indent++
		p.mods(n.Mods)
		p.printf("Name: %s\n", nameString(n.Name))
		p.typeList("Extends", n.Extends)
		for _, m := range n.Members {
			p.print(m)
		}
		p.indent--

	case *FieldDecl:
		p.printf("FieldDecl %s\n", n.pos)
		p.indent++
		p.mods(n.Mods)
		p.printf("Type: %s\n", TypeString(n.Type))
		names := make([]string, len(n.Names))
		for i, name := range n.Names {
			names[i] = name.Value
		}
		p.printf("Names: %s\n", strings.Join(names, ", "))
		p.indent--

	case *MethodDecl:
		p.printf("MethodDecl %s\n", n.pos)
		p.indent++
		p.mods(n.Mods)
		p.printf("Name: %s\n", nameString(n.Name))
		p.params(n.Params)
		p.printf("Result: %s\n", TypeString(n.Result))
		if !n.HasBody {
			p.printf("Body: none\n")
		}
		p.indent--

	case *ConstructorDecl:
		p.printf("ConstructorDecl %s\n", n.pos)
		p.indent++
		p.mods(n.Mods)
		p.printf("Name: %s\n", nameString(n.Name))
		p.params(n.Params)
		p.indent--

	case TypeExpr:
		p.printf("%T %s\n", n, TypeString(n))

	default:
		p.printf("%T %s\n", n, n.Pos())
	}
}
