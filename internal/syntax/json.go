package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		m := map[string]interface{}{
			"type":    "File",
			"pos":     n.pos.String(),
			"imports": mapSlice(n.Imports, func(d *ImportDecl) interface{} { return toJSON(d) }),
			"decls":   mapSlice(n.Decls, func(d Decl) interface{} { return toJSON(d) }),
		}
		if n.Package != nil {
			m["package"] = n.Package.String()
		}
		return m

	case *ImportDecl:
		return map[string]interface{}{
			"type":     "ImportDecl",
			"pos":      n.pos.String(),
			"path":     n.Path.String(),
			"onDemand": n.OnDemand,
		}

	case *ClassDecl:
		m := map[string]interface{}{
			"type":       "ClassDecl",
			"pos":        n.pos.String(),
			"name":       nameValue(n.Name),
			"modifiers":  n.Mods.Names(),
			"interfaces": mapSlice(n.Interfaces, typeJSON),
			"members":    mapSlice(n.Members, func(m Member) interface{} { return toJSON(m) }),
		}
		if n.Super != nil {
			m["super"] = typeJSON(n.Super)
		}
		return m

	case *InterfaceDecl:
		return map[string]interface{}{
			"type":      "InterfaceDecl",
			"pos":       n.pos.String(),
			"name":      nameValue(n.Name),
			"modifiers": n.Mods.Names(),
			"extends":   mapSlice(n.Extends, typeJSON),
			"members":   mapSlice(n.Members, func(m Member) interface{} { return toJSON(m) }),
		}

	case *FieldDecl:
		return map[string]interface{}{
			"type":      "FieldDecl",
			"pos":       n.pos.String(),
			"modifiers": n.Mods.Names(),
			"fieldType": typeJSON(n.Type),
			"names":     mapSlice(n.Names, func(x *Name) interface{} { return x.Value }),
		}

	case *MethodDecl:
		return map[string]interface{}{
			"type":      "MethodDecl",
			"pos":       n.pos.String(),
			"modifiers": n.Mods.Names(),
			"name":      nameValue(n.Name),
			"result":    TypeString(n.Result),
			"params":    mapSlice(n.Params, func(p *Param) interface{} { return toJSON(p) }),
			"hasBody":   n.HasBody,
		}

	case *ConstructorDecl:
		return map[string]interface{}{
			"type":      "ConstructorDecl",
			"pos":       n.pos.String(),
			"modifiers": n.Mods.Names(),
			"name":      nameValue(n.Name),
			"params":    mapSlice(n.Params, func(p *Param) interface{} { return toJSON(p) }),
		}

	case *Param:
		return map[string]interface{}{
			"type":      "Param",
			"pos":       n.pos.String(),
			"name":      nameValue(n.Name),
			"paramType": typeJSON(n.Type),
			"variadic":  n.Variadic,
		}

	case TypeExpr:
		return typeJSON(n)
	}

	return map[string]interface{}{"type": "Unknown"}
}

func typeJSON(t TypeExpr) interface{} {
	if t == nil {
		return nil
	}
	return map[string]interface{}{
		"pos":  t.Pos().String(),
		"name": TypeString(t),
	}
}

func nameValue(n *Name) interface{} {
	if n == nil {
		return nil
	}
	return n.Value
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = f(v)
	}
	return out
}
