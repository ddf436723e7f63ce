package check

import (
	"github.com/you-not-fish/jmm/internal/diag"
	"github.com/you-not-fish/jmm/internal/syntax"
	"github.com/you-not-fish/jmm/internal/types"
)

// resolver resolves written type references in a context.
type resolver struct {
	ctx  *types.Context
	info *Info
}

// ResolveType resolves a written type reference in ctx. Failures are
// reported to ctx and yield a *types.Unresolved; the result is never nil.
// A nil expression denotes void.
func ResolveType(ctx *types.Context, e syntax.TypeExpr) types.Type {
	r := &resolver{ctx: ctx}
	return r.typ(e)
}

func (r *resolver) typ(e syntax.TypeExpr) types.Type {
	if e == nil {
		return types.Typ[types.Void]
	}
	var t types.Type
	switch e := e.(type) {
	case *syntax.PrimitiveType:
		if b := types.LookupBasic(e.Keyword); b != nil {
			t = b
		} else {
			r.ctx.Errorf(e.Pos(), diag.NotAType, "%s is not a type", e.Keyword)
			t = types.NewUnresolved(e.Keyword)
		}
	case *syntax.Name:
		t = r.typeName(e, e.Value)
	case *syntax.QualifiedName:
		t = r.qualifiedName(e)
	case *syntax.ArrayType:
		t = types.NewArray(r.typ(e.Elem))
	default:
		r.ctx.Errorf(e.Pos(), diag.NotAType, "%T is not a type", e)
		t = types.NewUnresolved(syntax.TypeString(e))
	}
	if r.info != nil {
		r.info.Types[e] = t
	}
	return t
}

// typeName resolves a name to the type it is bound to.
func (r *resolver) typeName(name *syntax.Name, written string) types.Type {
	defn, _ := r.ctx.LookupParent(written)
	if defn == nil {
		r.ctx.Errorf(name.Pos(), diag.UnresolvedTypeReference, "cannot find symbol: class %s", written)
		return types.NewUnresolved(written)
	}
	r.recordUse(name, defn)
	switch defn := defn.(type) {
	case *types.TypeNameDefn:
		return defn.Type()
	case *types.LocalVariableDefn:
		r.ctx.Report(diag.New(name.Pos(), diag.NotAType, "%s is a variable, not a type", written).
			WithRelated(defn.Pos(), "variable declared here"))
	}
	return types.NewUnresolved(written)
}

// qualifiedName resolves a dotted name. A name bound in the context (an
// imported, predeclared or package-qualified declared type) wins; any
// other qualified name refers to a class outside the unit and is trusted
// like an import.
func (r *resolver) qualifiedName(q *syntax.QualifiedName) types.Type {
	written := q.String()
	if defn, _ := r.ctx.LookupParent(written); defn != nil {
		return r.typeName(q.Last(), written)
	}
	defn := types.NewTypeNameDefn(types.NewExternalClass(written, types.Object()))
	if unit := outerContext(r.ctx); unit != nil {
		unit.Insert(written, defn)
	}
	r.recordUse(q.Last(), defn)
	return defn.Type()
}

// outerContext returns the compilation-unit context enclosing ctx, or the
// outermost context below the universe when there is none. It returns nil
// for the universe itself, which is shared and never extended.
func outerContext(ctx *types.Context) *types.Context {
	if ctx.Kind() == types.UniverseScope {
		return nil
	}
	for ctx.Kind() != types.UnitScope {
		parent := ctx.Parent()
		if parent == nil || parent.Kind() == types.UniverseScope {
			break
		}
		ctx = parent
	}
	return ctx
}

func (r *resolver) recordUse(name *syntax.Name, defn types.Defn) {
	if r.info != nil {
		r.info.Uses[name] = defn
	}
}

// ----------------------------------------------------------------------------
// Supertypes

// superclass resolves the extends clause of class this.
func (r *resolver) superclass(e syntax.TypeExpr, this *types.Class) types.Type {
	t := r.typ(e)
	switch super := t.(type) {
	case *types.Unresolved:
		return super
	case *types.Class:
		switch {
		case super.IsInterface():
			r.ctx.Errorf(e.Pos(), diag.InvalidSupertype, "no interface expected here: %s", super)
		case super == this || types.IsSubclass(super, this):
			r.ctx.Errorf(e.Pos(), diag.InvalidSupertype, "cyclic inheritance involving %s", this.Name())
		case super.Modifiers().Has(syntax.Final):
			r.ctx.Errorf(e.Pos(), diag.InvalidSupertype, "cannot inherit from final %s", super)
		default:
			return super
		}
	default:
		r.ctx.Errorf(e.Pos(), diag.InvalidSupertype, "unexpected type %s: class expected", t)
	}
	return types.Object()
}

// interfaces resolves an implements or extends list. The result has one
// entry per written reference, in written order; entries that are not
// interfaces are reported but kept.
func (r *resolver) interfaces(list []syntax.TypeExpr, this *types.Class, clause string) []types.Type {
	if len(list) == 0 {
		return nil
	}
	ifaces := make([]types.Type, len(list))
	for i, e := range list {
		t := r.typ(e)
		ifaces[i] = t
		switch iface := t.(type) {
		case *types.Unresolved:
		case *types.Class:
			if !iface.IsInterface() {
				r.ctx.Errorf(e.Pos(), diag.InvalidSupertype, "interface expected here: %s %s", clause, iface)
			} else if iface == this || extendsInterface(iface, this) {
				r.ctx.Errorf(e.Pos(), diag.InvalidSupertype, "cyclic inheritance involving %s", this.Name())
				ifaces[i] = types.NewUnresolved(iface.Name())
			}
		default:
			r.ctx.Errorf(e.Pos(), diag.InvalidSupertype, "unexpected type %s: interface expected", t)
		}
	}
	return ifaces
}

// extendsInterface reports whether interface i extends target, directly
// or indirectly.
func extendsInterface(i, target *types.Class) bool {
	seen := make(map[*types.Class]bool)
	var walk func(c *types.Class) bool
	walk = func(c *types.Class) bool {
		if seen[c] {
			return false
		}
		seen[c] = true
		for _, t := range c.Interfaces() {
			sup, ok := t.(*types.Class)
			if !ok {
				continue
			}
			if sup == target || walk(sup) {
				return true
			}
		}
		return false
	}
	return walk(i)
}
