package check

import (
	"github.com/you-not-fish/jmm/internal/diag"
	"github.com/you-not-fish/jmm/internal/syntax"
	"github.com/you-not-fish/jmm/internal/types"
)

// member registers the header of one member declaration in class c.
// Headers damaged by syntax errors are skipped; the parser reported them.
func (r *resolver) member(c *types.Class, m syntax.Member) {
	switch m := m.(type) {
	case *syntax.FieldDecl:
		if m.Type != nil {
			r.fieldDecl(c, m)
		}
	case *syntax.MethodDecl:
		if m.Name != nil {
			r.methodDecl(c, m)
		}
	case *syntax.ConstructorDecl:
		if m.Name != nil {
			r.constructorDecl(c, m)
		}
	}
}

func (r *resolver) fieldDecl(c *types.Class, decl *syntax.FieldDecl) {
	mods := decl.Mods
	if c.IsInterface() {
		mods |= syntax.Public | syntax.Static | syntax.Final
	}
	t := r.typ(decl.Type)
	for _, name := range decl.Names {
		f := types.NewField(name.Pos(), name.Value, t, mods)
		if existing := c.AddField(f); existing != nil {
			r.ctx.Report(diag.New(name.Pos(), diag.DuplicateDefinition,
				"variable %s is already defined in %s %s", name.Value, classKind(c), c.Name()).
				WithRelated(existing.Pos(), "previously defined here"))
		}
	}
}

func (r *resolver) methodDecl(c *types.Class, decl *syntax.MethodDecl) {
	mods := decl.Mods
	if c.IsInterface() {
		mods |= syntax.Public
		if !decl.HasBody {
			mods |= syntax.Abstract
		}
	}
	if mods.Has(syntax.Abstract) && !c.Modifiers().Has(syntax.Abstract) {
		r.ctx.Errorf(decl.Name.Pos(), diag.InvalidMember,
			"%s is not abstract and does not override abstract method %s", c.Name(), decl.Name.Value)
	}
	params := r.params(decl.Params)
	var result types.Type
	if decl.Result != nil {
		result = r.typ(decl.Result)
	}
	m := types.NewMethod(decl.Name.Pos(), decl.Name.Value, params, result, mods)
	if existing := c.AddMethod(m); existing != nil {
		r.ctx.Report(diag.New(decl.Name.Pos(), diag.DuplicateDefinition,
			"method %s is already defined in %s %s", m.Signature(), classKind(c), c.Name()).
			WithRelated(existing.Pos(), "previously defined here"))
	}
}

func (r *resolver) constructorDecl(c *types.Class, decl *syntax.ConstructorDecl) {
	if c.IsInterface() || decl.Name.Value != c.Name() {
		r.ctx.Errorf(decl.Name.Pos(), diag.InvalidMember,
			"invalid method declaration; return type required: %s", decl.Name.Value)
		return
	}
	params := r.params(decl.Params)
	m := types.NewConstructor(decl.Name.Pos(), decl.Name.Value, params, decl.Mods)
	if existing := c.AddMethod(m); existing != nil {
		r.ctx.Report(diag.New(decl.Name.Pos(), diag.DuplicateDefinition,
			"constructor %s is already defined in class %s", m.Signature(), c.Name()).
			WithRelated(existing.Pos(), "previously defined here"))
	}
}

func (r *resolver) params(list []*syntax.Param) []types.Param {
	if len(list) == 0 {
		return nil
	}
	params := make([]types.Param, 0, len(list))
	for _, p := range list {
		if p.Name == nil || p.Type == nil {
			continue
		}
		params = append(params, types.Param{Name: p.Name.Value, Pos: p.Name.Pos(), Type: r.typ(p.Type)})
	}
	return params
}

func classKind(c *types.Class) string {
	if c.IsInterface() {
		return "interface"
	}
	return "class"
}
