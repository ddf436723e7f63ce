package check

import (
	"log/slog"

	"github.com/you-not-fish/jmm/internal/diag"
	"github.com/you-not-fish/jmm/internal/syntax"
	"github.com/you-not-fish/jmm/internal/types"
)

// Checker drives the binding of one compilation unit.
type Checker struct {
	conf *Config
	info *Info
	log  *slog.Logger

	unit *Unit

	// Error tracking
	errors  int
	first   *diag.Diagnostic
	stopped bool // MaxErrors reached or strict phase violation
}

// handle is installed as the unit context's diagnostics handler.
func (c *Checker) handle(d *diag.Diagnostic) {
	if c.stopped {
		return
	}
	if c.errors == 0 {
		c.first = d
	}
	c.errors++
	if c.conf.Error != nil {
		c.conf.Error(d)
	}
	switch {
	case c.conf.MaxErrors > 0 && c.errors >= c.conf.MaxErrors:
		c.log.Debug("stopping", "reason", "max errors", "errors", c.errors)
		c.stopped = true
	case c.conf.StrictPhases && d.Kind == diag.PhaseOrder:
		c.log.Debug("stopping", "reason", "phase order", "pos", d.Pos.String())
		c.stopped = true
	}
}

// checkFile binds a single file.
func (c *Checker) checkFile(file *syntax.File) *Unit {
	u := &Unit{Filename: file.Filename}
	if file.Package != nil {
		u.Package = file.Package.String()
	}
	c.unit = u

	ctx := types.NewContext(types.Universe, types.UnitScope, file.Filename)
	ctx.SetHandler(c.handle)
	u.Context = ctx

	// Phase 1: imports
	for _, imp := range file.Imports {
		c.importDecl(ctx, imp)
	}

	for _, d := range file.Decls {
		td := NewTypeDecl(d)
		if td == nil {
			continue
		}
		if u.Package != "" {
			td.ThisType().SetQualifiedName(u.Package + "." + td.Name())
		}
		if td, ok := td.(recorder); ok {
			td.setInfo(c.info)
		}
		u.Decls = append(u.Decls, td)
	}

	// Phase 2: declare every type before any is pre-analyzed
	for _, td := range u.Decls {
		if c.stopped {
			break
		}
		td.DeclareThisType(ctx)
		c.log.Debug("declared", "type", td.Name(), "phase", td.Phase().String())
	}
	c.bindQualifiedNames(ctx)

	// Phase 3: resolve supertypes and member headers
	for _, td := range u.Decls {
		if c.stopped {
			break
		}
		td.PreAnalyze(ctx)
		c.log.Debug("pre-analyzed", "type", td.Name(), "phase", td.Phase().String(),
			"super", typeString(td.SuperType()))
	}

	// Phase 4: bind formal parameters of every method
	for _, td := range u.Decls {
		if c.stopped || td.Phase() != PreAnalyzed {
			continue
		}
		c.bindParams(td)
	}

	u.Errors = c.errors
	return u
}

// importDecl binds the simple name of a single-type import.
// On-demand imports bind nothing: package contents are not known.
func (c *Checker) importDecl(ctx *types.Context, imp *syntax.ImportDecl) {
	q := imp.Path.String()
	if imp.OnDemand {
		c.log.Debug("skipping on-demand import", "package", q)
		return
	}

	// java.lang classes from the universe keep their identity
	var class *types.Class
	if d, ok := types.Universe.Lookup(q).(*types.TypeNameDefn); ok {
		class, _ = d.Type().(*types.Class)
	}
	if class == nil {
		class = types.NewExternalClass(q, types.Object())
	}

	name := imp.Path.Last()
	defn := types.NewTypeNameDefn(class)
	if existing := ctx.Insert(name.Value, defn); existing != nil {
		if existing.Type() == types.Type(class) || existing.Type().String() == q {
			return // repeated import of the same type
		}
		ctx.Errorf(name.Pos(), diag.DuplicateDefinition,
			"a type named %s is already imported from %s", name.Value, existing.Type())
		return
	}
	if c.info != nil {
		c.info.Defs[name] = defn
	}
}

// bindQualifiedNames makes the types declared in a named package reachable
// by their qualified names as well.
func (c *Checker) bindQualifiedNames(ctx *types.Context) {
	if c.unit.Package == "" {
		return
	}
	for _, td := range c.unit.Decls {
		if td.Phase() == Parsed {
			continue
		}
		if d, ok := ctx.Lookup(td.Name()).(*types.TypeNameDefn); ok && d.Type() == types.Type(td.ThisType()) {
			ctx.Insert(td.ThisType().QualifiedName(), d)
		}
	}
}

// bindParams enters each method of td once so that duplicate parameter
// names are reported.
func (c *Checker) bindParams(td TypeDecl) {
	members := td.Context()
	class := td.ThisType()
	for _, m := range class.Constructors() {
		EnterMethod(members, m)
	}
	for _, m := range class.Methods() {
		EnterMethod(members, m)
	}
}

func typeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
