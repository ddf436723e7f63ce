package check

import (
	"github.com/you-not-fish/jmm/internal/diag"
	"github.com/you-not-fish/jmm/internal/syntax"
	"github.com/you-not-fish/jmm/internal/types"
)

// EnterMethod opens the context of method m, nested in the member context
// of its class, with a fresh frame.
//
// For instance methods and constructors offset 0 holds this. The formal
// parameters follow in order. All of them are initialized on entry.
func EnterMethod(members *types.Context, m *types.Method) *types.Context {
	ctx := types.NewMethodContext(members, "method "+m.Signature())
	frame := ctx.Frame()

	if !m.IsStatic() {
		if class := members.Class(); class != nil {
			ctx.Insert("this", types.NewParamDefn(m.Pos(), "this", class, frame.Alloc(class)))
		}
	}
	for _, p := range m.Params() {
		d := types.NewParamDefn(p.Pos, p.Name, p.Type, frame.Alloc(p.Type))
		if existing := ctx.Insert(p.Name, d); existing != nil {
			ctx.Report(diag.New(p.Pos, diag.DuplicateDefinition,
				"variable %s is already defined in method %s", p.Name, m.Name()).
				WithRelated(types.DefnPos(existing), "previously defined here"))
		}
	}
	return ctx
}

// OpenBlock opens a block context nested in ctx. The block shares the
// frame of its method, so locals declared in it get offsets that are not
// reused after the block ends.
func OpenBlock(ctx *types.Context) *types.Context {
	return types.NewContext(ctx, types.BlockScope, "block")
}

// DeclareLocal declares an uninitialized local variable in ctx, which
// must be inside a method.
//
// A local may not redeclare a parameter or another local that is still in
// scope in the same method; that is reported as DuplicateDefinition and
// the earlier binding stays visible. The returned definition is usable
// either way.
func DeclareLocal(ctx *types.Context, name string, pos syntax.Pos, t types.Type) *types.LocalVariableDefn {
	frame := ctx.Frame()
	if frame == nil {
		panic("check: DeclareLocal outside a method")
	}
	d := types.NewLocalVariableDefn(pos, name, t, frame.Alloc(t))

	for c := ctx; c != nil; c = c.Parent() {
		if existing, ok := c.Lookup(name).(*types.LocalVariableDefn); ok {
			ctx.Report(diag.New(pos, diag.DuplicateDefinition,
				"variable %s is already defined in this method", name).
				WithRelated(existing.Pos(), "previously defined here"))
			return d
		}
		if c.Kind() == types.MethodScope {
			break
		}
	}
	ctx.Insert(name, d)
	return d
}

// CheckUse reports UseBeforeInitialization if local has not been
// initialized. It reports whether the use is valid.
func CheckUse(ctx *types.Context, local *types.LocalVariableDefn, pos syntax.Pos) bool {
	if local.IsInitialized() {
		return true
	}
	ctx.Report(diag.New(pos, diag.UseBeforeInitialization,
		"variable %s might not have been initialized", local.Name()).
		WithRelated(local.Pos(), "declared here"))
	return false
}
