package types

import (
	"strings"
	"testing"

	"github.com/you-not-fish/jmm/internal/diag"
	"github.com/you-not-fish/jmm/internal/syntax"
)

func TestContextInsertAndLookup(t *testing.T) {
	ctx := NewContext(nil, UnitScope, "test")

	x := NewLocalVariableDefn(syntax.NoPos, "x", Typ[Int], 0)
	if existing := ctx.Insert("x", x); existing != nil {
		t.Errorf("Insert() returned %v for first insert", existing)
	}
	if ctx.Lookup("x") != x {
		t.Errorf("Lookup() did not return inserted defn")
	}

	// duplicates never overwrite
	x2 := NewLocalVariableDefn(syntax.NoPos, "x", Typ[Long], 1)
	if existing := ctx.Insert("x", x2); existing != x {
		t.Errorf("Insert() should return first defn for duplicate")
	}
	if ctx.Lookup("x") != x {
		t.Errorf("duplicate Insert overwrote the binding")
	}
	if ctx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ctx.Len())
	}
}

func TestContextLookupParent(t *testing.T) {
	parent := NewContext(Universe, UnitScope, "parent")
	child := NewContext(parent, BlockScope, "child")

	d := NewTypeNameDefn(NewClass(syntax.NoPos, "A", false))
	parent.Insert("A", d)

	found, where := child.LookupParent("A")
	if found != d || where != parent {
		t.Errorf("LookupParent() = %v, %v", found, where)
	}
	if child.Lookup("A") != nil {
		t.Errorf("Lookup() should not search the parent")
	}

	found, where = child.LookupParent("int")
	if where != Universe || found.Type() != Typ[Int] {
		t.Errorf("LookupParent(int) did not reach the universe")
	}

	if found, where := child.LookupParent("Nope"); found != nil || where != nil {
		t.Errorf("LookupParent(Nope) = %v, %v", found, where)
	}
}

func TestContextShadowing(t *testing.T) {
	parent := NewContext(nil, UnitScope, "parent")
	child := NewContext(parent, BlockScope, "child")

	outer := NewTypeNameDefn(Typ[Int])
	inner := NewLocalVariableDefn(syntax.NoPos, "x", Typ[Long], 0)
	parent.Insert("x", outer)
	if child.Insert("x", inner) != nil {
		t.Fatal("Insert in child should not see the parent binding")
	}
	if d, _ := child.LookupParent("x"); d != inner {
		t.Errorf("inner binding should shadow outer")
	}
	if d, _ := parent.LookupParent("x"); d != outer {
		t.Errorf("outer binding should be unaffected")
	}
}

func TestContextNames(t *testing.T) {
	ctx := NewContext(nil, UnitScope, "names")
	for _, n := range []string{"c", "a", "b"} {
		ctx.Insert(n, NewTypeNameDefn(Typ[Int]))
	}
	if got := strings.Join(ctx.Names(), ","); got != "a,b,c" {
		t.Errorf("Names() = %s, want a,b,c", got)
	}
}

func TestContextClassAndFrame(t *testing.T) {
	unit := NewContext(Universe, UnitScope, "unit")
	c := NewClass(syntax.NoPos, "A", false)
	cctx := NewClassContext(unit, c)
	mctx := NewMethodContext(cctx, "method m")
	block := NewContext(mctx, BlockScope, "block")

	if block.Class() != c || mctx.Class() != c {
		t.Error("Class() should find the enclosing class")
	}
	if unit.Class() != nil || unit.Frame() != nil {
		t.Error("unit context has no class or frame")
	}
	if block.Frame() == nil || block.Frame() != mctx.Frame() {
		t.Error("block should share the method frame")
	}
	if block.Method() != mctx {
		t.Error("Method() should find the method context")
	}
	if block.Kind() != BlockScope || block.Kind().String() != "block" {
		t.Errorf("Kind() = %v", block.Kind())
	}
}

func TestContextErrorf(t *testing.T) {
	var got []*diag.Diagnostic
	root := NewContext(Universe, UnitScope, "unit")
	root.SetHandler(func(d *diag.Diagnostic) { got = append(got, d) })
	inner := NewContext(NewContext(root, ClassScope, "class"), BlockScope, "block")

	inner.Errorf(syntax.NewPos("A.java", 2, 3), diag.DuplicateDefinition, "%s is already defined", "x")
	if len(got) != 1 {
		t.Fatalf("handler got %d diagnostics, want 1", len(got))
	}
	if got[0].Kind != diag.DuplicateDefinition || got[0].Msg != "x is already defined" {
		t.Errorf("diagnostic = %v", got[0])
	}
	if inner.ErrorCount() != 1 || root.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d/%d, want 1", inner.ErrorCount(), root.ErrorCount())
	}
}

func TestContextNilHandlerCounts(t *testing.T) {
	root := NewContext(nil, UnitScope, "unit")
	root.SetHandler(nil)
	root.Errorf(syntax.NoPos, diag.PhaseOrder, "x")
	if root.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d, want 1", root.ErrorCount())
	}
}

func TestContextWithoutHandlerLeavesUniverseAlone(t *testing.T) {
	before := Universe.ErrorCount()
	unit := NewContext(Universe, UnitScope, "unit")
	class := NewContext(unit, ClassScope, "class")

	class.Errorf(syntax.NoPos, diag.UnresolvedTypeReference, "cannot find symbol: class Ghost")
	if unit.ErrorCount() != 1 || class.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d/%d, want 1", unit.ErrorCount(), class.ErrorCount())
	}

	Universe.Errorf(syntax.NoPos, diag.PhaseOrder, "dropped")
	if got := Universe.ErrorCount(); got != before || got != 0 {
		t.Errorf("Universe.ErrorCount() = %d, want 0", got)
	}
}

func TestContextString(t *testing.T) {
	unit := NewContext(Universe, UnitScope, "A.java")
	unit.Insert("A", NewTypeNameDefn(NewClass(syntax.NoPos, "A", false)))
	s := unit.String()
	if !strings.Contains(s, "unit A.java {") || !strings.Contains(s, "A: A") {
		t.Errorf("String() =\n%s", s)
	}
}
