package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/you-not-fish/jmm/internal/diag"
	"github.com/you-not-fish/jmm/internal/syntax"
)

// ContextKind tells what construct opened a Context.
type ContextKind uint8

const (
	UniverseScope ContextKind = iota
	UnitScope                 // one compilation unit
	ClassScope                // a class or interface body
	MethodScope               // a method or constructor; owns a Frame
	BlockScope                // a block inside a method
)

var contextKindNames = [...]string{
	UniverseScope: "universe",
	UnitScope:     "unit",
	ClassScope:    "class",
	MethodScope:   "method",
	BlockScope:    "block",
}

func (k ContextKind) String() string {
	if int(k) < len(contextKindNames) {
		return contextKindNames[k]
	}
	return fmt.Sprintf("ContextKind(%d)", int(k))
}

// Context is a lexical scope: a mapping from names to definitions with a
// link to the enclosing context. Lookups fall through to the parent.
//
// A Context also carries the diagnostics sink. The handler installed with
// SetHandler is used by every context below it.
//
// Contexts are not safe for concurrent use.
type Context struct {
	parent  *Context
	kind    ContextKind
	comment string
	elems   map[string]Defn

	class *Class // for ClassScope
	frame *Frame // for MethodScope

	handler diag.Handler
	errors  int
}

// NewContext creates a context nested in parent. The comment is only used
// when printing.
func NewContext(parent *Context, kind ContextKind, comment string) *Context {
	return &Context{
		parent:  parent,
		kind:    kind,
		comment: comment,
		elems:   make(map[string]Defn),
	}
}

// NewClassContext creates the member context of class c.
func NewClassContext(parent *Context, c *Class) *Context {
	ctx := NewContext(parent, ClassScope, "class "+c.Name())
	ctx.class = c
	return ctx
}

// NewMethodContext creates a method context with a fresh frame.
func NewMethodContext(parent *Context, comment string) *Context {
	ctx := NewContext(parent, MethodScope, comment)
	ctx.frame = NewFrame()
	return ctx
}

// Parent returns the enclosing context, or nil for the universe.
func (c *Context) Parent() *Context { return c.parent }

// Kind returns the context kind.
func (c *Context) Kind() ContextKind { return c.kind }

// Comment returns the debugging comment.
func (c *Context) Comment() string { return c.comment }

// Lookup returns the definition bound to name in this context only.
func (c *Context) Lookup(name string) Defn {
	return c.elems[name]
}

// LookupParent searches this context and then its ancestors. It returns
// the definition and the context that binds it, or (nil, nil).
func (c *Context) LookupParent(name string) (Defn, *Context) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if d := ctx.elems[name]; d != nil {
			return d, ctx
		}
	}
	return nil, nil
}

// Insert binds name to d. If name is already bound in this context the
// existing definition is returned and nothing changes; otherwise the
// result is nil. Bindings in ancestors do not count.
func (c *Context) Insert(name string, d Defn) Defn {
	if existing := c.elems[name]; existing != nil {
		return existing
	}
	c.elems[name] = d
	return nil
}

// Names returns the names bound in this context, sorted.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.elems))
	for name := range c.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings in this context.
func (c *Context) Len() int { return len(c.elems) }

// Class returns the class of the nearest enclosing class context, or nil.
func (c *Context) Class() *Class {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.class != nil {
			return ctx.class
		}
	}
	return nil
}

// Frame returns the frame of the nearest enclosing method context, or nil.
func (c *Context) Frame() *Frame {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.frame != nil {
			return ctx.frame
		}
	}
	return nil
}

// Method returns the nearest enclosing method context, or nil.
func (c *Context) Method() *Context {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.kind == MethodScope {
			return ctx
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// Diagnostics

// SetHandler installs the diagnostics handler for c and its descendants.
func (c *Context) SetHandler(h diag.Handler) {
	c.handler = h
	if h == nil {
		// mark the context as the sink anyway so errors are still counted
		c.handler = func(*diag.Diagnostic) {}
	}
}

// sink returns the context owning the handler: the nearest one that set
// a handler, or the outermost context below the universe. The shared
// universe is never a sink; nil means there is nowhere to report.
func (c *Context) sink() *Context {
	if c.kind == UniverseScope {
		return nil
	}
	ctx := c
	for ctx.handler == nil && ctx.parent != nil && ctx.parent.kind != UniverseScope {
		ctx = ctx.parent
	}
	return ctx
}

// Report delivers d to the handler. Diagnostics reported directly to the
// universe are dropped.
func (c *Context) Report(d *diag.Diagnostic) {
	s := c.sink()
	if s == nil {
		return
	}
	s.errors++
	if s.handler != nil {
		s.handler(d)
	}
}

// Errorf reports a diagnostic of the given kind at pos. Use Report for
// diagnostics that carry a related position.
func (c *Context) Errorf(pos syntax.Pos, kind diag.Kind, format string, args ...interface{}) {
	c.Report(diag.New(pos, kind, format, args...))
}

// ErrorCount returns the number of diagnostics reported through c's sink.
func (c *Context) ErrorCount() int {
	s := c.sink()
	if s == nil {
		return 0
	}
	return s.errors
}

// String returns a representation of the context chain for debugging.
func (c *Context) String() string {
	var buf strings.Builder
	indent := 0
	var chain []*Context
	for ctx := c; ctx != nil; ctx = ctx.parent {
		chain = append(chain, ctx)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		ctx := chain[i]
		prefix := strings.Repeat("  ", indent)
		fmt.Fprintf(&buf, "%s%s %s {\n", prefix, ctx.kind, ctx.comment)
		if ctx.kind != UniverseScope {
			for _, name := range ctx.Names() {
				fmt.Fprintf(&buf, "%s  %s: %s\n", prefix, name, ctx.elems[name].Type())
			}
		}
		indent++
	}
	for indent > 0 {
		indent--
		fmt.Fprintf(&buf, "%s}\n", strings.Repeat("  ", indent))
	}
	return buf.String()
}
