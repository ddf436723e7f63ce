// Package diag defines the diagnostics reported by the declaration checker
// and the list and emitter used by drivers to collect and print them.
package diag

import (
	"fmt"

	"github.com/you-not-fish/jmm/internal/syntax"
)

// Kind classifies a diagnostic. A Kind is itself an error so that
// errors.Is(err, diag.UnresolvedTypeReference) works on reported
// diagnostics.
type Kind int

const (
	// Syntax is a parse error forwarded from the parser.
	Syntax Kind = iota + 1
	// DuplicateDefinition: a name is already bound in the same scope.
	DuplicateDefinition
	// UnresolvedTypeReference: a written type name does not resolve to a
	// declared type.
	UnresolvedTypeReference
	// NotAType: a written type name resolves to something that is not a type.
	NotAType
	// InvalidSupertype: a class extends an interface or itself, or an
	// implements/extends list names a class.
	InvalidSupertype
	// PhaseOrder: a declaration step was run out of order.
	PhaseOrder
	// UseBeforeInitialization: a local is read before it definitely
	// received a value. Reported by flow analysis, not by the binder.
	UseBeforeInitialization
	// InvalidMember: a member header that cannot appear where it is, e.g.
	// an abstract method in a concrete class.
	InvalidMember
)

var kindNames = [...]string{
	Syntax:                  "syntax error",
	DuplicateDefinition:     "duplicate definition",
	UnresolvedTypeReference: "unresolved type reference",
	NotAType:                "not a type",
	InvalidSupertype:        "invalid supertype",
	PhaseOrder:              "phase order violation",
	UseBeforeInitialization: "use before initialization",
	InvalidMember:           "invalid member",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code returns the stable short code printed next to the message.
func (k Kind) Code() string {
	return fmt.Sprintf("J%04d", int(k))
}

// Error implements error.
func (k Kind) Error() string { return k.String() }

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Pos  syntax.Pos
	Kind Kind
	Msg  string

	// Related points at a second location, e.g. the first declaration of a
	// duplicated name. Invalid when unused.
	Related    syntax.Pos
	RelatedMsg string
}

// New creates a diagnostic with a formatted message.
func New(pos syntax.Pos, kind Kind, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Pos: pos, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WithRelated attaches a related location.
func (d *Diagnostic) WithRelated(pos syntax.Pos, msg string) *Diagnostic {
	d.Related = pos
	d.RelatedMsg = msg
	return d
}

// Error implements error.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Msg)
}

// Is reports whether target is this diagnostic's Kind.
func (d *Diagnostic) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == d.Kind
}

// Handler receives each diagnostic as it is reported.
type Handler func(d *Diagnostic)
