// Package check binds the type declarations of a J-- compilation unit.
//
// Binding runs in two passes over the declarations of a unit. The first
// pass (DeclareThisType) makes every declared type name visible in the
// unit context. The second pass (PreAnalyze) resolves each declaration's
// supertypes and member headers, which may refer to any type of the unit
// regardless of textual order.
package check

import (
	"io"
	"log/slog"

	"github.com/you-not-fish/jmm/internal/diag"
	"github.com/you-not-fish/jmm/internal/syntax"
	"github.com/you-not-fish/jmm/internal/types"
)

// Config specifies how a unit is checked.
type Config struct {
	// Error is called for each diagnostic.
	// If nil, diagnostics are only counted.
	Error diag.Handler

	// Logger receives phase transitions at debug level.
	// If nil, nothing is logged.
	Logger *slog.Logger

	// MaxErrors stops the unit after that many diagnostics.
	// Zero means no limit.
	MaxErrors int

	// StrictPhases makes a phase order violation stop the unit.
	StrictPhases bool
}

// Info holds the results of binding.
type Info struct {
	// Defs maps the name of each declared type to its definition.
	Defs map[*syntax.Name]types.Defn

	// Uses maps each written type name to the definition it resolved to.
	// For qualified names the last part is the key.
	Uses map[*syntax.Name]types.Defn

	// Types maps each resolved type expression to its type.
	// Failed references map to a *types.Unresolved.
	Types map[syntax.TypeExpr]types.Type
}

// Unit is a bound compilation unit.
type Unit struct {
	Filename string
	Package  string // "" for the unnamed package
	Context  *types.Context
	Decls    []TypeDecl

	// Errors is the number of diagnostics reported while binding the unit.
	Errors int
}

// Lookup returns the declaration named name, or nil.
func (u *Unit) Lookup(name string) TypeDecl {
	for _, d := range u.Decls {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// Check binds a parsed compilation unit.
// It returns the unit and the first diagnostic reported, if any.
func Check(file *syntax.File, conf *Config, info *Info) (*Unit, error) {
	if conf == nil {
		conf = &Config{}
	}
	if info != nil {
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Name]types.Defn)
		}
		if info.Uses == nil {
			info.Uses = make(map[*syntax.Name]types.Defn)
		}
		if info.Types == nil {
			info.Types = make(map[syntax.TypeExpr]types.Type)
		}
	}

	logger := conf.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Checker{
		conf: conf,
		info: info,
		log:  logger.With("file", file.Filename),
	}
	u := c.checkFile(file)

	if c.first != nil {
		return u, c.first
	}
	return u, nil
}
