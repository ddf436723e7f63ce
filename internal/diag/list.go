package diag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// List accumulates diagnostics. The zero value is ready to use.
type List struct {
	items []*Diagnostic
}

// Add appends d.
func (l *List) Add(d *Diagnostic) {
	l.items = append(l.items, d)
}

// Handler returns a Handler that appends to l.
func (l *List) Handler() Handler {
	return l.Add
}

// Len returns the number of diagnostics.
func (l *List) Len() int { return len(l.items) }

// Items returns the collected diagnostics in report order.
func (l *List) Items() []*Diagnostic { return l.items }

// Count returns the number of diagnostics of the given kind.
func (l *List) Count(kind Kind) int {
	n := 0
	for _, d := range l.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Sort orders the diagnostics by position. Diagnostics at the same position
// keep their report order.
func (l *List) Sort() {
	sort.SliceStable(l.items, func(i, j int) bool {
		return l.items[i].Pos.Before(l.items[j].Pos)
	})
}

// Err returns nil for an empty list, otherwise an error wrapping every
// diagnostic so that errors.Is can match on kinds.
func (l *List) Err() error {
	if len(l.items) == 0 {
		return nil
	}
	errs := make([]error, len(l.items))
	for i, d := range l.items {
		errs[i] = d
	}
	return &listError{items: l.items, err: errors.Join(errs...)}
}

type listError struct {
	items []*Diagnostic
	err   error
}

func (e *listError) Error() string {
	if len(e.items) == 1 {
		return e.items[0].Error()
	}
	var b strings.Builder
	b.WriteString(e.items[0].Error())
	b.WriteString(" (and ")
	b.WriteString(plural(len(e.items)-1, "more error"))
	b.WriteString(")")
	return b.String()
}

func (e *listError) Unwrap() error { return e.err }

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
