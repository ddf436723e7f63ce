package types

// Frame hands out stack frame offsets for the locals of one method.
// Offsets increase monotonically and are never reused, so every local
// declared in the method keeps a distinct slot even after its block ends.
type Frame struct {
	next int
}

// NewFrame returns an empty frame; the first offset is 0.
func NewFrame() *Frame {
	return &Frame{}
}

// Alloc reserves the slots for a value of type t and returns its offset.
// long and double take two slots, every other type one.
func (f *Frame) Alloc(t Type) int {
	off := f.next
	n := Slots(t)
	if n < 1 {
		n = 1
	}
	f.next += n
	return off
}

// Size returns the number of slots allocated so far.
func (f *Frame) Size() int {
	return f.next
}
