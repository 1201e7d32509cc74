// Package scope models call frames as explicit data. Callers capture the
// named bindings visible at their own call site and chain the captures
// together; nothing in this package reaches into the live Go stack.
package scope

import "sort"

// Frame is a snapshot of one paused invocation: the name of the function it
// represents, the local bindings visible at the capture site, and a link to
// the caller's frame. Frames form a singly-linked chain from the innermost
// capture back to the program entry point.
type Frame struct {
	function string         // function or method name this frame represents
	bindings map[string]any // local variable name -> bound object
	parent   *Frame         // caller's frame, nil at the top of the chain
}

// New creates a root frame with no parent. The binding map is copied, so
// later changes to it are not visible through the frame.
func New(function string, bindings map[string]any) *Frame {
	return newFrame(function, bindings, nil)
}

// Push creates a child frame whose parent is f.
func (f *Frame) Push(function string, bindings map[string]any) *Frame {
	return newFrame(function, bindings, f)
}

func newFrame(function string, bindings map[string]any, parent *Frame) *Frame {
	copied := make(map[string]any, len(bindings))
	for name, obj := range bindings {
		copied[name] = obj
	}
	return &Frame{
		function: function,
		bindings: copied,
		parent:   parent,
	}
}

// Function returns the name of the function this frame represents.
func (f *Frame) Function() string {
	return f.function
}

// Parent returns the caller's frame, or nil at the top of the chain.
func (f *Frame) Parent() *Frame {
	return f.parent
}

// Binding returns the object bound to name in this frame.
func (f *Frame) Binding(name string) (any, bool) {
	obj, ok := f.bindings[name]
	return obj, ok
}

// Range calls fn for each binding until fn returns false. Iteration order is
// implementation-defined; no ordering guarantee is given.
func (f *Frame) Range(fn func(name string, obj any) bool) {
	for name, obj := range f.bindings {
		if !fn(name, obj) {
			return
		}
	}
}

// Names returns the bound names in this frame, sorted.
func (f *Frame) Names() []string {
	names := make([]string, 0, len(f.bindings))
	for name := range f.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Depth returns the number of frames in the chain ending at f.
func (f *Frame) Depth() int {
	d := 0
	for cur := f; cur != nil; cur = cur.parent {
		d++
	}
	return d
}
