// Package canvas exposes live objects to the platform's display panel. Its
// resolver answers one question: what name is this object bound to in the
// user's own scope? The (name, object) pair is then handed to a registration
// Target; all rendering happens on the other side of that interface.
package canvas

import (
	"errors"
	"strings"

	"periscope/pkg/scope"
)

// Resolution is a resolved binding: the user-scope name an object was found
// under, together with the object itself.
type Resolution struct {
	Name   string // variable name the object is bound to
	Object any    // the resolved object
}

// skippable reports whether fr looks like platform plumbing rather than user
// code. Method scopes bind "self"; display wrappers carry "show" in their
// function name.
func skippable(fr *scope.Frame) bool {
	if _, ok := fr.Binding("self"); ok {
		return true
	}
	return strings.Contains(fr.Function(), "show")
}

// Resolve finds the name obj is bound to in the user scope selected from
// frame's chain. It climbs past skippable frames until it reaches one that
// looks like user code, or the top of the chain, then scans that single
// frame for a binding identical to obj. Underscore-prefixed names are never
// candidates. A nil frame, an exhausted chain or an unbound object all yield
// ok == false; Resolve never panics.
func Resolve(frame *scope.Frame, obj any) (Resolution, bool) {
	if frame == nil {
		return Resolution{}, false
	}
	fr := frame
	for skippable(fr) && fr.Parent() != nil {
		fr = fr.Parent()
	}
	var res Resolution
	found := false
	fr.Range(func(name string, bound any) bool {
		if strings.HasPrefix(name, "_") {
			return true
		}
		if SameObject(obj, bound) {
			res = Resolution{Name: name, Object: bound}
			found = true
			return false
		}
		return true
	})
	return res, found
}

// Expose resolves obj against frame's chain and, on a match, registers the
// pair with t under a single-element path. It returns the resolved name and
// whether a registration happened. A failed resolution is not an error; a
// failing or missing target on a successful resolution is.
func Expose(t Target, frame *scope.Frame, obj any) (string, bool, error) {
	res, ok := Resolve(frame, obj)
	if !ok {
		return "", false, nil
	}
	if t == nil {
		return "", false, errors.New("canvas: nil registration target")
	}
	if err := t.AddVariable([]string{res.Name}, res.Object); err != nil {
		return "", false, err
	}
	return res.Name, true, nil
}
