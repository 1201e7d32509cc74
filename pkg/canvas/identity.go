package canvas

import "reflect"

// SameObject reports whether a and b denote the identical object, never
// merely equal ones. Pointers, maps, channels, functions and unsafe pointers
// match on referent address; slices match on header identity (data pointer,
// length and capacity). Two untyped nils are the same object. Values without
// a referent (numbers, strings, structs) have no identity and never match.
func SameObject(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	default:
		return false
	}
}
