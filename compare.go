package sway

import "reflect"

// Equatable is implemented by value types that know how to compare
// themselves. Vec2, Vec3, Color, Quat and Mat4 implement it.
type Equatable[T any] interface {
	Equal(other T) bool
}

// Nillable is implemented by reference-like values that can report a nil
// state the generic code cannot observe on its own.
type Nillable interface {
	IsNil() bool
}

// valuesEqual compares two values through Equatable when T implements it,
// falling back to interface equality for comparable dynamic types. Values
// that are neither report false.
func valuesEqual[T any](a, b T) bool {
	if eq, ok := any(a).(Equatable[T]); ok {
		return eq.Equal(b)
	}
	ai, bi := any(a), any(b)
	if ai == nil || bi == nil {
		return ai == nil && bi == nil
	}
	defer func() { _ = recover() }()
	return ai == bi
}

// isNilValue reports whether v holds nothing: a nil interface, a nil
// pointer, map, slice, func or chan, or a value reporting IsNil.
func isNilValue[T any](v T) bool {
	a := any(v)
	if a == nil {
		return true
	}
	switch rv := reflect.ValueOf(a); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return true
		}
	}
	if n, ok := a.(Nillable); ok {
		return n.IsNil()
	}
	return false
}

// sameRef reports whether a and b refer to the same curve or link object.
// Funcs compare by code pointer; other uncomparable values never match.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Kind() == reflect.Func {
		return va.Pointer() == vb.Pointer()
	}
	return valuesEqual(a, b)
}
