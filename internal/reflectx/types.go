package reflectx

import (
	"reflect"
	"strconv"
	"sync"
)

var keyCache sync.Map

// TypeOf returns the reflect.Type for T, working for interface types too.
func TypeOf[T any]() reflect.Type {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		t = reflect.TypeOf((*T)(nil)).Elem()
	}
	return t
}

func Key[T any]() string {
	return KeyOf(TypeOf[T]())
}

func KeyOf(t reflect.Type) string {
	if cached, ok := keyCache.Load(t); ok {
		return cached.(string)
	}

	key := buildKey(t)
	keyCache.Store(t, key)
	return key
}

func buildKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + buildKey(t.Elem())
	case reflect.Slice:
		return "[]" + buildKey(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + buildKey(t.Elem())
	case reflect.Map:
		return "map[" + buildKey(t.Key()) + "]" + buildKey(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + buildKey(t.Elem())
		case reflect.SendDir:
			return "chan<- " + buildKey(t.Elem())
		default:
			return "chan " + buildKey(t.Elem())
		}
	case reflect.Func:
		return t.String()
	default:
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		return t.Name()
	}
}

// IsConstructible reports whether t can be built directly by filling
// struct fields: a struct, or a pointer to one.
func IsConstructible(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// StructBase unwraps a pointer component type to its struct type.
func StructBase(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// IsUntyped reports whether t is the empty interface, which carries no
// type information to match a provider against.
func IsUntyped(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface && t.NumMethod() == 0
}

// SequenceElem returns the element type of t when t is a slice of an
// injectable element kind: a non-empty interface, a pointer to struct,
// or a named struct. Slices of primitives are ordinary values, not
// multi-injection targets.
func SequenceElem(t reflect.Type) (reflect.Type, bool) {
	if t == nil || t.Kind() != reflect.Slice {
		return nil, false
	}

	elem := t.Elem()
	switch elem.Kind() {
	case reflect.Interface:
		if elem.NumMethod() == 0 {
			return nil, false
		}
		return elem, true
	case reflect.Ptr:
		if elem.Elem().Kind() == reflect.Struct {
			return elem, true
		}
		return nil, false
	case reflect.Struct:
		return elem, true
	default:
		return nil, false
	}
}
