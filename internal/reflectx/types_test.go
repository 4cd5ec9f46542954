package reflectx

import (
	"context"
	"reflect"
	"testing"
)

type testIface interface {
	Do()
}

type testComponent struct {
	Name string
}

func (t *testComponent) Do() {}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	if TypeOf[*testComponent]().Kind() != reflect.Ptr {
		t.Error("expected pointer kind")
	}
	if TypeOf[testComponent]().Kind() != reflect.Struct {
		t.Error("expected struct kind")
	}
	if TypeOf[testIface]().Kind() != reflect.Interface {
		t.Error("expected interface kind for interface type parameter")
	}
	if TypeOf[context.Context]().Kind() != reflect.Interface {
		t.Error("expected interface kind for context.Context")
	}
}

func TestKeyUnique(t *testing.T) {
	t.Parallel()

	keys := map[string]bool{}
	cases := []func() string{
		Key[int],
		Key[int32],
		Key[int64],
		Key[string],
		Key[*string],
		Key[[]string],
		Key[[3]string],
		Key[map[string]int],
		Key[chan int],
		Key[<-chan int],
		Key[chan<- int],
		Key[testComponent],
		Key[*testComponent],
		Key[[]*testComponent],
		Key[testIface],
	}

	for _, c := range cases {
		key := c()
		if key == "" {
			t.Fatal("empty key")
		}
		if keys[key] {
			t.Errorf("duplicate key: %s", key)
		}
		keys[key] = true
	}
}

func TestKeyIncludesPackagePath(t *testing.T) {
	t.Parallel()

	key := Key[*testComponent]()
	want := "*github.com/rivet-di/rivet/internal/reflectx.testComponent"
	if key != want {
		t.Errorf("expected %q, got %q", want, key)
	}
}

func TestKeyCached(t *testing.T) {
	t.Parallel()

	first := Key[map[string]*testComponent]()
	second := Key[map[string]*testComponent]()
	if first != second {
		t.Errorf("cache returned different keys: %q vs %q", first, second)
	}
}

func TestIsConstructible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"struct", TypeOf[testComponent](), true},
		{"pointer to struct", TypeOf[*testComponent](), true},
		{"interface", TypeOf[testIface](), false},
		{"int", TypeOf[int](), false},
		{"slice", TypeOf[[]testComponent](), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsConstructible(tt.typ); got != tt.want {
				t.Errorf("IsConstructible(%v) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsUntyped(t *testing.T) {
	t.Parallel()

	if !IsUntyped(TypeOf[any]()) {
		t.Error("empty interface should be untyped")
	}
	if IsUntyped(TypeOf[testIface]()) {
		t.Error("non-empty interface should not be untyped")
	}
	if IsUntyped(TypeOf[int]()) {
		t.Error("int should not be untyped")
	}
}

func TestSequenceElem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"slice of interface", TypeOf[[]testIface](), true},
		{"slice of pointer to struct", TypeOf[[]*testComponent](), true},
		{"slice of struct", TypeOf[[]testComponent](), true},
		{"slice of empty interface", TypeOf[[]any](), false},
		{"slice of string", TypeOf[[]string](), false},
		{"slice of pointer to int", TypeOf[[]*int](), false},
		{"not a slice", TypeOf[testComponent](), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			elem, ok := SequenceElem(tt.typ)
			if ok != tt.want {
				t.Errorf("SequenceElem(%v) ok = %v, want %v", tt.typ, ok, tt.want)
			}
			if ok && elem == nil {
				t.Error("expected a non-nil element type")
			}
		})
	}
}

func TestStructBase(t *testing.T) {
	t.Parallel()

	if StructBase(TypeOf[*testComponent]()) != TypeOf[testComponent]() {
		t.Error("expected pointer to unwrap to its struct type")
	}
	if StructBase(TypeOf[testComponent]()) != TypeOf[testComponent]() {
		t.Error("expected struct type to pass through unchanged")
	}
}
