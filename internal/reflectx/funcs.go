package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var (
	ErrNotFunc      = errors.New("not a function")
	ErrBadSignature = errors.New("unsupported factory signature")
	ErrUntypedParam = errors.New("parameter carries no usable type")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Factory is the reflected shape of a factory function: ordered
// parameters, the produced type, and whether a trailing error return
// is present.
type Factory struct {
	Func     reflect.Value
	Params   []Param
	Returns  reflect.Type
	HasError bool
}

// FuncShape inspects a factory function. The function must return the
// produced value, optionally followed by an error. Parameter names
// default to their position and may be renamed by the caller.
func FuncShape(fn any) (*Factory, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}

	t := v.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("%w: variadic parameters", ErrBadSignature)
	}

	switch t.NumOut() {
	case 1:
		if t.Out(0) == errorType {
			return nil, fmt.Errorf("%w: must produce a value, not only an error", ErrBadSignature)
		}
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("%w: second return must be error, got %s", ErrBadSignature, t.Out(1))
		}
	default:
		return nil, fmt.Errorf("%w: want (T) or (T, error), got %d returns", ErrBadSignature, t.NumOut())
	}

	params := make([]Param, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		if IsUntyped(in) {
			return nil, fmt.Errorf("%w: parameter %d", ErrUntypedParam, i)
		}
		params[i] = Param{
			Name:  "arg" + strconv.Itoa(i),
			Index: i,
			Type:  in,
		}
	}

	return &Factory{
		Func:     v,
		Params:   params,
		Returns:  t.Out(0),
		HasError: t.NumOut() == 2,
	}, nil
}

// Call invokes the factory with already-resolved arguments and
// unpacks the optional error return.
func (f *Factory) Call(args []reflect.Value) (reflect.Value, error) {
	results := f.Func.Call(args)
	if f.HasError && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	return results[0], nil
}
