package rivet

import (
	"fmt"
	"reflect"

	"github.com/rivet-di/rivet/internal/reflectx"
)

type AssembleOption func(*assembleConfig)

type assembleConfig struct {
	profile   string
	overrides map[string]any
}

// WithProfile selects the activation profile for this assembly and
// every nested resolution it performs.
func WithProfile(name string) AssembleOption {
	return func(cfg *assembleConfig) {
		cfg.profile = name
	}
}

// WithOverride supplies a value for one named parameter of the target.
// Overrides beat providers, settings, and defaults, and apply to the
// target itself, never to nested dependencies. A name matching no
// parameter of the target fails the assembly.
func WithOverride(param string, value any) AssembleOption {
	return func(cfg *assembleConfig) {
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]any)
		}
		cfg.overrides[param] = value
	}
}

// WithOverrides supplies several overrides at once.
func WithOverrides(values map[string]any) AssembleOption {
	return func(cfg *assembleConfig) {
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]any, len(values))
		}
		for name, value := range values {
			cfg.overrides[name] = value
		}
	}
}

func buildAssembleConfig(opts []AssembleOption) *assembleConfig {
	cfg := &assembleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Assemble constructs a fully wired instance of T. T may be a
// registered component or any constructible type whose dependencies
// are registered.
func Assemble[T any](c *Container, opts ...AssembleOption) (T, error) {
	var zero T
	cfg := buildAssembleConfig(opts)

	t := reflectx.TypeOf[T]()
	res := &resolution{profile: cfg.profile}

	v, err := c.resolveTarget(res, t, cfg.overrides)
	if err != nil {
		return zero, err
	}

	out, ok := v.Interface().(T)
	if !ok {
		return zero, newError(
			ErrCodeProviderFailed,
			"assembled "+reflectx.KeyOf(v.Type())+", want "+reflectx.KeyOf(t),
			nil,
		).WithComponent(reflectx.KeyOf(t))
	}
	return out, nil
}

// MustAssemble is Assemble, panicking on failure.
func MustAssemble[T any](c *Container, opts ...AssembleOption) T {
	v, err := Assemble[T](c, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// TryAssemble is Assemble, folding the error into a boolean.
func TryAssemble[T any](c *Container, opts ...AssembleOption) (T, bool) {
	v, err := Assemble[T](c, opts...)
	return v, err == nil
}

// Call resolves the parameters of fn from the container and invokes
// it, returning the produced value. fn follows the factory shape:
// func(deps...) T or func(deps...) (T, error). Overrides target
// parameters by position ("arg0", "arg1", ...).
func Call(c *Container, fn any, opts ...AssembleOption) (any, error) {
	cfg := buildAssembleConfig(opts)

	shape, err := reflectx.FuncShape(fn)
	if err != nil {
		return nil, errInvalidProvider(fmt.Sprintf("%T", fn), err.Error())
	}

	res := &resolution{profile: cfg.profile}
	owner := shape.Func.Type().String()

	if err := validateOverrides(cfg.overrides, shape.Params, owner); err != nil {
		return nil, err
	}

	args := make([]reflect.Value, len(shape.Params))
	for i, p := range shape.Params {
		v, err := c.resolveParam(res, owner, p, cfg.overrides)
		if err != nil {
			return nil, err
		}
		if !v.IsValid() {
			v = reflect.Zero(p.Type)
		}
		args[i] = v
	}

	out, err := shape.Call(args)
	if err != nil {
		return nil, errProviderFailed(owner, err)
	}
	return out.Interface(), nil
}
