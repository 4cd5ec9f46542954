package rivet

import (
	"reflect"
	"time"

	"github.com/spf13/cast"

	"github.com/rivet-di/rivet/internal/reflectx"
)

// resolution is the state of one assembly call: the active profile and
// the stack of component keys currently being constructed. The stack
// detects cycles and gives errors their path context. One resolution
// never crosses goroutines, so no locking is needed here.
type resolution struct {
	profile string
	stack   []string
}

func (r *resolution) push(key string) error {
	for _, active := range r.stack {
		if active == key {
			return errCircularDependency(append(append([]string(nil), r.stack...), key))
		}
	}
	r.stack = append(r.stack, key)
	return nil
}

func (r *resolution) pop() {
	r.stack = r.stack[:len(r.stack)-1]
}

// withChain attaches the current resolution path to errors that do not
// carry one yet.
func (r *resolution) withChain(err *Error) *Error {
	if len(err.Chain) == 0 && len(r.stack) > 0 {
		err.WithChain(r.stack)
	}
	return err
}

// resolveTarget assembles an instance of t: through its unique
// provider when one is registered, directly when t is constructible,
// and with an error otherwise.
func (c *Container) resolveTarget(res *resolution, t reflect.Type, overrides map[string]any) (reflect.Value, error) {
	d, err := c.findUnique(t, res.profile)
	if err != nil {
		return reflect.Value{}, res.withChain(err.(*Error))
	}
	if d != nil {
		if err := validateOverrides(overrides, d.params, d.key); err != nil {
			return reflect.Value{}, err
		}
		return c.resolveDescriptor(res, d, overrides)
	}

	if reflectx.IsConstructible(t) {
		return c.buildDirect(res, t, overrides)
	}

	key := reflectx.KeyOf(t)
	return reflect.Value{}, res.withChain(newError(
		ErrCodeMissingDependency,
		"no provider registered for "+key+" and it is not directly constructible",
		nil,
	).WithComponent(key))
}

// buildDirect assembles an unregistered struct type whose dependencies
// are registered components.
func (c *Container) buildDirect(res *resolution, t reflect.Type, overrides map[string]any) (reflect.Value, error) {
	key := reflectx.KeyOf(t)

	params, err := reflectx.StructParams(t)
	if err != nil {
		return reflect.Value{}, res.withChain(errInvalidProvider(key, err.Error()))
	}
	if err := validateOverrides(overrides, params, key); err != nil {
		return reflect.Value{}, err
	}

	if err := res.push(key); err != nil {
		return reflect.Value{}, err
	}
	defer res.pop()

	start := time.Now()
	v, buildErr := c.buildStruct(res, t, key, params, overrides)
	c.fireResolve(key, time.Since(start), buildErr)
	return v, buildErr
}

func (c *Container) resolveDescriptor(res *resolution, d *descriptor, overrides map[string]any) (reflect.Value, error) {
	if err := res.push(d.key); err != nil {
		return reflect.Value{}, err
	}
	defer res.pop()

	start := time.Now()
	v, err := c.resolveLifecycle(res, d, overrides)
	c.fireResolve(d.key, time.Since(start), err)
	return v, err
}

func (c *Container) resolveLifecycle(res *resolution, d *descriptor, overrides map[string]any) (reflect.Value, error) {
	switch {
	case d.kind == kindInstance:
		return d.instance, nil
	case d.lifecycle == Singleton:
		return c.resolveSingleton(res, d, overrides)
	default:
		return c.construct(res, d, overrides)
	}
}

// resolveSingleton returns the cached instance when present and
// otherwise constructs it under the descriptor lock, so that exactly
// one instance ever exists per container. Cycles cannot self-deadlock
// here: the resolution stack rejects re-entry before the lock is
// taken.
func (c *Container) resolveSingleton(res *resolution, d *descriptor, overrides map[string]any) (reflect.Value, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.built {
		return d.instance, nil
	}

	v, err := c.construct(res, d, overrides)
	if err != nil {
		return reflect.Value{}, err
	}

	if d.built {
		panic("rivet: singleton instance for " + d.key + " assembled twice")
	}
	d.instance = v
	d.built = true

	c.logger.Debug("cached singleton", "key", d.key)
	return v, nil
}

func (c *Container) construct(res *resolution, d *descriptor, overrides map[string]any) (reflect.Value, error) {
	args := make([]reflect.Value, len(d.params))
	for i, p := range d.params {
		v, err := c.resolveParam(res, d.key, p, overrides)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = v
	}

	if d.kind == kindFactory {
		for i, p := range d.params {
			if !args[i].IsValid() {
				args[i] = reflect.Zero(p.Type)
			}
		}
		out, err := d.factory.Call(args)
		if err != nil {
			return reflect.Value{}, res.withChain(errProviderFailed(d.key, err))
		}
		return out, nil
	}

	return instantiateStruct(d.target, d.params, args), nil
}

func (c *Container) buildStruct(res *resolution, t reflect.Type, key string, params []reflectx.Param, overrides map[string]any) (reflect.Value, error) {
	args := make([]reflect.Value, len(params))
	for i, p := range params {
		v, err := c.resolveParam(res, key, p, overrides)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = v
	}
	return instantiateStruct(t, params, args), nil
}

func instantiateStruct(t reflect.Type, params []reflectx.Param, args []reflect.Value) reflect.Value {
	ptr := reflect.New(reflectx.StructBase(t))
	sv := ptr.Elem()

	for i, p := range params {
		if !args[i].IsValid() {
			continue // skipped, optional, or nil override: keep zero value
		}
		sv.Field(p.Index).Set(args[i])
	}

	if t.Kind() == reflect.Ptr {
		return ptr
	}
	return sv
}

// resolveParam picks a value for one parameter. Precedence: caller
// override, sequence multi-injection, setting binding, unique
// provider, declared default. An invalid zero reflect.Value means
// "leave the zero value in place".
func (c *Container) resolveParam(res *resolution, owner string, p reflectx.Param, overrides map[string]any) (reflect.Value, error) {
	if p.Skip {
		return reflect.Value{}, nil
	}

	if reflectx.IsUntyped(p.Type) {
		return reflect.Value{}, res.withChain(errUntypedParameter(p.Name, owner))
	}

	if value, ok := overrides[p.Name]; ok {
		return c.overrideValue(res, owner, p, value)
	}

	if elem, ok := reflectx.SequenceElem(p.Type); ok {
		return c.resolveSequence(res, p.Type, elem)
	}

	if p.Setting != nil {
		v, err := c.store.valueAs(p.Type, p.Setting.Section, p.Setting.Key)
		if err != nil {
			return reflect.Value{}, res.withChain(err.(*Error))
		}
		return v, nil
	}

	d, err := c.findUnique(p.Type, res.profile)
	if err != nil {
		return reflect.Value{}, res.withChain(err.(*Error))
	}
	if d != nil {
		return c.resolveDescriptor(res, d, nil)
	}

	if p.HasValue {
		return reflect.ValueOf(p.DefaultValue), nil
	}
	if p.HasLiteral {
		v, err := literalValue(p.Type, p.DefaultLiteral)
		if err != nil {
			return reflect.Value{}, res.withChain(errInvalidProvider(
				owner, "default literal for "+p.Name+": "+err.Error(),
			))
		}
		return v, nil
	}
	if p.Optional {
		return reflect.Value{}, nil
	}

	return reflect.Value{}, res.withChain(errMissingDependency(p.Name, owner))
}

// validateOverrides rejects override names that match no parameter of
// the assembly target, so a typo fails loudly instead of leaving the
// intended parameter to its normal resolution.
func validateOverrides(overrides map[string]any, params []reflectx.Param, owner string) error {
	for name := range overrides {
		known := false
		for i := range params {
			if params[i].Name == name {
				known = true
				break
			}
		}
		if !known {
			return errUnknownOverride(name, owner)
		}
	}
	return nil
}

func (c *Container) overrideValue(res *resolution, owner string, p reflectx.Param, value any) (reflect.Value, error) {
	if value == nil {
		switch p.Type.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return reflect.Value{}, nil
		default:
			return reflect.Value{}, res.withChain(errOverrideMismatch(p.Name, owner, "nil", reflectx.KeyOf(p.Type)))
		}
	}

	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(p.Type) {
		return reflect.Value{}, res.withChain(errOverrideMismatch(
			p.Name, owner, reflectx.KeyOf(rv.Type()), reflectx.KeyOf(p.Type),
		))
	}
	return rv, nil
}

// resolveSequence assembles one instance per matching provider, in
// registration order. Zero matches bind an empty sequence.
func (c *Container) resolveSequence(res *resolution, sliceType, elem reflect.Type) (reflect.Value, error) {
	matches := c.findMatches(elem, res.profile)

	out := reflect.MakeSlice(sliceType, 0, len(matches))
	for _, d := range matches {
		v, err := c.resolveDescriptor(res, d, nil)
		if err != nil {
			return reflect.Value{}, err
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

// literalValue converts a `default:""` tag literal to the parameter's
// primitive kind.
func literalValue(t reflect.Type, literal string) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.Bool:
		b, err := cast.ToBoolE(literal)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(literal)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(literal)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(literal)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(f)
	case reflect.String:
		out.SetString(literal)
	default:
		return reflect.Value{}, newError(
			ErrCodeInvalidProvider,
			"default literals apply to primitive kinds, not "+t.Kind().String(),
			nil,
		)
	}
	return out, nil
}

func (c *Container) fireResolve(key string, duration time.Duration, err error) {
	for _, hook := range c.onResolve {
		hook(key, duration, err)
	}
}
