package rivet

import (
	"errors"
	"reflect"

	"github.com/rivet-di/rivet/internal/reflectx"
)

type RegisterOption func(*registerConfig)

type registerConfig struct {
	lifecycle     Lifecycle
	profiles      []string
	as            []reflect.Type
	fieldDefaults map[string]any
	paramNames    []string
	paramSettings map[int]reflectx.Binding
	paramDefaults map[int]any
}

// WithLifecycle sets the caching policy; components are singletons
// unless told otherwise.
func WithLifecycle(l Lifecycle) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.lifecycle = l
	}
}

// WithProfiles restricts the provider to the named activation
// profiles. Without it the provider is always active.
func WithProfiles(names ...string) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.profiles = append(cfg.profiles, names...)
	}
}

// As declares that the component satisfies capability I. Matching by
// interface works without it; As exists to make the capability part of
// the registration contract and fail fast when it stops holding.
func As[I any]() RegisterOption {
	return func(cfg *registerConfig) {
		cfg.as = append(cfg.as, reflectx.TypeOf[I]())
	}
}

// WithFieldDefault declares a default value for the named struct
// field, used when no override, provider, or setting applies. For
// primitive fields the `default:""` tag is the lighter alternative.
func WithFieldDefault(field string, value any) RegisterOption {
	return func(cfg *registerConfig) {
		if cfg.fieldDefaults == nil {
			cfg.fieldDefaults = make(map[string]any)
		}
		cfg.fieldDefaults[field] = value
	}
}

// WithParamNames names factory parameters positionally so callers can
// target them with overrides.
func WithParamNames(names ...string) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.paramNames = names
	}
}

// WithParamSetting binds the factory parameter at index to a
// configuration store entry.
func WithParamSetting(index int, section, key string) RegisterOption {
	return func(cfg *registerConfig) {
		if cfg.paramSettings == nil {
			cfg.paramSettings = make(map[int]reflectx.Binding)
		}
		cfg.paramSettings[index] = reflectx.Binding{Section: section, Key: key}
	}
}

// WithParamDefault declares a default for the factory parameter at
// index.
func WithParamDefault(index int, value any) RegisterOption {
	return func(cfg *registerConfig) {
		if cfg.paramDefaults == nil {
			cfg.paramDefaults = make(map[int]any)
		}
		cfg.paramDefaults[index] = value
	}
}

func buildRegisterConfig(opts []RegisterOption) *registerConfig {
	cfg := &registerConfig{lifecycle: Singleton}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func profileSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Register adds a struct component. T must be a struct or a pointer to
// one; its exported fields are the constructor parameters.
func Register[T any](c *Container, opts ...RegisterOption) error {
	cfg := buildRegisterConfig(opts)

	target := reflectx.TypeOf[T]()
	key := reflectx.KeyOf(target)

	if !reflectx.IsConstructible(target) {
		return errInvalidProvider(key, "target is not a constructible struct type")
	}
	if len(cfg.paramNames) > 0 || len(cfg.paramSettings) > 0 || len(cfg.paramDefaults) > 0 {
		return errInvalidProvider(key, "parameter options apply to factories, not struct components")
	}

	params, err := reflectx.StructParams(target)
	if err != nil {
		return errInvalidProvider(key, err.Error())
	}

	if err := applyFieldDefaults(params, cfg.fieldDefaults, key); err != nil {
		return err
	}

	as, err := checkCapabilities(target, cfg.as, key)
	if err != nil {
		return err
	}

	return c.add(&descriptor{
		key:       key,
		target:    target,
		kind:      kindStruct,
		params:    params,
		lifecycle: cfg.lifecycle,
		profiles:  profileSet(cfg.profiles),
		as:        as,
	})
}

func MustRegister[T any](c *Container, opts ...RegisterOption) {
	if err := Register[T](c, opts...); err != nil {
		panic(err)
	}
}

// RegisterFactory adds a factory component: a function producing T,
// optionally with a trailing error return. Each parameter is resolved
// like a struct field.
func RegisterFactory[T any](c *Container, factory any, opts ...RegisterOption) error {
	cfg := buildRegisterConfig(opts)

	target := reflectx.TypeOf[T]()
	key := reflectx.KeyOf(target)

	if len(cfg.fieldDefaults) > 0 {
		return errInvalidProvider(key, "field defaults apply to struct components, not factories")
	}

	shape, err := reflectx.FuncShape(factory)
	if err != nil {
		if errors.Is(err, reflectx.ErrUntypedParam) {
			return newError(ErrCodeUntypedParameter, err.Error(), nil).WithComponent(key)
		}
		return errInvalidProvider(key, err.Error())
	}

	if !shape.Returns.AssignableTo(target) {
		return errInvalidProvider(key, "factory produces "+reflectx.KeyOf(shape.Returns))
	}

	params := shape.Params
	if len(cfg.paramNames) > len(params) {
		return errInvalidProvider(key, "more parameter names than factory parameters")
	}
	for i, name := range cfg.paramNames {
		params[i].Name = name
	}
	for i, binding := range cfg.paramSettings {
		if i < 0 || i >= len(params) {
			return errInvalidProvider(key, "setting binding index out of range")
		}
		b := binding
		params[i].Setting = &b
	}
	for i, value := range cfg.paramDefaults {
		if i < 0 || i >= len(params) {
			return errInvalidProvider(key, "default index out of range")
		}
		if value == nil || !reflect.TypeOf(value).AssignableTo(params[i].Type) {
			return errInvalidProvider(key, "default for parameter "+params[i].Name+" has the wrong type")
		}
		params[i].DefaultValue = value
		params[i].HasValue = true
	}

	as, err := checkCapabilities(target, cfg.as, key)
	if err != nil {
		return err
	}

	return c.add(&descriptor{
		key:       key,
		target:    target,
		kind:      kindFactory,
		factory:   shape,
		params:    params,
		lifecycle: cfg.lifecycle,
		profiles:  profileSet(cfg.profiles),
		as:        as,
	})
}

func MustRegisterFactory[T any](c *Container, factory any, opts ...RegisterOption) {
	if err := RegisterFactory[T](c, factory, opts...); err != nil {
		panic(err)
	}
}

// RegisterInstance adds a pre-built value. Instances are singletons by
// definition.
func RegisterInstance[T any](c *Container, value T, opts ...RegisterOption) error {
	cfg := buildRegisterConfig(opts)

	target := reflectx.TypeOf[T]()
	key := reflectx.KeyOf(target)

	if cfg.lifecycle != Singleton {
		return errInvalidProvider(key, "instances are always singletons")
	}

	as, err := checkCapabilities(target, cfg.as, key)
	if err != nil {
		return err
	}

	return c.add(&descriptor{
		key:       key,
		target:    target,
		kind:      kindInstance,
		lifecycle: Singleton,
		profiles:  profileSet(cfg.profiles),
		as:        as,
		instance:  reflect.ValueOf(value),
		built:     true,
	})
}

func MustRegisterInstance[T any](c *Container, value T, opts ...RegisterOption) {
	if err := RegisterInstance[T](c, value, opts...); err != nil {
		panic(err)
	}
}

func applyFieldDefaults(params []reflectx.Param, defaults map[string]any, key string) error {
	for name, value := range defaults {
		found := false
		for i := range params {
			if params[i].Name == name {
				if value == nil || !reflect.TypeOf(value).AssignableTo(params[i].Type) {
					return errInvalidProvider(key, "default for field "+name+" has the wrong type")
				}
				params[i].DefaultValue = value
				params[i].HasValue = true
				found = true
				break
			}
		}
		if !found {
			return errInvalidProvider(key, "no injectable field named "+name)
		}
	}
	return nil
}

func checkCapabilities(target reflect.Type, capabilities []reflect.Type, key string) ([]reflect.Type, error) {
	for _, capability := range capabilities {
		if capability.Kind() != reflect.Interface {
			return nil, errInvalidProvider(key, "capability "+reflectx.KeyOf(capability)+" is not an interface")
		}
		if !target.Implements(capability) {
			return nil, errInvalidProvider(key, "does not implement "+reflectx.KeyOf(capability))
		}
	}
	return capabilities, nil
}
