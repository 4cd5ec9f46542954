package rivet

import "log/slog"

type Option func(*containerConfig)

type containerConfig struct {
	logger     *slog.Logger
	store      *Store
	onResolve  []ResolveHook
	onRegister []RegisterHook
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *containerConfig) {
		cfg.logger = logger
	}
}

// WithStore supplies a pre-populated configuration store, typically
// the result of Load.
func WithStore(store *Store) Option {
	return func(cfg *containerConfig) {
		cfg.store = store
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *containerConfig) {
		cfg.onResolve = append(cfg.onResolve, hook)
	}
}

func WithRegisterObserver(hook RegisterHook) Option {
	return func(cfg *containerConfig) {
		cfg.onRegister = append(cfg.onRegister, hook)
	}
}
