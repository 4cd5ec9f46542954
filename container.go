package rivet

import (
	"log/slog"
	"sync"
)

// Container holds the component registry and the configuration store
// it resolves setting-bound parameters from. Registration and assembly
// are safe for concurrent use; build the registry during an init phase
// when possible and treat it as read-mostly afterwards.
type Container struct {
	mu         sync.RWMutex
	components []*descriptor

	logger *slog.Logger
	store  *Store

	onResolve  []ResolveHook
	onRegister []RegisterHook
}

func New(opts ...Option) *Container {
	cfg := &containerConfig{
		logger: slog.Default(),
		store:  NewStore(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Container{
		logger:     cfg.logger,
		store:      cfg.store,
		onResolve:  cfg.onResolve,
		onRegister: cfg.onRegister,
	}
}

// Store returns the configuration store backing setting-bound
// parameters.
func (c *Container) Store() *Store {
	return c.store
}

func (c *Container) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.components)
}

// Keys returns the type keys of all registered components in
// registration order.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, len(c.components))
	for i, d := range c.components {
		keys[i] = d.key
	}
	return keys
}
