package factory

import (
	"fmt"
	"sync"

	"github.com/indieinfra/reel/config"
	"github.com/indieinfra/reel/storage/vlog"
)

// Factory builds a vlog store for the provided store config.
type Factory func(*config.Store) (vlog.Store, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds or replaces a vlog store factory for the given strategy name.
func Register(strategy string, factory Factory) {
	mu.Lock()
	registry[strategy] = factory
	mu.Unlock()
}

// Get retrieves a factory for the given strategy.
func Get(strategy string) (Factory, bool) {
	mu.RLock()
	f, ok := registry[strategy]
	mu.RUnlock()
	return f, ok
}

// Create builds a vlog store using the registered factory for the configured strategy.
func Create(cfg *config.Store) (vlog.Store, error) {
	if f, ok := Get(cfg.Strategy); ok {
		return f(cfg)
	}

	return nil, fmt.Errorf("unknown store strategy %q", cfg.Strategy)
}

func init() {
	Register("memory", func(cfg *config.Store) (vlog.Store, error) {
		return vlog.NewMemoryStore(), nil
	})
	Register("mongo", func(cfg *config.Store) (vlog.Store, error) {
		return vlog.NewMongoStore(cfg.Mongo)
	})
	Register("sql", func(cfg *config.Store) (vlog.Store, error) {
		return vlog.NewSQLStore(cfg.SQL)
	})
}
