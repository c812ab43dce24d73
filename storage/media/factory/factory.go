package factory

import (
	"fmt"
	"sync"

	"github.com/indieinfra/reel/config"
	"github.com/indieinfra/reel/storage/media"
)

// Factory builds a media store from the full config; strategies read their
// own section plus the shared upload limits.
type Factory func(*config.Config) (media.Store, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds or replaces a media store factory for the given strategy name.
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

// Create builds a media store using the registered factory for the configured strategy.
func Create(cfg *config.Config) (media.Store, error) {
	if f, ok := Get(cfg.Media.Strategy); ok {
		return f(cfg)
	}

	return nil, fmt.Errorf("unknown media strategy %q", cfg.Media.Strategy)
}

func init() {
	Register("filesystem", func(cfg *config.Config) (media.Store, error) {
		return media.NewFilesystemStore(cfg.Media.Filesystem, cfg.Upload.MaxFileSize)
	})
	Register("s3", func(cfg *config.Config) (media.Store, error) {
		return media.NewS3Store(cfg.Media.S3, cfg.Upload.MaxFileSize)
	})
}
