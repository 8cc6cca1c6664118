package upload

import (
	"fmt"
	"sync"
)

// ProviderFactory creates a new provider instance.
type ProviderFactory func() Provider

var (
	registryMu sync.RWMutex
	registry   = map[string]ProviderFactory{}
)

// RegisterProvider registers an upload provider under name.
func RegisterProvider(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// NewProvider creates a new provider instance by name.
func NewProvider(name string) (Provider, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown upload provider: %s", name)
	}
	return factory(), nil
}

func init() {
	RegisterProvider("minio", func() Provider {
		return NewMinioProvider()
	})
}
