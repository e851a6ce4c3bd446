package providers

import (
	"errors"
	"sort"
	"sync"
)

var (
	// ErrProviderNotFound is returned when a provider is not registered
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProviderAlreadyRegistered is returned when trying to register a duplicate provider
	ErrProviderAlreadyRegistered = errors.New("provider already registered")
)

// Registry manages provider instances keyed by ID
type Registry struct {
	mu        sync.RWMutex
	providers map[ID]Provider
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[ID]Provider),
	}
}

// Register adds a provider instance
func (r *Registry) Register(provider Provider) error {
	if provider == nil {
		return errors.New("provider cannot be nil")
	}
	if _, err := ParseID(string(provider.ID())); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[provider.ID()]; exists {
		return ErrProviderAlreadyRegistered
	}

	r.providers[provider.ID()] = provider
	return nil
}

// Get retrieves a provider by ID
func (r *Registry) Get(id ID) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[id]
	if !exists {
		return nil, ErrProviderNotFound
	}

	return provider, nil
}

// List returns the registered provider IDs in a stable order
func (r *Registry) List() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]ID, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// Count returns the number of registered providers
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.providers)
}
