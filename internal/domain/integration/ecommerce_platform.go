package integration

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/catalogsync/backend/internal/domain/catalog"
)

// ---------------------------------------------------------------------------
// PlatformClient Errors
// ---------------------------------------------------------------------------

var (
	ErrPlatformNotConfigured   = errors.New("integration: platform not configured")
	ErrPlatformRequestFailed   = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")
	ErrPlatformAuthFailed      = errors.New("integration: platform authentication failed")
	ErrPlatformRateLimited     = errors.New("integration: platform rate limited")
	ErrPlatformAlreadyExists   = errors.New("integration: platform client already registered")
)

// ---------------------------------------------------------------------------
// PlatformClient Port
// ---------------------------------------------------------------------------

// PlatformClient fetches the full product list of one store platform.
// Authentication and pagination are the client's concern; callers receive
// a flat, ordered list of raw payloads.
type PlatformClient interface {
	// Platform returns the tag this client serves
	Platform() catalog.PlatformTag

	// FetchProducts returns every product currently published on the platform
	FetchProducts(ctx context.Context) ([]catalog.RawProduct, error)
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

// Registry maps platform tags to their clients. It is built at startup and
// passed by reference to the services that need it.
type Registry struct {
	mu      sync.RWMutex
	clients map[catalog.PlatformTag]PlatformClient
}

// NewRegistry creates a registry holding the given clients
func NewRegistry(clients ...PlatformClient) (*Registry, error) {
	r := &Registry{clients: make(map[catalog.PlatformTag]PlatformClient)}
	for _, c := range clients {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a client. Each platform may be registered once.
func (r *Registry) Register(client PlatformClient) error {
	if client == nil {
		return ErrPlatformNotConfigured
	}
	tag := client.Platform()
	if !tag.IsValid() {
		return &catalog.UnsupportedPlatformError{Tag: string(tag)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[tag]; exists {
		return ErrPlatformAlreadyExists
	}
	r.clients[tag] = client
	return nil
}

// Get returns the client for tag.
// Unknown tags yield *catalog.UnsupportedPlatformError; supported but
// unregistered tags yield ErrPlatformNotConfigured.
func (r *Registry) Get(tag catalog.PlatformTag) (PlatformClient, error) {
	if !tag.IsValid() {
		return nil, &catalog.UnsupportedPlatformError{Tag: string(tag)}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[tag]
	if !ok {
		return nil, ErrPlatformNotConfigured
	}
	return client, nil
}

// Platforms returns the registered tags in sorted order
func (r *Registry) Platforms() []catalog.PlatformTag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]catalog.PlatformTag, 0, len(r.clients))
	for tag := range r.clients {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
