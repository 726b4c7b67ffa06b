// internal/driver/registry.go
package driver

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"ticketml-service/internal/encoding"
	"ticketml-service/internal/protocol"
	"ticketml-service/pkg/driver"
)

// BackendFactory creates a backend that writes to transport
type BackendFactory func(transport protocol.Transport, enc encoding.Encoder, logger *zap.Logger) (driver.Backend, error)

// BackendInfo describes a registered backend
type BackendInfo struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	CharactersPerLine int    `json:"characters_per_line"`
}

type registration struct {
	info    BackendInfo
	factory BackendFactory
}

// Registry manages backend registration and creation
type Registry struct {
	backends map[string]registration
	encoder  encoding.Encoder
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewRegistry creates a new backend registry
func NewRegistry(enc encoding.Encoder, logger *zap.Logger) *Registry {
	if enc == nil {
		enc = encoding.NewCharmapEncoder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		backends: make(map[string]registration),
		encoder:  enc,
		logger:   logger,
	}
}

// Register registers a backend factory under info.Name
func (r *Registry) Register(info BackendInfo, factory BackendFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(info.Name)
	r.backends[name] = registration{info: info, factory: factory}
	r.logger.Debug("Backend registered",
		zap.String("backend", name),
		zap.Int("characters_per_line", info.CharactersPerLine),
	)
}

// Create builds the named backend on top of transport.
// The backend writes its initial state during construction.
func (r *Registry) Create(name string, transport protocol.Transport) (driver.Backend, error) {
	r.mu.RLock()
	reg, exists := r.backends[strings.ToLower(name)]
	r.mu.RUnlock()

	if !exists {
		return nil, &UnknownBackendError{Name: name, Known: r.Names()}
	}

	backend, err := reg.factory(transport, r.encoder, r.logger.With(zap.String("backend", reg.info.Name)))
	if err != nil {
		return nil, fmt.Errorf("failed to create backend %s: %w", reg.info.Name, err)
	}
	return backend, nil
}

// IsSupported checks if a backend name is registered
func (r *Registry) IsSupported(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.backends[strings.ToLower(name)]
	return exists
}

// List returns all registered backends sorted by name
func (r *Registry) List() []BackendInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]BackendInfo, 0, len(r.backends))
	for _, reg := range r.backends {
		infos = append(infos, reg.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Names returns the registered backend names sorted
func (r *Registry) Names() []string {
	infos := r.List()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

// UnknownBackendError is returned when no backend is registered under a name
type UnknownBackendError struct {
	Name  string
	Known []string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}
