package services

import (
	"fmt"

	"github.com/seojunn/suho/core"
)

// BaseEndpoints returns framework-agnostic endpoint specifications for the
// session surface.
//
// Each endpoint is a template: Path and Method are set, handlers are bound
// by adapters. This lets multiple adapters (Fiber, net/http, ...) share one
// contract while providing framework-specific handlers.
func BaseEndpoints() []core.Endpoint {
	return []core.Endpoint{
		{
			Path:   "/refresh",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "refreshSession",
				Description: "Rotate the refresh credential and mint a new access credential",
			},
		},
		{
			Path:   "/logout",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "logout",
				Description: "Revoke the refresh credential and clear session cookies",
			},
		},
		{
			Path:   "/me",
			Method: "GET",
			Metadata: core.EndpointMetadata{
				OperationID: "getCurrentUser",
				Description: "Soft session probe: returns the current account or null, always 200",
			},
		},
	}
}

// EndpointRegistry manages a collection of framework-agnostic endpoints and
// detects duplicate METHOD:PATH registrations.
//
// It starts with the base session endpoints and supports registration of
// additional plugin endpoints with automatic conflict detection.
type EndpointRegistry struct {
	// endpoints stores all registered endpoints keyed by "METHOD:PATH"
	endpoints map[string]*core.Endpoint
}

// NewEndpointRegistry creates a registry with all base session endpoints
// pre-registered.
func NewEndpointRegistry() *EndpointRegistry {
	reg := &EndpointRegistry{
		endpoints: make(map[string]*core.Endpoint),
	}

	base := BaseEndpoints()
	for i := range base {
		reg.register(&base[i])
	}

	return reg
}

func (r *EndpointRegistry) register(ep *core.Endpoint) error {
	key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)

	if _, exists := r.endpoints[key]; exists {
		return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
	}

	r.endpoints[key] = ep
	return nil
}

// RegisterPlugin registers additional endpoints. If any conflicts with an
// existing endpoint or another endpoint in the same batch, nothing from the
// batch is registered.
func (r *EndpointRegistry) RegisterPlugin(endpoints []core.Endpoint) error {
	seen := make(map[string]bool)
	for i := range endpoints {
		key := fmt.Sprintf("%s:%s", endpoints[i].Method, endpoints[i].Path)

		if _, exists := r.endpoints[key]; exists {
			return fmt.Errorf("plugin endpoint conflict: %s %s already registered", endpoints[i].Method, endpoints[i].Path)
		}
		if seen[key] {
			return fmt.Errorf("plugin contains duplicate endpoint: %s %s", endpoints[i].Method, endpoints[i].Path)
		}
		seen[key] = true
	}

	for i := range endpoints {
		key := fmt.Sprintf("%s:%s", endpoints[i].Method, endpoints[i].Path)
		r.endpoints[key] = &endpoints[i]
	}

	return nil
}

// Endpoints returns all registered endpoints, base and plugin alike.
func (r *EndpointRegistry) Endpoints() []*core.Endpoint {
	result := make([]*core.Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		result = append(result, ep)
	}
	return result
}
