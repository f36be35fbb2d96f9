package services

import (
	"testing"

	"github.com/seojunn/suho/core"
)

// Requirement: BaseEndpoints returns framework-agnostic endpoint
// specifications for the full session surface.
func TestBaseEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		wantPath   string
		wantMethod string
		wantOpID   string
	}{
		{
			name:       "returns refresh endpoint with correct path and method",
			wantPath:   "/refresh",
			wantMethod: "POST",
			wantOpID:   "refreshSession",
		},
		{
			name:       "returns logout endpoint with correct path and method",
			wantPath:   "/logout",
			wantMethod: "POST",
			wantOpID:   "logout",
		},
		{
			name:       "returns me endpoint with correct path and method",
			wantPath:   "/me",
			wantMethod: "GET",
			wantOpID:   "getCurrentUser",
		},
	}

	// Arrange
	endpoints := BaseEndpoints()

	if len(endpoints) != len(tests) {
		t.Fatalf("BaseEndpoints should return %d endpoints, got %d", len(tests), len(endpoints))
	}

	byPath := make(map[string]core.Endpoint)
	for _, ep := range endpoints {
		byPath[ep.Path] = ep
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ep, ok := byPath[test.wantPath]
			if !ok {
				t.Fatalf("endpoint %s not found", test.wantPath)
			}
			if ep.Method != test.wantMethod {
				t.Errorf("Method = %q, want %q", ep.Method, test.wantMethod)
			}
			if ep.Metadata.OperationID != test.wantOpID {
				t.Errorf("OperationID = %q, want %q", ep.Metadata.OperationID, test.wantOpID)
			}
			if ep.Metadata.Description == "" {
				t.Error("Description is empty")
			}
		})
	}
}

// Requirement: a new registry starts with exactly the base endpoints.
func TestNewEndpointRegistry(t *testing.T) {
	registry := NewEndpointRegistry()

	endpoints := registry.Endpoints()
	if len(endpoints) != len(BaseEndpoints()) {
		t.Fatalf("registry has %d endpoints, want %d", len(endpoints), len(BaseEndpoints()))
	}
}

// Requirement: plugin registration is all-or-nothing with conflict
// detection against existing endpoints and within the batch.
func TestEndpointRegistry_RegisterPlugin(t *testing.T) {
	tests := []struct {
		name      string
		endpoints []core.Endpoint
		wantErr   bool
		wantTotal int
	}{
		{
			name: "non-conflicting plugin registers",
			endpoints: []core.Endpoint{
				{Path: "/sessions", Method: "GET", Metadata: core.EndpointMetadata{OperationID: "listSessions"}},
			},
			wantErr:   false,
			wantTotal: 4,
		},
		{
			name: "same path different method registers",
			endpoints: []core.Endpoint{
				{Path: "/me", Method: "DELETE", Metadata: core.EndpointMetadata{OperationID: "deleteAccount"}},
			},
			wantErr:   false,
			wantTotal: 4,
		},
		{
			name: "conflict with base endpoint rejected",
			endpoints: []core.Endpoint{
				{Path: "/refresh", Method: "POST", Metadata: core.EndpointMetadata{OperationID: "shadow"}},
			},
			wantErr:   true,
			wantTotal: 3,
		},
		{
			name: "duplicate within batch rejected entirely",
			endpoints: []core.Endpoint{
				{Path: "/sessions", Method: "GET", Metadata: core.EndpointMetadata{OperationID: "listSessions"}},
				{Path: "/sessions", Method: "GET", Metadata: core.EndpointMetadata{OperationID: "listSessionsAgain"}},
			},
			wantErr:   true,
			wantTotal: 3,
		},
		{
			name: "batch with one conflict registers nothing",
			endpoints: []core.Endpoint{
				{Path: "/sessions", Method: "GET", Metadata: core.EndpointMetadata{OperationID: "listSessions"}},
				{Path: "/logout", Method: "POST", Metadata: core.EndpointMetadata{OperationID: "shadow"}},
			},
			wantErr:   true,
			wantTotal: 3,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			registry := NewEndpointRegistry()

			// Act
			err := registry.RegisterPlugin(test.endpoints)

			// Assert
			if (err != nil) != test.wantErr {
				t.Fatalf("RegisterPlugin() error = %v, wantErr %v", err, test.wantErr)
			}
			if got := len(registry.Endpoints()); got != test.wantTotal {
				t.Errorf("registry has %d endpoints, want %d", got, test.wantTotal)
			}
		})
	}
}
