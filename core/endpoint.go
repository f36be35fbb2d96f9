package core

// Endpoint describes a transport-agnostic route exposed by adapters.
// Handlers are attached by the adapter; the descriptor only fixes the
// contract (path, method, metadata).
type Endpoint struct {
	Path     string
	Method   string
	Metadata EndpointMetadata
}

type EndpointMetadata struct {
	OperationID string
	Description string
}

// ErrorResponse represents an error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
