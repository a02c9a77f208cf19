package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PutRequest is the body of a PUT /v1/keys/{key} request.
type PutRequest struct {
	Value string `json:"value"`
}

// StatsResponse reports the trie's current size.
type StatsResponse struct {
	Keys int `json:"keys"`
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Port    int
	Bind    string
	DataDir string
}
