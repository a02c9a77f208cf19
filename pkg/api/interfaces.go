// Package api provides interfaces for dependency injection
package api

import (
	"github.com/ssargent/bforest/pkg/storage"
	"github.com/ssargent/bforest/pkg/trie"

	"github.com/ssargent/bforest/pkg/record"
)

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer starts the API server with the given configuration
	StartServer(idx *trie.Trie[*record.Record], log *storage.DurableLog, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
