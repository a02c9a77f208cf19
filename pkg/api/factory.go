// Package api provides factory implementations for dependency injection
package api

import (
	"github.com/ssargent/bforest/pkg/record"
	"github.com/ssargent/bforest/pkg/storage"
	"github.com/ssargent/bforest/pkg/trie"
)

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(idx *trie.Trie[*record.Record], log *storage.DurableLog, config ServerConfig) error {
	return StartServer(idx, log, config)
}
