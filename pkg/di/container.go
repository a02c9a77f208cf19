// Package di provides dependency injection container
package di

import (
	"fmt"

	"github.com/ssargent/bforest/pkg/api" //nolint:depguard
	"github.com/ssargent/bforest/pkg/config"
	"github.com/ssargent/bforest/pkg/record"
	"github.com/ssargent/bforest/pkg/storage"
	"github.com/ssargent/bforest/pkg/trie"
)

// Container holds the API server factory. Bootstrap, below, does the
// wiring from config through the durable log to the trie.
type Container struct {
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory: api.NewServerFactory(),
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// Bootstrap opens the durable log at cfg.DataDir, replays it into a fresh
// trie sized by cfg.BranchCapacity, and returns both ready for an
// api.ServerStarter.
func Bootstrap(cfg *config.Config) (*trie.Trie[*record.Record], *storage.DurableLog, error) {
	log, err := storage.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("di: bootstrap: %w", err)
	}

	recovered, err := storage.NewLoader(log).LoadAll()
	if err != nil {
		log.Close()
		return nil, nil, fmt.Errorf("di: bootstrap: %w", err)
	}

	idx, err := trie.NewFromSorted[*record.Record](record.ProjectKey, recovered, trie.WithBranchCapacity(cfg.BranchCapacity))
	if err != nil {
		log.Close()
		return nil, nil, fmt.Errorf("di: bootstrap: %w", err)
	}

	return idx, log, nil
}
