/*
B-Forest Trie Service REST API

This is the REST API for the forest service, an ordered key-value store
backed by a binary radix trie.

Version: 1.0.0
Host: localhost:8080
BasePath: /v1

swagger:meta
*/
package api

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ssargent/bforest/pkg/record"
	"github.com/ssargent/bforest/pkg/storage"
	"github.com/ssargent/bforest/pkg/trie"
)

// Server holds the trie index and the durable log behind a single
// sync.RWMutex: every mutation is serialized at this service boundary,
// mirroring the teacher's pkg/store.KVStore mutex guard. This is
// service-layer concurrency control, not trie-internal thread safety —
// pkg/trie.Trie itself is never safe for concurrent mutation.
type Server struct {
	mu      sync.RWMutex
	idx     *trie.Trie[*record.Record]
	log     *storage.DurableLog
	metrics *Metrics
}

// NewServer wires a trie index and durable log into a Server.
func NewServer(idx *trie.Trie[*record.Record], log *storage.DurableLog, metrics *Metrics) *Server {
	return &Server{idx: idx, log: log, metrics: metrics}
}

// StartServer starts the HTTP server with all routes configured
func StartServer(idx *trie.Trie[*record.Record], durLog *storage.DurableLog, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(idx, durLog, metrics)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", metrics.InstrumentHandler("GET", "/health", server.handleHealth))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/keys/{key}", metrics.InstrumentHandler("GET", "/v1/keys/{key}", server.handleGetKey))
		r.Put("/keys/{key}", metrics.InstrumentHandler("PUT", "/v1/keys/{key}", server.handlePutKey))
		r.Delete("/keys/{key}", metrics.InstrumentHandler("DELETE", "/v1/keys/{key}", server.handleDeleteKey))
		r.Get("/prefix/{prefix}", metrics.InstrumentHandler("GET", "/v1/prefix/{prefix}", server.handlePrefix))
		r.Get("/stats", metrics.InstrumentHandler("GET", "/v1/stats", server.handleStats))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", config.Port)),
	))

	bind := config.Bind
	if bind == "" {
		bind = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", bind, config.Port)
	log.Printf("forest: listening on %s", addr)
	log.Printf("forest: metrics available at http://%s/metrics", addr)
	return http.ListenAndServe(addr, r)
}
