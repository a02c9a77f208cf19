package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/bforest/pkg/record"
)

// handleHealth reports liveness; it never touches the trie.
//
// swagger:route GET /health health handleHealth
// Responses:
//
//	200: APIResponse
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "ok"})
}

// handleGetKey looks up a single key.
//
// swagger:route GET /v1/keys/{key} keys handleGetKey
// Responses:
//
//	200: APIResponse
//	404: APIResponse
func (s *Server) handleGetKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	start := time.Now()
	s.mu.RLock()
	rec, found := s.idx.Get([]byte(key))
	s.mu.RUnlock()
	s.metrics.RecordTrieOperation("get", true, time.Since(start))

	if !found {
		sendError(w, "key not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, map[string]string{"key": key, "value": string(rec.Value)})
}

// handlePutKey inserts or replaces a key's value, appending the new
// record to the durable log before acknowledging the write.
//
// swagger:route PUT /v1/keys/{key} keys handlePutKey
// Responses:
//
//	200: APIResponse
//	400: APIResponse
func (s *Server) handlePutKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var body PutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rec := record.New([]byte(key), []byte(body.Value))

	start := time.Now()
	s.mu.Lock()
	_, _, err := s.idx.Put(rec)
	if err == nil {
		err = s.log.Append(rec)
	}
	s.mu.Unlock()
	s.metrics.RecordTrieOperation("put", err == nil, time.Since(start))

	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sendSuccess(w, map[string]string{"key": key})
}

// handleDeleteKey removes a key, appending a tombstone to the durable log
// under the removed record's own identity.
//
// swagger:route DELETE /v1/keys/{key} keys handleDeleteKey
// Responses:
//
//	200: APIResponse
//	404: APIResponse
func (s *Server) handleDeleteKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	start := time.Now()
	s.mu.Lock()
	rec, found, err := s.idx.Remove([]byte(key))
	if err == nil && found {
		err = s.log.Tombstone(rec.ID, rec.Key)
	}
	s.mu.Unlock()
	s.metrics.RecordTrieOperation("remove", err == nil, time.Since(start))

	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !found {
		sendError(w, "key not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, map[string]string{"key": key})
}

// handlePrefix streams every record whose key starts with prefix as
// newline-delimited JSON, in ascending key order, via the trie's
// iterator rather than materializing the whole range in memory.
//
// swagger:route GET /v1/prefix/{prefix} keys handlePrefix
// Responses:
//
//	200: body
func (s *Server) handlePrefix(w http.ResponseWriter, r *http.Request) {
	prefix := chi.URLParam(r, "prefix")

	s.mu.RLock()
	defer s.mu.RUnlock()

	it := s.idx.Prefix([]byte(prefix))
	w.Header().Set("Content-Type", "application/x-ndjson")
	enc := json.NewEncoder(w)

	for {
		rec, ok, err := it.Next()
		if err != nil {
			sendError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !ok {
			return
		}
		_ = enc.Encode(map[string]string{"key": string(rec.Key), "value": string(rec.Value)})
	}
}

// handleStats reports the trie's current key count.
//
// swagger:route GET /v1/stats stats handleStats
// Responses:
//
//	200: APIResponse
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	keys := s.idx.Len()
	s.mu.RUnlock()

	s.metrics.UpdateTrieStats(keys)
	sendSuccess(w, StatsResponse{Keys: keys})
}
