//go:build bench

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/bforest/pkg/record"
	"github.com/ssargent/bforest/pkg/storage"
	"github.com/ssargent/bforest/pkg/trie"
)

// BenchmarkConcurrentPutGetPrefix exercises the service boundary's
// sync.RWMutex under concurrent writers and readers, the throughput
// counterpart to bptree_concurrent_test.go's goroutine fan-out — here
// against the guarded handlers rather than the trie directly, since
// pkg/trie itself carries no internal lock.
func BenchmarkConcurrentPutGetPrefix(b *testing.B) {
	s := newBenchServer(b)
	var wg sync.WaitGroup
	numWriters := 4
	numReaders := 4

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(numWriters + numReaders)
		for w := 0; w < numWriters; w++ {
			go func(w int) {
				defer wg.Done()
				key := fmt.Sprintf("writer%d_%d", w, i)
				body, _ := json.Marshal(PutRequest{Value: "v"})
				req := httptest.NewRequest(http.MethodPut, "/v1/keys/"+key, bytes.NewReader(body))
				rctx := chi.NewRouteContext()
				rctx.URLParams.Add("key", key)
				req = req.WithContext(contextWithRouteCtx(req, rctx))
				s.handlePutKey(httptest.NewRecorder(), req)
			}(w)
		}
		for r := 0; r < numReaders; r++ {
			go func() {
				defer wg.Done()
				req := httptest.NewRequest(http.MethodGet, "/v1/prefix/writer", nil)
				rctx := chi.NewRouteContext()
				rctx.URLParams.Add("prefix", "writer")
				req = req.WithContext(contextWithRouteCtx(req, rctx))
				s.handlePrefix(httptest.NewRecorder(), req)
			}()
		}
		wg.Wait()
	}
}

func newBenchServer(b *testing.B) *Server {
	b.Helper()

	idx, err := trie.New[*record.Record](record.ProjectKey)
	if err != nil {
		b.Fatalf("trie.New: %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "forest_api_bench")
	if err != nil {
		b.Fatalf("MkdirTemp: %v", err)
	}
	b.Cleanup(func() { os.RemoveAll(tmpDir) })

	log, err := storage.Open(filepath.Join(tmpDir, "db"))
	if err != nil {
		b.Fatalf("storage.Open: %v", err)
	}
	b.Cleanup(func() { log.Close() })

	return NewServer(idx, log, NewMetrics())
}
