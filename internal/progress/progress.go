// Package progress is the off-hot-path observer for a running archive
// write loop: a mutex-guarded counter, updated from the loop with a single
// Add call, and optionally exposed as a JSON snapshot over net/http.
package progress

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"
)

// Snapshot is the point-in-time state reported to callers.
type Snapshot struct {
	Written   uint64    `json:"written"`
	Total     uint64    `json:"total"`
	StartedAt time.Time `json:"started_at"`
}

// Tracker accumulates a running melody count under a single mutex. The
// write loop calls Add from its own goroutine; Snapshot may be called
// concurrently from an HTTP handler.
type Tracker struct {
	mu        sync.Mutex
	written   uint64
	total     uint64
	startedAt time.Time
}

// NewTracker builds a Tracker for a run expected to produce total items.
func NewTracker(total uint64) *Tracker {
	return &Tracker{total: total, startedAt: time.Now()}
}

// Add increments the written count by n. Safe to call from the write
// loop's hot path; it does no I/O and holds the lock only long enough to
// update a counter.
func (t *Tracker) Add(n int) {
	t.mu.Lock()
	t.written += uint64(n)
	t.mu.Unlock()
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{Written: t.written, Total: t.total, StartedAt: t.startedAt}
}

// Callback returns t.Add as a plain func(int), for callers that should
// not depend on Tracker itself. Nothing in internal/storage or
// internal/enumerator takes such a callback; the CLI write loop calls Add
// directly.
func (t *Tracker) Callback() func(int) {
	return t.Add
}

// Serve starts an HTTP server on hostport exposing t's snapshot as JSON at
// "/status". It blocks; callers that want it running alongside the write
// loop should start it in its own goroutine.
func Serve(hostport string, t *Tracker) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", statusHandler(t))
	log.Printf("progress: serving status on %s", hostport)
	return http.ListenAndServe(hostport, mux)
}

func statusHandler(t *Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(t.Snapshot()); err != nil {
			log.Printf("progress: encoding status: %v", err)
		}
	}
}
