package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"weatherchat.app/models"
)

// HistoryStore keeps answered queries in memory for the lifetime of the
// process. Entries survive pipeline failures of later queries but are
// lost on restart.
type HistoryStore struct {
	mu      sync.RWMutex
	results []models.QueryResult
}

// NewHistoryStore creates an empty history store
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Append stores a result, assigning an ID and creation time when unset,
// and returns the stored copy
func (h *HistoryStore) Append(result models.QueryResult) models.QueryResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	h.results = append(h.results, result)
	return result
}

// List returns a copy of all stored results, newest first
func (h *HistoryStore) List() []models.QueryResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]models.QueryResult, len(h.results))
	for i, result := range h.results {
		out[len(h.results)-1-i] = result
	}
	return out
}

// Len reports the number of stored results
func (h *HistoryStore) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.results)
}

// Clear removes all stored results
func (h *HistoryStore) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.results = nil
}
