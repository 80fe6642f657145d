package service

import (
	"sync"

	"github.com/quotewise/quotewise/internal/domain/quote"
)

// QuoteHistory is a bounded, append-only ledger of computed quotes kept for
// audit and debugging. It is a fixed-capacity ring buffer: once full, each
// append evicts the oldest record. Appends are safe under concurrent quote
// requests; the lock is scoped to the single slot write and index bump.
type QuoteHistory struct {
	mu       sync.Mutex
	records  []quote.HistoryRecord
	capacity int
	head     int // index of the oldest record
	size     int
}

// DefaultHistoryCapacity bounds the ledger when no capacity is configured
const DefaultHistoryCapacity = 1000

// NewQuoteHistory creates a ledger with the given capacity
func NewQuoteHistory(capacity int) *QuoteHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &QuoteHistory{
		records:  make([]quote.HistoryRecord, capacity),
		capacity: capacity,
	}
}

// Append records a computed quote, evicting the oldest record when full
func (h *QuoteHistory) Append(record quote.HistoryRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	tail := (h.head + h.size) % h.capacity
	h.records[tail] = record

	if h.size < h.capacity {
		h.size++
		return
	}

	// Full: the slot we just wrote replaced the oldest record
	h.head = (h.head + 1) % h.capacity
}

// Len returns the number of records currently retained
func (h *QuoteHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// List returns a snapshot of the retained records, oldest first
func (h *QuoteHistory) List() []quote.HistoryRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]quote.HistoryRecord, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.records[(h.head+i)%h.capacity]
	}
	return out
}
