// Package memory holds an in-process quote store used for local
// development and tests. Semantics mirror the real backends: writes are
// atomic per record and duplicate ids conflict.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/insurly/autoquote/internal/core"
)

type QuoteRepo struct {
	mu     sync.RWMutex
	quotes map[string]core.Quote
}

func NewQuoteRepo() *QuoteRepo {
	return &QuoteRepo{quotes: make(map[string]core.Quote)}
}

func (r *QuoteRepo) Save(_ context.Context, q core.Quote) (core.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quotes[q.ID]; ok {
		return core.Quote{}, core.ErrConflict
	}
	r.quotes[q.ID] = snapshot(q)
	return q, nil
}

func (r *QuoteRepo) FindByID(_ context.Context, id string) (core.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[id]
	if !ok {
		return core.Quote{}, core.ErrQuoteNotFound
	}
	return snapshot(q), nil
}

func (r *QuoteRepo) DeleteExpired(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, q := range r.quotes {
		if q.ValidUntil.Before(before) {
			delete(r.quotes, id)
			removed++
		}
	}
	return removed, nil
}

// snapshot copies the slice-valued fields so stored records stay immutable
// no matter what callers do with theirs.
func snapshot(q core.Quote) core.Quote {
	if q.DiscountsApplied != nil {
		discounts := make([]string, len(q.DiscountsApplied))
		copy(discounts, q.DiscountsApplied)
		q.DiscountsApplied = discounts
	}
	return q
}
