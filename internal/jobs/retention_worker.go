package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/insurly/autoquote/internal/core"
)

// RetentionWorker removes quotes whose validity window ended longer ago
// than the retention period. Quotes are immutable once persisted; this
// sweep is the only thing that ever removes them.
type RetentionWorker struct {
	BaseWorker
	quotes    core.QuoteRepo
	retention time.Duration
	clock     func() time.Time
}

func NewRetentionWorker(quotes core.QuoteRepo, interval, retention time.Duration, log *slog.Logger) *RetentionWorker {
	return &RetentionWorker{
		BaseWorker: NewBaseWorker("quote_retention", interval, log),
		quotes:     quotes,
		retention:  retention,
		clock:      time.Now,
	}
}

func (w *RetentionWorker) Name() string { return w.name }

func (w *RetentionWorker) Start(ctx context.Context) {
	w.Poll(ctx, w.sweep)
}

func (w *RetentionWorker) sweep(ctx context.Context) error {
	cutoff := w.clock().Add(-w.retention)
	removed, err := w.quotes.DeleteExpired(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		w.log.Info("expired quotes removed", "count", removed, "cutoff", cutoff)
	}
	return nil
}
