package service

import (
	"context"
	"log/slog"
	"sync"

	"trading_go/internal/domain"
	"trading_go/internal/infra"
)

// QuoteWriter persists quotes off the streaming hotpath through a bounded
// queue. Enqueue never blocks: when the queue is full the quote is dropped
// and counted. Store failures are logged, never surfaced to the stream.
type QuoteWriter struct {
	store  domain.QuoteStore
	queue  chan domain.MarketQuote
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewQuoteWriter creates a writer with the given queue capacity.
func NewQuoteWriter(store domain.QuoteStore, queueSize int) *QuoteWriter {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &QuoteWriter{
		store:  store,
		queue:  make(chan domain.MarketQuote, queueSize),
		logger: slog.Default().With("module", "quote_writer"),
	}
}

// Start launches the drain goroutine. It runs until the context is
// cancelled.
func (w *QuoteWriter) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case quote := <-w.queue:
				if err := w.store.Insert(ctx, quote); err != nil {
					infra.GlobalMetrics.RecordWriteFailed()
					w.logger.Warn("quote insert failed",
						slog.String("pair", quote.Pair),
						slog.String("exchange", string(quote.Exchange)),
						slog.Any("error", err))
				}
			}
		}
	}()
}

// Enqueue submits a quote for persistence without blocking.
func (w *QuoteWriter) Enqueue(quote domain.MarketQuote) {
	select {
	case w.queue <- quote:
		infra.GlobalMetrics.RecordWriteEnqueued()
	default: // DROP
		infra.GlobalMetrics.RecordWriteDropped()
		w.logger.Warn("quote queue full, dropping write",
			slog.String("pair", quote.Pair),
			slog.String("exchange", string(quote.Exchange)))
	}
}

// Wait blocks until the drain goroutine has exited.
func (w *QuoteWriter) Wait() {
	w.wg.Wait()
}
