package stream

import (
	"context"
	"fmt"
	"log/slog"

	"trading_go/internal/domain"
	"trading_go/internal/infra"
)

// Engine drives one streaming connection: it blocks on inbound frames,
// decodes them, and hands each quote to the configured callback. It owns
// no cache or status of its own; the caller decides what a quote means.
type Engine struct {
	conn    Conn
	onQuote func(domain.MarketQuote)
	logger  *slog.Logger
}

// NewEngine wraps an open connection. onQuote is invoked synchronously,
// in frame order, for every decoded quote.
func NewEngine(conn Conn, onQuote func(domain.MarketQuote)) *Engine {
	return &Engine{
		conn:    conn,
		onQuote: onQuote,
		logger:  slog.Default().With("module", "stream_engine"),
	}
}

// Run consumes frames until the context is cancelled or the stream fails.
// Cancellation closes the connection so an in-flight read unblocks
// immediately; Run then returns ctx.Err(). Any other return value is a
// transport or parse failure that terminates the stream.
func (e *Engine) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			e.conn.Close()
		case <-done:
		}
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		_, frame, err := e.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}

		quotes, skipped, err := ParseFrame(frame)
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		if skipped > 0 {
			infra.GlobalMetrics.RecordSkippedRecords(skipped)
			e.logger.Debug("skipped records in frame", slog.Int("count", skipped))
		}

		for _, quote := range quotes {
			e.onQuote(quote)
		}
	}
}
