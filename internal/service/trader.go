package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"trading_go/internal/domain"
	"trading_go/internal/infra"
	"trading_go/internal/stream"
)

// Trader is the trading state machine and the live quote cache. The
// status, cache and connection handles form one state record guarded by a
// single lock; the streaming engine mutates it only while Running.
type Trader struct {
	mu     sync.RWMutex
	status domain.TradingStatus
	cache  map[string]map[domain.Exchange]domain.CachedQuote
	conn   stream.Conn
	cancel context.CancelFunc

	dial   stream.Dialer
	wsURL  string
	writer *QuoteWriter
	logger *slog.Logger
	now    func() time.Time
}

// NewTrader creates an idle trader. The cache starts empty and survives
// stop/start cycles: a restarted stream continues over the existing
// contents.
func NewTrader(dial stream.Dialer, wsURL string, writer *QuoteWriter) *Trader {
	now := time.Now
	return &Trader{
		status: domain.NewIdleStatus(now()),
		cache:  make(map[string]map[domain.Exchange]domain.CachedQuote),
		dial:   dial,
		wsURL:  wsURL,
		writer: writer,
		logger: slog.Default().With("module", "trader"),
		now:    now,
	}
}

// Start opens the market-data connection and launches the streaming loop.
// Fails with ErrAlreadyRunning when trading is already active; a
// connection failure halts the machine with code CONNECTION_FAILED.
func (t *Trader) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.State == domain.StateRunning {
		return domain.ErrAlreadyRunning
	}

	conn, err := t.dial(ctx, t.wsURL)
	if err != nil {
		t.status = domain.TradingStatus{
			State:  domain.StateHalted,
			Reason: domain.HaltFaultyOrder,
			Since:  t.now(),
			LastError: &domain.StatusError{
				Code:    domain.ErrCodeConnectionFailed,
				Message: err.Error(),
				At:      t.now(),
			},
		}
		infra.GlobalMetrics.SetStreamConnected(false)
		return fmt.Errorf("connect market data: %w", err)
	}

	// The loop outlives the caller's context; it stops only via Stop or
	// a stream failure.
	runCtx, cancel := context.WithCancel(context.Background())
	t.conn = conn
	t.cancel = cancel
	t.status = domain.TradingStatus{State: domain.StateRunning, Since: t.now()}
	infra.GlobalMetrics.SetStreamConnected(true)

	engine := stream.NewEngine(conn, t.applyQuote)
	go func() {
		if err := engine.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			t.haltOnStreamFailure(err)
		}
	}()

	t.logger.Info("trading started", slog.String("ws_url", t.wsURL))
	return nil
}

// Stop cancels the streaming loop and closes the connection. Fails with
// ErrNotRunning when no connection is active. A close failure is
// tolerated; Stop still succeeds.
func (t *Trader) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel == nil {
		return domain.ErrNotRunning
	}

	t.cancel()
	if err := t.conn.Close(); err != nil {
		t.logger.Warn("connection close failed", slog.Any("error", err))
	}
	t.conn = nil
	t.cancel = nil
	t.status = domain.TradingStatus{
		State:  domain.StateHalted,
		Reason: domain.HaltManualStop,
		Since:  t.now(),
	}
	infra.GlobalMetrics.SetStreamConnected(false)

	t.logger.Info("trading stopped")
	return nil
}

// Status returns the current trading status.
func (t *Trader) Status() domain.TradingStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// MarketSnapshot returns a timestamped copy of the quote cache.
func (t *Trader) MarketSnapshot() domain.MarketDataSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	quotes := make(map[string]map[domain.Exchange]domain.CachedQuote, len(t.cache))
	for pair, byExchange := range t.cache {
		entry := make(map[domain.Exchange]domain.CachedQuote, len(byExchange))
		for venue, cached := range byExchange {
			entry[venue] = cached
		}
		quotes[pair] = entry
	}
	return domain.MarketDataSnapshot{TakenAt: t.now(), Quotes: quotes}
}

// applyQuote upserts one quote into the cache (last write wins per
// pair+exchange) and hands it to the persistence writer.
func (t *Trader) applyQuote(quote domain.MarketQuote) {
	t.mu.Lock()
	byExchange, ok := t.cache[quote.Pair]
	if !ok {
		byExchange = make(map[domain.Exchange]domain.CachedQuote)
		t.cache[quote.Pair] = byExchange
	}
	byExchange[quote.Exchange] = domain.CachedQuote{Quote: quote, ReceivedAt: t.now()}
	t.mu.Unlock()

	infra.GlobalMetrics.RecordQuote()
	if t.writer != nil {
		t.writer.Enqueue(quote)
	}
}

// haltOnStreamFailure transitions to Halted(FaultyOrder) after a
// transport or parse failure. No automatic reconnect: the machine waits
// for an explicit Start.
func (t *Trader) haltOnStreamFailure(cause error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel == nil {
		// Already stopped; a late stream error must not override ManualStop.
		return
	}

	t.cancel()
	if t.conn != nil {
		t.conn.Close()
	}
	t.conn = nil
	t.cancel = nil
	t.status = domain.TradingStatus{
		State:  domain.StateHalted,
		Reason: domain.HaltFaultyOrder,
		Since:  t.now(),
		LastError: &domain.StatusError{
			Code:    domain.ErrCodeWebsocketError,
			Message: cause.Error(),
			At:      t.now(),
		},
	}
	infra.GlobalMetrics.SetStreamConnected(false)

	t.logger.Error("stream halted", slog.Any("error", cause))
}
