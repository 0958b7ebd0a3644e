package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trading_go/internal/domain"
)

type fakeStore struct {
	mu      sync.Mutex
	quotes  []domain.MarketQuote
	err     error
	blockCh chan struct{} // When set, Insert blocks until it is closed
}

func (s *fakeStore) Insert(ctx context.Context, quote domain.MarketQuote) error {
	if s.blockCh != nil {
		<-s.blockCh
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.quotes = append(s.quotes, quote)
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quotes)
}

func TestQuoteWriter(t *testing.T) {
	quote := domain.MarketQuote{Pair: "BTC-USD", Exchange: domain.ExchangeKraken}

	t.Run("drains queue into store", func(t *testing.T) {
		store := &fakeStore{}
		writer := NewQuoteWriter(store, 8)

		ctx, cancel := context.WithCancel(context.Background())
		writer.Start(ctx)

		writer.Enqueue(quote)
		writer.Enqueue(quote)

		waitFor(t, func() bool { return store.count() == 2 })
		cancel()
		writer.Wait()
	})

	t.Run("full queue drops instead of blocking", func(t *testing.T) {
		store := &fakeStore{blockCh: make(chan struct{})}
		writer := NewQuoteWriter(store, 1)

		// No drain running: the single slot fills, the rest must drop
		// without blocking the caller.
		done := make(chan struct{})
		go func() {
			for i := 0; i < 10; i++ {
				writer.Enqueue(quote)
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Enqueue blocked on a full queue")
		}
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		store := &fakeStore{err: errors.New("disk full")}
		writer := NewQuoteWriter(store, 8)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		writer.Start(ctx)

		writer.Enqueue(quote) // Must not panic or surface anywhere
		time.Sleep(20 * time.Millisecond)
	})
}
