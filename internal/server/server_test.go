package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trading_go/internal/domain"
	"trading_go/internal/service"
	"trading_go/internal/stream"
)

type stubRepo struct {
	saved *domain.CrossTradedPairsSnapshot
}

func (r *stubRepo) Save(ctx context.Context, s domain.CrossTradedPairsSnapshot) error {
	r.saved = &s
	return nil
}

func (r *stubRepo) Latest(ctx context.Context) (*domain.CrossTradedPairsSnapshot, error) {
	return r.saved, nil
}

type stubFetcher struct {
	venue domain.Exchange
	keys  []string
}

func (f *stubFetcher) Exchange() domain.Exchange { return f.venue }

func (f *stubFetcher) Fetch(ctx context.Context) (domain.PairSet, error) {
	set := make(domain.PairSet)
	for _, key := range f.keys {
		pair, _ := domain.ParsePairKey(key)
		set.Add(pair)
	}
	return set, nil
}

func silentObserver(string, string, error) {}

func failingDialer(ctx context.Context, url string) (stream.Conn, error) {
	return nil, errors.New("refused")
}

func newTestServer(t *testing.T, trader *service.Trader, reconciler *service.Reconciler) *Server {
	t.Helper()
	return NewServer("127.0.0.1:0", trader, reconciler, slog.Default())
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Status(t *testing.T) {
	trader := service.NewTrader(failingDialer, "ws://test", nil)
	s := newTestServer(t, trader, service.NewReconciler(nil, &stubRepo{}, silentObserver))

	rec := doRequest(t, s, http.MethodGet, "/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var status domain.TradingStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("bad status payload: %v", err)
	}
	if status.State != domain.StateIdle {
		t.Errorf("expected IDLE, got %s", status.State)
	}
}

func TestServer_ErrorMapping(t *testing.T) {
	t.Run("state conflict maps to 409", func(t *testing.T) {
		trader := service.NewTrader(failingDialer, "ws://test", nil)
		s := newTestServer(t, trader, service.NewReconciler(nil, &stubRepo{}, silentObserver))

		rec := doRequest(t, s, http.MethodPost, "/trading/stop")
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409 for stop while idle, got %d", rec.Code)
		}
	})

	t.Run("empty fetcher configuration maps to 400", func(t *testing.T) {
		trader := service.NewTrader(failingDialer, "ws://test", nil)
		s := newTestServer(t, trader, service.NewReconciler(nil, &stubRepo{}, silentObserver))

		rec := doRequest(t, s, http.MethodPost, "/cross-pairs/refresh")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for empty fetcher set, got %d", rec.Code)
		}
	})

	t.Run("missing snapshot maps to 404", func(t *testing.T) {
		trader := service.NewTrader(failingDialer, "ws://test", nil)
		s := newTestServer(t, trader, service.NewReconciler(nil, &stubRepo{}, silentObserver))

		rec := doRequest(t, s, http.MethodGet, "/cross-pairs")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 before first refresh, got %d", rec.Code)
		}
	})
}

func TestServer_RefreshPayload(t *testing.T) {
	fetchers := []domain.PairFetcher{
		&stubFetcher{venue: domain.ExchangeBitfinex, keys: []string{"BTC-USD", "ETH-USD"}},
		&stubFetcher{venue: domain.ExchangeKraken, keys: []string{"ETH-USD"}},
	}
	trader := service.NewTrader(failingDialer, "ws://test", nil)
	s := newTestServer(t, trader, service.NewReconciler(fetchers, &stubRepo{}, silentObserver))

	rec := doRequest(t, s, http.MethodPost, "/cross-pairs/refresh")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		ComputedAt string   `json:"computedAt"`
		Pairs      []string `json:"pairs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if len(payload.Pairs) != 1 || payload.Pairs[0] != "ETH-USD" {
		t.Errorf("expected [ETH-USD], got %v", payload.Pairs)
	}
	if _, err := time.Parse(time.RFC3339, payload.ComputedAt); err != nil {
		t.Errorf("computedAt is not RFC3339: %v", err)
	}

	// The snapshot is now readable.
	rec = doRequest(t, s, http.MethodGet, "/cross-pairs")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 after refresh, got %d", rec.Code)
	}
}
