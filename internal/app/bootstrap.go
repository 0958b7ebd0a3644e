package app

import (
	"log/slog"

	"trading_go/internal/domain"
	"trading_go/internal/exchange"
	"trading_go/internal/infra"
	"trading_go/internal/infra/storage"
	"trading_go/internal/service"
	"trading_go/internal/stream"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config     *infra.Config
	Storage    *storage.Storage
	Trader     *service.Trader
	Reconciler *service.Reconciler
	Writer     *service.QuoteWriter
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB, wiring)
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping trading backend...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (DB)
	store, err := storage.NewStorage(cfg.Stream.DBPath)
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("✅ Database initialized")

	// 4. Quote persistence writer
	b.Writer = service.NewQuoteWriter(store, cfg.Stream.QueueSize)

	// 5. Trading engine
	b.Trader = service.NewTrader(stream.DialWebsocket, cfg.Stream.WSURL, b.Writer)

	// 6. Cross-traded pairs reconciler
	fetchers := []domain.PairFetcher{
		exchange.NewBitfinexFetcher(cfg.Exchanges.Bitfinex.RestURL),
		exchange.NewBitstampFetcher(cfg.Exchanges.Bitstamp.RestURL),
		exchange.NewKrakenFetcher(cfg.Exchanges.Kraken.RestURL),
	}
	b.Reconciler = service.NewReconciler(fetchers, store, service.DefaultObserver)
	slog.Info("✅ Components wired", slog.Int("fetchers", len(fetchers)))

	return nil
}
