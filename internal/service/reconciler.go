package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"trading_go/internal/domain"
	"trading_go/internal/infra"
)

// Observer receives measurement events at the logical start and end of a
// workflow operation. err is nil on success. This is a side channel for
// logging/metrics, not part of the operation's result.
type Observer func(operation, phase string, err error)

// DefaultObserver logs measurement events through slog.
func DefaultObserver(operation, phase string, err error) {
	if err != nil {
		slog.Error("operation failed",
			slog.String("operation", operation),
			slog.String("phase", phase),
			slog.Any("error", err))
		return
	}
	slog.Info("operation",
		slog.String("operation", operation),
		slog.String("phase", phase))
}

// Reconciler computes and persists the set of currency pairs tradable on
// at least two exchanges simultaneously.
type Reconciler struct {
	fetchers []domain.PairFetcher
	repo     domain.SnapshotRepository
	observe  Observer
	now      func() time.Time
}

// NewReconciler wires the fetchers and snapshot repository together.
// A nil observer falls back to DefaultObserver.
func NewReconciler(fetchers []domain.PairFetcher, repo domain.SnapshotRepository, observe Observer) *Reconciler {
	if observe == nil {
		observe = DefaultObserver
	}
	return &Reconciler{
		fetchers: fetchers,
		repo:     repo,
		observe:  observe,
		now:      time.Now,
	}
}

// Refresh fetches every exchange concurrently, intersects the results and
// persists the new snapshot. The aggregation is all-or-nothing: any
// fetcher failure voids the whole refresh (first failure in fetcher order
// wins) and nothing is persisted.
func (r *Reconciler) Refresh(ctx context.Context) (domain.CrossTradedPairsSnapshot, error) {
	r.observe("cross_traded_refresh", "start", nil)
	snapshot, err := r.refresh(ctx)
	r.observe("cross_traded_refresh", "end", err)
	infra.GlobalMetrics.RecordRefresh(err != nil)
	return snapshot, err
}

func (r *Reconciler) refresh(ctx context.Context) (domain.CrossTradedPairsSnapshot, error) {
	if len(r.fetchers) == 0 {
		return domain.CrossTradedPairsSnapshot{},
			domain.NewValidationError("at least one exchange fetcher is required")
	}

	results := make([]domain.PairSet, len(r.fetchers))
	errs := make([]error, len(r.fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, fetcher := range r.fetchers {
		g.Go(func() error {
			results[i], errs[i] = fetcher.Fetch(gctx)
			return nil
		})
	}
	g.Wait()

	// All-or-nothing: surface the first failure in fetcher order.
	for _, err := range errs {
		if err != nil {
			return domain.CrossTradedPairsSnapshot{}, err
		}
	}

	// Keep pairs listed on at least two distinct exchanges.
	venuesByPair := make(map[domain.CurrencyPair]map[domain.Exchange]struct{})
	for i, set := range results {
		venue := r.fetchers[i].Exchange()
		for pair := range set {
			if venuesByPair[pair] == nil {
				venuesByPair[pair] = make(map[domain.Exchange]struct{})
			}
			venuesByPair[pair][venue] = struct{}{}
		}
	}

	var crossTraded []domain.CurrencyPair
	for pair, venues := range venuesByPair {
		if len(venues) >= 2 {
			crossTraded = append(crossTraded, pair)
		}
	}
	sort.Slice(crossTraded, func(i, j int) bool {
		return crossTraded[i].Key() < crossTraded[j].Key()
	})

	snapshot := domain.CrossTradedPairsSnapshot{
		ComputedAt: r.now().UTC(),
		Pairs:      crossTraded,
	}
	if err := r.repo.Save(ctx, snapshot); err != nil {
		return domain.CrossTradedPairsSnapshot{}, err
	}
	return snapshot, nil
}

// Latest reads the stored snapshot unchanged; (nil, nil) means no
// snapshot has been computed yet.
func (r *Reconciler) Latest(ctx context.Context) (*domain.CrossTradedPairsSnapshot, error) {
	r.observe("cross_traded_latest", "start", nil)
	snapshot, err := r.repo.Latest(ctx)
	r.observe("cross_traded_latest", "end", err)
	return snapshot, err
}
