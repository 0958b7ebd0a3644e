package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"trading_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// snapshotRowID is the fixed primary key of the cross-traded snapshot row.
// Each refresh overwrites this single row; no history is kept.
const snapshotRowID = 1

// Storage persists quotes and the cross-traded-pairs snapshot in SQLite.
// It implements domain.SnapshotRepository and domain.QuoteStore.
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a new SQLite storage instance. An empty path selects
// a file under the user config directory.
func NewStorage(path string) (*Storage, error) {
	dbPath := path
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.QuoteRecord{}, &domain.PairSnapshotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

func defaultDBPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "TradingGo", "data", "trading.db"), nil
}

// ======================================================================================
// Quote Operations
// ======================================================================================

// Insert appends one market quote to the sink table.
func (s *Storage) Insert(ctx context.Context, quote domain.MarketQuote) error {
	rec := domain.QuoteRecord{
		Pair:       quote.Pair,
		Exchange:   string(quote.Exchange),
		BidPrice:   quote.BidPrice,
		BidSize:    quote.BidSize,
		AskPrice:   quote.AskPrice,
		AskSize:    quote.AskSize,
		SourceTime: quote.Timestamp,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.NewRepositoryError("insert quote", err)
	}
	return nil
}

// RecentQuotes returns the most recently inserted quote records.
func (s *Storage) RecentQuotes(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	var recs []domain.QuoteRecord
	err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&recs).Error
	if err != nil {
		return nil, domain.NewRepositoryError("list quotes", err)
	}
	return recs, nil
}

// ======================================================================================
// Cross-Traded Snapshot Operations
// ======================================================================================

// Save replaces the stored cross-traded-pairs snapshot wholesale.
func (s *Storage) Save(ctx context.Context, snapshot domain.CrossTradedPairsSnapshot) error {
	pairs, err := json.Marshal(snapshot.PairKeys())
	if err != nil {
		return domain.NewRepositoryError("encode snapshot", err)
	}

	rec := domain.PairSnapshotRecord{
		ID:         snapshotRowID,
		ComputedAt: snapshot.ComputedAt.UTC(),
		Pairs:      string(pairs),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return domain.NewRepositoryError("save snapshot", err)
	}
	return nil
}

// Latest returns the stored snapshot, or (nil, nil) when none was saved yet.
func (s *Storage) Latest(ctx context.Context) (*domain.CrossTradedPairsSnapshot, error) {
	var rec domain.PairSnapshotRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", snapshotRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, domain.NewRepositoryError("load snapshot", err)
	}

	var keys []string
	if err := json.Unmarshal([]byte(rec.Pairs), &keys); err != nil {
		return nil, domain.NewRepositoryError("decode snapshot", err)
	}

	pairs := make([]domain.CurrencyPair, 0, len(keys))
	for _, key := range keys {
		pair, err := domain.ParsePairKey(key)
		if err != nil {
			return nil, domain.NewRepositoryError("decode snapshot pair "+key, err)
		}
		pairs = append(pairs, pair)
	}

	return &domain.CrossTradedPairsSnapshot{
		ComputedAt: rec.ComputedAt,
		Pairs:      pairs,
	}, nil
}
