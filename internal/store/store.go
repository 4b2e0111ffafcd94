// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"hermes-trader/internal/config"
	"hermes-trader/internal/models"
)

// BarStore persists and serves historical daily bars. GetBars tolerates
// gaps and returns an empty slice, not an error, for symbols with no data
// in range.
type BarStore interface {
	SaveBars(ctx context.Context, bars []models.DailyBar) error
	GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.DailyBar, error)
}

// BotRepository persists bot configurations and their backtest results,
// decoupled from any particular storage technology.
type BotRepository interface {
	SaveBot(ctx context.Context, bot config.BotConfig) (int64, error)
	LoadBotConfig(ctx context.Context, id int64) (*config.BotConfig, error)
	SaveResult(ctx context.Context, botID int64, result *models.BacktestResult) error
	LoadResult(ctx context.Context, botID int64) (*models.BacktestResult, error)
}

// DataStore combines the persistence surfaces behind one lifecycle.
type DataStore interface {
	BarStore
	BotRepository
	Close() error
}
