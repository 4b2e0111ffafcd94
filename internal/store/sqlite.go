// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"hermes-trader/internal/config"
	"hermes-trader/internal/errors"
	"hermes-trader/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Daily bars for historical OHLCV data
	CREATE TABLE IF NOT EXISTS bars (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		date TEXT NOT NULL,
		open REAL NOT NULL,
		high REAL NOT NULL,
		low REAL NOT NULL,
		close REAL NOT NULL,
		volume INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(symbol, date)
	);
	CREATE INDEX IF NOT EXISTS idx_bars_symbol_date ON bars(symbol, date);

	-- Bot configurations
	CREATE TABLE IF NOT EXISTS bots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		risk_tier TEXT NOT NULL,
		initial_capital REAL NOT NULL,
		use_pivot INTEGER NOT NULL DEFAULT 1,
		use_momentum INTEGER NOT NULL DEFAULT 1,
		use_screener INTEGER NOT NULL DEFAULT 1,
		use_index_event INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Backtest results, one row per run
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bot_id INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		initial_capital REAL NOT NULL,
		final_value REAL NOT NULL,
		total_return REAL NOT NULL,
		roi REAL NOT NULL,
		total_trades INTEGER NOT NULL,
		winning_trades INTEGER NOT NULL,
		losing_trades INTEGER NOT NULL,
		win_rate REAL NOT NULL,
		trades TEXT,
		daily_values TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (bot_id) REFERENCES bots(id)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

const dateLayout = "2006-01-02"

// SaveBars upserts daily bars.
func (s *SQLiteStore) SaveBars(ctx context.Context, bars []models.DailyBar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bars (symbol, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			volume = excluded.volume`)
	if err != nil {
		return errors.Wrap(err, "preparing statement")
	}
	defer stmt.Close()

	for _, bar := range bars {
		_, err := stmt.ExecContext(ctx, bar.Symbol, bar.Date.Format(dateLayout),
			bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
		if err != nil {
			return errors.Wrapf(err, "inserting bar %s %s", bar.Symbol, bar.Date.Format(dateLayout))
		}
	}

	return tx.Commit()
}

// GetBars returns the daily bars for a symbol in chronological order.
// An empty result is not an error.
func (s *SQLiteStore) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.DailyBar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, date, open, high, low, close, volume
		FROM bars
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		symbol, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, errors.Wrap(err, "querying bars")
	}
	defer rows.Close()

	var bars []models.DailyBar
	for rows.Next() {
		var bar models.DailyBar
		var date string
		if err := rows.Scan(&bar.Symbol, &date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(err, "scanning bar")
		}
		bar.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing bar date %q", date)
		}
		bars = append(bars, bar)
	}
	return bars, rows.Err()
}

// SaveBot stores a bot configuration and returns its id.
func (s *SQLiteStore) SaveBot(ctx context.Context, bot config.BotConfig) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO bots (name, risk_tier, initial_capital, use_pivot, use_momentum, use_screener, use_index_event)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		bot.Name, bot.RiskTier, bot.InitialCapital,
		boolToInt(bot.UsePivot), boolToInt(bot.UseMomentum),
		boolToInt(bot.UseScreener), boolToInt(bot.UseIndexEvent))
	if err != nil {
		return 0, errors.Wrap(err, "inserting bot")
	}
	return res.LastInsertId()
}

// LoadBotConfig loads a bot configuration by id.
func (s *SQLiteStore) LoadBotConfig(ctx context.Context, id int64) (*config.BotConfig, error) {
	var bot config.BotConfig
	var usePivot, useMomentum, useScreener, useIndexEvent int
	err := s.db.QueryRowContext(ctx, `
		SELECT name, risk_tier, initial_capital, use_pivot, use_momentum, use_screener, use_index_event
		FROM bots WHERE id = ?`, id).
		Scan(&bot.Name, &bot.RiskTier, &bot.InitialCapital,
			&usePivot, &useMomentum, &useScreener, &useIndexEvent)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrDataNotFound, "bot %d", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading bot")
	}
	bot.UsePivot = usePivot != 0
	bot.UseMomentum = useMomentum != 0
	bot.UseScreener = useScreener != 0
	bot.UseIndexEvent = useIndexEvent != 0
	return &bot, nil
}

// SaveResult stores a backtest result for a bot. The trade log and daily
// snapshots are stored as JSON documents.
func (s *SQLiteStore) SaveResult(ctx context.Context, botID int64, result *models.BacktestResult) error {
	trades, err := json.Marshal(result.Trades)
	if err != nil {
		return errors.Wrap(err, "encoding trades")
	}
	dailyValues, err := json.Marshal(result.DailyValues)
	if err != nil {
		return errors.Wrap(err, "encoding daily values")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (bot_id, start_date, end_date, initial_capital, final_value,
			total_return, roi, total_trades, winning_trades, losing_trades, win_rate,
			trades, daily_values)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		botID, result.StartDate.Format(dateLayout), result.EndDate.Format(dateLayout),
		result.InitialCapital, result.FinalValue, result.TotalReturn, result.ROI,
		result.TotalTrades, result.WinningTrades, result.LosingTrades, result.WinRate,
		string(trades), string(dailyValues))
	return errors.Wrap(err, "inserting result")
}

// LoadResult loads the most recent backtest result for a bot.
func (s *SQLiteStore) LoadResult(ctx context.Context, botID int64) (*models.BacktestResult, error) {
	var result models.BacktestResult
	var startDate, endDate, trades, dailyValues string
	err := s.db.QueryRowContext(ctx, `
		SELECT start_date, end_date, initial_capital, final_value, total_return, roi,
			total_trades, winning_trades, losing_trades, win_rate, trades, daily_values
		FROM results WHERE bot_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`, botID).
		Scan(&startDate, &endDate, &result.InitialCapital, &result.FinalValue,
			&result.TotalReturn, &result.ROI, &result.TotalTrades,
			&result.WinningTrades, &result.LosingTrades, &result.WinRate,
			&trades, &dailyValues)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrDataNotFound, "result for bot %d", botID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading result")
	}

	if result.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
		return nil, errors.Wrap(err, "parsing start date")
	}
	if result.EndDate, err = time.Parse(dateLayout, endDate); err != nil {
		return nil, errors.Wrap(err, "parsing end date")
	}
	if err := json.Unmarshal([]byte(trades), &result.Trades); err != nil {
		return nil, errors.Wrap(err, "decoding trades")
	}
	if err := json.Unmarshal([]byte(dailyValues), &result.DailyValues); err != nil {
		return nil, errors.Wrap(err, "decoding daily values")
	}
	return &result, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
