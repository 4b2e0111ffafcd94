// Package models provides domain models for the backtesting engine.
package models

import (
	"time"
)

// TradeAction represents the side of an executed order.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// SignalSource identifies which strategy produced a verdict.
type SignalSource string

const (
	SourcePivot      SignalSource = "PIVOT"
	SourceMomentum   SignalSource = "MOMENTUM"
	SourceScreener   SignalSource = "SCREENER"
	SourceIndexEvent SignalSource = "INDEX_EVENT"
)

// DailyBar represents one day of OHLCV data for a symbol.
type DailyBar struct {
	Symbol string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// SignalVerdict is a single strategy's classification of one day's data.
// Verdicts are produced fresh per symbol per day and never stored.
type SignalVerdict struct {
	Source     SignalSource
	Label      string
	Confidence float64 // only set by MOMENTUM
	Rationale  string
}

// Position represents an open holding owned by the ledger.
// EntryPrice is the weighted-average cost across all buys while open.
type Position struct {
	Symbol     string
	Quantity   int
	EntryPrice float64
	EntryDate  time.Time
}

// Trade is an immutable record of an executed order.
// RealizedPnL is only meaningful for sells.
type Trade struct {
	Date        time.Time
	Symbol      string
	Action      TradeAction
	Quantity    int
	Price       float64
	CashDelta   float64
	Reason      string
	RealizedPnL float64
}

// DailySnapshot captures portfolio value at the end of one simulated day.
type DailySnapshot struct {
	Date           time.Time
	Cash           float64
	PositionsValue float64
	TotalValue     float64
}

// BacktestResult is the final report of a simulation run.
type BacktestResult struct {
	InitialCapital float64
	FinalValue     float64
	TotalReturn    float64
	ROI            float64
	TotalTrades    int
	WinningTrades  int
	LosingTrades   int
	WinRate        float64
	Trades         []Trade
	DailyValues    []DailySnapshot
	StartDate      time.Time
	EndDate        time.Time
}
