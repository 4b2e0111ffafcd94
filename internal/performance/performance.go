// Package performance tracks strategy recommendations and their outcomes.
// The tracker is an explicit object owned by its caller; there is no
// process-wide instance.
package performance

import (
	"sync"
	"time"
)

// Outcome classifies a tracked recommendation.
type Outcome string

const (
	OutcomeWin     Outcome = "WIN"
	OutcomeLoss    Outcome = "LOSS"
	OutcomePending Outcome = "PENDING"
)

// Entry is one tracked recommendation.
type Entry struct {
	Date        time.Time
	Strategy    string
	Symbol      string
	Action      string
	EntryPrice  float64
	TargetPrice float64
	ExitPrice   float64
	Outcome     Outcome
	ReturnPct   float64
}

// Tracker records recommendations and summarizes completed ones.
type Tracker struct {
	mu      sync.Mutex
	entries []Entry
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Log records a recommendation. Pass a zero exitPrice for a still-open
// recommendation; its outcome stays PENDING until Resolve is called.
func (t *Tracker) Log(date time.Time, strategy, symbol, action string, entryPrice, targetPrice, exitPrice float64, outcome Outcome) Entry {
	e := Entry{
		Date:        date,
		Strategy:    strategy,
		Symbol:      symbol,
		Action:      action,
		EntryPrice:  entryPrice,
		TargetPrice: targetPrice,
		ExitPrice:   exitPrice,
		Outcome:     outcome,
	}
	if e.Outcome == "" {
		e.Outcome = OutcomePending
	}
	if exitPrice != 0 && entryPrice != 0 {
		e.ReturnPct = (exitPrice - entryPrice) / entryPrice * 100
	}

	t.mu.Lock()
	t.entries = append(t.entries, e)
	t.mu.Unlock()
	return e
}

// Resolve completes the oldest pending entry for a strategy and symbol.
func (t *Tracker) Resolve(strategy, symbol string, exitPrice float64, outcome Outcome) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		e := &t.entries[i]
		if e.Strategy == strategy && e.Symbol == symbol && e.Outcome == OutcomePending {
			e.ExitPrice = exitPrice
			e.Outcome = outcome
			if e.EntryPrice != 0 {
				e.ReturnPct = (exitPrice - e.EntryPrice) / e.EntryPrice * 100
			}
			return true
		}
	}
	return false
}

// Entries returns a copy of all tracked entries.
func (t *Tracker) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// StrategyStats summarizes one strategy's completed recommendations.
type StrategyStats struct {
	Trades       int
	Wins         int
	WinRate      float64
	AvgReturnPct float64
}

// Summary aggregates completed recommendations.
type Summary struct {
	TotalTrades  int
	Wins         int
	Losses       int
	WinRate      float64
	AvgReturnPct float64
	ByStrategy   map[string]StrategyStats
}

// Summarize computes win rate and average return over completed entries.
// Pending entries are excluded.
func (t *Tracker) Summarize() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{ByStrategy: make(map[string]StrategyStats)}
	var totalReturn float64

	for _, e := range t.entries {
		if e.Outcome != OutcomeWin && e.Outcome != OutcomeLoss {
			continue
		}
		s.TotalTrades++
		totalReturn += e.ReturnPct
		if e.Outcome == OutcomeWin {
			s.Wins++
		} else {
			s.Losses++
		}

		st := s.ByStrategy[e.Strategy]
		st.Trades++
		if e.Outcome == OutcomeWin {
			st.Wins++
		}
		st.AvgReturnPct += e.ReturnPct
		s.ByStrategy[e.Strategy] = st
	}

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
		s.AvgReturnPct = totalReturn / float64(s.TotalTrades)
	}
	for name, st := range s.ByStrategy {
		if st.Trades > 0 {
			st.AvgReturnPct /= float64(st.Trades)
			st.WinRate = float64(st.Wins) / float64(st.Trades) * 100
		}
		s.ByStrategy[name] = st
	}

	return s
}
