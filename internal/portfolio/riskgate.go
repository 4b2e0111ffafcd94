package portfolio

import (
	"fmt"

	"hermes-trader/internal/models"
	"hermes-trader/internal/risk"
)

// Gate enforces a profile's stop-loss and take-profit thresholds over open
// positions.
type Gate struct {
	profile risk.Profile
}

// NewGate creates a risk gate for the given profile.
func NewGate(p risk.Profile) Gate {
	return Gate{profile: p}
}

// Check evaluates one position against the current price. It returns the
// forced-exit reason when a threshold is breached. Stop-loss is checked
// before take-profit; at most one action fires per position per day.
func (g Gate) Check(pos models.Position, currentPrice float64) (reason string, triggered bool) {
	if pos.EntryPrice == 0 {
		return "", false
	}
	pnlPct := (currentPrice - pos.EntryPrice) / pos.EntryPrice * 100

	switch {
	case pnlPct <= -g.profile.StopLossPct*100:
		return fmt.Sprintf("Stop loss triggered (%.2f%%)", pnlPct), true
	case pnlPct >= g.profile.TakeProfitPct*100:
		return fmt.Sprintf("Take profit triggered (%.2f%%)", pnlPct), true
	}
	return "", false
}
