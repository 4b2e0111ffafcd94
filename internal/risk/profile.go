// Package risk provides risk profiles, position sizing and return projections.
package risk

import "strings"

// Tier is an enumerated risk tier.
type Tier string

const (
	TierLow    Tier = "LOW"
	TierMedium Tier = "MEDIUM"
	TierHigh   Tier = "HIGH"
)

// ParseTier resolves a tier name case-insensitively. Unknown names resolve
// to TierMedium; this fallback is a documented default, not an error.
func ParseTier(s string) Tier {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return TierLow
	case "HIGH":
		return TierHigh
	default:
		return TierMedium
	}
}

// Profile holds the static risk thresholds and the symbol universe for a tier.
// Profiles are immutable lookup data.
type Profile struct {
	Tier             Tier
	MonthlyReturnPct float64
	StopLossPct      float64 // fraction, e.g. 0.08 for 8%
	TakeProfitPct    float64
	MaxPositionPct   float64
	Universe         []string
}

var profiles = map[Tier]Profile{
	TierLow: {
		Tier:             TierLow,
		MonthlyReturnPct: 2.0,
		StopLossPct:      0.05,
		TakeProfitPct:    0.10,
		MaxPositionPct:   0.20,
		Universe:         []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "JPM", "V", "JNJ"},
	},
	TierMedium: {
		Tier:             TierMedium,
		MonthlyReturnPct: 5.0,
		StopLossPct:      0.08,
		TakeProfitPct:    0.15,
		MaxPositionPct:   0.30,
		Universe:         []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "AMD", "NFLX", "DIS"},
	},
	TierHigh: {
		Tier:             TierHigh,
		MonthlyReturnPct: 10.0,
		StopLossPct:      0.15,
		TakeProfitPct:    0.25,
		MaxPositionPct:   0.40,
		Universe:         []string{"TSLA", "NVDA", "AMD", "META", "NFLX", "PLTR", "RIVN", "LCID", "SOFI", "HOOD"},
	},
}

// ProfileFor returns the profile for a tier name. Unknown tiers resolve
// to the MEDIUM profile.
func ProfileFor(tier string) Profile {
	return profiles[ParseTier(tier)]
}

// InUniverse reports whether a symbol is part of the profile's watchlist.
func (p Profile) InUniverse(symbol string) bool {
	for _, s := range p.Universe {
		if s == symbol {
			return true
		}
	}
	return false
}

// ExpectedReturn projects the expected return for an investment held for
// the given number of weeks: monthly return scaled by weeks/4.
func ExpectedReturn(amount float64, tier string, weeks int) (pct, profit float64) {
	p := ProfileFor(tier)
	pct = p.MonthlyReturnPct * float64(weeks) / 4
	profit = amount * pct / 100
	return pct, profit
}
