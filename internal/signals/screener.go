package signals

import (
	"fmt"

	"hermes-trader/internal/models"
	"hermes-trader/internal/risk"
)

// ScreenerPass is the only label the membership screener emits.
const ScreenerPass = "PASS"

// ScreenerMembership reports whether a symbol belongs to the risk profile's
// watchlist. Non-members produce no verdict at all: membership never
// contributes a negative score.
func ScreenerMembership(symbol string, p risk.Profile) (models.SignalVerdict, bool) {
	if !p.InUniverse(symbol) {
		return models.SignalVerdict{}, false
	}
	return models.SignalVerdict{
		Source:    models.SourceScreener,
		Label:     ScreenerPass,
		Rationale: "In watchlist",
	}, true
}

// Candidate recommendations for index-addition screening.
const (
	CandidateStrong    = "STRONG_CANDIDATE"
	CandidatePotential = "POTENTIAL_CANDIDATE"
	CandidateUnlikely  = "UNLIKELY"
)

// CandidateReport is the result of screening a stock for potential index
// addition. This is a standalone analysis; it does not participate in the
// daily scan.
type CandidateReport struct {
	Recommendation string
	Score          int
	Reasons        []string
	MarketCap      float64
	DailyVolume    int64
}

// ScreenForIndexAddition scores a stock against the index-inclusion
// criteria: market capitalization, liquidity, and sector.
func ScreenForIndexAddition(marketCap float64, volume int64, sector string) CandidateReport {
	report := CandidateReport{
		MarketCap:   marketCap,
		DailyVolume: volume,
	}

	// Market cap criterion (S&P 500 threshold)
	switch {
	case marketCap >= 14_500_000_000:
		report.Score += 40
		report.Reasons = append(report.Reasons, "Market cap meets S&P 500 threshold")
	case marketCap >= 8_000_000_000:
		report.Score += 25
		report.Reasons = append(report.Reasons, "Market cap approaching S&P 500 threshold")
	}

	// Liquidity criterion
	switch {
	case volume >= 1_000_000:
		report.Score += 30
		report.Reasons = append(report.Reasons, "High trading volume (good liquidity)")
	case volume >= 500_000:
		report.Score += 15
		report.Reasons = append(report.Reasons, "Moderate trading volume")
	}

	// Sector bonus
	switch sector {
	case "Technology", "Healthcare", "Finance":
		report.Score += 10
		report.Reasons = append(report.Reasons, fmt.Sprintf("In high-growth sector (%s)", sector))
	}

	switch {
	case report.Score >= 70:
		report.Recommendation = CandidateStrong
	case report.Score >= 50:
		report.Recommendation = CandidatePotential
	default:
		report.Recommendation = CandidateUnlikely
	}

	return report
}
