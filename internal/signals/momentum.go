package signals

import (
	"fmt"
	"math"

	"hermes-trader/internal/errors"
	"hermes-trader/internal/models"
)

// Momentum prediction labels.
const (
	MomentumUp      = "UP"
	MomentumDown    = "DOWN"
	MomentumNeutral = "NEUTRAL"
)

// MomentumSignal scores one day's intraday move and volatility into a
// next-day direction with a confidence grade.
//
// The score accumulates +3/+1 for strong/mild gains, -3/-1 for strong/mild
// losses, and is damped by 20% when the high-low range exceeds 5% of the
// close. Scores of magnitude 2 or more become a directional call with
// confidence 70 + 5*|score| capped at 90; everything else is NEUTRAL at 50.
func MomentumSignal(open, high, low, close float64, volume int64) (models.SignalVerdict, error) {
	if open <= 0 || close <= 0 || high < low {
		return models.SignalVerdict{}, errors.NewSignalError(string(models.SourceMomentum), "",
			errors.Wrapf(errors.ErrInvalidBar, "open=%v high=%v low=%v close=%v", open, high, low, close))
	}

	priceChangePct := (close - open) / open * 100
	volatilityPct := (high - low) / close * 100

	var score float64
	switch {
	case priceChangePct > 2:
		score += 3
	case priceChangePct > 0:
		score += 1
	}
	switch {
	case priceChangePct < -2:
		score -= 3
	case priceChangePct < 0:
		score -= 1
	}

	if volatilityPct > 5 {
		score *= 0.8
	}

	var label string
	var confidence float64
	switch {
	case score >= 2:
		label = MomentumUp
		confidence = math.Min(70+score*5, 90)
	case score <= -2:
		label = MomentumDown
		confidence = math.Min(70+math.Abs(score)*5, 90)
	default:
		label = MomentumNeutral
		confidence = 50
	}

	return models.SignalVerdict{
		Source:     models.SourceMomentum,
		Label:      label,
		Confidence: confidence,
		Rationale: fmt.Sprintf("change %.2f%%, volatility %.2f%%: expect %s with %.0f%% confidence",
			priceChangePct, volatilityPct, label, confidence),
	}, nil
}
