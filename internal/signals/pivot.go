// Package signals provides the rule-based signal generators and their
// aggregation into a daily trading decision.
package signals

import (
	"fmt"

	"hermes-trader/internal/errors"
	"hermes-trader/internal/models"
)

// Pivot signal labels.
const (
	PivotStrongBuy   = "STRONG_BUY"
	PivotBuy         = "BUY"
	PivotHoldBullish = "HOLD_BULLISH"
	PivotHoldBearish = "HOLD_BEARISH"
	PivotSell        = "SELL"
	PivotStrongSell  = "STRONG_SELL"
)

// PivotLevels holds the pivot point and its support/resistance bands.
// Values are unrounded; rounding is applied for display only.
type PivotLevels struct {
	Pivot       float64
	Support1    float64
	Support2    float64
	Support3    float64
	Resistance1 float64
	Resistance2 float64
	Resistance3 float64
}

// CalcPivotLevels computes the classic floor-trader pivot levels from one
// day's high, low and close.
func CalcPivotLevels(high, low, close float64) PivotLevels {
	pivot := (high + low + close) / 3
	return PivotLevels{
		Pivot:       pivot,
		Support1:    2*pivot - high,
		Support2:    pivot - (high - low),
		Support3:    low - 2*(high-pivot),
		Resistance1: 2*pivot - low,
		Resistance2: pivot + (high - low),
		Resistance3: high + 2*(pivot-low),
	}
}

// PivotSignal classifies the close against the pivot bands derived from
// the same day's high, low and close.
func PivotSignal(high, low, close float64) (models.SignalVerdict, error) {
	if high < low || close <= 0 {
		return models.SignalVerdict{}, errors.NewSignalError(string(models.SourcePivot), "",
			errors.Wrapf(errors.ErrInvalidBar, "high=%v low=%v close=%v", high, low, close))
	}

	pp := CalcPivotLevels(high, low, close)
	label, rationale := pp.Classify(close)

	return models.SignalVerdict{
		Source:    models.SourcePivot,
		Label:     label,
		Rationale: rationale,
	}, nil
}

// Classify places a price within the pivot bands, top-down, first match
// wins. Comparisons use unrounded levels; the rationale rounds for display.
func (pp PivotLevels) Classify(price float64) (label, rationale string) {
	switch {
	case price > pp.Resistance2:
		return PivotStrongBuy, fmt.Sprintf("Price $%.2f broke above R2 ($%.2f)", price, pp.Resistance2)
	case price > pp.Resistance1:
		return PivotBuy, fmt.Sprintf("Price $%.2f above R1 ($%.2f)", price, pp.Resistance1)
	case price >= pp.Support1 && price > pp.Pivot:
		return PivotHoldBullish, fmt.Sprintf("Price $%.2f above pivot ($%.2f)", price, pp.Pivot)
	case price >= pp.Support1:
		return PivotHoldBearish, fmt.Sprintf("Price $%.2f below pivot ($%.2f)", price, pp.Pivot)
	case price > pp.Support2:
		return PivotSell, fmt.Sprintf("Price $%.2f below S1 ($%.2f)", price, pp.Support1)
	default:
		return PivotStrongSell, fmt.Sprintf("Price $%.2f broke below S2 ($%.2f)", price, pp.Support2)
	}
}
