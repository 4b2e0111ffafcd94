package signals

import (
	"fmt"
	"strings"

	"hermes-trader/internal/models"
	"hermes-trader/internal/risk"
)

// Action is the aggregated daily decision for one symbol.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Toggles selects which generators participate in the daily scan.
// The index-event heuristic is deliberately absent: it requires a
// corporate-action feed and is only available as a direct analysis call.
type Toggles struct {
	UsePivot    bool
	UseMomentum bool
	UseScreener bool
}

// Scores accumulates the buy/sell/hold votes across generators.
type Scores struct {
	Buy  int
	Sell int
	Hold int
}

// Decision is the aggregated outcome of one symbol's daily scan.
type Decision struct {
	Symbol   string
	Action   Action
	Scores   Scores
	Strength risk.Strength
	Verdicts []models.SignalVerdict
	Dropped  []error // generators excluded after a computation error
}

// Aggregator combines enabled generators' verdicts into a trading decision.
type Aggregator struct {
	toggles Toggles
	profile risk.Profile
}

// NewAggregator creates an aggregator for the given feature toggles and
// risk profile.
func NewAggregator(t Toggles, p risk.Profile) *Aggregator {
	return &Aggregator{toggles: t, profile: p}
}

// Evaluate runs the enabled generators over one day's bar and scores their
// verdicts. A generator that fails is dropped from the aggregation and the
// scan continues with the rest.
func (a *Aggregator) Evaluate(bar models.DailyBar) Decision {
	d := Decision{Symbol: bar.Symbol}

	if a.toggles.UsePivot {
		verdict, err := PivotSignal(bar.High, bar.Low, bar.Close)
		if err != nil {
			d.Dropped = append(d.Dropped, err)
		} else {
			d.Verdicts = append(d.Verdicts, verdict)
			switch verdict.Label {
			case PivotStrongBuy:
				d.Scores.Buy += 2
			case PivotBuy:
				d.Scores.Buy++
			case PivotStrongSell:
				d.Scores.Sell += 2
			case PivotSell:
				d.Scores.Sell++
			default:
				d.Scores.Hold++
			}
		}
	}

	if a.toggles.UseMomentum {
		verdict, err := MomentumSignal(bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
		if err != nil {
			d.Dropped = append(d.Dropped, err)
		} else {
			d.Verdicts = append(d.Verdicts, verdict)
			switch {
			case verdict.Label == MomentumUp && verdict.Confidence >= 70:
				d.Scores.Buy += 2
			case verdict.Label == MomentumDown && verdict.Confidence >= 70:
				d.Scores.Sell++
			}
		}
	}

	if a.toggles.UseScreener {
		if verdict, ok := ScreenerMembership(bar.Symbol, a.profile); ok {
			d.Verdicts = append(d.Verdicts, verdict)
			d.Scores.Buy++
		}
	}

	// Ties resolve by the fixed priority HOLD > SELL > BUY.
	d.Action = ActionHold
	best := d.Scores.Hold
	if d.Scores.Sell > best {
		d.Action = ActionSell
		best = d.Scores.Sell
	}
	if d.Scores.Buy > best {
		d.Action = ActionBuy
	}

	d.Strength = risk.StrengthNormal
	if d.Scores.Buy >= 3 {
		d.Strength = risk.StrengthStrong
	}

	return d
}

// ShouldBuy reports whether a BUY decision clears the execution gate.
func (d Decision) ShouldBuy() bool {
	return d.Action == ActionBuy && d.Scores.Buy >= 2
}

// ShouldSell reports whether a SELL decision clears the execution gate for
// a currently held position.
func (d Decision) ShouldSell(held bool) bool {
	return d.Action == ActionSell && d.Scores.Sell >= 2 && held
}

// Reason renders the contributing verdicts into a trade reason string.
func (d Decision) Reason() string {
	parts := make([]string, 0, len(d.Verdicts))
	for _, v := range d.Verdicts {
		parts = append(parts, fmt.Sprintf("%s(%s)", v.Source, v.Label))
	}
	return "Signals: " + strings.Join(parts, ", ")
}
