package signals

import (
	"fmt"
	"time"

	"hermes-trader/internal/errors"
)

// EventType classifies an index reconstitution event.
type EventType string

const (
	EventAdd    EventType = "ADD"
	EventDelete EventType = "DELETE"
)

// Index event actions.
const (
	EventActionBuy        = "BUY"
	EventActionSell       = "SELL"
	EventActionHold       = "HOLD"
	EventActionAvoid      = "AVOID"
	EventActionShort      = "SHORT"
	EventActionCover      = "COVER"
	EventActionBuyRebound = "BUY_REBOUND"
)

// EventAnalysis is the result of analyzing an index reconstitution event.
// This strategy needs a corporate-action feed, so it is only available as
// a direct analysis call and is never part of the automatic daily scan.
type EventAnalysis struct {
	Symbol            string
	Index             string
	EventType         EventType
	Action            string
	Rationale         string
	CurrentPrice      float64
	TargetPrice       float64 // zero when no target applies
	ExpectedReturnPct float64
	DaysToEffective   int
	PositionSizePct   int
	RiskRating        string
}

// daysBetween returns whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// AnalyzeIndexEvent evaluates a pending index addition or deletion and
// recommends a positioning action relative to the announcement and
// effective dates. An unknown event type is an input error.
func AnalyzeIndexEvent(symbol, index string, eventType EventType, announcement, effective, today time.Time, currentPrice float64) (*EventAnalysis, error) {
	daysToEffective := daysBetween(today, effective)
	daysSinceAnnouncement := daysBetween(announcement, today)

	a := &EventAnalysis{
		Symbol:          symbol,
		Index:           index,
		EventType:       eventType,
		CurrentPrice:    currentPrice,
		DaysToEffective: daysToEffective,
		RiskRating:      "MEDIUM",
	}

	switch eventType {
	case EventAdd:
		a.ExpectedReturnPct = 5.0 // average gain on additions

		switch {
		case daysSinceAnnouncement == 0:
			a.Action = EventActionBuy
			a.Rationale = fmt.Sprintf("Just announced. Index funds must buy %s. Expected %.0f%% gain.", symbol, a.ExpectedReturnPct)
			a.TargetPrice = currentPrice * 1.05
		case daysToEffective > 0 && daysToEffective <= 5:
			if daysToEffective > 2 {
				a.Action = EventActionHold
				a.Rationale = "Hold for final run-up"
			} else {
				a.Action = EventActionSell
				a.Rationale = "Take profits"
			}
			a.TargetPrice = currentPrice * 1.02
		case daysToEffective < 0:
			a.Action = EventActionAvoid
			a.Rationale = "Index rebalancing complete. Price may revert."
		default:
			a.Action = EventActionBuy
			a.Rationale = fmt.Sprintf("In announcement window. %d days until effective.", daysToEffective)
			a.TargetPrice = currentPrice * 1.05
		}

	case EventDelete:
		a.ExpectedReturnPct = -6.0 // average drop on deletions

		switch {
		case daysSinceAnnouncement == 0:
			if daysToEffective > 5 {
				a.Action = EventActionShort
			} else {
				a.Action = EventActionAvoid
			}
			a.Rationale = "Deletion announced. Forced selling expected. Target 6% drop."
			a.TargetPrice = currentPrice * 0.94
		case daysToEffective < 0:
			a.Action = EventActionBuyRebound
			a.Rationale = "Deletion complete. Oversold bounce possible."
			a.TargetPrice = currentPrice * 1.05
		default:
			if daysToEffective > 3 {
				a.Action = EventActionShort
				a.Rationale = "Continue short"
				a.TargetPrice = currentPrice * 0.94
			} else {
				a.Action = EventActionCover
				a.Rationale = "Cover shorts"
			}
		}

	default:
		return nil, errors.Wrapf(errors.ErrUnknownEventType, "%q", eventType)
	}

	// Position-size tier. Computed for the report only: the daily loop's
	// sizer never consumes it.
	switch {
	case daysToEffective > 15:
		a.PositionSizePct = 3
	case daysToEffective > 7:
		a.PositionSizePct = 5
	default:
		a.PositionSizePct = 2
	}

	return a, nil
}
