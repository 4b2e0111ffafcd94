package risk

import "math"

// Strength grades how convinced the aggregated signals are.
type Strength string

const (
	StrengthStrong Strength = "STRONG"
	StrengthNormal Strength = "NORMAL"
	StrengthWeak   Strength = "WEAK"
)

func (s Strength) multiplier() float64 {
	switch s {
	case StrengthStrong:
		return 1.0
	case StrengthNormal:
		return 0.7
	default:
		return 0.5
	}
}

// Size computes the order quantity for a new entry: the profile's maximum
// position fraction of available cash, scaled by signal strength, floored
// to whole shares. Whenever any notional is available at least one share
// is ordered.
func Size(cash float64, p Profile, price float64, strength Strength) (quantity int, notional float64) {
	if price <= 0 {
		return 0, 0
	}
	notional = cash * p.MaxPositionPct * strength.multiplier()
	quantity = int(math.Floor(notional / price))
	if quantity < 1 && notional > 0 {
		quantity = 1
	}
	return quantity, notional
}
