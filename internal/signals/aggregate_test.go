package signals

import (
	"strings"
	"testing"

	"hermes-trader/internal/models"
	"hermes-trader/internal/risk"
)

var allToggles = Toggles{UsePivot: true, UseMomentum: true, UseScreener: true}

func TestEvaluateStrongBuy(t *testing.T) {
	agg := NewAggregator(allToggles, risk.ProfileFor("MEDIUM"))

	// pivot HOLD_BULLISH (hold 1), momentum UP 85 (buy 2), screener PASS (buy 1)
	d := agg.Evaluate(models.DailyBar{
		Symbol: "AAPL", Open: 100, High: 103.5, Low: 99.5, Close: 103, Volume: 1_000_000,
	})

	if d.Scores != (Scores{Buy: 3, Sell: 0, Hold: 1}) {
		t.Errorf("scores = %+v, want buy=3 sell=0 hold=1", d.Scores)
	}
	if d.Action != ActionBuy {
		t.Errorf("action = %s, want %s", d.Action, ActionBuy)
	}
	if d.Strength != risk.StrengthStrong {
		t.Errorf("strength = %s, want %s", d.Strength, risk.StrengthStrong)
	}
	if !d.ShouldBuy() {
		t.Error("ShouldBuy should clear with buy score 3")
	}
	if len(d.Dropped) != 0 {
		t.Errorf("unexpected dropped generators: %v", d.Dropped)
	}
}

func TestEvaluateTieResolvesToHold(t *testing.T) {
	agg := NewAggregator(allToggles, risk.ProfileFor("MEDIUM"))

	// pivot HOLD_BEARISH (hold 1), momentum DOWN 82 (sell 1), screener PASS (buy 1)
	d := agg.Evaluate(models.DailyBar{
		Symbol: "AAPL", Open: 100, High: 100, Low: 93, Close: 94, Volume: 1_000_000,
	})

	if d.Scores != (Scores{Buy: 1, Sell: 1, Hold: 1}) {
		t.Errorf("scores = %+v, want a three-way tie", d.Scores)
	}
	if d.Action != ActionHold {
		t.Errorf("action = %s, want %s on a tie", d.Action, ActionHold)
	}
	if d.ShouldBuy() {
		t.Error("ShouldBuy should not clear on a HOLD decision")
	}
	if d.ShouldSell(true) {
		t.Error("ShouldSell should not clear on a HOLD decision")
	}
}

func TestEvaluateSell(t *testing.T) {
	agg := NewAggregator(Toggles{UsePivot: true, UseMomentum: true}, risk.ProfileFor("MEDIUM"))

	// pivot STRONG_SELL (sell 2), momentum DOWN 85 (sell 1)
	d := agg.Evaluate(models.DailyBar{
		Symbol: "AAPL", Open: 100, High: 100, Low: 98, Close: 95, Volume: 1_000_000,
	})

	if d.Scores.Sell != 3 {
		t.Errorf("sell score = %d, want 3", d.Scores.Sell)
	}
	if d.Action != ActionSell {
		t.Errorf("action = %s, want %s", d.Action, ActionSell)
	}
	if !d.ShouldSell(true) {
		t.Error("ShouldSell should clear for a held symbol")
	}
	if d.ShouldSell(false) {
		t.Error("ShouldSell must not clear without an open position")
	}
}

func TestEvaluateDropsFailedGenerators(t *testing.T) {
	agg := NewAggregator(allToggles, risk.ProfileFor("MEDIUM"))

	// high < low fails both the pivot and momentum generators; the
	// screener keeps contributing.
	d := agg.Evaluate(models.DailyBar{
		Symbol: "AAPL", Open: 100, High: 90, Low: 100, Close: 95, Volume: 1_000_000,
	})

	if len(d.Dropped) != 2 {
		t.Fatalf("dropped = %d generators, want 2", len(d.Dropped))
	}
	if d.Scores != (Scores{Buy: 1}) {
		t.Errorf("scores = %+v, want only the screener's buy vote", d.Scores)
	}
	if d.ShouldBuy() {
		t.Error("a single buy vote must not clear the execution gate")
	}
}

func TestEvaluateScreenerSkipsNonMembers(t *testing.T) {
	agg := NewAggregator(Toggles{UseScreener: true}, risk.ProfileFor("MEDIUM"))

	d := agg.Evaluate(models.DailyBar{Symbol: "XYZ", Open: 100, High: 101, Low: 99, Close: 100})
	if d.Scores != (Scores{}) {
		t.Errorf("scores = %+v, want zero for a non-member", d.Scores)
	}
	if d.Action != ActionHold {
		t.Errorf("action = %s, want %s", d.Action, ActionHold)
	}
}

func TestDecisionReason(t *testing.T) {
	agg := NewAggregator(allToggles, risk.ProfileFor("MEDIUM"))
	d := agg.Evaluate(models.DailyBar{
		Symbol: "AAPL", Open: 100, High: 103.5, Low: 99.5, Close: 103, Volume: 1_000_000,
	})

	reason := d.Reason()
	for _, want := range []string{"PIVOT(HOLD_BULLISH)", "MOMENTUM(UP)", "SCREENER(PASS)"} {
		if !strings.Contains(reason, want) {
			t.Errorf("reason %q missing %q", reason, want)
		}
	}
}
