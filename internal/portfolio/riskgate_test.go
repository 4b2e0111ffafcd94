package portfolio

import (
	"strings"
	"testing"

	"hermes-trader/internal/models"
	"hermes-trader/internal/risk"
)

func TestGateStopLoss(t *testing.T) {
	gate := NewGate(risk.ProfileFor("MEDIUM")) // 8% stop, 15% target
	pos := models.Position{Symbol: "AAPL", Quantity: 10, EntryPrice: 100}

	// -9% breaches the 8% stop
	reason, triggered := gate.Check(pos, 91)
	if !triggered {
		t.Fatal("expected stop loss to trigger at -9%")
	}
	if !strings.Contains(reason, "Stop loss") || !strings.Contains(reason, "-9.00%") {
		t.Errorf("reason = %q, want stop loss with -9.00%%", reason)
	}

	// Exactly at the threshold still triggers
	if _, triggered := gate.Check(pos, 92); !triggered {
		t.Error("expected stop loss to trigger exactly at -8%")
	}

	// Inside the band does not
	if reason, triggered := gate.Check(pos, 93); triggered {
		t.Errorf("unexpected trigger at -7%%: %q", reason)
	}
}

func TestGateTakeProfit(t *testing.T) {
	gate := NewGate(risk.ProfileFor("MEDIUM"))
	pos := models.Position{Symbol: "AAPL", Quantity: 10, EntryPrice: 100}

	reason, triggered := gate.Check(pos, 116)
	if !triggered {
		t.Fatal("expected take profit to trigger at +16%")
	}
	if !strings.Contains(reason, "Take profit") {
		t.Errorf("reason = %q, want a take profit message", reason)
	}

	if _, triggered := gate.Check(pos, 115); !triggered {
		t.Error("expected take profit to trigger exactly at +15%")
	}
	if _, triggered := gate.Check(pos, 114); triggered {
		t.Error("unexpected trigger at +14%")
	}
}

func TestGateTiersDiffer(t *testing.T) {
	pos := models.Position{Symbol: "TSLA", Quantity: 1, EntryPrice: 100}

	// -10% breaches MEDIUM's 8% stop but not HIGH's 15%
	if _, triggered := NewGate(risk.ProfileFor("MEDIUM")).Check(pos, 90); !triggered {
		t.Error("MEDIUM gate should trigger at -10%")
	}
	if _, triggered := NewGate(risk.ProfileFor("HIGH")).Check(pos, 90); triggered {
		t.Error("HIGH gate should hold through -10%")
	}
}

func TestGateZeroEntryPrice(t *testing.T) {
	gate := NewGate(risk.ProfileFor("MEDIUM"))
	pos := models.Position{Symbol: "AAPL", Quantity: 10}

	if _, triggered := gate.Check(pos, 50); triggered {
		t.Error("a zero entry price must never trigger")
	}
}
