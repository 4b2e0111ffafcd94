package performance

import (
	"math"
	"testing"
	"time"
)

var testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestTrackerLogAndResolve(t *testing.T) {
	tracker := NewTracker()

	e := tracker.Log(testDate, "pivot", "AAPL", "BUY", 100, 110, 0, OutcomePending)
	if e.Outcome != OutcomePending {
		t.Errorf("outcome = %s, want %s", e.Outcome, OutcomePending)
	}
	if e.ReturnPct != 0 {
		t.Errorf("return = %v, want 0 while pending", e.ReturnPct)
	}

	if !tracker.Resolve("pivot", "AAPL", 110, OutcomeWin) {
		t.Fatal("Resolve should find the pending entry")
	}
	entries := tracker.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Outcome != OutcomeWin {
		t.Errorf("outcome = %s, want %s", entries[0].Outcome, OutcomeWin)
	}
	if math.Abs(entries[0].ReturnPct-10) > 1e-9 {
		t.Errorf("return = %v, want 10", entries[0].ReturnPct)
	}

	// Nothing pending is left to resolve.
	if tracker.Resolve("pivot", "AAPL", 120, OutcomeWin) {
		t.Error("Resolve should fail with no pending entry")
	}
}

func TestTrackerResolveOldestFirst(t *testing.T) {
	tracker := NewTracker()
	tracker.Log(testDate, "pivot", "AAPL", "BUY", 100, 0, 0, OutcomePending)
	tracker.Log(testDate.AddDate(0, 0, 1), "pivot", "AAPL", "BUY", 200, 0, 0, OutcomePending)

	tracker.Resolve("pivot", "AAPL", 110, OutcomeWin)

	entries := tracker.Entries()
	if entries[0].Outcome != OutcomeWin {
		t.Error("the oldest pending entry should resolve first")
	}
	if entries[1].Outcome != OutcomePending {
		t.Error("the newer entry should stay pending")
	}
}

func TestTrackerResolveMatchesStrategyAndSymbol(t *testing.T) {
	tracker := NewTracker()
	tracker.Log(testDate, "pivot", "AAPL", "BUY", 100, 0, 0, OutcomePending)
	tracker.Log(testDate, "momentum", "AAPL", "BUY", 100, 0, 0, OutcomePending)

	if tracker.Resolve("momentum", "TSLA", 90, OutcomeLoss) {
		t.Error("Resolve must not match a different symbol")
	}
	if !tracker.Resolve("momentum", "AAPL", 90, OutcomeLoss) {
		t.Fatal("Resolve should match on both strategy and symbol")
	}
	entries := tracker.Entries()
	if entries[0].Outcome != OutcomePending {
		t.Error("the pivot entry must be untouched")
	}
	if entries[1].Outcome != OutcomeLoss {
		t.Error("the momentum entry should be resolved")
	}
}

func TestTrackerSummarize(t *testing.T) {
	tracker := NewTracker()
	// Completed: +10% win and -5% loss on pivot, +20% win on momentum.
	tracker.Log(testDate, "pivot", "AAPL", "BUY", 100, 0, 110, OutcomeWin)
	tracker.Log(testDate, "pivot", "TSLA", "BUY", 100, 0, 95, OutcomeLoss)
	tracker.Log(testDate, "momentum", "NVDA", "BUY", 100, 0, 120, OutcomeWin)
	// Pending entries are excluded from the summary.
	tracker.Log(testDate, "pivot", "MSFT", "BUY", 100, 0, 0, OutcomePending)

	s := tracker.Summarize()
	if s.TotalTrades != 3 || s.Wins != 2 || s.Losses != 1 {
		t.Errorf("summary = %d trades %d/%d, want 3 trades 2/1", s.TotalTrades, s.Wins, s.Losses)
	}
	if math.Abs(s.WinRate-66.666666666666666) > 1e-6 {
		t.Errorf("win rate = %v, want 66.67", s.WinRate)
	}
	if math.Abs(s.AvgReturnPct-25.0/3) > 1e-9 {
		t.Errorf("avg return = %v, want %v", s.AvgReturnPct, 25.0/3)
	}

	pivot := s.ByStrategy["pivot"]
	if pivot.Trades != 2 || pivot.Wins != 1 {
		t.Errorf("pivot stats = %+v, want 2 trades 1 win", pivot)
	}
	if math.Abs(pivot.WinRate-50) > 1e-9 {
		t.Errorf("pivot win rate = %v, want 50", pivot.WinRate)
	}
	if math.Abs(pivot.AvgReturnPct-2.5) > 1e-9 {
		t.Errorf("pivot avg return = %v, want 2.5", pivot.AvgReturnPct)
	}

	momentum := s.ByStrategy["momentum"]
	if momentum.Trades != 1 || momentum.Wins != 1 || math.Abs(momentum.AvgReturnPct-20) > 1e-9 {
		t.Errorf("momentum stats = %+v, want one +20%% win", momentum)
	}
}

func TestTrackerSummarizeEmpty(t *testing.T) {
	s := NewTracker().Summarize()
	if s.TotalTrades != 0 || s.WinRate != 0 || s.AvgReturnPct != 0 {
		t.Errorf("empty summary = %+v, want all zeros", s)
	}
}
