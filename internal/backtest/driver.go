// Package backtest provides the day-by-day simulation driver for a
// multi-signal trading bot over historical daily bars.
package backtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hermes-trader/internal/config"
	"hermes-trader/internal/errors"
	"hermes-trader/internal/logging"
	"hermes-trader/internal/models"
	"hermes-trader/internal/performance"
	"hermes-trader/internal/portfolio"
	"hermes-trader/internal/risk"
	"hermes-trader/internal/signals"
)

// BarSource supplies historical daily bars. Implementations must tolerate
// gaps (weekends, holidays) and return an empty slice rather than an error
// for symbols with no data in range.
type BarSource interface {
	GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.DailyBar, error)
}

// State is the driver's lifecycle state.
type State int

const (
	StateInitialized State = iota
	StateRunning
	StateFinalizing
	StateDone
)

// Driver replays the bot's daily decision process over a date range.
// One driver owns one ledger; instances share no mutable state, so
// independent bots may run concurrently with one driver each.
type Driver struct {
	bot     config.BotConfig
	profile risk.Profile
	bars    BarSource
	agg     *signals.Aggregator
	gate    portfolio.Gate
	tracker *performance.Tracker
	logger  zerolog.Logger
	state   State
}

// New creates a simulation driver for one bot configuration. The tracker
// is optional; pass nil to skip recommendation tracking.
func New(bot config.BotConfig, bars BarSource, tracker *performance.Tracker, logger zerolog.Logger) *Driver {
	profile := risk.ProfileFor(bot.RiskTier)
	toggles := signals.Toggles{
		UsePivot:    bot.UsePivot,
		UseMomentum: bot.UseMomentum,
		UseScreener: bot.UseScreener,
	}
	return &Driver{
		bot:     bot,
		profile: profile,
		bars:    bars,
		agg:     signals.NewAggregator(toggles, profile),
		gate:    portfolio.NewGate(profile),
		tracker: tracker,
		logger:  logging.WithBot(logger, bot.Name),
		state:   StateInitialized,
	}
}

// State returns the driver's current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Profile returns the resolved risk profile.
func (d *Driver) Profile() risk.Profile {
	return d.profile
}

// Run executes the backtest from start to end date inclusive, trading on
// weekdays only. Symbols with no data at all are excluded from the run;
// if no symbol yields any data the run aborts with ErrNoTradingData and
// produces no report.
func (d *Driver) Run(ctx context.Context, start, end time.Time) (*models.BacktestResult, error) {
	days := tradingDays(start, end)
	if len(days) == 0 {
		return nil, errors.Wrap(errors.ErrNoTradingData, "no trading days in range")
	}

	series, err := d.fetchSeries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, errors.Wrap(errors.ErrNoTradingData, "no symbol returned bars")
	}

	symbols := make([]string, 0, len(series))
	for s := range series {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	d.state = StateRunning
	ledger := portfolio.NewLedger(d.bot.InitialCapital, d.logger)
	lastClose := make(map[string]float64)
	var snapshots []models.DailySnapshot

	for _, day := range days {
		dayBars := make(map[string]models.DailyBar)
		for _, symbol := range symbols {
			if bar, ok := series[symbol][dateKey(day)]; ok {
				dayBars[symbol] = bar
				lastClose[symbol] = bar.Close
			}
		}

		// Risk gate first: forced exits complete before any new entries.
		for _, symbol := range ledger.OpenSymbols() {
			bar, ok := dayBars[symbol]
			if !ok {
				continue // no bar today, no trade today
			}
			pos, _ := ledger.Position(symbol)
			if reason, triggered := d.gate.Check(pos, bar.Close); triggered {
				d.forceSell(ledger, symbol, bar.Close, day, reason)
			}
		}

		// Entry scan: symbols already held are never re-evaluated here;
		// their exits happen only via the risk gate or end-of-run closure.
		for _, symbol := range symbols {
			bar, ok := dayBars[symbol]
			if !ok || ledger.Holds(symbol) {
				continue
			}

			decision := d.agg.Evaluate(bar)
			for _, dropErr := range decision.Dropped {
				d.logger.Warn().Err(dropErr).Str("symbol", symbol).Msg("Signal generator dropped")
			}
			for _, v := range decision.Verdicts {
				logging.LogSignal(d.logger, symbol, string(v.Source), v.Label)
			}

			if !decision.ShouldBuy() {
				continue
			}
			quantity, notional := risk.Size(ledger.Cash(), d.profile, bar.Close, decision.Strength)
			if quantity == 0 || notional <= 0 {
				continue
			}
			trade, err := ledger.Buy(symbol, bar.Close, quantity, day, decision.Reason())
			if err != nil {
				// Insufficient funds rejects silently: no ledger mutation.
				d.logger.Debug().Err(err).Str("symbol", symbol).Msg("Buy rejected")
				continue
			}
			if d.tracker != nil {
				d.tracker.Log(day, d.bot.Name, symbol, string(models.ActionBuy),
					trade.Price, 0, 0, performance.OutcomePending)
			}
		}

		positionsValue := ledger.PositionsValue(lastClose)
		snapshot := models.DailySnapshot{
			Date:           day,
			Cash:           ledger.Cash(),
			PositionsValue: positionsValue,
			TotalValue:     ledger.Cash() + positionsValue,
		}
		snapshots = append(snapshots, snapshot)
		logging.LogSnapshot(d.logger, day, snapshot.Cash, snapshot.PositionsValue, snapshot.TotalValue)
	}

	// End of run: close everything at the last known close through the
	// ledger's normal sell path, so the win/loss counters see these exits.
	d.state = StateFinalizing
	endDay := days[len(days)-1]
	for _, symbol := range ledger.OpenSymbols() {
		price, ok := lastClose[symbol]
		if !ok {
			continue
		}
		d.forceSell(ledger, symbol, price, endDay, "End of backtest")
	}

	d.state = StateDone
	return d.buildResult(ledger, snapshots, start, end), nil
}

func (d *Driver) forceSell(ledger *portfolio.Ledger, symbol string, price float64, day time.Time, reason string) {
	trade, err := ledger.Sell(symbol, price, day, reason)
	if err != nil {
		d.logger.Error().Err(err).Str("symbol", symbol).Msg("Forced sell rejected")
		return
	}
	if d.tracker != nil {
		outcome := performance.OutcomeLoss
		if trade.RealizedPnL > 0 {
			outcome = performance.OutcomeWin
		}
		d.tracker.Resolve(d.bot.Name, symbol, price, outcome)
	}
}

func (d *Driver) buildResult(ledger *portfolio.Ledger, snapshots []models.DailySnapshot, start, end time.Time) *models.BacktestResult {
	total, winning, losing := ledger.Counters()

	result := &models.BacktestResult{
		InitialCapital: d.bot.InitialCapital,
		FinalValue:     ledger.Cash(),
		TotalTrades:    total,
		WinningTrades:  winning,
		LosingTrades:   losing,
		Trades:         ledger.Trades(),
		DailyValues:    snapshots,
		StartDate:      start,
		EndDate:        end,
	}
	result.TotalReturn = result.FinalValue - result.InitialCapital
	if result.InitialCapital > 0 {
		result.ROI = result.TotalReturn / result.InitialCapital * 100
	}
	if total > 0 {
		result.WinRate = float64(winning) / float64(total) * 100
	}
	return result
}

// fetchSeries retrieves each universe symbol's bars. Fetches run in
// parallel, but results are joined into a per-symbol index before the
// simulation starts, so the day loop stays deterministic. A symbol whose
// fetch fails or returns nothing is excluded from the run and logged.
func (d *Driver) fetchSeries(ctx context.Context, start, end time.Time) (map[string]map[time.Time]models.DailyBar, error) {
	type fetched struct {
		symbol string
		bars   []models.DailyBar
		err    error
	}

	results := make([]fetched, len(d.profile.Universe))
	var wg sync.WaitGroup
	for i, symbol := range d.profile.Universe {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			bars, err := d.bars.GetBars(ctx, symbol, start, end)
			results[i] = fetched{symbol: symbol, bars: bars, err: err}
		}(i, symbol)
	}
	wg.Wait()

	series := make(map[string]map[time.Time]models.DailyBar)
	for _, r := range results {
		if r.err != nil {
			d.logger.Warn().Err(errors.NewDataError(r.symbol, "fetching bars", r.err)).
				Msg("Symbol excluded from run")
			continue
		}
		if len(r.bars) == 0 {
			d.logger.Warn().Str("symbol", r.symbol).Msg("No data for symbol, excluded from run")
			continue
		}
		index := make(map[time.Time]models.DailyBar, len(r.bars))
		for _, bar := range r.bars {
			index[dateKey(bar.Date)] = bar
		}
		series[r.symbol] = index
	}
	return series, nil
}

// tradingDays returns the weekdays between start and end, inclusive.
func tradingDays(start, end time.Time) []time.Time {
	var days []time.Time
	for day := dateKey(start); !day.After(dateKey(end)); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, day)
		}
	}
	return days
}

// dateKey normalizes a timestamp to its UTC calendar date.
func dateKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
