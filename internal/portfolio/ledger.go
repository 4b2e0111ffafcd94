// Package portfolio owns cash, open positions and the trade history of a
// single bot, and enforces the stop-loss/take-profit gate.
package portfolio

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"hermes-trader/internal/errors"
	"hermes-trader/internal/logging"
	"hermes-trader/internal/models"
)

// Ledger tracks cash, open positions and the realized trade history.
// A ledger has exactly one writer: the simulation driver that owns it.
type Ledger struct {
	cash      float64
	positions map[string]*models.Position
	trades    []models.Trade

	totalTrades   int
	winningTrades int
	losingTrades  int

	logger zerolog.Logger
}

// NewLedger creates a ledger funded with the initial capital.
func NewLedger(initialCash float64, logger zerolog.Logger) *Ledger {
	return &Ledger{
		cash:      initialCash,
		positions: make(map[string]*models.Position),
		logger:    logger,
	}
}

// Cash returns the available cash.
func (l *Ledger) Cash() float64 {
	return l.cash
}

// Position returns the open position for a symbol, if any.
func (l *Ledger) Position(symbol string) (models.Position, bool) {
	p, ok := l.positions[symbol]
	if !ok {
		return models.Position{}, false
	}
	return *p, true
}

// Holds reports whether a symbol currently has an open position.
func (l *Ledger) Holds(symbol string) bool {
	_, ok := l.positions[symbol]
	return ok
}

// OpenSymbols returns the symbols with open positions in sorted order,
// so that callers iterate deterministically.
func (l *Ledger) OpenSymbols() []string {
	symbols := make([]string, 0, len(l.positions))
	for s := range l.positions {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Trades returns the ordered trade history.
func (l *Ledger) Trades() []models.Trade {
	out := make([]models.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Counters returns the trade counters: total, winning, losing.
func (l *Ledger) Counters() (total, winning, losing int) {
	return l.totalTrades, l.winningTrades, l.losingTrades
}

// PositionsValue values the open positions at the given prices. Symbols
// without a quote contribute nothing.
func (l *Ledger) PositionsValue(prices map[string]float64) float64 {
	var value float64
	for symbol, pos := range l.positions {
		if price, ok := prices[symbol]; ok {
			value += float64(pos.Quantity) * price
		}
	}
	return value
}

// Buy executes a buy order for quantity shares at price. The order is
// rejected with ErrInsufficientFunds, leaving no state change, when its
// cost exceeds available cash. A repeat buy of an open symbol accumulates
// quantity and recomputes the weighted-average entry price.
func (l *Ledger) Buy(symbol string, price float64, quantity int, date time.Time, reason string) (*models.Trade, error) {
	if quantity <= 0 {
		return nil, errors.NewValidationError("quantity", quantity, "must be positive")
	}
	cost := float64(quantity) * price
	if cost > l.cash {
		return nil, errors.Wrapf(errors.ErrInsufficientFunds, "cost %.2f exceeds cash %.2f", cost, l.cash)
	}

	l.cash -= cost

	if pos, ok := l.positions[symbol]; ok {
		totalQty := pos.Quantity + quantity
		pos.EntryPrice = (float64(pos.Quantity)*pos.EntryPrice + float64(quantity)*price) / float64(totalQty)
		pos.Quantity = totalQty
		pos.EntryDate = date
	} else {
		l.positions[symbol] = &models.Position{
			Symbol:     symbol,
			Quantity:   quantity,
			EntryPrice: price,
			EntryDate:  date,
		}
	}

	trade := models.Trade{
		Date:      date,
		Symbol:    symbol,
		Action:    models.ActionBuy,
		Quantity:  quantity,
		Price:     price,
		CashDelta: -cost,
		Reason:    reason,
	}
	l.trades = append(l.trades, trade)
	l.totalTrades++

	logging.LogTrade(l.logger, symbol, string(models.ActionBuy), quantity, price, reason)
	return &l.trades[len(l.trades)-1], nil
}

// Sell closes the full open position of a symbol at price. The order is
// rejected with ErrNoOpenPosition when the symbol is not held. Realized
// P&L is recorded on the trade and feeds the win/loss counters.
func (l *Ledger) Sell(symbol string, price float64, date time.Time, reason string) (*models.Trade, error) {
	pos, ok := l.positions[symbol]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNoOpenPosition, "%s", symbol)
	}

	quantity := pos.Quantity
	proceeds := float64(quantity) * price
	realized := proceeds - float64(quantity)*pos.EntryPrice

	l.cash += proceeds
	delete(l.positions, symbol)

	trade := models.Trade{
		Date:        date,
		Symbol:      symbol,
		Action:      models.ActionSell,
		Quantity:    quantity,
		Price:       price,
		CashDelta:   proceeds,
		Reason:      reason,
		RealizedPnL: realized,
	}
	l.trades = append(l.trades, trade)
	l.totalTrades++
	if realized > 0 {
		l.winningTrades++
	} else {
		l.losingTrades++
	}

	logging.LogTrade(l.logger, symbol, string(models.ActionSell), quantity, price, reason)
	return &l.trades[len(l.trades)-1], nil
}
