package backtest

import (
	"fmt"
	"strings"

	"hermes-trader/internal/models"
	"hermes-trader/internal/risk"
	"hermes-trader/pkg/utils"
)

const reportRule = "================================================================================"

// RenderReport formats a backtest result as a plain-text report with the
// capital summary, trading statistics, risk settings and the most recent
// trades.
func RenderReport(result *models.BacktestResult, profile risk.Profile) string {
	var sb strings.Builder

	sb.WriteString(reportRule + "\n")
	sb.WriteString("BACKTEST RESULTS\n")
	sb.WriteString(reportRule + "\n")
	fmt.Fprintf(&sb, "Initial Capital:     %15s\n", utils.FormatUSD(result.InitialCapital))
	fmt.Fprintf(&sb, "Final Value:         %15s\n", utils.FormatUSD(result.FinalValue))
	fmt.Fprintf(&sb, "Total Return:        %15s\n", utils.FormatPnL(result.TotalReturn))
	fmt.Fprintf(&sb, "ROI:                 %15s\n", utils.FormatPercent(result.ROI))

	sb.WriteString("\nTrading Statistics:\n")
	fmt.Fprintf(&sb, "  Total Trades:      %15d\n", result.TotalTrades)
	fmt.Fprintf(&sb, "  Winning Trades:    %15d\n", result.WinningTrades)
	fmt.Fprintf(&sb, "  Losing Trades:     %15d\n", result.LosingTrades)
	fmt.Fprintf(&sb, "  Win Rate:          %14.2f%%\n", result.WinRate)

	sb.WriteString("\nRisk Settings:\n")
	fmt.Fprintf(&sb, "  Stop Loss:         %14.1f%%\n", profile.StopLossPct*100)
	fmt.Fprintf(&sb, "  Take Profit:       %14.1f%%\n", profile.TakeProfitPct*100)
	fmt.Fprintf(&sb, "  Max Position Size: %14.1f%%\n", profile.MaxPositionPct*100)
	sb.WriteString(reportRule + "\n")

	if len(result.Trades) > 0 {
		trades := result.Trades
		if len(trades) > 10 {
			trades = trades[len(trades)-10:]
		}
		fmt.Fprintf(&sb, "\nRecent Trades (showing last %d):\n", len(trades))
		for _, trade := range trades {
			date := trade.Date.Format("2006-01-02")
			if trade.Action == models.ActionBuy {
				fmt.Fprintf(&sb, "%s | BUY  %-6s | %3d shares @ %9s | Cost: %s | %s\n",
					date, trade.Symbol, trade.Quantity, utils.FormatUSD(trade.Price),
					utils.FormatUSD(-trade.CashDelta), trade.Reason)
			} else {
				fmt.Fprintf(&sb, "%s | SELL %-6s | %3d shares @ %9s | P/L: %10s | %s\n",
					date, trade.Symbol, trade.Quantity, utils.FormatUSD(trade.Price),
					utils.FormatPnL(trade.RealizedPnL), trade.Reason)
			}
		}
	}

	return sb.String()
}
