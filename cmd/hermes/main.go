// Command hermes runs the multi-signal trading bot backtester.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hermes-trader/internal/backtest"
	"hermes-trader/internal/config"
	"hermes-trader/internal/errors"
	"hermes-trader/internal/logging"
	"hermes-trader/internal/performance"
	"hermes-trader/internal/risk"
	"hermes-trader/internal/signals"
	"hermes-trader/internal/store"
)

const dateLayout = "2006-01-02"

var (
	flagConfigDir string
	flagDBPath    string
	flagRisk      string
	flagCapital   float64
	flagStart     string
	flagEnd       string
	flagName      string
	flagSave      bool
)

func main() {
	root := &cobra.Command{
		Use:   "hermes",
		Short: "Rule-based multi-signal trading bot backtester",
	}
	root.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory")
	root.PersistentFlags().StringVar(&flagDBPath, "db", "", "path to the SQLite database")

	root.AddCommand(newBacktestCmd(), newAnalyzeEventCmd(), newScreenCmd(), newProjectCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfigDir)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Store.Path = flagDBPath
	}
	return cfg, nil
}

func newBacktestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay the bot's daily decision process over historical bars",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if flagRisk != "" {
				cfg.Bot.RiskTier = flagRisk
			}
			if flagCapital > 0 {
				cfg.Bot.InitialCapital = flagCapital
			}
			if flagName != "" {
				cfg.Bot.Name = flagName
			}

			end := time.Now().UTC()
			start := end.AddDate(0, 0, -7)
			if flagEnd != "" {
				if end, err = time.Parse(dateLayout, flagEnd); err != nil {
					return fmt.Errorf("parsing --end: %w", err)
				}
				start = end.AddDate(0, 0, -7)
			}
			if flagStart != "" {
				if start, err = time.Parse(dateLayout, flagStart); err != nil {
					return fmt.Errorf("parsing --start: %w", err)
				}
			}

			logger := logging.NewLoggerWithConfig(cfg.LogConfig())
			ctx := logging.WithLogger(context.Background(), logger)

			db, err := store.NewSQLiteStore(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			tracker := performance.NewTracker()
			driver := backtest.New(cfg.Bot, db, tracker, logger)

			result, err := driver.Run(ctx, start, end)
			if err != nil {
				if errors.Is(err, errors.ErrNoTradingData) {
					fmt.Println("No data available: no trades generated.")
					return nil
				}
				return err
			}

			fmt.Print(backtest.RenderReport(result, driver.Profile()))

			if flagSave {
				botID, err := db.SaveBot(ctx, cfg.Bot)
				if err != nil {
					return err
				}
				if err := db.SaveResult(ctx, botID, result); err != nil {
					return err
				}
				fmt.Printf("\nSaved result for bot %d\n", botID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagRisk, "risk", "", "risk tier: LOW, MEDIUM or HIGH")
	cmd.Flags().Float64Var(&flagCapital, "capital", 0, "initial capital")
	cmd.Flags().StringVar(&flagStart, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagEnd, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagName, "name", "", "bot name")
	cmd.Flags().BoolVar(&flagSave, "save", false, "persist the bot and result")
	return cmd
}

func newAnalyzeEventCmd() *cobra.Command {
	var (
		symbol       string
		index        string
		eventType    string
		announcement string
		effective    string
		price        float64
	)
	cmd := &cobra.Command{
		Use:   "analyze-event",
		Short: "Analyze an index reconstitution event for a symbol",
		RunE: func(cmd *cobra.Command, args []string) error {
			ann, err := time.Parse(dateLayout, announcement)
			if err != nil {
				return fmt.Errorf("parsing --announced: %w", err)
			}
			eff, err := time.Parse(dateLayout, effective)
			if err != nil {
				return fmt.Errorf("parsing --effective: %w", err)
			}

			analysis, err := signals.AnalyzeIndexEvent(symbol, index,
				signals.EventType(eventType), ann, eff, time.Now().UTC(), price)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s on %s: %s\n", analysis.EventType, analysis.Symbol, analysis.Index, analysis.Action)
			fmt.Printf("  %s\n", analysis.Rationale)
			fmt.Printf("  Days to effective:  %d\n", analysis.DaysToEffective)
			fmt.Printf("  Expected return:    %.1f%%\n", analysis.ExpectedReturnPct)
			if analysis.TargetPrice > 0 {
				fmt.Printf("  Target price:       $%.2f\n", analysis.TargetPrice)
			}
			fmt.Printf("  Position size tier: %d%%\n", analysis.PositionSizePct)
			return nil
		},
	}
	cmd.Flags().StringVar(&symbol, "symbol", "", "stock symbol")
	cmd.Flags().StringVar(&index, "index", "SP500", "index name")
	cmd.Flags().StringVar(&eventType, "type", "", "event type: ADD or DELETE")
	cmd.Flags().StringVar(&announcement, "announced", "", "announcement date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&effective, "effective", "", "effective date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&price, "price", 0, "current price")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("announced")
	cmd.MarkFlagRequired("effective")
	cmd.MarkFlagRequired("price")
	return cmd
}

func newScreenCmd() *cobra.Command {
	var (
		marketCap float64
		volume    int64
		sector    string
	)
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen a stock as an index-addition candidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := signals.ScreenForIndexAddition(marketCap, volume, sector)
			fmt.Printf("Recommendation: %s (score %d)\n", report.Recommendation, report.Score)
			for _, reason := range report.Reasons {
				fmt.Printf("  - %s\n", reason)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&marketCap, "market-cap", 0, "market capitalization in USD")
	cmd.Flags().Int64Var(&volume, "volume", 0, "average daily volume")
	cmd.Flags().StringVar(&sector, "sector", "Technology", "sector name")
	return cmd
}

func newProjectCmd() *cobra.Command {
	var (
		amount float64
		tier   string
		weeks  int
	)
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the expected return for an investment",
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, profit := risk.ExpectedReturn(amount, tier, weeks)
			fmt.Printf("Expected return over %d weeks at %s risk: %.2f%% ($%.2f profit, $%.2f final)\n",
				weeks, risk.ParseTier(tier), pct, profit, amount+profit)
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 1000, "investment amount")
	cmd.Flags().StringVar(&tier, "risk", "MEDIUM", "risk tier")
	cmd.Flags().IntVar(&weeks, "weeks", 4, "duration in weeks")
	return cmd
}
