package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/chartbeacon/chartbeacon/internal/backtest"
	"github.com/chartbeacon/chartbeacon/internal/datasource"
	"github.com/chartbeacon/chartbeacon/internal/logger"
	"github.com/chartbeacon/chartbeacon/internal/series"
	"github.com/chartbeacon/chartbeacon/internal/strategy"
	"github.com/chartbeacon/chartbeacon/internal/summary"
	"github.com/chartbeacon/chartbeacon/internal/types"
)

// movingAverageWindows maps each moving average column to its window and kind.
var movingAverageWindows = map[types.MovingAverageType]struct {
	period      int
	exponential bool
}{
	types.MovingAverageSMA5:   {5, false},
	types.MovingAverageSMA10:  {10, false},
	types.MovingAverageSMA20:  {20, false},
	types.MovingAverageSMA50:  {50, false},
	types.MovingAverageSMA100: {100, false},
	types.MovingAverageSMA200: {200, false},
	types.MovingAverageEMA5:   {5, true},
	types.MovingAverageEMA10:  {10, true},
	types.MovingAverageEMA20:  {20, true},
	types.MovingAverageEMA50:  {50, true},
	types.MovingAverageEMA100: {100, true},
	types.MovingAverageEMA200: {200, true},
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	appLog, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer appLog.Sync()

	config := backtest.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		config, err = backtest.ParseConfig(data)
		if err != nil {
			return err
		}
	}

	if cmd.IsSet("cost-rate") {
		config.TransactionCostRate = cmd.Float("cost-rate")
		if err := config.Validate(); err != nil {
			return err
		}
	}

	ticker := cmd.String("ticker")
	timeframe := types.Timeframe(cmd.String("timeframe"))

	start := optional.None[time.Time]()
	if cmd.IsSet("start") {
		start = optional.Some(cmd.Timestamp("start"))
	}

	end := optional.None[time.Time]()
	if cmd.IsSet("end") {
		end = optional.Some(cmd.Timestamp("end"))
	}

	ds, err := datasource.NewDuckDB(appLog)
	if err != nil {
		return err
	}
	defer ds.Close()

	if err := ds.Initialize(cmd.String("data")); err != nil {
		return err
	}

	bars, err := ds.ReadRange(ticker, timeframe, start, end)
	if err != nil {
		return err
	}

	readings, movingAverages, summaries := computeInputs(ticker, timeframe, bars)

	progress := progressbar.Default(int64(len(bars)))
	progress.Describe(fmt.Sprintf("Backtesting %s with %s", ticker, cmd.String("strategy")))

	engine := backtest.NewEngine(config, strategy.DefaultRegistry(), appLog)

	result, err := engine.Run(backtest.Request{
		Ticker:         ticker,
		Timeframe:      timeframe,
		Bars:           bars,
		Readings:       readings,
		MovingAverages: movingAverages,
		Summaries:      summaries,
		Strategy:       cmd.String("strategy"),
		InitialCapital: cmd.Float("capital"),
		OnProgress: optional.Some(backtest.ProgressFunc(func(done, total int) {
			_ = progress.Set(done)
		})),
	})
	if err != nil {
		return err
	}

	printResult(result)

	output := cmd.String("output")
	if err := types.WriteResult(output, *result); err != nil {
		return err
	}

	fmt.Printf("\nResult written to %s\n", output)

	return nil
}

// computeInputs derives per-bar indicator readings, moving averages and
// summaries from the raw bars.
func computeInputs(ticker string, timeframe types.Timeframe, bars []types.Bar) (
	[]optional.Option[types.IndicatorReading],
	[]optional.Option[types.MovingAverageReading],
	[]optional.Option[types.Summary],
) {
	readings := make([]optional.Option[types.IndicatorReading], len(bars))
	movingAverages := make([]optional.Option[types.MovingAverageReading], len(bars))
	summaries := make([]optional.Option[types.Summary], len(bars))

	for i, bar := range bars {
		history := bars[:i+1]
		closes := series.Closes(history)

		values := map[types.IndicatorType]optional.Option[float64]{
			types.IndicatorTypeRSI: series.RSI(closes, 14),
			types.IndicatorTypeATR: series.ATR(history, 14),
		}

		if line := series.MACD(closes, 12, 26, 9); line.IsSome() {
			values[types.IndicatorTypeMACD] = optional.Some(line.Unwrap().MACD)
			values[types.IndicatorTypeMACDSignal] = optional.Some(line.Unwrap().Signal)
		}

		if dm := series.ADX(history, 14); dm.IsSome() {
			values[types.IndicatorTypeADX] = optional.Some(dm.Unwrap().ADX)
			values[types.IndicatorTypePlusDI] = optional.Some(dm.Unwrap().PlusDI)
			values[types.IndicatorTypeMinusDI] = optional.Some(dm.Unwrap().MinusDI)
		}

		reading := types.IndicatorReading{
			Symbol:    ticker,
			Timeframe: timeframe,
			Time:      bar.Time,
			Values:    values,
		}

		maValues := make(map[types.MovingAverageType]optional.Option[float64], len(movingAverageWindows))
		for kind, window := range movingAverageWindows {
			if window.exponential {
				maValues[kind] = series.EMA(closes, window.period)
			} else {
				maValues[kind] = series.SMA(closes, window.period)
			}
		}

		maReading := types.MovingAverageReading{
			Symbol:    ticker,
			Timeframe: timeframe,
			Time:      bar.Time,
			Values:    maValues,
		}

		readings[i] = optional.Some(reading)
		movingAverages[i] = optional.Some(maReading)
		summaries[i] = optional.Some(summary.Compute(
			ticker, timeframe, bar.Time, reading, maReading, optional.Some(bar.Close),
		))
	}

	return readings, movingAverages, summaries
}

func printResult(result *types.BacktestResult) {
	fmt.Printf("\nBacktest %s\n", result.ID)
	fmt.Printf("  %s %s %s, %s to %s\n",
		result.Ticker, result.Timeframe, result.Strategy,
		result.StartTime.Format("2006-01-02"), result.EndTime.Format("2006-01-02"))
	fmt.Printf("  Initial capital:  %12.2f\n", result.InitialCapital)
	fmt.Printf("  Final capital:    %12.2f\n", result.FinalCapital)
	fmt.Printf("  Total return:     %11.2f%%\n", result.TotalReturnPct)
	fmt.Printf("  Buy & hold:       %11.2f%%\n", result.BuyHoldReturnPct)
	fmt.Printf("  Alpha:            %11.2f%%\n", result.Alpha)
	fmt.Printf("  Trades:           %6d (%d wins, %d losses)\n",
		result.TotalTrades, result.WinningTrades, result.LosingTrades)
	fmt.Printf("  Win rate:         %11.2f%%\n", result.WinRate)
	fmt.Printf("  Max drawdown:     %11.2f%%\n", result.MaxDrawdown)
	fmt.Printf("  Sharpe ratio:     %12.2f\n", result.SharpeRatio)
	fmt.Printf("  Transaction cost: %12.2f\n", result.TotalTransactionCost)
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	schema, err := backtest.SchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func strategiesAction(ctx context.Context, cmd *cli.Command) error {
	for _, name := range strategy.DefaultRegistry().List() {
		fmt.Println(name)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Run trading strategy backtests over historical bar files",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a backtest over a CSV or parquet bar file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the CSV or parquet bar file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "ticker",
						Aliases:  []string{"t"},
						Usage:    "Ticker symbol the bars belong to",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "timeframe",
						Usage: "Bar timeframe (5m, 15m, 30m, 1h, 4h, 1d, 1wk, 1mo)",
						Value: string(types.Timeframe1d),
					},
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Strategy name (see the strategies command)",
						Value:   "technical_summary",
					},
					&cli.FloatFlag{
						Name:  "capital",
						Usage: "Initial capital",
						Value: 10000,
					},
					&cli.FloatFlag{
						Name:  "cost-rate",
						Usage: "Transaction cost rate override",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a YAML config file",
					},
					&cli.TimestampFlag{
						Name:  "start",
						Usage: "Start date in `YYYY-MM-DD` format",
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
					},
					&cli.TimestampFlag{
						Name:  "end",
						Usage: "End date in `YYYY-MM-DD` format",
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the YAML result report",
						Value:   "result.yaml",
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema for the config file",
				Action: schemaAction,
			},
			{
				Name:   "strategies",
				Usage:  "List the available strategies",
				Action: strategiesAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
