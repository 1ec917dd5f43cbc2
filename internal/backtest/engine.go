package backtest

import (
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/chartbeacon/chartbeacon/internal/logger"
	"github.com/chartbeacon/chartbeacon/internal/strategy"
	"github.com/chartbeacon/chartbeacon/internal/types"
	"github.com/chartbeacon/chartbeacon/pkg/errors"
)

// ProgressFunc is called after each processed bar with the number of bars
// done and the total.
type ProgressFunc func(done, total int)

// Request is the per-run input. Bars must be strictly ascending by timestamp.
// Readings, MovingAverages and Summaries, when present, must align with Bars
// index for index; nil slices mean no data at any bar.
type Request struct {
	Ticker         string
	Timeframe      types.Timeframe
	Bars           []types.Bar
	Readings       []optional.Option[types.IndicatorReading]
	MovingAverages []optional.Option[types.MovingAverageReading]
	Summaries      []optional.Option[types.Summary]
	Strategy       string
	InitialCapital float64
	OnProgress     optional.Option[ProgressFunc]
}

// Engine replays bar series through strategies. One Engine may serve many
// sequential runs; each run owns its own ledger, so concurrent runs need
// separate Engine values only because of the status field.
type Engine struct {
	config   Config
	registry *strategy.Registry
	log      *logger.Logger
	status   types.RunStatus
}

// NewEngine creates an engine with the given simulation knobs and strategy
// catalogue.
func NewEngine(config Config, registry *strategy.Registry, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		config:   config,
		registry: registry,
		log:      log,
		status:   types.RunStatusInitialized,
	}
}

// Status returns the lifecycle state of the most recent run.
func (e *Engine) Status() types.RunStatus {
	return e.status
}

// Run validates the request, replays the bars and returns the completed
// result. A failed run returns no partial result, only the error.
//
// A bar the strategy cannot decide is logged and held. Whether any bar was
// decidable is only known once the replay finishes, so a strategy that fails
// every bar is reported after the full iteration, with the first decide
// error as the cause.
func (e *Engine) Run(req Request) (*types.BacktestResult, error) {
	e.status = types.RunStatusInitialized

	decide, err := e.validate(req)
	if err != nil {
		e.status = types.RunStatusFailed
		return nil, err
	}

	e.status = types.RunStatusRunning
	e.log.Info("backtest started",
		zap.String("ticker", req.Ticker),
		zap.String("timeframe", string(req.Timeframe)),
		zap.String("strategy", req.Strategy),
		zap.Int("bars", len(req.Bars)),
	)

	state := newRunState(e.config, req.InitialCapital)
	total := len(req.Bars)
	decided := 0

	var firstDecideErr error

	for i, bar := range req.Bars {
		if state.stopLossHit(bar.Close) {
			state.sell(i, bar.Time, bar.Close, 1, types.TradeReasonStopLoss)
			e.log.Info("stop loss triggered",
				zap.Time("time", bar.Time),
				zap.Float64("close", bar.Close),
			)
		} else {
			ctx := strategy.Context{
				Index:          i,
				Bar:            bar,
				Bars:           req.Bars[:i+1],
				Readings:       sliceUpTo(req.Readings, i),
				MovingAverages: sliceUpTo(req.MovingAverages, i),
				Summaries:      sliceUpTo(req.Summaries, i),
				Portfolio:      state.view(),
			}

			decision, decideErr := decide.Decide(ctx)
			if decideErr != nil {
				// treated as HOLD, the run continues
				if firstDecideErr == nil {
					firstDecideErr = decideErr
				}

				e.log.Warn("strategy could not decide",
					zap.Int("bar", i),
					zap.Time("time", bar.Time),
					zap.Error(decideErr),
				)
			} else {
				decided++
				e.apply(state, i, bar, decision)
			}
		}

		state.markEquity(bar.Close)

		if req.OnProgress.IsSome() {
			req.OnProgress.Unwrap()(i+1, total)
		}
	}

	if decided == 0 {
		e.status = types.RunStatusFailed
		return nil, errors.Wrapf(errors.ErrCodeStrategyNeverDecided, firstDecideErr,
			"strategy %q failed to decide on every one of %d bars", req.Strategy, total)
	}

	result := e.buildResult(req, state)
	e.status = types.RunStatusCompleted
	e.log.Info("backtest completed",
		zap.String("id", result.ID),
		zap.Float64("total_return_pct", result.TotalReturnPct),
		zap.Int("total_trades", result.TotalTrades),
	)

	return result, nil
}

// validate rejects bad input before any simulation state exists.
func (e *Engine) validate(req Request) (strategy.Strategy, error) {
	if req.InitialCapital <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidCapital,
			"initial capital must be positive, got %f", req.InitialCapital)
	}

	if !req.Timeframe.Supported() {
		return nil, errors.Newf(errors.ErrCodeInvalidTimeframe,
			"unsupported timeframe %q", req.Timeframe)
	}

	if len(req.Bars) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyBarSeries, "bar series is empty")
	}

	for i := 1; i < len(req.Bars); i++ {
		if !req.Bars[i].Time.After(req.Bars[i-1].Time) {
			return nil, errors.Newf(errors.ErrCodeUnorderedBars,
				"bars must be strictly ascending by timestamp, violated at index %d (%s)",
				i, req.Bars[i].Time.Format("2006-01-02T15:04:05Z07:00"))
		}
	}

	for name, n := range map[string]int{
		"readings":        len(req.Readings),
		"moving averages": len(req.MovingAverages),
		"summaries":       len(req.Summaries),
	} {
		if n != 0 && n != len(req.Bars) {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter,
				"%s length %d does not match %d bars", name, n, len(req.Bars))
		}
	}

	decide, err := e.registry.Get(req.Strategy)
	if err != nil {
		return nil, err
	}

	return decide, nil
}

// apply executes one strategy decision against the ledger.
func (e *Engine) apply(state *runState, index int, bar types.Bar, decision strategy.Decision) {
	if decision.Action == strategy.ActionHold {
		return
	}

	fraction := decision.Fraction
	if fraction <= 0 || fraction > 1 {
		e.log.Warn("decision fraction out of range, skipping",
			zap.Int("bar", index),
			zap.Float64("fraction", fraction),
		)

		return
	}

	reason := decision.Reason
	if reason == "" {
		reason = types.TradeReasonStrategy
	}

	switch decision.Action {
	case strategy.ActionBuy:
		state.buy(index, bar.Time, bar.Close, fraction, reason)
	case strategy.ActionSell:
		state.sell(index, bar.Time, bar.Close, fraction, reason)
	}
}

func (e *Engine) buildResult(req Request, state *runState) *types.BacktestResult {
	lastBar := req.Bars[len(req.Bars)-1]
	finalCapital := state.cash + state.position*lastBar.Close

	result := &types.BacktestResult{
		ID:                   uuid.New().String(),
		Ticker:               req.Ticker,
		Timeframe:            req.Timeframe,
		Strategy:             req.Strategy,
		StartTime:            req.Bars[0].Time,
		EndTime:              lastBar.Time,
		InitialCapital:       req.InitialCapital,
		FinalCapital:         finalCapital,
		TotalTrades:          len(state.trades),
		TotalTransactionCost: state.totalCost,
		Trades:               state.trades,
	}

	applyMetrics(result, state, req, e.config)

	return result
}

// sliceUpTo bounds an aligned per-bar slice to history through index i,
// passing nil slices through untouched.
func sliceUpTo[T any](values []optional.Option[T], i int) []optional.Option[T] {
	if len(values) == 0 {
		return nil
	}

	return values[:i+1]
}
