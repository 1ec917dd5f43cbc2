// Package backtest runs the trade simulation: replay an ordered bar series,
// ask a strategy for a decision at every bar, apply fills against a cash and
// position ledger, and compute the performance metric block at the end.
package backtest

import (
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/chartbeacon/chartbeacon/pkg/errors"
	"github.com/chartbeacon/chartbeacon/pkg/utils"
)

// Config carries the simulation knobs shared by every run of an engine.
// Per-run inputs (bars, capital, strategy) live on the Request instead.
type Config struct {
	// TransactionCostRate is charged on the notional of every fill, deducted
	// from sell proceeds and added to buy cost.
	TransactionCostRate float64 `yaml:"transaction_cost_rate" json:"transaction_cost_rate" jsonschema:"title=Transaction Cost Rate,description=Fee rate applied to the notional of every trade,minimum=0" validate:"gte=0,lt=1"`
	// MaxPositionRatio caps the share of cash a single buy may commit.
	MaxPositionRatio float64 `yaml:"max_position_ratio" json:"max_position_ratio" jsonschema:"title=Max Position Ratio,description=Largest fraction of cash a single buy may commit,minimum=0,maximum=1" validate:"gt=0,lte=1"`
	// StopLossRatio sells the whole position when the close drops this far
	// below the average entry price. Zero disables the stop.
	StopLossRatio float64 `yaml:"stop_loss_ratio" json:"stop_loss_ratio" jsonschema:"title=Stop Loss Ratio,description=Drop below average entry that forces a full sell. 0 disables,minimum=0" validate:"gte=0,lt=1"`
	// RiskFreeRate is the annualized rate subtracted from returns in the
	// Sharpe ratio. Zero means raw returns.
	RiskFreeRate float64 `yaml:"risk_free_rate" json:"risk_free_rate" jsonschema:"title=Risk Free Rate,description=Annualized risk-free rate used by the Sharpe ratio,minimum=0" validate:"gte=0"`
	// MinTradeNotional skips fills whose gross value would fall below this.
	MinTradeNotional float64 `yaml:"min_trade_notional" json:"min_trade_notional" jsonschema:"title=Min Trade Notional,description=Smallest gross trade value the engine will fill,minimum=0" validate:"gte=0"`
}

// DefaultConfig returns the knobs the simulation uses unless overridden.
func DefaultConfig() Config {
	return Config{
		TransactionCostRate: 0.0015,
		MaxPositionRatio:    0.95,
		StopLossRatio:       0,
		RiskFreeRate:        0,
		MinTradeNotional:    1,
	}
}

// ParseConfig parses YAML over the defaults, so absent keys keep their
// default values, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse backtest config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the config against its constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest config", err)
	}

	return nil
}

// SchemaJSON returns the JSON schema describing the config file format.
func SchemaJSON() (string, error) {
	return utils.GetSchemaFromConfig(&Config{})
}
