package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidCapital       ErrorCode = 102
	ErrCodeInvalidDateRange     ErrorCode = 103
	ErrCodeInvalidTimeframe     ErrorCode = 104
	ErrCodeUnknownStrategy      ErrorCode = 105
	ErrCodeUnorderedBars        ErrorCode = 106
	ErrCodeInvalidPrice         ErrorCode = 107
	ErrCodeInvalidCostRate      ErrorCode = 108

	// Data errors (200-299)
	ErrCodeDataNotFound    ErrorCode = 200
	ErrCodeDatasourceQuery ErrorCode = 201
	ErrCodeDatasourceInit  ErrorCode = 202
	ErrCodeReadingMissing  ErrorCode = 203

	// Classification errors (300-399)
	ErrCodeUnscoredIndicator ErrorCode = 300

	// Strategy errors (400-499)
	ErrCodeStrategyDecision       ErrorCode = 400
	ErrCodeStrategyAlreadyExists  ErrorCode = 401
	ErrCodeStrategyIndicatorInput ErrorCode = 402
	ErrCodeStrategyNeverDecided   ErrorCode = 403

	// Backtest errors (500-599)
	ErrCodeEmptyBarSeries    ErrorCode = 500
	ErrCodeRunNotInitialized ErrorCode = 501
	ErrCodeMetricComputation ErrorCode = 502
	ErrCodeResultWriteFailed ErrorCode = 503
)
