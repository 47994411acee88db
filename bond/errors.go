package bond

import "errors"

var (
	// ErrEmptyBatch is returned when a matrix is requested for zero securities.
	ErrEmptyBatch = errors.New("empty security batch")
	// ErrInvalidMaturity is returned for a negative time to maturity, or a
	// security carrying neither a maturity date nor a time to maturity.
	ErrInvalidMaturity = errors.New("invalid time to maturity")
)
