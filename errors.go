package stockmarket

import "errors"

// Error kinds surfaced by the package. All of them are terminal for the
// operation that returns them: no operation retries internally, and a
// mutating operation that fails leaves the portfolio untouched.
//
// Use errors.Is to classify a returned error.
var (
	// ErrInvalidArgument reports malformed or out-of-range inputs to a
	// constructor or call. It is always checked before any mutation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientFunds reports a buy whose acquisition cost exceeds the
	// available cash.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientQuantity reports a sell that exceeds the held quantity.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrUnknownSymbol reports an operation on a symbol with no open position.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrDataIntegrity reports persistence encode/decode failures: malformed
	// lines, quantity mismatches, or I/O failures.
	ErrDataIntegrity = errors.New("data integrity")
)
