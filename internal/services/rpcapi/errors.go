package rpcapi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// ErrCodeRuntime is the only error code this layer produces. Every
// engine-side failure flattens to it; callers branch on the code, not
// on the diagnostic payload.
const ErrCodeRuntime = 1

const (
	msgSpotPrice    = "Unable to get spot price."
	msgSellPrice    = "Unable to calculate sell price."
	msgBuyPrice     = "Unable to calculate buy price."
	msgPoolBalances = "Unable to retrieve pool balances."
)

// runtimeError is the wire error: {code: 1, message: <per-op>,
// data: <debug rendering of the cause>}. The data format is not
// stable and must never be parsed.
type runtimeError struct {
	message string
	cause   error
}

var (
	_ rpc.Error     = (*runtimeError)(nil)
	_ rpc.DataError = (*runtimeError)(nil)
)

func newRuntimeError(message string, cause error) *runtimeError {
	return &runtimeError{message: message, cause: cause}
}

func (e *runtimeError) Error() string { return e.message }

func (e *runtimeError) ErrorCode() int { return ErrCodeRuntime }

// ErrorData renders the cause with %+v so wrapped errors carry their
// stack traces into the diagnostic payload.
func (e *runtimeError) ErrorData() interface{} {
	return fmt.Sprintf("%+v", e.cause)
}

func (e *runtimeError) Unwrap() error { return e.cause }
