package entity

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Amount is a non-negative asset amount. It crosses the wire as an
// exact decimal string so balances above the float64-safe range
// (128-bit reserves included) survive a round trip bit-for-bit.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal value as an Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString parses a decimal string into an Amount,
// rejecting negative values.
func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "invalid amount %q", s)
	}
	if d.Sign() < 0 {
		return Amount{}, errors.Errorf("amount must not be negative: %s", d)
	}
	return Amount{Decimal: d}, nil
}

// UnmarshalJSON accepts a JSON string or number. Non-numeric and
// negative input is a hard parse error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return errors.Wrap(err, "amount must be numeric")
	}
	if d.Sign() < 0 {
		return errors.Errorf("amount must not be negative: %s", d)
	}
	a.Decimal = d
	return nil
}
