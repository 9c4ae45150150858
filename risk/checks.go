package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/tickcalc/market"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// Aliases so callers can match every calculator failure against this package.
	ErrNotFound          = market.ErrNotFound
	ErrInvalidInstrument = market.ErrInvalidInstrument
)

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// checkAmounts enforces opening profit > 0 and risk amount >= 0. A zero
// opening profit yields a zero target, which is not actionable.
func checkAmounts(openingProfit, riskAmount float64) error {
	if !finite(openingProfit) || openingProfit <= 0 {
		return fmt.Errorf("%w: opening profit %v must be greater than zero", ErrInvalidInput, openingProfit)
	}
	if !finite(riskAmount) || riskAmount < 0 {
		return fmt.Errorf("%w: risk amount %v must not be negative", ErrInvalidInput, riskAmount)
	}
	return nil
}

// CheckFraction reports whether f can be used as a profit target fraction.
func CheckFraction(f float64) error {
	return checkFraction(f)
}

func checkFraction(f float64) error {
	if !finite(f) || f <= 0 || f > 1 {
		return fmt.Errorf("%w: target fraction %v must be in (0, 1]", ErrInvalidInput, f)
	}
	return nil
}
