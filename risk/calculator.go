package risk

import (
	"errors"

	"github.com/rustyeddy/tickcalc/market"
)

// Request is the struct form of a calculation, as received from adapters.
type Request struct {
	Instrument    string  `json:"instrument" yaml:"instrument"`
	OpeningProfit float64 `json:"opening_profit" yaml:"opening_profit"`
	RiskAmount    float64 `json:"risk_amount" yaml:"risk_amount"`
}

// Details is the instrument card shown before any calculation is made.
type Details struct {
	market.InstrumentSpec
	TickValueDollars  float64 `json:"tick_value_dollars"`
	PointValueDollars float64 `json:"point_value_dollars"`
}

// Calculator binds a registry to a configured target fraction. It holds no
// mutable state and may be shared between goroutines.
type Calculator struct {
	registry *market.Registry
	fraction float64
}

// NewCalculator returns a Calculator over reg. A nil reg selects market.Default().
func NewCalculator(reg *market.Registry, targetFraction float64) (*Calculator, error) {
	if reg == nil {
		reg = market.Default()
	}
	if err := checkFraction(targetFraction); err != nil {
		return nil, err
	}
	return &Calculator{registry: reg, fraction: targetFraction}, nil
}

func (c *Calculator) TargetFraction() float64 {
	return c.fraction
}

// InstrumentNames lists selectable instruments in registry order.
func (c *Calculator) InstrumentNames() []string {
	return c.registry.Names()
}

// Compute looks up instrumentName and runs Compute with the configured fraction.
//
// Amount validation happens before the lookup so a non-positive opening profit
// is always reported as ErrInvalidInput.
func (c *Calculator) Compute(openingProfit, riskAmount float64, instrumentName string) (Result, error) {
	if err := checkAmounts(openingProfit, riskAmount); err != nil {
		return Result{}, err
	}
	inst, err := c.registry.Lookup(instrumentName)
	if err != nil {
		return Result{}, err
	}
	return Compute(openingProfit, riskAmount, inst, c.fraction)
}

func (c *Calculator) ComputeRequest(req Request) (Result, error) {
	return c.Compute(req.OpeningProfit, req.RiskAmount, req.Instrument)
}

// Details returns the instrument card for name.
func (c *Calculator) Details(name string) (Details, error) {
	inst, err := c.registry.Lookup(name)
	if err != nil {
		return Details{}, err
	}
	return detailsOf(inst), nil
}

// AllDetails returns a card for every instrument in registry order.
func (c *Calculator) AllDetails() []Details {
	all := c.registry.All()
	out := make([]Details, len(all))
	for i, inst := range all {
		out[i] = detailsOf(inst)
	}
	return out
}

func detailsOf(inst market.InstrumentSpec) Details {
	return Details{
		InstrumentSpec:    inst,
		TickValueDollars:  inst.TickValue(),
		PointValueDollars: inst.PointValue(),
	}
}

// IsUserError reports whether err should be fixed by the user re-entering
// input, as opposed to a broken instrument table.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound)
}
