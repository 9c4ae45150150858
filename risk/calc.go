package risk

import (
	"github.com/rustyeddy/tickcalc/market"
)

// Profit target fractions. Two versions of the calculator shipped with
// different fractions; 0.30 is the default and 0.49 remains selectable
// through configuration.
const (
	DefaultTargetFraction = 0.30
	LegacyTargetFraction  = 0.49
)

// Result holds everything derived from one calculation. The inputs are echoed
// back so renderers need nothing else.
type Result struct {
	Instrument     market.InstrumentSpec `json:"instrument"`
	OpeningProfit  float64               `json:"opening_profit"`
	RiskAmount     float64               `json:"risk_amount"`
	TargetFraction float64               `json:"target_fraction"`

	TickValueDollars  float64 `json:"tick_value_dollars"`
	PointValueDollars float64 `json:"point_value_dollars"`
	TargetProfit      float64 `json:"target_profit"`
	TargetTicks       float64 `json:"target_ticks"`
	TargetPoints      float64 `json:"target_points"`
	StopLossTicks     float64 `json:"stop_loss_ticks"`
	StopLossPoints    float64 `json:"stop_loss_points"`
}

// Compute converts an opening profit and a risk amount into target and
// stop-loss distances for inst.
//
// The target profit is openingProfit * targetFraction. Dollar amounts become
// ticks by dividing by the instrument tick value, and ticks become points by
// dividing by market.TicksPerPoint.
func Compute(openingProfit, riskAmount float64, inst market.InstrumentSpec, targetFraction float64) (Result, error) {
	if err := checkAmounts(openingProfit, riskAmount); err != nil {
		return Result{}, err
	}
	if err := checkFraction(targetFraction); err != nil {
		return Result{}, err
	}
	if err := inst.Validate(); err != nil {
		return Result{}, err
	}

	tickValue := inst.TickValue()
	targetProfit := openingProfit * targetFraction
	targetTicks := targetProfit / tickValue
	stopTicks := riskAmount / tickValue

	return Result{
		Instrument:     inst,
		OpeningProfit:  openingProfit,
		RiskAmount:     riskAmount,
		TargetFraction: targetFraction,

		TickValueDollars:  tickValue,
		PointValueDollars: tickValue * market.TicksPerPoint,
		TargetProfit:      targetProfit,
		TargetTicks:       targetTicks,
		TargetPoints:      targetTicks / market.TicksPerPoint,
		StopLossTicks:     stopTicks,
		StopLossPoints:    stopTicks / market.TicksPerPoint,
	}, nil
}
