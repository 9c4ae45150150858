package risk

import (
	"math"
	"testing"

	"github.com/rustyeddy/tickcalc/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLookup(t *testing.T, name string) market.InstrumentSpec {
	t.Helper()
	s, err := market.Default().Lookup(name)
	require.NoError(t, err)
	return s
}

func TestCompute_NasdaqScenario(t *testing.T) {
	t.Parallel()

	got, err := Compute(1000, 200, mustLookup(t, "Nasdaq 100 (Mini)"), DefaultTargetFraction)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, got.TickValueDollars, 1e-9)
	assert.InDelta(t, 20.0, got.PointValueDollars, 1e-9)
	assert.InDelta(t, 300.0, got.TargetProfit, 1e-9)
	assert.InDelta(t, 60.0, got.TargetTicks, 1e-9)
	assert.InDelta(t, 15.0, got.TargetPoints, 1e-9)
	assert.InDelta(t, 40.0, got.StopLossTicks, 1e-9)
	assert.InDelta(t, 10.0, got.StopLossPoints, 1e-9)
	assert.Equal(t, "NQ=F", got.Instrument.Symbol)
	assert.Equal(t, 1000.0, got.OpeningProfit)
	assert.Equal(t, 200.0, got.RiskAmount)
}

func TestCompute_EuroTickValue(t *testing.T) {
	t.Parallel()

	got, err := Compute(100, 10, mustLookup(t, "Euro/USD (6E)"), DefaultTargetFraction)
	require.NoError(t, err)
	assert.InDelta(t, 6.25, got.TickValueDollars, 1e-9)
	assert.InDelta(t, 25.0, got.PointValueDollars, 1e-9)
}

func TestCompute_ZeroRisk(t *testing.T) {
	t.Parallel()

	got, err := Compute(500, 0, mustLookup(t, "Dow Jones (Mini)"), DefaultTargetFraction)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.StopLossTicks)
	assert.Equal(t, 0.0, got.StopLossPoints)
	assert.InDelta(t, 150.0, got.TargetProfit, 1e-9)
	assert.InDelta(t, 30.0, got.TargetTicks, 1e-9)
}

func TestCompute_LegacyFraction(t *testing.T) {
	t.Parallel()

	got, err := Compute(1000, 0, mustLookup(t, "Nasdaq 100 (Mini)"), LegacyTargetFraction)
	require.NoError(t, err)
	assert.InDelta(t, 490.0, got.TargetProfit, 1e-9)
	assert.InDelta(t, 98.0, got.TargetTicks, 1e-9)
}

func TestCompute_InvalidInput(t *testing.T) {
	t.Parallel()

	nq := mustLookup(t, "Nasdaq 100 (Mini)")
	broken := market.InstrumentSpec{Name: "Broken", TickIndex: 0, ContractSize: 0}

	tests := []struct {
		name     string
		opening  float64
		risk     float64
		inst     market.InstrumentSpec
		fraction float64
	}{
		{"zero opening profit", 0, 50, nq, DefaultTargetFraction},
		{"negative opening profit", -10, 50, nq, DefaultTargetFraction},
		{"zero opening profit beats broken instrument", 0, 50, broken, DefaultTargetFraction},
		{"negative risk", 1000, -1, nq, DefaultTargetFraction},
		{"nan opening", math.NaN(), 1, nq, DefaultTargetFraction},
		{"inf risk", 1000, math.Inf(1), nq, DefaultTargetFraction},
		{"zero fraction", 1000, 1, nq, 0},
		{"fraction above one", 1000, 1, nq, 1.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compute(tt.opening, tt.risk, tt.inst, tt.fraction)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCompute_InvalidInstrument(t *testing.T) {
	t.Parallel()

	tests := []market.InstrumentSpec{
		{Name: "zero tick", TickIndex: 0, ContractSize: 10},
		{Name: "negative size", TickIndex: 0.25, ContractSize: -20},
		{Name: "overflow", TickIndex: math.MaxFloat64, ContractSize: 10},
	}

	for _, inst := range tests {
		inst := inst
		t.Run(inst.Name, func(t *testing.T) {
			t.Parallel()
			got, err := Compute(1000, 100, inst, DefaultTargetFraction)
			assert.ErrorIs(t, err, ErrInvalidInstrument)
			assert.Equal(t, Result{}, got)
		})
	}
}

func TestCompute_Properties(t *testing.T) {
	t.Parallel()

	amounts := []struct{ opening, risk float64 }{
		{1, 0}, {250, 75}, {1000, 200}, {12345.67, 890.12},
	}

	for _, inst := range market.Default().All() {
		for _, a := range amounts {
			got, err := Compute(a.opening, a.risk, inst, DefaultTargetFraction)
			require.NoError(t, err)

			again, err := Compute(a.opening, a.risk, inst, DefaultTargetFraction)
			require.NoError(t, err)
			assert.Equal(t, got, again, "deterministic")

			assert.Equal(t, got.TickValueDollars*4, got.PointValueDollars)
			assert.Equal(t, got.TargetTicks/4, got.TargetPoints)
			assert.Equal(t, got.StopLossTicks/4, got.StopLossPoints)
			assert.False(t, math.IsInf(got.TargetTicks, 0) || math.IsNaN(got.TargetTicks))
		}
	}
}
