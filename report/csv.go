package report

import (
	"encoding/csv"
	"io"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tickcalc/risk"
)

var resultHeader = []string{
	"instrument", "symbol", "opening_profit", "risk_amount", "target_fraction",
	"tick_value", "point_value", "target_profit", "target_ticks", "target_points",
	"stop_loss_ticks", "stop_loss_points",
}

var instrumentHeader = []string{
	"name", "symbol", "tick_index", "contract_size", "tick_value", "point_value",
}

func writeResultCSV(w io.Writer, r risk.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeader); err != nil {
		return err
	}
	if err := cw.Write([]string{
		r.Instrument.Name,
		r.Instrument.Symbol,
		f(r.OpeningProfit),
		f(r.RiskAmount),
		f(r.TargetFraction),
		f(r.TickValueDollars),
		f(r.PointValueDollars),
		f(r.TargetProfit),
		f(r.TargetTicks),
		f(r.TargetPoints),
		f(r.StopLossTicks),
		f(r.StopLossPoints),
	}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeInstrumentCSV(w io.Writer, ds []risk.Details) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(instrumentHeader); err != nil {
		return err
	}
	for _, d := range ds {
		if err := cw.Write([]string{
			d.Name,
			d.Symbol,
			Plain(d.TickIndex),
			Plain(d.ContractSize),
			f(d.TickValueDollars),
			f(d.PointValueDollars),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(6)
}
