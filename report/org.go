package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rustyeddy/tickcalc/risk"
)

// FormatResultOrg renders a Result as an Org-mode block suitable for pasting
// into a trading journal. Structured figures go into a PROPERTIES drawer and
// the narrative headings are left empty for the trader.
func FormatResultOrg(r risk.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Plan: %s (%s)\n", r.Instrument.Name, r.Instrument.Symbol)
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":INSTRUMENT: %s\n", r.Instrument.Name)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", r.Instrument.Symbol)
	fmt.Fprintf(&b, ":TICK_INDEX: %s\n", Plain(r.Instrument.TickIndex))
	fmt.Fprintf(&b, ":CONTRACT_SIZE: %s\n", Plain(r.Instrument.ContractSize))
	fmt.Fprintf(&b, ":TICK_VALUE: %s\n", Fixed(r.TickValueDollars))
	fmt.Fprintf(&b, ":POINT_VALUE: %s\n", Fixed(r.PointValueDollars))
	fmt.Fprintf(&b, ":OPENING_PROFIT: %s\n", Fixed(r.OpeningProfit))
	fmt.Fprintf(&b, ":TARGET_FRACTION: %s\n", Percent(r.TargetFraction))
	fmt.Fprintf(&b, ":TARGET_PROFIT: %s\n", Fixed(r.TargetProfit))
	fmt.Fprintf(&b, ":TARGET_TICKS: %s\n", Fixed(r.TargetTicks))
	fmt.Fprintf(&b, ":TARGET_POINTS: %s\n", Fixed(r.TargetPoints))
	fmt.Fprintf(&b, ":RISK_AMOUNT: %s\n", Fixed(r.RiskAmount))
	fmt.Fprintf(&b, ":STOP_LOSS_TICKS: %s\n", Fixed(r.StopLossTicks))
	fmt.Fprintf(&b, ":STOP_LOSS_POINTS: %s\n", Fixed(r.StopLossPoints))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")
	return b.String()
}

func writeInstrumentTable(w io.Writer, ds []risk.Details) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSYMBOL\tTICK INDEX\tCONTRACT SIZE\tTICK VALUE\tPOINT VALUE")
	for i, d := range ds {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, d.Name, d.Symbol, Plain(d.TickIndex), Plain(d.ContractSize),
			Money(d.TickValueDollars), Money(d.PointValueDollars))
	}
	return tw.Flush()
}
