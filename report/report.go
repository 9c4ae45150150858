// Package report renders calculation results and instrument cards for
// terminals and files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tickcalc/market"
	"github.com/rustyeddy/tickcalc/risk"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatOrg   Format = "org"
)

// ParseFormat accepts a format name case-insensitively. An empty string
// selects FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatCSV, FormatOrg:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (use table, json, csv or org)", s)
}

// WriteResult renders r to w in format f.
func WriteResult(w io.Writer, f Format, r risk.Result) error {
	switch f {
	case FormatTable, "":
		_, err := io.WriteString(w, FormatResultText(r))
		return err
	case FormatJSON:
		return writeJSON(w, r)
	case FormatCSV:
		return writeResultCSV(w, r)
	case FormatOrg:
		_, err := io.WriteString(w, FormatResultOrg(r))
		return err
	}
	return fmt.Errorf("unknown format %q", f)
}

// WriteInstruments renders the instrument list. Org output falls back to the
// table layout since the list has no narrative sections.
func WriteInstruments(w io.Writer, f Format, ds []risk.Details) error {
	switch f {
	case FormatTable, FormatOrg, "":
		return writeInstrumentTable(w, ds)
	case FormatJSON:
		return writeJSON(w, ds)
	case FormatCSV:
		return writeInstrumentCSV(w, ds)
	}
	return fmt.Errorf("unknown format %q", f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Money renders a dollar amount rounded to cents, e.g. "$1000.00".
func Money(x float64) string {
	d := decimal.NewFromFloat(x).Round(2)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Fixed renders x with two decimals.
func Fixed(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

// Percent renders a fraction as a whole-number style percentage, e.g. 0.3 -> "30%".
func Percent(fraction float64) string {
	return decimal.NewFromFloat(fraction).Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}

// Plain renders x in its shortest exact decimal form, e.g. 0.00005 or 125000.
func Plain(x float64) string {
	return decimal.NewFromFloat(x).String()
}

// FormatDetailsText renders the instrument card.
func FormatDetailsText(d risk.Details) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Details for %s:\n", d.Name)
	fmt.Fprintf(&b, "  Symbol:         %s\n", d.Symbol)
	fmt.Fprintf(&b, "  Tick Index:     %s index points\n", Plain(d.TickIndex))
	fmt.Fprintf(&b, "  Contract Size:  %s units\n", Plain(d.ContractSize))
	fmt.Fprintf(&b, "  Tick Value:     %s\n", Money(d.TickValueDollars))
	fmt.Fprintf(&b, "  Point Value:    %s (%d ticks)\n", Money(d.PointValueDollars), market.TicksPerPoint)
	return b.String()
}

// FormatResultText renders r as the three result cards: target profit,
// ticks to target and stop loss.
func FormatResultText(r risk.Result) string {
	var b strings.Builder
	b.WriteString(FormatDetailsText(risk.Details{
		InstrumentSpec:    r.Instrument,
		TickValueDollars:  r.TickValueDollars,
		PointValueDollars: r.PointValueDollars,
	}))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s of your opening profit (%s):\n", Percent(r.TargetFraction), Money(r.OpeningProfit))
	fmt.Fprintf(&b, "  Target Profit:  %s\n", Money(r.TargetProfit))
	b.WriteString("\n")
	b.WriteString("To achieve the target profit:\n")
	fmt.Fprintf(&b, "  Ticks:          %s ticks\n", Fixed(r.TargetTicks))
	fmt.Fprintf(&b, "  Points:         %s points\n", Fixed(r.TargetPoints))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Risk management - Stop loss (%s):\n", Money(r.RiskAmount))
	fmt.Fprintf(&b, "  Stop Loss Ticks:   %s ticks\n", Fixed(r.StopLossTicks))
	fmt.Fprintf(&b, "  Stop Loss Points:  %s points\n", Fixed(r.StopLossPoints))
	return b.String()
}
