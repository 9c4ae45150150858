package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tickcalc/report"
	"github.com/rustyeddy/tickcalc/risk"
)

const (
	msgSelect  = "Please select a futures instrument to view details and perform calculations."
	msgInvalid = "Please enter both valid opening profit and risk amount values to calculate."
)

func newPromptCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Interactive calculator session",
		Long: `Start an interactive session: pick an instrument by number, name or symbol,
then enter the opening profit and risk amount. Invalid amounts are asked for
again. Type "quit" or send EOF to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &prompter{
				in:   bufio.NewScanner(cmd.InOrStdin()),
				out:  cmd.OutOrStdout(),
				calc: rc.Calc,
				log:  rc.Log,
			}
			return p.run()
		},
	}
}

type prompter struct {
	in   *bufio.Scanner
	out  io.Writer
	calc *risk.Calculator
	log  logrus.FieldLogger
}

func (p *prompter) run() error {
	fmt.Fprintf(p.out, "Target and Stop Loss Calculator (target = %s of opening profit)\n", report.Percent(p.calc.TargetFraction()))
	for {
		d, ok := p.selectInstrument()
		if !ok {
			return p.in.Err()
		}
		fmt.Fprintln(p.out)
		io.WriteString(p.out, report.FormatDetailsText(d))

		res, ok, err := p.calculate(d.Name)
		if err != nil {
			return err
		}
		if !ok {
			return p.in.Err()
		}
		fmt.Fprintln(p.out)
		io.WriteString(p.out, report.FormatResultText(res))
		fmt.Fprintln(p.out)
	}
}

// selectInstrument keeps asking until the answer names an instrument. It
// returns false on EOF or quit.
func (p *prompter) selectInstrument() (risk.Details, bool) {
	names := p.calc.InstrumentNames()
	for {
		fmt.Fprintln(p.out, "Select a Futures Instrument:")
		for i, n := range names {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, n)
		}
		answer, ok := p.ask("instrument> ")
		if !ok {
			return risk.Details{}, false
		}
		if answer == "" {
			fmt.Fprintln(p.out, msgSelect)
			continue
		}
		name := answer
		if n, err := strconv.Atoi(answer); err == nil {
			if n < 1 || n > len(names) {
				fmt.Fprintln(p.out, msgSelect)
				continue
			}
			name = names[n-1]
		}
		d, err := p.calc.Details(name)
		if err != nil {
			fmt.Fprintf(p.out, "%v\n%s\n", err, msgSelect)
			continue
		}
		return d, true
	}
}

// calculate asks for both amounts until the calculator accepts them.
// Only errors that re-entering input cannot fix are returned.
func (p *prompter) calculate(name string) (risk.Result, bool, error) {
	for {
		opening, ok := p.ask("Enter the opening profit before the trade (in dollars): ")
		if !ok {
			return risk.Result{}, false, nil
		}
		riskAmt, ok := p.ask("Enter the amount you are willing to risk (in dollars): ")
		if !ok {
			return risk.Result{}, false, nil
		}

		op, err1 := parseDollars(opening)
		ra, err2 := parseDollars(riskAmt)
		if err1 != nil || err2 != nil {
			fmt.Fprintln(p.out, msgInvalid)
			continue
		}

		res, err := p.calc.Compute(op, ra, name)
		if err != nil {
			if risk.IsUserError(err) {
				p.log.WithError(err).Debug("re-prompting")
				fmt.Fprintln(p.out, msgInvalid)
				continue
			}
			return risk.Result{}, false, err
		}
		return res, true, nil
	}
}

func (p *prompter) ask(label string) (string, bool) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	answer := strings.TrimSpace(p.in.Text())
	switch strings.ToLower(answer) {
	case "q", "quit", "exit":
		return "", false
	}
	return answer, true
}

// parseDollars accepts "1000", "$1,000.50" and similar.
func parseDollars(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseFloat(s, 64)
}
