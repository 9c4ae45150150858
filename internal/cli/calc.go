package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tickcalc/report"
)

func newCalcCmd(rc *RootConfig) *cobra.Command {
	var (
		instrument    string
		openingProfit float64
		riskAmount    float64
		format        string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute target and stop-loss ticks/points for one instrument",
		Long: `Compute the target profit, the ticks and points needed to reach it, and the
stop-loss ticks and points for a risk amount.

The opening profit must be greater than zero. The risk amount may be zero,
which yields a zero stop loss.`,
		Example: `  tickcalc calc -i "Nasdaq 100 (Mini)" --opening-profit 1000 --risk 200
  tickcalc calc -i CL=F -p 750 -r 150 -o org`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if instrument == "" {
				instrument = rc.Config.Calculator.DefaultInstrument
			}
			if instrument == "" {
				return fmt.Errorf("--instrument is required (or set calculator.default_instrument)")
			}
			f, err := outputFormat(cmd, rc, format)
			if err != nil {
				return err
			}

			res, err := rc.Calc.Compute(openingProfit, riskAmount, instrument)
			if err != nil {
				rc.Log.WithFields(logrus.Fields{
					"instrument":     instrument,
					"opening_profit": openingProfit,
					"risk_amount":    riskAmount,
				}).WithError(err).Warn("calculation refused")
				return err
			}

			rc.Log.WithFields(logrus.Fields{
				"symbol":        res.Instrument.Symbol,
				"target_ticks":  res.TargetTicks,
				"stop_ticks":    res.StopLossTicks,
				"target_profit": res.TargetProfit,
			}).Debug("calculation done")

			return report.WriteResult(cmd.OutOrStdout(), f, res)
		},
	}

	cmd.Flags().StringVarP(&instrument, "instrument", "i", "", "Instrument display name or symbol, e.g. \"Gold (XAU)\" or GC=F")
	cmd.Flags().Float64VarP(&openingProfit, "opening-profit", "p", 0, "Opening profit before the trade, in dollars (required, > 0)")
	cmd.Flags().Float64VarP(&riskAmount, "risk", "r", 0, "Amount you are willing to risk, in dollars (>= 0)")
	cmd.Flags().StringVarP(&format, "format", "o", "", "Output format: table|json|csv|org")
	_ = cmd.MarkFlagRequired("opening-profit")

	return cmd
}
