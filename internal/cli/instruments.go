package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tickcalc/report"
)

func newInstrumentsCmd(rc *RootConfig) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "instruments",
		Short: "List supported futures instruments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outputFormat(cmd, rc, format)
			if err != nil {
				return err
			}
			return report.WriteInstruments(cmd.OutOrStdout(), f, rc.Calc.AllDetails())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "", "Output format: table|json|csv")
	return cmd
}

func newInstrumentCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "instrument <name|symbol>",
		Short: "Show symbol, tick index, contract size and tick/point value",
		Example: `  tickcalc instrument "Gold (XAU)"
  tickcalc instrument NQ=F`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rc.Calc.Details(args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), report.FormatDetailsText(d))
			return err
		},
	}
}

// outputFormat resolves the --format flag, falling back to output.format
// from the config.
func outputFormat(cmd *cobra.Command, rc *RootConfig, flag string) (report.Format, error) {
	name := rc.Config.Output.Format
	if cmd.Flags().Changed("format") {
		name = flag
	}
	f, err := report.ParseFormat(name)
	if err != nil {
		return "", fmt.Errorf("--format: %w", err)
	}
	return f, nil
}
