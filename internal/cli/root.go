package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tickcalc/config"
	"github.com/rustyeddy/tickcalc/internal/logging"
	"github.com/rustyeddy/tickcalc/risk"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// RootConfig carries global flags and the state PersistentPreRunE builds
// from them.
type RootConfig struct {
	ConfigPath     string
	LogLevel       string
	LogFormat      string
	TargetFraction float64

	Config *config.Config
	Log    *logrus.Logger
	Calc   *risk.Calculator
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "tickcalc",
		Short: "Futures target and stop-loss calculator",
		Long: `tickcalc converts an opening profit and a risk amount into target and
stop-loss distances, in ticks and points, for common futures contracts.

The profit target is a configured fraction of the opening profit (30% by default).
One point is four ticks. The tick value is tick index * contract size.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file, YAML or JSON (optional)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.LogFormat, "log-format", "", "Log format: text|json (overrides config)")
	cmd.PersistentFlags().Float64Var(&rc.TargetFraction, "target-fraction", 0, "Fraction of opening profit used as target, e.g. 0.30 or 0.49 (overrides config)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.setup(cmd)
	}

	cmd.AddCommand(
		newInstrumentsCmd(rc),
		newInstrumentCmd(rc),
		newCalcCmd(rc),
		newPromptCmd(rc),
		newServeCmd(rc),
		newConfigCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tickcalc %s\n", Version)
		},
	})

	return cmd
}

// setup loads configuration, applies flag overrides and builds the logger
// and calculator shared by every subcommand.
func (rc *RootConfig) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(rc.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = rc.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = rc.LogFormat
	}
	if flags.Changed("target-fraction") {
		cfg.Calculator.TargetFraction = rc.TargetFraction
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	calc, err := risk.NewCalculator(nil, cfg.Calculator.TargetFraction)
	if err != nil {
		return err
	}

	rc.Config = cfg
	rc.Log = log
	rc.Calc = calc

	log.WithFields(logrus.Fields{
		"config":          rc.ConfigPath,
		"target_fraction": cfg.Calculator.TargetFraction,
	}).Debug("configuration loaded")
	return nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
