package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tickcalc/config"
	"github.com/rustyeddy/tickcalc/risk"
)

// run executes the root command with args and stdin, returning stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tickcalc dev\n", out)
}

func TestInstrumentsTable(t *testing.T) {
	out, _, err := run(t, "", "instruments")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[1], "Nasdaq 100 (Mini)")
	assert.Contains(t, lines[3], "YM=F")
}

func TestInstrumentsJSON(t *testing.T) {
	out, _, err := run(t, "", "instruments", "--format", "json")
	require.NoError(t, err)

	var ds []risk.Details
	require.NoError(t, json.Unmarshal([]byte(out), &ds))
	require.Len(t, ds, 6)
	assert.Equal(t, "6E=F", ds[5].Symbol)
}

func TestInstrumentDetails(t *testing.T) {
	out, _, err := run(t, "", "instrument", "Euro/USD (6E)")
	require.NoError(t, err)
	assert.Contains(t, out, "Details for Euro/USD (6E):")
	assert.Contains(t, out, "Tick Index:     0.00005 index points")
	assert.Contains(t, out, "Tick Value:     $6.25")
	assert.Contains(t, out, "Point Value:    $25.00 (4 ticks)")

	_, _, err = run(t, "", "instrument", "Bitcoin")
	assert.ErrorIs(t, err, risk.ErrNotFound)
}

func TestCalcTable(t *testing.T) {
	out, _, err := run(t, "", "calc", "-i", "Nasdaq 100 (Mini)", "-p", "1000", "-r", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "30% of your opening profit ($1000.00):")
	assert.Contains(t, out, "Target Profit:  $300.00")
	assert.Contains(t, out, "Ticks:          60.00 ticks")
	assert.Contains(t, out, "Points:         15.00 points")
	assert.Contains(t, out, "Stop Loss Ticks:   40.00 ticks")
	assert.Contains(t, out, "Stop Loss Points:  10.00 points")
}

func TestCalcJSONWithLegacyFraction(t *testing.T) {
	out, _, err := run(t, "", "--target-fraction", "0.49", "calc", "-i", "NQ=F", "-p", "1000", "-o", "json")
	require.NoError(t, err)

	var res risk.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 490.0, res.TargetProfit, 1e-9)
	assert.InDelta(t, 98.0, res.TargetTicks, 1e-9)
	assert.Equal(t, 0.0, res.StopLossTicks)
}

func TestCalcErrors(t *testing.T) {
	_, _, err := run(t, "", "calc", "-i", "Gold (XAU)", "-p", "0", "-r", "50")
	assert.ErrorIs(t, err, risk.ErrInvalidInput)

	_, _, err = run(t, "", "calc", "-i", "Gold (XAU)", "-p", "100", "-r", "-1")
	assert.ErrorIs(t, err, risk.ErrInvalidInput)

	_, _, err = run(t, "", "calc", "-i", "Bitcoin", "-p", "100")
	assert.ErrorIs(t, err, risk.ErrNotFound)

	_, _, err = run(t, "", "calc", "-p", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--instrument is required")

	_, _, err = run(t, "", "calc", "-i", "Gold (XAU)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening-profit")

	_, _, err = run(t, "", "calc", "-i", "Gold (XAU)", "-p", "100", "-o", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")

	_, _, err = run(t, "", "--target-fraction", "2", "calc", "-i", "Gold (XAU)", "-p", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target_fraction")
}

func TestCalcUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickcalc.yaml")
	cfg := config.Default()
	cfg.Calculator.TargetFraction = 0.49
	cfg.Calculator.DefaultInstrument = "Dow Jones (Mini)"
	cfg.Output.Format = "csv"
	require.NoError(t, cfg.SaveToFile(path))

	out, _, err := run(t, "", "--config", path, "calc", "-p", "500")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "Dow Jones (Mini),YM=F,500.000000,0.000000,0.490000"))
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickcalc.json")

	out, _, err := run(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	loaded, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	_, _, err = run(t, "", "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = run(t, "", "config", "init", "--force", path)
	require.NoError(t, err)

	out, _, err = run(t, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "target_fraction: 0.3")
	assert.Contains(t, out, "8080")
}

func TestLogsGoToStderr(t *testing.T) {
	out, errOut, err := run(t, "", "--log-level", "debug", "--log-format", "json", "calc", "-i", "CL=F", "-p", "100", "-o", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, `"level"`)
	assert.Contains(t, errOut, `"msg":"calculation done"`)
}

func TestPromptReasksOnInvalidAmounts(t *testing.T) {
	stdin := strings.Join([]string{
		"9",         // out of range
		"Gold (XAU)",
		"0", "50",   // opening profit must be positive
		"abc", "50", // not a number
		"$1,000", "200",
		"quit",
	}, "\n") + "\n"

	out, _, err := run(t, stdin, "prompt")
	require.NoError(t, err)

	assert.Contains(t, out, "target = 30% of opening profit")
	assert.Equal(t, 1, strings.Count(out, msgSelect))
	assert.Equal(t, 2, strings.Count(out, msgInvalid))
	assert.Contains(t, out, "Details for Gold (XAU):")
	assert.Contains(t, out, "Target Profit:  $300.00")
	assert.Contains(t, out, "Ticks:          30.00 ticks")
	assert.Contains(t, out, "Stop Loss Ticks:   20.00 ticks")

	first := strings.Index(out, msgInvalid)
	result := strings.Index(out, "Target Profit:")
	assert.Less(t, first, result)
}

func TestPromptEOF(t *testing.T) {
	out, _, err := run(t, "NQ=F\n1000\n", "prompt")
	require.NoError(t, err)
	assert.Contains(t, out, "Details for Nasdaq 100 (Mini):")
	assert.NotContains(t, out, "Target Profit:")
}

func TestParseDollars(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1000", 1000, false},
		{"$1,000.50", 1000.5, false},
		{" 250 ", 250, false},
		{"", 0, true},
		{"$", 0, true},
		{"ten", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDollars(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
