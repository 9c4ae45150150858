package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tickcalc/market"
	"github.com/rustyeddy/tickcalc/risk"
	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Calculator CalculatorConfig `json:"calculator" yaml:"calculator"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Log        LogConfig        `json:"log" yaml:"log"`
	Output     OutputConfig     `json:"output" yaml:"output"`
}

// CalculatorConfig contains the profit target policy
type CalculatorConfig struct {
	TargetFraction    float64 `json:"target_fraction" yaml:"target_fraction"`
	DefaultInstrument string  `json:"default_instrument,omitempty" yaml:"default_instrument,omitempty"`
}

// ServerConfig contains HTTP listener parameters
type ServerConfig struct {
	Addr         string `json:"addr" yaml:"addr"`
	ReadTimeout  string `json:"read_timeout" yaml:"read_timeout"`   // e.g. "5s"
	WriteTimeout string `json:"write_timeout" yaml:"write_timeout"` // e.g. "10s"
}

// Timeouts parses the read and write timeouts.
func (s ServerConfig) Timeouts() (read, write time.Duration, err error) {
	if read, err = parseDuration(s.ReadTimeout); err != nil {
		return 0, 0, fmt.Errorf("server.read_timeout: %w", err)
	}
	if write, err = parseDuration(s.WriteTimeout); err != nil {
		return 0, 0, fmt.Errorf("server.write_timeout: %w", err)
	}
	return read, write, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug|info|warn|error
	Format string `json:"format" yaml:"format"` // text|json
}

// OutputConfig selects how CLI results are rendered
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // table|json|csv|org
}

var (
	logLevels     = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	logFormats    = []string{"text", "json"}
	outputFormats = []string{"table", "json", "csv", "org"}
)

// Load builds a Config from Default, the optional file at path and
// environment overrides, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := readFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Missing keys keep their defaults.
	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", jerr)
		}
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// WriteYAML writes the configuration to w as YAML.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return enc.Close()
}

// ApplyEnv overrides fields from TICKCALC_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("TICKCALC_TARGET_FRACTION"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse TICKCALC_TARGET_FRACTION %q: %w", v, err)
		}
		c.Calculator.TargetFraction = f
	}
	if v, ok := lookup("TICKCALC_DEFAULT_INSTRUMENT"); ok && v != "" {
		c.Calculator.DefaultInstrument = v
	}
	if v, ok := lookup("TICKCALC_HTTP_ADDR"); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup("TICKCALC_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("TICKCALC_LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := lookup("TICKCALC_OUTPUT_FORMAT"); ok && v != "" {
		c.Output.Format = v
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := risk.CheckFraction(c.Calculator.TargetFraction); err != nil {
		return fmt.Errorf("calculator.target_fraction must be in (0, 1]")
	}
	if c.Calculator.DefaultInstrument != "" {
		if _, err := market.Default().Lookup(c.Calculator.DefaultInstrument); err != nil {
			return fmt.Errorf("unknown instrument: %s", c.Calculator.DefaultInstrument)
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, _, err := c.Server.Timeouts(); err != nil {
		return err
	}
	if !oneOf(c.Log.Level, logLevels) {
		return fmt.Errorf("log.level must be one of %s", strings.Join(logLevels, ", "))
	}
	if !oneOf(c.Log.Format, logFormats) {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	if !oneOf(c.Output.Format, outputFormats) {
		return fmt.Errorf("output.format must be one of %s", strings.Join(outputFormats, ", "))
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Calculator: CalculatorConfig{
			TargetFraction: risk.DefaultTargetFraction,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  "5s",
			WriteTimeout: "10s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}
