// market/instruments.go
package market

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// TicksPerPoint is the number of ticks that make up one point.
const TicksPerPoint = 4

var (
	ErrNotFound          = errors.New("instrument not found")
	ErrInvalidInstrument = errors.New("invalid instrument")
)

// InstrumentSpec describes one tradable futures contract.
type InstrumentSpec struct {
	Name         string  `json:"name" yaml:"name"`
	Symbol       string  `json:"symbol" yaml:"symbol"`
	TickIndex    float64 `json:"tick_index" yaml:"tick_index"`       // minimum price increment
	ContractSize float64 `json:"contract_size" yaml:"contract_size"` // underlying units per contract
}

// TickValue is the dollar value of a one tick move.
func (s InstrumentSpec) TickValue() float64 {
	return s.TickIndex * s.ContractSize
}

// PointValue is the dollar value of a one point (TicksPerPoint ticks) move.
func (s InstrumentSpec) PointValue() float64 {
	return s.TickValue() * TicksPerPoint
}

// Validate reports ErrInvalidInstrument when the instrument cannot be used to
// convert dollars into ticks.
func (s InstrumentSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInstrument)
	}
	if !(s.TickIndex > 0) || math.IsInf(s.TickIndex, 0) {
		return fmt.Errorf("%w: %s tick index %v must be positive", ErrInvalidInstrument, s.Name, s.TickIndex)
	}
	if !(s.ContractSize > 0) || math.IsInf(s.ContractSize, 0) {
		return fmt.Errorf("%w: %s contract size %v must be positive", ErrInvalidInstrument, s.Name, s.ContractSize)
	}
	tv := s.TickValue()
	if !(tv > 0) || math.IsInf(tv, 0) {
		return fmt.Errorf("%w: %s tick value %v out of range", ErrInvalidInstrument, s.Name, tv)
	}
	return nil
}

// Registry is an ordered, read-only set of instruments keyed by display name.
// It is safe for concurrent use since nothing mutates it after construction.
type Registry struct {
	specs  []InstrumentSpec
	byName map[string]int
}

// NewRegistry validates specs and returns them as a registry in the order given.
func NewRegistry(specs ...InstrumentSpec) (*Registry, error) {
	r := &Registry{
		specs:  make([]InstrumentSpec, 0, len(specs)),
		byName: make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate instrument %q", s.Name)
		}
		r.byName[s.Name] = len(r.specs)
		r.specs = append(r.specs, s)
	}
	return r, nil
}

// Lookup returns the instrument with the given display name. When there is no
// exact match the name is compared case-insensitively against names and symbols,
// so "nq=f" resolves to the Nasdaq contract.
func (r *Registry) Lookup(name string) (InstrumentSpec, error) {
	if i, ok := r.byName[name]; ok {
		return r.specs[i], nil
	}
	key := strings.TrimSpace(name)
	for _, s := range r.specs {
		if strings.EqualFold(s.Name, key) || strings.EqualFold(s.Symbol, key) {
			return s, nil
		}
	}
	return InstrumentSpec{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Names returns instrument display names in registry order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.specs))
	for i, s := range r.specs {
		out[i] = s.Name
	}
	return out
}

// All returns a copy of every instrument in registry order.
func (r *Registry) All() []InstrumentSpec {
	out := make([]InstrumentSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Len reports how many instruments the registry holds.
func (r *Registry) Len() int {
	return len(r.specs)
}

var defaultInstruments = []InstrumentSpec{
	{Name: "Nasdaq 100 (Mini)", Symbol: "NQ=F", TickIndex: 0.25, ContractSize: 20},
	{Name: "S&P 500 (Mini)", Symbol: "ES=F", TickIndex: 0.25, ContractSize: 50},
	{Name: "Dow Jones (Mini)", Symbol: "YM=F", TickIndex: 1, ContractSize: 5},
	{Name: "Crude Oil (WTI)", Symbol: "CL=F", TickIndex: 0.01, ContractSize: 1000},
	{Name: "Gold (XAU)", Symbol: "GC=F", TickIndex: 0.10, ContractSize: 100},
	{Name: "Euro/USD (6E)", Symbol: "6E=F", TickIndex: 0.00005, ContractSize: 125000},
}

var defaultRegistry = mustRegistry(defaultInstruments...)

// Default returns the built-in futures registry.
func Default() *Registry {
	return defaultRegistry
}

func mustRegistry(specs ...InstrumentSpec) *Registry {
	r, err := NewRegistry(specs...)
	if err != nil {
		panic(err)
	}
	return r
}
