// Package alignment accumulates the two-axis faction reputation score for a
// play session: kurenai versus azure.
//
// The ledger is pure accumulation — it has no error paths and no knowledge
// of quests. Its counters change only through ApplyShift (driven by quest
// completion) and Restore (session resume). Anything that would make a
// shift invalid is rejected upstream before it reaches the ledger.
package alignment

import (
	"fmt"
	"sync"
)

// Shift is a reputation delta. At most one faction may carry a non-zero
// amount: a single source shifts a single faction.
type Shift struct {
	Kurenai int `json:"kurenai,omitempty" yaml:"kurenai,omitempty"`
	Azure   int `json:"azure,omitempty" yaml:"azure,omitempty"`
}

// IsZero reports whether the shift carries no reputation change.
func (s Shift) IsZero() bool {
	return s.Kurenai == 0 && s.Azure == 0
}

// Validate returns an error if both factions carry a non-zero amount.
func (s Shift) Validate() error {
	if s.Kurenai != 0 && s.Azure != 0 {
		return fmt.Errorf("shift sets both factions (kurenai %d, azure %d): at most one allowed", s.Kurenai, s.Azure)
	}
	return nil
}

// Label is the categorical reading of the current reputation balance.
type Label string

const (
	LabelKurenai Label = "kurenai-leaning"
	LabelAzure   Label = "azure-leaning"
	LabelNeutral Label = "neutral"
)

// Config controls label derivation and optional counter bounds.
// Bounds are configuration, never baked-in constants: a nil Floor/Ceiling
// leaves the counters unbounded.
type Config struct {
	// Threshold is the minimum |kurenai − azure| gap for a faction-leaning
	// label. A gap below the threshold reads as neutral.
	Threshold int
	// Floor and Ceiling clamp each counter after every shift when set.
	Floor   *int
	Ceiling *int
}

// DefaultConfig returns the stock tuning: threshold 10, unbounded counters.
func DefaultConfig() Config {
	return Config{Threshold: 10}
}

// State is an immutable snapshot of the ledger totals and derived label.
type State struct {
	Kurenai int   `json:"kurenai"`
	Azure   int   `json:"azure"`
	Net     int   `json:"net"` // Kurenai minus Azure
	Label   Label `json:"label"`
}

// Ledger holds the running faction totals. All mutation goes through
// ApplyShift and Restore; readers get value snapshots via State.
type Ledger struct {
	mu      sync.Mutex
	cfg     Config
	kurenai int
	azure   int
}

// New creates a ledger with zeroed counters.
func New(cfg Config) *Ledger {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultConfig().Threshold
	}
	return &Ledger{cfg: cfg}
}

// ApplyShift adds the delta to the running totals. A zero shift is a no-op.
func (l *Ledger) ApplyShift(s Shift) {
	if s.IsZero() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.kurenai = l.clamp(l.kurenai + s.Kurenai)
	l.azure = l.clamp(l.azure + s.Azure)
}

// Restore overwrites the counters from persisted per-faction totals.
func (l *Ledger) Restore(kurenai, azure int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.kurenai = l.clamp(kurenai)
	l.azure = l.clamp(azure)
}

// State returns the current totals and derived label.
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	net := l.kurenai - l.azure
	label := LabelNeutral
	switch {
	case net >= l.cfg.Threshold:
		label = LabelKurenai
	case -net >= l.cfg.Threshold:
		label = LabelAzure
	}
	return State{Kurenai: l.kurenai, Azure: l.azure, Net: net, Label: label}
}

func (l *Ledger) clamp(v int) int {
	if l.cfg.Floor != nil && v < *l.cfg.Floor {
		v = *l.cfg.Floor
	}
	if l.cfg.Ceiling != nil && v > *l.cfg.Ceiling {
		v = *l.cfg.Ceiling
	}
	return v
}
