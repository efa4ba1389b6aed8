// Package quest implements the authoritative quest registry and state
// machine for a play session of Neo-Tokyo: Rival Academies.
//
// Every quest moves through a one-way lifecycle:
//
//	offered → active → completed
//	offered → declined
//
// declined and completed are terminal — a quest is never resurrected.
// Completing a quest applies its alignment reward to the ledger before any
// watcher sees the status change, so observers never read a completed quest
// whose reputation effect is still pending.
//
// Same separation discipline as the rest of the engine:
// types, store, and errors live in separate files.
package quest

import (
	"fmt"
	"strings"

	"neotokyo/internal/alignment"
)

// --- Quest type enum ---

// QuestType categorizes presentation priority. It has no effect on the
// state machine.
type QuestType string

const (
	TypeMain   QuestType = "main"
	TypeSide   QuestType = "side"
	TypeSecret QuestType = "secret"
)

// validTypes is the set of allowed quest types.
var validTypes = map[QuestType]bool{
	TypeMain:   true,
	TypeSide:   true,
	TypeSecret: true,
}

// ValidateType returns an error if the type is not recognized.
func ValidateType(t QuestType) error {
	if !validTypes[t] {
		return fmt.Errorf("invalid quest type %q: must be one of: main, side, secret", t)
	}
	return nil
}

// --- Alignment bias enum ---

// Bias is a quest's thematic faction leaning, used for presentation
// coloring only. It is deliberately independent of the reward shift: a
// quest tagged azure may carry a kurenai-shifting reward.
type Bias string

const (
	BiasKurenai Bias = "kurenai"
	BiasAzure   Bias = "azure"
	BiasNeutral Bias = "neutral"
)

// validBiases is the set of allowed alignment biases.
var validBiases = map[Bias]bool{
	BiasKurenai: true,
	BiasAzure:   true,
	BiasNeutral: true,
}

// ValidateBias returns an error if the bias is not recognized.
func ValidateBias(b Bias) error {
	if !validBiases[b] {
		return fmt.Errorf("invalid alignment bias %q: must be one of: kurenai, azure, neutral", b)
	}
	return nil
}

// --- Status enum ---

// Status tracks where a quest sits in its lifecycle.
type Status string

const (
	StatusOffered   Status = "offered"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDeclined  Status = "declined"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusDeclined
}

// --- Core data structures ---

// Rewards holds what a quest grants on completion. The zero AlignmentShift
// means the quest carries no reputation reward.
type Rewards struct {
	AlignmentShift alignment.Shift `json:"alignment_shift" yaml:"alignment_shift"`
}

// Quest is a unit of player-facing content. Values are copied on every read
// from the store, so holders of a Quest never alias live store state.
type Quest struct {
	ID          string    `json:"id"`
	Type        QuestType `json:"type"`
	Description string    `json:"description"`
	Bias        Bias      `json:"bias"`
	Rewards     Rewards   `json:"rewards"`
	Status      Status    `json:"status"`
	OfferedAt   string    `json:"offered_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// Validate checks everything about a quest except its status, which is
// owned by the store. The reward shift invariant (at most one faction) is
// enforced here so an invalid shift can never reach the ledger.
func Validate(q Quest) error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("quest id is required")
	}
	if err := ValidateType(q.Type); err != nil {
		return err
	}
	if err := ValidateBias(q.Bias); err != nil {
		return err
	}
	if err := q.Rewards.AlignmentShift.Validate(); err != nil {
		return fmt.Errorf("quest %q rewards: %w", q.ID, err)
	}
	return nil
}
