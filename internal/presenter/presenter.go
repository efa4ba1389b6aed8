// Package presenter renders quest store output for the companion surfaces:
// the quest log, the accept dialog, and the combat-text overlay.
//
// Presenters are stateless view bindings. They receive read-only quest data
// plus the current alignment reading and produce styled text; nothing is
// cached between renders. The only route back into the engine is the
// Intents interface — presenters never hold ledger or persistence handles.
package presenter

import (
	"github.com/charmbracelet/lipgloss"

	"neotokyo/internal/alignment"
	"neotokyo/internal/quest"
)

// Intents is the slice of store behavior a presenter may invoke.
// *quest.Store satisfies it.
type Intents interface {
	Accept(id string) error
	Decline(id string) error
}

// Faction palette.
var (
	kurenaiStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")).Bold(true)
	azureStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")).Bold(true)
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))

	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// biasStyle picks the faction color for a quest's thematic leaning.
func biasStyle(b quest.Bias) lipgloss.Style {
	switch b {
	case quest.BiasKurenai:
		return kurenaiStyle
	case quest.BiasAzure:
		return azureStyle
	default:
		return neutralStyle
	}
}

// labelStyle picks the faction color for a ledger label.
func labelStyle(l alignment.Label) lipgloss.Style {
	switch l {
	case alignment.LabelKurenai:
		return kurenaiStyle
	case alignment.LabelAzure:
		return azureStyle
	default:
		return neutralStyle
	}
}
