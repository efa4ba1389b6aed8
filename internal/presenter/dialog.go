package presenter

import (
	"fmt"
	"strings"

	"neotokyo/internal/quest"
)

// AcceptDialog presents a single offered quest and forwards the player's
// answer to the store. It holds the Intents handle and nothing else.
type AcceptDialog struct {
	intents Intents
}

// NewAcceptDialog creates a dialog bound to the given intent sink.
func NewAcceptDialog(intents Intents) *AcceptDialog {
	return &AcceptDialog{intents: intents}
}

// Render shows the offer for one quest.
func (d *AcceptDialog) Render(q quest.Quest) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("NEW QUEST") + "\n")
	fmt.Fprintf(&b, "%s %s\n\n%s\n\n",
		biasStyle(q.Bias).Render(q.ID),
		dimStyle.Render(fmt.Sprintf("[%s]", q.Type)),
		q.Description)
	b.WriteString(dimStyle.Render("accept / decline"))
	return b.String()
}

// Accept forwards the accept intent for the given quest.
func (d *AcceptDialog) Accept(id string) error {
	return d.intents.Accept(id)
}

// Decline forwards the decline intent for the given quest.
func (d *AcceptDialog) Decline(id string) error {
	return d.intents.Decline(id)
}
