package presenter

import (
	"fmt"
	"strings"

	"neotokyo/internal/alignment"
	"neotokyo/internal/quest"
)

// RenderCombatText renders the overlay popup for a completed quest: the
// completion banner, the reputation payout if any, and the new standing.
// The ledger state passed in must already include the quest's shift — the
// store guarantees that ordering.
func RenderCombatText(q quest.Quest, st alignment.State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", headerStyle.Render("QUEST COMPLETE"), biasStyle(q.Bias).Render(q.ID))

	shift := q.Rewards.AlignmentShift
	switch {
	case shift.Kurenai != 0:
		b.WriteString(kurenaiStyle.Render(fmt.Sprintf("%+d KURENAI", shift.Kurenai)) + "\n")
	case shift.Azure != 0:
		b.WriteString(azureStyle.Render(fmt.Sprintf("%+d AZURE", shift.Azure)) + "\n")
	}

	fmt.Fprintf(&b, "Standing: %s", labelStyle(st.Label).Render(string(st.Label)))
	return b.String()
}
