package presenter

import (
	"fmt"
	"strings"

	"neotokyo/internal/alignment"
	"neotokyo/internal/quest"
)

// RenderQuestLog renders the quest log screen: current standing, then the
// active and completed sections in offer order.
func RenderQuestLog(active, completed []quest.Quest, st alignment.State) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("QUEST LOG"))
	fmt.Fprintf(&b, "\nStanding: %s (kurenai %d / azure %d)\n",
		labelStyle(st.Label).Render(string(st.Label)), st.Kurenai, st.Azure)

	b.WriteString("\n" + headerStyle.Render("Active") + "\n")
	if len(active) == 0 {
		b.WriteString(dimStyle.Render("  (nothing underway)") + "\n")
	}
	for _, q := range active {
		writeQuestLine(&b, q)
	}

	b.WriteString("\n" + headerStyle.Render("Completed") + "\n")
	if len(completed) == 0 {
		b.WriteString(dimStyle.Render("  (nothing finished)") + "\n")
	}
	for _, q := range completed {
		writeQuestLine(&b, q)
	}

	return b.String()
}

func writeQuestLine(b *strings.Builder, q quest.Quest) {
	tag := fmt.Sprintf("[%s]", q.Type)
	fmt.Fprintf(b, "  %s %s — %s\n",
		biasStyle(q.Bias).Render(q.ID), dimStyle.Render(tag), q.Description)
}
