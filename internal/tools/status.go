package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"neotokyo/internal/alignment"
)

// AlignmentTool handles alignment_status: reports the player's ledger
// totals and derived lean label.
type AlignmentTool struct {
	ledger *alignment.Ledger
}

// NewAlignmentTool creates an AlignmentTool bound to the given ledger.
func NewAlignmentTool(ledger *alignment.Ledger) *AlignmentTool {
	return &AlignmentTool{ledger: ledger}
}

// Definition returns the MCP tool definition for registration.
func (t *AlignmentTool) Definition() mcp.Tool {
	return mcp.NewTool("alignment_status",
		mcp.WithDescription(
			"Report the player's faction alignment: Kurenai and Azure reputation totals, "+
				"the net score, and the current lean label.",
		),
	)
}

// Handle processes the alignment_status tool call.
func (t *AlignmentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := t.ledger.State()
	text := fmt.Sprintf("Kurenai: %d\nAzure: %d\nNet: %+d\nAlignment: %s",
		st.Kurenai, st.Azure, st.Net, st.Label)
	return mcp.NewToolResultText(text), nil
}
