package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"neotokyo/internal/alignment"
	"neotokyo/internal/presenter"
	"neotokyo/internal/quest"
)

// QuestLogTool handles quest_log: renders the quest log overlay with the
// active and completed lists plus the current faction standing.
type QuestLogTool struct {
	store  *quest.Store
	ledger *alignment.Ledger
}

// NewQuestLogTool creates a QuestLogTool bound to the given store and ledger.
func NewQuestLogTool(store *quest.Store, ledger *alignment.Ledger) *QuestLogTool {
	return &QuestLogTool{store: store, ledger: ledger}
}

// Definition returns the MCP tool definition for registration.
func (t *QuestLogTool) Definition() mcp.Tool {
	return mcp.NewTool("quest_log",
		mcp.WithDescription(
			"Render the quest log overlay: active quests, completed quests, and the "+
				"player's current faction standing.",
		),
	)
}

// Handle processes the quest_log tool call.
func (t *QuestLogTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	active := t.store.ByStatus(quest.StatusActive)
	completed := t.store.ByStatus(quest.StatusCompleted)
	return mcp.NewToolResultText(presenter.RenderQuestLog(active, completed, t.ledger.State())), nil
}
