package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"neotokyo/internal/alignment"
	"neotokyo/internal/presenter"
	"neotokyo/internal/quest"
)

// AcceptTool handles quest_accept: the player takes an offered quest.
type AcceptTool struct {
	store *quest.Store
}

// NewAcceptTool creates an AcceptTool bound to the given store.
func NewAcceptTool(store *quest.Store) *AcceptTool {
	return &AcceptTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *AcceptTool) Definition() mcp.Tool {
	return mcp.NewTool("quest_accept",
		mcp.WithDescription("Accept an offered quest on the player's behalf, moving it to 'active'."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the quest to accept. Must currently be in status 'offered'."),
		),
	)
}

// Handle processes the quest_accept tool call.
func (t *AcceptTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := requireID(req)
	if !ok {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	if err := t.store.Accept(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Quest %q accepted — it is now active.", id)), nil
}

// DeclineTool handles quest_decline: the player turns an offer down.
type DeclineTool struct {
	store *quest.Store
}

// NewDeclineTool creates a DeclineTool bound to the given store.
func NewDeclineTool(store *quest.Store) *DeclineTool {
	return &DeclineTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *DeclineTool) Definition() mcp.Tool {
	return mcp.NewTool("quest_decline",
		mcp.WithDescription("Decline an offered quest. Declined is terminal — the id can only return as fresh content."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the quest to decline. Must currently be in status 'offered'."),
		),
	)
}

// Handle processes the quest_decline tool call.
func (t *DeclineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := requireID(req)
	if !ok {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	if err := t.store.Decline(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Quest %q declined.", id)), nil
}

// CompleteTool handles quest_complete: an active quest is finished, its
// reward lands on the ledger, and the combat-text overlay is returned so
// the caller can show the payout.
type CompleteTool struct {
	store  *quest.Store
	ledger *alignment.Ledger
}

// NewCompleteTool creates a CompleteTool bound to the given store and ledger.
func NewCompleteTool(store *quest.Store, ledger *alignment.Ledger) *CompleteTool {
	return &CompleteTool{store: store, ledger: ledger}
}

// Definition returns the MCP tool definition for registration.
func (t *CompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("quest_complete",
		mcp.WithDescription(
			"Complete an active quest. Applies the quest's alignment reward and returns "+
				"the combat-text overlay including the new standing.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the quest to complete. Must currently be in status 'active'."),
		),
	)
}

// Handle processes the quest_complete tool call.
func (t *CompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := requireID(req)
	if !ok {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	if err := t.store.Complete(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	q, err := t.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("reading completed quest: %w", err)
	}
	return mcp.NewToolResultText(presenter.RenderCombatText(q, t.ledger.State())), nil
}

// requireID extracts the mandatory quest id argument.
func requireID(req mcp.CallToolRequest) (string, bool) {
	id := strings.TrimSpace(req.GetString("id", ""))
	return id, id != ""
}
