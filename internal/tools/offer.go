// Package tools implements the MCP tools that expose the quest engine to AI
// collaborators: the content pipeline offers quests, the companion surfaces
// read state and forward player intents.
//
// Every lifecycle failure here is caller-recoverable, so tools report it
// via mcp.NewToolResultError and reserve Go errors for infrastructure
// faults.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"neotokyo/internal/alignment"
	"neotokyo/internal/quest"
)

// OfferTool handles the quest_offer MCP tool — the content collaborator's
// single entry point into the engine.
type OfferTool struct {
	store *quest.Store
}

// NewOfferTool creates an OfferTool bound to the given store.
func NewOfferTool(store *quest.Store) *OfferTool {
	return &OfferTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *OfferTool) Definition() mcp.Tool {
	return mcp.NewTool("quest_offer",
		mcp.WithDescription(
			"Offer a new quest to the player. The quest starts in status 'offered'; "+
				"the player accepts or declines it from the quest board. "+
				"At most one of kurenai/azure may carry a reward amount.",
		),
		mcp.WithString("id",
			mcp.Description("Stable quest id (slug). Omit to have one generated."),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Presentation priority: main (story critical), side, or secret."),
			mcp.Enum("main", "side", "secret"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Narrative text shown to the player."),
		),
		mcp.WithString("bias",
			mcp.Required(),
			mcp.Description("Thematic faction flavor for UI coloring. Independent of the reward."),
			mcp.Enum("kurenai", "azure", "neutral"),
		),
		mcp.WithNumber("kurenai",
			mcp.Description("Kurenai reputation granted on completion."),
		),
		mcp.WithNumber("azure",
			mcp.Description("Azure reputation granted on completion."),
		),
	)
}

// Handle processes the quest_offer tool call.
func (t *OfferTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		id = uuid.NewString()
	}

	q := quest.Quest{
		ID:          id,
		Type:        quest.QuestType(req.GetString("type", "")),
		Description: req.GetString("description", ""),
		Bias:        quest.Bias(req.GetString("bias", "")),
		Rewards: quest.Rewards{AlignmentShift: alignment.Shift{
			Kurenai: int(req.GetFloat("kurenai", 0)),
			Azure:   int(req.GetFloat("azure", 0)),
		}},
	}
	if strings.TrimSpace(q.Description) == "" {
		return mcp.NewToolResultError("'description' is required — the player has to know what they're signing up for"), nil
	}

	if err := t.store.Offer(q); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Quest %q is now on offer (%s, bias %s).", q.ID, q.Type, q.Bias)), nil
}
