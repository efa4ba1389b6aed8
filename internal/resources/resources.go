// Package resources implements the MCP resource handlers for the engine.
//
// Resources provide read-only state the host can pull for context. They
// use URI-based addressing (neotokyo://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"neotokyo/internal/alignment"
	"neotokyo/internal/quest"
)

// Handler manages the engine's resource endpoints.
type Handler struct {
	store  *quest.Store
	ledger *alignment.Ledger
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store *quest.Store, ledger *alignment.Ledger) *Handler {
	return &Handler{store: store, ledger: ledger}
}

// QuestsResource returns the MCP resource definition for the quest list.
func (h *Handler) QuestsResource() mcp.Resource {
	return mcp.NewResource(
		"neotokyo://quests",
		"Quest List",
		mcp.WithResourceDescription("Every quest the engine knows about, in offer order, with current status"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleQuests returns the full quest list as JSON.
func (h *Handler) HandleQuests(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(h.store.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling quest list: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// AlignmentResource returns the MCP resource definition for faction standing.
func (h *Handler) AlignmentResource() mcp.Resource {
	return mcp.NewResource(
		"neotokyo://alignment",
		"Faction Alignment",
		mcp.WithResourceDescription("Kurenai and Azure reputation totals, net score, and lean label"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleAlignment returns the current ledger state as JSON.
func (h *Handler) HandleAlignment(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(h.ledger.State(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling alignment state: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

func jsonResource(uri string, data []byte) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}
}
