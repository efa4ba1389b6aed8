// Package prompts implements the MCP prompt handlers for the engine.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a specific sequence. Unlike tools (which the AI
// calls), prompts are initiated by the player at the table.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// GameMasterPrompt handles the neotokyo-gm MCP prompt. It primes the AI
// to run a session: survey the board, offer content, and narrate payouts.
type GameMasterPrompt struct{}

// NewGameMasterPrompt creates a GameMasterPrompt.
func NewGameMasterPrompt() *GameMasterPrompt {
	return &GameMasterPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *GameMasterPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("neotokyo-gm",
		mcp.WithPromptDescription(
			"Run a Neo-Tokyo: Rival Academies session. Surveys the quest board and "+
				"the player's faction standing, then drives the offer/accept/complete loop.",
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription(
				"Optional session focus: 'kurenai', 'azure', or 'neutral'. Steers which quests get offered first.",
			),
		),
	)
}

// Handle processes the neotokyo-gm prompt request.
func (p *GameMasterPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := "neutral"
	if args := req.Params.Arguments; args != nil {
		if f, ok := args["focus"]; ok && f != "" {
			focus = f
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Run a Neo-Tokyo session (focus: %s)", focus),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"You are the game master for Neo-Tokyo: Rival Academies. Session focus: %s.\n\n"+
						"Please:\n"+
						"1. Read `neotokyo://quests` and `neotokyo://alignment` to learn where I stand\n"+
						"2. Run `quest_log` and show me the board\n"+
						"3. Offer me something fitting via `quest_offer` — remember a reward touches at most one faction\n"+
						"4. When I accept, track it; when I finish, run `quest_complete` and read me the payout\n"+
						"5. Keep an eye on my alignment with `alignment_status` and let it color the narration\n\n"+
						"Stay in character. The rain never stops in Neo-Tokyo.",
					focus,
				)),
			},
		},
	}, nil
}
