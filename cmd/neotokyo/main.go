// Neo-Tokyo: Rival Academies — quest & faction-alignment MCP server.
//
// Exposes the quest engine to AI collaborators over MCP (stdio transport):
// a content pipeline offers quests, a companion relays player decisions,
// and the alignment ledger tracks which academy the player is drifting
// toward.
//
// Usage:
//
//	neotokyo serve   # Start MCP server (stdio transport)
//	neotokyo demo    # Play a scripted offer/accept/complete turn locally
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"neotokyo/internal/alignment"
	"neotokyo/internal/presenter"
	"neotokyo/internal/quest"
	ntserver "neotokyo/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "demo":
		if err := runDemo(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("neotokyo v%s\n", ntserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := ntserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt so the final snapshot gets written.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cleanup()
		os.Exit(0)
	}()

	return server.ServeStdio(s)
}

// runDemo plays one scripted turn against a throwaway in-memory engine and
// prints the UI overlays. Handy for eyeballing presenter output without an
// MCP host attached; nothing is persisted.
func runDemo() error {
	ledger := alignment.New(alignment.DefaultConfig())
	store := quest.NewStore(ledger)
	defer store.Close()

	q := quest.Quest{
		ID:          "rooftop-duel",
		Type:        quest.TypeMain,
		Description: "Answer the Kurenai captain's challenge at sundown.",
		Bias:        quest.BiasKurenai,
		Rewards:     quest.Rewards{AlignmentShift: alignment.Shift{Kurenai: 10}},
	}
	if err := store.Offer(q); err != nil {
		return fmt.Errorf("offering demo quest: %w", err)
	}

	dialog := presenter.NewAcceptDialog(store)
	offered, err := store.Get(q.ID)
	if err != nil {
		return err
	}
	fmt.Println(dialog.Render(offered))
	fmt.Println()

	if err := dialog.Accept(q.ID); err != nil {
		return fmt.Errorf("accepting demo quest: %w", err)
	}
	if err := store.Complete(q.ID); err != nil {
		return fmt.Errorf("completing demo quest: %w", err)
	}

	done, err := store.Get(q.ID)
	if err != nil {
		return err
	}
	fmt.Println(presenter.RenderCombatText(done, ledger.State()))
	fmt.Println()

	active := store.ByStatus(quest.StatusActive)
	completed := store.ByStatus(quest.StatusCompleted)
	fmt.Println(presenter.RenderQuestLog(active, completed, ledger.State()))
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Neo-Tokyo: Rival Academies v%s — quest & alignment MCP server

Usage:
  neotokyo serve   Start the MCP server (stdio transport)
  neotokyo demo    Play a scripted quest turn locally and print the overlays

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "neotokyo": {
        "command": "neotokyo",
        "args": ["serve"]
      }
    }
  }

Environment:
  NEOTOKYO_DATA_DIR             Progress database location (default ~/.neotokyo)
  NEOTOKYO_STAGE_ID             Narrative stage recorded in snapshots
  NEOTOKYO_ALIGNMENT_THRESHOLD  Net reputation gap for a faction lean (default 10)
  NEOTOKYO_ALIGNMENT_FLOOR      Optional per-faction reputation floor
  NEOTOKYO_ALIGNMENT_CEILING    Optional per-faction reputation ceiling
  GEMINI_API_KEY                Enables the Gemini quest-description writer
  NEOTOKYO_DEBUG                Debug-level logging (stderr)
`, ntserver.Version)
}
