// Package server wires the quest engine and creates the MCP server
// instance.
//
// This is the composition root: it builds the concrete ledger, store,
// session, and content source and injects them into the tools, prompts,
// and resources that depend on them. No game logic lives here — only
// wiring.
package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"neotokyo/internal/alignment"
	"neotokyo/internal/config"
	"neotokyo/internal/content"
	"neotokyo/internal/prompts"
	"neotokyo/internal/resources"
	"neotokyo/internal/save"
	"neotokyo/internal/session"
	"neotokyo/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts, and
// resources registered. This is the single place where dependencies are
// resolved.
//
// The returned cleanup function flushes the final snapshot and closes the
// progress database; it must be called on shutdown (typically via defer).
// It is always non-nil.
func New() (*server.MCPServer, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, noop, fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, noop, fmt.Errorf("creating logger: %w", err)
	}

	// --- Build the engine ---

	ledger := alignment.New(alignment.Config{
		Threshold: cfg.AlignmentThreshold,
		Floor:     cfg.AlignmentFloor,
		Ceiling:   cfg.AlignmentCeiling,
	})

	saves := save.Open(cfg.DataDir, logger)

	sess := session.New(session.Params{
		Ledger:  ledger,
		Saves:   saves,
		Logger:  logger,
		StageID: cfg.StageID,
	})
	sess.Restore()

	cleanup := func() {
		sess.Close()
		if err := saves.Close(); err != nil {
			logger.Warn("closing progress store", zap.Error(err))
		}
		_ = logger.Sync()
	}

	// --- Seed the quest board ---
	//
	// The built-in catalog always loads; the Gemini writer is an optional
	// polish pass. A missing key or failed client leaves catalog text
	// as-is — content never blocks startup.

	catalog, err := content.LoadCatalog()
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("loading quest catalog: %w", err)
	}

	var writer *content.Writer
	if cfg.GeminiAPIKey != "" {
		writer, err = content.NewWriter(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("quest writer disabled", zap.Error(err))
			writer = nil
		}
	}

	src := content.NewSource(catalog, writer, logger)
	offered := src.OfferAll(context.Background(), sess.Store)
	logger.Info("quest board seeded", zap.Int("offered", offered))

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"neotokyo",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	offerTool := tools.NewOfferTool(sess.Store)
	s.AddTool(offerTool.Definition(), offerTool.Handle)

	acceptTool := tools.NewAcceptTool(sess.Store)
	s.AddTool(acceptTool.Definition(), acceptTool.Handle)

	declineTool := tools.NewDeclineTool(sess.Store)
	s.AddTool(declineTool.Definition(), declineTool.Handle)

	completeTool := tools.NewCompleteTool(sess.Store, ledger)
	s.AddTool(completeTool.Definition(), completeTool.Handle)

	questLogTool := tools.NewQuestLogTool(sess.Store, ledger)
	s.AddTool(questLogTool.Definition(), questLogTool.Handle)

	alignmentTool := tools.NewAlignmentTool(ledger)
	s.AddTool(alignmentTool.Definition(), alignmentTool.Handle)

	// --- Register prompts ---

	gmPrompt := prompts.NewGameMasterPrompt()
	s.AddPrompt(gmPrompt.Definition(), gmPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(sess.Store, ledger)
	s.AddResource(resourceHandler.QuestsResource(), resourceHandler.HandleQuests)
	s.AddResource(resourceHandler.AlignmentResource(), resourceHandler.HandleAlignment)

	return s, cleanup, nil
}

// noop is the default cleanup when wiring fails partway.
func noop() {}

// newLogger builds the process logger. Output goes to stderr — stdout
// belongs to the MCP stdio transport and must stay clean.
func newLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func serverInstructions() string {
	return `You have access to the Neo-Tokyo: Rival Academies quest engine.

## WHAT THIS IS

A quest and faction-alignment engine for a narrative game. Two rival
academies compete for the player's loyalty: Kurenai (crimson) and Azure.
Quests move through a fixed lifecycle:

  offered -> active -> completed
  offered -> declined

Completed and declined are terminal. Completing a quest pays its
reputation reward onto the player's alignment ledger in the same step.
There is no window where a quest reads completed but the ledger hasn't
moved.

## TOOLS

- quest_offer: put a new quest on the board. A reward touches at most
  ONE faction. A quest's bias (UI flavor) is independent of its reward,
  so a kurenai-flavored quest may legitimately pay Azure reputation.
- quest_accept / quest_decline: relay the player's decision on an
  offered quest.
- quest_complete: finish an active quest. Returns the combat-text
  overlay with the payout and the player's new standing. Read it to
  the player.
- quest_log: the full board (active + completed) with current standing.
- alignment_status: just the ledger numbers and lean label.

## RESOURCES

- neotokyo://quests: every quest with its status, in offer order.
- neotokyo://alignment: reputation totals, net score, lean label.

## RULES OF PLAY

- Never invent quest state: read the board before narrating it.
- Lifecycle errors (duplicate offer, completing an offered quest) are
  rule violations, not crashes. Explain them in fiction and move on.
- The lean label flips at the configured threshold of net reputation.
  Treat a 'neutral' reading as genuinely uncommitted, not as zero data.
- Progress persists between sessions automatically. Never promise a
  save happened at a specific instant; the engine saves in the
  background after each completion.`
}
