package content

import (
	"context"
	"errors"
	"testing"

	"neotokyo/internal/alignment"
	"neotokyo/internal/quest"
)

// --- Catalog ---

func TestLoadCatalog(t *testing.T) {
	quests, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(quests) == 0 {
		t.Fatal("catalog should not be empty")
	}
	for _, q := range quests {
		if err := quest.Validate(q); err != nil {
			t.Errorf("catalog quest %q invalid: %v", q.ID, err)
		}
	}
}

func TestParseCatalog_GeneratesMissingIDs(t *testing.T) {
	raw := []byte(`
quests:
  - type: side
    bias: neutral
    description: Deliver the package.
`)
	quests, err := parseCatalog(raw)
	if err != nil {
		t.Fatalf("parseCatalog: %v", err)
	}
	if quests[0].ID == "" {
		t.Error("entry without id should get a generated one")
	}
}

func TestParseCatalog_RejectsInvalidEntry(t *testing.T) {
	raw := []byte(`
quests:
  - id: broken
    type: side
    bias: neutral
    description: Pays both factions.
    shift:
      kurenai: 5
      azure: 5
`)
	if _, err := parseCatalog(raw); err == nil {
		t.Error("parseCatalog should reject a both-faction shift")
	}
}

// --- Writer ---

func testWriter(generate func(ctx context.Context, prompt string) (string, error)) *Writer {
	return &Writer{model: "test", generate: generate}
}

func TestRewrite_UsesGeneratedText(t *testing.T) {
	w := testWriter(func(_ context.Context, _ string) (string, error) {
		return "  Neon rain. One blade. Go.  ", nil
	})
	got := w.Rewrite(context.Background(), "q1", "original text")
	if got != "Neon rain. One blade. Go." {
		t.Errorf("Rewrite = %q", got)
	}
}

func TestRewrite_FallsBackOnError(t *testing.T) {
	w := testWriter(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("quota exceeded")
	})
	if got := w.Rewrite(context.Background(), "q1", "original text"); got != "original text" {
		t.Errorf("Rewrite on error = %q, want original", got)
	}
}

func TestRewrite_FallsBackOnEmptyOutput(t *testing.T) {
	w := testWriter(func(_ context.Context, _ string) (string, error) {
		return "   ", nil
	})
	if got := w.Rewrite(context.Background(), "q1", "original text"); got != "original text" {
		t.Errorf("Rewrite on empty output = %q, want original", got)
	}
}

func TestRewrite_NilWriter(t *testing.T) {
	var w *Writer
	if got := w.Rewrite(context.Background(), "q1", "original text"); got != "original text" {
		t.Errorf("nil writer Rewrite = %q, want original", got)
	}
}

// --- Source ---

func TestOfferAll(t *testing.T) {
	store := quest.NewStore(alignment.New(alignment.DefaultConfig()))
	quests, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	src := NewSource(quests, nil, nil)
	if got := src.OfferAll(context.Background(), store); got != len(quests) {
		t.Errorf("OfferAll = %d, want %d", got, len(quests))
	}

	// Offering the same catalog again lands nothing new.
	if got := src.OfferAll(context.Background(), store); got != 0 {
		t.Errorf("second OfferAll = %d, want 0", got)
	}
}
