// Package content supplies quests to the engine. It is the
// content-generation collaborator from the store's point of view: its only
// entry point into the core is Store.Offer.
//
// Quests come from an embedded catalog; when a Gemini API key is configured,
// a Writer punches up the catalog descriptions before they are offered.
// Generation is strictly best-effort — any failure falls back to catalog
// text, because content polish must never block quest offering.
package content

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"neotokyo/internal/alignment"
	"neotokyo/internal/quest"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Quests []catalogEntry `yaml:"quests"`
}

type catalogEntry struct {
	ID          string          `yaml:"id"`
	Type        string          `yaml:"type"`
	Bias        string          `yaml:"bias"`
	Description string          `yaml:"description"`
	Shift       alignment.Shift `yaml:"shift"`
}

// LoadCatalog parses the embedded quest catalog. Entries without an id get
// a generated one. Every returned quest passes quest.Validate; a catalog
// that doesn't is a build defect, reported as an error.
func LoadCatalog() ([]quest.Quest, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(raw []byte) ([]quest.Quest, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	quests := make([]quest.Quest, 0, len(file.Quests))
	for i, entry := range file.Quests {
		id := entry.ID
		if id == "" {
			id = uuid.NewString()
		}
		q := quest.Quest{
			ID:          id,
			Type:        quest.QuestType(entry.Type),
			Description: entry.Description,
			Bias:        quest.Bias(entry.Bias),
			Rewards:     quest.Rewards{AlignmentShift: entry.Shift},
		}
		if err := quest.Validate(q); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		quests = append(quests, q)
	}
	return quests, nil
}
