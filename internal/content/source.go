package content

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"neotokyo/internal/quest"
)

// Source feeds quests into a store. Duplicate offers are expected when a
// session restores mid-catalog and are logged, not surfaced.
type Source struct {
	quests []quest.Quest
	writer *Writer
	logger *zap.Logger
}

// NewSource creates a source over the given quests. writer may be nil.
func NewSource(quests []quest.Quest, writer *Writer, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{quests: quests, writer: writer, logger: logger}
}

// OfferAll pushes every quest onto the store's offer board, running each
// description through the writer first. Returns the number of quests that
// landed.
func (s *Source) OfferAll(ctx context.Context, store *quest.Store) int {
	offered := 0
	for _, q := range s.quests {
		q.Description = s.writer.Rewrite(ctx, q.ID, q.Description)

		err := store.Offer(q)
		switch {
		case err == nil:
			offered++
		case errors.Is(err, quest.ErrDuplicateQuest):
			s.logger.Debug("content: quest already on offer", zap.String("quest", q.ID))
		default:
			s.logger.Warn("content: offer rejected", zap.String("quest", q.ID), zap.Error(err))
		}
	}
	s.logger.Info("content: catalog offered", zap.Int("offered", offered), zap.Int("total", len(s.quests)))
	return offered
}
