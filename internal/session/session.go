// Package session ties one play session together: the quest store, the
// alignment ledger, and the persistence adapter.
//
// A Session is constructed once per game session and passed by reference —
// there is no package-level instance. It is the only component that touches
// persistence: it watches the completed-quest projection and writes a
// progress snapshot after every completion, fire-and-forget, so a quest
// transition never waits on storage latency.
package session

import (
	"sync"

	"go.uber.org/zap"

	"neotokyo/internal/alignment"
	"neotokyo/internal/quest"
	"neotokyo/internal/save"
	"neotokyo/internal/watch"
)

// Saver is the slice of the persistence adapter the session uses.
// *save.Store satisfies it.
type Saver interface {
	Save(save.Snapshot)
	Load() save.LoadResult
}

// Params configures a new session.
type Params struct {
	Ledger *alignment.Ledger
	Saves  Saver
	Logger *zap.Logger
	// StageID is the narrative stage recorded in snapshots until the game
	// advances it via SetStage.
	StageID string
}

// Session owns the live state of one playthrough.
type Session struct {
	Store  *quest.Store
	Ledger *alignment.Ledger

	saves  Saver
	logger *zap.Logger

	mu      sync.Mutex
	stageID string

	completed *watch.Subscription[[]quest.Quest]
	done      chan struct{}
}

// New builds the session's quest store around the given ledger and starts
// the autosave watcher.
func New(p Params) *Session {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		Store:   quest.NewStore(p.Ledger),
		Ledger:  p.Ledger,
		saves:   p.Saves,
		logger:  logger,
		stageID: p.StageID,
		done:    make(chan struct{}),
	}
	s.completed = s.Store.WatchCompleted()
	// The subscription arrives pre-seeded with the store's current (empty)
	// completed list. Consume it here so the autosave loop only ever reacts
	// to real completions — a startup write would overwrite the durable
	// snapshot with zeros before Restore has read it.
	<-s.completed.C()
	go s.autosave()
	return s
}

// Restore seeds the ledger and stage from the last durable snapshot. A
// corrupt snapshot is logged and treated like a fresh start — restoring
// never fails.
func (s *Session) Restore() {
	res := s.saves.Load()
	switch res.State {
	case save.StateOK:
		kurenai, azure := res.Snapshot.Factions()
		s.Ledger.Restore(kurenai, azure)
		s.SetStage(res.Snapshot.StageID)
		s.logger.Info("session: progress restored",
			zap.String("stage", res.Snapshot.StageID),
			zap.Int("rep", res.Snapshot.Rep))
	case save.StateCorrupt:
		s.logger.Warn("session: saved progress unreadable, starting fresh")
	case save.StateAbsent:
		s.logger.Debug("session: no saved progress")
	}
}

// SetStage records the narrative stage used for subsequent snapshots.
func (s *Session) SetStage(stageID string) {
	s.mu.Lock()
	s.stageID = stageID
	s.mu.Unlock()
}

// Stage returns the current narrative stage.
func (s *Session) Stage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stageID
}

// Snapshot captures the current progress for persistence.
func (s *Session) Snapshot() save.Snapshot {
	st := s.Ledger.State()
	return save.Snapshot{
		StageID:   s.Stage(),
		Rep:       st.Net,
		Timestamp: timeNow().Unix(),
		Kurenai:   st.Kurenai,
		Azure:     st.Azure,
	}
}

// Close stops the autosave watcher and writes one final snapshot so a clean
// shutdown never loses the last completion.
func (s *Session) Close() {
	s.completed.Cancel()
	<-s.done
	s.saves.Save(s.Snapshot())
	s.Store.Close()
}

// autosave persists progress after every completion emission. Back-to-back
// completions may coalesce into a single write; the snapshot always
// reflects the newest ledger state, so nothing is lost.
func (s *Session) autosave() {
	defer close(s.done)
	for range s.completed.C() {
		s.saves.Save(s.Snapshot())
	}
}
