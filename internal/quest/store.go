package quest

import (
	"fmt"
	"sync"
	"time"

	"neotokyo/internal/alignment"
	"neotokyo/internal/watch"
)

// Store is the authoritative in-memory quest registry for one session.
//
// Construct one per game session and pass it by reference to everything
// that needs it — there is no package-level instance.
//
// A single mutex covers each transition's full read → validate → mutate →
// emit sequence, so watchers observe every transition as one atomic unit.
// In particular, Complete applies the ledger shift and publishes the new
// projections under the same critical section: no watcher sees a completed
// quest before its reputation effect has landed.
type Store struct {
	mu     sync.Mutex
	quests map[string]*Quest
	order  []string // offer order; projections preserve it

	ledger    *alignment.Ledger
	active    *watch.Hub[[]Quest]
	completed *watch.Hub[[]Quest]
}

// NewStore creates an empty store wired to the given ledger. The ledger is
// the only collaborator the store mutates, and only on the Complete path.
func NewStore(ledger *alignment.Ledger) *Store {
	s := &Store{
		quests:    make(map[string]*Quest),
		ledger:    ledger,
		active:    watch.NewHub[[]Quest](),
		completed: watch.NewHub[[]Quest](),
	}
	// Seed the watch hubs so subscribers see current truth (empty) even
	// before the first transition.
	s.active.Publish([]Quest{})
	s.completed.Publish([]Quest{})
	return s
}

// --- Transitions ---

// Offer registers a quest in status offered. It fails with
// ErrDuplicateQuest if the id is already registered in a non-terminal
// status; a terminal id may be offered again as fresh content.
func (s *Store) Offer(q Quest) error {
	if err := Validate(q); err != nil {
		return fmt.Errorf("offer: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replacesCompleted := false
	if existing, ok := s.quests[q.ID]; ok {
		if !existing.Status.Terminal() {
			return fmt.Errorf("offer %q: %w", q.ID, ErrDuplicateQuest)
		}
		// Re-offering a finished id replaces the old record; keep its slot
		// in the offer order.
		replacesCompleted = existing.Status == StatusCompleted
	} else {
		s.order = append(s.order, q.ID)
	}

	now := timeNow().UTC().Format(time.RFC3339)
	q.Status = StatusOffered
	q.OfferedAt = now
	q.UpdatedAt = now
	s.quests[q.ID] = &q

	// Replacing a completed record removes it from the completed list, so
	// that projection has to re-emit or watchers keep showing the old run.
	if replacesCompleted {
		s.completed.Publish(s.listLocked(StatusCompleted))
	}
	return nil
}

// Accept transitions offered → active and re-emits the active projection.
func (s *Store) Accept(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.transitionable(id, StatusOffered, "accept")
	if err != nil {
		return err
	}
	q.Status = StatusActive
	q.UpdatedAt = timeNow().UTC().Format(time.RFC3339)
	s.active.Publish(s.listLocked(StatusActive))
	return nil
}

// Decline transitions offered → declined. Declined is terminal and feeds
// no projection, so nothing is emitted.
func (s *Store) Decline(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.transitionable(id, StatusOffered, "decline")
	if err != nil {
		return err
	}
	q.Status = StatusDeclined
	q.UpdatedAt = timeNow().UTC().Format(time.RFC3339)
	return nil
}

// Complete transitions active → completed. The quest's alignment shift is
// applied to the ledger before the status flips and before either
// projection re-emits, all under one critical section.
func (s *Store) Complete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.transitionable(id, StatusActive, "complete")
	if err != nil {
		return err
	}

	if shift := q.Rewards.AlignmentShift; !shift.IsZero() {
		s.ledger.ApplyShift(shift)
	}
	q.Status = StatusCompleted
	q.UpdatedAt = timeNow().UTC().Format(time.RFC3339)

	s.active.Publish(s.listLocked(StatusActive))
	s.completed.Publish(s.listLocked(StatusCompleted))
	return nil
}

// transitionable looks up id and checks it sits in the required status.
// Caller must hold s.mu.
func (s *Store) transitionable(id string, want Status, op string) (*Quest, error) {
	q, ok := s.quests[id]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", op, id, ErrNotFound)
	}
	if q.Status != want {
		return nil, fmt.Errorf("%s %q: status is %s, want %s: %w", op, id, q.Status, want, ErrInvalidTransition)
	}
	return q, nil
}

// --- Projections ---

// WatchActive returns a live view of the quests currently in status active.
// The current list is delivered immediately; every accept/complete re-emits.
// Cancel the subscription when done.
func (s *Store) WatchActive() *watch.Subscription[[]Quest] {
	return s.active.Subscribe()
}

// WatchCompleted returns a live view of the completed quests.
func (s *Store) WatchCompleted() *watch.Subscription[[]Quest] {
	return s.completed.Subscribe()
}

// Get returns a copy of the quest with the given id.
func (s *Store) Get(id string) (Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quests[id]
	if !ok {
		return Quest{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return *q, nil
}

// ByStatus returns copies of all quests in the given status, in offer order.
func (s *Store) ByStatus(st Status) []Quest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(st)
}

// Snapshot returns copies of every quest in offer order.
func (s *Store) Snapshot() []Quest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Quest, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.quests[id])
	}
	return out
}

// Close shuts down both watch hubs, closing every subscriber channel.
func (s *Store) Close() {
	s.active.Close()
	s.completed.Close()
}

// listLocked builds a projection snapshot. Caller must hold s.mu.
func (s *Store) listLocked(st Status) []Quest {
	out := []Quest{}
	for _, id := range s.order {
		if q := s.quests[id]; q.Status == st {
			out = append(out, *q)
		}
	}
	return out
}
