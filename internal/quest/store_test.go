package quest

import (
	"errors"
	"testing"
	"time"

	"neotokyo/internal/alignment"
)

func init() {
	// Freeze time for deterministic timestamps.
	timeNow = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}
}

func newTestStore() (*Store, *alignment.Ledger) {
	ledger := alignment.New(alignment.DefaultConfig())
	return NewStore(ledger), ledger
}

func offered(t *testing.T, s *Store, id string, shift alignment.Shift) {
	t.Helper()
	q := validQuest(id)
	q.Rewards.AlignmentShift = shift
	if err := s.Offer(q); err != nil {
		t.Fatalf("Offer(%q): %v", id, err)
	}
}

func ids(quests []Quest) []string {
	out := make([]string, len(quests))
	for i, q := range quests {
		out[i] = q.ID
	}
	return out
}

// --- Offer ---

func TestOffer_RegistersOffered(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})

	q, err := s.Get("q1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if q.Status != StatusOffered {
		t.Errorf("status = %s, want %s", q.Status, StatusOffered)
	}
	if q.OfferedAt != "2026-08-01T12:00:00Z" {
		t.Errorf("OfferedAt = %q, want frozen timestamp", q.OfferedAt)
	}
}

func TestOffer_DuplicateNonTerminal(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})

	err := s.Offer(validQuest("q1"))
	if !errors.Is(err, ErrDuplicateQuest) {
		t.Errorf("second offer error = %v, want ErrDuplicateQuest", err)
	}
}

func TestOffer_TerminalIDMayBeReoffered(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})
	if err := s.Decline("q1"); err != nil {
		t.Fatalf("Decline: %v", err)
	}

	if err := s.Offer(validQuest("q1")); err != nil {
		t.Errorf("re-offering a declined id should succeed, got: %v", err)
	}
	q, _ := s.Get("q1")
	if q.Status != StatusOffered {
		t.Errorf("status after re-offer = %s, want %s", q.Status, StatusOffered)
	}
}

func TestOffer_RejectsInvalidQuest(t *testing.T) {
	s, _ := newTestStore()
	q := validQuest("q1")
	q.Rewards.AlignmentShift = alignment.Shift{Kurenai: 5, Azure: 5}
	if err := s.Offer(q); err == nil {
		t.Error("Offer should reject a quest shifting both factions")
	}
}

// --- Accept / Decline ---

func TestAccept_OfferedToActive(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})

	if err := s.Accept("q1"); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	q, _ := s.Get("q1")
	if q.Status != StatusActive {
		t.Errorf("status = %s, want %s", q.Status, StatusActive)
	}
}

func TestAccept_UnknownID(t *testing.T) {
	s, _ := newTestStore()
	if err := s.Accept("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestAccept_TwiceFailsAndStateUnchanged(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})
	if err := s.Accept("q1"); err != nil {
		t.Fatalf("first Accept: %v", err)
	}

	err := s.Accept("q1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Accept error = %v, want ErrInvalidTransition", err)
	}
	q, _ := s.Get("q1")
	if q.Status != StatusActive {
		t.Errorf("status after failed Accept = %s, want %s (unchanged)", q.Status, StatusActive)
	}
}

func TestDecline_OfferedToDeclined(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})

	if err := s.Decline("q1"); err != nil {
		t.Fatalf("Decline: %v", err)
	}
	q, _ := s.Get("q1")
	if q.Status != StatusDeclined {
		t.Errorf("status = %s, want %s", q.Status, StatusDeclined)
	}
}

func TestDecline_ActiveQuestFails(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})
	_ = s.Accept("q1")

	if err := s.Decline("q1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("declining an active quest = %v, want ErrInvalidTransition", err)
	}
}

// --- Complete ---

func TestComplete_AppliesShiftExactly(t *testing.T) {
	s, ledger := newTestStore()
	offered(t, s, "q1", alignment.Shift{Kurenai: 5})
	_ = s.Accept("q1")

	if err := s.Complete("q1"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	st := ledger.State()
	if st.Kurenai != 5 {
		t.Errorf("ledger kurenai = %d, want 5", st.Kurenai)
	}
	if st.Azure != 0 {
		t.Errorf("ledger azure = %d, want 0 (unchanged)", st.Azure)
	}
}

func TestComplete_WithoutShiftLeavesLedgerAlone(t *testing.T) {
	s, ledger := newTestStore()
	offered(t, s, "q1", alignment.Shift{})
	_ = s.Accept("q1")
	_ = s.Complete("q1")

	if st := ledger.State(); st.Kurenai != 0 || st.Azure != 0 {
		t.Errorf("ledger = %+v, want untouched", st)
	}
}

func TestComplete_SkippingActiveFails(t *testing.T) {
	s, ledger := newTestStore()
	offered(t, s, "q1", alignment.Shift{Kurenai: 10})

	err := s.Complete("q1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completing an offered quest = %v, want ErrInvalidTransition", err)
	}
	// A rejected transition must not leak its reward.
	if st := ledger.State(); st.Kurenai != 0 {
		t.Errorf("ledger kurenai = %d, want 0 after rejected complete", st.Kurenai)
	}
}

func TestComplete_TerminalQuestFails(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})
	_ = s.Accept("q1")
	_ = s.Complete("q1")

	if err := s.Complete("q1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Complete = %v, want ErrInvalidTransition", err)
	}
}

// --- Watch projections ---

func TestWatchActive_InitialEmptyEmission(t *testing.T) {
	s, _ := newTestStore()
	sub := s.WatchActive()
	defer sub.Cancel()

	got := <-sub.C()
	if len(got) != 0 {
		t.Errorf("initial active list = %v, want empty", ids(got))
	}
}

func TestWatchActive_TracksAcceptAndComplete(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})

	sub := s.WatchActive()
	defer sub.Cancel()
	<-sub.C() // drain the initial empty state

	_ = s.Accept("q1")
	got := <-sub.C()
	if len(got) != 1 || got[0].ID != "q1" {
		t.Fatalf("active list after Accept = %v, want [q1]", ids(got))
	}

	_ = s.Complete("q1")
	got = <-sub.C()
	if len(got) != 0 {
		t.Errorf("active list after Complete = %v, want empty", ids(got))
	}
}

func TestWatchCompleted_AtomicWithLedger(t *testing.T) {
	s, ledger := newTestStore()
	offered(t, s, "q1", alignment.Shift{Kurenai: 10})
	_ = s.Accept("q1")

	sub := s.WatchCompleted()
	defer sub.Cancel()
	<-sub.C() // initial empty state

	_ = s.Complete("q1")

	got := <-sub.C()
	if len(got) != 1 || got[0].ID != "q1" {
		t.Fatalf("completed list = %v, want [q1]", ids(got))
	}
	// The emission that announces completion must already reflect the
	// reward in the ledger.
	if st := ledger.State(); st.Kurenai != 10 {
		t.Errorf("ledger kurenai at completion emission = %d, want 10", st.Kurenai)
	}
}

func TestWatchCompleted_ReofferRemovesOldRun(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})
	_ = s.Accept("q1")
	_ = s.Complete("q1")

	sub := s.WatchCompleted()
	defer sub.Cancel()
	got := <-sub.C()
	if len(got) != 1 {
		t.Fatalf("completed list before re-offer = %v, want [q1]", ids(got))
	}

	// Re-offering the finished id starts a fresh run; the completed view
	// must re-emit without the old record.
	if err := s.Offer(validQuest("q1")); err != nil {
		t.Fatalf("re-offer: %v", err)
	}
	got = <-sub.C()
	if len(got) != 0 {
		t.Errorf("completed list after re-offer = %v, want empty", ids(got))
	}
}

func TestWatch_CancelLeavesOtherSubscribersWorking(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})

	a := s.WatchActive()
	b := s.WatchActive()
	<-a.C()
	<-b.C()
	a.Cancel()

	_ = s.Accept("q1")
	got := <-b.C()
	if len(got) != 1 {
		t.Errorf("surviving subscriber list = %v, want [q1]", ids(got))
	}
	b.Cancel()
}

// --- End-to-end scenario ---

func TestScenario_OfferAcceptComplete(t *testing.T) {
	s, ledger := newTestStore()

	q := Quest{
		ID:          "Q1",
		Type:        TypeSide,
		Description: "Win the rooftop duel without drawing your blade",
		Bias:        BiasKurenai,
		Rewards:     Rewards{AlignmentShift: alignment.Shift{Kurenai: 10}},
	}
	if err := s.Offer(q); err != nil {
		t.Fatalf("Offer: %v", err)
	}
	if err := s.Accept("Q1"); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if err := s.Complete("Q1"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if active := s.ByStatus(StatusActive); len(active) != 0 {
		t.Errorf("active = %v, want empty", ids(active))
	}
	completed := s.ByStatus(StatusCompleted)
	if len(completed) != 1 || completed[0].ID != "Q1" {
		t.Errorf("completed = %v, want [Q1]", ids(completed))
	}

	st := ledger.State()
	if st.Kurenai != 10 {
		t.Errorf("ledger kurenai = %d, want 10", st.Kurenai)
	}
	if st.Label != alignment.LabelKurenai {
		t.Errorf("label = %q, want %q (threshold 10)", st.Label, alignment.LabelKurenai)
	}
}

// --- Read isolation ---

func TestGet_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore()
	offered(t, s, "q1", alignment.Shift{})

	q, _ := s.Get("q1")
	q.Status = StatusCompleted // mutate the copy

	fresh, _ := s.Get("q1")
	if fresh.Status != StatusOffered {
		t.Error("mutating a returned Quest must not touch store state")
	}
}
