package save

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	s := Open(t.TempDir(), nil)
	defer s.Close()
	require.True(t, s.Available())

	want := Snapshot{
		StageID:   "shibuya-underpass",
		Rep:       -4,
		Timestamp: 1756200000,
		Kurenai:   8,
		Azure:     12,
	}
	s.Save(want)

	res := s.Load()
	require.Equal(t, StateOK, res.State)
	assert.Equal(t, want, res.Snapshot)
}

func TestSave_OverwritesPreviousSnapshot(t *testing.T) {
	s := Open(t.TempDir(), nil)
	defer s.Close()

	s.Save(Snapshot{StageID: "first", Rep: 1, Timestamp: 100})
	s.Save(Snapshot{StageID: "second", Rep: 2, Timestamp: 200})

	res := s.Load()
	require.Equal(t, StateOK, res.State)
	assert.Equal(t, "second", res.Snapshot.StageID)
	assert.Equal(t, int64(200), res.Snapshot.Timestamp)
}

func TestLoad_AbsentWhenNothingSaved(t *testing.T) {
	s := Open(t.TempDir(), nil)
	defer s.Close()

	assert.Equal(t, StateAbsent, s.Load().State)
}

func TestLoad_CorruptPayload(t *testing.T) {
	s := Open(t.TempDir(), nil)
	defer s.Close()

	// Poison the stored payload directly.
	_, err := s.db.Exec(`INSERT INTO progress (key, payload, written_at) VALUES (?, ?, ?)`,
		storageKey, "not structured data", "2026-08-01T00:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, StateCorrupt, s.Load().State)
}

func TestClear(t *testing.T) {
	s := Open(t.TempDir(), nil)
	defer s.Close()

	s.Save(Snapshot{StageID: "s", Rep: 0, Timestamp: 1})
	s.Clear()
	assert.Equal(t, StateAbsent, s.Load().State)

	// Clearing again is a no-op.
	s.Clear()
}

func TestUnavailableMedium(t *testing.T) {
	// A regular file where the data dir should be makes MkdirAll fail.
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := Open(blocker, nil)
	defer s.Close()

	assert.False(t, s.Available())
	assert.Equal(t, StateAbsent, s.Load().State)

	// Save and Clear must be silent no-ops, never panics.
	s.Save(Snapshot{StageID: "s", Rep: 1, Timestamp: 2})
	s.Clear()
	assert.Equal(t, StateAbsent, s.Load().State)
}
