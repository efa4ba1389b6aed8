// Package save persists a single progress snapshot under a fixed key.
//
// The adapter degrades gracefully by contract: an unavailable storage medium
// turns Save and Clear into silent no-ops, and Load never returns an error —
// it reports Ok, Absent, or Corrupt so callers can distinguish "nothing
// saved yet" from "saved data unreadable" if they care. The worst outcome of
// any failure here is "progress not saved this session".
package save

import "encoding/json"

// Snapshot is the persisted unit: enough state to resume a session. Rep is
// the net reputation summary (kurenai − azure). Kurenai and Azure carry the
// per-faction totals for exact restore; snapshots written by older builds
// lack them and fall back to Rep (see Factions).
type Snapshot struct {
	StageID   string `json:"stageId"`
	Rep       int    `json:"rep"`
	Timestamp int64  `json:"timestamp"` // epoch seconds
	Kurenai   int    `json:"kurenai,omitempty"`
	Azure     int    `json:"azure,omitempty"`
}

// Factions returns the per-faction totals to seed a ledger. When the
// per-faction detail is absent the net Rep is attributed to a single
// faction, which reproduces the same net score and label.
func (s Snapshot) Factions() (kurenai, azure int) {
	if s.Kurenai != 0 || s.Azure != 0 {
		return s.Kurenai, s.Azure
	}
	if s.Rep >= 0 {
		return s.Rep, 0
	}
	return 0, -s.Rep
}

// LoadState classifies the outcome of a Load.
type LoadState int

const (
	// StateOK means a valid snapshot was read.
	StateOK LoadState = iota
	// StateAbsent means no snapshot has been written, or the medium is
	// unavailable.
	StateAbsent
	// StateCorrupt means a payload exists but failed to decode or is
	// missing required fields. Treated like absence by callers that don't
	// care about the distinction.
	StateCorrupt
)

// String returns the state name for logs.
func (s LoadState) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateAbsent:
		return "absent"
	case StateCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of Load. Snapshot is meaningful only when
// State is StateOK.
type LoadResult struct {
	State    LoadState
	Snapshot Snapshot
}

// snapshotRecord mirrors Snapshot with pointer fields so decoding can tell
// a missing required field from a zero value. Unknown fields in the payload
// are ignored, keeping the format forward-compatible.
type snapshotRecord struct {
	StageID   *string `json:"stageId"`
	Rep       *int    `json:"rep"`
	Timestamp *int64  `json:"timestamp"`
	Kurenai   int     `json:"kurenai"`
	Azure     int     `json:"azure"`
}

// decodeSnapshot parses and validates a stored payload. Any defect — not
// JSON, not an object, missing required fields — yields StateCorrupt; this
// function never fails in a way the caller must handle.
func decodeSnapshot(payload []byte) LoadResult {
	var rec snapshotRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return LoadResult{State: StateCorrupt}
	}
	if rec.StageID == nil || rec.Rep == nil || rec.Timestamp == nil {
		return LoadResult{State: StateCorrupt}
	}
	return LoadResult{
		State: StateOK,
		Snapshot: Snapshot{
			StageID:   *rec.StageID,
			Rep:       *rec.Rep,
			Timestamp: *rec.Timestamp,
			Kurenai:   rec.Kurenai,
			Azure:     rec.Azure,
		},
	}
}
