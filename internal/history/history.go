// Package history records the portfolio value after every tracker run.
//
// Snapshots live in an embedded bbolt database, one bucket keyed by the
// snapshot time so a cursor walks them in chronological order. Writes are
// transactional: an interrupted run never corrupts earlier snapshots.
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/handiism/tcg-portfolio/internal/model"
)

var bucketSnapshots = []byte("snapshots")

// Snapshot is the state of the portfolio at the end of one run.
type Snapshot struct {
	RunID      string    `json:"run_id"`
	TakenAt    time.Time `json:"taken_at"`
	Cards      int       `json:"cards"`
	TotalValue float64   `json:"total_value"`
	Resolved   int       `json:"resolved"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
}

// NewSnapshot summarizes p as of takenAt.
func NewSnapshot(runID string, takenAt time.Time, p model.Portfolio) Snapshot {
	return Snapshot{
		RunID:      runID,
		TakenAt:    takenAt,
		Cards:      len(p),
		TotalValue: p.TotalValue(),
	}
}

// Entry is a snapshot together with its change against the snapshot
// before it.
type Entry struct {
	Snapshot

	// HasPrevious is false for the oldest snapshot.
	HasPrevious bool
	ValueChange float64
	CardChange  int
}

// Store is a bbolt-backed snapshot log.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a snapshot. Snapshots taken at the same instant replace
// each other.
func (s *Store) Record(snap Snapshot) error {
	if snap.TakenAt.IsZero() {
		return errors.New("record snapshot: zero timestamp")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		if err != nil {
			return err
		}
		return b.Put(timeKey(snap.TakenAt), data)
	})
}

// List returns up to limit snapshots, newest first, each with its change
// against the one recorded before it. A limit of zero or less returns all.
func (s *Store) List(limit int) ([]Entry, error) {
	var snaps []Snapshot

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b == nil {
			return nil
		}

		c := b.Cursor()
		// one extra so the oldest listed entry still gets a change
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(snaps) > limit {
				break
			}
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				return fmt.Errorf("unmarshal snapshot %x: %w", k, err)
			}
			snaps = append(snaps, snap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(snaps))
	for i, snap := range snaps {
		e := Entry{Snapshot: snap}
		if i+1 < len(snaps) {
			prev := snaps[i+1]
			e.HasPrevious = true
			e.ValueChange = snap.TotalValue - prev.TotalValue
			e.CardChange = snap.Cards - prev.Cards
		}
		entries = append(entries, e)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Latest returns the newest snapshot, or false when none exist.
func (s *Store) Latest() (Snapshot, bool, error) {
	entries, err := s.List(1)
	if err != nil || len(entries) == 0 {
		return Snapshot{}, false, err
	}
	return entries[0].Snapshot, true, nil
}

func timeKey(t time.Time) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))
	return key
}
