package feed

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/domain/catalog"
)

// Snapshot is one consistent view of the normalized feed plus the
// catalogs the aggregators join against. Snapshots are treated as
// immutable once published.
type Snapshot struct {
	Version   uint64
	Records   []assignment.Record
	Engineers map[string]catalog.Engineer    // by id
	Projects  map[string]catalog.Project     // by code
	Licenses  []catalog.License
	Links     []catalog.ProjectLicenseLink
}

// Store owns the snapshot the aggregators read. Planner edits are
// applied optimistically and reconciled by the next accepted refresh.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
	version uint64
}

func NewStore() *Store {
	return &Store{
		current: Snapshot{
			Engineers: make(map[string]catalog.Engineer),
			Projects:  make(map[string]catalog.Project),
		},
	}
}

// Snapshot returns the current feed view. Callers must not mutate it.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reconcile replaces the feed with a freshly loaded snapshot.
func (s *Store) Reconcile(snap Snapshot) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	snap.Version = s.version
	s.current = snap
	return s.current
}

// ReconcileIfCurrent applies snap only if generation still reads gen at
// the moment of the swap. The check happens under the store mutex, so a
// load that was superseded after its own generation check can never
// overwrite a newer snapshot that reconciled in between.
func (s *Store) ReconcileIfCurrent(snap Snapshot, gen uint64, generation *atomic.Uint64) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation.Load() != gen {
		return s.current, false
	}
	s.version++
	snap.Version = s.version
	s.current = snap
	return s.current, true
}

// ApplyOptimisticEdit patches a single planning cell in the local feed
// immediately, ahead of persistence and refresh. Each edit targets a
// distinct key, so no merge logic is needed: the record for the key is
// replaced (or inserted in week order).
func (s *Store) ApplyOptimisticEdit(rec assignment.Record) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]assignment.Record, 0, len(s.current.Records)+1)
	replaced := false
	for _, existing := range s.current.Records {
		if existing.Key == rec.Key {
			records = append(records, rec)
			replaced = true
			continue
		}
		records = append(records, existing)
	}
	if !replaced {
		records = append(records, rec)
		sort.Slice(records, func(i, j int) bool {
			a, b := records[i].Key, records[j].Key
			if a.EngineerID != b.EngineerID {
				return a.EngineerID < b.EngineerID
			}
			return a.Week.Before(b.Week)
		})
	}

	s.version++
	next := s.current
	next.Version = s.version
	next.Records = records
	s.current = next
	return s.current
}
