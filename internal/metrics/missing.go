package metrics

import (
	"sync"

	"go.uber.org/zap"

	"github.com/gramseva/census-atlas/internal/model"
)

// Missing identifies one (area, key) pair with no metric vector.
type Missing struct {
	AreaID string               `json:"area_id"`
	Key    model.DemographicKey `json:"key"`
}

// MissingRecorder collects repository misses so callers can zero-fill and
// move on while the gap stays diagnosable. Safe for concurrent use; a nil
// recorder discards records.
type MissingRecorder struct {
	mu      sync.Mutex
	seen    map[Missing]struct{}
	entries []Missing
}

// Record notes a miss, logging each distinct (area, key) pair once.
func (r *MissingRecorder) Record(areaID string, key model.DemographicKey) {
	if r == nil {
		return
	}
	m := Missing{AreaID: areaID, Key: key}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		r.seen = make(map[Missing]struct{})
	}
	if _, dup := r.seen[m]; dup {
		return
	}
	r.seen[m] = struct{}{}
	r.entries = append(r.entries, m)

	zap.L().Warn("metrics: missing vector",
		zap.String("area_id", areaID),
		zap.String("key", string(key)),
	)
}

// Entries returns the recorded misses in first-seen order.
func (r *MissingRecorder) Entries() []Missing {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Missing, len(r.entries))
	copy(out, r.entries)
	return out
}
