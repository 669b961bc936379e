// Package engine derives every displayed view — KPIs, bracket
// distributions, rankings, fills — from the immutable area catalog and
// metric repository snapshot.
package engine

import (
	"errors"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/gramseva/census-atlas/internal/bracket"
	"github.com/gramseva/census-atlas/internal/metrics"
	"github.com/gramseva/census-atlas/internal/model"
)

// ErrNotReady reports a derivation requested before the catalog and
// repository finished loading. Callers wait or show a loading state.
var ErrNotReady = eris.New("engine: snapshot not loaded")

// Snapshot is the read-only world the engine derives from: the registered
// areas in catalog order plus their metric table.
type Snapshot struct {
	Areas []model.Area
	Repo  metrics.Repository
}

// View is one fully derived rendering payload for (metric, selection).
type View struct {
	Metric     model.Metric         `json:"metric"`
	Key        model.DemographicKey `json:"key"`
	KPI        KPI                  `json:"kpi"`
	KPIDisplay KPIDisplay           `json:"kpi_display"`
	Brackets   []bracket.Count      `json:"brackets"`
	Ranking    []Entry              `json:"ranking"`
	Fills      map[string]string    `json:"fills"`
	Tooltips   map[string]Tooltip   `json:"tooltips"`
}

type viewKey struct {
	metric model.Metric
	key    model.DemographicKey
}

// Engine memoizes derived views per (metric, DemographicKey). The memo is
// never invalidated: the repository is immutable after load, so a cached
// view stays correct for the session.
type Engine struct {
	mu      sync.RWMutex
	snap    *Snapshot
	loadErr error
	memo    map[viewKey]*View
	missing *metrics.MissingRecorder
}

// New returns an engine in the NotReady state.
func New() *Engine {
	return &Engine{
		memo:    make(map[viewKey]*View),
		missing: &metrics.MissingRecorder{},
	}
}

// SetSnapshot publishes the loaded snapshot and lifts NotReady. The one
// async boundary in the system; called once when startup load completes.
func (e *Engine) SetSnapshot(s *Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap = s
}

// SetLoadError marks the startup load as terminally failed. Derivations
// return the error instead of ErrNotReady, so callers can show the
// failure rather than a loading state forever. Retry policy stays with
// the caller; a successful SetSnapshot supersedes the error.
func (e *Engine) SetLoadError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadErr = err
}

// Ready reports whether the snapshot has been published.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap != nil
}

// snapshot returns the published snapshot, the terminal load error, or
// ErrNotReady while the startup load is still running.
func (e *Engine) snapshot() (*Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.snap != nil {
		return e.snap, nil
	}
	if e.loadErr != nil {
		return nil, e.loadErr
	}
	return nil, ErrNotReady
}

// Areas returns the registered areas in catalog order.
func (e *Engine) Areas() ([]model.Area, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Areas, nil
}

// Missing returns the repository misses recorded across all derivations.
func (e *Engine) Missing() []metrics.Missing {
	return e.missing.Entries()
}

// View returns the derived view for a metric and selection, computing and
// memoizing it on first use.
func (e *Engine) View(metric model.Metric, sel model.Selection) (*View, error) {
	k := viewKey{metric: metric, key: sel.Key()}

	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	v, hit := e.memo[k]
	e.mu.RUnlock()
	if hit {
		return v, nil
	}

	v, err = derive(metric, k.key, snap, e.missing)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	// A concurrent caller may have derived the same view; keep the first
	// so repeated calls return one pointer.
	if prior, ok := e.memo[k]; ok {
		v = prior
	} else {
		e.memo[k] = v
	}
	e.mu.Unlock()

	return v, nil
}

// ColorFor returns the fill color for one area at the active selection.
// Areas without a vector get NoDataColor rather than a zero-valued fill.
func (e *Engine) ColorFor(metric model.Metric, areaID string, sel model.Selection) (string, error) {
	snap, err := e.snapshot()
	if err != nil {
		return "", err
	}

	key := sel.Key()
	vec, err := snap.Repo.Get(areaID, key)
	if err != nil {
		if errors.Is(err, metrics.ErrNotFound) {
			e.missing.Record(areaID, key)
			return bracket.NoDataColor, nil
		}
		return "", eris.Wrap(err, "engine: color lookup")
	}
	return bracket.For(metric).ColorOf(vec.Value(metric)), nil
}

func derive(metric model.Metric, key model.DemographicKey, snap *Snapshot, missing *metrics.MissingRecorder) (*View, error) {
	kpi, err := Aggregate(metric, key, snap.Areas, snap.Repo, missing)
	if err != nil {
		return nil, err
	}

	table := bracket.For(metric)
	fills := make(map[string]string, len(snap.Areas))
	tooltips := make(map[string]Tooltip, len(snap.Areas))
	for _, area := range snap.Areas {
		vec, err := snap.Repo.Get(area.ID, key)
		if err != nil {
			fills[area.ID] = bracket.NoDataColor
			tooltips[area.ID] = Tooltip{DisplayName: area.DisplayName, Value: "no data"}
			continue
		}
		value := vec.Value(metric)
		fills[area.ID] = table.ColorOf(value)
		tooltips[area.ID] = Tooltip{
			DisplayName: area.DisplayName,
			Value:       FormatValue(metric, value),
		}
	}

	ranking, err := Rank(metric, key, snap.Areas, snap.Repo, missing)
	if err != nil {
		return nil, err
	}

	return &View{
		Metric:     metric,
		Key:        key,
		KPI:        kpi,
		KPIDisplay: DisplayKPI(metric, kpi),
		Brackets:   bracket.Classify(metric, key, snap.Areas, snap.Repo, missing),
		Ranking:    ranking,
		Fills:      fills,
		Tooltips:   tooltips,
	}, nil
}
