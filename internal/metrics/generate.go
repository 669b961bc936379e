package metrics

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gramseva/census-atlas/internal/model"
)

// GenerateOptions controls synthetic table generation.
type GenerateOptions struct {
	// Seed drives per-area RNG seeding. Two runs with the same seed and
	// area set produce identical tables.
	Seed int64
	// Random seeds from the clock instead; explicitly non-reproducible.
	Random bool
	// Concurrency bounds the per-area generation fan-out. Zero means 8.
	Concurrency int
}

// Synthetic value ranges for the unsegmented base vector.
const (
	baseLiteracyMin  = 40.0
	baseLiteracySpan = 55.0
	baseIncomeMin    = 10_000
	baseIncomeSpan   = 110_000
	basePopMin       = 500
	basePopSpan      = 2_000_000
)

// Generate builds a complete synthetic table: every area receives a vector
// for every key the selection surface can produce. Each area owns an
// independent RNG seeded from (seed, fnv64a(area ID)), so the fan-out
// stays deterministic regardless of scheduling.
func Generate(areas []model.Area, opts GenerateOptions) (*Table, error) {
	if len(areas) == 0 {
		return nil, eris.New("metrics: generate requires at least one area")
	}

	seed := opts.Seed
	if opts.Random {
		seed = time.Now().UnixNano()
	}

	sels := model.AllSelections()

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 8
	}

	rows := make([]map[model.DemographicKey]model.MetricVector, len(areas))
	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, area := range areas {
		g.Go(func() error {
			rows[i] = generateArea(area, seed, sels)
			return nil
		})
	}
	// Workers only fill their own slot; Wait is for the barrier.
	_ = g.Wait()

	vectors := make(map[string]map[model.DemographicKey]model.MetricVector, len(areas))
	for i, area := range areas {
		vectors[area.ID] = rows[i]
	}

	t := &Table{
		DatasetID: uuid.New().String(),
		Seed:      seed,
		vectors:   vectors,
	}

	zap.L().Info("metrics: synthetic table generated",
		zap.String("dataset_id", t.DatasetID),
		zap.Int64("seed", seed),
		zap.Bool("random", opts.Random),
		zap.Int("areas", len(areas)),
		zap.Int("keys", len(sels)),
	)

	return t, nil
}

// generateArea fills all segment vectors for one area. Segment vectors
// derive from the area's base (all/all/all/all) vector so segments stay
// plausible relative to the whole.
func generateArea(area model.Area, seed int64, sels []model.Selection) map[model.DemographicKey]model.MetricVector {
	rng := rand.New(rand.NewSource(seed ^ int64(hashID(area.ID))))

	base := model.MetricVector{
		Literacy:   baseLiteracyMin + rng.Float64()*baseLiteracySpan,
		Income:     baseIncomeMin + rng.Int63n(baseIncomeSpan),
		Population: basePopMin + rng.Int63n(basePopSpan),
	}

	def := model.DefaultSelection()
	byKey := make(map[model.DemographicKey]model.MetricVector, len(sels))
	for _, sel := range sels {
		if sel == def {
			byKey[sel.Key()] = base
			continue
		}
		lit := base.Literacy + rng.Float64()*20 - 10
		if lit < 0 {
			lit = 0
		}
		if lit > 100 {
			lit = 100
		}
		inc := int64(float64(base.Income) * (0.6 + rng.Float64()*0.8))
		pop := int64(float64(base.Population) * (0.05 + rng.Float64()*0.55))
		if pop < 1 {
			pop = 1
		}
		byKey[sel.Key()] = model.MetricVector{
			Literacy:   lit,
			Income:     inc,
			Population: pop,
		}
	}
	return byKey
}

func hashID(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}
