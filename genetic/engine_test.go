package genetic

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"
)

// Toy domain for engine tests: maximize the sum of a fixed-length int
// vector with entries in [0, 10).

const (
	toyLen = 8
	toyMax = 10
)

func toyEvaluator(s []int) (int, map[string]any) {
	sum := 0
	for _, v := range s {
		sum += v
	}
	return sum, nil
}

func toyInitializer(rng *rand.Rand) []int {
	s := make([]int, toyLen)
	for i := range s {
		s[i] = rng.IntN(toyMax)
	}
	return s
}

type toyCombiner struct{}

func (toyCombiner) Combine(parents []Candidate[[]int, int], rng *rand.Rand) [][]int {
	a, b := parents[0].Data, parents[1].Data
	child := make([]int, toyLen)
	cut := rng.IntN(toyLen)
	copy(child, a[:cut])
	copy(child[cut:], b[cut:])
	return [][]int{child}
}

type toyPerturbator struct{}

func (toyPerturbator) Perturb(s *[]int, strength float64, rng *rand.Rand) {
	c := make([]int, toyLen)
	copy(c, *s)
	c[rng.IntN(toyLen)] = rng.IntN(toyMax)
	*s = c
}

func newToyEngine(cfg EngineConfig) *Engine[[]int, int] {
	return NewEngine(
		toyEvaluator,
		toyInitializer,
		&TournamentSelector[[]int, int]{TournamentSize: 3},
		toyCombiner{},
		toyPerturbator{},
		cfg,
	)
}

func TestEngineImproves(t *testing.T) {
	e := newToyEngine(EngineConfig{
		PoolSize:             30,
		EliteCount:           3,
		CrossoverRate:        0.8,
		PerturbationRate:     0.3,
		PerturbationStrength: 1.0,
		MaxIterations:        60,
		Parallelism:          4,
		Seed:                 1,
	})

	pool, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if pool.Generation == 0 {
		t.Fatal("no generations ran")
	}

	best, err := e.GetBest()
	if err != nil {
		t.Fatalf("GetBest: %v", err)
	}
	// Random init averages 36; selection pressure over 60 generations
	// must do far better than that.
	if best.Score < 60 {
		t.Errorf("best score = %d, expected strong convergence toward %d", best.Score, toyLen*(toyMax-1))
	}

	hist := e.GetHistory()
	if len(hist) == 0 {
		t.Fatal("empty history")
	}
	if hist[len(hist)-1].BestScore < hist[0].BestScore {
		t.Errorf("best score regressed: %d -> %d", hist[0].BestScore, hist[len(hist)-1].BestScore)
	}
}

func TestEnginePoolInvariants(t *testing.T) {
	e := newToyEngine(EngineConfig{
		PoolSize:         20,
		EliteCount:       2,
		CrossoverRate:    0.5,
		PerturbationRate: 0.5,
		MaxIterations:    5,
		Parallelism:      2,
		Seed:             7,
	})

	pool, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(pool.Members) != 20 {
		t.Errorf("pool size = %d, want 20", len(pool.Members))
	}
	for i := 1; i < len(pool.Members); i++ {
		if pool.Members[i].Score > pool.Members[i-1].Score {
			t.Fatalf("pool not sorted best first at %d", i)
		}
	}
	if pool.Stats.BestScore != pool.Members[0].Score {
		t.Errorf("BestScore = %d, members[0] = %d", pool.Stats.BestScore, pool.Members[0].Score)
	}
	if pool.Stats.WorstScore > pool.Stats.BestScore {
		t.Error("WorstScore exceeds BestScore")
	}
}

func TestEngineContextCancellation(t *testing.T) {
	e := newToyEngine(EngineConfig{
		PoolSize:      10,
		MaxIterations: 1 << 20,
		Parallelism:   2,
		Seed:          3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	pool, err := e.Run(ctx)
	if err == nil {
		t.Error("expected context error")
	}
	if pool == nil {
		t.Fatal("cancelled run must still return the current pool")
	}
	if _, err := e.GetBest(); err != nil {
		t.Errorf("best should survive cancellation: %v", err)
	}
}

func TestEngineRepairerRunsOnOffspring(t *testing.T) {
	// Repairer clamps every entry to at most 5; no offspring may exceed
	// it even though initialization and mutation go up to 9.
	e := newToyEngine(EngineConfig{
		PoolSize:         12,
		EliteCount:       0,
		CrossoverRate:    0.7,
		PerturbationRate: 0.9,
		MaxIterations:    4,
		Parallelism:      1,
		Seed:             5,
	})
	e.SetRepairer(func(s []int, rng *rand.Rand) {
		for i := range s {
			if s[i] > 5 {
				s[i] = 5
			}
		}
	})

	pool, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Generation > 0 means every member passed through the repairer at
	// least once (elites disabled above).
	if pool.Generation == 0 {
		t.Fatal("no generations ran")
	}
	for _, c := range pool.Members {
		for _, v := range c.Data {
			if v > 5 {
				t.Fatalf("repairer bypassed: %v", c.Data)
			}
		}
	}
}

func TestEngineClonerProtectsParents(t *testing.T) {
	// With crossover disabled every offspring starts from a single
	// parent. A repairer that keeps rewriting its input would then
	// mutate pool members in place unless the engine clones first,
	// leaving elites whose recorded score no longer matches their data.
	e := newToyEngine(EngineConfig{
		PoolSize:         10,
		EliteCount:       2,
		CrossoverRate:    0,
		PerturbationRate: 0,
		MaxIterations:    6,
		Parallelism:      1,
		Seed:             9,
	})
	e.SetCloner(func(s []int) []int {
		c := make([]int, len(s))
		copy(c, s)
		return c
	})
	e.SetRepairer(func(s []int, rng *rand.Rand) {
		if s[0] > 0 {
			s[0]--
		}
	})

	pool, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if pool.Generation == 0 {
		t.Fatal("no generations ran")
	}
	for _, c := range pool.Members {
		if score, _ := toyEvaluator(c.Data); score != c.Score {
			t.Fatalf("score %d desynced from data %v", c.Score, c.Data)
		}
	}
}

func TestEngineTerminatorStopsEarly(t *testing.T) {
	e := newToyEngine(EngineConfig{
		PoolSize:         10,
		EliteCount:       1,
		CrossoverRate:    0.5,
		PerturbationRate: 0.5,
		MaxIterations:    100,
		Parallelism:      1,
		Seed:             11,
	})

	calls := 0
	e.SetTerminator(func(pool *Pool[[]int, int], iteration int) bool {
		calls++
		return iteration >= 3
	})

	pool, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if pool.Generation != 3 {
		t.Errorf("stopped at generation %d, want 3", pool.Generation)
	}
	if calls != 4 {
		t.Errorf("terminator called %d times, want 4", calls)
	}
}

func TestEngineDeterministicWithSeed(t *testing.T) {
	cfg := EngineConfig{
		PoolSize:         15,
		EliteCount:       2,
		CrossoverRate:    0.8,
		PerturbationRate: 0.4,
		MaxIterations:    10,
		Parallelism:      1,
		Seed:             42,
	}

	a, _ := newToyEngine(cfg).Run(context.Background())
	b, _ := newToyEngine(cfg).Run(context.Background())

	if a.Stats != b.Stats {
		t.Errorf("same seed diverged: %+v vs %+v", a.Stats, b.Stats)
	}
}

func TestTournamentSelector(t *testing.T) {
	pool := &Pool[[]int, int]{
		Members: []Candidate[[]int, int]{
			{Data: []int{9}, Score: 9},
			{Data: []int{5}, Score: 5},
			{Data: []int{1}, Score: 1},
		},
	}
	rng := rand.New(rand.NewPCG(2, 2))

	// With tournament size equal to the pool, the best always wins
	ts := &TournamentSelector[[]int, int]{TournamentSize: 3}
	for i := 0; i < 10; i++ {
		sel := ts.Select(pool, 2, rng)
		if len(sel) != 2 {
			t.Fatalf("selected %d, want 2", len(sel))
		}
		for _, c := range sel {
			if c.Score != 9 {
				t.Errorf("full-pool tournament picked score %d", c.Score)
			}
		}
	}
}

func TestConvergenceTerminator(t *testing.T) {
	poolWith := func(score int) *Pool[[]int, int] {
		return &Pool[[]int, int]{
			Members: []Candidate[[]int, int]{{Score: score}},
			Stats:   PoolStats[int]{BestScore: score},
		}
	}

	t.Run("accept predicate wins immediately", func(t *testing.T) {
		term := ConvergenceTerminator[[]int, int](5, func(pool *Pool[[]int, int]) bool {
			return pool.Stats.BestScore >= 10
		})
		if term(poolWith(9), 0) {
			t.Error("accepted below threshold")
		}
		if !term(poolWith(10), 1) {
			t.Error("rejected at threshold")
		}
	})

	t.Run("patience exhausts on stall", func(t *testing.T) {
		term := ConvergenceTerminator[[]int, int](3, nil)
		if term(poolWith(5), 0) {
			t.Fatal("stopped on first improvement")
		}
		for i := 1; i <= 2; i++ {
			if term(poolWith(5), i) {
				t.Fatalf("stopped at stall %d, patience is 3", i)
			}
		}
		if !term(poolWith(5), 3) {
			t.Error("did not stop after patience ran out")
		}
	})

	t.Run("improvement resets patience", func(t *testing.T) {
		term := ConvergenceTerminator[[]int, int](2, nil)
		term(poolWith(5), 0)
		term(poolWith(5), 1)      // stall 1
		term(poolWith(6), 2)      // improvement resets
		if term(poolWith(6), 3) { // stall 1 again
			t.Error("patience did not reset on improvement")
		}
	})
}
