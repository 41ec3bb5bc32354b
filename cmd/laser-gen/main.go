// laser-gen generates ring-laser puzzles from the command line and
// reports solvability and difficulty for each.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/laser-lock/construct"
	"github.com/lixenwraith/laser-lock/difficulty"
	"github.com/lixenwraith/laser-lock/evolve"
	"github.com/lixenwraith/laser-lock/oracle"
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
	"github.com/lixenwraith/laser-lock/solspace"
	"github.com/lixenwraith/laser-lock/tuning"
)

func main() {
	var (
		tier       = flag.String("difficulty", "medium", "easy, medium or hard")
		minLit     = flag.Int("min-lit", 0, "minimum lit edges (0 = preset default)")
		maxLit     = flag.Int("max-lit", 0, "maximum lit edges (0 = preset default)")
		mode       = flag.String("generator", "evolve", "evolve or construct")
		count      = flag.Int("count", 1, "puzzles to generate")
		seed       = flag.Uint64("seed", 0, "rng seed (0 = random)")
		timeout    = flag.Duration("timeout", 30*time.Second, "per-puzzle deadline for the evolutionary search")
		tuningPath = flag.String("tuning", "", "optional YAML preset override file")
		asJSON     = flag.Bool("json", false, "emit puzzles as JSON")
		verbose    = flag.Bool("v", false, "per-generation debug logging")
	)
	flag.Parse()

	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	d := puzzle.ParseDifficulty(*tier)

	for i := 0; i < *count; i++ {
		switch strings.ToLower(*mode) {
		case "construct":
			runConstruct(log, d, *minLit, *maxLit, *seed, *asJSON)
		default:
			runEvolve(log, d, *minLit, *maxLit, *seed, *timeout, *tuningPath, *asJSON)
		}
	}
}

func runEvolve(log *logrus.Logger, d puzzle.Difficulty, minLit, maxLit int, seed uint64, timeout time.Duration, tuningPath string, asJSON bool) {
	gen := evolve.NewGenerator(evolve.Config{Seed: seed, Logger: log})
	if tuningPath != "" {
		if err := tuning.Apply(gen, tuningPath); err != nil {
			log.WithError(err).Fatal("tuning file rejected")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var res evolve.Result
	if minLit > 0 || maxLit > 0 {
		res = gen.GenerateWithRange(ctx, d, minLit, maxLit)
	} else {
		res = gen.Generate(ctx, d)
	}

	log.WithFields(logrus.Fields{
		"fitness":     fmt.Sprintf("%.3f", res.Fitness),
		"generations": res.Generations,
		"solvable":    res.Solvable,
		"elapsed":     res.Elapsed.Round(time.Millisecond),
		"cacheHits":   res.CacheHits,
		"cacheMisses": res.CacheMisses,
	}).Info("evolved puzzle")

	emit(log, res.Puzzle, asJSON)
}

func runConstruct(log *logrus.Logger, d puzzle.Difficulty, minLit, maxLit int, seed uint64, asJSON bool) {
	if minLit <= 0 {
		minLit = 3
	}
	if maxLit <= 0 {
		maxLit = 5
	}
	gen := construct.NewGenerator(solspace.NewIndex(), seed)
	res := gen.Generate(construct.Config{MinLit: minLit, MaxLit: maxLit, Difficulty: d})

	log.WithFields(logrus.Fields{
		"fallback": res.UsedFallback,
		"solvable": res.Solvable,
		"elapsed":  res.Elapsed.Round(time.Millisecond),
	}).Info("constructed puzzle")

	emit(log, res.Puzzle, asJSON)
}

func emit(log *logrus.Logger, p *puzzle.Puzzle, asJSON bool) {
	if asJSON {
		data, err := p.Marshal()
		if err != nil {
			log.WithError(err).Fatal("marshal failed")
		}
		fmt.Println(string(data))
		return
	}

	fmt.Printf("lit edges: %v\n", p.LitEdges)
	for i, r := range p.Rings {
		fmt.Printf("ring %d (r=%.0f): emitters %v  blockers %v\n", i, r.Radius, r.Emitters, r.Blockers)
	}

	o := oracle.New(oracle.DefaultConfig())
	if rot, ok := o.FindSolution(p); ok {
		fmt.Printf("solution: rotate rings by %v steps (%d deg each step)\n",
			rot, int(parameter.SlotDegrees))
	} else {
		fmt.Println("solution: none found")
	}

	rep := difficulty.Analyze(p)
	fmt.Printf("difficulty: %.2f (%s)  density %.2f  complexity %.2f  load %.2f  aesthetics %.2f\n",
		rep.Overall, rep.Bucket, rep.Density, rep.SolutionComplexity, rep.CognitiveLoad, rep.Aesthetics)
	for _, s := range rep.Suggestions {
		fmt.Printf("  hint: %s\n", s)
	}
	fmt.Println()
}
