package construct

import (
	"slices"
	"testing"

	"github.com/lixenwraith/laser-lock/oracle"
	"github.com/lixenwraith/laser-lock/puzzle"
	"github.com/lixenwraith/laser-lock/solspace"
)

func TestSlotForEdge(t *testing.T) {
	tests := []struct {
		edge, rotation, want int
	}{
		{6, 0, 0},  // edge 6 lit from world slot 0
		{0, 0, 6},  // edge 0 lit from world slot 6
		{6, 1, 11}, // one step of rotation shifts the slot back
		{6, 11, 1},
		{9, 3, 0},
		{0, -1, 7},
	}
	for _, tt := range tests {
		if got := slotForEdge(tt.edge, tt.rotation); got != tt.want {
			t.Errorf("slotForEdge(%d, %d) = %d, want %d", tt.edge, tt.rotation, got, tt.want)
		}
	}

	// slotForEdge inverts worldSlot: the placed slot lands on the world
	// slot facing the edge.
	for edge := 0; edge < 12; edge++ {
		for rot := 0; rot < 12; rot++ {
			if ws := worldSlot(slotForEdge(edge, rot), rot); ws != (edge+6)%12 {
				t.Fatalf("edge %d rot %d: world slot %d, want %d", edge, rot, ws, (edge+6)%12)
			}
		}
	}
}

func TestGenerateProducesSolvablePuzzles(t *testing.T) {
	index := solspace.NewIndex()

	for _, d := range []puzzle.Difficulty{puzzle.Easy, puzzle.Medium, puzzle.Hard} {
		t.Run(string(d), func(t *testing.T) {
			g := NewGenerator(index, 11)
			for i := 0; i < 10; i++ {
				res := g.Generate(Config{MinLit: 2, MaxLit: 5, Difficulty: d})
				if err := res.Puzzle.Validate(); err != nil {
					t.Fatalf("run %d: invalid puzzle: %v", i, err)
				}
				if !res.Solvable {
					t.Errorf("run %d: unsolvable puzzle %s (fallback=%v)",
						i, res.Puzzle.Signature(), res.UsedFallback)
				}
				n := len(res.Puzzle.LitEdges)
				if n < 1 || n > 5 {
					t.Errorf("run %d: lit count %d outside [1,5]", i, n)
				}
			}
		})
	}
}

func TestGenerateClampsParameters(t *testing.T) {
	g := NewGenerator(solspace.NewIndex(), 3)

	// Inverted and out-of-range limits are sanitized, not rejected
	res := g.Generate(Config{MinLit: 9, MaxLit: -2, Difficulty: puzzle.Easy})
	if res.Puzzle == nil {
		t.Fatal("expected a puzzle")
	}
	if err := res.Puzzle.Validate(); err != nil {
		t.Fatalf("invalid puzzle: %v", err)
	}
	if !res.Solvable {
		t.Error("expected solvable")
	}
}

func TestGenerateNoOppositeLitPairs(t *testing.T) {
	g := NewGenerator(solspace.NewIndex(), 5)

	for i := 0; i < 20; i++ {
		res := g.Generate(Config{MinLit: 4, MaxLit: 6, Difficulty: puzzle.Hard})
		for _, e := range res.Puzzle.LitEdges {
			if slices.Contains(res.Puzzle.LitEdges, (e+6)%12) {
				t.Fatalf("run %d: opposite pair %d/%d in %v", i, e, (e+6)%12, res.Puzzle.LitEdges)
			}
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := NewGenerator(solspace.NewIndex(), 42)
	b := NewGenerator(solspace.NewIndex(), 42)

	cfg := Config{MinLit: 2, MaxLit: 4, Difficulty: puzzle.Medium}
	for i := 0; i < 5; i++ {
		pa := a.Generate(cfg).Puzzle.Signature()
		pb := b.Generate(cfg).Puzzle.Signature()
		if pa != pb {
			t.Fatalf("run %d: same seed diverged:\n%s\n%s", i, pa, pb)
		}
	}
}

func TestFallback(t *testing.T) {
	o := oracle.New(oracle.DefaultConfig())

	t.Run("solvable at neutral rotation", func(t *testing.T) {
		p := Fallback([]int{0, 3, 7})
		if err := p.Validate(); err != nil {
			t.Fatalf("invalid: %v", err)
		}
		hit := o.HitEdges(p, puzzle.RotationVector{})
		for _, e := range p.LitEdges {
			if !slices.Contains(hit, e) {
				t.Errorf("edge %d unlit at neutral rotation (hit %v)", e, hit)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := Fallback([]int{1, 5, 9})
		b := Fallback([]int{1, 5, 9})
		if a.Signature() != b.Signature() {
			t.Errorf("signatures differ:\n%s\n%s", a.Signature(), b.Signature())
		}
	})

	t.Run("drops opposite pairs", func(t *testing.T) {
		p := Fallback([]int{2, 8, 5})
		if !slices.Equal(p.LitEdges, []int{2, 5}) {
			t.Errorf("LitEdges = %v, want [2 5]", p.LitEdges)
		}
		if !o.IsSolvable(p) {
			t.Error("expected solvable after dropping the conflict")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		p := Fallback(nil)
		if err := p.Validate(); err != nil {
			t.Fatalf("invalid: %v", err)
		}
		if !o.IsSolvable(p) {
			t.Error("empty lit set is vacuously solvable")
		}
	})

	t.Run("harmless blocker present", func(t *testing.T) {
		p := Fallback([]int{4})
		if p.TotalBlockers() == 0 {
			t.Error("expected one harmless blocker")
		}
		if !o.IsSolvable(p) {
			t.Error("blocker must not break solvability")
		}
	})
}
