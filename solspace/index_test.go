package solspace

import (
	"testing"

	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

func TestReachableEdges(t *testing.T) {
	x := NewIndex()

	tests := []struct {
		name             string
		ring, slot, rot  int
		wantEdge         int
	}{
		{"neutral slot 0", 0, 0, 0, 6},
		{"neutral slot 7", 1, 7, 0, 1},
		{"rotated", 2, 0, 3, 9},
		{"wrap", 0, 10, 5, 9},
		{"negative rotation", 0, 0, -1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.ReachableEdges(tt.ring, tt.slot, tt.rot)
			if len(got) != 1 || got[0] != tt.wantEdge {
				t.Errorf("ReachableEdges(%d,%d,%d) = %v, want [%d]",
					tt.ring, tt.slot, tt.rot, got, tt.wantEdge)
			}
		})
	}
}

func TestPlacementsForCoverage(t *testing.T) {
	x := NewIndex()

	// Every edge has one aligned (slot, rotation) pair per rotation per
	// ring: 3 rings x 12 rotations.
	want := parameter.RingCount * parameter.RotationSteps
	for edge := 0; edge < parameter.PolygonSides; edge++ {
		pls := x.PlacementsFor(edge)
		if len(pls) != want {
			t.Errorf("edge %d: %d placements, want %d", edge, len(pls), want)
		}
		for _, pl := range pls {
			if ws := (pl.Slot + pl.Rotation) % parameter.SlotCount; ws != (edge+6)%12 {
				t.Errorf("edge %d: placement %+v has world slot %d, want %d",
					edge, pl, ws, (edge+6)%12)
			}
		}
	}

	if x.PlacementsFor(-1) != nil || x.PlacementsFor(12) != nil {
		t.Error("out-of-range edge should return nil")
	}
}

func TestPlacementSteps(t *testing.T) {
	x := NewIndex()

	for _, pl := range x.PlacementsFor(3) {
		want := pl.Rotation
		if want > parameter.RotationSteps/2 {
			want = parameter.RotationSteps - want
		}
		if pl.Steps != want {
			t.Errorf("rotation %d: steps = %d, want %d", pl.Rotation, pl.Steps, want)
		}
	}
}

func TestEdgeDifficultyPristineBoardIsUniform(t *testing.T) {
	x := NewIndex()

	first := x.EdgeDifficulty(0)
	if first.SolutionCount != parameter.RingCount*parameter.RotationSteps {
		t.Errorf("SolutionCount = %d, want %d", first.SolutionCount, parameter.RingCount*parameter.RotationSteps)
	}
	if first.MinRotationSteps != 0 {
		t.Errorf("MinRotationSteps = %d, want 0", first.MinRotationSteps)
	}
	for edge := 1; edge < parameter.PolygonSides; edge++ {
		if d := x.EdgeDifficulty(edge); d != first {
			t.Errorf("edge %d difficulty %+v differs from edge 0 %+v", edge, d, first)
		}
	}
}

func TestConstrainedDifficulty(t *testing.T) {
	x := NewIndex()

	p := puzzle.New()
	// Occupy the slot that lights edge 0 at neutral rotation on every ring
	for ring := range p.Rings {
		p.Rings[ring].Blockers = []int{6}
	}

	d := x.ConstrainedDifficulty(0, p)
	pristine := x.EdgeDifficulty(0)
	if d.SolutionCount >= pristine.SolutionCount {
		t.Errorf("occupied slots should reduce SolutionCount: %d vs %d",
			d.SolutionCount, pristine.SolutionCount)
	}
	// Slot 6 served rotation 0 on all rings; the cheapest remaining
	// placement needs one step.
	if d.MinRotationSteps != 1 {
		t.Errorf("MinRotationSteps = %d, want 1", d.MinRotationSteps)
	}
}

func TestConstrainedDifficultyFullyOccupied(t *testing.T) {
	x := NewIndex()

	p := puzzle.New()
	for ring := range p.Rings {
		for s := 0; s < parameter.SlotCount; s += 2 {
			p.Rings[ring].Blockers = append(p.Rings[ring].Blockers, s)
		}
		for s := 1; s < parameter.SlotCount; s += 2 {
			p.Rings[ring].Emitters = append(p.Rings[ring].Emitters, s)
		}
	}

	d := x.ConstrainedDifficulty(4, p)
	if d.SolutionCount != 0 || d.MinRotationSteps != 0 {
		t.Errorf("fully occupied board: %+v, want zero difficulty", d)
	}
}

func TestClearForcesRebuild(t *testing.T) {
	x := NewIndex()
	x.Build()
	x.Clear()
	if got := x.ReachableEdges(0, 0, 0); len(got) != 1 || got[0] != 6 {
		t.Errorf("after Clear: ReachableEdges = %v, want [6]", got)
	}
}
