package puzzle

import (
	"slices"
	"testing"

	"github.com/lixenwraith/laser-lock/parameter"
)

func TestNewHasCanonicalRings(t *testing.T) {
	p := New()
	if len(p.Rings) != parameter.RingCount {
		t.Fatalf("ring count = %d, want %d", len(p.Rings), parameter.RingCount)
	}
	for i, r := range p.Rings {
		if r.Radius != parameter.RingRadii[i] {
			t.Errorf("ring %d radius = %v, want %v", i, r.Radius, parameter.RingRadii[i])
		}
	}
	if err := p.Validate(); err != nil {
		t.Errorf("empty puzzle should validate: %v", err)
	}
}

func TestCloneIndependence(t *testing.T) {
	p := New()
	p.LitEdges = []int{1, 2}
	p.Rings[0].Emitters = []int{3}
	p.Rings[1].Blockers = []int{7}

	c := p.Clone()
	c.LitEdges[0] = 9
	c.Rings[0].Emitters[0] = 0
	c.Rings[1].Blockers = append(c.Rings[1].Blockers, 8)

	if p.LitEdges[0] != 1 || p.Rings[0].Emitters[0] != 3 || len(p.Rings[1].Blockers) != 1 {
		t.Error("mutating clone changed original")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Puzzle)
		wantErr bool
	}{
		{"valid", func(p *Puzzle) {
			p.LitEdges = []int{0, 5, 11}
			p.Rings[0].Emitters = []int{0, 6}
			p.Rings[0].Blockers = []int{3}
		}, false},
		{"wrong ring count", func(p *Puzzle) {
			p.Rings = p.Rings[:2]
		}, true},
		{"lit edge out of range", func(p *Puzzle) {
			p.LitEdges = []int{12}
		}, true},
		{"negative lit edge", func(p *Puzzle) {
			p.LitEdges = []int{-1}
		}, true},
		{"duplicate lit edge", func(p *Puzzle) {
			p.LitEdges = []int{4, 4}
		}, true},
		{"emitter slot out of range", func(p *Puzzle) {
			p.Rings[1].Emitters = []int{12}
		}, true},
		{"blocker slot out of range", func(p *Puzzle) {
			p.Rings[2].Blockers = []int{-3}
		}, true},
		{"emitter and blocker share slot", func(p *Puzzle) {
			p.Rings[0].Emitters = []int{5}
			p.Rings[0].Blockers = []int{5}
		}, true},
		{"two emitters share slot", func(p *Puzzle) {
			p.Rings[0].Emitters = []int{5, 5}
		}, true},
		{"same slot different rings ok", func(p *Puzzle) {
			p.Rings[0].Emitters = []int{5}
			p.Rings[1].Blockers = []int{5}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			tt.mutate(p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	p := New()
	p.LitEdges = []int{5, 1, 5, 3}
	p.Rings[0].Emitters = []int{9, 2, 9}
	p.Rings[0].Blockers = []int{11, 0}
	p.Normalize()

	if !slices.Equal(p.LitEdges, []int{1, 3, 5}) {
		t.Errorf("LitEdges = %v", p.LitEdges)
	}
	if !slices.Equal(p.Rings[0].Emitters, []int{2, 9}) {
		t.Errorf("Emitters = %v", p.Rings[0].Emitters)
	}
	if !slices.Equal(p.Rings[0].Blockers, []int{0, 11}) {
		t.Errorf("Blockers = %v", p.Rings[0].Blockers)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p := New()
	p.LitEdges = []int{0, 4, 9}
	p.Rings[0].Emitters = []int{1, 7}
	p.Rings[1].Blockers = []int{3}
	p.Rings[2].Emitters = []int{11}

	data, err := p.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Signature() != p.Signature() {
		t.Errorf("round trip changed puzzle:\n got %s\nwant %s", got.Signature(), p.Signature())
	}
}

func TestUnmarshalLegacyLasersAlias(t *testing.T) {
	data := []byte(`{
		"litEdges": [2],
		"rings": [
			{"radius": 50, "lasers": [0, 6], "blockers": []},
			{"radius": 90, "emitters": [], "blockers": [4]},
			{"radius": 130, "emitters": [3], "lasers": [9], "blockers": []}
		]
	}`)

	p, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !slices.Equal(p.Rings[0].Emitters, []int{0, 6}) {
		t.Errorf("ring 0 emitters = %v, want lasers alias honored", p.Rings[0].Emitters)
	}
	// Canonical field wins when both are present
	if !slices.Equal(p.Rings[2].Emitters, []int{3}) {
		t.Errorf("ring 2 emitters = %v, want canonical field", p.Rings[2].Emitters)
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"litEdges": [`},
		{"bad edge", `{"litEdges": [99], "rings": [{"radius":50},{"radius":90},{"radius":130}]}`},
		{"missing rings", `{"litEdges": [1], "rings": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSignatureOrderIndependent(t *testing.T) {
	a := New()
	a.LitEdges = []int{4, 1}
	a.Rings[1].Emitters = []int{8, 2}

	b := New()
	b.LitEdges = []int{1, 4}
	b.Rings[1].Emitters = []int{2, 8}

	if a.Signature() != b.Signature() {
		t.Errorf("signatures differ:\n%s\n%s", a.Signature(), b.Signature())
	}

	c := b.Clone()
	c.Rings[1].Emitters[0] = 3
	if a.Signature() == c.Signature() {
		t.Error("distinct puzzles share a signature")
	}
}

func TestSignatureDoesNotMutate(t *testing.T) {
	p := New()
	p.LitEdges = []int{4, 1}
	_ = p.Signature()
	if !slices.Equal(p.LitEdges, []int{4, 1}) {
		t.Errorf("Signature reordered LitEdges: %v", p.LitEdges)
	}
}

func TestRingFreeSlots(t *testing.T) {
	r := Ring{Emitters: []int{0, 5}, Blockers: []int{11}}

	if !r.SlotOccupied(5) || !r.SlotOccupied(11) {
		t.Error("occupied slots reported free")
	}
	if r.SlotOccupied(1) {
		t.Error("free slot reported occupied")
	}

	free := r.FreeSlots()
	if len(free) != parameter.SlotCount-3 {
		t.Errorf("free count = %d, want %d", len(free), parameter.SlotCount-3)
	}
	for _, s := range free {
		if s == 0 || s == 5 || s == 11 {
			t.Errorf("slot %d in free list", s)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"easy", Easy},
		{"medium", Medium},
		{"hard", Hard},
		{"", Medium},
		{"EXTREME", Medium},
	}
	for _, tt := range tests {
		if got := ParseDifficulty(tt.in); got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampLitRange(t *testing.T) {
	tests := []struct {
		minIn, maxIn   int
		wantMin, wantMax int
	}{
		{3, 6, 3, 6},
		{6, 3, 3, 6},   // inverted swaps
		{0, 5, 1, 5},   // floor at 1
		{-2, 99, 1, 12},
		{14, 14, 12, 12},
		{0, 0, 1, 1},
	}
	for _, tt := range tests {
		gotMin, gotMax := ClampLitRange(tt.minIn, tt.maxIn)
		if gotMin != tt.wantMin || gotMax != tt.wantMax {
			t.Errorf("ClampLitRange(%d, %d) = (%d, %d), want (%d, %d)",
				tt.minIn, tt.maxIn, gotMin, gotMax, tt.wantMin, tt.wantMax)
		}
	}
}
