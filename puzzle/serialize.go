package puzzle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ringWire tolerates the legacy "lasers" field name on decode. The
// canonical name is "emitters"; translation happens only here, at the
// serialization boundary.
type ringWire struct {
	Radius   float64 `json:"radius"`
	Emitters []int   `json:"emitters"`
	Lasers   []int   `json:"lasers,omitempty"`
	Blockers []int   `json:"blockers"`
}

// UnmarshalJSON decodes a ring, accepting "lasers" as an alias for
// "emitters" when the canonical field is absent.
func (r *Ring) UnmarshalJSON(data []byte) error {
	var w ringWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Radius = w.Radius
	r.Blockers = w.Blockers
	r.Emitters = w.Emitters
	if r.Emitters == nil {
		r.Emitters = w.Lasers
	}
	return nil
}

// Marshal encodes the puzzle as the canonical JSON wire form.
func (p *Puzzle) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Unmarshal decodes a puzzle from JSON and validates the result.
func Unmarshal(data []byte) (*Puzzle, error) {
	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("puzzle: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Signature returns a canonical stable serialization used as a cache
// key. Equivalent puzzles (same sets, any order) share a signature.
func (p *Puzzle) Signature() string {
	c := p.Clone()
	c.Normalize()

	var sb strings.Builder
	sb.WriteByte('L')
	writeInts(&sb, c.LitEdges)
	for i, r := range c.Rings {
		fmt.Fprintf(&sb, "|R%d:E", i)
		writeInts(&sb, r.Emitters)
		sb.WriteString(":B")
		writeInts(&sb, r.Blockers)
	}
	return sb.String()
}

func writeInts(sb *strings.Builder, vals []int) {
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(sb, "%d", v)
	}
}
