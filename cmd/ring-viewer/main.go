// ring-viewer is an interactive terminal consumer of the puzzle core:
// it renders a generated puzzle, lets you rotate rings one 30-degree
// step at a time, and shows which edges the beams currently light.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/laser-lock/evolve"
	"github.com/lixenwraith/laser-lock/geometry"
	"github.com/lixenwraith/laser-lock/oracle"
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

const (
	// Character cells are roughly twice as tall as wide
	aspectX = 2.0
	scale   = 0.11
)

type viewer struct {
	screen tcell.Screen
	oracle *oracle.Oracle
	gen    *evolve.Generator

	puzzle   *puzzle.Puzzle
	rotation puzzle.RotationVector
	ring     int // selected ring
	tier     puzzle.Difficulty
	solvable bool
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ring-viewer:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "ring-viewer:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		oracle: oracle.New(oracle.DefaultConfig()),
		gen:    evolve.NewGenerator(evolve.Config{PoolSize: parameter.GAPoolSizeCompact}),
		tier:   puzzle.Medium,
	}
	v.regenerate()

	for {
		v.draw()
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		}
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
		return false
	case ev.Rune() >= '1' && ev.Rune() <= '3':
		v.ring = int(ev.Rune() - '1')
	case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
		v.rotation[v.ring] = (v.rotation[v.ring] + 1) % parameter.RotationSteps
	case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
		v.rotation[v.ring] = (v.rotation[v.ring] + parameter.RotationSteps - 1) % parameter.RotationSteps
	case ev.Rune() == 'n':
		v.regenerate()
	case ev.Rune() == 'd':
		switch v.tier {
		case puzzle.Easy:
			v.tier = puzzle.Medium
		case puzzle.Medium:
			v.tier = puzzle.Hard
		default:
			v.tier = puzzle.Easy
		}
		v.regenerate()
	}
	return true
}

func (v *viewer) regenerate() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res := v.gen.Generate(ctx, v.tier)
	v.puzzle = res.Puzzle
	v.solvable = res.Solvable
	v.rotation = puzzle.RotationVector{}
	v.ring = 0
}

func (v *viewer) draw() {
	s := v.screen
	s.Clear()
	w, h := s.Size()
	cx, cy := w/2, h/2-1

	hit := make(map[int]bool)
	for _, e := range v.oracle.HitEdges(v.puzzle, v.rotation) {
		hit[e] = true
	}
	lit := make(map[int]bool)
	for _, e := range v.puzzle.LitEdges {
		lit[e] = true
	}

	v.drawEdges(cx, cy, lit, hit)
	v.drawBeams(cx, cy)
	v.drawRings(cx, cy)
	v.drawStatus(h, lit, hit)
	s.Show()
}

func (v *viewer) drawEdges(cx, cy int, lit, hit map[int]bool) {
	verts := geometry.PolygonVertices(parameter.PolygonSides, parameter.PolygonRadius, geometry.Vec2{}, 0)
	for e := 0; e < parameter.PolygonSides; e++ {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		ch := '·'
		switch {
		case lit[e] && hit[e]:
			style = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
			ch = '█'
		case lit[e]:
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
			ch = '▒'
		case hit[e]:
			style = tcell.StyleDefault.Foreground(tcell.ColorTeal)
			ch = '─'
		}
		a := verts[e]
		b := verts[(e+1)%parameter.PolygonSides]
		v.drawSegment(cx, cy, a, b, ch, style)
	}
}

func (v *viewer) drawBeams(cx, cy int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for ri := range v.puzzle.Rings {
		r := v.puzzle.Rings[ri]
		for _, slot := range r.Emitters {
			angle := geometry.SlotToAngle(slot + v.rotation[ri])
			origin := geometry.PointOnCircle(geometry.Vec2{}, r.Radius, angle)
			exit := geometry.PointOnCircle(geometry.Vec2{}, parameter.PolygonRadius-8, angle+180)
			v.drawSegment(cx, cy, origin, exit, '·', style)
		}
	}
}

func (v *viewer) drawRings(cx, cy int) {
	for ri := range v.puzzle.Rings {
		r := v.puzzle.Rings[ri]
		selected := ri == v.ring

		occupant := make(map[int]rune, parameter.SlotCount)
		for _, s := range r.Emitters {
			occupant[s] = 'E'
		}
		for _, s := range r.Blockers {
			occupant[s] = 'B'
		}

		for slot := 0; slot < parameter.SlotCount; slot++ {
			angle := geometry.SlotToAngle(slot + v.rotation[ri])
			pos := geometry.PointOnCircle(geometry.Vec2{}, r.Radius, angle)
			x, y := v.cell(cx, cy, pos)

			ch, ok := occupant[slot]
			style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
			if !ok {
				ch = '∙'
			} else if ch == 'E' {
				style = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(selected)
			} else {
				style = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(selected)
			}
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (v *viewer) drawStatus(h int, lit, hit map[int]bool) {
	solved := true
	for e := range lit {
		if !hit[e] {
			solved = false
			break
		}
	}

	status := fmt.Sprintf(" ring %d  rotation %v  tier %s  solvable %v ",
		v.ring+1, v.rotation, v.tier, v.solvable)
	if solved && len(lit) > 0 {
		status += " SOLVED "
	}
	keys := " 1-3 select ring  ←/→ rotate  n new  d difficulty  q quit "

	putText(v.screen, 0, h-2, status, tcell.StyleDefault.Bold(true))
	putText(v.screen, 0, h-1, keys, tcell.StyleDefault.Foreground(tcell.ColorGray))
}

// drawSegment samples the segment densely enough that adjacent cells
// connect at this scale.
func (v *viewer) drawSegment(cx, cy int, a, b geometry.Vec2, ch rune, style tcell.Style) {
	steps := int(b.Sub(a).Length()*scale*aspectX) * 2
	if steps < 2 {
		steps = 2
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := a.Add(b.Sub(a).Scale(t))
		x, y := v.cell(cx, cy, p)
		v.screen.SetContent(x, y, ch, nil, style)
	}
}

// cell maps board coordinates to screen cells, correcting for the
// character aspect ratio. Board +Y maps to screen up.
func (v *viewer) cell(cx, cy int, p geometry.Vec2) (int, int) {
	return cx + int(p.X*scale*aspectX), cy - int(p.Y*scale)
}

func putText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
