package engine

import (
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// SegmentKind is the role of a blast segment.
type SegmentKind uint8

const (
	SegmentCentre SegmentKind = iota
	SegmentMid
	SegmentEnd
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentCentre:
		return "centre"
	case SegmentMid:
		return "mid"
	}
	return "end"
}

// Segment is one tile of a blast.
type Segment struct {
	Pos  Coord
	Kind SegmentKind
	Dir  Direction // DirNone for the centre
	anim Animation
}

func newSegment(at Coord, kind SegmentKind, dir Direction, r BlastRules) *Segment {
	return &Segment{Pos: at, Kind: kind, Dir: dir, anim: NewAnimation(r.Frames, r.Frame)}
}

// Frame returns the animation frame.
func (s *Segment) Frame() int { return s.anim.Frame() }

// Done reports whether the segment has expired.
func (s *Segment) Done() bool { return s.anim.Done() }

// Role names the sprite: "centre", "horizontal", "vertical" or
// "end_<direction>".
func (s *Segment) Role() string {
	switch {
	case s.Kind == SegmentCentre:
		return "centre"
	case s.Kind == SegmentEnd:
		return "end_" + s.Dir.String()
	case s.Dir.Horizontal():
		return "horizontal"
	}
	return "vertical"
}

// FlameShape returns the lethal box of the segment within its tile. Arms
// are narrower than the tile across their axis.
func (s *Segment) FlameShape(tile core.Rect, inset Fixed) core.Rect {
	switch {
	case s.Kind == SegmentCentre:
		return tile
	case s.Dir.Horizontal():
		return tile.Inset(0, int(inset))
	}
	return tile.Inset(int(inset), 0)
}

func (s *Segment) advance(dt time.Duration) bool {
	return s.anim.Advance(dt)
}

// blast resolves one detonation and every bomb it chains into, within a
// single pass. It writes nothing to the grid directly.
type blast struct {
	grid    *Grid
	cmds    *commands
	events  *eventLog
	rules   *Rules
	visited mapset.Set[int]
}

func newBlast(g *Grid, cmds *commands, events *eventLog, rules *Rules) *blast {
	return &blast{grid: g, cmds: cmds, events: events, rules: rules, visited: mapset.New[int]()}
}

// detonate propagates b. Bombs already visited or no longer armed are
// ignored, which makes every detonation idempotent.
func (bl *blast) detonate(b *Bomb) {
	if bl.visited.Has(b.ID) || !b.arm() {
		return
	}
	bl.visited.Put(b.ID)
	bl.events.emit(Event{Kind: EventBombDetonated, At: b.At})
	bl.cmds.addSegment(newSegment(b.At, SegmentCentre, DirNone, bl.rules.Blast))

	open := [len(cardinals)]bool{true, true, true, true}
	for k := 0; k < b.Power; k++ {
		for i, dir := range cardinals {
			if !open[i] {
				continue
			}
			at := b.At.Step(dir, k+1)
			cell := bl.grid.Occupant(at)
			switch {
			case cell.Kind == KindEmpty:
				kind := SegmentMid
				if k == b.Power-1 {
					kind = SegmentEnd
				} else {
					switch bl.grid.Occupant(at.Step(dir, 1)).Kind {
					case KindHardWall:
						kind = SegmentEnd
						open[i] = false
					case KindSoftBlock, KindBomb:
						kind = SegmentEnd
					}
				}
				bl.cmds.addSegment(newSegment(at, kind, dir, bl.rules.Blast))
			case cell.Destructible():
				bl.destroy(at, cell)
				open[i] = false
			case cell.Kind == KindPowerUp:
				// The exit survives but calls a penalty wave.
				bl.cmds.hitExit(at)
				open[i] = false
			default:
				open[i] = false
			}
		}
	}
	bl.finish(b)
}

// destroy applies a blast to a destructible occupant: bombs chain, soft
// blocks start burning and revealed specials are lost.
func (bl *blast) destroy(at Coord, cell Cell) {
	switch cell.Kind {
	case KindBomb:
		bl.detonate(cell.Bomb)
	case KindSoftBlock:
		if cell.Soft.Ignite(bl.rules.Block) {
			bl.events.emit(Event{Kind: EventBlockDestroyed, At: at})
		}
	case KindPowerUp:
		p := cell.PowerUp
		if p.taken {
			return
		}
		p.taken = true
		bl.cmds.write(p.At, EmptyCell(), holdsPowerUp(p))
		bl.events.emit(Event{Kind: EventPowerUpLost, At: p.At, PowerUp: p.Kind})
	}
}

// finish removes the bomb and frees its owner's slot.
func (bl *blast) finish(b *Bomb) {
	b.state = BombRemoved
	if b.owner != nil {
		b.owner.release(b)
	}
	bl.cmds.write(b.At, EmptyCell(), holdsBomb(b))
}
