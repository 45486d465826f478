package bomberman

import (
	"fmt"
	"hash/fnv"

	"github.com/vovakirdan/tui-bomber/internal/games/bomberman/engine"
)

// Snapshot is the adapter state plus the world summary.
type Snapshot struct {
	Tick   uint64
	Paused bool
	World  engine.Snapshot
}

// Snapshot captures the current state. It is empty when no world runs.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{Tick: g.ticks, Paused: g.paused}
	if g.world != nil {
		snap.World = g.world.Snapshot()
	}
	return snap
}

// Hash returns a hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%t|%+v", snap.Tick, snap.Paused, snap.World)
	return h.Sum64()
}
