package engine

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"
)

// EnemySpawn is an enemy waiting to be created when a layout loads.
type EnemySpawn struct {
	Species Species
	At      Coord
}

// Layout is a generated stage before it is loaded into a World.
type Layout struct {
	Stage    int
	Grid     *Grid
	Spawn    Coord
	Blocks   []*SoftBlock
	PowerUps []*PowerUp
	Enemies  []EnemySpawn
}

// NewLayout creates a layout surrounded by hard walls with an empty
// interior.
func NewLayout(rows, cols int, spawn Coord) *Layout {
	g := NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r == 0 || c == 0 || r == rows-1 || c == cols-1 {
				_ = g.SetCell(r, c, HardWallCell())
			}
		}
	}
	return &Layout{Grid: g, Spawn: spawn}
}

// AddLattice places the (even, even) interior pillars.
func (l *Layout) AddLattice() {
	for r := 2; r < l.Grid.Rows()-1; r += 2 {
		for c := 2; c < l.Grid.Cols()-1; c += 2 {
			_ = l.Grid.SetCell(r, c, HardWallCell())
		}
	}
}

// AddSoftBlock places a block, hiding a power-up unless hidden is PowerNone.
func (l *Layout) AddSoftBlock(at Coord, hidden PowerUpKind) (*SoftBlock, error) {
	b := &SoftBlock{At: at}
	if hidden != PowerNone {
		b.Hidden = &PowerUp{Kind: hidden, At: at}
	}
	if err := l.Grid.SetCell(at.Row, at.Col, SoftBlockCell(b)); err != nil {
		return nil, err
	}
	l.Blocks = append(l.Blocks, b)
	if b.Hidden != nil {
		l.PowerUps = append(l.PowerUps, b.Hidden)
	}
	return b, nil
}

// AddEnemy queues an enemy spawn.
func (l *Layout) AddEnemy(sp Species, at Coord) {
	l.Enemies = append(l.Enemies, EnemySpawn{Species: sp, At: at})
}

// Generator builds stage layouts from the rules and a seeded source.
type Generator struct {
	rules *Rules
	rng   *rand.Rand
	log   *log.Logger
}

// NewGenerator creates a generator. A nil logger discards output.
func NewGenerator(r *Rules, rng *rand.Rand, logger *log.Logger) *Generator {
	if logger == nil {
		logger = discardLogger()
	}
	return &Generator{rules: r, rng: rng, log: logger}
}

// Generate builds the layout of a stage.
func (g *Generator) Generate(stage int) (*Layout, error) {
	tier, err := g.rules.TierFor(stage)
	if err != nil {
		return nil, err
	}
	gr := g.rules.Grid
	spawn := g.rules.Player.Spawn

	l := NewLayout(gr.Rows, gr.Cols, spawn)
	l.Stage = stage
	l.AddLattice()

	safe := func(c Coord) bool { return c.Chebyshev(spawn) <= 1 }
	for r := 1; r < gr.Rows-1; r++ {
		for c := 1; c < gr.Cols-1; c++ {
			at := Coord{Row: r, Col: c}
			if l.Grid.IsPermanent(r, c) || safe(at) {
				continue
			}
			if g.rng.Float64() < gr.SoftBlockChance {
				if _, err := l.AddSoftBlock(at, PowerNone); err != nil {
					return nil, err
				}
			}
		}
	}

	hideable := func(c Coord) bool {
		return !l.Grid.IsPermanent(c.Row, c.Col) && !safe(c) && l.Grid.Occupant(c).Kind == KindEmpty
	}
	hidden := []PowerUpKind{PowerExit}
	if pool := g.rules.SpecialPool(tier); len(pool) > 0 {
		hidden = append([]PowerUpKind{pool[g.rng.Intn(len(pool))]}, hidden...)
	}
	for _, kind := range hidden {
		at, err := g.sample(hideable, string(kind))
		if err != nil {
			return nil, fmt.Errorf("stage %d: placing %s: %w", stage, kind, err)
		}
		if _, err := l.AddSoftBlock(at, kind); err != nil {
			return nil, err
		}
	}

	taken := mapset.New[Coord]()
	for i := 0; i < tier.EnemyCount(stage); i++ {
		sp := tier.Draw(g.rng)
		at, err := g.sample(func(c Coord) bool {
			return l.Grid.Occupant(c).Kind == KindEmpty && c.Chebyshev(spawn) >= 3 && !taken.Has(c)
		}, string(sp))
		if err != nil {
			return nil, fmt.Errorf("stage %d: placing %s: %w", stage, sp, err)
		}
		taken.Put(at)
		l.AddEnemy(sp, at)
	}

	l.Grid.Seal()
	return l, nil
}

func (g *Generator) sample(eligible func(Coord) bool, what string) (Coord, error) {
	at, fallback, err := sampleCell(g.rng, g.rules.Grid.Rows, g.rules.Grid.Cols, g.rules.Grid.SampleAttempts, eligible)
	if fallback && err == nil {
		g.log.Debug("rejection sampling exhausted, used scan", "what", what, "cell", at)
	}
	return at, err
}

// sampleCell draws uniformly random cells until one is eligible. After
// attempts misses it takes the first eligible cell in row-major order.
func sampleCell(rng *rand.Rand, rows, cols, attempts int, eligible func(Coord) bool) (Coord, bool, error) {
	for i := 0; i < attempts; i++ {
		c := Coord{Row: rng.Intn(rows), Col: rng.Intn(cols)}
		if eligible(c) {
			return c, false, nil
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			at := Coord{Row: r, Col: c}
			if eligible(at) {
				return at, true, nil
			}
		}
	}
	return Coord{}, true, ErrNoEligibleCell
}
