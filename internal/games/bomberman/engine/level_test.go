package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLattice(t *testing.T) {
	r := DefaultRules()
	for seed := int64(1); seed <= 10; seed++ {
		for _, stage := range []int{1, 5, 10, 19, 20, 35, 50} {
			gen := NewGenerator(r, rand.New(rand.NewSource(seed)), nil)
			l, err := gen.Generate(stage)
			require.NoError(t, err, "seed %d stage %d", seed, stage)

			for row := 0; row < r.Grid.Rows; row++ {
				for col := 0; col < r.Grid.Cols; col++ {
					c := l.Grid.Occupant(Coord{row, col})
					if l.Grid.IsPermanent(row, col) {
						assert.Equal(t, KindHardWall, c.Kind, "permanent cell (%d,%d)", row, col)
					} else {
						assert.NotEqual(t, KindHardWall, c.Kind, "interior cell (%d,%d)", row, col)
					}
				}
			}

			spawn := r.Player.Spawn
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					at := Coord{spawn.Row + dr, spawn.Col + dc}
					if !l.Grid.IsPermanent(at.Row, at.Col) {
						assert.Equal(t, KindEmpty, l.Grid.Occupant(at).Kind, "safe zone %v", at)
					}
				}
			}
		}
	}
}

func TestGenerateHiddenPowerUps(t *testing.T) {
	r := DefaultRules()
	gen := NewGenerator(r, rand.New(rand.NewSource(7)), nil)
	l, err := gen.Generate(1)
	require.NoError(t, err)

	exits := 0
	specials := 0
	for _, p := range l.PowerUps {
		assert.False(t, p.Revealed())
		assert.Equal(t, KindSoftBlock, l.Grid.Occupant(p.At).Kind, "power-up %s must be hidden", p.Kind)
		assert.False(t, l.Grid.IsPermanent(p.At.Row, p.At.Col))
		if p.Kind == PowerExit {
			exits++
			continue
		}
		specials++
		assert.Contains(t, []PowerUpKind{PowerBombUp, PowerFireUp}, p.Kind)
	}
	assert.Equal(t, 1, exits)
	assert.Equal(t, 1, specials)
}

func TestGenerateRoster(t *testing.T) {
	r := DefaultRules()
	for _, stage := range []int{1, 10, 15, 34, 50} {
		gen := NewGenerator(r, rand.New(rand.NewSource(int64(stage))), nil)
		l, err := gen.Generate(stage)
		require.NoError(t, err)

		tier, err := r.TierFor(stage)
		require.NoError(t, err)
		require.Len(t, l.Enemies, tier.EnemyCount(stage), "stage %d", stage)

		seen := make(map[Coord]bool)
		for _, e := range l.Enemies {
			assert.True(t, tier.Has(e.Species), "stage %d species %s", stage, e.Species)
			assert.GreaterOrEqual(t, e.At.Chebyshev(r.Player.Spawn), 3)
			assert.Equal(t, KindEmpty, l.Grid.Occupant(e.At).Kind)
			assert.False(t, seen[e.At], "two enemies on %v", e.At)
			seen[e.At] = true
		}
	}
}

func TestTierEnemyCount(t *testing.T) {
	tier := Tier{First: 10, Last: 19, Enemies: 6, StagesPerExtra: 5}
	assert.Equal(t, 6, tier.EnemyCount(10))
	assert.Equal(t, 6, tier.EnemyCount(14))
	assert.Equal(t, 7, tier.EnemyCount(15))
	assert.Equal(t, 7, tier.EnemyCount(19))

	flat := Tier{First: 1, Last: 4, Enemies: 5}
	assert.Equal(t, 5, flat.EnemyCount(4))
}

func TestGenerateStageOutsideTiers(t *testing.T) {
	gen := NewGenerator(DefaultRules(), rand.New(rand.NewSource(1)), nil)
	_, err := gen.Generate(51)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "stage", cfgErr.Field)
}

func TestGenerateFallsBackToScan(t *testing.T) {
	r := DefaultRules()
	r.Grid.SampleAttempts = 0
	r.Grid.SoftBlockChance = 0

	gen := NewGenerator(r, rand.New(rand.NewSource(1)), nil)
	l, err := gen.Generate(1)
	require.NoError(t, err)

	require.Len(t, l.Blocks, 2)
	assert.Equal(t, Coord{1, 1}, l.Blocks[0].At)
	assert.Equal(t, Coord{1, 2}, l.Blocks[1].At)
	assert.Equal(t, PowerExit, l.Blocks[1].Hidden.Kind)

	require.Len(t, l.Enemies, 5)
	assert.Equal(t, Coord{1, 5}, l.Enemies[0].At)
	assert.Equal(t, Coord{1, 6}, l.Enemies[1].At)
}

func TestGenerateNoEligibleCell(t *testing.T) {
	r := DefaultRules()
	r.Grid.Rows, r.Grid.Cols = 5, 5
	r.Grid.SoftBlockChance = 0
	r.Player.Spawn = Coord{2, 1}

	gen := NewGenerator(r, rand.New(rand.NewSource(1)), nil)
	_, err := gen.Generate(1)
	assert.ErrorIs(t, err, ErrNoEligibleCell)
}

func TestGenerateDeterministic(t *testing.T) {
	r := DefaultRules()
	a, err := NewGenerator(r, rand.New(rand.NewSource(99)), nil).Generate(12)
	require.NoError(t, err)
	b, err := NewGenerator(r, rand.New(rand.NewSource(99)), nil).Generate(12)
	require.NoError(t, err)

	assert.Equal(t, a.Grid.String(), b.Grid.String())
	assert.Equal(t, a.Enemies, b.Enemies)
}

func TestSpecialPool(t *testing.T) {
	r := DefaultRules()
	tier, err := r.TierFor(35)
	require.NoError(t, err)
	assert.Equal(t, []PowerUpKind{PowerWallHack, PowerRemote, PowerBombPass, PowerFlamePass}, r.SpecialPool(tier))
}

func TestTierDrawRespectsWeights(t *testing.T) {
	tier := Tier{Weights: []SpeciesWeight{{Ballom, 3}, {Onil, 1}}}
	rng := rand.New(rand.NewSource(5))
	counts := map[Species]int{}
	for i := 0; i < 4000; i++ {
		counts[tier.Draw(rng)]++
	}
	assert.InDelta(t, 3000, counts[Ballom], 150)
	assert.InDelta(t, 1000, counts[Onil], 150)
}
