package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-bomber/internal/config"
)

func TestBombLimitAndRemoteLIFO(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	load(t, w, openLayout(r, Coord{3, 2}))
	p := w.Player()

	require.True(t, w.PlaceBomb())
	assert.False(t, w.PlaceBomb(), "cell already holds a bomb")
	assert.Equal(t, 1, p.ActiveBombs())

	teleport(w, Coord{9, 15})
	require.True(t, w.PlaceBomb())
	assert.Equal(t, 2, p.ActiveBombs())

	teleport(w, Coord{15, 25})
	assert.False(t, w.PlaceBomb(), "limit reached")
	assert.Equal(t, 2, p.ActiveBombs())

	assert.False(t, w.DetonateRemote(), "no remote ability")
	p.Remote = true
	require.True(t, w.DetonateRemote())
	assert.Equal(t, 1, p.ActiveBombs())

	var c clock
	c.tick(w, frame, Intent{})
	require.Len(t, w.Bombs(), 1)
	assert.Equal(t, Coord{3, 2}, w.Bombs()[0].At, "most recent bomb goes first")

	require.True(t, w.PlaceBomb())
	assert.Equal(t, 2, p.ActiveBombs())
	assert.LessOrEqual(t, p.ActiveBombs(), p.BombLimit)
}

func TestRemoteBombsIgnoreFuse(t *testing.T) {
	r := DefaultRules()
	r.Player.Remote = true
	w := newTestWorld(t, r)
	load(t, w, openLayout(r, Coord{3, 2}))

	var c clock
	c.tick(w, 0, Intent{PlaceBomb: true})
	require.Len(t, w.Bombs(), 1)
	b := w.Bombs()[0]
	assert.True(t, b.Remote)
	for i := 0; i < 2*r.Bomb.Fuse; i++ {
		c.tick(w, r.Bomb.Frame, Intent{})
	}
	assert.Equal(t, BombArmed, b.State())

	w.Player().FlamePass = true
	c.tick(w, frame, Intent{Detonate: true})
	assert.Equal(t, BombRemoved, b.State())
}

func TestBombBecomesSolidAfterLeaving(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	load(t, w, openLayout(r, Coord{3, 2}))

	var c clock
	c.tick(w, frame, Intent{PlaceBomb: true})
	b := w.Bombs()[0]
	assert.True(t, b.Passable())

	for i := 0; i < 60 && b.Passable(); i++ {
		c.tick(w, frame, Intent{Move: DirRight})
	}
	assert.False(t, b.Passable())

	x := w.Player().Body.X
	for i := 0; i < 10; i++ {
		c.tick(w, frame, Intent{Move: DirLeft})
	}
	assert.Greater(t, w.Player().Body.X, x-Fixed(10)*w.Player().Speed, "the bomb blocks the way back")
}

func TestPlayerCollectsPowerUp(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	l := openLayout(r, Coord{3, 2})
	pu := revealedPowerUp(t, l, Coord{3, 3}, PowerFireUp)
	load(t, w, l)

	var c clock
	var collected []Event
	for i := 0; i < 60 && len(collected) == 0; i++ {
		res := c.tick(w, frame, Intent{Move: DirRight})
		collected = eventsOf(res.Events, EventPowerUpCollected)
	}
	require.Len(t, collected, 1)
	assert.Equal(t, PowerFireUp, collected[0].PowerUp)
	assert.Equal(t, r.Player.Power+1, w.Player().Power)
	assert.True(t, pu.Taken())
	assert.Equal(t, KindEmpty, w.Grid().Occupant(pu.At).Kind)
	assert.Empty(t, w.PowerUps())
}

func TestPowerUpEffects(t *testing.T) {
	r := DefaultRules()
	for _, kind := range specialKinds {
		p := newPlayer(r.Player)
		(&PowerUp{Kind: kind}).apply(p, r.Player.SpeedStep)
		switch kind {
		case PowerBombUp:
			assert.Equal(t, r.Player.BombLimit+1, p.BombLimit)
		case PowerFireUp:
			assert.Equal(t, r.Player.Power+1, p.Power)
		case PowerSpeedUp:
			assert.Equal(t, r.Player.Speed+Px(1), p.Speed)
		case PowerWallHack:
			assert.True(t, p.WallHack)
		case PowerRemote:
			assert.True(t, p.Remote)
		case PowerBombPass:
			assert.True(t, p.BombPass)
		case PowerFlamePass:
			assert.True(t, p.FlamePass)
		case PowerInvisible:
			assert.True(t, p.Invisible)
		}
	}
}

func clearableLayout(t *testing.T, r *Rules, stage int) *Layout {
	t.Helper()
	l := openLayout(r, Coord{3, 2})
	l.Stage = stage
	revealedPowerUp(t, l, Coord{3, 3}, PowerExit)
	return l
}

func walkToExit(t *testing.T, w *World, c *clock) []Event {
	t.Helper()
	for i := 0; i < 60; i++ {
		res := c.tick(w, frame, Intent{Move: DirRight})
		if cleared := eventsOf(res.Events, EventStageCleared); len(cleared) > 0 {
			return cleared
		}
	}
	t.Fatal("stage never cleared")
	return nil
}

func TestStageClearAdvances(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	load(t, w, clearableLayout(t, r, 1))

	var c clock
	cleared := walkToExit(t, w, &c)
	assert.Equal(t, r.Stage.ClearBonus, cleared[0].Score)
	assert.Equal(t, 1, cleared[0].Stage)
	assert.Positive(t, cleared[0].Elapsed)
	assert.Equal(t, PhaseCleared, w.Phase())
	assert.Equal(t, r.Stage.ClearBonus, w.Score())

	for i := 0; i < 8; i++ {
		c.tick(w, 250*time.Millisecond, Intent{})
	}
	assert.Equal(t, PhasePlaying, w.Phase())
	assert.Equal(t, 2, w.Stage())
	assert.Equal(t, r.Stage.ClearBonus, w.Score(), "score carries over")
}

func TestExitNeedsEveryEnemyGone(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	l := clearableLayout(t, r, 1)
	l.AddEnemy(Ballom, Coord{17, 27})
	load(t, w, l)

	var c clock
	for i := 0; i < 60; i++ {
		res := c.tick(w, frame, Intent{Move: DirRight})
		assert.Empty(t, eventsOf(res.Events, EventStageCleared))
	}
	assert.Equal(t, PhasePlaying, w.Phase())
}

func TestFixedStageRepeats(t *testing.T) {
	r := DefaultRules()
	r.Stage.Advance = false
	w := newTestWorld(t, r)
	load(t, w, clearableLayout(t, r, 3))

	var c clock
	walkToExit(t, w, &c)
	for i := 0; i < 8; i++ {
		c.tick(w, 250*time.Millisecond, Intent{})
	}
	assert.Equal(t, 3, w.Stage())
	assert.Equal(t, PhasePlaying, w.Phase())
}

func TestLastStageIsVictory(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	load(t, w, clearableLayout(t, r, r.LastStage()))

	var c clock
	walkToExit(t, w, &c)
	var over []Event
	for i := 0; i < 8; i++ {
		res := c.tick(w, 250*time.Millisecond, Intent{})
		over = append(over, eventsOf(res.Events, EventGameOver)...)
	}
	assert.Equal(t, PhaseVictory, w.Phase())
	require.Len(t, over, 1)
	assert.True(t, over[0].Victory)
}

func TestEnemyContactKillsPlayer(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	l := openLayout(r, Coord{3, 2})
	l.AddEnemy(Ballom, Coord{3, 4})
	load(t, w, l)

	var c clock
	var died []Event
	for i := 0; i < 200 && len(died) == 0; i++ {
		res := c.tick(w, frame, Intent{})
		died = eventsOf(res.Events, EventPlayerDied)
	}
	require.Len(t, died, 1)
	assert.Equal(t, PhaseDying, w.Phase())
	assert.False(t, w.Player().Alive())
	assert.False(t, w.PlaceBomb())

	w.Player().BombLimit = 5
	for i := 0; i < 6; i++ {
		c.tick(w, 250*time.Millisecond, Intent{})
	}
	assert.Equal(t, r.Player.Lives-1, w.Lives())
	assert.Equal(t, PhasePlaying, w.Phase())
	assert.True(t, w.Player().Alive())
	assert.Equal(t, r.Player.BombLimit, w.Player().BombLimit, "power-ups are lost on death")
	assert.Equal(t, r.Player.Spawn, w.Player().Cell(w.Resolver()))
}

func TestBlastKillsPlayer(t *testing.T) {
	r := DefaultRules()
	r.Player.Lives = 1
	w := newTestWorld(t, r)
	load(t, w, openLayout(r, Coord{3, 2}))

	var c clock
	require.True(t, w.PlaceBomb())
	w.Bombs()[0].fuse = 1
	res := c.tick(w, r.Bomb.Frame, Intent{})
	assert.Len(t, eventsOf(res.Events, EventPlayerDied), 1)

	var over []Event
	for i := 0; i < 6; i++ {
		res = c.tick(w, 250*time.Millisecond, Intent{})
		over = append(over, eventsOf(res.Events, EventGameOver)...)
	}
	assert.Equal(t, PhaseGameOver, w.Phase())
	assert.True(t, w.Phase().Over())
	require.Len(t, over, 1)
	assert.False(t, over[0].Victory)

	snap := w.Snapshot()
	c.tick(w, time.Second, Intent{Move: DirRight, PlaceBomb: true})
	assert.Equal(t, snap, w.Snapshot(), "nothing moves after game over")
}

func TestTimeUpSpawnsPenaltyWaveOnce(t *testing.T) {
	r := DefaultRules()
	r.Stage.TimeLimit = time.Second
	r.Stage.TimeUpSpawn = 3
	w := newTestWorld(t, r)
	load(t, w, openLayout(r, Coord{3, 2}))

	var c clock
	var timeUp []Event
	for i := 0; i < 4; i++ {
		res := c.tick(w, 250*time.Millisecond, Intent{})
		timeUp = append(timeUp, eventsOf(res.Events, EventTimeUp)...)
	}
	require.Len(t, timeUp, 1)
	assert.Equal(t, time.Duration(0), w.TimeLeft())
	require.Len(t, w.Enemies(), 3)
	pc := w.Player().Cell(w.Resolver())
	for _, e := range w.Enemies() {
		assert.Equal(t, Pontan, e.Profile.Species)
		assert.GreaterOrEqual(t, e.Cell(w.Resolver()).Chebyshev(pc), 3)
	}

	res := c.tick(w, 250*time.Millisecond, Intent{})
	assert.Empty(t, eventsOf(res.Events, EventTimeUp))
	assert.Len(t, w.Enemies(), 3)
}

func TestWalkSpeedIgnoresTickRate(t *testing.T) {
	r := DefaultRules()
	walkOneSecond := func(ticksPerSecond int) Fixed {
		w := newTestWorld(t, r)
		load(t, w, openLayout(r, Coord{3, 2}))
		x0 := w.Player().Body.X
		var c clock
		for i := 0; i < ticksPerSecond; i++ {
			c.tick(w, time.Second/time.Duration(ticksPerSecond), Intent{Move: DirRight})
		}
		return w.Player().Body.X - x0
	}

	at60 := walkOneSecond(60)
	assert.Equal(t, 60*r.Player.Speed, at60)
	assert.Equal(t, at60, walkOneSecond(30))
	assert.Equal(t, at60, walkOneSecond(15))
}

func TestTickClampsElapsedTime(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	load(t, w, openLayout(r, Coord{3, 2}))

	var c clock
	c.tick(w, time.Hour, Intent{})
	assert.Equal(t, r.Stage.TimeLimit-maxStep, w.TimeLeft())

	w.Tick(0, Intent{})
	assert.Equal(t, r.Stage.TimeLimit-maxStep, w.TimeLeft(), "clock going backwards is ignored")
}

func TestSubscribeReceivesEvents(t *testing.T) {
	r := DefaultRules()
	w := newTestWorld(t, r)
	load(t, w, openLayout(r, Coord{3, 2}))

	var got []EventKind
	w.Subscribe(func(e Event) { got = append(got, e.Kind) })
	var c clock
	c.tick(w, frame, Intent{PlaceBomb: true})
	assert.Equal(t, []EventKind{EventBombPlaced}, got)
}

func scriptedIntent(i int) Intent {
	moves := []Direction{DirRight, DirDown, DirLeft, DirUp, DirNone}
	return Intent{Move: moves[(i/30)%len(moves)], PlaceBomb: i%90 == 0}
}

func TestReplayIsDeterministic(t *testing.T) {
	run := func() []Snapshot {
		w, err := NewWorld(DefaultRules(), 42, WithStrictInvariants())
		require.NoError(t, err)
		var snaps []Snapshot
		for i := 0; i < 900; i++ {
			w.Tick(time.Duration(i)*frame, scriptedIntent(i))
			if i%100 == 0 {
				snaps = append(snaps, w.Snapshot())
			}
		}
		return append(snaps, w.Snapshot())
	}
	assert.Equal(t, run(), run())
}

func TestNewWorldRejectsBadRules(t *testing.T) {
	r := DefaultRules()
	r.Player.Lives = 0
	_, err := NewWorld(r, 1)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "player.lives", cfgErr.Field)
}

func TestNewWorldFromPresets(t *testing.T) {
	for _, preset := range []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed} {
		cfg := config.DefaultBombermanConfig()
		config.ApplyBombermanPreset(&cfg, preset)
		r, err := RulesFromConfig(cfg)
		require.NoError(t, err, "preset %s", preset)
		w, err := NewWorld(r, 7)
		require.NoError(t, err)
		assert.Equal(t, cfg.Player.Lives, w.Lives())
		assert.Equal(t, 1, w.Stage())
	}
}
