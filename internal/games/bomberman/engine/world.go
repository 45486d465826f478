package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"
)

// maxStep caps the time a single tick may simulate.
const maxStep = 250 * time.Millisecond

// Phase is the stage-level state of the World.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseDying
	PhaseCleared
	PhaseGameOver
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseDying:
		return "dying"
	case PhaseCleared:
		return "cleared"
	case PhaseGameOver:
		return "game_over"
	}
	return "victory"
}

// Over reports whether the run has ended.
func (p Phase) Over() bool {
	return p == PhaseGameOver || p == PhaseVictory
}

// TickResult is what one tick produced.
type TickResult struct {
	Phase  Phase
	Events []Event
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for invariant violations and generator
// diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithStrictInvariants makes invariant violations panic instead of being
// logged.
func WithStrictInvariants() Option {
	return func(w *World) { w.strict = true }
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// World owns every entity of a run and advances them one tick at a time.
// It is not safe for concurrent use.
type World struct {
	rules  *Rules
	rng    *rand.Rand
	gen    *Generator
	log    *log.Logger
	strict bool

	grid     *Grid
	res      Resolver
	player   *Player
	bombs    []*Bomb
	segments []*Segment
	blocks   []*SoftBlock
	powerUps []*PowerUp
	enemies  []*Enemy
	exit     *PowerUp
	cmds     *commands
	events   eventLog
	camera   *Camera

	stage        int
	score        int
	lives        int
	phase        Phase
	phaseTimer   Interval
	timeLeft     time.Duration
	timeUp       bool
	stageElapsed time.Duration
	nextID       int
	last         time.Duration
	started      bool
}

// NewWorld validates the rules and starts the first stage. The seed makes
// the whole run reproducible.
func NewWorld(rules *Rules, seed int64, opts ...Option) (*World, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		rules: rules,
		rng:   rand.New(rand.NewSource(seed)),
		log:   discardLogger(),
		cmds:  newCommands(),
		lives: rules.Player.Lives,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.gen = NewGenerator(rules, w.rng, w.log)
	w.player = newPlayer(rules.Player)
	w.camera = newCamera(rules.Camera, Fixed(rules.Grid.Cols)*rules.Grid.Tile, Fixed(rules.Grid.Rows)*rules.Grid.Tile)
	if err := w.StartStage(rules.Stage.Start); err != nil {
		return nil, err
	}
	return w, nil
}

// StartStage generates and loads a stage.
func (w *World) StartStage(n int) error {
	l, err := w.gen.Generate(n)
	if err != nil {
		return err
	}
	return w.Load(l)
}

// Load replaces the current stage with a layout. Player attributes, score
// and lives carry over.
func (w *World) Load(l *Layout) error {
	res := NewResolver(l.Grid, w.rules.Grid.Tile, w.rules.Grid.YOffset)
	enemies := make([]*Enemy, 0, len(l.Enemies))
	for _, sp := range l.Enemies {
		prof, ok := w.rules.Profile(sp.Species)
		if !ok {
			return configErrorf("species", "unknown species %q", sp.Species)
		}
		enemies = append(enemies, newEnemy(w.id(), prof, sp.At, res, w.rules))
	}

	w.grid = l.Grid
	w.res = res
	w.enemies = enemies
	w.bombs = nil
	w.segments = nil
	w.blocks = append([]*SoftBlock(nil), l.Blocks...)
	w.powerUps = append([]*PowerUp(nil), l.PowerUps...)
	w.exit = nil
	for _, p := range w.powerUps {
		if p.Kind == PowerExit {
			w.exit = p
		}
	}
	w.cmds.reset()
	if l.Stage > 0 {
		w.stage = l.Stage
	}
	w.events.stage = w.stage

	w.player.spawn(res, l.Spawn, w.rules)
	w.phase = PhasePlaying
	w.timeLeft = w.rules.Stage.TimeLimit
	w.timeUp = false
	w.stageElapsed = 0

	w.camera.mapW = float64(Fixed(l.Grid.Cols()) * w.rules.Grid.Tile)
	w.camera.mapH = float64(Fixed(l.Grid.Rows()) * w.rules.Grid.Tile)
	px, py := w.player.Body.Centre()
	w.camera.Snap(px, py-w.rules.Grid.YOffset)

	w.events.emit(Event{Kind: EventStageStarted})
	return nil
}

// Subscribe registers a listener for every future event.
func (w *World) Subscribe(fn Listener) {
	w.events.listeners = append(w.events.listeners, fn)
}

// Tick advances the simulation to now, which must be a monotonic clock
// reading. The first call only records the clock.
func (w *World) Tick(now time.Duration, in Intent) TickResult {
	var dt time.Duration
	if w.started {
		dt = max(0, min(now-w.last, maxStep))
	}
	w.started = true
	w.last = now

	switch w.phase {
	case PhasePlaying:
		w.play(dt, in)
	case PhaseDying:
		w.player.death.Advance(dt)
		w.advanceEffects(dt)
		w.advanceEnemies(dt)
		w.commit()
		w.resolveBlasts()
		w.commit()
		if w.phaseDue(dt, w.rules.Stage.DeathDelay) {
			w.loseLife()
		}
	case PhaseCleared:
		if w.phaseDue(dt, w.rules.Stage.ClearDelay) {
			w.advanceStage()
		}
	}

	if !w.phase.Over() {
		px, py := w.player.Body.Centre()
		w.camera.Follow(px, py-w.rules.Grid.YOffset, dt)
	}
	return TickResult{Phase: w.phase, Events: w.events.drain()}
}

func (w *World) play(dt time.Duration, in Intent) {
	w.stageElapsed += dt

	w.player.move(w.res, in.Move, dt)
	if in.PlaceBomb {
		w.PlaceBomb()
	}
	if in.Detonate {
		w.DetonateRemote()
	}

	w.advanceBombs(dt)
	w.advanceEffects(dt)
	w.advanceEnemies(dt)
	w.advanceTimer(dt)
	w.commit()

	w.resolveBlasts()
	w.resolveContacts()
	w.resolvePickups()
	w.commit()
}

func (w *World) phaseDue(dt, delay time.Duration) bool {
	if delay <= 0 {
		return true
	}
	return w.phaseTimer.Advance(dt) > 0
}

func (w *World) id() int {
	w.nextID++
	return w.nextID
}

// PlaceBomb drops a bomb on the player's cell. It reports false, changing
// nothing, when the player is at the bomb limit or the cell is occupied.
func (w *World) PlaceBomb() bool {
	p := w.player
	if w.phase != PhasePlaying || !p.alive || p.active >= p.BombLimit {
		return false
	}
	at := p.Cell(w.res)
	if w.grid.Occupant(at).Kind != KindEmpty {
		return false
	}
	b := newBomb(w.id(), at, p, w.rules.Bomb)
	if err := w.grid.SetCell(at.Row, at.Col, BombCell(b)); err != nil {
		w.defect("bomb placement rejected by grid", "cell", at, "err", err)
		return false
	}
	w.bombs = append(w.bombs, b)
	p.hold(b)
	w.events.emit(Event{Kind: EventBombPlaced, At: at})
	return true
}

// DetonateRemote fires the most recently placed live bomb. It needs the
// remote ability and at least one live bomb.
func (w *World) DetonateRemote() bool {
	p := w.player
	if w.phase != PhasePlaying || !p.alive || !p.Remote {
		return false
	}
	b := p.lastBomb()
	if b == nil {
		return false
	}
	newBlast(w.grid, w.cmds, &w.events, w.rules).detonate(b)
	return true
}

func (w *World) advanceBombs(dt time.Duration) {
	hitbox := w.player.Body.Hitbox()
	var bl *blast
	for _, b := range w.bombs {
		if b.State() != BombArmed {
			continue
		}
		b.updatePassable(w.res.TileBox(b.At), hitbox)
		if !b.countdown(dt) {
			continue
		}
		if bl == nil {
			bl = newBlast(w.grid, w.cmds, &w.events, w.rules)
		}
		bl.detonate(b)
	}
}

func (w *World) advanceEffects(dt time.Duration) {
	for _, s := range w.segments {
		s.advance(dt)
	}
	for _, b := range w.blocks {
		if b.advance(dt) {
			w.cmds.write(b.At, b.replacement(), holdsSoft(b))
		}
	}
}

func (w *World) advanceEnemies(dt time.Duration) {
	ctx := aiContext{grid: w.grid, res: w.res, rng: w.rng, player: w.player}
	for _, e := range w.enemies {
		e.update(ctx, dt)
	}
}

func (w *World) advanceTimer(dt time.Duration) {
	if w.timeUp {
		return
	}
	w.timeLeft -= dt
	if w.timeLeft > 0 {
		return
	}
	w.timeLeft = 0
	w.timeUp = true
	w.events.emit(Event{Kind: EventTimeUp})
	w.spawnWave(w.rules.Stage.TimeUpSpawn)
}

// spawnWave queues penalty enemies on free cells away from the player.
func (w *World) spawnWave(n int) {
	prof, ok := w.rules.Profile(w.rules.Stage.PenaltySpecies)
	if !ok || n <= 0 {
		return
	}
	pc := w.player.Cell(w.res)
	taken := mapset.New[Coord]()
	for i := 0; i < n; i++ {
		at, _, err := sampleCell(w.rng, w.grid.Rows(), w.grid.Cols(), w.rules.Grid.SampleAttempts, func(c Coord) bool {
			return w.grid.Occupant(c).Kind == KindEmpty && c.Chebyshev(pc) >= 3 && !taken.Has(c)
		})
		if err != nil {
			w.log.Warn("no room for penalty enemies", "spawned", i, "wanted", n)
			return
		}
		taken.Put(at)
		w.cmds.spawn(newEnemy(w.id(), prof, at, w.res, w.rules))
	}
}

// commit applies the buffered mutations. A cell may be written at most once
// per commit; a second write, or one whose cell no longer holds the expected
// occupant, is an invariant violation.
func (w *World) commit() {
	written := mapset.New[Coord]()
	for _, wr := range w.cmds.writes {
		if written.Has(wr.at) {
			w.defect("cell written twice in one commit", "cell", wr.at)
			continue
		}
		if cur := w.grid.Occupant(wr.at); wr.expect != nil && !wr.expect(cur) {
			w.defect("stale cell write", "cell", wr.at, "holds", cur.Kind)
			continue
		}
		if err := w.grid.SetCell(wr.at.Row, wr.at.Col, wr.cell); err != nil {
			w.defect("cell write rejected", "cell", wr.at, "err", err)
			continue
		}
		written.Put(wr.at)
		if wr.cell.Kind == KindPowerUp {
			wr.cell.PowerUp.revealed = true
		}
	}

	if w.cmds.exitHits.Size() > 0 {
		w.cmds.exitHits.Each(func(at Coord) {
			w.events.emit(Event{Kind: EventExitPenalty, At: at})
		})
		w.spawnWave(w.rules.Stage.ExitPenaltySpawn)
	}

	w.bombs = keep(w.bombs, func(b *Bomb) bool { return b.State() != BombRemoved })
	w.segments = append(keep(w.segments, func(s *Segment) bool { return !s.Done() }), w.cmds.segments...)
	w.enemies = append(keep(w.enemies, func(e *Enemy) bool { return !e.removed }), w.cmds.enemies...)
	w.blocks = keep(w.blocks, func(b *SoftBlock) bool { return !b.cleared })
	w.powerUps = keep(w.powerUps, func(p *PowerUp) bool { return !p.taken })
	w.cmds.reset()

	if p := w.player; p.active < 0 || p.active > p.BombLimit {
		w.defect("active bomb count out of range", "active", p.active, "limit", p.BombLimit)
	}
}

func keep[T any](s []T, ok func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if ok(v) {
			out = append(out, v)
		}
	}
	return out
}

// resolveBlasts tests every live segment against enemies and the player:
// a broad tile-box test first, then the flame shape against the body.
func (w *World) resolveBlasts() {
	p := w.player
	for _, s := range w.segments {
		tile := w.res.TileBox(s.Pos)
		flame := s.FlameShape(tile, w.rules.Blast.FlameInset)
		for _, e := range w.enemies {
			if e.destroyed || !tile.Intersects(e.Body.Box()) {
				continue
			}
			if flame.Intersects(e.BodyShape(w.rules.Enemy.BodyInset)) {
				w.killEnemy(e)
			}
		}
		if p.alive && !p.FlamePass {
			hb := p.Body.Hitbox()
			if tile.Intersects(hb) && flame.Intersects(hb) {
				w.killPlayer()
			}
		}
	}
}

func (w *World) resolveContacts() {
	p := w.player
	if !p.alive {
		return
	}
	hb := p.Body.Hitbox()
	for _, e := range w.enemies {
		if !e.destroyed && e.BodyShape(w.rules.Enemy.BodyInset).Intersects(hb) {
			w.killPlayer()
			return
		}
	}
}

func (w *World) resolvePickups() {
	p := w.player
	if !p.alive || w.phase != PhasePlaying {
		return
	}
	hb := p.Body.Hitbox()
	for _, pu := range w.powerUps {
		if !pu.revealed || pu.taken || pu.Kind == PowerExit {
			continue
		}
		if !hb.Contains(w.res.TileBox(pu.At).Center()) {
			continue
		}
		pu.taken = true
		pu.apply(p, w.rules.Player.SpeedStep)
		w.cmds.write(pu.At, EmptyCell(), holdsPowerUp(pu))
		w.events.emit(Event{Kind: EventPowerUpCollected, At: pu.At, PowerUp: pu.Kind})
	}

	if w.exit == nil || !w.exit.revealed || !w.enemiesGone() {
		return
	}
	if hb.Contains(w.res.TileBox(w.exit.At).Center()) {
		w.clearStage()
	}
}

func (w *World) enemiesGone() bool {
	if len(w.cmds.enemies) > 0 {
		return false
	}
	for _, e := range w.enemies {
		if !e.destroyed {
			return false
		}
	}
	return true
}

func (w *World) killEnemy(e *Enemy) {
	if !e.Destroy(w.rules.Enemy) {
		return
	}
	w.score += e.Profile.Score
	w.events.emit(Event{Kind: EventEnemyKilled, At: e.Cell(w.res), Species: e.Profile.Species, Score: e.Profile.Score})
}

func (w *World) killPlayer() {
	if !w.player.kill() {
		return
	}
	w.phase = PhaseDying
	w.phaseTimer = NewInterval(w.rules.Stage.DeathDelay)
	w.events.emit(Event{Kind: EventPlayerDied, At: w.player.Cell(w.res)})
}

func (w *World) clearStage() {
	w.phase = PhaseCleared
	w.phaseTimer = NewInterval(w.rules.Stage.ClearDelay)
	w.score += w.rules.Stage.ClearBonus
	w.events.emit(Event{Kind: EventStageCleared, At: w.exit.At, Score: w.rules.Stage.ClearBonus, Elapsed: w.stageElapsed})
}

func (w *World) loseLife() {
	w.lives--
	if w.lives <= 0 {
		w.lives = 0
		w.endRun(false)
		return
	}
	w.player.resetAttributes(w.rules.Player)
	if err := w.StartStage(w.stage); err != nil {
		w.log.Error("restarting stage", "stage", w.stage, "err", err)
		w.endRun(false)
	}
}

func (w *World) advanceStage() {
	next := w.stage
	if w.rules.Stage.Advance {
		next++
	}
	if next > w.rules.LastStage() {
		w.endRun(true)
		return
	}
	if err := w.StartStage(next); err != nil {
		w.log.Error("starting stage", "stage", next, "err", err)
		w.endRun(false)
	}
}

func (w *World) endRun(victory bool) {
	w.phase = PhaseGameOver
	if victory {
		w.phase = PhaseVictory
	}
	w.events.emit(Event{Kind: EventGameOver, Score: w.score, Victory: victory})
}

func (w *World) defect(msg string, keyvals ...any) {
	if w.strict {
		panic(fmt.Sprintf("engine: invariant violated: %s %v", msg, keyvals))
	}
	w.log.Error(msg, keyvals...)
}

// Rules returns the rules the world runs with.
func (w *World) Rules() *Rules { return w.rules }

// Grid returns the occupancy grid.
func (w *World) Grid() *Grid { return w.grid }

// Resolver returns the resolver for the current grid.
func (w *World) Resolver() Resolver { return w.res }

// Player returns the player.
func (w *World) Player() *Player { return w.player }

// Enemies returns the enemies, including ones playing their death.
func (w *World) Enemies() []*Enemy { return w.enemies }

// Bombs returns the live bombs.
func (w *World) Bombs() []*Bomb { return w.bombs }

// Segments returns the live blast segments.
func (w *World) Segments() []*Segment { return w.segments }

// Blocks returns the soft blocks still standing or burning.
func (w *World) Blocks() []*SoftBlock { return w.blocks }

// PowerUps returns the power-ups not yet taken, hidden ones included.
func (w *World) PowerUps() []*PowerUp { return w.powerUps }

// Exit returns the stage exit, or nil for layouts without one.
func (w *World) Exit() *PowerUp { return w.exit }

// Camera returns the follow camera.
func (w *World) Camera() *Camera { return w.camera }

// Stage returns the current stage number.
func (w *World) Stage() int { return w.stage }

// Score returns the run score.
func (w *World) Score() int { return w.score }

// Lives returns the remaining lives.
func (w *World) Lives() int { return w.lives }

// Phase returns the stage-level state.
func (w *World) Phase() Phase { return w.phase }

// TimeLeft returns the stage timer.
func (w *World) TimeLeft() time.Duration { return w.timeLeft }
