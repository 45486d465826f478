package engine

import "time"

// EventKind names a notification emitted by a tick.
type EventKind uint8

const (
	EventBombPlaced EventKind = iota
	EventBombDetonated
	EventBlockDestroyed
	EventEnemyKilled
	EventPowerUpCollected
	EventPowerUpLost
	EventStageStarted
	EventStageCleared
	EventPlayerDied
	EventTimeUp
	EventExitPenalty
	EventGameOver
)

var eventNames = map[EventKind]string{
	EventBombPlaced:       "bomb_placed",
	EventBombDetonated:    "bomb_detonated",
	EventBlockDestroyed:   "block_destroyed",
	EventEnemyKilled:      "enemy_killed",
	EventPowerUpCollected: "power_up_collected",
	EventPowerUpLost:      "power_up_lost",
	EventStageStarted:     "stage_started",
	EventStageCleared:     "stage_cleared",
	EventPlayerDied:       "player_died",
	EventTimeUp:           "time_up",
	EventExitPenalty:      "exit_penalty",
	EventGameOver:         "game_over",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is a notification for presentation collaborators (audio, HUD,
// score storage). Fields that do not apply to a kind are zero.
type Event struct {
	Kind    EventKind
	At      Coord
	Species Species
	PowerUp PowerUpKind
	Score   int           // points awarded by this event
	Stage   int           // stage the event happened in
	Elapsed time.Duration // time spent in the stage, for StageCleared
	Victory bool          // for GameOver
}

// Listener receives events synchronously during Tick. It must not call back
// into the World.
type Listener func(Event)

type eventLog struct {
	events    []Event
	listeners []Listener
	stage     int
}

func (l *eventLog) emit(e Event) {
	if e.Stage == 0 {
		e.Stage = l.stage
	}
	l.events = append(l.events, e)
	for _, fn := range l.listeners {
		fn(e)
	}
}

// drain returns the events collected since the last drain.
func (l *eventLog) drain() []Event {
	out := l.events
	l.events = nil
	return out
}
