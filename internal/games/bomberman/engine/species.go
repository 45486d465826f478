package engine

// Species names an enemy type.
type Species string

const (
	Ballom Species = "ballom"
	Onil   Species = "onil"
	Dahl   Species = "dahl"
	Minvo  Species = "minvo"
	Doria  Species = "doria"
	Ovape  Species = "ovape"
	Pass   Species = "pass"
	Pontan Species = "pontan"
)

// Profile is the behaviour of a species, fixed at spawn.
type Profile struct {
	Species       Species
	Speed         Fixed // per 1/60 s
	WallHack      bool  // ignores soft blocks
	ChasePlayer   bool
	LineOfSight   int  // chase range in cells, 0 means unlimited
	SeePlayerHack bool // skips the obstruction check
	Score         int
}
