package engine

import "math/rand"

// SpeciesWeight is one entry of a tier's roster draw.
type SpeciesWeight struct {
	Species Species
	Weight  int
}

// Tier is a contiguous range of stages sharing a roster.
type Tier struct {
	First, Last    int
	Enemies        int
	StagesPerExtra int // one extra enemy every n stages into the tier, 0 disables
	Weights        []SpeciesWeight
}

// EnemyCount returns the roster size for a stage inside the tier.
func (t Tier) EnemyCount(stage int) int {
	if t.StagesPerExtra <= 0 {
		return t.Enemies
	}
	return t.Enemies + (stage-t.First)/t.StagesPerExtra
}

// Has reports whether the species appears in the tier.
func (t Tier) Has(sp Species) bool {
	for _, w := range t.Weights {
		if w.Species == sp {
			return true
		}
	}
	return false
}

// Draw picks a species by weight.
func (t Tier) Draw(rng *rand.Rand) Species {
	total := 0
	for _, w := range t.Weights {
		total += w.Weight
	}
	if total <= 0 {
		return ""
	}
	n := rng.Intn(total)
	for _, w := range t.Weights {
		if n < w.Weight {
			return w.Species
		}
		n -= w.Weight
	}
	return t.Weights[len(t.Weights)-1].Species
}

// TierFor returns the tier containing stage.
func (r *Rules) TierFor(stage int) (Tier, error) {
	for _, t := range r.Tiers {
		if stage >= t.First && stage <= t.Last {
			return t, nil
		}
	}
	return Tier{}, configErrorf("stage", "stage %d is outside the tier table", stage)
}

// LastStage returns the final stage of the tier table.
func (r *Rules) LastStage() int {
	last := 0
	for _, t := range r.Tiers {
		last = max(last, t.Last)
	}
	return last
}

// SpecialPool returns the specials whose connected species appears in the
// tier, in a stable order.
func (r *Rules) SpecialPool(t Tier) []PowerUpKind {
	var pool []PowerUpKind
	for _, k := range specialKinds {
		sp, ok := r.Specials[k]
		if ok && t.Has(sp) {
			pool = append(pool, k)
		}
	}
	return pool
}
