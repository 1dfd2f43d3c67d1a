package particle

import "math/rand"

// Kind names one of the four particle systems.
type Kind int

const (
	KindStar Kind = iota
	KindNebula
	KindCloud
	KindInteractive
)

// Kinds lists every system in stacking order, back to front.
var Kinds = [...]Kind{KindStar, KindNebula, KindCloud, KindInteractive}

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindNebula:
		return "nebula"
	case KindCloud:
		return "cloud"
	case KindInteractive:
		return "interactive"
	}
	return "unknown"
}

// Store holds the four collections. A collection is only ever replaced
// wholesale; no particle is added or removed between rebuilds.
type Store struct {
	Stars       []Star
	Nebula      []Nebula
	Clouds      []Cloud
	Interactive []Interactive
}

// Reset rebuilds every collection for b.
func (s *Store) Reset(rng *rand.Rand, b Bounds, d Device, c Counts) {
	for _, k := range Kinds {
		s.ResetKind(k, rng, b, d, c)
	}
}

// ResetKind rebuilds the collection of a single system.
func (s *Store) ResetKind(k Kind, rng *rand.Rand, b Bounds, d Device, c Counts) {
	switch k {
	case KindStar:
		s.Stars = SpawnStars(rng, b, d, c.Stars)
	case KindNebula:
		s.Nebula = SpawnNebula(rng, b, d, c.Nebula)
	case KindCloud:
		s.Clouds = SpawnClouds(rng, b, c.Clouds)
	case KindInteractive:
		s.Interactive = SpawnInteractive(rng, b, c.Interactive)
	}
}

// Len returns the population of k.
func (s *Store) Len(k Kind) int {
	switch k {
	case KindStar:
		return len(s.Stars)
	case KindNebula:
		return len(s.Nebula)
	case KindCloud:
		return len(s.Clouds)
	case KindInteractive:
		return len(s.Interactive)
	}
	return 0
}

// Counts reports the current population of every system.
func (s *Store) Counts() Counts {
	return Counts{
		Stars:       len(s.Stars),
		Nebula:      len(s.Nebula),
		Clouds:      len(s.Clouds),
		Interactive: len(s.Interactive),
	}
}
