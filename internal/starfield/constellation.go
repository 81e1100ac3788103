package starfield

import (
	"math"
	"sort"
)

// Group is one constellation figure. Stars point into the simulation's current
// population and are ordered for drawing.
type Group struct {
	Stars []*Star
	Fade  float64
}

// Clusterer groups bright stars into constellation figures. Implementations
// must return disjoint groups of at least two stars each.
type Clusterer interface {
	Cluster(bright []*Star, w, h float64, rng *Rand) []Group
}

// GreedyClusterer shuffles the bright stars and, for each unused seed, attaches
// its nearest unused neighbours. Every pair inside a group is farther apart
// than MinLink and closer than MaxLinkRatio*min(w,h).
type GreedyClusterer struct {
	MaxLinkRatio float64
	MinLink      float64
	MinPick      int
	MaxPick      int
}

// DefaultClusterer attaches 2-4 neighbours within 0.28*min(w,h) and beyond 30px.
func DefaultClusterer() GreedyClusterer {
	return GreedyClusterer{MaxLinkRatio: 0.28, MinLink: 30, MinPick: 2, MaxPick: 4}
}

type candidate struct {
	idx  int
	dist float64
}

// Cluster implements Clusterer.
func (c GreedyClusterer) Cluster(bright []*Star, w, h float64, rng *Rand) []Group {
	if len(bright) < 2 {
		return nil
	}

	order := make([]*Star, len(bright))
	copy(order, bright)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	maxDist := math.Min(w, h) * c.MaxLinkRatio
	used := make([]bool, len(order))
	var groups []Group

	for i, seed := range order {
		if used[i] {
			continue
		}
		used[i] = true

		var cands []candidate
		for j, other := range order {
			if used[j] {
				continue
			}
			d := hypot(other.X-seed.X, other.Y-seed.Y)
			if d < maxDist && d > c.MinLink {
				cands = append(cands, candidate{idx: j, dist: d})
			}
		}
		sort.SliceStable(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })

		pick := rng.IntRange(c.MinPick, c.MaxPick)
		members := []*Star{seed}
		for _, cand := range cands {
			if len(members)-1 >= pick {
				break
			}
			s := order[cand.idx]
			if !c.fits(s, members, maxDist) {
				continue
			}
			members = append(members, s)
			used[cand.idx] = true
		}

		if len(members) < 2 {
			continue
		}
		if len(members) >= 3 {
			sortByAngle(members)
		}
		groups = append(groups, Group{Stars: members})
	}
	return groups
}

// fits reports whether s keeps every pairwise distance of the group in range.
func (c GreedyClusterer) fits(s *Star, members []*Star, maxDist float64) bool {
	for _, m := range members {
		d := hypot(s.X-m.X, s.Y-m.Y)
		if d >= maxDist || d <= c.MinLink {
			return false
		}
	}
	return true
}

// sortByAngle orders stars by angle around their centroid so the closed
// outline does not cross itself.
func sortByAngle(stars []*Star) {
	var cx, cy float64
	for _, s := range stars {
		cx += s.X
		cy += s.Y
	}
	cx /= float64(len(stars))
	cy /= float64(len(stars))
	sort.SliceStable(stars, func(a, b int) bool {
		return math.Atan2(stars[a].Y-cy, stars[a].X-cx) < math.Atan2(stars[b].Y-cy, stars[b].X-cx)
	})
}

// FadeAt returns the shared constellation fade for a cycle frame counter: a
// linear ramp up over the first fadeFrames frames, a hold at 1, and a linear
// ramp down that reaches 0 on frame cycle-1.
func FadeAt(counter, cycle, fadeFrames int) float64 {
	if fadeFrames <= 0 {
		return 1
	}
	in := float64(counter) / float64(fadeFrames)
	out := float64(cycle-1-counter) / float64(fadeFrames)
	return Clamp01(math.Min(in, out))
}

// Constellations owns the current groups and the shared cycle counter.
type Constellations struct {
	Groups     []Group
	Counter    int
	Cycle      int
	FadeFrames int
	Clusterer  Clusterer
}

// Rebuild discards the current groups and clusters the bright subset of stars.
func (c *Constellations) Rebuild(stars []Star, w, h float64, rng *Rand) {
	var bright []*Star
	for i := range stars {
		if stars[i].Bright {
			bright = append(bright, &stars[i])
		}
	}
	c.Groups = c.Clusterer.Cluster(bright, w, h, rng)
	c.Counter = 0
}

// Advance moves the cycle one frame, rebuilding when it elapses, and updates
// every group's fade. It reports whether a rebuild happened.
func (c *Constellations) Advance(stars []Star, w, h float64, rng *Rand) bool {
	c.Counter++
	rebuilt := false
	if c.Counter >= c.Cycle {
		c.Rebuild(stars, w, h, rng)
		rebuilt = true
	}
	fade := FadeAt(c.Counter, c.Cycle, c.FadeFrames)
	for i := range c.Groups {
		c.Groups[i].Fade = fade
	}
	return rebuilt
}
