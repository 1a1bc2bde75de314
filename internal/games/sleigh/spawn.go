package sleigh

import (
	"errors"
	"math/rand"
)

type weighted[T any] struct {
	value  T
	weight float64
}

// picker draws from a fixed weight table.
type picker[T any] struct {
	entries []weighted[T]
	total   float64
}

func newPicker[T any](entries ...weighted[T]) (picker[T], error) {
	p := picker[T]{}
	for _, e := range entries {
		if e.weight <= 0 {
			continue
		}
		p.entries = append(p.entries, e)
		p.total += e.weight
	}
	if p.total <= 0 {
		return p, errors.New("sleigh: weight table is empty")
	}
	return p, nil
}

func (p picker[T]) pick(rng *rand.Rand) T {
	roll := rng.Float64() * p.total
	for _, e := range p.entries {
		if roll < e.weight {
			return e.value
		}
		roll -= e.weight
	}
	return p.entries[len(p.entries)-1].value
}

// spawnGate rate-limits one spawn category.
type spawnGate struct {
	rate        float64
	minInterval int
	last        int // Frame of the last spawn
}

// ready reports whether a spawn happens this frame. The random draw is
// only taken once the interval has passed.
func (g *spawnGate) ready(frame int, difficulty, multiplier float64, rng *rand.Rand) bool {
	if float64(frame-g.last) < float64(g.minInterval)/difficulty {
		return false
	}
	if rng.Float64() >= g.rate*difficulty*multiplier {
		return false
	}
	g.last = frame
	return true
}

// uniform returns a value in [lo, hi), or lo when the range is empty.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
