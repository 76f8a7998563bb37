package humanize

import (
	"math/rand"
	"sync"
	"time"
)

// Range is an inclusive integer range used for jitter draws
type Range struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Random is a seedable, goroutine-safe jitter source
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random seeded with seed. A zero seed draws one from
// the clock.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a float in [0, 1)
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Uniform returns a float in [min, max)
func (r *Random) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Between returns an integer in [min, max], both ends inclusive
func (r *Random) Between(min, max int) int {
	if min >= max {
		return min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Intn(max-min+1)
}

// Pick draws an integer from rg
func (r *Random) Pick(rg Range) int {
	return r.Between(rg.Min, rg.Max)
}

// Millis draws a duration in milliseconds from rg
func (r *Random) Millis(rg Range) time.Duration {
	return time.Duration(r.Pick(rg)) * time.Millisecond
}
