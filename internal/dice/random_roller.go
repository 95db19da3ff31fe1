package dice

import (
	"math/rand"
	"sync"
	"time"
)

// randomRoller implements Roller with a seeded pseudo random source.
// Outcomes are predictable to anyone who knows the seed.
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from the clock
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a roller that replays the same sequence for seed
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return roll(r.rng, count, sides, bonus)
}
