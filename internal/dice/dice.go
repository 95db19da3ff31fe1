package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// RollResult contains detailed information about a dice roll
type RollResult struct {
	Total int   // Sum of all dice plus bonus
	Rolls []int // Individual die results
	Bonus int
	Count int
	Sides int
}

var (
	ErrInvalidCount = errors.New("invalid dice count")
	ErrInvalidSides = errors.New("invalid dice size")
)

func roll(rng *rand.Rand, count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	if sides < 1 {
		return nil, ErrInvalidSides
	}

	total := 0
	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = rng.Intn(sides) + 1
		total += out[i]
	}

	return &RollResult{
		Total: total + bonus,
		Rolls: out,
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}, nil
}

func (r *RollResult) String() string {
	parts := make([]string, len(r.Rolls))
	for i, v := range r.Rolls {
		parts[i] = strconv.Itoa(v)
	}
	compact := "[" + strings.Join(parts, ",") + "]"
	if r.Bonus == 0 {
		return fmt.Sprintf("%dd%d %s = %d", r.Count, r.Sides, compact, r.Total)
	}
	return fmt.Sprintf("%dd%d+%d %s = %d", r.Count, r.Sides, r.Bonus, compact, r.Total)
}
