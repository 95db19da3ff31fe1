package battle

//go:generate mockgen -destination=mock/mock_resolver.go -package=mockbattle -source=resolver.go

import (
	"math"

	"github.com/KirkDiggler/crypto-zombies/internal/dice"
	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
)

const (
	// BaseThreshold is the win chance, out of 100, for evenly leveled zombies
	BaseThreshold = 70

	// LevelBonus shifts the threshold per level of difference
	LevelBonus = 5

	MinThreshold = 10
	MaxThreshold = 90
)

// Resolver decides battles between zombies
type Resolver interface {
	Resolve(attacker, defender *entities.Zombie) (*Outcome, error)
}

// Outcome is the result of one battle
type Outcome struct {
	Won       bool
	Roll      int
	Threshold int

	// Dice is the rendered roll, e.g. "1d100 [42] = 42"
	Dice string
}

type resolver struct {
	roller dice.Roller
}

// NewResolver creates a resolver rolling with roller
func NewResolver(roller dice.Roller) Resolver {
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	return &resolver{roller: roller}
}

// Threshold returns the highest winning d100 roll for the attacker
func Threshold(attackerLevel, defenderLevel uint32) int {
	diff := int64(attackerLevel) - int64(defenderLevel)
	t := int64(BaseThreshold) + LevelBonus*diff

	if t < MinThreshold {
		return MinThreshold
	}
	if t > MaxThreshold {
		return MaxThreshold
	}
	return int(t)
}

func (r *resolver) Resolve(attacker, defender *entities.Zombie) (*Outcome, error) {
	if attacker == nil || defender == nil {
		return nil, zerr.InvalidArgument("attacker and defender are required")
	}

	result, err := r.roller.Roll(1, 100, 0)
	if err != nil {
		return nil, zerr.WrapWithCode(err, zerr.CodeInternal, "failed to roll battle")
	}

	threshold := Threshold(attacker.Level, defender.Level)

	return &Outcome{
		Won:       result.Total <= threshold,
		Roll:      result.Total,
		Threshold: threshold,
		Dice:      result.String(),
	}, nil
}

// Apply updates both records and returns the DNA of the spawned child on a win.
// Cooldowns are left to the caller.
func (o *Outcome) Apply(attacker, defender *entities.Zombie) (child dna.DNA, spawned bool) {
	if o.Won {
		increment(&attacker.WinCount)
		increment(&attacker.Level)
		increment(&defender.LossCount)
		return dna.Mix(attacker.DNA, defender.DNA, dna.SpeciesZombie), true
	}

	increment(&attacker.LossCount)
	increment(&defender.WinCount)
	return 0, false
}

// increment adds one, stopping at the maximum so levels never wrap to zero
func increment(v *uint32) {
	if *v < math.MaxUint32 {
		*v++
	}
}
