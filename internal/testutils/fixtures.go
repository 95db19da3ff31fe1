package testutils

import (
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
)

// CreateTestZombie creates a level 1 zombie that is ready to act
func CreateTestZombie(owner entities.Address, name string) *entities.Zombie {
	return &entities.Zombie{
		Owner:     owner,
		Name:      name,
		DNA:       dna.NewCodec("test").FromName(name),
		Level:     1,
		ReadyTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// CreateTestZombieAtLevel creates a ready zombie at level
func CreateTestZombieAtLevel(owner entities.Address, name string, level uint32) *entities.Zombie {
	z := CreateTestZombie(owner, name)
	z.Level = level
	return z
}
