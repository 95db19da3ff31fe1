package entities_test

import (
	"testing"

	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	"github.com/stretchr/testify/assert"
)

func TestZombie_Clone(t *testing.T) {
	z := &entities.Zombie{ID: 1, Owner: "alice", Name: "Grim", Level: 2}

	c := z.Clone()
	c.Level = 5

	assert.Equal(t, uint32(2), z.Level)
	assert.Equal(t, "Grim", c.Name)

	var nilZombie *entities.Zombie
	assert.Nil(t, nilZombie.Clone())
}

func TestZombie_IsOwnedBy(t *testing.T) {
	z := &entities.Zombie{ID: 1, Owner: "alice"}

	assert.True(t, z.IsOwnedBy("alice"))
	assert.False(t, z.IsOwnedBy("bob"))
	assert.False(t, z.IsOwnedBy(entities.ZeroAddress))
	assert.False(t, (&entities.Zombie{}).IsOwnedBy(entities.ZeroAddress))
}
