package registry

import (
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	"github.com/KirkDiggler/crypto-zombies/internal/events"
	"github.com/KirkDiggler/crypto-zombies/internal/services/battle"
)

const (
	RegistryName   = "CryptoZombies"
	RegistrySymbol = "CRZO"
)

// CreateRandomInput contains data for minting an owner's first zombie
type CreateRandomInput struct {
	Caller entities.Address
	Name   string
}

// FeedInput contains data for breeding a zombie with a kitty
type FeedInput struct {
	Caller   entities.Address
	ZombieID uint64
	KittyID  uint64
}

// AttackInput contains data for a battle between two zombies
type AttackInput struct {
	Caller     entities.Address
	AttackerID uint64
	DefenderID uint64
}

// LevelUpInput contains data for a paid level up
type LevelUpInput struct {
	Caller   entities.Address
	ZombieID uint64
	Paid     entities.Amount
}

// Receipt describes a committed action and the events it emitted
type Receipt struct {
	// Zombie is the acting zombie as stored after the action
	Zombie *entities.Zombie

	// Created is the zombie minted by the action, if any
	Created *entities.Zombie

	// Outcome is set for attacks
	Outcome *battle.Outcome

	// Amount is set for withdrawals
	Amount entities.Amount

	Events []events.Event
}
