package events

import (
	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
)

// TransferEvent records a zombie moving between addresses; mints come from the zero address
type TransferEvent struct {
	BaseEvent
	From     entities.Address
	To       entities.Address
	ZombieID uint64
}

// ZombieCreatedEvent is emitted for every new zombie
type ZombieCreatedEvent struct {
	BaseEvent
	ZombieID uint64
	Name     string
	DNA      dna.DNA
}

// LevelUpEvent is emitted after a paid level up
type LevelUpEvent struct {
	BaseEvent
	ZombieID uint64
	Level    uint32
	Fee      entities.Amount
}

// BattleEvent is emitted for every resolved attack
type BattleEvent struct {
	BaseEvent
	AttackerID uint64
	DefenderID uint64
	Won        bool
	Roll       int
	Threshold  int
}

// WithdrawnEvent is emitted when the collected fees are withdrawn
type WithdrawnEvent struct {
	BaseEvent
	To     entities.Address
	Amount entities.Amount
}
