package zombies

//go:generate mockgen -destination=mock/mock.go -package=mockzombies -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/crypto-zombies/internal/entities"
)

// Changeset is everything one registry action writes.
// Commit applies it completely or not at all.
type Changeset struct {
	// Created zombies get their ID assigned by Commit, in order
	Created []*entities.Zombie

	// Updated zombies must already exist
	Updated []*entities.Zombie

	// Creator is marked as having used random creation
	Creator entities.Address

	// Fee is added to the treasury balance
	Fee entities.Amount
}

// IsEmpty reports whether the changeset writes nothing
func (c *Changeset) IsEmpty() bool {
	return c == nil || (len(c.Created) == 0 && len(c.Updated) == 0 && c.Creator == entities.ZeroAddress && c.Fee == 0)
}

// Repository defines the registry's canonical zombie store.
// It holds zombie records, their ownership, the random creator set and the fee treasury.
type Repository interface {
	// Commit atomically applies a changeset
	Commit(ctx context.Context, cs *Changeset) error

	// Get retrieves a zombie by ID
	Get(ctx context.Context, id uint64) (*entities.Zombie, error)

	// ListByOwner retrieves all zombies of an owner ordered by ID
	ListByOwner(ctx context.Context, owner entities.Address) ([]*entities.Zombie, error)

	// CountByOwner returns how many zombies an owner holds
	CountByOwner(ctx context.Context, owner entities.Address) (int, error)

	// HasCreated reports whether owner already used random creation
	HasCreated(ctx context.Context, owner entities.Address) (bool, error)

	// Balance returns the collected fees
	Balance(ctx context.Context) (entities.Amount, error)

	// Withdraw drains the collected fees and returns the drained amount
	Withdraw(ctx context.Context) (entities.Amount, error)
}
