package zombies

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the zombie repository
// Useful for testing and development
type InMemoryRepository struct {
	mu       sync.RWMutex
	zombies  map[uint64]*entities.Zombie
	owners   map[entities.Address]map[uint64]struct{}
	creators map[entities.Address]struct{}
	nextID   uint64
	balance  entities.Amount
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		zombies:  make(map[uint64]*entities.Zombie),
		owners:   make(map[entities.Address]map[uint64]struct{}),
		creators: make(map[entities.Address]struct{}),
	}
}

// Commit applies the changeset under a single lock
func (r *InMemoryRepository) Commit(ctx context.Context, cs *Changeset) error {
	if cs == nil {
		return zerr.InvalidArgument("changeset cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// validate everything before the first write
	if err := validateCreated(cs.Created); err != nil {
		return err
	}
	for _, z := range cs.Updated {
		if z == nil {
			return zerr.InvalidArgument("updated zombie cannot be nil")
		}
		stored, exists := r.zombies[z.ID]
		if !exists {
			return zerr.NotFoundf("zombie with ID '%d' not found", z.ID).
				WithMeta("zombie_id", z.ID)
		}
		if stored.Owner != z.Owner {
			return zerr.InvalidArgument("zombie ownership cannot change on update").
				WithMeta("zombie_id", z.ID)
		}
		if stored.Revision != z.Revision {
			return staleRevision(z, stored.Revision)
		}
	}
	if cs.Creator != entities.ZeroAddress {
		if _, seen := r.creators[cs.Creator]; seen {
			return zerr.DuplicateCreation(string(cs.Creator))
		}
	}
	if err := checkTreasury(r.balance, cs.Fee); err != nil {
		return err
	}

	for _, z := range cs.Created {
		z.ID = r.nextID
		z.Revision = 1
		r.nextID++

		r.zombies[z.ID] = z.Clone()
		if r.owners[z.Owner] == nil {
			r.owners[z.Owner] = make(map[uint64]struct{})
		}
		r.owners[z.Owner][z.ID] = struct{}{}
	}

	for _, z := range cs.Updated {
		z.Revision++
		r.zombies[z.ID] = z.Clone()
	}

	if cs.Creator != entities.ZeroAddress {
		r.creators[cs.Creator] = struct{}{}
	}

	r.balance += cs.Fee

	return nil
}

// Get retrieves a zombie by ID
func (r *InMemoryRepository) Get(ctx context.Context, id uint64) (*entities.Zombie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	z, exists := r.zombies[id]
	if !exists {
		return nil, zerr.NotFoundf("zombie with ID '%d' not found", id).
			WithMeta("zombie_id", id)
	}

	// Return a copy to avoid external modifications
	return z.Clone(), nil
}

// ListByOwner retrieves all zombies of an owner
func (r *InMemoryRepository) ListByOwner(ctx context.Context, owner entities.Address) ([]*entities.Zombie, error) {
	if owner == entities.ZeroAddress {
		return nil, zerr.InvalidArgument("owner is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Zombie, 0, len(r.owners[owner]))
	for id := range r.owners[owner] {
		result = append(result, r.zombies[id].Clone())
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CountByOwner returns how many zombies an owner holds
func (r *InMemoryRepository) CountByOwner(ctx context.Context, owner entities.Address) (int, error) {
	if owner == entities.ZeroAddress {
		return 0, zerr.InvalidArgument("owner is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.owners[owner]), nil
}

// HasCreated reports whether owner already used random creation
func (r *InMemoryRepository) HasCreated(ctx context.Context, owner entities.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.creators[owner]
	return ok, nil
}

// Balance returns the collected fees
func (r *InMemoryRepository) Balance(ctx context.Context) (entities.Amount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balance, nil
}

// Withdraw drains the collected fees
func (r *InMemoryRepository) Withdraw(ctx context.Context) (entities.Amount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	amount := r.balance
	r.balance = 0
	return amount, nil
}

// checkTreasury keeps the balance within int64, the range Redis can count
func checkTreasury(balance, fee entities.Amount) error {
	if uint64(fee) > math.MaxInt64 || uint64(balance) > math.MaxInt64-uint64(fee) {
		return zerr.InvalidArgument("treasury balance overflow").
			WithMeta("balance", balance).
			WithMeta("fee", fee)
	}
	return nil
}

func staleRevision(z *entities.Zombie, stored uint64) error {
	return zerr.Conflictf("zombie %d changed since it was read", z.ID).
		WithMeta("zombie_id", z.ID).
		WithMeta("revision", stored)
}

func validateCreated(created []*entities.Zombie) error {
	for _, z := range created {
		if z == nil {
			return zerr.InvalidArgument("created zombie cannot be nil")
		}
		if z.Owner == entities.ZeroAddress {
			return zerr.InvalidArgument("created zombie requires an owner")
		}
	}
	return nil
}
