package registry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/clients/kitties"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
	"github.com/KirkDiggler/crypto-zombies/internal/repositories/zombies"
	"github.com/KirkDiggler/crypto-zombies/internal/services/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedRepo holds the first two reads until both have happened, so two
// services sharing one store each act on the same snapshot
type gatedRepo struct {
	zombies.Repository

	mu      sync.Mutex
	arrived int
	release chan struct{}
}

func newGatedRepo(inner zombies.Repository) *gatedRepo {
	return &gatedRepo{Repository: inner, release: make(chan struct{})}
}

func (g *gatedRepo) hold() {
	g.mu.Lock()
	g.arrived++
	if g.arrived == 2 {
		close(g.release)
	}
	g.mu.Unlock()
	<-g.release
}

func (g *gatedRepo) HasCreated(ctx context.Context, owner entities.Address) (bool, error) {
	created, err := g.Repository.HasCreated(ctx, owner)
	g.hold()
	return created, err
}

func (g *gatedRepo) Get(ctx context.Context, id uint64) (*entities.Zombie, error) {
	z, err := g.Repository.Get(ctx, id)
	g.hold()
	return z, err
}

// race runs fn on two services backed by the same store and returns both errors
func race(t *testing.T, repo zombies.Repository, fn func(svc registry.Service) error) []error {
	t.Helper()

	client := kitties.NewStaticClient(map[uint64]uint64{1: kittyGenes})
	services := []registry.Service{
		registry.NewService(&registry.ServiceConfig{Repository: repo, KittyClient: client}),
		registry.NewService(&registry.ServiceConfig{Repository: repo, KittyClient: client}),
	}

	errs := make([]error, len(services))
	var wg sync.WaitGroup
	for i, svc := range services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = fn(svc)
		}()
	}
	wg.Wait()
	return errs
}

func failures(errs []error) []error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

func TestSharedStore_CreateRandomOncePerOwner(t *testing.T) {
	store := zombies.NewInMemoryRepository()
	ctx := context.Background()

	errs := race(t, newGatedRepo(store), func(svc registry.Service) error {
		_, err := svc.CreateRandom(ctx, &registry.CreateRandomInput{Caller: alice, Name: "Grim"})
		return err
	})

	failed := failures(errs)
	require.Len(t, failed, 1)
	assert.True(t, zerr.Is(failed[0], zerr.CodeDuplicateCreation))

	count, err := store.CountByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSharedStore_FeedSpendsCooldownOnce(t *testing.T) {
	store := zombies.NewInMemoryRepository()
	ctx := context.Background()

	zombie := &entities.Zombie{Owner: alice, Name: "Grim", Level: 1, DNA: 1234, ReadyTime: time.Now().Add(-time.Hour)}
	require.NoError(t, store.Commit(ctx, &zombies.Changeset{Created: []*entities.Zombie{zombie}}))

	errs := race(t, newGatedRepo(store), func(svc registry.Service) error {
		_, err := svc.Feed(ctx, &registry.FeedInput{Caller: alice, ZombieID: zombie.ID, KittyID: 1})
		return err
	})

	failed := failures(errs)
	require.Len(t, failed, 1)
	assert.True(t, zerr.Is(failed[0], zerr.CodeConflict))

	count, err := store.CountByOwner(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	fed, err := store.Get(ctx, zombie.ID)
	require.NoError(t, err)
	assert.True(t, fed.ReadyTime.After(time.Now()))
}
