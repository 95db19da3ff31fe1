//go:build integration
// +build integration

package zombies_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
	"github.com/KirkDiggler/crypto-zombies/internal/repositories/zombies"
	"github.com/KirkDiggler/crypto-zombies/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_Integration(t *testing.T) {
	// Docker backed Redis, skipped when docker is missing
	client := testutils.StartRedisContainer(t)

	repo := zombies.NewRedisRepository(&zombies.RedisRepoConfig{
		Client: client,
	})

	ctx := context.Background()

	t.Run("mint and retrieve zombies", func(t *testing.T) {
		first := testutils.CreateTestZombie("alice", "Grim")
		second := testutils.CreateTestZombie("alice", entities.DefaultName)

		require.NoError(t, repo.Commit(ctx, &zombies.Changeset{
			Created: []*entities.Zombie{first},
			Creator: "alice",
		}))
		require.NoError(t, repo.Commit(ctx, &zombies.Changeset{
			Created: []*entities.Zombie{second},
		}))

		assert.Equal(t, uint64(0), first.ID)
		assert.Equal(t, uint64(1), second.ID)

		retrieved, err := repo.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Name, retrieved.Name)
		assert.Equal(t, first.DNA, retrieved.DNA)
		assert.True(t, first.ReadyTime.Equal(retrieved.ReadyTime))

		list, err := repo.ListByOwner(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, entities.DefaultName, list[1].Name)

		created, err := repo.HasCreated(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("failed update leaves store untouched", func(t *testing.T) {
		err := repo.Commit(ctx, &zombies.Changeset{
			Updated: []*entities.Zombie{{ID: 500, Owner: "alice"}},
			Fee:     10,
		})
		assert.True(t, zerr.IsNotFound(err))

		balance, err := repo.Balance(ctx)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("treasury drains once", func(t *testing.T) {
		require.NoError(t, repo.Commit(ctx, &zombies.Changeset{Fee: 1_000_000}))
		require.NoError(t, repo.Commit(ctx, &zombies.Changeset{Fee: 2_000_000}))

		drained, err := repo.Withdraw(ctx)
		require.NoError(t, err)
		assert.Equal(t, entities.Amount(3_000_000), drained)

		drained, err = repo.Withdraw(ctx)
		require.NoError(t, err)
		assert.Zero(t, drained)
	})
}
