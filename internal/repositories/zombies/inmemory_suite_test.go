package zombies_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
	"github.com/KirkDiggler/crypto-zombies/internal/repositories/zombies"
	"github.com/stretchr/testify/suite"
)

// InMemoryRepositoryTestSuite defines the test suite for in-memory repository
type InMemoryRepositoryTestSuite struct {
	suite.Suite
	repo zombies.Repository
	ctx  context.Context
}

// SetupTest runs before each test
func (s *InMemoryRepositoryTestSuite) SetupTest() {
	s.repo = zombies.NewInMemoryRepository()
	s.ctx = context.Background()
}

// Test suite runner
func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryRepositoryTestSuite))
}

func (s *InMemoryRepositoryTestSuite) mint(owner entities.Address, name string) *entities.Zombie {
	z := &entities.Zombie{Owner: owner, Name: name, Level: 1, DNA: 1234}
	s.Require().NoError(s.repo.Commit(s.ctx, &zombies.Changeset{Created: []*entities.Zombie{z}}))
	return z
}

func (s *InMemoryRepositoryTestSuite) TestCommit_AssignsSequentialIDs() {
	first := s.mint("alice", "Grim")
	second := s.mint("bob", "Rot")

	pair := []*entities.Zombie{{Owner: "alice", Name: "A"}, {Owner: "alice", Name: "B"}}
	s.NoError(s.repo.Commit(s.ctx, &zombies.Changeset{Created: pair}))

	s.Equal(uint64(0), first.ID)
	s.Equal(uint64(1), second.ID)
	s.Equal(uint64(2), pair[0].ID)
	s.Equal(uint64(3), pair[1].ID)

	got, err := s.repo.Get(s.ctx, 1)
	s.NoError(err)
	s.Equal("Rot", got.Name)
	s.Equal(entities.Address("bob"), got.Owner)
}

func (s *InMemoryRepositoryTestSuite) TestCommit_CreatorAndFee() {
	created, err := s.repo.HasCreated(s.ctx, "alice")
	s.NoError(err)
	s.False(created)

	s.NoError(s.repo.Commit(s.ctx, &zombies.Changeset{
		Created: []*entities.Zombie{{Owner: "alice", Name: "Grim"}},
		Creator: "alice",
		Fee:     5,
	}))
	s.NoError(s.repo.Commit(s.ctx, &zombies.Changeset{Fee: 7}))

	created, err = s.repo.HasCreated(s.ctx, "alice")
	s.NoError(err)
	s.True(created)

	balance, err := s.repo.Balance(s.ctx)
	s.NoError(err)
	s.Equal(entities.Amount(12), balance)

	drained, err := s.repo.Withdraw(s.ctx)
	s.NoError(err)
	s.Equal(entities.Amount(12), drained)

	balance, err = s.repo.Balance(s.ctx)
	s.NoError(err)
	s.Zero(balance)
}

func (s *InMemoryRepositoryTestSuite) TestCommit_UnknownUpdateAppliesNothing() {
	existing := s.mint("alice", "Grim")
	existing.Level = 9

	err := s.repo.Commit(s.ctx, &zombies.Changeset{
		Created: []*entities.Zombie{{Owner: "alice", Name: "Child"}},
		Updated: []*entities.Zombie{existing, {ID: 42, Owner: "alice"}},
		Creator: "alice",
		Fee:     10,
	})
	s.Error(err)
	s.True(zerr.IsNotFound(err))

	count, err := s.repo.CountByOwner(s.ctx, "alice")
	s.NoError(err)
	s.Equal(1, count)

	got, err := s.repo.Get(s.ctx, existing.ID)
	s.NoError(err)
	s.Equal(uint32(1), got.Level)

	created, err := s.repo.HasCreated(s.ctx, "alice")
	s.NoError(err)
	s.False(created)

	balance, err := s.repo.Balance(s.ctx)
	s.NoError(err)
	s.Zero(balance)
}

func (s *InMemoryRepositoryTestSuite) TestCommit_RejectsOwnerChange() {
	z := s.mint("alice", "Grim")
	z.Owner = "mallory"

	err := s.repo.Commit(s.ctx, &zombies.Changeset{Updated: []*entities.Zombie{z}})
	s.True(zerr.Is(err, zerr.CodeInvalidArgument))
}

func (s *InMemoryRepositoryTestSuite) TestCommit_StaleRevisionIsConflict() {
	minted := s.mint("alice", "Grim")
	s.Equal(uint64(1), minted.Revision)

	first, err := s.repo.Get(s.ctx, minted.ID)
	s.Require().NoError(err)
	second, err := s.repo.Get(s.ctx, minted.ID)
	s.Require().NoError(err)

	first.Level = 2
	s.NoError(s.repo.Commit(s.ctx, &zombies.Changeset{Updated: []*entities.Zombie{first}, Fee: 5}))
	s.Equal(uint64(2), first.Revision)

	second.Name = "Rot"
	err = s.repo.Commit(s.ctx, &zombies.Changeset{Updated: []*entities.Zombie{second}, Fee: 5})
	s.True(zerr.Is(err, zerr.CodeConflict))
	s.Equal(uint64(2), zerr.GetMeta(err)["revision"])

	got, err := s.repo.Get(s.ctx, minted.ID)
	s.NoError(err)
	s.Equal("Grim", got.Name)
	s.Equal(uint32(2), got.Level)

	balance, err := s.repo.Balance(s.ctx)
	s.NoError(err)
	s.Equal(entities.Amount(5), balance)
}

func (s *InMemoryRepositoryTestSuite) TestCommit_CreatorOnlyOnce() {
	s.NoError(s.repo.Commit(s.ctx, &zombies.Changeset{
		Created: []*entities.Zombie{{Owner: "alice", Name: "Grim"}},
		Creator: "alice",
	}))

	err := s.repo.Commit(s.ctx, &zombies.Changeset{
		Created: []*entities.Zombie{{Owner: "alice", Name: "Again"}},
		Creator: "alice",
	})
	s.True(zerr.Is(err, zerr.CodeDuplicateCreation))

	count, err := s.repo.CountByOwner(s.ctx, "alice")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *InMemoryRepositoryTestSuite) TestCommit_TreasuryStaysInRange() {
	err := s.repo.Commit(s.ctx, &zombies.Changeset{Fee: entities.Amount(math.MaxInt64) + 1})
	s.True(zerr.Is(err, zerr.CodeInvalidArgument))

	s.NoError(s.repo.Commit(s.ctx, &zombies.Changeset{Fee: math.MaxInt64 - 5}))

	err = s.repo.Commit(s.ctx, &zombies.Changeset{Fee: 10})
	s.True(zerr.Is(err, zerr.CodeInvalidArgument))
	s.Equal(entities.Amount(10), zerr.GetMeta(err)["fee"])

	balance, err := s.repo.Balance(s.ctx)
	s.NoError(err)
	s.Equal(entities.Amount(math.MaxInt64-5), balance)
}

func (s *InMemoryRepositoryTestSuite) TestCommit_InvalidInput() {
	s.True(zerr.Is(s.repo.Commit(s.ctx, nil), zerr.CodeInvalidArgument))

	err := s.repo.Commit(s.ctx, &zombies.Changeset{Created: []*entities.Zombie{{Name: "ownerless"}}})
	s.True(zerr.Is(err, zerr.CodeInvalidArgument))
}

func (s *InMemoryRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, 99)
	s.Error(err)
	s.True(zerr.IsNotFound(err))
}

func (s *InMemoryRepositoryTestSuite) TestGet_IsolatesData() {
	z := s.mint("alice", "Grim")

	got, err := s.repo.Get(s.ctx, z.ID)
	s.NoError(err)
	got.Level = 50
	got.ReadyTime = time.Now()

	again, err := s.repo.Get(s.ctx, z.ID)
	s.NoError(err)
	s.Equal(uint32(1), again.Level)
	s.True(again.ReadyTime.IsZero())
}

func (s *InMemoryRepositoryTestSuite) TestListByOwner() {
	s.mint("alice", "A")
	s.mint("bob", "B")
	s.mint("alice", "C")

	list, err := s.repo.ListByOwner(s.ctx, "alice")
	s.NoError(err)
	s.Len(list, 2)
	s.Equal("A", list[0].Name)
	s.Equal("C", list[1].Name)

	list, err = s.repo.ListByOwner(s.ctx, "carol")
	s.NoError(err)
	s.Empty(list)

	_, err = s.repo.ListByOwner(s.ctx, entities.ZeroAddress)
	s.True(zerr.Is(err, zerr.CodeInvalidArgument))
}

func (s *InMemoryRepositoryTestSuite) TestConcurrentCommits() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.repo.Commit(s.ctx, &zombies.Changeset{
				Created: []*entities.Zombie{{Owner: "alice", Name: "swarm"}},
				Fee:     1,
			}))
		}()
	}
	wg.Wait()

	count, err := s.repo.CountByOwner(s.ctx, "alice")
	s.NoError(err)
	s.Equal(50, count)

	balance, err := s.repo.Balance(s.ctx)
	s.NoError(err)
	s.Equal(entities.Amount(50), balance)
}
