package zombies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	nextIDKey   = "zombies:next_id"
	creatorsKey = "zombies:creators"
	treasuryKey = "zombies:treasury"
)

// ZombieData represents the serialized form of a zombie in Redis
type ZombieData struct {
	ID        uint64    `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	DNA       uint64    `json:"dna"`
	Level     uint32    `json:"level"`
	ReadyTime time.Time `json:"ready_time"`
	WinCount  uint32    `json:"win_count"`
	LossCount uint32    `json:"loss_count"`
	Revision  uint64    `json:"revision,omitempty"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed zombie repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{
		client: cfg.Client,
	}
}

// key generates the Redis key for a zombie
func (r *redisRepo) key(id uint64) string {
	return fmt.Sprintf("zombie:%d", id)
}

// ownerZombiesKey generates the Redis key for an owner's zombie set
func (r *redisRepo) ownerZombiesKey(owner entities.Address) string {
	return fmt.Sprintf("owner:%s:zombies", owner)
}

// Commit applies the changeset inside a MULTI/EXEC transaction.
// The creator set, the updated zombies and the treasury are watched, so a
// concurrent writer on any of them aborts the transaction with a conflict.
func (r *redisRepo) Commit(ctx context.Context, cs *Changeset) error {
	if cs == nil {
		return zerr.InvalidArgument("changeset cannot be nil")
	}
	if cs.IsEmpty() {
		return nil
	}
	if err := validateCreated(cs.Created); err != nil {
		return err
	}
	if err := checkTreasury(0, cs.Fee); err != nil {
		return err
	}

	keys := make([]string, 0, len(cs.Updated)+2)
	for _, z := range cs.Updated {
		if z == nil {
			return zerr.InvalidArgument("updated zombie cannot be nil")
		}
		keys = append(keys, r.key(z.ID))
	}
	if cs.Creator != entities.ZeroAddress {
		keys = append(keys, creatorsKey)
	}
	if cs.Fee > 0 {
		keys = append(keys, treasuryKey)
	}

	var (
		firstID   uint64
		revisions []uint64
	)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := r.checkCreator(ctx, tx, cs.Creator); err != nil {
			return err
		}
		next, err := r.checkUpdated(ctx, tx, cs.Updated)
		if err != nil {
			return err
		}
		if cs.Fee > 0 {
			balance, err := tx.Get(ctx, treasuryKey).Int64()
			if err != nil && !errors.Is(err, redis.Nil) {
				return zerr.Wrap(err, "failed to read treasury balance")
			}
			if err := checkTreasury(entities.Amount(balance), cs.Fee); err != nil {
				return err
			}
		}

		var first uint64
		if n := len(cs.Created); n > 0 {
			last, err := tx.IncrBy(ctx, nextIDKey, int64(n)).Result()
			if err != nil {
				return zerr.Wrap(err, "failed to allocate zombie IDs")
			}
			first = uint64(last) - uint64(n)
		}

		created := make([]string, len(cs.Created))
		for i, z := range cs.Created {
			data := toZombieData(z)
			data.ID = first + uint64(i)
			data.Revision = 1
			if created[i], err = marshal(data); err != nil {
				return err
			}
		}
		updated := make([]string, len(cs.Updated))
		for i, z := range cs.Updated {
			data := toZombieData(z)
			data.Revision = next[i]
			if updated[i], err = marshal(data); err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i := range cs.Created {
				id := first + uint64(i)
				pipe.Set(ctx, r.key(id), created[i], 0)
				pipe.SAdd(ctx, r.ownerZombiesKey(cs.Created[i].Owner), strconv.FormatUint(id, 10))
			}
			for i, z := range cs.Updated {
				pipe.Set(ctx, r.key(z.ID), updated[i], 0)
			}
			if cs.Creator != entities.ZeroAddress {
				pipe.SAdd(ctx, creatorsKey, string(cs.Creator))
			}
			if cs.Fee > 0 {
				pipe.IncrBy(ctx, treasuryKey, int64(cs.Fee))
			}
			return nil
		})
		if err != nil {
			return err
		}

		firstID, revisions = first, next
		return nil
	}, keys...)
	if errors.Is(err, redis.TxFailedErr) {
		return zerr.Conflictf("registry state changed during commit")
	}
	if err != nil {
		return zerr.Wrap(err, "failed to commit changeset")
	}

	for i, z := range cs.Created {
		z.ID = firstID + uint64(i)
		z.Revision = 1
	}
	for i, z := range cs.Updated {
		z.Revision = revisions[i]
	}

	return nil
}

// checkCreator rejects a second random creation by the same owner
func (r *redisRepo) checkCreator(ctx context.Context, tx *redis.Tx, creator entities.Address) error {
	if creator == entities.ZeroAddress {
		return nil
	}

	seen, err := tx.SIsMember(ctx, creatorsKey, string(creator)).Result()
	if err != nil {
		return zerr.Wrapf(err, "failed to check creator '%s'", creator)
	}
	if seen {
		return zerr.DuplicateCreation(string(creator))
	}
	return nil
}

// checkUpdated verifies every updated zombie exists, keeps its owner and
// was read at the stored revision. It returns the revisions to write.
func (r *redisRepo) checkUpdated(ctx context.Context, tx *redis.Tx, updated []*entities.Zombie) ([]uint64, error) {
	if len(updated) == 0 {
		return nil, nil
	}

	keys := make([]string, len(updated))
	for i, z := range updated {
		keys[i] = r.key(z.ID)
	}

	values, err := tx.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load zombies for update")
	}

	next := make([]uint64, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			return nil, zerr.NotFoundf("zombie with ID '%d' not found", updated[i].ID).
				WithMeta("zombie_id", updated[i].ID)
		}

		var data ZombieData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, zerr.Wrapf(err, "failed to unmarshal zombie %d", updated[i].ID)
		}
		if entities.Address(data.Owner) != updated[i].Owner {
			return nil, zerr.InvalidArgument("zombie ownership cannot change on update").
				WithMeta("zombie_id", updated[i].ID)
		}
		if data.Revision != updated[i].Revision {
			return nil, staleRevision(updated[i], data.Revision)
		}
		next[i] = data.Revision + 1
	}

	return next, nil
}

func marshal(data *ZombieData) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", zerr.Wrapf(err, "failed to marshal zombie %d", data.ID)
	}
	return string(jsonData), nil
}

// Get retrieves a zombie by ID
func (r *redisRepo) Get(ctx context.Context, id uint64) (*entities.Zombie, error) {
	jsonData, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, zerr.NotFoundf("zombie with ID '%d' not found", id).
				WithMeta("zombie_id", id)
		}
		return nil, zerr.Wrapf(err, "failed to get zombie %d", id)
	}

	var data ZombieData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, zerr.Wrapf(err, "failed to unmarshal zombie %d", id)
	}

	return fromZombieData(&data), nil
}

// ListByOwner retrieves all zombies of an owner ordered by ID
func (r *redisRepo) ListByOwner(ctx context.Context, owner entities.Address) ([]*entities.Zombie, error) {
	if owner == entities.ZeroAddress {
		return nil, zerr.InvalidArgument("owner is required")
	}

	members, err := r.client.SMembers(ctx, r.ownerZombiesKey(owner)).Result()
	if err != nil {
		return nil, zerr.Wrapf(err, "failed to get zombies of owner '%s'", owner)
	}

	zombies := make([]*entities.Zombie, len(members))

	g, ctx := errgroup.WithContext(ctx)
	for i, member := range members {
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			return nil, zerr.Wrapf(err, "invalid zombie ID '%s' in owner index", member)
		}

		g.Go(func() error {
			z, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			zombies[i] = z
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(zombies, func(i, j int) bool { return zombies[i].ID < zombies[j].ID })
	return zombies, nil
}

// CountByOwner returns how many zombies an owner holds
func (r *redisRepo) CountByOwner(ctx context.Context, owner entities.Address) (int, error) {
	if owner == entities.ZeroAddress {
		return 0, zerr.InvalidArgument("owner is required")
	}

	n, err := r.client.SCard(ctx, r.ownerZombiesKey(owner)).Result()
	if err != nil {
		return 0, zerr.Wrapf(err, "failed to count zombies of owner '%s'", owner)
	}
	return int(n), nil
}

// HasCreated reports whether owner already used random creation
func (r *redisRepo) HasCreated(ctx context.Context, owner entities.Address) (bool, error) {
	ok, err := r.client.SIsMember(ctx, creatorsKey, string(owner)).Result()
	if err != nil {
		return false, zerr.Wrapf(err, "failed to check creator '%s'", owner)
	}
	return ok, nil
}

// Balance returns the collected fees
func (r *redisRepo) Balance(ctx context.Context) (entities.Amount, error) {
	v, err := r.client.Get(ctx, treasuryKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, zerr.Wrap(err, "failed to read treasury balance")
	}
	return entities.Amount(v), nil
}

// Withdraw drains the collected fees with a single GETDEL
func (r *redisRepo) Withdraw(ctx context.Context) (entities.Amount, error) {
	v, err := r.client.GetDel(ctx, treasuryKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, zerr.Wrap(err, "failed to drain treasury balance")
	}
	return entities.Amount(v), nil
}

func toZombieData(z *entities.Zombie) *ZombieData {
	return &ZombieData{
		ID:        z.ID,
		Owner:     string(z.Owner),
		Name:      z.Name,
		DNA:       uint64(z.DNA),
		Level:     z.Level,
		ReadyTime: z.ReadyTime.UTC(),
		WinCount:  z.WinCount,
		LossCount: z.LossCount,
		Revision:  z.Revision,
	}
}

func fromZombieData(data *ZombieData) *entities.Zombie {
	return &entities.Zombie{
		ID:        data.ID,
		Owner:     entities.Address(data.Owner),
		Name:      data.Name,
		DNA:       dna.New(data.DNA),
		Level:     data.Level,
		ReadyTime: data.ReadyTime,
		WinCount:  data.WinCount,
		LossCount: data.LossCount,
		Revision:  data.Revision,
	}
}
