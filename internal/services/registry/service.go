package registry

//go:generate mockgen -destination=mock/mock_service.go -package=mockregistry -source=service.go

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/clients/kitties"
	"github.com/KirkDiggler/crypto-zombies/internal/cooldown"
	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
	"github.com/KirkDiggler/crypto-zombies/internal/events"
	"github.com/KirkDiggler/crypto-zombies/internal/repositories/zombies"
	"github.com/KirkDiggler/crypto-zombies/internal/services/battle"
	"github.com/KirkDiggler/crypto-zombies/internal/services/fees"
	"github.com/KirkDiggler/crypto-zombies/internal/uuid"
	"go.uber.org/zap"
)

// Service defines the zombie registry
type Service interface {
	// CreateRandom mints the caller's one randomly generated zombie
	CreateRandom(ctx context.Context, input *CreateRandomInput) (*Receipt, error)

	// Feed breeds a new zombie from one of the caller's zombies and a kitty
	Feed(ctx context.Context, input *FeedInput) (*Receipt, error)

	// Attack battles the caller's zombie against another owner's zombie
	Attack(ctx context.Context, input *AttackInput) (*Receipt, error)

	// LevelUp raises a zombie one level for a fee
	LevelUp(ctx context.Context, input *LevelUpInput) (*Receipt, error)

	// ViewBalance returns the collected fees to the withdrawer
	ViewBalance(ctx context.Context, caller entities.Address) (entities.Amount, error)

	// Withdraw pays the collected fees out to the withdrawer
	Withdraw(ctx context.Context, caller entities.Address) (*Receipt, error)

	Get(ctx context.Context, id uint64) (*entities.Zombie, error)
	OwnerOf(ctx context.Context, id uint64) (entities.Address, error)
	BalanceOf(ctx context.Context, owner entities.Address) (int, error)
	ListByOwner(ctx context.Context, owner entities.Address) ([]*entities.Zombie, error)

	Name() string
	Symbol() string
}

type service struct {
	// mu serializes every mutating action, oracle call included
	mu sync.Mutex

	repository    zombies.Repository
	codec         *dna.Codec
	cooldown      *cooldown.Gate
	resolver      battle.Resolver
	fees          *fees.Gate
	kitties       kitties.Client
	clock         cooldown.TimeProvider
	uuidGenerator uuid.Generator
	bus           *events.Bus
	logger        *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository  zombies.Repository
	KittyClient kitties.Client

	Codec         *dna.Codec            // Optional - unseeded codec if nil
	Cooldown      *cooldown.Gate        // Optional - default cooldowns if nil
	Resolver      battle.Resolver       // Optional - random rolls if nil
	FeeGate       *fees.Gate            // Optional - default fee, no withdrawer if nil
	Clock         cooldown.TimeProvider // Optional - system clock if nil
	UUIDGenerator uuid.Generator        // Optional - time ordered ids if nil
	EventBus      *events.Bus           // Optional - private bus if nil
	Logger        *zap.Logger
}

// NewService creates a new registry service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.KittyClient == nil {
		panic("kitty client is required")
	}

	svc := &service{
		repository: cfg.Repository,
		kitties:    cfg.KittyClient,
		codec:      cfg.Codec,
		cooldown:   cfg.Cooldown,
		resolver:   cfg.Resolver,
		fees:       cfg.FeeGate,
		clock:      cfg.Clock,
		bus:        cfg.EventBus,
		logger:     cfg.Logger,
	}

	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	svc.logger = svc.logger.Named("registry")

	if svc.codec == nil {
		svc.codec = dna.NewCodec("")
	}
	if svc.cooldown == nil {
		svc.cooldown = cooldown.NewGate(nil)
	}
	if svc.resolver == nil {
		svc.resolver = battle.NewResolver(nil)
	}
	if svc.fees == nil {
		svc.fees = fees.NewGate(&fees.GateConfig{Treasury: cfg.Repository})
	}
	if svc.clock == nil {
		svc.clock = cooldown.NewSystemTimeProvider()
	}
	if svc.bus == nil {
		svc.bus = events.NewBus(svc.logger)
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewTimeOrderedGenerator()
	}

	return svc
}

func (s *service) Name() string   { return RegistryName }
func (s *service) Symbol() string { return RegistrySymbol }

// CreateRandom mints the caller's one randomly generated zombie
func (s *service) CreateRandom(ctx context.Context, input *CreateRandomInput) (*Receipt, error) {
	if input == nil {
		return nil, zerr.InvalidArgument("input cannot be nil")
	}
	if input.Caller == entities.ZeroAddress {
		return nil, zerr.InvalidArgument("caller is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, zerr.InvalidArgument("zombie name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.repository.HasCreated(ctx, input.Caller)
	if err != nil {
		return nil, s.fail("create_random", zerr.Wrap(err, "failed to check creator"))
	}
	if created {
		return nil, s.fail("create_random", zerr.DuplicateCreation(string(input.Caller)))
	}

	now := s.clock.Now()
	zombie := s.spawn(input.Caller, input.Name, s.codec.FromName(input.Name), now)

	err = s.repository.Commit(ctx, &zombies.Changeset{
		Created: []*entities.Zombie{zombie},
		Creator: input.Caller,
	})
	if err != nil {
		return nil, s.fail("create_random", zerr.Wrap(err, "failed to save zombie"))
	}

	evts := s.mintEvents(zombie, now)
	s.publish(evts)

	s.logger.Info("zombie created",
		zap.Uint64("zombie_id", zombie.ID),
		zap.String("owner", string(zombie.Owner)),
		zap.Stringer("dna", zombie.DNA))

	return &Receipt{
		Zombie:  zombie.Clone(),
		Created: zombie.Clone(),
		Events:  evts,
	}, nil
}

// Feed breeds a new zombie from one of the caller's zombies and a kitty
func (s *service) Feed(ctx context.Context, input *FeedInput) (*Receipt, error) {
	if input == nil {
		return nil, zerr.InvalidArgument("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	zombie, err := s.owned(ctx, input.Caller, input.ZombieID)
	if err != nil {
		return nil, s.fail("feed", err)
	}

	now := s.clock.Now()
	if err := s.cooldown.Check(zombie, now); err != nil {
		return nil, s.fail("feed", err)
	}

	kitty, err := s.kitties.GetKitty(ctx, input.KittyID)
	if err != nil {
		return nil, s.fail("feed", zerr.OracleUnavailable(err, "failed to fetch kitty").
			WithMeta("kitty_id", input.KittyID))
	}
	if kitty == nil || kitty.Genes == nil {
		return nil, s.fail("feed", zerr.OracleUnavailable(nil, "kitty registry returned no genes").
			WithMeta("kitty_id", input.KittyID))
	}

	child := s.spawn(input.Caller, entities.DefaultName, dna.Mix(zombie.DNA, kitty.DNA(), dna.SpeciesKitty), now)
	s.cooldown.Trigger(zombie, now)

	err = s.repository.Commit(ctx, &zombies.Changeset{
		Created: []*entities.Zombie{child},
		Updated: []*entities.Zombie{zombie},
	})
	if err != nil {
		return nil, s.fail("feed", zerr.Wrap(err, "failed to save fed zombie"))
	}

	evts := s.mintEvents(child, now)
	s.publish(evts)

	s.logger.Info("zombie fed",
		zap.Uint64("zombie_id", zombie.ID),
		zap.Uint64("kitty_id", input.KittyID),
		zap.Uint64("child_id", child.ID),
		zap.String("owner", string(input.Caller)))

	return &Receipt{
		Zombie:  zombie.Clone(),
		Created: child.Clone(),
		Events:  evts,
	}, nil
}

// Attack battles the caller's zombie against another owner's zombie
func (s *service) Attack(ctx context.Context, input *AttackInput) (*Receipt, error) {
	if input == nil {
		return nil, zerr.InvalidArgument("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attacker, err := s.owned(ctx, input.Caller, input.AttackerID)
	if err != nil {
		return nil, s.fail("attack", err)
	}

	defender, err := s.repository.Get(ctx, input.DefenderID)
	if err != nil {
		return nil, s.fail("attack", zerr.Wrapf(err, "failed to get defender %d", input.DefenderID))
	}

	// covers attacking with and against the same zombie
	if defender.IsOwnedBy(input.Caller) {
		return nil, s.fail("attack", zerr.SelfAttackf("zombie %d belongs to the attacker", defender.ID).
			WithMeta("attacker_id", attacker.ID).
			WithMeta("defender_id", defender.ID))
	}

	now := s.clock.Now()
	if err := s.cooldown.Check(attacker, now); err != nil {
		return nil, s.fail("attack", err)
	}

	outcome, err := s.resolver.Resolve(attacker, defender)
	if err != nil {
		return nil, s.fail("attack", zerr.Wrap(err, "failed to resolve battle"))
	}

	childDNA, spawned := outcome.Apply(attacker, defender)
	s.cooldown.Trigger(attacker, now)

	cs := &zombies.Changeset{
		Updated: []*entities.Zombie{attacker, defender},
	}

	var child *entities.Zombie
	if spawned {
		child = s.spawn(input.Caller, entities.DefaultName, childDNA, now)
		cs.Created = []*entities.Zombie{child}
	}

	if err := s.repository.Commit(ctx, cs); err != nil {
		return nil, s.fail("attack", zerr.Wrap(err, "failed to save battle"))
	}

	evts := []events.Event{
		&events.BattleEvent{
			BaseEvent:  events.NewBaseEvent(s.uuidGenerator.New(), events.EventTypeBattle, now),
			AttackerID: attacker.ID,
			DefenderID: defender.ID,
			Won:        outcome.Won,
			Roll:       outcome.Roll,
			Threshold:  outcome.Threshold,
		},
	}
	if child != nil {
		evts = append(evts, s.mintEvents(child, now)...)
	}
	s.publish(evts)

	s.logger.Info("battle resolved",
		zap.Uint64("zombie_id", attacker.ID),
		zap.Uint64("defender_id", defender.ID),
		zap.Bool("won", outcome.Won),
		zap.String("dice", outcome.Dice),
		zap.String("owner", string(input.Caller)))

	receipt := &Receipt{
		Zombie:  attacker.Clone(),
		Outcome: outcome,
		Events:  evts,
	}
	if child != nil {
		receipt.Created = child.Clone()
	}
	return receipt, nil
}

// LevelUp raises a zombie one level. Anyone may pay for any zombie
// and the whole payment is kept.
func (s *service) LevelUp(ctx context.Context, input *LevelUpInput) (*Receipt, error) {
	if input == nil {
		return nil, zerr.InvalidArgument("input cannot be nil")
	}

	if err := s.fees.Check(input.Paid); err != nil {
		return nil, s.fail("level_up", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	zombie, err := s.repository.Get(ctx, input.ZombieID)
	if err != nil {
		return nil, s.fail("level_up", zerr.Wrapf(err, "failed to get zombie %d", input.ZombieID))
	}
	if zombie.Level == math.MaxUint32 {
		return nil, s.fail("level_up", zerr.InvalidArgument("zombie is at the maximum level"))
	}

	zombie.Level++

	err = s.repository.Commit(ctx, &zombies.Changeset{
		Updated: []*entities.Zombie{zombie},
		Fee:     input.Paid,
	})
	if err != nil {
		return nil, s.fail("level_up", zerr.Wrap(err, "failed to save level up"))
	}

	now := s.clock.Now()
	evts := []events.Event{
		&events.LevelUpEvent{
			BaseEvent: events.NewBaseEvent(s.uuidGenerator.New(), events.EventTypeLevelUp, now),
			ZombieID:  zombie.ID,
			Level:     zombie.Level,
			Fee:       input.Paid,
		},
	}
	s.publish(evts)

	s.logger.Info("zombie leveled up",
		zap.Uint64("zombie_id", zombie.ID),
		zap.Uint32("level", zombie.Level),
		zap.Uint64("fee_gwei", uint64(input.Paid)),
		zap.String("payer", string(input.Caller)))

	return &Receipt{
		Zombie: zombie.Clone(),
		Events: evts,
	}, nil
}

// ViewBalance returns the collected fees to the withdrawer
func (s *service) ViewBalance(ctx context.Context, caller entities.Address) (entities.Amount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.fees.ViewBalance(ctx, caller)
	if err != nil {
		return 0, s.fail("view_balance", err)
	}
	return balance, nil
}

// Withdraw pays the collected fees out to the withdrawer
func (s *service) Withdraw(ctx context.Context, caller entities.Address) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, err := s.fees.Withdraw(ctx, caller)
	if err != nil {
		return nil, s.fail("withdraw", err)
	}

	evts := []events.Event{
		&events.WithdrawnEvent{
			BaseEvent: events.NewBaseEvent(s.uuidGenerator.New(), events.EventTypeWithdrawn, s.clock.Now()),
			To:        caller,
			Amount:    amount,
		},
	}
	s.publish(evts)

	s.logger.Info("fees withdrawn",
		zap.String("to", string(caller)),
		zap.Uint64("amount_gwei", uint64(amount)))

	return &Receipt{
		Amount: amount,
		Events: evts,
	}, nil
}

// Get retrieves a zombie by ID
func (s *service) Get(ctx context.Context, id uint64) (*entities.Zombie, error) {
	zombie, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, zerr.Wrapf(err, "failed to get zombie %d", id)
	}
	return zombie, nil
}

// OwnerOf returns the owner of a zombie
func (s *service) OwnerOf(ctx context.Context, id uint64) (entities.Address, error) {
	zombie, err := s.Get(ctx, id)
	if err != nil {
		return entities.ZeroAddress, err
	}
	return zombie.Owner, nil
}

// BalanceOf returns how many zombies an owner holds
func (s *service) BalanceOf(ctx context.Context, owner entities.Address) (int, error) {
	count, err := s.repository.CountByOwner(ctx, owner)
	if err != nil {
		return 0, zerr.Wrapf(err, "failed to count zombies of '%s'", owner)
	}
	return count, nil
}

// ListByOwner returns an owner's zombies ordered by ID
func (s *service) ListByOwner(ctx context.Context, owner entities.Address) ([]*entities.Zombie, error) {
	list, err := s.repository.ListByOwner(ctx, owner)
	if err != nil {
		return nil, zerr.Wrapf(err, "failed to list zombies of '%s'", owner)
	}
	return list, nil
}

// owned loads a zombie and checks the caller controls it
func (s *service) owned(ctx context.Context, caller entities.Address, id uint64) (*entities.Zombie, error) {
	zombie, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, zerr.Wrapf(err, "failed to get zombie %d", id)
	}

	if caller == entities.ZeroAddress || !zombie.IsOwnedBy(caller) {
		return nil, zerr.NotOwnerf("caller '%s' does not own zombie %d", caller, id).
			WithMeta("zombie_id", id).
			WithMeta("caller", caller)
	}

	return zombie, nil
}

// spawn builds an unsaved level 1 zombie with a fresh cooldown
func (s *service) spawn(owner entities.Address, name string, d dna.DNA, now time.Time) *entities.Zombie {
	zombie := &entities.Zombie{
		Owner: owner,
		Name:  name,
		DNA:   d,
		Level: 1,
	}
	s.cooldown.Trigger(zombie, now)
	return zombie
}

// mintEvents are the transfer from the zero address and the creation notice
func (s *service) mintEvents(z *entities.Zombie, now time.Time) []events.Event {
	return []events.Event{
		&events.TransferEvent{
			BaseEvent: events.NewBaseEvent(s.uuidGenerator.New(), events.EventTypeTransfer, now),
			From:      entities.ZeroAddress,
			To:        z.Owner,
			ZombieID:  z.ID,
		},
		&events.ZombieCreatedEvent{
			BaseEvent: events.NewBaseEvent(s.uuidGenerator.New(), events.EventTypeZombieCreated, now),
			ZombieID:  z.ID,
			Name:      z.Name,
			DNA:       z.DNA,
		},
	}
}

// publish delivers committed events; listener failures never undo a commit
func (s *service) publish(evts []events.Event) {
	if err := s.bus.Publish(evts...); err != nil {
		s.logger.Warn("event listener failed", zap.Error(err))
	}
}

// fail logs a rejected or failed action and returns err unchanged
func (s *service) fail(action string, err error) error {
	code := zerr.GetCode(err)
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("code", string(code)),
		zap.Error(err),
	}

	switch code {
	case zerr.CodeInternal, zerr.CodeUnknown, zerr.CodeOracleUnavailable:
		s.logger.Error("action failed", fields...)
	default:
		s.logger.Warn("action rejected", fields...)
	}
	return err
}
