package services

import (
	"github.com/KirkDiggler/crypto-zombies/internal/clients/kitties"
	"github.com/KirkDiggler/crypto-zombies/internal/cooldown"
	"github.com/KirkDiggler/crypto-zombies/internal/dice"
	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	"github.com/KirkDiggler/crypto-zombies/internal/events"
	"github.com/KirkDiggler/crypto-zombies/internal/repositories/zombies"
	"github.com/KirkDiggler/crypto-zombies/internal/services/battle"
	"github.com/KirkDiggler/crypto-zombies/internal/services/fees"
	"github.com/KirkDiggler/crypto-zombies/internal/services/registry"
	"go.uber.org/zap"
)

// Provider holds all service instances
type Provider struct {
	RegistryService registry.Service
	EventBus        *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	KittyClient      kitties.Client
	ZombieRepository zombies.Repository

	DNASeed    string
	Cooldown   *cooldown.Config
	LevelUpFee entities.Amount
	Withdrawer entities.Address
	DiceRoller dice.Roller
	Clock      cooldown.TimeProvider

	// Listeners are subscribed to every registry event
	Listeners []events.EventListener

	Logger *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Use in-memory repository if none provided
	repo := cfg.ZombieRepository
	if repo == nil {
		repo = zombies.NewInMemoryRepository()
	}

	kittyClient := cfg.KittyClient
	if kittyClient == nil {
		kittyClient = kitties.NewStaticClient(nil)
	}

	bus := events.NewBus(logger)
	bus.SubscribeAll(events.NewLoggingListener(logger))
	for _, l := range cfg.Listeners {
		bus.SubscribeAll(l)
	}

	registrySvc := registry.NewService(&registry.ServiceConfig{
		Repository:  repo,
		KittyClient: kittyClient,
		Codec:       dna.NewCodec(cfg.DNASeed),
		Cooldown:    cooldown.NewGate(cfg.Cooldown),
		Resolver:    battle.NewResolver(cfg.DiceRoller),
		FeeGate: fees.NewGate(&fees.GateConfig{
			Fee:        cfg.LevelUpFee,
			Withdrawer: cfg.Withdrawer,
			Treasury:   repo,
		}),
		Clock:    cfg.Clock,
		EventBus: bus,
		Logger:   logger,
	})

	return &Provider{
		RegistryService: registrySvc,
		EventBus:        bus,
	}
}
