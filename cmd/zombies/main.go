package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/crypto-zombies/internal/clients/kitties"
	"github.com/KirkDiggler/crypto-zombies/internal/config"
	"github.com/KirkDiggler/crypto-zombies/internal/events"
	"github.com/KirkDiggler/crypto-zombies/internal/handlers/discord"
	"github.com/KirkDiggler/crypto-zombies/internal/metrics"
	"github.com/KirkDiggler/crypto-zombies/internal/repositories/zombies"
	"github.com/KirkDiggler/crypto-zombies/internal/services"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("no .env file found")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting",
		zap.String("app_id", cfg.Discord.AppID),
		zap.String("guild_id", cfg.Discord.GuildID))

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	kittyClient, err := newKittyClient(cfg, logger)
	if err != nil {
		return err
	}

	m := metrics.New()
	providerConfig := &services.ProviderConfig{
		KittyClient: kittyClient,
		DNASeed:     cfg.Registry.DNASeed,
		Cooldown:    cfg.Registry.Cooldown(),
		LevelUpFee:  cfg.Registry.Fee(),
		Withdrawer:  cfg.Registry.WithdrawerAddress(),
		Listeners:   []events.EventListener{m},
		Logger:      logger,
	}

	rateLimit := &discord.RateLimitConfig{
		MaxRequests: cfg.Discord.RateLimit,
		Window:      cfg.Discord.RateWindow,
	}

	// Keep Redis client for cleanup
	redisClient := connectRedis(cfg.Redis.URL, logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("error closing Redis connection", zap.Error(err))
			}
		}()
		providerConfig.ZombieRepository = zombies.NewRedis(redisClient)
		rateLimit.Store = discord.NewRedisRateLimitStore(redisClient)
	}

	serviceProvider := services.NewProvider(providerConfig)

	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: serviceProvider,
		RateLimiter:     discord.NewRateLimiter(rateLimit),
		Logger:          logger,
	})

	// Register interaction handler
	dg.AddHandler(handler.HandleInteraction)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Warn("failed to close Discord connection", zap.Error(err))
		}
	}()

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	var metricsServer *http.Server
	if cfg.Metrics.Addr != "" {
		metricsServer = serveMetrics(cfg.Metrics.Addr, m, logger)
	}

	logger.Info("bot is now running, press CTRL-C to exit")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.Info("shutting down")

	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown failed", zap.Error(err))
		}
	}

	return nil
}

// newKittyClient uses the HTTP registry when configured
func newKittyClient(cfg *config.Config, logger *zap.Logger) (kitties.Client, error) {
	if cfg.Kitties.BaseURL == "" {
		logger.Warn("no KITTY_API_URL found, feeding will fail until kitties are registered")
		return kitties.NewStaticClient(nil), nil
	}

	client, err := kitties.New(&kitties.Config{
		BaseURL:    cfg.Kitties.BaseURL,
		HttpClient: &http.Client{Timeout: cfg.Kitties.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kitty client: %w", err)
	}
	return client, nil
}

// connectRedis returns nil when Redis is not configured or unreachable
func connectRedis(redisURL string, logger *zap.Logger) *redis.Client {
	if redisURL == "" {
		logger.Info("no REDIS_URL found, using in-memory repository")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("failed to parse Redis URL, falling back to in-memory repository", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Warn("failed to connect to Redis, falling back to in-memory repository", zap.Error(err))
		return nil
	}

	logger.Info("using Redis for persistence", zap.String("addr", opts.Addr))
	return client
}

func serveMetrics(addr string, m *metrics.Metrics, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	logger.Info("serving metrics", zap.String("addr", addr))
	return server
}
