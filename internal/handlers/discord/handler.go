package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/cooldown"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	"github.com/KirkDiggler/crypto-zombies/internal/handlers/discord/utils"
	"github.com/KirkDiggler/crypto-zombies/internal/services"
	"github.com/KirkDiggler/crypto-zombies/internal/services/registry"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// CommandName is the root slash command
const CommandName = "zombie"

// commandTimeout bounds one interaction, kitty lookups included
const commandTimeout = 10 * time.Second

// Handler handles all Discord interactions
type Handler struct {
	registry registry.Service
	limiter  *RateLimiter
	clock    cooldown.TimeProvider
	logger   *zap.Logger
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
	RateLimiter     *RateLimiter // Optional - no limit if nil
	Clock           cooldown.TimeProvider
	Logger          *zap.Logger
}

// Response is what a command answers with
type Response struct {
	Embed     *discordgo.MessageEmbed
	Ephemeral bool
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.ServiceProvider == nil || cfg.ServiceProvider.RegistryService == nil {
		panic("registry service is required")
	}

	h := &Handler{
		registry: cfg.ServiceProvider.RegistryService,
		limiter:  cfg.RateLimiter,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}
	if h.clock == nil {
		h.clock = cooldown.NewSystemTimeProvider()
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	h.logger = h.logger.Named("discord")

	return h
}

// Commands describes the slash commands the handler serves
func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	zombieID := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "zombie",
		Description: "Zombie ID",
		Required:    true,
		MinValue:    ptr(0),
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Raise, breed and battle zombies",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "create",
					Description: "Raise your first zombie",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Zombie name",
							Required:    true,
							MaxLength:   64,
						},
					},
				},
				{
					Name:        "feed",
					Description: "Feed a zombie on a kitty to breed a new one",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						zombieID,
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "kitty",
							Description: "Kitty ID in the kitty registry",
							Required:    true,
							MinValue:    ptr(0),
						},
					},
				},
				{
					Name:        "attack",
					Description: "Attack another player's zombie",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						zombieID,
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "target",
							Description: "Defending zombie ID",
							Required:    true,
							MinValue:    ptr(0),
						},
					},
				},
				{
					Name:        "levelup",
					Description: "Pay to raise a zombie one level",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						zombieID,
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "fee",
							Description: "Payment in gwei",
							Required:    true,
							MinValue:    ptr(0),
						},
					},
				},
				{
					Name:        "show",
					Description: "Show a zombie",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{zombieID},
				},
				{
					Name:        "list",
					Description: "List a horde",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Whose horde (defaults to yours)",
						},
					},
				},
				{
					Name:        "balance",
					Description: "Show collected fees (treasurer only)",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "withdraw",
					Description: "Withdraw collected fees (treasurer only)",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
	}
}

// RegisterCommands registers slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	for _, cmd := range h.Commands() {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		h.logger.Info("registered command", zap.String("command", cmd.Name), zap.String("guild_id", guildID))
	}

	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != CommandName || len(data.Options) == 0 {
		return
	}

	caller := entities.Address(utils.InteractionUserID(i))

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	resp := h.Execute(ctx, caller, data.Options[0])

	var flags discordgo.MessageFlags
	if resp.Ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{resp.Embed},
			Flags:  flags,
		},
	})
	if err != nil {
		h.logger.Error("failed to respond to interaction",
			zap.String("subcommand", data.Options[0].Name),
			zap.Error(err))
	}
}

func ptr(v float64) *float64 {
	return &v
}
