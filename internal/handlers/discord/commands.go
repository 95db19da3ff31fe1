package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
	"github.com/KirkDiggler/crypto-zombies/internal/handlers/discord/builders"
	"github.com/KirkDiggler/crypto-zombies/internal/handlers/discord/utils"
	"github.com/KirkDiggler/crypto-zombies/internal/services/registry"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Execute runs one /zombie subcommand for caller
func (h *Handler) Execute(ctx context.Context, caller entities.Address, sub *discordgo.ApplicationCommandInteractionDataOption) *Response {
	if caller == entities.ZeroAddress {
		return errorResponse("Unknown user", "Could not tell who sent this command.")
	}
	if sub == nil {
		return errorResponse("Unknown command", "Pick one of the /zombie subcommands.")
	}
	if !h.limiter.Allow(ctx, caller) {
		return &Response{
			Embed:     builders.WarningEmbed("Slow down", h.limiter.Message()).Build(),
			Ephemeral: true,
		}
	}

	opts := sub.Options

	var (
		resp *Response
		err  error
	)

	switch sub.Name {
	case "create":
		resp, err = h.create(ctx, caller, opts)
	case "feed":
		resp, err = h.feed(ctx, caller, opts)
	case "attack":
		resp, err = h.attack(ctx, caller, opts)
	case "levelup":
		resp, err = h.levelUp(ctx, caller, opts)
	case "show":
		resp, err = h.show(ctx, opts)
	case "list":
		resp, err = h.list(ctx, caller, opts)
	case "balance":
		resp, err = h.balance(ctx, caller)
	case "withdraw":
		resp, err = h.withdraw(ctx, caller)
	default:
		return errorResponse("Unknown command", fmt.Sprintf("`/zombie %s` is not a command.", sub.Name))
	}

	if err != nil {
		return h.errorFor(sub.Name, err)
	}
	return resp
}

func (h *Handler) create(ctx context.Context, caller entities.Address, opts []*discordgo.ApplicationCommandInteractionDataOption) (*Response, error) {
	receipt, err := h.registry.CreateRandom(ctx, &registry.CreateRandomInput{
		Caller: caller,
		Name:   strings.TrimSpace(utils.StringOption(opts, "name")),
	})
	if err != nil {
		return nil, err
	}

	z := receipt.Zombie
	embed := builders.NewZombieEmbed(z).
		AddTraits(z.Traits()).
		AddReadiness(z.ReadyTime, h.clock.Now())
	embed.Description("A new zombie rises! " + embed.Build().Description)

	return &Response{Embed: embed.Build()}, nil
}

func (h *Handler) feed(ctx context.Context, caller entities.Address, opts []*discordgo.ApplicationCommandInteractionDataOption) (*Response, error) {
	zombieID, err := idOption(opts, "zombie")
	if err != nil {
		return nil, err
	}
	kittyID, err := idOption(opts, "kitty")
	if err != nil {
		return nil, err
	}

	receipt, err := h.registry.Feed(ctx, &registry.FeedInput{
		Caller:   caller,
		ZombieID: zombieID,
		KittyID:  kittyID,
	})
	if err != nil {
		return nil, err
	}

	child := receipt.Created
	embed := builders.NewZombieEmbed(child).
		AddTraits(child.Traits()).
		AddReadiness(child.ReadyTime, h.clock.Now())
	embed.Footer(fmt.Sprintf("#%d fed on kitty #%d", receipt.Zombie.ID, kittyID))

	return &Response{Embed: embed.Build()}, nil
}

func (h *Handler) attack(ctx context.Context, caller entities.Address, opts []*discordgo.ApplicationCommandInteractionDataOption) (*Response, error) {
	attackerID, err := idOption(opts, "zombie")
	if err != nil {
		return nil, err
	}
	defenderID, err := idOption(opts, "target")
	if err != nil {
		return nil, err
	}

	receipt, err := h.registry.Attack(ctx, &registry.AttackInput{
		Caller:     caller,
		AttackerID: attackerID,
		DefenderID: defenderID,
	})
	if err != nil {
		return nil, err
	}

	outcome := receipt.Outcome
	roll := fmt.Sprintf("Rolled %d, needed %d or less.", outcome.Roll, outcome.Threshold)

	if !outcome.Won {
		embed := builders.WarningEmbed("Defeat", fmt.Sprintf("Zombie #%d was driven back by #%d. %s", attackerID, defenderID, roll))
		return &Response{Embed: embed.Build()}, nil
	}

	child := receipt.Created
	embed := builders.NewZombieEmbed(child).AddTraits(child.Traits())
	embed.Title(fmt.Sprintf("🏆 Victory! %s", embed.Build().Title))
	embed.Footer(fmt.Sprintf("#%d is now level %d. %s", attackerID, receipt.Zombie.Level, roll))

	return &Response{Embed: embed.Build()}, nil
}

func (h *Handler) levelUp(ctx context.Context, caller entities.Address, opts []*discordgo.ApplicationCommandInteractionDataOption) (*Response, error) {
	zombieID, err := idOption(opts, "zombie")
	if err != nil {
		return nil, err
	}
	fee, err := idOption(opts, "fee")
	if err != nil {
		return nil, err
	}

	receipt, err := h.registry.LevelUp(ctx, &registry.LevelUpInput{
		Caller:   caller,
		ZombieID: zombieID,
		Paid:     entities.Amount(fee),
	})
	if err != nil {
		return nil, err
	}

	z := receipt.Zombie
	embed := builders.NewZombieEmbed(z)
	embed.Footer(fmt.Sprintf("Leveled up to %d for %d gwei", z.Level, fee))

	return &Response{Embed: embed.Build()}, nil
}

func (h *Handler) show(ctx context.Context, opts []*discordgo.ApplicationCommandInteractionDataOption) (*Response, error) {
	zombieID, err := idOption(opts, "zombie")
	if err != nil {
		return nil, err
	}

	z, err := h.registry.Get(ctx, zombieID)
	if err != nil {
		return nil, err
	}

	embed := builders.NewZombieEmbed(z).
		AddTraits(z.Traits()).
		AddReadiness(z.ReadyTime, h.clock.Now())
	embed.Field("Owner", fmt.Sprintf("<@%s>", z.Owner), true)

	return &Response{Embed: embed.Build()}, nil
}

func (h *Handler) list(ctx context.Context, caller entities.Address, opts []*discordgo.ApplicationCommandInteractionDataOption) (*Response, error) {
	owner := caller
	if userID := utils.UserOption(opts, "user"); userID != "" {
		owner = entities.Address(userID)
	}

	list, err := h.registry.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	title := "Your horde"
	if owner != caller {
		title = "Horde"
	}
	embed := builders.ZombieListEmbed(title, list)

	return &Response{Embed: embed.Build(), Ephemeral: owner == caller}, nil
}

func (h *Handler) balance(ctx context.Context, caller entities.Address) (*Response, error) {
	amount, err := h.registry.ViewBalance(ctx, caller)
	if err != nil {
		return nil, err
	}

	embed := builders.InfoEmbed("Treasury", fmt.Sprintf("%d gwei collected from level ups.", amount))
	return &Response{Embed: embed.Build(), Ephemeral: true}, nil
}

func (h *Handler) withdraw(ctx context.Context, caller entities.Address) (*Response, error) {
	receipt, err := h.registry.Withdraw(ctx, caller)
	if err != nil {
		return nil, err
	}

	embed := builders.InfoEmbed("Withdrawn", fmt.Sprintf("%d gwei paid out.", receipt.Amount))
	return &Response{Embed: embed.Build(), Ephemeral: true}, nil
}

// idOption reads a required non-negative integer option
func idOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (uint64, error) {
	v, ok := utils.IntOption(opts, name)
	if !ok {
		return 0, zerr.InvalidArgument(fmt.Sprintf("%s is required", name))
	}
	if v < 0 {
		return 0, zerr.InvalidArgument(fmt.Sprintf("%s must not be negative", name))
	}
	return uint64(v), nil
}

// errorFor turns a registry error into a private reply
func (h *Handler) errorFor(subcommand string, err error) *Response {
	meta := zerr.GetMeta(err)

	switch zerr.GetCode(err) {
	case zerr.CodeDuplicateCreation:
		return errorResponse("Already raised", "You already raised your first zombie. Feed or fight to grow the horde.")
	case zerr.CodeNotReady:
		msg := "That zombie is still recovering."
		if readyAt, ok := meta["ready_time"].(time.Time); ok {
			msg = fmt.Sprintf("That zombie is still recovering. Ready <t:%d:R>.", readyAt.Unix())
		}
		return errorResponse("Not ready", msg)
	case zerr.CodeNotOwner:
		return errorResponse("Not yours", "You don't control that zombie.")
	case zerr.CodeSelfAttack:
		return errorResponse("Same horde", "Zombies won't fight their own horde.")
	case zerr.CodeInsufficientFee:
		msg := "That payment is too small."
		if fee, ok := meta["fee"].(entities.Amount); ok {
			msg = fmt.Sprintf("A level up costs %d gwei.", fee)
		}
		return errorResponse("Insufficient fee", msg)
	case zerr.CodeOracleUnavailable:
		h.logger.Warn("kitty registry unavailable", zap.String("subcommand", subcommand), zap.Error(err))
		return errorResponse("Kitty registry unavailable", "The kitty registry can't be reached right now. Try again later.")
	case zerr.CodeUnauthorized:
		return errorResponse("Unauthorized", "Only the treasurer can do that.")
	case zerr.CodeNotFound:
		return errorResponse("Not found", "No zombie with that ID.")
	case zerr.CodeConflict:
		return errorResponse("Busy", "That zombie just changed. Try again.")
	case zerr.CodeInvalidArgument:
		return errorResponse("Invalid input", rootMessage(err))
	}

	h.logger.Error("command failed", zap.String("subcommand", subcommand), zap.Error(err))
	return errorResponse("Something went wrong", "The command failed. Please try again.")
}

// rootMessage is the message of the innermost registry error
func rootMessage(err error) string {
	msg := err.Error()
	for err != nil {
		zErr, ok := err.(*zerr.Error)
		if !ok {
			break
		}
		msg = zErr.Message
		err = zErr.Cause
	}
	return msg
}

func errorResponse(title, description string) *Response {
	return &Response{
		Embed:     builders.ErrorEmbed(title, description).Build(),
		Ephemeral: true,
	}
}
