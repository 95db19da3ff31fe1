package builders

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	"github.com/bwmarrin/discordgo"
)

// EmbedBuilder provides a fluent API for building Discord embeds
type EmbedBuilder struct {
	embed *discordgo.MessageEmbed
}

// NewEmbed creates a new embed builder
func NewEmbed() *EmbedBuilder {
	return &EmbedBuilder{
		embed: &discordgo.MessageEmbed{
			Type:   discordgo.EmbedTypeRich,
			Fields: make([]*discordgo.MessageEmbedField, 0),
		},
	}
}

func (b *EmbedBuilder) Title(title string) *EmbedBuilder {
	b.embed.Title = title
	return b
}

func (b *EmbedBuilder) Description(description string) *EmbedBuilder {
	b.embed.Description = description
	return b
}

func (b *EmbedBuilder) Color(color int) *EmbedBuilder {
	b.embed.Color = color
	return b
}

// Footer sets the embed footer
func (b *EmbedBuilder) Footer(text string) *EmbedBuilder {
	b.embed.Footer = &discordgo.MessageEmbedFooter{Text: text}
	return b
}

// Field adds a field to the embed
func (b *EmbedBuilder) Field(name, value string, inline bool) *EmbedBuilder {
	b.embed.Fields = append(b.embed.Fields, &discordgo.MessageEmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	})
	return b
}

// Build returns the constructed embed
func (b *EmbedBuilder) Build() *discordgo.MessageEmbed {
	return b.embed
}

// Common embed colors
const (
	ColorSuccess = 0x00ff00 // Green
	ColorError   = 0xff0000 // Red
	ColorWarning = 0xffaa00 // Orange
	ColorInfo    = 0x0099ff // Blue
	ColorZombie  = 0x5a8f29 // Rotten green
)

// ErrorEmbed creates a pre-styled error embed
func ErrorEmbed(title, description string) *EmbedBuilder {
	return NewEmbed().
		Title("❌ " + title).
		Description(description).
		Color(ColorError)
}

// WarningEmbed creates a pre-styled warning embed
func WarningEmbed(title, description string) *EmbedBuilder {
	return NewEmbed().
		Title("⚠️ " + title).
		Description(description).
		Color(ColorWarning)
}

// InfoEmbed creates a pre-styled info embed
func InfoEmbed(title, description string) *EmbedBuilder {
	return NewEmbed().
		Title("ℹ️ " + title).
		Description(description).
		Color(ColorInfo)
}

// ZombieEmbedBuilder renders one zombie
type ZombieEmbedBuilder struct {
	*EmbedBuilder
}

// NewZombieEmbed creates a zombie card titled with its name and id
func NewZombieEmbed(z *entities.Zombie) *ZombieEmbedBuilder {
	b := &ZombieEmbedBuilder{EmbedBuilder: NewEmbed().Color(ColorZombie)}
	b.Title(fmt.Sprintf("🧟 %s #%d", z.Name, z.ID))
	b.Description(fmt.Sprintf("Level %d • %d wins / %d losses", z.Level, z.WinCount, z.LossCount))
	b.Field("DNA", "`"+z.DNA.String()+"`", false)
	return b
}

// AddTraits adds the decoded appearance
func (b *ZombieEmbedBuilder) AddTraits(t dna.Traits) *ZombieEmbedBuilder {
	b.Field("Head", fmt.Sprintf("#%d", t.Head), true)
	b.Field("Eyes", fmt.Sprintf("#%d", t.Eyes), true)
	b.Field("Shirt", fmt.Sprintf("#%d", t.Shirt), true)
	b.Field("Colors", fmt.Sprintf("skin %d° • eyes %d° • clothes %d°", t.SkinHue, t.EyeHue, t.ClothesHue), false)
	if t.Species == dna.SpeciesKitty {
		b.Field("Lineage", "🐱 kitty hybrid", true)
	}
	return b
}

// AddReadiness states when the zombie can act again
func (b *ZombieEmbedBuilder) AddReadiness(readyAt, now time.Time) *ZombieEmbedBuilder {
	if !now.Before(readyAt) {
		b.Field("Status", "✅ ready", true)
		return b
	}
	wait := readyAt.Sub(now).Round(time.Second)
	b.Field("Status", fmt.Sprintf("⏳ ready in %s", wait), true)
	return b
}

// ZombieListEmbed summarises an owner's horde
func ZombieListEmbed(title string, list []*entities.Zombie) *EmbedBuilder {
	b := NewEmbed().Title(title).Color(ColorZombie)
	if len(list) == 0 {
		return b.Description("No zombies yet. Use `/zombie create` to rise your first.")
	}

	lines := make([]string, 0, len(list))
	for _, z := range list {
		lines = append(lines, fmt.Sprintf("**#%d** %s • level %d", z.ID, z.Name, z.Level))
	}
	b.Description(strings.Join(lines, "\n"))
	b.Footer(fmt.Sprintf("Total: %d", len(list)))
	return b
}
