package builders_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	"github.com/KirkDiggler/crypto-zombies/internal/handlers/discord/builders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZombieEmbed(t *testing.T) {
	z := &entities.Zombie{ID: 3, Name: "Grim", Level: 2, WinCount: 1, DNA: 1203045067089099}

	embed := builders.NewZombieEmbed(z).AddTraits(z.Traits()).Build()

	assert.Equal(t, "🧟 Grim #3", embed.Title)
	assert.Equal(t, "Level 2 • 1 wins / 0 losses", embed.Description)
	require.NotEmpty(t, embed.Fields)
	assert.Equal(t, "`1203045067089099`", embed.Fields[0].Value)
	assert.Equal(t, "Lineage", embed.Fields[len(embed.Fields)-1].Name)
}

func TestAddReadiness(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	z := &entities.Zombie{Name: "Grim", DNA: dna.DNA(1)}

	ready := builders.NewZombieEmbed(z).AddReadiness(now, now).Build()
	assert.Equal(t, "✅ ready", ready.Fields[len(ready.Fields)-1].Value)

	waiting := builders.NewZombieEmbed(z).AddReadiness(now.Add(90*time.Second), now).Build()
	assert.Equal(t, "⏳ ready in 1m30s", waiting.Fields[len(waiting.Fields)-1].Value)
}

func TestZombieListEmbed(t *testing.T) {
	empty := builders.ZombieListEmbed("Horde", nil).Build()
	assert.Contains(t, empty.Description, "/zombie create")

	list := builders.ZombieListEmbed("Horde", []*entities.Zombie{
		{ID: 0, Name: "Grim", Level: 1},
		{ID: 4, Name: "NoName", Level: 3},
	}).Build()
	assert.Equal(t, "**#0** Grim • level 1\n**#4** NoName • level 3", list.Description)
	assert.Equal(t, "Total: 2", list.Footer.Text)
}
