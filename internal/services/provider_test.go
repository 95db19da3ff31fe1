package services_test

import (
	"context"
	"testing"

	mockdice "github.com/KirkDiggler/crypto-zombies/internal/dice/mock"
	"github.com/KirkDiggler/crypto-zombies/internal/events"
	"github.com/KirkDiggler/crypto-zombies/internal/metrics"
	"github.com/KirkDiggler/crypto-zombies/internal/services"
	"github.com/KirkDiggler/crypto-zombies/internal/services/registry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_WiresListeners(t *testing.T) {
	m := metrics.New()
	provider := services.NewProvider(&services.ProviderConfig{
		DiceRoller: mockdice.NewManualMockRoller(),
		Withdrawer: "treasurer",
		Listeners:  []events.EventListener{m},
	})

	svc := provider.RegistryService
	ctx := context.Background()

	_, err := svc.CreateRandom(ctx, &registry.CreateRandomInput{Caller: "alice", Name: "Grim"})
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Minted))

	_, err = svc.ViewBalance(ctx, "treasurer")
	assert.NoError(t, err)
}
