package discord_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/cooldown/mocks"
	"github.com/KirkDiggler/crypto-zombies/internal/handlers/discord"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRateLimiter_MemoryWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := mocks.NewMockTimeProvider(ctrl)
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	limiter := discord.NewRateLimiter(&discord.RateLimitConfig{
		MaxRequests: 2,
		Window:      10 * time.Second,
		Store:       discord.NewMemoryRateLimitStore(clock),
	})
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "100"))
	assert.True(t, limiter.Allow(ctx, "100"))
	assert.False(t, limiter.Allow(ctx, "100"))
	assert.True(t, limiter.Allow(ctx, "200"))

	now = now.Add(10 * time.Second)
	assert.True(t, limiter.Allow(ctx, "100"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	var limiter *discord.RateLimiter = discord.NewRateLimiter(&discord.RateLimitConfig{})
	assert.Nil(t, limiter)
	assert.True(t, limiter.Allow(context.Background(), "100"))
}

func TestRedisRateLimitStore(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := discord.NewRedisRateLimitStore(client)
	ctx := context.Background()

	mock.ExpectTxPipeline()
	mock.ExpectIncr("ratelimit:100").SetVal(3)
	mock.ExpectExpireNX("ratelimit:100", 10*time.Second).SetVal(false)
	mock.ExpectTxPipelineExec()

	count, err := store.Increment(ctx, "ratelimit:100", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("redis down")
}

func TestRateLimiter_StoreFailureAllows(t *testing.T) {
	limiter := discord.NewRateLimiter(&discord.RateLimitConfig{
		MaxRequests: 1,
		Window:      10 * time.Second,
		Store:       failingStore{},
	})

	assert.True(t, limiter.Allow(context.Background(), "100"))
	assert.True(t, limiter.Allow(context.Background(), "100"))
}
