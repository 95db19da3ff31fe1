package cooldown

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/crypto-zombies/internal/cooldown TimeProvider

type TimeProvider interface {
	Now() time.Time
}

type systemTimeProvider struct{}

// NewSystemTimeProvider returns a provider reading the wall clock in UTC
func NewSystemTimeProvider() TimeProvider {
	return systemTimeProvider{}
}

func (systemTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
