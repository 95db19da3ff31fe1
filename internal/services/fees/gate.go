package fees

import (
	"context"

	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
)

// DefaultLevelUpFee is 0.001 ether in gwei
const DefaultLevelUpFee entities.Amount = 1_000_000

// Treasury holds collected fees
type Treasury interface {
	Balance(ctx context.Context) (entities.Amount, error)
	Withdraw(ctx context.Context) (entities.Amount, error)
}

// Gate enforces the level up fee and guards the treasury
type Gate struct {
	fee        entities.Amount
	withdrawer entities.Address
	treasury   Treasury
}

type GateConfig struct {
	// Fee is the price of one level. Zero selects DefaultLevelUpFee.
	Fee entities.Amount

	// Withdrawer is the only caller allowed to see or drain the treasury
	Withdrawer entities.Address

	Treasury Treasury
}

// NewGate creates a fee gate
func NewGate(cfg *GateConfig) *Gate {
	if cfg == nil {
		panic("fee gate config is required")
	}
	if cfg.Treasury == nil {
		panic("treasury is required")
	}

	fee := cfg.Fee
	if fee == 0 {
		fee = DefaultLevelUpFee
	}

	return &Gate{
		fee:        fee,
		withdrawer: cfg.Withdrawer,
		treasury:   cfg.Treasury,
	}
}

// Fee returns the price of one level
func (g *Gate) Fee() entities.Amount {
	return g.fee
}

// Withdrawer returns the privileged address
func (g *Gate) Withdrawer() entities.Address {
	return g.withdrawer
}

// Check rejects payments below the level up fee
func (g *Gate) Check(paid entities.Amount) error {
	if paid < g.fee {
		return zerr.InsufficientFeef("paid %d gwei, level up costs %d gwei", paid, g.fee).
			WithMeta("paid", paid).
			WithMeta("fee", g.fee)
	}
	return nil
}

// Authorize rejects anyone but the withdrawer
func (g *Gate) Authorize(caller entities.Address) error {
	if g.withdrawer == entities.ZeroAddress || caller != g.withdrawer {
		return zerr.Unauthorizedf("caller '%s' may not manage the treasury", caller).
			WithMeta("caller", caller)
	}
	return nil
}

// ViewBalance returns the collected fees
func (g *Gate) ViewBalance(ctx context.Context, caller entities.Address) (entities.Amount, error) {
	if err := g.Authorize(caller); err != nil {
		return 0, err
	}

	balance, err := g.treasury.Balance(ctx)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to read treasury")
	}
	return balance, nil
}

// Withdraw drains the treasury and returns the amount paid out
func (g *Gate) Withdraw(ctx context.Context, caller entities.Address) (entities.Amount, error) {
	if err := g.Authorize(caller); err != nil {
		return 0, err
	}

	amount, err := g.treasury.Withdraw(ctx)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to drain treasury")
	}
	return amount, nil
}
