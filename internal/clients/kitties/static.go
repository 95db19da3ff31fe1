package kitties

import (
	"context"
	"math/big"
	"sync"

	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
)

// StaticClient serves kitties from memory. Unknown ids behave like an
// unavailable registry.
type StaticClient struct {
	mu      sync.RWMutex
	kitties map[uint64]*big.Int
}

// NewStaticClient creates a client seeded with genes keyed by kitty id
func NewStaticClient(genes map[uint64]uint64) *StaticClient {
	c := &StaticClient{kitties: make(map[uint64]*big.Int, len(genes))}
	for id, g := range genes {
		c.kitties[id] = new(big.Int).SetUint64(g)
	}
	return c
}

// Put adds or replaces a kitty
func (c *StaticClient) Put(id uint64, genes *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.kitties[id] = new(big.Int).Set(genes)
}

func (c *StaticClient) GetKitty(ctx context.Context, id uint64) (*Kitty, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.OracleUnavailable(err, "kitty lookup cancelled")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	genes, ok := c.kitties[id]
	if !ok {
		return nil, zerr.OracleUnavailable(nil, "kitty not in registry").
			WithMeta("kitty_id", id)
	}

	return &Kitty{ID: id, Genes: new(big.Int).Set(genes)}, nil
}
