package kitties

//go:generate mockgen -destination=mock/mock_client.go -package=mockkitties . Client

import (
	"context"
	"math/big"

	"github.com/KirkDiggler/crypto-zombies/internal/dna"
)

// Client fetches kitties from the external registry
type Client interface {
	GetKitty(ctx context.Context, id uint64) (*Kitty, error)
}

// Kitty is the part of a registry record the zombies care about
type Kitty struct {
	ID    uint64
	Genes *big.Int
}

var modulus = new(big.Int).SetUint64(dna.Modulus)

// DNA reduces the kitty genes to zombie DNA width
func (k *Kitty) DNA() dna.DNA {
	if k == nil || k.Genes == nil {
		return 0
	}

	reduced := new(big.Int).Mod(k.Genes, modulus)
	return dna.DNA(reduced.Uint64())
}
