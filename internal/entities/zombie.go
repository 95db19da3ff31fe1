package entities

import (
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/dna"
)

// Address identifies an owner or caller
type Address string

// ZeroAddress is the source of every mint
const ZeroAddress Address = ""

// Amount is a fee amount in gwei
type Amount uint64

// DefaultName is given to zombies bred from feeding or battle
const DefaultName = "NoName"

// Zombie is a registry entry.
// Owner is recorded by the store when the zombie is minted and never changes here.
type Zombie struct {
	ID        uint64
	Owner     Address
	Name      string
	DNA       dna.DNA
	Level     uint32
	ReadyTime time.Time
	WinCount  uint32
	LossCount uint32

	// Revision counts committed writes; the store rejects updates read at an older one
	Revision uint64
}

// Clone returns an independent copy
func (z *Zombie) Clone() *Zombie {
	if z == nil {
		return nil
	}
	c := *z
	return &c
}

// IsOwnedBy reports whether addr owns the zombie
func (z *Zombie) IsOwnedBy(addr Address) bool {
	return z != nil && addr != ZeroAddress && z.Owner == addr
}

// Traits decodes the zombie fingerprint
func (z *Zombie) Traits() dna.Traits {
	return dna.Decode(z.DNA)
}
