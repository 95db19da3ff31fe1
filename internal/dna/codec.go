package dna

import (
	"github.com/cespare/xxhash/v2"
)

// Codec derives fingerprints from names.
// The seed is shared by every derivation, so a name always maps to the same
// fingerprint for a given deployment. The result is predictable.
type Codec struct {
	seed string
}

// NewCodec creates a codec bound to seed
func NewCodec(seed string) *Codec {
	return &Codec{seed: seed}
}

// FromName derives a fingerprint from a zombie name
func (c *Codec) FromName(name string) DNA {
	d := xxhash.New()
	_, _ = d.WriteString(c.seed)
	_, _ = d.WriteString(name)

	return New(d.Sum64())
}

// Traits is the decoded view of a fingerprint.
// Each field reads two consecutive digits; the last pair is the species.
type Traits struct {
	Head       uint8
	Eyes       uint8
	Shirt      uint8
	SkinHue    uint16
	EyeHue     uint16
	ClothesHue uint16
	Pattern    uint8
	Aura       uint8
	Species    Species
}

// number of variants for the shaped traits
const (
	headVariants  = 7
	eyeVariants   = 11
	shirtVariants = 6
)

// Decode splits a fingerprint into its trait fields
func Decode(d DNA) Traits {
	digits := d.Digits()
	pair := func(i int) uint16 {
		return uint16(digits[i])*10 + uint16(digits[i+1])
	}

	return Traits{
		Head:       uint8(pair(0)%headVariants) + 1,
		Eyes:       uint8(pair(2)%eyeVariants) + 1,
		Shirt:      uint8(pair(4)%shirtVariants) + 1,
		SkinHue:    pair(6) * 360 / 100,
		EyeHue:     pair(8) * 360 / 100,
		ClothesHue: pair(10) * 360 / 100,
		Pattern:    uint8(pair(12)),
		Aura:       digits[14],
		Species:    d.Species(),
	}
}
