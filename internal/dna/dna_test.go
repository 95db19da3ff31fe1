package dna_test

import (
	"testing"

	"github.com/KirkDiggler/crypto-zombies/internal/dna"
	"github.com/stretchr/testify/assert"
)

func TestCodec_FromName(t *testing.T) {
	codec := dna.NewCodec("seed")

	first := codec.FromName("ZombieName")
	assert.Equal(t, first, codec.FromName("ZombieName"), "same seed and name must derive the same dna")
	assert.Less(t, uint64(first), dna.Modulus)

	assert.NotEqual(t, first, dna.NewCodec("other-seed").FromName("ZombieName"))
	assert.NotEqual(t, first, codec.FromName("OtherZombie"))
}

func TestMix(t *testing.T) {
	tests := []struct {
		name    string
		a, b    dna.DNA
		species dna.Species
		want    dna.DNA
	}{
		{
			name:    "average with kitty marker",
			a:       1000_0000_0000_0000,
			b:       3000_0000_0000_0000,
			species: dna.SpeciesKitty,
			want:    2000_0000_0000_0099,
		},
		{
			name:    "zombie marker clears last digits",
			a:       1234_5678_9012_3456,
			b:       1234_5678_9012_3456,
			species: dna.SpeciesZombie,
			want:    1234_5678_9012_3400,
		},
		{
			name:    "largest parents stay in range",
			a:       dna.DNA(dna.Modulus - 1),
			b:       dna.DNA(dna.Modulus - 1),
			species: dna.SpeciesKitty,
			want:    dna.DNA(dna.Modulus - 1),
		},
		{
			name:    "odd parents round down",
			a:       1,
			b:       2,
			species: dna.SpeciesZombie,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dna.Mix(tt.a, tt.b, tt.species)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.species, got.Species())
			assert.Less(t, uint64(got), dna.Modulus)
		})
	}
}

func TestDigits(t *testing.T) {
	d := dna.DNA(123)

	digits := d.Digits()
	assert.Len(t, digits, dna.Digits)
	assert.Equal(t, uint8(1), digits[13])
	assert.Equal(t, uint8(2), digits[14])
	assert.Equal(t, uint8(3), digits[15])
	assert.Equal(t, uint8(0), digits[0])
	assert.Equal(t, "0000000000000123", d.String())
}

func TestDecode(t *testing.T) {
	traits := dna.Decode(dna.DNA(1203045067089099))

	// pairs: 12 03 04 50 67 08 90, then 9 and species 99
	assert.Equal(t, uint8(12%7+1), traits.Head)
	assert.Equal(t, uint8(3%11+1), traits.Eyes)
	assert.Equal(t, uint8(4%6+1), traits.Shirt)
	assert.Equal(t, uint16(180), traits.SkinHue)
	assert.Equal(t, uint16(241), traits.EyeHue)
	assert.Equal(t, uint16(28), traits.ClothesHue)
	assert.Equal(t, uint8(90), traits.Pattern)
	assert.Equal(t, uint8(9), traits.Aura)
	assert.Equal(t, dna.SpeciesKitty, traits.Species)

	assert.Equal(t, traits, dna.Decode(dna.DNA(1203045067089099)), "decode is pure")
}
