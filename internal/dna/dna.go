// Package dna encodes zombie fingerprints: a fixed 16 digit decimal number
// held in a uint64 whose digits are read as ordered trait fields.
package dna

import (
	"fmt"
)

const (
	// Digits is the fixed width of every fingerprint
	Digits = 16

	// Modulus bounds a fingerprint to Digits decimal digits
	Modulus uint64 = 10_000_000_000_000_000
)

// DNA is a zombie fingerprint, always below Modulus
type DNA uint64

// Species marks where a fingerprint came from, stored in its last two digits
type Species uint8

const (
	// SpeciesZombie marks fingerprints bred from a battle win
	SpeciesZombie Species = 0

	// SpeciesKitty marks fingerprints bred from feeding on a kitty
	SpeciesKitty Species = 99
)

// New reduces any value to a valid fingerprint
func New(v uint64) DNA {
	return DNA(v % Modulus)
}

// Digits returns the ordered trait digits, most significant first
func (d DNA) Digits() [Digits]uint8 {
	var out [Digits]uint8
	v := uint64(d) % Modulus
	for i := Digits - 1; i >= 0; i-- {
		out[i] = uint8(v % 10)
		v /= 10
	}
	return out
}

// Species returns the marker held in the last two digits
func (d DNA) Species() Species {
	return Species(uint64(d) % 100)
}

// String renders the fingerprint zero padded to its full width
func (d DNA) String() string {
	return fmt.Sprintf("%016d", uint64(d)%Modulus)
}

// Mix breeds a child fingerprint from a and b.
// The child is the average of both parents with the species marker written
// into its last two digits.
func Mix(a, b DNA, species Species) DNA {
	x, y := uint64(a)%Modulus, uint64(b)%Modulus

	// both halves stay below Modulus so the sum cannot overflow
	child := x/2 + y/2 + (x%2+y%2)/2
	child = child - child%100 + uint64(species)

	return New(child)
}
