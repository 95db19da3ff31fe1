package dice_test

import (
	"testing"

	"github.com/KirkDiggler/crypto-zombies/internal/dice"
	"github.com/KirkDiggler/crypto-zombies/internal/dice/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualMockRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantErr    bool
	}{
		{
			name:       "single d100 roll",
			setupRolls: []int{70},
			count:      1,
			sides:      100,
			wantTotal:  70,
			wantRolls:  []int{70},
		},
		{
			name:       "2d6+3",
			setupRolls: []int{4, 5},
			count:      2,
			sides:      6,
			bonus:      3,
			wantTotal:  12, // 4+5+3
			wantRolls:  []int{4, 5},
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{10},
			count:      2,
			sides:      6,
			wantErr:    true,
		},
		{
			name:       "invalid roll for die size",
			setupRolls: []int{101},
			count:      1,
			sides:      100,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
		})
	}
}

func TestManualMockRoller_SequentialRolls(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{100, 1})
	roller.SetNextRoll(42)

	assert.Equal(t, 3, roller.Remaining())

	for _, want := range []int{100, 1, 42} {
		result, err := roller.Roll(1, 100, 0)
		require.NoError(t, err)
		assert.Equal(t, want, result.Total)
	}

	_, err := roller.Roll(1, 100, 0)
	assert.Error(t, err)
}

func TestSeededRoller_Replays(t *testing.T) {
	a := dice.NewSeededRoller(7)
	b := dice.NewSeededRoller(7)

	for i := 0; i < 20; i++ {
		ra, err := a.Roll(1, 100, 0)
		require.NoError(t, err)
		rb, err := b.Roll(1, 100, 0)
		require.NoError(t, err)

		assert.Equal(t, ra.Rolls, rb.Rolls)
		assert.GreaterOrEqual(t, ra.Total, 1)
		assert.LessOrEqual(t, ra.Total, 100)
	}
}

func TestRandomRoller_BasicFunctionality(t *testing.T) {
	roller := dice.NewRandomRoller()

	result, err := roller.Roll(2, 6, 3)
	require.NoError(t, err)
	assert.Len(t, result.Rolls, 2)
	assert.GreaterOrEqual(t, result.Total, 5) // minimum: 1+1+3
	assert.LessOrEqual(t, result.Total, 15)   // maximum: 6+6+3
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 6, result.Sides)

	_, err = roller.Roll(0, 6, 0)
	assert.ErrorIs(t, err, dice.ErrInvalidCount)

	_, err = roller.Roll(1, 0, 0)
	assert.ErrorIs(t, err, dice.ErrInvalidSides)
}

func TestRollResult_String(t *testing.T) {
	r := &dice.RollResult{Total: 12, Rolls: []int{4, 5}, Bonus: 3, Count: 2, Sides: 6}
	assert.Equal(t, "2d6+3 [4,5] = 12", r.String())

	r = &dice.RollResult{Total: 70, Rolls: []int{70}, Count: 1, Sides: 100}
	assert.Equal(t, "1d100 [70] = 70", r.String())
}
