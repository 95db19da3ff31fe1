package errors_test

import (
	stderrors "errors"
	"testing"

	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := zerr.NotReadyf("zombie %d is cooling down", 3).WithMeta("zombie_id", uint64(3))

	wrapped := zerr.Wrapf(base, "failed to feed zombie %d", 3)

	assert.True(t, zerr.IsNotReady(wrapped))
	assert.Equal(t, zerr.CodeNotReady, zerr.GetCode(wrapped))
	assert.Equal(t, uint64(3), zerr.GetMeta(wrapped)["zombie_id"])
	assert.ErrorIs(t, wrapped, base)
}

func TestWrap_ForeignErrorIsUnknown(t *testing.T) {
	wrapped := zerr.Wrap(stderrors.New("boom"), "store failed")

	assert.Equal(t, zerr.CodeUnknown, zerr.GetCode(wrapped))
	assert.Equal(t, "store failed: boom", wrapped.Error())
	assert.Nil(t, zerr.Wrap(nil, "nothing"))
}

func TestOracleUnavailable(t *testing.T) {
	err := zerr.OracleUnavailable(stderrors.New("connection refused"), "kitty 7 unavailable")
	assert.True(t, zerr.IsOracleUnavailable(err))

	err = zerr.OracleUnavailable(nil, "kitty registry returned no genes")
	assert.True(t, zerr.IsOracleUnavailable(err))
	assert.Nil(t, err.Cause)
}

func TestCodesAreDistinct(t *testing.T) {
	errs := map[zerr.Code]error{
		zerr.CodeDuplicateCreation: zerr.DuplicateCreation("0xabc"),
		zerr.CodeNotOwner:          zerr.NotOwnerf("not yours"),
		zerr.CodeSelfAttack:        zerr.SelfAttackf("own zombie"),
		zerr.CodeInsufficientFee:   zerr.InsufficientFeef("too little"),
		zerr.CodeUnauthorized:      zerr.Unauthorizedf("withdrawer only"),
		zerr.CodeConflict:          zerr.Conflictf("zombie 3 changed"),
	}

	for code, err := range errs {
		for other := range errs {
			assert.Equal(t, code == other, zerr.Is(err, other), "code %s vs %s", code, other)
		}
	}
}
