package token

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energoledger/energoledger/internal/config"
)

func newTestCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	codec, err := NewCodec(config.Config{
		AuthJWTSecret: "test-secret",
		AuthTokenTTL:  ttl,
	})
	require.NoError(t, err)
	return codec
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec(config.Config{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	signed, expiresAt, err := codec.Issue(snowflake.ID(12345), true)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(12345), claims.UserID)
	assert.True(t, claims.TwoFactor)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw=%q", raw)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	other := newTestCodec(t, time.Hour)
	other.secret = []byte("different-secret")

	signed, _, err := codec.Issue(snowflake.ID(1), false)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	codec := newTestCodec(t, time.Millisecond)

	signed, _, err := codec.Issue(snowflake.ID(1), false)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
