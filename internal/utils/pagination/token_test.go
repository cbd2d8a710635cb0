package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateBasedTokenRoundTrip(t *testing.T) {
	original := time.Date(2025, 6, 14, 9, 30, 15, 123456789, time.UTC)

	token := EncodeDateBasedToken(original)
	decoded, err := DecodeDateBasedToken(token)

	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))
}

func TestDecodeDateBasedToken_InvalidBase64(t *testing.T) {
	_, err := DecodeDateBasedToken("not-base64!!")
	assert.Error(t, err)
}

func TestDecodeDateBasedToken_InvalidDate(t *testing.T) {
	token := EncodeMultiFieldToken("not a date")
	_, err := DecodeDateBasedToken(token)
	assert.Error(t, err)
}

func TestMultiFieldTokenRoundTrip(t *testing.T) {
	fields := []string{"latex60", "2025-06-14T00:00:00Z"}

	token := EncodeMultiFieldToken(fields...)
	decoded, err := DecodeMultiFieldToken(token)

	require.NoError(t, err)
	assert.Equal(t, fields, decoded)
}
