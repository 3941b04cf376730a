package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	primary := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 20, 14, 32, 11, 123456789, time.UTC)

	token := EncodeToken(primary, created)

	gotPrimary, gotCreated, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, gotPrimary.Equal(primary))
	assert.True(t, gotCreated.Equal(created))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2026-08-20T00:00:00Z"))
	_, _, err := DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_UnparseableDates(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("garbage|2026-08-20T00:00:00Z"))
	_, _, err := DecodeToken(token)
	assert.Error(t, err)

	token = base64.StdEncoding.EncodeToString([]byte("2026-08-20T00:00:00Z|garbage"))
	_, _, err = DecodeToken(token)
	assert.Error(t, err)
}

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	occurred := time.Date(2026, 8, 20, 9, 15, 0, 987654321, time.UTC)

	token := EncodeDateBasedToken(occurred)

	got, err := DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, got.Equal(occurred))
}

func TestDecodeDateBasedToken_Invalid(t *testing.T) {
	_, err := DecodeDateBasedToken("%%%")
	assert.Error(t, err)

	token := base64.StdEncoding.EncodeToString([]byte("not a time"))
	_, err = DecodeDateBasedToken(token)
	assert.Error(t, err)
}
