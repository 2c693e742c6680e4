package encrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestAESRoundTrip(t *testing.T) {
	plain := "https://hooks.slack.com/services/T000/B000/XXXX"

	sealed, err := AESEncrypt(testKey, plain)
	require.NoError(t, err)
	assert.NotEqual(t, plain, sealed)

	opened, err := AESDecrypt(testKey, sealed)
	require.NoError(t, err)
	assert.Equal(t, plain, opened)
}

func TestAESNonceMakesOutputDiffer(t *testing.T) {
	a, err := AESEncrypt(testKey, "same input")
	require.NoError(t, err)
	b, err := AESEncrypt(testKey, "same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestAESWrongKey(t *testing.T) {
	sealed, err := AESEncrypt(testKey, "secret")
	require.NoError(t, err)

	_, err = AESDecrypt("ffffffffffffffffffffffffffffffff", sealed)
	assert.Error(t, err)
}

func TestAESBadKeyLength(t *testing.T) {
	_, err := AESEncrypt("short", "secret")
	assert.Error(t, err)
}

func TestAESCiphertextTooShort(t *testing.T) {
	_, err := AESDecrypt(testKey, "YWJj")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestAESBadBase64(t *testing.T) {
	_, err := AESDecrypt(testKey, "not!!base64")
	assert.Error(t, err)
}
