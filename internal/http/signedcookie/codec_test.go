package signedcookie

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec() *Codec {
	return New([]byte("test-secret"), "sid", false, 30*24*time.Hour)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := testCodec()

	v := c.Encode("abc-123")
	id, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
}

func TestDecodeRejectsTampering(t *testing.T) {
	c := testCodec()
	v := c.Encode("abc-123")

	_, err := c.Decode("zzz-999" + v[len("abc-123"):])
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	c := testCodec()
	other := New([]byte("other-secret"), "sid", false, time.Hour)

	_, err := other.Decode(c.Encode("abc-123"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsMalformedValues(t *testing.T) {
	c := testCodec()

	for _, v := range []string{"", "no-signature", ".sig-only", "a.b.c"} {
		_, err := c.Decode(v)
		assert.ErrorIsf(t, err, ErrInvalid, "value %q", v)
	}
}
