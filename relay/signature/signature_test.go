package signature_test

import (
	"strings"
	"testing"

	"github.com/marcelsud/webhook-relay/relay/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	body := []byte(`{"ref":"refs/heads/main"}`)

	t.Run("success - deterministic", func(t *testing.T) {
		sig1 := signature.Sign("s3cr3t", body)
		sig2 := signature.Sign("s3cr3t", body)
		assert.Equal(t, sig1, sig2)
		assert.Len(t, sig1, 64) // hex-encoded SHA-256
	})

	t.Run("different secrets produce different signatures", func(t *testing.T) {
		assert.NotEqual(t, signature.Sign("s3cr3t", body), signature.Sign("other", body))
	})

	t.Run("header carries the sha256 prefix", func(t *testing.T) {
		header := signature.Header("s3cr3t", body)
		require.True(t, strings.HasPrefix(header, signature.HeaderPrefix))
		assert.Equal(t, signature.Sign("s3cr3t", body), strings.TrimPrefix(header, signature.HeaderPrefix))
	})
}

func TestVerify(t *testing.T) {
	secret := "s3cr3t"
	body := []byte(`{"ref":"refs/heads/main","pusher":{"name":"alice"}}`)

	t.Run("success - prefixed header", func(t *testing.T) {
		assert.True(t, signature.Verify(secret, body, signature.Header(secret, body)))
	})

	t.Run("success - bare hex", func(t *testing.T) {
		assert.True(t, signature.Verify(secret, body, signature.Sign(secret, body)))
	})

	t.Run("failure - tampered body", func(t *testing.T) {
		header := signature.Header(secret, body)
		tampered := append([]byte{}, body...)
		tampered[0] ^= 0x01
		assert.False(t, signature.Verify(secret, tampered, header))
	})

	t.Run("failure - tampered signature", func(t *testing.T) {
		header := []byte(signature.Header(secret, body))
		// Flip one hex digit
		last := header[len(header)-1]
		if last == 'a' {
			header[len(header)-1] = 'b'
		} else {
			header[len(header)-1] = 'a'
		}
		assert.False(t, signature.Verify(secret, body, string(header)))
	})

	t.Run("failure - wrong secret", func(t *testing.T) {
		assert.False(t, signature.Verify("other", body, signature.Header(secret, body)))
	})

	t.Run("failure - empty header", func(t *testing.T) {
		assert.False(t, signature.Verify(secret, body, ""))
	})

	t.Run("failure - unsupported algorithm prefix", func(t *testing.T) {
		assert.False(t, signature.Verify(secret, body, "sha1="+signature.Sign(secret, body)))
	})

	t.Run("failure - garbage header", func(t *testing.T) {
		assert.False(t, signature.Verify(secret, body, "sha256=not-hex-at-all"))
	})
}
