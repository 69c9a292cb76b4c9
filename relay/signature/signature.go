package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

/* GitHub-style HMAC-SHA256 request signing.
 * The signature covers the raw, unparsed request body; the header
 * carries it as "sha256=<hex>" (X-Hub-Signature-256) though a bare
 * hex digest is also accepted.
 */

// HeaderPrefix is the algorithm prefix used by GitHub-style signatures
const HeaderPrefix = "sha256="

// Sign computes the hex-encoded HMAC-SHA256 of body keyed with secret
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Header formats a signature the way GitHub sends it
func Header(secret string, body []byte) string {
	return HeaderPrefix + Sign(secret, body)
}

/* Verify checks a supplied signature header against the expected
 * HMAC of the body. Comparison is constant-time to avoid timing
 * side channels. A malformed header is a mismatch, not an error.
 */
func Verify(secret string, body []byte, supplied string) bool {
	if supplied == "" {
		return false
	}

	raw, err := decode(supplied)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	return subtle.ConstantTimeCompare(expected, raw) == 1
}

/* decode strips an "algo=" prefix if present and hex-decodes the
 * remainder. Only sha256 digests are accepted.
 */
func decode(supplied string) ([]byte, error) {
	sig := supplied
	if algo, rest, found := strings.Cut(supplied, "="); found {
		if algo != "sha256" {
			return nil, fmt.Errorf("unsupported signature algorithm: %s", algo)
		}
		sig = rest
	}
	return hex.DecodeString(sig)
}
