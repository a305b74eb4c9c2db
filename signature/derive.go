package signature

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the length in bytes of every derived signing key.
const KeySize = 32

// SigningLabel is the context label used to derive request signing keys.
const SigningLabel = "hmac-signing"

// ErrMissingInput is returned when a key derivation input is empty.
var ErrMissingInput = errors.New("signature: missing key derivation input")

// DeriveKey derives a KeySize-byte key from the client credentials and a
// context label.
//
// The construction is HKDF-SHA256 with the extract step's roles swapped:
// the auth token is the HMAC key and accountID+workspaceID (no separator)
// is the message, i.e. prk = HMAC(authToken, accountID||workspaceID).
// RFC 5869 would key the HMAC with the salt instead. The deployed backend
// and every other SDK derive keys this way, so the ordering must not change.
// The expand step is standard: T(i) = HMAC(prk, T(i-1) || label || i).
func DeriveKey(authToken, accountID, workspaceID, label string) ([]byte, error) {
	inputs := [...]struct{ name, value string }{
		{"auth token", authToken},
		{"account id", accountID},
		{"workspace id", workspaceID},
		{"label", label},
	}
	for _, in := range inputs {
		if strings.TrimSpace(in.value) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, in.name)
		}
	}

	// hkdf.Extract(h, secret, salt) computes HMAC(salt, secret); passing the
	// token as "salt" yields the swapped ordering described above.
	prk := hkdf.Extract(sha256.New, []byte(accountID+workspaceID), []byte(authToken))

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.Expand(sha256.New, prk, []byte(label)), key); err != nil {
		return nil, fmt.Errorf("signature: expand key: %w", err)
	}
	return key, nil
}
