// Package signature derives per-client signing keys and computes the
// HMAC-SHA256 request signatures expected by the ingestion API.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Algorithm is the value sent in the algorithm header of signed requests.
const Algorithm = "sha256"

// Identity is the credential triple a signature is bound to.
type Identity struct {
	AuthToken   string
	AccountID   string
	WorkspaceID string
}

// Signer computes request signatures for a fixed identity.
type Signer struct {
	id Identity
}

// NewSigner returns a Signer bound to id.
func NewSigner(id Identity) *Signer {
	return &Signer{id: id}
}

// Sign returns the signature of body for the signer's identity.
func (s *Signer) Sign(body []byte) (string, error) {
	return Sign(body, s.id)
}

// Sign returns hex(HMAC-SHA256(DeriveKey(id, SigningLabel), body)) as 64
// lowercase hex characters. body must be the exact bytes sent on the wire.
// The key is derived on every call and never cached.
func Sign(body []byte, id Identity) (string, error) {
	key, err := DeriveKey(id.AuthToken, id.AccountID, id.WorkspaceID, SigningLabel)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil)), nil
}
