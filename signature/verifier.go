package signature

import "crypto/hmac"

// Verify checks whether sig is the signature of body for the signer's identity.
func (s *Signer) Verify(body []byte, sig string) bool {
	return Verify(body, s.id, sig)
}

// Verify checks whether sig is the signature of body for id. It returns
// false when the identity is incomplete.
func Verify(body []byte, id Identity, sig string) bool {
	expected, err := Sign(body, id)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(sig))
}
