package crypto

import "errors"

var (
	// ErrAuthenticationFailed means the password is wrong or the ciphertext
	// was tampered with or truncated. The AEAD primitive cannot distinguish
	// these cases, so neither does the API: callers surface a single
	// "wrong password or corrupted file" condition.
	ErrAuthenticationFailed = errors.New("authentication failed: wrong password or corrupted data")

	// ErrUnsupportedAlgorithm means the derivation params name a KDF this
	// build does not implement (a file from a newer app version).
	ErrUnsupportedAlgorithm = errors.New("unsupported key derivation algorithm")
)
