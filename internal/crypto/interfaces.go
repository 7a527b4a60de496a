// SPDX-License-Identifier: Apache-2.0

package crypto

import "github.com/finchest/finchest/models"

// Cipher is the password-based authenticated-encryption boundary of the
// sync engine. It knows nothing about files, snapshots, or the UI — its
// single job is turning passwords into keys and plaintext into
// tamper-evident ciphertext.
//
// Scheme:
//
//	params     = GenerateParams()                 (per-file random salt)
//	key        = DeriveKey(password, params)      (Argon2id)
//	blob       = Seal(plaintext, key)             (AES-256-GCM, nonce ‖ ct ‖ tag)
//	plaintext  = Open(blob, key)                  (verifies the auth tag)
//
// Params are public and travel in cleartext next to the ciphertext; the
// derived key exists only in memory and is never persisted.
type Cipher interface {
	// GenerateParams returns fresh derivation parameters with a new random
	// salt and the configured Argon2id costs.
	GenerateParams() (models.DerivationParams, error)

	// DeriveKey derives the symmetric key from the password using the given
	// parameters. Deterministic: same password + params, same key.
	DeriveKey(password string, params models.DerivationParams) []byte

	// Seal encrypts plaintext with AES-256-GCM under key and returns
	// nonce ‖ ciphertext ‖ tag.
	Seal(plaintext, key []byte) ([]byte, error)

	// Open decrypts a Seal blob. A wrong key, a tampered blob, or a blob
	// too short to contain a nonce all return [ErrAuthenticationFailed] —
	// the caller cannot and must not tell those cases apart.
	Open(blob, key []byte) ([]byte, error)

	// Encrypt is the one-shot save path: generate params, derive the key,
	// seal. Returns the blob and the params to store alongside it.
	Encrypt(plaintext []byte, password string) ([]byte, models.DerivationParams, error)

	// Decrypt is the one-shot load path: derive the key from password and
	// params, then open the blob.
	Decrypt(blob []byte, params models.DerivationParams, password string) ([]byte, error)
}
