// SPDX-License-Identifier: Apache-2.0

package models

// KDFAlgorithmArgon2id is the only key-derivation algorithm currently
// written into vault headers. The field exists so a future algorithm change
// is an additive format evolution rather than a breaking one.
const KDFAlgorithmArgon2id = "argon2id"

// DerivationParams are the public parameters needed to re-derive the vault
// key from a user-supplied password. They travel in cleartext alongside the
// ciphertext — none of them is a secret. The derived key itself is never
// persisted anywhere.
type DerivationParams struct {
	// Algorithm identifies the KDF ([KDFAlgorithmArgon2id]).
	Algorithm string `json:"algorithm"`
	// Salt is the per-file random salt.
	Salt []byte `json:"salt"`
	// Time is the Argon2 time cost (iterations).
	Time uint32 `json:"time"`
	// Memory is the Argon2 memory cost in KiB.
	Memory uint32 `json:"memory"`
	// Threads is the Argon2 parallelism degree.
	Threads uint8 `json:"threads"`
	// KeyLen is the derived key length in bytes.
	KeyLen uint32 `json:"key_len"`
}

// EncryptionState describes whether the active vault file is encrypted and,
// if so, with which derivation parameters. Invariant: once Enabled is true
// for a file, no code path writes that file as plaintext again.
type EncryptionState struct {
	Enabled bool
	Params  DerivationParams
}

// PendingEncryptedFile holds raw ciphertext captured while the UI collects
// a password from the user. It exists only between "file opened, found
// encrypted" and "password submitted or flow cancelled", and is discarded
// either way.
type PendingEncryptedFile struct {
	Handle     StorageHandle
	Ciphertext []byte
	Params     DerivationParams
}
