// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/finchest/finchest/models"
)

const (
	// saltSize is the per-file random salt length in bytes.
	saltSize = 16
	// keyLen is the derived key length: 32 bytes for AES-256.
	keyLen = 32
	// nonceSize is the AES-GCM nonce length (12 bytes standard).
	nonceSize = 12
)

// vaultCipher is the private implementation of [Cipher].
type vaultCipher struct {
	// Argon2id tuning parameters for newly generated params. Stored in the
	// struct so they can be adjusted per deployment target (e.g. mobile vs.
	// desktop). Existing files always use the costs from their own header.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewCipher constructs a [Cipher] with the given Argon2id costs for newly
// encrypted vaults. Zero values fall back to the OWASP-recommended
// parameters (1 iteration, 64 MiB, 4 threads).
func NewCipher(argonTime, argonMemory uint32, argonThreads uint8) Cipher {
	if argonTime == 0 {
		argonTime = 1
	}
	if argonMemory == 0 {
		argonMemory = 64 * 1024 // 64 MiB
	}
	if argonThreads == 0 {
		argonThreads = 4
	}
	return &vaultCipher{
		argonTime:    argonTime,
		argonMemory:  argonMemory,
		argonThreads: argonThreads,
	}
}

// GenerateParams implements [Cipher]. It reads a fresh random salt from the
// OS CSPRNG and pairs it with the configured Argon2id costs.
func (c *vaultCipher) GenerateParams() (models.DerivationParams, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return models.DerivationParams{}, fmt.Errorf("generate salt: %w", err)
	}

	return models.DerivationParams{
		Algorithm: models.KDFAlgorithmArgon2id,
		Salt:      salt,
		Time:      c.argonTime,
		Memory:    c.argonMemory,
		Threads:   c.argonThreads,
		KeyLen:    keyLen,
	}, nil
}

// DeriveKey implements [Cipher]. It runs Argon2id with the costs carried in
// params, not the cipher's own configuration, so files written under older
// cost settings keep decrypting.
func (c *vaultCipher) DeriveKey(password string, params models.DerivationParams) []byte {
	kl := params.KeyLen
	if kl == 0 {
		kl = keyLen
	}
	return argon2.IDKey([]byte(password), params.Salt, params.Time, params.Memory, params.Threads, kl)
}

// Seal implements [Cipher]. The result layout is
// nonce (12 bytes) ‖ ciphertext ‖ auth tag (16 bytes).
func (c *vaultCipher) Seal(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open implements [Cipher]. Any failure to authenticate — wrong key,
// tampering, or a blob shorter than a nonce — is reported as
// [ErrAuthenticationFailed].
func (c *vaultCipher) Open(blob, key []byte) ([]byte, error) {
	if len(blob) < nonceSize {
		return nil, ErrAuthenticationFailed
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

// Encrypt implements [Cipher].
func (c *vaultCipher) Encrypt(plaintext []byte, password string) ([]byte, models.DerivationParams, error) {
	params, err := c.GenerateParams()
	if err != nil {
		return nil, models.DerivationParams{}, err
	}

	blob, err := c.Seal(plaintext, c.DeriveKey(password, params))
	if err != nil {
		return nil, models.DerivationParams{}, err
	}

	return blob, params, nil
}

// Decrypt implements [Cipher].
func (c *vaultCipher) Decrypt(blob []byte, params models.DerivationParams, password string) ([]byte, error) {
	if params.Algorithm != models.KDFAlgorithmArgon2id {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, params.Algorithm)
	}

	return c.Open(blob, c.DeriveKey(password, params))
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != keyLen {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", keyLen, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return gcm, nil
}
