package crypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/finchest/finchest/models"
)

// Tests use deliberately cheap Argon2id costs; the scheme is identical to
// production, only slower parameters are swapped for fast ones.
func testCipher() Cipher {
	return NewCipher(1, 8*1024, 1)
}

func TestGenerateParams_SaltLengthAndRandomness(t *testing.T) {
	c := testCipher()

	p1, err := c.GenerateParams()
	if err != nil {
		t.Fatalf("GenerateParams error: %v", err)
	}
	p2, err := c.GenerateParams()
	if err != nil {
		t.Fatalf("GenerateParams error: %v", err)
	}

	if len(p1.Salt) != 16 {
		t.Fatalf("salt length = %d, want 16", len(p1.Salt))
	}
	if bytes.Equal(p1.Salt, p2.Salt) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
	if p1.Algorithm != models.KDFAlgorithmArgon2id {
		t.Fatalf("algorithm = %q, want %q", p1.Algorithm, models.KDFAlgorithmArgon2id)
	}
	if p1.KeyLen != 32 {
		t.Fatalf("key length = %d, want 32", p1.KeyLen)
	}
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	c := testCipher()

	params := models.DerivationParams{
		Algorithm: models.KDFAlgorithmArgon2id,
		Salt:      bytes.Repeat([]byte{0xAB}, 16),
		Time:      1,
		Memory:    8 * 1024,
		Threads:   1,
		KeyLen:    32,
	}

	k1 := c.DeriveKey("correct horse battery staple", params)
	k2 := c.DeriveKey("correct horse battery staple", params)

	if len(k1) != 32 {
		t.Fatalf("key length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected keys to match for same password+params")
	}
}

func TestDeriveKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	c := testCipher()

	p1 := models.DerivationParams{Salt: bytes.Repeat([]byte{0x01}, 16), Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32}
	p2 := models.DerivationParams{Salt: bytes.Repeat([]byte{0x02}, 16), Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32}

	k1 := c.DeriveKey("same password", p1)
	k2 := c.DeriveKey("same password", p2)

	if bytes.Equal(k1, k2) {
		t.Fatalf("expected different keys for different salts")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := testCipher()
	plaintext := []byte(`{"accounts":[],"settings":{"currency":"EUR"}}`)

	blob, params, err := c.Encrypt(plaintext, "correct-horse")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if bytes.Contains(blob, plaintext) {
		t.Fatalf("ciphertext contains plaintext")
	}

	got, err := c.Decrypt(blob, params, "correct-horse")
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round-trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestDecrypt_WrongPasswordAlwaysFails(t *testing.T) {
	c := testCipher()
	plaintext := []byte("family budget 2026")

	blob, params, err := c.Encrypt(plaintext, "right-password")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	_, err = c.Decrypt(blob, params, "wrong-password")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("error = %v, want ErrAuthenticationFailed", err)
	}
}

func TestOpen_TamperedCiphertextFails(t *testing.T) {
	c := testCipher()

	blob, params, err := c.Encrypt([]byte("payload"), "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	blob[len(blob)-1] ^= 0xFF // flip one tag bit

	_, err = c.Decrypt(blob, params, "pw")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("error = %v, want ErrAuthenticationFailed", err)
	}
}

func TestOpen_TruncatedBlobFails(t *testing.T) {
	c := testCipher()
	key := bytes.Repeat([]byte{0x2A}, 32)

	_, err := c.Open([]byte{0x01, 0x02}, key)
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("error = %v, want ErrAuthenticationFailed", err)
	}
}

func TestSeal_NonceMakesOutputNonDeterministic(t *testing.T) {
	c := testCipher()
	key := bytes.Repeat([]byte{0x11}, 32)

	b1, err := c.Seal([]byte("same plaintext"), key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	b2, err := c.Seal([]byte("same plaintext"), key)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if bytes.Equal(b1, b2) {
		t.Fatalf("expected distinct blobs for distinct nonces")
	}
}

func TestDecrypt_UnknownAlgorithmFailsClosed(t *testing.T) {
	c := testCipher()

	params := models.DerivationParams{Algorithm: "scrypt", Salt: bytes.Repeat([]byte{0x01}, 16)}
	_, err := c.Decrypt([]byte("blob"), params, "pw")
	if !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Fatalf("error = %v, want ErrUnsupportedAlgorithm", err)
	}
}
