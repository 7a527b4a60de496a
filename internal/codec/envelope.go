// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"fmt"

	"github.com/finchest/finchest/models"
)

const (
	// Magic identifies a finchest vault file.
	Magic = "FINCHEST"
	// FormatVersion is the highest envelope version this build writes and
	// reads. Older versions are read; newer ones fail closed.
	FormatVersion = 1
)

// Envelope is the outer frame of a vault file. For encrypted vaults the
// payload is the AEAD blob and KDF carries the cleartext derivation
// parameters; for plaintext vaults the payload is the canonical snapshot
// encoding and KDF is absent.
type Envelope struct {
	Magic     string                   `json:"magic"`
	Version   int                      `json:"version"`
	Encrypted bool                     `json:"encrypted"`
	KDF       *models.DerivationParams `json:"kdf,omitempty"`
	Payload   []byte                   `json:"payload"`

	// Legacy marks a pre-envelope file: a bare JSON snapshot with no frame.
	// Such files decode as plaintext and are upgraded to the framed format
	// on the next save. Never set on files this build writes.
	Legacy bool `json:"-"`
}

// EncodeVaultFile frames payload into the on-disk vault representation.
// kdf must be non-nil exactly when the payload is encrypted.
func EncodeVaultFile(payload []byte, kdf *models.DerivationParams) ([]byte, error) {
	env := Envelope{
		Magic:     Magic,
		Version:   FormatVersion,
		Encrypted: kdf != nil,
		KDF:       kdf,
		Payload:   payload,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode vault envelope: %w", err)
	}
	return data, nil
}

// DecodeVaultFile validates the frame of raw vault bytes. The tag is checked
// before anything else: a wrong magic or a future version fails here, and no
// decrypt or snapshot decode is ever attempted on such a file.
//
// A well-formed JSON object without a magic field is treated as a legacy
// plaintext vault (the whole input becomes the payload). Anything else is
// [ErrMalformed].
func DecodeVaultFile(data []byte) (Envelope, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil || probe == nil {
		return Envelope{}, ErrMalformed
	}

	if _, hasMagic := probe["magic"]; !hasMagic {
		return Envelope{
			Encrypted: false,
			Payload:   append([]byte(nil), data...),
			Legacy:    true,
		}, nil
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if env.Magic != Magic {
		return Envelope{}, ErrMalformed
	}
	if env.Version > FormatVersion || env.Version < 1 {
		return Envelope{}, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, env.Version)
	}
	if env.Encrypted && env.KDF == nil {
		return Envelope{}, fmt.Errorf("%w: encrypted vault without derivation params", ErrMalformed)
	}
	if len(env.Payload) == 0 {
		return Envelope{}, fmt.Errorf("%w: empty payload", ErrMalformed)
	}

	return env, nil
}
