// SPDX-License-Identifier: Apache-2.0

// Package codec turns application state into the on-disk vault
// representation and back.
//
// It has two layers. The snapshot layer produces a canonical JSON encoding
// of [models.Snapshot]: top-level fields are emitted as a key-sorted object,
// nil entity slices are normalized to empty ones, and unknown top-level
// fields survive a decode→encode round-trip via Snapshot.Extra. Canonical
// here means re-encoding an unchanged snapshot yields byte-identical
// output, which is what makes auto-save idempotent.
//
// The envelope layer frames the (possibly encrypted) snapshot bytes with a
// magic tag, a format version, an encryption flag, and — for encrypted
// vaults — the cleartext key-derivation parameters. The frame is validated
// before any decode or decrypt attempt.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/finchest/finchest/models"
)

// Known top-level snapshot fields. Anything else found in a vault payload is
// preserved verbatim in Snapshot.Extra.
const (
	fieldAccounts     = "accounts"
	fieldTransactions = "transactions"
	fieldGoals        = "goals"
	fieldRecurring    = "recurring"
	fieldSettings     = "settings"
)

var knownFields = map[string]struct{}{
	fieldAccounts:     {},
	fieldTransactions: {},
	fieldGoals:        {},
	fieldRecurring:    {},
	fieldSettings:     {},
}

// EncodeSnapshot encodes the snapshot into its canonical byte form.
func EncodeSnapshot(s models.Snapshot) ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(knownFields)+len(s.Extra))

	put := func(name string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		fields[name] = raw
		return nil
	}

	// nil slices normalize to empty ones so the encoding of "no accounts"
	// is a single canonical form.
	if err := put(fieldAccounts, nonNil(s.Accounts)); err != nil {
		return nil, err
	}
	if err := put(fieldTransactions, nonNil(s.Transactions)); err != nil {
		return nil, err
	}
	if err := put(fieldGoals, nonNil(s.Goals)); err != nil {
		return nil, err
	}
	if err := put(fieldRecurring, nonNil(s.Recurring)); err != nil {
		return nil, err
	}
	if err := put(fieldSettings, s.Settings); err != nil {
		return nil, err
	}

	for name, raw := range s.Extra {
		if _, known := knownFields[name]; known {
			continue
		}
		fields[name] = compact(raw)
	}

	return marshalSorted(fields)
}

// DecodeSnapshot decodes canonical snapshot bytes. Unknown top-level fields
// are captured into Snapshot.Extra; anything that is not a JSON object
// fails with [ErrMalformed].
func DecodeSnapshot(data []byte) (models.Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		return models.Snapshot{}, ErrMalformed
	}

	var s models.Snapshot
	take := func(name string, target any) error {
		field, ok := raw[name]
		if !ok {
			return nil
		}
		delete(raw, name)
		if err := json.Unmarshal(field, target); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrMalformed, name, err)
		}
		return nil
	}

	if err := take(fieldAccounts, &s.Accounts); err != nil {
		return models.Snapshot{}, err
	}
	if err := take(fieldTransactions, &s.Transactions); err != nil {
		return models.Snapshot{}, err
	}
	if err := take(fieldGoals, &s.Goals); err != nil {
		return models.Snapshot{}, err
	}
	if err := take(fieldRecurring, &s.Recurring); err != nil {
		return models.Snapshot{}, err
	}
	if err := take(fieldSettings, &s.Settings); err != nil {
		return models.Snapshot{}, err
	}

	if len(raw) > 0 {
		s.Extra = make(map[string]json.RawMessage, len(raw))
		for name, field := range raw {
			s.Extra[name] = compact(field)
		}
	}

	s.Accounts = nonNil(s.Accounts)
	s.Transactions = nonNil(s.Transactions)
	s.Goals = nonNil(s.Goals)
	s.Recurring = nonNil(s.Recurring)

	return s, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// marshalSorted writes the field map as a JSON object with keys in sorted
// order. encoding/json already sorts map keys, but raw messages must be
// emitted verbatim, so the object is assembled by hand.
func marshalSorted(fields map[string]json.RawMessage) ([]byte, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("encode key %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(fields[name])
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// compact strips insignificant whitespace so preserved unknown fields
// re-encode identically regardless of the source file's formatting.
func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return append(json.RawMessage(nil), buf.Bytes()...)
}
