// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool is a package-level pool of reusable SHA-256 hash instances.
// Snapshot sums are computed on every auto-save tick, so instances are
// pooled rather than allocated per call.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// ContentSum computes the SHA-256 digest of data and returns it hex-encoded.
// The sync engine compares sums of canonical snapshot encodings to detect
// "nothing changed" and skip a rewrite of the vault file.
func ContentSum(data []byte) string {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return hex.EncodeToString(sum)
}
