// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// StorageHandle is an opaque, revocable capability referencing the external
// vault file. Exactly one handle is active at a time. It is created when the
// user configures a new sync file or opens an existing one, persisted to the
// internal handle store so it survives an application restart, and
// invalidated when the user revokes it or points the app at a different
// file.
//
// Only the vault manager mutates handles; the sync engine and the auto-save
// scheduler merely hold the active one.
type StorageHandle struct {
	// ID is a UUID assigned when the handle is granted. It ties log entries
	// and persisted state to one grant, so a re-acquired handle for the same
	// path is still distinguishable from the old one.
	ID string `json:"id"`
	// Path is the absolute filesystem location of the vault file.
	Path string `json:"path"`
	// GrantedAt records when the user granted access.
	GrantedAt time.Time `json:"granted_at"`
}

// IsZero reports whether the handle is the absent value.
func (h StorageHandle) IsZero() bool {
	return h.ID == ""
}
