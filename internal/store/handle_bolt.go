// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/finchest/finchest/models"
)

const (
	handleDBFile  = "handles.db"
	handleBucket  = "vault"
	activeHandle  = "active_handle"
	openTimeout   = time.Second
	dbFileMode    = 0o600
	dataDirMode   = 0o700
)

// boltHandleStore is the bbolt-backed implementation of [HandleStore].
type boltHandleStore struct {
	db *bolt.DB
}

// NewHandleStore opens (creating if necessary) the handle database inside
// dataDir and returns a [HandleStore] backed by it.
func NewHandleStore(dataDir string) (HandleStore, error) {
	if err := os.MkdirAll(dataDir, dataDirMode); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dataDir, handleDBFile), dbFileMode, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open handle store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(handleBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init handle store bucket: %w", err)
	}

	return &boltHandleStore{db: db}, nil
}

// Save implements [HandleStore].
func (s *boltHandleStore) Save(ctx context.Context, handle models.StorageHandle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(handle)
	if err != nil {
		return fmt.Errorf("marshal handle: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(handleBucket)).Put([]byte(activeHandle), raw)
	})
	if err != nil {
		return fmt.Errorf("save handle: %w", err)
	}

	return nil
}

// Load implements [HandleStore].
func (s *boltHandleStore) Load(ctx context.Context) (models.StorageHandle, error) {
	if err := ctx.Err(); err != nil {
		return models.StorageHandle{}, err
	}

	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(handleBucket)).Get([]byte(activeHandle)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return models.StorageHandle{}, fmt.Errorf("load handle: %w", err)
	}
	if raw == nil {
		return models.StorageHandle{}, ErrHandleNotFound
	}

	var handle models.StorageHandle
	if err := json.Unmarshal(raw, &handle); err != nil {
		return models.StorageHandle{}, fmt.Errorf("unmarshal handle: %w", err)
	}

	return handle, nil
}

// Delete implements [HandleStore].
func (s *boltHandleStore) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(handleBucket)).Delete([]byte(activeHandle))
	})
	if err != nil {
		return fmt.Errorf("delete handle: %w", err)
	}

	return nil
}

// Close implements [HandleStore].
func (s *boltHandleStore) Close() error {
	return s.db.Close()
}
