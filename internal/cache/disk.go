// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/blake2b"

	"github.com/tomtom215/aniscout/internal/metrics"
)

// ErrMiss is returned by DiskStore.Get for absent or expired keys.
var ErrMiss = errors.New("cache miss")

// DiskStore is a BadgerDB-backed string cache that survives restarts.
// Entries carry a Badger TTL, so expiry needs no sweeper; RunGC reclaims
// the value log space afterwards.
//
// Keys are stored as prefix + BLAKE2b-256(key). Translation keys are whole
// synopses, which would otherwise bloat the LSM tree and can exceed
// Badger's key size limit.
type DiskStore struct {
	db     *badger.DB
	name   string
	prefix string
	ttl    time.Duration
}

// DiskOptions configures OpenDiskStore.
type DiskOptions struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path string

	// InMemory runs Badger without touching disk (tests).
	InMemory bool

	// Prefix namespaces keys so several stores can share one DB.
	Prefix string

	// TTL for stored entries; zero keeps entries forever.
	TTL time.Duration
}

// OpenDiskStore opens (or creates) the Badger database described by opts.
func OpenDiskStore(name string, opts DiskOptions) (*DiskStore, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Suppress BadgerDB internal logs
	bopts.Logger = nil
	// 16MB value log files (default is 1GB)
	bopts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for %s cache: %w", name, err)
	}
	return &DiskStore{db: db, name: name, prefix: opts.Prefix, ttl: opts.TTL}, nil
}

func (s *DiskStore) diskKey(key string) []byte {
	sum := blake2b.Sum256([]byte(key))
	return append([]byte(s.prefix), sum[:]...)
}

// Get returns the stored value for key or ErrMiss.
func (s *DiskStore) Get(key string) (string, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.diskKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrMiss
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})

	if errors.Is(err, ErrMiss) {
		metrics.RecordCacheLookup(s.name, false)
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	metrics.RecordCacheLookup(s.name, true)
	return value, nil
}

// Set stores value under key with the store TTL.
func (s *DiskStore) Set(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(s.diskKey(key), []byte(value))
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Delete removes key. Missing keys are not an error.
func (s *DiskStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.diskKey(key))
	})
}

// Len counts live keys under the store prefix.
func (s *DiskStore) Len() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(s.prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err == nil {
		metrics.CacheSize.WithLabelValues(s.name).Set(float64(n))
	}
	return n, err
}

// RunGC runs BadgerDB garbage collection to reclaim space from expired and
// deleted entries. badger.ErrNoRewrite means there was nothing to collect.
func (s *DiskStore) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (s *DiskStore) Close() error {
	return s.db.Close()
}
