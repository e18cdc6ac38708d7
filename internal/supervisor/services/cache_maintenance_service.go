// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ExpiringCache is an in-memory cache with TTL entries.
// Satisfied by *cache.LRU.
type ExpiringCache interface {
	Name() string
	CleanupExpired() int
}

// CollectableStore is an on-disk store whose space is reclaimed by garbage
// collection. Satisfied by *cache.DiskStore.
type CollectableStore interface {
	RunGC() error
	Len() (int, error)
}

// CacheMaintenanceService periodically drops expired memory cache entries
// and runs disk cache garbage collection.
//
// Expired entries are already ignored on read; the sweep only reclaims
// memory held by entries nobody asks for again.
type CacheMaintenanceService struct {
	caches   []ExpiringCache
	disk     CollectableStore
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheMaintenanceService creates the maintenance service. disk may be
// nil when the disk tier is disabled. A non-positive interval defaults to
// ten minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheMaintenanceService(caches []ExpiringCache, disk CollectableStore, interval time.Duration, logger zerolog.Logger) *CacheMaintenanceService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheMaintenanceService{
		caches:   caches,
		disk:     disk,
		interval: interval,
		logger:   logger.With().Str("service", "cache-maintenance").Logger(),
		name:     "cache-maintenance",
	}
}

// Serve implements suture.Service.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	s.logger.Info().
		Int("caches", len(s.caches)).
		Bool("disk", s.disk != nil).
		Dur("interval", s.interval).
		Msg("cache maintenance service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache maintenance service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce performs one sweep over every cache. Disk GC failures are logged
// and retried on the next tick.
func (s *CacheMaintenanceService) RunOnce() {
	start := time.Now()
	removed := 0
	for _, c := range s.caches {
		n := c.CleanupExpired()
		if n > 0 {
			s.logger.Debug().Str("cache", c.Name()).Int("removed", n).Msg("expired entries removed")
		}
		removed += n
	}

	if s.disk != nil {
		if err := s.disk.RunGC(); err != nil {
			s.logger.Warn().Err(err).Msg("disk cache garbage collection failed")
		} else if n, err := s.disk.Len(); err == nil {
			s.logger.Debug().Int("entries", n).Msg("disk cache collected")
		}
	}

	s.logger.Debug().
		Int("removed", removed).
		Dur("duration", time.Since(start)).
		Msg("cache maintenance complete")
}

// String returns the service name for logging.
func (s *CacheMaintenanceService) String() string {
	return s.name
}
