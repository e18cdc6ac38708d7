// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

/*
Package services provides suture.Service wrappers for Aniscout components.

Each wrapper implements suture's Serve(ctx) error and fmt.Stringer:

HTTP Server (HTTPServerService):
  - Runs ListenAndServe and shuts down gracefully when the context ends
  - Listener failures are returned so the supervisor restarts the server

Cache Maintenance (CacheMaintenanceService):
  - Sweeps expired entries from the AniList media and translation caches
  - Runs BadgerDB value-log GC when the disk translation tier is enabled
  - GC failures are logged and retried on the next tick
*/
package services
