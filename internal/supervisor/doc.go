// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

/*
Package supervisor provides process supervision for Aniscout using suture v4.

Long-running services are organized into two layers:

	RootSupervisor ("aniscout")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheMaintenanceService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff once FailureThreshold is
exceeded; failures in one layer do not restart the other. Supervisor events
are logged through sutureslog, which main wires to the zerolog-backed slog
handler from the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg.TreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewCacheMaintenanceService(caches, disk, interval, logger))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

See the services subpackage for the service wrappers.
*/
package supervisor
