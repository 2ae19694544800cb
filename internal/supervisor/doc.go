// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

/*
Package supervisor provides process supervision for VistaGuide using suture v4.

The supervisor tree organizes long-running services into two layers for
failure isolation:

	RootSupervisor ("vistaguide")
	├── StorageSupervisor ("storage-layer")
	│   └── BadgerGCService (if the preferences database is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted automatically with exponential backoff.
A crash in storage maintenance never takes down the HTTP server, and
each layer counts failures independently.

Supervision events (starts, stops, failures, restarts) are logged through
slog via the sutureslog adapter.

Basic setup:

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddStorageService(services.NewBadgerGCService(db, time.Hour))

	return tree.Serve(ctx)

Service return values determine supervisor behavior: nil means the service
stopped cleanly and is not restarted, any other error triggers a restart
subject to the backoff policy.
*/
package supervisor
