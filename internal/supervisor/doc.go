// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

/*
Package supervisor runs the collector's long-lived services under a suture
supervisor tree.

Tree Structure:

	zetta-collector (root)
	├── collection-layer
	│   └── zetta-poller (services.CollectorService)
	└── api-layer
	    └── http-server (services.HTTPServerService)

The two layers are isolated: a crashing HTTP server is restarted without
interrupting the poll loop, and the API keeps serving the last snapshot
while the poller restarts.

Failure Handling:

Each supervisor restarts failed services with suture's failure decay. After
FailureThreshold failures inside the decay window the supervisor backs off
for FailureBackoff before the next restart. Supervisor events are logged
through sutureslog into zerolog (see logging.NewSlogLogger).

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCollectionService(services.NewCollectorService(svc))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
