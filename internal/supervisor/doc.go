// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package supervisor provides process supervision for NewsPrep using suture v4.

The tree organizes long-running services into three layers:

	RootSupervisor ("newsprep")
	├── DataSupervisor ("data-layer")
	│   └── IndexBuilderService (if rag.enabled)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (unless events.synchronous)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with exponential backoff. Each layer counts
failures independently, so an event router that cannot reach NATS keeps
restarting without taking the HTTP server down.

Supervisor events are logged through sutureslog, bridged to zerolog by
logging.NewSlogLogger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)

The service wrappers live in the services subpackage.
*/
package supervisor
