// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package services adapts NewsPrep components to suture.Service.

  - HTTPServerService: ListenAndServe/Shutdown of the API server
  - EventRouterService: Run/Close of the Watermill event router
  - IndexBuilderService: startup build and periodic rebuild of the
    assistant's retrieval index

Each wrapper blocks in Serve until its context is canceled and returns
ctx.Err() on a clean stop, which suture treats as a normal exit. Any other
error triggers a restart under the supervisor's backoff policy.
*/
package services
