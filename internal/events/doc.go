// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package events is the interaction event pipeline.
//
// Flow:
//
//	POST /api/events -> Ingestor.Submit -> Bus.Publish -> Watermill router
//	    -> Consumer.Handle -> Journal.Append (best effort)
//	                       -> DB.RecordInteraction (retried)
//
// The bus runs over an in-process gochannel by default, or NATS JetStream
// when events.transport is "nats". With events.synchronous the Ingestor
// calls the Consumer directly and the router is not started.
package events
