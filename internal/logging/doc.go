// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package logging provides centralized zerolog-based structured logging for NewsPrep.
//
// The package owns a single global zerolog.Logger configured once from main and
// exposes level helpers, context-aware loggers carrying request and correlation
// IDs, and two bridges for libraries that bring their own logging interface:
// an slog.Handler (used by sutureslog in the supervisor tree) and a Watermill
// LoggerAdapter (used by the event bus and router).
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("path", cfg.Artifacts.EmbeddingsPath).Msg("Embeddings loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Metadata lookup failed")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// Components receive a zerolog.Logger by value in their constructors and derive
// a child with a "component" field, so tests can pass zerolog.Nop() or a
// buffer-backed logger from NewTestLogger.
package logging
