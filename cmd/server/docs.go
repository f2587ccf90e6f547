// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// @title NewsPrep API
// @version 1.0
// @description Search, recommendation and assistant API over a news article corpus.
// @description
// @description ## Rate Limiting
// @description
// @description Default: 100 requests per minute per IP. Endpoints that call the
// @description language model allow 20 per minute; event ingestion allows 600.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "VALIDATION_ERROR",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "meta": {"request_id": "...", "timestamp": "2026-03-01T12:34:56Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/newsprep/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /api
// @schemes http https
//
// @tag.name Core
// @tag.description Health and readiness
//
// @tag.name Articles
// @tag.description Articles and topics
//
// @tag.name Recommend
// @tag.description Content, topic, collaborative and hybrid recommendations
//
// @tag.name Events
// @tag.description Interaction tracking
//
// @tag.name Search
// @tag.description Keyword and semantic search
//
// @tag.name Assistant
// @tag.description Question answering, summaries and quizzes
package main
