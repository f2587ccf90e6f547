// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package config provides centralized configuration management for NewsPrep.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/newsprep/config.yaml
 3. Environment variables, mapped explicitly to koanf paths

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8000), HTTP_TIMEOUT
  - REQUEST_TIMEOUT (default: 10s), GENERATION_TIMEOUT (default: 120s)

Artifacts:
  - EMBEDDINGS_PATH, ARTICLE_IDS_PATH: NPY matrix and id array
  - COLLAB_PATH, POPULARITY_PATH, TOPIC_KEYWORDS_PATH: JSON tables

Models:
  - EMBEDDER_PROVIDER (none, hash, openai, ollama), EMBEDDER_BASE_URL, EMBEDDER_MODEL
  - LLM_PROVIDER (none, openai, ollama), LLM_BASE_URL, LLM_MODEL

Recommendation:
  - RECOMMEND_ALPHA, RECOMMEND_BETA: default hybrid weights (alpha+beta <= 1)

Events:
  - EVENTS_TRANSPORT (channel, nats), NATS_URL, EVENTS_JOURNAL_PATH

Comma-separated values are accepted for list settings such as CORS_ORIGINS.

# Validation

Load returns an error naming the offending environment variable when a value
is out of range, for example hybrid weights whose sum exceeds one or a chunk
overlap that is not smaller than the chunk size.
*/
package config
