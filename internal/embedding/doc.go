// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package embedding loads the precomputed article embedding matrix.

Two NPY artifacts are read: an N x D float matrix and a length-N identifier
array. Every row is normalized to unit L2 norm at load time so that a dot
product equals cosine similarity; rows that are exactly zero stay zero and
score zero against every query.

	store := embedding.NewStore(cfg.Artifacts.EmbeddingsPath, cfg.Artifacts.IDsPath, logger)
	if err := store.Load(); errors.Is(err, embedding.ErrArtifactMissing) {
	    // serve without embedding-dependent features
	}

Supported NPY layouts: format versions 1 to 3, C order, little-endian
float32/float64 matrices and int32/int64/uint32/uint64/float64 id arrays.
*/
package embedding
