// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package embedding

import "errors"

var (
	// ErrArtifactMissing indicates an embedding artifact file does not exist.
	// Callers degrade the embedding-dependent features instead of failing.
	ErrArtifactMissing = errors.New("embedding artifact missing")

	// ErrArtifactInvalid indicates an artifact exists but cannot be decoded,
	// or the matrix and identifier array disagree in length.
	ErrArtifactInvalid = errors.New("embedding artifact invalid")
)
