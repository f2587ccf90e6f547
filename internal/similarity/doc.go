// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package similarity ranks stored embeddings against a reference vector.

Scores are cosine similarities in [-1, 1]. Stored rows are unit length, so
only the reference vector is normalized per query and each score is a plain
dot product. Ranking is a brute-force O(N*D) scan with no index structure,
which suits corpus-scale matrices of a few thousand rows.

Ordering is deterministic: results are sorted by descending score and ties
keep ascending row order.
*/
package similarity
