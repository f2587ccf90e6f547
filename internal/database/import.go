// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package database

import (
	"context"
	"fmt"
	"os"
)

// importCSVQuery loads a topic-labelled corpus export. All columns are read as
// text so malformed dates and topics become NULL instead of failing the load.
const importCSVQuery = `
INSERT INTO articles (title, text, published_date, topic_id)
SELECT
	title,
	text,
	TRY_CAST(NULLIF(TRIM(published), '') AS TIMESTAMP),
	TRY_CAST(TRY_CAST(NULLIF(TRIM(bertopic_topic), '') AS DOUBLE) AS BIGINT)
FROM read_csv_auto(?, header = true, all_varchar = true)
`

// ImportCSV appends every row of a CSV file with the columns
// title, text, published, bertopic_topic and returns the row count.
func (db *DB) ImportCSV(ctx context.Context, path string) (n int64, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return 0, fmt.Errorf("corpus file %s: %w", path, statErr)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("import", "articles")(&err)

	res, err := db.conn.ExecContext(ctx, importCSVQuery, path)
	if err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", path, err)
	}
	n, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read import row count: %w", err)
	}
	return n, nil
}

// ImportCSVIfEmpty imports path only when the articles table has no rows.
func (db *DB) ImportCSVIfEmpty(ctx context.Context, path string) (int64, error) {
	count, err := db.CountArticles(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	return db.ImportCSV(ctx, path)
}
