package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// SearchEvent is one AI search as recorded in the search log
type SearchEvent struct {
	Query       string
	ResultCount int
	AddedCount  int
	SourceCount int
	At          time.Time
}

// PopularSearch is an aggregated row of the search log
type PopularSearch struct {
	Query       string    `json:"query"`
	Searches    int       `json:"searches"`
	TotalAdded  int       `json:"total_added"`
	LastSearch  time.Time `json:"last_search"`
	ExampleText string    `json:"example_text"`
}

// SearchRecorder stores search events for later analysis.
type SearchRecorder interface {
	RecordSearch(ctx context.Context, ev SearchEvent) error
	PopularSearches(ctx context.Context, limit int) ([]PopularSearch, error)
}

type searchLog struct {
	db *sql.DB
}

func connectDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newSearchLog(ctx context.Context, db *sql.DB) (*searchLog, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS "SearchLog" (
			id BIGSERIAL PRIMARY KEY,
			query TEXT NOT NULL,
			"normalizedQuery" TEXT NOT NULL,
			"resultCount" INTEGER NOT NULL,
			"addedCount" INTEGER NOT NULL,
			"sourceCount" INTEGER NOT NULL,
			"createdAt" TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create SearchLog table: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_searchlog_normalized ON "SearchLog"("normalizedQuery")`); err != nil {
		return nil, fmt.Errorf("failed to create SearchLog index: %w", err)
	}
	return &searchLog{db: db}, nil
}

func (l *searchLog) RecordSearch(ctx context.Context, ev SearchEvent) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO "SearchLog" (query, "normalizedQuery", "resultCount", "addedCount", "sourceCount", "createdAt")
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.Query, nameKey(ev.Query), ev.ResultCount, ev.AddedCount, ev.SourceCount, ev.At,
	)
	return err
}

// PopularSearches groups the log by normalized query, most frequent first.
func (l *searchLog) PopularSearches(ctx context.Context, limit int) ([]PopularSearch, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT
			"normalizedQuery",
			COUNT(*) AS searches,
			COALESCE(SUM("addedCount"), 0) AS total_added,
			MAX("createdAt") AS last_search,
			MIN(query) AS example_text
		FROM "SearchLog"
		WHERE "normalizedQuery" <> ''
		GROUP BY "normalizedQuery"
		ORDER BY COUNT(*) DESC, MAX("createdAt") DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PopularSearch
	for rows.Next() {
		var p PopularSearch
		if err := rows.Scan(&p.Query, &p.Searches, &p.TotalAdded, &p.LastSearch, &p.ExampleText); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
