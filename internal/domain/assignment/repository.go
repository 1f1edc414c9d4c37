package assignment

import "context"

type FeedRepository interface {
	// ListRows fetches every assignment row whose week year falls inside
	// the inclusive [fromYear, toYear] horizon.
	ListRows(ctx context.Context, fromYear, toYear int) ([]RawRow, error)
	// Upsert writes a planner edit, replacing any existing row for the
	// same (engineer, week, year) cell.
	Upsert(ctx context.Context, row RawRow) (RawRow, error)
	// UpsertMany writes a batch of planner edits in one transaction;
	// either every cell lands or none do.
	UpsertMany(ctx context.Context, rows []RawRow) ([]RawRow, error)
	Delete(ctx context.Context, id string) error
}
