package test_seeder

import (
	"context"
	"fmt"
	"time"
)

// CountRows returns the row count of a feature table for atomicity checks.
func (ts TestSeeder) CountRows(ctx context.Context, table string) int64 {
	var count int64
	if err := ts.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		panic(fmt.Sprintf("Seeder.CountRows failed: %v", err))
	}
	return count
}

// FeatureTimestamps reads the raw timestamps of one row for invariant checks.
func (ts TestSeeder) FeatureTimestamps(ctx context.Context, table string, id int64) (createdAt time.Time, updatedAt time.Time) {
	query := fmt.Sprintf("SELECT created_at, updated_at FROM %s WHERE id = $1", table)
	if err := ts.pool.QueryRow(ctx, query, id).Scan(&createdAt, &updatedAt); err != nil {
		panic(fmt.Sprintf("Seeder.FeatureTimestamps failed: %v", err))
	}
	return createdAt, updatedAt
}
