package test_seeder

import (
	"context"
	"fmt"
)

// InsertPoint writes a point row directly, bypassing the repository, and
// returns the generated id.
func (ts TestSeeder) InsertPoint(ctx context.Context, name string, description string, lon float64, lat float64) int64 {
	query := `
		INSERT INTO point_features (name, description, geom)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326))
		RETURNING id`

	var id int64
	if err := ts.pool.QueryRow(ctx, query, name, description, lon, lat).Scan(&id); err != nil {
		panic(fmt.Sprintf("Seeder.InsertPoint failed: %v", err))
	}
	return id
}

// InsertPolygon writes a polygon row from a WKT ring string and returns the
// generated id.
func (ts TestSeeder) InsertPolygon(ctx context.Context, name string, description string, wkt string) int64 {
	query := `
		INSERT INTO polygon_features (name, description, geom)
		VALUES ($1, $2, ST_GeomFromText($3, 4326))
		RETURNING id`

	var id int64
	if err := ts.pool.QueryRow(ctx, query, name, description, wkt).Scan(&id); err != nil {
		panic(fmt.Sprintf("Seeder.InsertPolygon failed: %v", err))
	}
	return id
}
