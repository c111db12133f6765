package repositories

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/domain/entities"
	"spatialdataapi/src/geometry"
	"spatialdataapi/src/infra/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeatureRepository owns the rows of one feature kind. The kind fixes both
// the table and the geometry type tag the codec accepts, so a repository
// built for points can never persist a polygon payload.
type FeatureRepository struct {
	pool  *pgxpool.Pool
	kind  domain.FeatureKind
	table string
}

func NewPointRepository(pool *pgxpool.Pool) *FeatureRepository {
	return &FeatureRepository{pool: pool, kind: domain.KindPoint, table: "point_features"}
}

func NewPolygonRepository(pool *pgxpool.Pool) *FeatureRepository {
	return &FeatureRepository{pool: pool, kind: domain.KindPolygon, table: "polygon_features"}
}

func (fr *FeatureRepository) Kind() domain.FeatureKind {
	return fr.kind
}

// CreateMany inserts all features in one transaction and returns the
// generated ids in input order. The whole batch is encoded and validated
// before the transaction opens, so a malformed feature anywhere in the batch
// means zero rows become visible.
func (fr *FeatureRepository) CreateMany(ctx context.Context, inputs []domain.FeatureInput) ([]int64, error) {
	wkts := make([]string, len(inputs))
	for i, input := range inputs {
		encoded, err := geometry.Encode(fr.kind, input.Geometry)
		if err != nil {
			return nil, fmt.Errorf("FeatureRepository.CreateMany - feature %d: %w", i, err)
		}
		wkts[i] = encoded
	}

	tx, err := fr.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("FeatureRepository.CreateMany - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, geom)
		VALUES ($1, $2, ST_GeomFromText($3, 4326))
		RETURNING id`, fr.table)

	ids := make([]int64, 0, len(inputs))
	for i, input := range inputs {
		name := fr.kind.DefaultName()
		if input.Name != nil {
			name = *input.Name
		}

		description := ""
		if input.Description != nil {
			description = *input.Description
		}

		var id int64
		if err := tx.QueryRow(ctx, query, name, description, wkts[i]).Scan(&id); err != nil {
			return nil, fmt.Errorf("FeatureRepository.CreateMany - insert of feature %d failed: %w", i, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("FeatureRepository.CreateMany - commit failed: %w", err)
	}

	return ids, nil
}

// GetAll returns every row of the kind ordered by id. The order is stable
// for a given storage state, nothing stronger is promised.
func (fr *FeatureRepository) GetAll(ctx context.Context) ([]entities.Feature, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, ST_AsGeoJSON(geom), created_at, updated_at
		FROM %s
		ORDER BY id`, fr.table)

	rows, err := fr.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("FeatureRepository.GetAll - query failed: %w", err)
	}
	defer rows.Close()

	features, err := collectFeatures(rows)
	if err != nil {
		return nil, fmt.Errorf("FeatureRepository.GetAll - %w", err)
	}

	return features, nil
}

func (fr *FeatureRepository) GetByID(ctx context.Context, id int64) (*entities.Feature, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, ST_AsGeoJSON(geom), created_at, updated_at
		FROM %s
		WHERE id = $1`, fr.table)

	var feature entities.Feature
	var rawGeom []byte

	err := fr.pool.QueryRow(ctx, query, id).Scan(
		&feature.ID,
		&feature.Name,
		&feature.Description,
		&rawGeom,
		&feature.CreatedAt,
		&feature.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("FeatureRepository.GetByID - %s %d: %w", fr.kind, id, domain.ErrFeatureNotFound)
		}
		return nil, fmt.Errorf("FeatureRepository.GetByID - query failed: %w", err)
	}

	feature.Geometry, err = geometry.Decode(rawGeom)
	if err != nil {
		return nil, fmt.Errorf("FeatureRepository.GetByID - %w", err)
	}

	return &feature, nil
}

// Update replaces the geometry unconditionally and patches name/description
// only when present in the input. updated_at is refreshed on every call.
func (fr *FeatureRepository) Update(ctx context.Context, id int64, input domain.FeatureInput) error {
	var exists bool
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, fr.table)
	if err := fr.pool.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("FeatureRepository.Update - existence check failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("FeatureRepository.Update - %s %d: %w", fr.kind, id, domain.ErrFeatureNotFound)
	}

	encoded, err := geometry.Encode(fr.kind, input.Geometry)
	if err != nil {
		return fmt.Errorf("FeatureRepository.Update - %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    geom = ST_GeomFromText($3, 4326),
		    updated_at = NOW()
		WHERE id = $4`, fr.table)

	tag, err := fr.pool.Exec(ctx, query,
		postgres.NewNullText(input.Name),
		postgres.NewNullText(input.Description),
		encoded,
		id,
	)
	if err != nil {
		return fmt.Errorf("FeatureRepository.Update - update failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Row vanished between the existence check and the update.
		return fmt.Errorf("FeatureRepository.Update - %s %d: %w", fr.kind, id, domain.ErrFeatureNotFound)
	}

	return nil
}

// Delete removes the row permanently. No soft-delete: a repeated delete of
// the same id reports not found.
func (fr *FeatureRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, fr.table)

	tag, err := fr.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("FeatureRepository.Delete - delete failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("FeatureRepository.Delete - %s %d: %w", fr.kind, id, domain.ErrFeatureNotFound)
	}

	return nil
}

// collectFeatures scans feature rows in the column order shared by every
// feature query: id, name, description, ST_AsGeoJSON(geom), created_at,
// updated_at.
func collectFeatures(rows pgx.Rows) ([]entities.Feature, error) {
	features := make([]entities.Feature, 0)

	for rows.Next() {
		var feature entities.Feature
		var rawGeom []byte

		if err := rows.Scan(
			&feature.ID,
			&feature.Name,
			&feature.Description,
			&rawGeom,
			&feature.CreatedAt,
			&feature.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feature row: %w", err)
		}

		geom, err := geometry.Decode(rawGeom)
		if err != nil {
			return nil, err
		}
		feature.Geometry = geom

		features = append(features, feature)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feature rows: %w", err)
	}

	return features, nil
}
