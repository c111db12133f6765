package spatial_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/helper/env"
	"spatialdataapi/src/infra/postgres"
	"spatialdataapi/src/repositories"
	"spatialdataapi/src/services/spatial"
	"spatialdataapi/src/test_artefacts/test_seeder"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ = Describe("PointsInPolygon", func() {
	var (
		pool    *pgxpool.Pool
		seeder  test_seeder.TestSeeder
		service *spatial.SpatialQueryService
		ctx     context.Context
		err     error
	)

	dbHost := env.GetString("TEST_DB_HOST", "localhost")
	dbPort := env.GetString("TEST_DB_PORT", "5432")
	dbName := env.GetString("TEST_DB_NAME", "spatial_test")
	dbUser := env.GetString("TEST_DB_USER", "postgres")
	dbPassword := env.GetString("TEST_DB_PASSWORD", "postgres")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 10)

	squareWKT := "POLYGON((77.59 12.96,77.61 12.96,77.61 12.98,77.59 12.98,77.59 12.96))"

	BeforeEach(func() {
		ctx = context.Background()

		pool, err = postgres.NewPostgresClient(dbHost, dbPort, dbName, dbUser, dbPassword, maxConnections)
		Expect(err).NotTo(HaveOccurred())
		Expect(postgres.EnsureSchema(ctx, pool)).To(Succeed())

		service = spatial.NewSpatialQueryService(
			repositories.NewSpatialQueryRepository(pool),
			repositories.NewPolygonRepository(pool),
		)
		seeder = test_seeder.New(pool)

		seeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		pool.Close()
	})

	When("points lie inside and outside the polygon", func() {
		It("returns only the inside points", func() {
			polygonID := seeder.InsertPolygon(ctx, "District", "", squareWKT)
			insideID := seeder.InsertPoint(ctx, "inside", "", 77.60, 12.97)
			seeder.InsertPoint(ctx, "outside", "", 77.70, 12.97)

			points, err := service.PointsInPolygon(ctx, polygonID)

			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(HaveLen(1))
			Expect(points[0].ID).To(Equal(insideID))
		})
	})

	When("the polygon contains no points", func() {
		It("returns an empty result", func() {
			polygonID := seeder.InsertPolygon(ctx, "Empty District", "", squareWKT)
			seeder.InsertPoint(ctx, "outside", "", 78.0, 13.0)

			points, err := service.PointsInPolygon(ctx, polygonID)

			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(BeEmpty())
		})
	})

	When("the polygon id does not exist", func() {
		It("reports not found", func() {
			_, err := service.PointsInPolygon(ctx, 555555)

			Expect(err).To(MatchError(domain.ErrFeatureNotFound))
		})
	})
})
