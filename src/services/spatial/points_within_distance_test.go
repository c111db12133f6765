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

var _ = Describe("PointsWithinDistance", func() {
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

	When("points exist both near and far from the query location", func() {
		It("returns only the points inside the radius", func() {
			// ARRANGE: one point at the query location, one ~290 km away.
			nearID := seeder.InsertPoint(ctx, "MG Road", "", 77.5946, 12.9716)
			seeder.InsertPoint(ctx, "Marina Beach", "", 80.2707, 13.0500)

			// ACT
			points, err := service.PointsWithinDistance(ctx, 12.9716, 77.5946, 1000)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(HaveLen(1))
			Expect(points[0].ID).To(Equal(nearID))
			Expect(points[0].Name).To(Equal("MG Road"))
		})
	})

	When("the radius is zero", func() {
		It("still matches a point at the exact query location", func() {
			id := seeder.InsertPoint(ctx, "Origin", "", 77.5946, 12.9716)

			points, err := service.PointsWithinDistance(ctx, 12.9716, 77.5946, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(HaveLen(1))
			Expect(points[0].ID).To(Equal(id))
		})
	})

	When("no point is inside the radius", func() {
		It("returns an empty result", func() {
			seeder.InsertPoint(ctx, "Marina Beach", "", 80.2707, 13.0500)

			points, err := service.PointsWithinDistance(ctx, 12.9716, 77.5946, 1000)

			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(BeEmpty())
		})
	})

	When("the distance is negative", func() {
		It("rejects the query", func() {
			_, err := service.PointsWithinDistance(ctx, 12.9716, 77.5946, -1)

			Expect(err).To(MatchError(domain.ErrMalformedPayload))
		})
	})
})
