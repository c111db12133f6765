package features_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/helper/env"
	"spatialdataapi/src/infra/postgres"
	"spatialdataapi/src/repositories"
	"spatialdataapi/src/services/features"
	"spatialdataapi/src/test_artefacts/stubs"
	"spatialdataapi/src/test_artefacts/test_seeder"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"
)

var _ = Describe("GetFeature / GetAllFeatures", func() {
	var (
		pool           *pgxpool.Pool
		seeder         test_seeder.TestSeeder
		pointService   *features.FeatureService
		polygonService *features.FeatureService
		ctx            context.Context
		err            error
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

		pointService = features.NewFeatureService(repositories.NewPointRepository(pool), nil)
		polygonService = features.NewFeatureService(repositories.NewPolygonRepository(pool), nil)
		seeder = test_seeder.New(pool)

		seeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		pool.Close()
	})

	When("fetching a feature that does not exist", func() {
		It("reports not found", func() {
			_, err := pointService.GetFeature(ctx, 424242)

			Expect(err).To(MatchError(domain.ErrFeatureNotFound))
		})
	})

	When("listing all features of a kind", func() {
		It("returns them in insertion order", func() {
			inputs := []domain.FeatureInput{
				stubs.NewPointInputStub().WithName("alpha").Get(),
				stubs.NewPointInputStub().WithName("bravo").Get(),
				stubs.NewPointInputStub().WithName("charlie").Get(),
			}
			_, err := pointService.CreateFeatures(ctx, inputs)
			Expect(err).NotTo(HaveOccurred())

			all, err := pointService.GetAllFeatures(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(3))
			Expect(all[0].Name).To(Equal("alpha"))
			Expect(all[1].Name).To(Equal("bravo"))
			Expect(all[2].Name).To(Equal("charlie"))
		})
	})

	When("the table is empty", func() {
		It("returns an empty slice", func() {
			all, err := pointService.GetAllFeatures(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})
	})

	When("fetching a stored polygon", func() {
		It("returns a closed ring", func() {
			input := stubs.NewPolygonInputStub().
				WithGeometry(stubs.SquareGeometry(77.6, 12.97, 0.01)).
				Get()
			ids, err := polygonService.CreateFeatures(ctx, []domain.FeatureInput{input})
			Expect(err).NotTo(HaveOccurred())

			stored, err := polygonService.GetFeature(ctx, ids[0])

			Expect(err).NotTo(HaveOccurred())
			polygon, ok := stored.Geometry.Geometry().(orb.Polygon)
			Expect(ok).To(BeTrue())
			Expect(polygon).To(HaveLen(1))

			ring := polygon[0]
			Expect(len(ring)).To(BeNumerically(">=", 4))
			Expect(ring[0]).To(Equal(ring[len(ring)-1]))
		})
	})

	When("the two kinds share the same database", func() {
		It("never mixes points and polygons", func() {
			_, err := pointService.CreateFeatures(ctx, []domain.FeatureInput{stubs.NewPointInputStub().Get()})
			Expect(err).NotTo(HaveOccurred())
			_, err = polygonService.CreateFeatures(ctx, []domain.FeatureInput{stubs.NewPolygonInputStub().Get()})
			Expect(err).NotTo(HaveOccurred())

			points, err := pointService.GetAllFeatures(ctx)
			Expect(err).NotTo(HaveOccurred())
			polygons, err := polygonService.GetAllFeatures(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(points).To(HaveLen(1))
			Expect(polygons).To(HaveLen(1))
			Expect(points[0].Geometry.Type).To(Equal("Point"))
			Expect(polygons[0].Geometry.Type).To(Equal("Polygon"))
		})
	})
})
