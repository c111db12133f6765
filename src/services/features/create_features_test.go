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

var _ = Describe("CreateFeatures", func() {
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

	When("creating a single point", func() {
		It("persists it and returns one generated id", func() {
			// ARRANGE
			input := stubs.NewPointInputStub().
				WithName("Tech Park").
				WithGeometry(stubs.PointGeometry(77.5946, 12.9716)).
				Get()

			// ACT
			ids, err := pointService.CreateFeatures(ctx, []domain.FeatureInput{input})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(HaveLen(1))

			stored, err := pointService.GetFeature(ctx, ids[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("Tech Park"))

			point, ok := stored.Geometry.Geometry().(orb.Point)
			Expect(ok).To(BeTrue())
			Expect(point.Lon()).To(BeNumerically("~", 77.5946, 1e-9))
			Expect(point.Lat()).To(BeNumerically("~", 12.9716, 1e-9))
		})
	})

	When("creating several features in one batch", func() {
		It("returns the generated ids in input order", func() {
			first := stubs.NewPointInputStub().WithName("first").Get()
			second := stubs.NewPointInputStub().WithName("second").Get()
			third := stubs.NewPointInputStub().WithName("third").Get()

			ids, err := pointService.CreateFeatures(ctx, []domain.FeatureInput{first, second, third})

			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(HaveLen(3))

			for i, name := range []string{"first", "second", "third"} {
				stored, err := pointService.GetFeature(ctx, ids[i])
				Expect(err).NotTo(HaveOccurred())
				Expect(stored.Name).To(Equal(name))
			}
		})
	})

	When("the payload omits name and description", func() {
		It("falls back to the kind's default name and an empty description", func() {
			pointInput := stubs.NewPointInputStub().WithoutName().WithoutDescription().Get()
			polygonInput := stubs.NewPolygonInputStub().WithoutName().WithoutDescription().Get()

			pointIDs, err := pointService.CreateFeatures(ctx, []domain.FeatureInput{pointInput})
			Expect(err).NotTo(HaveOccurred())
			polygonIDs, err := polygonService.CreateFeatures(ctx, []domain.FeatureInput{polygonInput})
			Expect(err).NotTo(HaveOccurred())

			storedPoint, err := pointService.GetFeature(ctx, pointIDs[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(storedPoint.Name).To(Equal("Unnamed Point"))
			Expect(storedPoint.Description).To(Equal(""))

			storedPolygon, err := polygonService.GetFeature(ctx, polygonIDs[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(storedPolygon.Name).To(Equal("Unnamed Polygon"))
		})
	})

	When("one feature in the batch has the wrong geometry kind", func() {
		It("persists no rows at all", func() {
			valid := stubs.NewPointInputStub().Get()
			invalid := stubs.NewPointInputStub().
				WithGeometry(stubs.SquareGeometry(77.6, 12.97, 0.01)).
				Get()

			ids, err := pointService.CreateFeatures(ctx, []domain.FeatureInput{valid, invalid, valid})

			Expect(err).To(MatchError(domain.ErrInvalidFeatureType))
			Expect(ids).To(BeNil())
			Expect(seeder.CountRows(ctx, "point_features")).To(BeZero())
		})
	})

	When("a feature has no geometry", func() {
		It("rejects the batch before any write", func() {
			missingGeometry := stubs.NewPointInputStub().WithGeometry(nil).Get()

			_, err := pointService.CreateFeatures(ctx, []domain.FeatureInput{missingGeometry})

			Expect(err).To(MatchError(domain.ErrMalformedPayload))
			Expect(seeder.CountRows(ctx, "point_features")).To(BeZero())
		})
	})

	When("any feature is created", func() {
		It("starts with updated_at equal to or after created_at", func() {
			ids, err := pointService.CreateFeatures(ctx, []domain.FeatureInput{stubs.NewPointInputStub().Get()})
			Expect(err).NotTo(HaveOccurred())

			createdAt, updatedAt := seeder.FeatureTimestamps(ctx, "point_features", ids[0])
			Expect(updatedAt).To(BeTemporally(">=", createdAt))
		})
	})
})
