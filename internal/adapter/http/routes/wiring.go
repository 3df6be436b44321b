package routes

import (
	"context"
	"fieldservice/internal/adapter/http/handlers"
	"fieldservice/internal/adapter/persistence/repository"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/infrastructure/ai"
	"fieldservice/internal/infrastructure/cache"
	"fieldservice/internal/infrastructure/catalog"
	"fieldservice/internal/infrastructure/config"
	"fieldservice/internal/infrastructure/database"
	"fieldservice/internal/infrastructure/metrics"
	"fieldservice/internal/infrastructure/payments"
	"fieldservice/internal/infrastructure/scheduler"
	"fieldservice/internal/usecase"
	"fieldservice/internal/usecase/interfaces"
	"log"

	"github.com/redis/go-redis/v9"
)

type handlerSet struct {
	estimates  *handlers.EstimateHandler
	review     *handlers.ReviewHandler
	pricebook  *handlers.PricebookHandler
	jobs       *handlers.JobHandler
	activities *handlers.ActivityHandler
}

type application struct {
	handlers handlerSet
	expiry   *scheduler.ExpiryScheduler
	redis    *redis.Client
}

func (a *application) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("[pricebook][cache] redis close failed: %v", err)
		}
	}
}

func buildApp(ctx context.Context, cfg config.Config, m *metrics.Metrics) *application {
	ddb := database.ConnectDynamoDB(ctx, cfg.AWS)

	estimateRepo := repository.NewEstimateDynamoRepository(ddb)
	activityRepo := repository.NewActivityDynamoRepository(ddb)
	jobRepo := repository.NewJobDynamoRepository(ddb)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	sequenceRepo := repository.NewSequenceDynamoRepository(ddb)

	var catalogRepo interfaces.ICatalogRepository = repository.NewCatalogDynamoRepository(ddb)
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	switch {
	case err != nil:
		log.Printf("[pricebook][cache] redis unavailable, reading catalog from dynamodb: %v", err)
		rdb = nil
	case rdb != nil:
		catalogRepo = cache.NewCatalogCache(catalogRepo, rdb, cfg.Redis.CacheTTL)
	}
	seedCatalog(ctx, cfg.Pricebook.SeedFile, catalogRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments)
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	var reviewer interfaces.IEstimateReviewer
	if cfg.Review.Enabled() {
		reviewer = ai.NewReviewer(cfg.Review)
	} else {
		log.Printf("[review] AI_REVIEW_API_KEY not set, AI review disabled")
	}

	activityUseCase := usecase.NewActivityUseCase(activityRepo, cfg.Estimates.FollowUpDays)
	jobUseCase := usecase.NewJobUseCase(jobRepo, sequenceRepo, activityUseCase)
	pricebookUseCase := usecase.NewPricebookUseCase(catalogRepo, pricing.NewCalculator(cfg.Pricebook.MinimumCharge), m)
	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, sequenceRepo, pricebookUseCase, activityUseCase, jobUseCase, m)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, jobRepo, paymentGateway, activityUseCase, cfg.Payments.SandboxPayerEmail)
	reviewUseCase := usecase.NewReviewUseCase(reviewer, pricebookUseCase, m)

	return &application{
		handlers: handlerSet{
			estimates:  handlers.NewEstimateHandler(estimateUseCase),
			review:     handlers.NewReviewHandler(reviewUseCase),
			pricebook:  handlers.NewPricebookHandler(pricebookUseCase),
			jobs:       handlers.NewJobHandler(jobUseCase, paymentUseCase),
			activities: handlers.NewActivityHandler(activityUseCase),
		},
		expiry: scheduler.NewExpiryScheduler(estimateUseCase, cfg.Estimates.ExpiryCron),
		redis:  rdb,
	}
}

// seedCatalog upserts the catalog from a YAML file. Failures are logged and
// the service keeps whatever the table already holds.
func seedCatalog(ctx context.Context, path string, repo interfaces.ICatalogRepository) {
	if path == "" {
		return
	}
	entries, err := catalog.LoadSeedFile(path)
	if err != nil {
		log.Printf("[pricebook][seed] skipped file=%s err=%v", path, err)
		return
	}
	n, err := catalog.Seed(ctx, repo, entries)
	if err != nil {
		log.Printf("[pricebook][seed] partial seed file=%s written=%d err=%v", path, n, err)
		return
	}
	log.Printf("[pricebook][seed] done file=%s entries=%d", path, n)
}
