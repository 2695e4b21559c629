package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"venue_ops_backend/internal/cache"
	"venue_ops_backend/internal/config"
	"venue_ops_backend/internal/handlers"
	"venue_ops_backend/internal/middleware"
	"venue_ops_backend/internal/queue"
	"venue_ops_backend/internal/repositories"
	"venue_ops_backend/internal/services"
)

// Setup wires repositories, services and handlers onto the engine.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config, cacheClient *cache.Client, publisher *queue.Publisher) {
	// Repositories
	eventRepo := repositories.NewEventRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	checkinRepo := repositories.NewCheckinRepository(db)
	loyaltyRepo := repositories.NewLoyaltyRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	txRunner := repositories.NewTxRunner(db)

	// Services
	loyaltyService := services.NewLoyaltyService(loyaltyRepo, customerRepo, auditRepo, txRunner)
	noShowService := services.NewNoShowService(reservationRepo, checkinRepo, auditRepo, loyaltyService, txRunner, publisher)
	eventService := services.NewEventService(eventRepo, auditRepo, noShowService, txRunner, publisher, cacheClient)
	reservationService := services.NewReservationService(reservationRepo, eventRepo, customerRepo, tableRepo, auditRepo, txRunner, cfg.Venue.CancelCutoffHour)
	checkinService := services.NewCheckinService(checkinRepo, reservationRepo, eventRepo, customerRepo, auditRepo, loyaltyService, txRunner, publisher)
	customerService := services.NewCustomerService(customerRepo)
	tableService := services.NewTableService(tableRepo, eventRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo, checkinRepo, loyaltyService, txRunner)
	feedbackService := services.NewFeedbackService(feedbackRepo, checkinRepo, loyaltyService, txRunner)
	auditService := services.NewAuditService(auditRepo)

	// Handlers
	eventHandler := handlers.NewEventHandler(eventService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltyService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	tableHandler := handlers.NewTableHandler(tableService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, feedbackService)
	auditHandler := handlers.NewAuditHandler(auditService, noShowService)

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.ActorMiddleware())
	apiV1.Use(middleware.AutoTransitionMiddleware(eventService, cfg.Venue.AutoSweepInterval))
	{
		SetupEventRoutes(apiV1, eventHandler, tableHandler)
		SetupReservationRoutes(apiV1, reservationHandler)
		SetupCheckinRoutes(apiV1, checkinHandler)
		SetupCustomerRoutes(apiV1, customerHandler, loyaltyHandler)
		SetupLoyaltyRoutes(apiV1, loyaltyHandler)
		SetupPurchaseRoutes(apiV1, purchaseHandler)
		SetupAdminRoutes(apiV1, auditHandler)
	}
}
