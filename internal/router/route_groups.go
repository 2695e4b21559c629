package router

import (
	"github.com/gin-gonic/gin"

	"venue_ops_backend/internal/handlers"
)

// SetupEventRoutes sets up the event lifecycle and table layout routes.
func SetupEventRoutes(apiGroup *gin.RouterGroup, eventHandler *handlers.EventHandler, tableHandler *handlers.TableHandler) {
	eventRoutes := apiGroup.Group("/events")
	{
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.GET("", eventHandler.GetEvents)
		eventRoutes.GET("/operative", eventHandler.GetOperativeEvent)
		eventRoutes.GET("/:id", eventHandler.GetEvent)
		eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
		eventRoutes.POST("/:id/transition", eventHandler.TransitionEvent)
		eventRoutes.GET("/:id/tables", tableHandler.GetTablesForEvent)
	}

	tableRoutes := apiGroup.Group("/tables")
	{
		tableRoutes.POST("", tableHandler.CreateTable)
		tableRoutes.PUT("/:id", tableHandler.UpdateTable)
		tableRoutes.DELETE("/:id", tableHandler.DeleteTable)
	}
}

// SetupReservationRoutes sets up the reservation routes.
func SetupReservationRoutes(apiGroup *gin.RouterGroup, reservationHandler *handlers.ReservationHandler) {
	reservationRoutes := apiGroup.Group("/reservations")
	{
		reservationRoutes.POST("", reservationHandler.CreateReservation)
		reservationRoutes.GET("", reservationHandler.GetReservations)
		reservationRoutes.GET("/:id", reservationHandler.GetReservation)
		reservationRoutes.POST("/:id/cancel", reservationHandler.CancelReservation)
		reservationRoutes.PATCH("/:id/approval", reservationHandler.SetTableApproval)
		reservationRoutes.PATCH("/:id/table", reservationHandler.AssignTable)
	}
}

// SetupCheckinRoutes sets up the door check-in routes.
func SetupCheckinRoutes(apiGroup *gin.RouterGroup, checkinHandler *handlers.CheckinHandler) {
	checkinRoutes := apiGroup.Group("/checkins")
	{
		checkinRoutes.POST("/scan", checkinHandler.PerformScan)
		checkinRoutes.POST("/manual", checkinHandler.ManualCheckin)
		checkinRoutes.GET("", checkinHandler.GetCheckins)
		checkinRoutes.DELETE("/:id", checkinHandler.UndoCheckin)
	}
}

// SetupCustomerRoutes sets up the customer profile routes.
func SetupCustomerRoutes(apiGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler, loyaltyHandler *handlers.LoyaltyHandler) {
	customerRoutes := apiGroup.Group("/customers")
	{
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.GET("/:id", customerHandler.GetCustomer)
		customerRoutes.GET("/:id/loyalty", loyaltyHandler.GetCustomerStatus)
		customerRoutes.GET("/:id/ledger", loyaltyHandler.GetCustomerLedger)
	}
}

// SetupLoyaltyRoutes sets up the loyalty program routes.
func SetupLoyaltyRoutes(apiGroup *gin.RouterGroup, loyaltyHandler *handlers.LoyaltyHandler) {
	loyaltyRoutes := apiGroup.Group("/loyalty")
	{
		loyaltyRoutes.GET("/scan/:code", loyaltyHandler.GetStatusByScanCode)
		loyaltyRoutes.GET("/thresholds", loyaltyHandler.GetThresholds)
		loyaltyRoutes.PUT("/thresholds", loyaltyHandler.UpdateThresholds)
		loyaltyRoutes.POST("/entries/:id/reverse", loyaltyHandler.ReverseEntry)
	}
}

// SetupPurchaseRoutes sets up the purchase and feedback routes.
func SetupPurchaseRoutes(apiGroup *gin.RouterGroup, purchaseHandler *handlers.PurchaseHandler) {
	purchaseRoutes := apiGroup.Group("/purchases")
	{
		purchaseRoutes.POST("", purchaseHandler.RecordPurchase)
		purchaseRoutes.GET("", purchaseHandler.GetPurchases)
	}
	feedbackRoutes := apiGroup.Group("/feedback")
	{
		feedbackRoutes.POST("", purchaseHandler.SubmitFeedback)
	}
}

// SetupAdminRoutes sets up the audit trail and maintenance routes.
func SetupAdminRoutes(apiGroup *gin.RouterGroup, auditHandler *handlers.AuditHandler) {
	adminRoutes := apiGroup.Group("/admin")
	{
		adminRoutes.GET("/audit", auditHandler.GetAuditEntries)
		adminRoutes.POST("/no-show-sweep", auditHandler.RunNoShowSweep)
	}
}
