package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venue_ops_backend/internal/middleware"
	"venue_ops_backend/internal/services"
	"venue_ops_backend/pkg/utils"
)

// PurchaseHandler holds the purchase and feedback services.
type PurchaseHandler struct {
	purchaseService services.PurchaseService
	feedbackService services.FeedbackService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(ps services.PurchaseService, fs services.FeedbackService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: ps, feedbackService: fs}
}

// RecordPurchase handles recording an in-venue purchase.
func (h *PurchaseHandler) RecordPurchase(c *gin.Context) {
	var req services.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RecordPurchase: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	req.StaffID = middleware.StaffIDFromContext(c)

	purchase, err := h.purchaseService.Record(req)
	if err != nil {
		utils.LogError(err, "RecordPurchase: Error from purchaseService.Record")
		if errors.Is(err, services.ErrCheckinRequired) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record purchase.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// GetPurchases handles fetching purchases for one customer at one event.
func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	customerID, ok := parseOptionalInt64Query(c, "customer_id")
	if !ok {
		return
	}
	eventID, ok := parseOptionalInt64Query(c, "event_id")
	if !ok {
		return
	}
	if customerID == nil || eventID == nil {
		utils.RespondValidationFailed(c, "customer_id and event_id are required")
		return
	}

	purchases, err := h.purchaseService.ListForCustomerEvent(*customerID, *eventID)
	if err != nil {
		utils.LogError(err, "GetPurchases: Error from purchaseService.ListForCustomerEvent")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch purchases.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": purchases})
}

// SubmitFeedback handles a customer's event review.
func (h *PurchaseHandler) SubmitFeedback(c *gin.Context) {
	var req services.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "SubmitFeedback: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	feedback, err := h.feedbackService.Submit(req)
	if err != nil {
		utils.LogError(err, "SubmitFeedback: Error from feedbackService.Submit")
		if errors.Is(err, services.ErrFeedbackAlreadyGiven) || errors.Is(err, services.ErrCheckinRequired) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record feedback.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, feedback)
}
