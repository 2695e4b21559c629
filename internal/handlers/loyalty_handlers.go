package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venue_ops_backend/internal/middleware"
	"venue_ops_backend/internal/services"
	"venue_ops_backend/pkg/utils"
)

// LoyaltyHandler holds the loyalty service.
type LoyaltyHandler struct {
	loyaltyService services.LoyaltyService
}

// NewLoyaltyHandler creates a new LoyaltyHandler.
func NewLoyaltyHandler(ls services.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: ls}
}

// GetCustomerStatus returns a customer's balance, level and gap to the next
// level.
func (h *LoyaltyHandler) GetCustomerStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.loyaltyService.StatusForCustomer(id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else {
			utils.LogError(err, "GetCustomerStatus: Error from loyaltyService.StatusForCustomer")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch loyalty status.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetStatusByScanCode resolves a scan code to the customer and their
// loyalty standing, for the staff scan screen.
func (h *LoyaltyHandler) GetStatusByScanCode(c *gin.Context) {
	scanCode := c.Param("code")
	if utils.IsEmpty(scanCode) {
		utils.RespondValidationFailed(c, "scan code is required")
		return
	}

	status, customer, err := h.loyaltyService.StatusForScanCode(scanCode)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else {
			utils.LogError(err, "GetStatusByScanCode: Error from loyaltyService.StatusForScanCode")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to resolve scan code.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "customer": customer})
}

// GetCustomerLedger returns a customer's full loyalty history, newest first.
func (h *LoyaltyHandler) GetCustomerLedger(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.loyaltyService.EntriesForCustomer(id)
	if err != nil {
		utils.LogError(err, "GetCustomerLedger: Error from loyaltyService.EntriesForCustomer")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch loyalty ledger.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// ReverseEntry nets out a ledger entry with an opposite-signed correction.
func (h *LoyaltyHandler) ReverseEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reversal, err := h.loyaltyService.Reverse(id, middleware.StaffIDFromContext(c))
	if err != nil {
		utils.LogError(err, "ReverseEntry: Error from loyaltyService.Reverse")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to reverse ledger entry.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, reversal)
}

// GetThresholds returns the configured level thresholds.
func (h *LoyaltyHandler) GetThresholds(c *gin.Context) {
	thresholds, err := h.loyaltyService.Thresholds()
	if err != nil {
		utils.LogError(err, "GetThresholds: Error from loyaltyService.Thresholds")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch thresholds.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": thresholds})
}

// UpdateThresholds replaces the adjustable level thresholds.
func (h *LoyaltyHandler) UpdateThresholds(c *gin.Context) {
	var req services.UpdateThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	thresholds, err := h.loyaltyService.UpdateThresholds(req)
	if err != nil {
		utils.LogError(err, "UpdateThresholds: Error from loyaltyService.UpdateThresholds")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update thresholds.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": thresholds})
}
