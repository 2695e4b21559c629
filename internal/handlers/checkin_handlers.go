package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"venue_ops_backend/internal/middleware"
	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/services"
	"venue_ops_backend/pkg/utils"
)

// CheckinHandler holds the check-in service.
type CheckinHandler struct {
	checkinService services.CheckinService
}

// NewCheckinHandler creates a new CheckinHandler.
func NewCheckinHandler(cs services.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: cs}
}

// PerformScan handles a door scan. A capacity rejection responds 409 with
// the occupancy counts so the client can offer the override confirmation.
func (h *CheckinHandler) PerformScan(c *gin.Context) {
	var req services.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "PerformScan: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	req.StaffID = middleware.StaffIDFromContext(c)

	result, err := h.checkinService.PerformScan(req)
	if err != nil {
		var capErr *services.CapacityError
		if errors.As(err, &capErr) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeCapacityExceeded, capErr.Error(), gin.H{
				"current": capErr.Current,
				"max":     capErr.Max,
			}))
			return
		}
		utils.LogError(err, "PerformScan: Error from checkinService.PerformScan")
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrNoOperativeEvent) || errors.Is(err, services.ErrEventNotOperative) ||
			errors.Is(err, services.ErrAlreadyCheckedIn) || errors.Is(err, services.ErrTableNotApproved) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record check-in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ManualCheckin handles a staff-recorded entry without a scan.
func (h *CheckinHandler) ManualCheckin(c *gin.Context) {
	var req services.ManualCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ManualCheckin: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	req.StaffID = middleware.StaffIDFromContext(c)

	result, err := h.checkinService.ManualCheckin(req)
	if err != nil {
		utils.LogError(err, "ManualCheckin: Error from checkinService.ManualCheckin")
		if errors.Is(err, services.ErrCustomerNotFound) || errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrAlreadyCheckedIn) || errors.Is(err, services.ErrEventNotBookable) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record check-in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// UndoCheckin handles removing a check-in and reactivating its reservation.
func (h *CheckinHandler) UndoCheckin(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.checkinService.Undo(id, middleware.StaffIDFromContext(c))
	if err != nil {
		utils.LogError(err, "UndoCheckin: Error from checkinService.Undo")
		if errors.Is(err, services.ErrCheckinNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to undo check-in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check-in removed"})
}

// GetCheckins handles fetching check-ins with pagination and filters.
func (h *CheckinHandler) GetCheckins(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var filters models.CheckinFilters
	filters.Page = page
	filters.PageSize = pageSize

	eventID, ok := parseOptionalInt64Query(c, "event_id")
	if !ok {
		return
	}
	filters.EventID = eventID

	customerID, ok := parseOptionalInt64Query(c, "customer_id")
	if !ok {
		return
	}
	filters.CustomerID = customerID

	staffID, ok := parseOptionalInt64Query(c, "staff_id")
	if !ok {
		return
	}
	filters.StaffID = staffID

	if category := c.Query("category"); category != "" {
		if !models.IsValidCheckinCategory(category) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid category value.", "category: "+category))
			return
		}
		filters.Category = &category
	}
	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		t, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_from format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		filters.DateFrom = &t
	}
	if dateToStr := c.Query("date_to"); dateToStr != "" {
		t, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_to format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		filters.DateTo = &t
	}

	checkins, totalCount, err := h.checkinService.List(filters)
	if err != nil {
		utils.LogError(err, "GetCheckins: Error from checkinService.List")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch check-ins.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, listResponse(checkins, totalCount, page, pageSize))
}
