package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venue_ops_backend/internal/middleware"
	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/services"
	"venue_ops_backend/pkg/utils"
)

// ReservationHandler holds the reservation service.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

// CreateReservation handles the creation of a new reservation.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateReservation: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reservation, err := h.reservationService.Create(req)
	if err != nil {
		utils.LogError(err, "CreateReservation: Error from reservationService.Create")
		if errors.Is(err, services.ErrDuplicateActiveReservation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrEventNotBookable) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrCustomerNotFound) || errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create reservation.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// GetReservations handles fetching reservations with pagination and filters.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var filters models.ReservationFilters
	filters.Page = page
	filters.PageSize = pageSize

	customerID, ok := parseOptionalInt64Query(c, "customer_id")
	if !ok {
		return
	}
	filters.CustomerID = customerID

	eventID, ok := parseOptionalInt64Query(c, "event_id")
	if !ok {
		return
	}
	filters.EventID = eventID

	if category := c.Query("category"); category != "" {
		if !models.IsValidReservationCategory(category) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid category value.", "category: "+category))
			return
		}
		filters.Category = &category
	}
	if status := c.Query("status"); status != "" {
		if !models.IsValidReservationStatus(status) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid status value.", "status: "+status))
			return
		}
		filters.Status = &status
	}

	reservations, totalCount, err := h.reservationService.List(filters)
	if err != nil {
		utils.LogError(err, "GetReservations: Error from reservationService.List")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservations.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, listResponse(reservations, totalCount, page, pageSize))
}

// GetReservation handles fetching a single reservation by ID.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else {
			utils.LogError(err, "GetReservation: Error from reservationService.GetByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservation.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CancelReservation handles cancelling an active reservation.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.reservationService.Cancel(id, middleware.StaffIDFromContext(c))
	if err != nil {
		utils.LogError(err, "CancelReservation: Error from reservationService.Cancel")
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrCancellationWindowClosed) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to cancel reservation.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled"})
}

type approvalRequest struct {
	Approval string `json:"approval" binding:"required"`
}

// SetTableApproval handles updating a table reservation's approval state.
func (h *ReservationHandler) SetTableApproval(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	err := h.reservationService.SetTableApproval(id, req.Approval, middleware.StaffIDFromContext(c))
	if err != nil {
		utils.LogError(err, "SetTableApproval: Error from reservationService.SetTableApproval")
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update approval.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Approval updated"})
}

type assignTableRequest struct {
	TableID int64 `json:"table_id" binding:"required"`
}

// AssignTable handles linking a reservation to a physical table.
func (h *ReservationHandler) AssignTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req assignTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	err := h.reservationService.AssignTable(id, req.TableID, middleware.StaffIDFromContext(c))
	if err != nil {
		utils.LogError(err, "AssignTable: Error from reservationService.AssignTable")
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to assign table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table assigned"})
}
