package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/services"
	"venue_ops_backend/pkg/utils"
)

// AuditHandler holds the audit and no-show services.
type AuditHandler struct {
	auditService  services.AuditService
	noShowService services.NoShowService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(as services.AuditService, ns services.NoShowService) *AuditHandler {
	return &AuditHandler{auditService: as, noShowService: ns}
}

// GetAuditEntries handles fetching the audit trail with filters.
func (h *AuditHandler) GetAuditEntries(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var filters models.AuditFilters
	filters.Page = page
	filters.PageSize = pageSize

	if tableName := c.Query("table_name"); tableName != "" {
		filters.TableName = &tableName
	}
	if action := c.Query("action"); action != "" {
		filters.Action = &action
	}
	recordID, ok := parseOptionalInt64Query(c, "record_id")
	if !ok {
		return
	}
	filters.RecordID = recordID

	staffID, ok := parseOptionalInt64Query(c, "staff_id")
	if !ok {
		return
	}
	filters.StaffID = staffID

	entries, totalCount, err := h.auditService.List(filters)
	if err != nil {
		utils.LogError(err, "GetAuditEntries: Error from auditService.List")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch audit entries.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, listResponse(entries, totalCount, page, pageSize))
}

// RunNoShowSweep triggers the reconciliation sweep, optionally scoped to
// one event or one customer.
func (h *AuditHandler) RunNoShowSweep(c *gin.Context) {
	var scope services.SweepScope

	eventID, ok := parseOptionalInt64Query(c, "event_id")
	if !ok {
		return
	}
	scope.EventID = eventID

	customerID, ok := parseOptionalInt64Query(c, "customer_id")
	if !ok {
		return
	}
	scope.CustomerID = customerID

	result, err := h.noShowService.Run(scope)
	if err != nil {
		utils.LogError(err, "RunNoShowSweep: Error from noShowService.Run")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to run no-show sweep.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, result)
}
