package models

import "time"

// Audit actions. The set mirrors every state change the operations code
// records; free-form notes carry the human-readable detail.
const (
	AuditActionInsert               = "insert"
	AuditActionUpdate               = "update"
	AuditActionDelete               = "delete"
	AuditActionEventCreate          = "event_create"
	AuditActionSetOperative         = "set_operative"
	AuditActionUnsetOperative       = "unset_operative"
	AuditActionEventClose           = "event_close"
	AuditActionCapacityOverride     = "capacity_override"
	AuditActionReservationFulfilled = "reservation_fulfilled"
	AuditActionNoShowAssigned       = "no_show_assigned"
	AuditActionCheckinUndo          = "checkin_undo"
	AuditActionLedgerReversal       = "ledger_reversal"
)

// AuditEntry is one append-only audit log row. StaffID is nil for automatic
// transitions.
type AuditEntry struct {
	ID        int64     `json:"id" db:"id"`
	TableName string    `json:"table_name" db:"table_name"`
	RecordID  int64     `json:"record_id" db:"record_id"`
	StaffID   *int64    `json:"staff_id,omitempty" db:"staff_id"`
	Action    string    `json:"action" db:"action"`
	Note      string    `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AuditFilters defines the available filters for querying the audit log.
type AuditFilters struct {
	TableName *string `form:"table_name"`
	RecordID  *int64  `form:"record_id"`
	StaffID   *int64  `form:"staff_id"`
	Action    *string `form:"action"`
	Page      int     `form:"page"`
	PageSize  int     `form:"page_size"`
}
