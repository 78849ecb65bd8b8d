package quote

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("quote not found")
	// ErrStateConflict means a conditional write matched no row: the quote
	// left the expected state (or lane owner) between read and write.
	ErrStateConflict = errors.New("quote state changed concurrently")
)

// ThresholdSnapshot is the guardrail evaluation captured when a quote is
// routed to finance. MarginPercent is nil when the admin gave no margin.
type ThresholdSnapshot struct {
	MarginPercent *float64  `json:"marginPercent"`
	LimitPercent  float64   `json:"limitPercent"`
	Breached      bool      `json:"breached"`
	CapturedAt    time.Time `json:"capturedAt"`
}

// Table: quotes. Rows are created by the BOM builder; this service only
// mutates workflow columns.
type Quote struct {
	ID           string `gorm:"column:id;primaryKey;size:64" json:"id"`
	CustomerName string `gorm:"column:customer_name;size:255" json:"customer_name"`

	OwnerID           *string `gorm:"column:owner_id;size:64;index" json:"owner_id"`
	AdminReviewerID   *string `gorm:"column:admin_reviewer_id;size:64" json:"admin_reviewer_id"`
	FinanceReviewerID *string `gorm:"column:finance_reviewer_id;size:64" json:"finance_reviewer_id"`

	WorkflowState State  `gorm:"column:workflow_state;size:32;index;not null" json:"workflow_state"`
	Status        string `gorm:"column:status;size:32;not null" json:"status"`

	AdminDecisionStatus *string    `gorm:"column:admin_decision_status;size:32" json:"admin_decision_status"`
	AdminDecisionNotes  *string    `gorm:"column:admin_decision_notes;type:text" json:"admin_decision_notes"`
	AdminDecisionBy     *string    `gorm:"column:admin_decision_by;size:64" json:"admin_decision_by"`
	AdminDecisionAt     *time.Time `gorm:"column:admin_decision_at" json:"admin_decision_at"`

	FinanceDecisionStatus *string    `gorm:"column:finance_decision_status;size:32" json:"finance_decision_status"`
	FinanceDecisionNotes  *string    `gorm:"column:finance_decision_notes;type:text" json:"finance_decision_notes"`
	FinanceDecisionBy     *string    `gorm:"column:finance_decision_by;size:64" json:"finance_decision_by"`
	FinanceDecisionAt     *time.Time `gorm:"column:finance_decision_at" json:"finance_decision_at"`

	FinanceThresholdSnapshot *ThresholdSnapshot `gorm:"column:finance_threshold_snapshot;type:json;serializer:json" json:"finance_threshold_snapshot"`
	FinanceMarginBreached    bool               `gorm:"column:finance_margin_breached;not null" json:"finance_margin_breached"`
	RequiresFinanceApproval  bool               `gorm:"column:requires_finance_approval;not null" json:"requires_finance_approval"`

	SubmittedAt      *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	SubmittedByEmail *string    `gorm:"column:submitted_by_email;size:255" json:"submitted_by_email"`
	SubmittedByName  *string    `gorm:"column:submitted_by_name;size:255" json:"submitted_by_name"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Quote) TableName() string { return "quotes" }

// CaptureSnapshot stores s and keeps the derived flags in sync with it.
func (q *Quote) CaptureSnapshot(s ThresholdSnapshot) {
	q.FinanceThresholdSnapshot = &s
	q.FinanceMarginBreached = s.Breached
	q.RequiresFinanceApproval = true
}

// ClearFinanceFlags drops the finance requirement without touching a captured snapshot.
func (q *Quote) ClearFinanceFlags() {
	q.RequiresFinanceApproval = false
	q.FinanceMarginBreached = false
}

// IsOwnedBy reports whether userID is the recorded owner.
func (q *Quote) IsOwnedBy(userID string) bool {
	return q.OwnerID != nil && *q.OwnerID == userID
}

// SetState moves the quote to s and re-derives the legacy status column.
func (q *Quote) SetState(s State) {
	q.WorkflowState = s
	q.Status = LegacyStatus(s, q.FinanceReviewerID != nil)
}

// SyncStatus re-derives the legacy status after a reviewer column changed.
func (q *Quote) SyncStatus() { q.SetState(q.WorkflowState) }

// ReviewerColumn returns a pointer to the id column assigned for lane.
func (q *Quote) ReviewerColumn(lane AssignLane) **string {
	switch lane {
	case AssignOwner:
		return &q.OwnerID
	case AssignAdmin:
		return &q.AdminReviewerID
	case AssignFinance:
		return &q.FinanceReviewerID
	}
	return nil
}
