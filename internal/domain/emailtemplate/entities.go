package emailtemplate

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("email template not found")
)

// Stored template types accepted by the email_templates check constraint.
const (
	TypeQuoteSubmitted     = "quote_submitted"
	TypeQuoteApproved      = "quote_approved"
	TypeQuoteRejected      = "quote_rejected"
	TypeQuoteFinanceReview = "quote_finance_review"
	TypeQuoteNeedsRevision = "quote_needs_revision"
)

// Logical template types that have no column value of their own.
const (
	TypeQuoteAdminDecision = "quote_admin_decision"
)

var storedTypes = map[string]bool{
	TypeQuoteSubmitted:     true,
	TypeQuoteApproved:      true,
	TypeQuoteRejected:      true,
	TypeQuoteFinanceReview: true,
	TypeQuoteNeedsRevision: true,
}

var aliases = map[string]string{
	TypeQuoteAdminDecision: TypeQuoteApproved,
}

// ResolveType maps a logical template type to the stored one. ok is false
// when the result is not a type the table accepts.
func ResolveType(t string) (stored string, ok bool) {
	if a, found := aliases[t]; found {
		t = a
	}
	return t, storedTypes[t]
}

// Table: email_templates
type EmailTemplate struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TemplateType    string    `gorm:"column:template_type;size:64;uniqueIndex;not null" json:"template_type"`
	SubjectTemplate string    `gorm:"column:subject_template;type:text;not null" json:"subject_template"`
	BodyTemplate    string    `gorm:"column:body_template;type:text;not null" json:"body_template"`
	Enabled         bool      `gorm:"column:enabled;not null" json:"enabled"`
	Variables       []string  `gorm:"column:variables;type:json;serializer:json" json:"variables"`
	CreatedBy       *string   `gorm:"column:created_by;size:64" json:"created_by"`
	UpdatedBy       *string   `gorm:"column:updated_by;size:64" json:"updated_by"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EmailTemplate) TableName() string { return "email_templates" }
