package quoteevent

import (
	"time"
)

const (
	TypeSubmitted       = "quote_submitted"
	TypeClaimedPrefix   = "quote_claimed_"
	TypeAdminDecision   = "quote_admin_decision"
	TypeFinanceDecision = "quote_finance_decision"
	TypeReassignPrefix  = "quote_reassigned_"
)

// Table: quote_events. Append-only; rows are never updated or deleted.
type QuoteEvent struct {
	ID            uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EventID       string         `gorm:"column:event_id;size:36;uniqueIndex" json:"id"`
	QuoteID       string         `gorm:"column:quote_id;size:64;not null;index" json:"quote_id"`
	EventType     string         `gorm:"column:event_type;size:64;not null" json:"event_type"`
	ActorID       string         `gorm:"column:actor_id;size:64" json:"actor_id"`
	ActorRole     string         `gorm:"column:actor_role;size:32" json:"actor_role"`
	PreviousState string         `gorm:"column:previous_state;size:32" json:"previous_state"`
	NewState      string         `gorm:"column:new_state;size:32" json:"new_state"`
	Payload       map[string]any `gorm:"column:payload;type:json;serializer:json" json:"payload"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (QuoteEvent) TableName() string { return "quote_events" }
