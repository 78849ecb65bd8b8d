package setting

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrNotFound = errors.New("setting not found")
)

const (
	KeyFinanceMarginLimit = "finance_margin_limit"
	KeyEmailSettings      = "email_settings"
)

// Table: app_settings. Generic key/value store; values are JSON documents.
type AppSetting struct {
	Key       string         `gorm:"column:setting_key;primaryKey;size:64" json:"key"`
	Value     datatypes.JSON `gorm:"column:value;not null" json:"value"`
	UpdatedBy *string        `gorm:"column:updated_by;size:64" json:"updated_by"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (AppSetting) TableName() string { return "app_settings" }
