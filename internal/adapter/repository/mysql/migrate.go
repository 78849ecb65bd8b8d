package mysql

import (
	"quote-workflow/internal/domain/emailtemplate"
	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/domain/quote"
	"quote-workflow/internal/domain/quoteevent"
	"quote-workflow/internal/domain/setting"

	"gorm.io/gorm"
)

// Migrate creates or updates every table this service reads or writes.
// quotes and profiles are owned upstream; migrating them is for local setups.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&quote.Quote{},
		&quoteevent.QuoteEvent{},
		&setting.AppSetting{},
		&emailtemplate.EmailTemplate{},
		&profile.Profile{},
	)
}
