package mysql

import (
	"context"
	"errors"

	tplDomain "quote-workflow/internal/domain/emailtemplate"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmailTemplateRepository struct{ db *gorm.DB }

func NewEmailTemplateRepository(db *gorm.DB) *EmailTemplateRepository {
	return &EmailTemplateRepository{db: db}
}

func (r *EmailTemplateRepository) GetByType(ctx context.Context, templateType string) (*tplDomain.EmailTemplate, error) {
	var out tplDomain.EmailTemplate
	err := r.db.WithContext(ctx).Where("template_type = ?", templateType).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tplDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Upsert keeps created_by/created_at of an existing row.
func (r *EmailTemplateRepository) Upsert(ctx context.Context, t *tplDomain.EmailTemplate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "template_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"subject_template", "body_template", "enabled", "variables", "updated_by", "updated_at",
			}),
		}).
		Create(t).Error
}
