package emailtemplate

import "context"

type Repository interface {
	// GetByType returns ErrNotFound when the stored type has no row.
	GetByType(ctx context.Context, templateType string) (*EmailTemplate, error)

	// Upsert inserts or replaces the row keyed by TemplateType.
	Upsert(ctx context.Context, t *EmailTemplate) error
}
