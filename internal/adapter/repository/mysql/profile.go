package mysql

import (
	"context"
	"errors"

	profileDomain "quote-workflow/internal/domain/profile"

	"gorm.io/gorm"
)

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profileDomain.Profile, error) {
	var out profileDomain.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, profileDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProfileRepository) ListByRole(ctx context.Context, role profileDomain.Role) ([]profileDomain.Profile, error) {
	var out []profileDomain.Profile
	err := r.db.WithContext(ctx).
		Where("UPPER(role) = ?", string(role)).
		Order("email ASC").
		Find(&out).Error
	return out, err
}
