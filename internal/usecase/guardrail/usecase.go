package guardrail

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"quote-workflow/internal/domain/setting"
	"quote-workflow/pkg/apperr"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

const (
	DefaultPercent  = 22.0
	DefaultCurrency = "USD"
)

// Limit is the finance margin floor stored under setting.KeyFinanceMarginLimit.
type Limit struct {
	Percent   float64    `json:"percent"`
	Currency  string     `json:"currency"`
	UpdatedBy *string    `json:"updatedBy,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type Usecase struct {
	settings setting.Repository
	log      zerolog.Logger
	now      func() time.Time
}

func NewUsecase(settings setting.Repository, log zerolog.Logger) *Usecase {
	return &Usecase{settings: settings, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Get returns the stored limit. When no row exists the default is persisted
// (best effort) and returned.
func (u *Usecase) Get(ctx context.Context) (Limit, error) {
	row, err := u.settings.Get(ctx, setting.KeyFinanceMarginLimit)
	if errors.Is(err, setting.ErrNotFound) {
		def := Limit{Percent: DefaultPercent, Currency: DefaultCurrency}
		if _, werr := u.write(ctx, def, nil); werr != nil {
			u.log.Warn().Err(werr).Msg("guardrail: could not persist default finance margin limit")
		}
		return def, nil
	}
	if err != nil {
		return Limit{}, apperr.Internal(err)
	}

	var l Limit
	if err := json.Unmarshal(row.Value, &l); err != nil || l.Percent <= 0 {
		u.log.Warn().Err(err).Str("value", string(row.Value)).Msg("guardrail: unreadable finance margin limit, using default")
		return Limit{Percent: DefaultPercent, Currency: DefaultCurrency}, nil
	}
	if l.Currency == "" {
		l.Currency = DefaultCurrency
	}
	return l, nil
}

// Set overwrites the limit wholesale. Callers enforce who may do this.
func (u *Usecase) Set(ctx context.Context, percent float64, currency, updatedBy string) (Limit, error) {
	if percent <= 0 {
		return Limit{}, apperr.BadInput("percent must be greater than 0")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	var by *string
	if updatedBy != "" {
		by = &updatedBy
	}
	l, err := u.write(ctx, Limit{Percent: percent, Currency: currency}, by)
	if err != nil {
		return Limit{}, apperr.Internal(err)
	}
	return l, nil
}

func (u *Usecase) write(ctx context.Context, l Limit, by *string) (Limit, error) {
	now := u.now()
	l.UpdatedBy = by
	l.UpdatedAt = &now
	raw, err := json.Marshal(l)
	if err != nil {
		return Limit{}, err
	}
	err = u.settings.Upsert(ctx, &setting.AppSetting{
		Key:       setting.KeyFinanceMarginLimit,
		Value:     datatypes.JSON(raw),
		UpdatedBy: by,
		UpdatedAt: now,
	})
	return l, err
}
