package guardrail

import (
	"context"
	"errors"
	"testing"

	"quote-workflow/internal/domain/setting"
	"quote-workflow/internal/testutil/settingmock"
	"quote-workflow/pkg/apperr"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

func TestGet_DefaultOnFreshSystem(t *testing.T) {
	repo := &settingmock.Repo{}
	uc := NewUsecase(repo, zerolog.Nop())

	got, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Percent != 22 || got.Currency != "USD" {
		t.Fatalf("default = %+v, want 22 USD", got)
	}
	// lazily created
	if _, err := repo.Get(context.Background(), setting.KeyFinanceMarginLimit); err != nil {
		t.Fatalf("default row not persisted: %v", err)
	}
}

func TestSetThenGet(t *testing.T) {
	uc := NewUsecase(&settingmock.Repo{}, zerolog.Nop())
	ctx := context.Background()

	if _, err := uc.Set(ctx, 30, "eur", "A1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Percent != 30 || got.Currency != "EUR" {
		t.Fatalf("got %+v, want 30 EUR", got)
	}
	if got.UpdatedBy == nil || *got.UpdatedBy != "A1" || got.UpdatedAt == nil {
		t.Fatalf("audit fields missing: %+v", got)
	}
}

func TestSet_OverwritesWholesale(t *testing.T) {
	uc := NewUsecase(&settingmock.Repo{}, zerolog.Nop())
	ctx := context.Background()

	_, _ = uc.Set(ctx, 30, "EUR", "A1")
	// currency omitted: default, not the previous EUR
	_, _ = uc.Set(ctx, 25, "", "A1")
	got, _ := uc.Get(ctx)
	if got.Percent != 25 || got.Currency != "USD" {
		t.Fatalf("got %+v, want 25 USD", got)
	}
}

func TestSet_RejectsNonPositive(t *testing.T) {
	uc := NewUsecase(&settingmock.Repo{}, zerolog.Nop())
	for _, p := range []float64{0, -1} {
		if _, err := uc.Set(context.Background(), p, "USD", "A1"); !apperr.Is(err, apperr.KindBadInput) {
			t.Fatalf("Set(%v): want bad input, got %v", p, err)
		}
	}
}

func TestGet_StoreErrorIsInternal(t *testing.T) {
	repo := &settingmock.Repo{GetFn: func(context.Context, string) (*setting.AppSetting, error) {
		return nil, errors.New("db down")
	}}
	if _, err := NewUsecase(repo, zerolog.Nop()).Get(context.Background()); !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("want internal, got %v", err)
	}
}

func TestGet_DefaultEvenIfPersistFails(t *testing.T) {
	repo := &settingmock.Repo{UpsertFn: func(context.Context, *setting.AppSetting) error {
		return errors.New("read-only replica")
	}}
	got, err := NewUsecase(repo, zerolog.Nop()).Get(context.Background())
	if err != nil || got.Percent != 22 {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestGet_CorruptValueFallsBack(t *testing.T) {
	repo := &settingmock.Repo{GetFn: func(context.Context, string) (*setting.AppSetting, error) {
		return &setting.AppSetting{Key: setting.KeyFinanceMarginLimit, Value: datatypes.JSON(`{"percent":"lots"}`)}, nil
	}}
	got, err := NewUsecase(repo, zerolog.Nop()).Get(context.Background())
	if err != nil || got.Percent != 22 || got.Currency != "USD" {
		t.Fatalf("got %+v, %v", got, err)
	}
}
