package uowmock

import (
	"context"
	"errors"
	"testing"

	"quote-workflow/internal/domain/uow"
	"quote-workflow/internal/testutil/quotemock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()
	quotes := &quotemock.Repo{}
	repos := uow.Repos{Quotes: quotes}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Quotes != quotes {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_PropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	m := Passthrough(uow.Repos{})
	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_WithinTx_Default_Unimplemented(t *testing.T) {
	m := New()
	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_FluentSetter_And_Reset(t *testing.T) {
	m := New().WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil })
	if m.WithinTxFn == nil {
		t.Fatalf("fluent setter didn't assign func")
	}
	m.Reset()
	if m.WithinTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
