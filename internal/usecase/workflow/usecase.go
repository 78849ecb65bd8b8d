package workflow

import (
	"context"
	"errors"
	"time"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/domain/quote"
	"quote-workflow/internal/domain/quoteevent"
	"quote-workflow/internal/domain/uow"
	"quote-workflow/internal/infrastructure/metrics"
	"quote-workflow/internal/usecase/audit"
	"quote-workflow/internal/usecase/guardrail"
	"quote-workflow/internal/usecase/notification"
	"quote-workflow/pkg/apperr"

	"github.com/rs/zerolog"
)

// Narrow views of the collaborating use cases.
type (
	LimitReader interface {
		Get(ctx context.Context) (guardrail.Limit, error)
	}
	Auditor interface {
		Append(ctx context.Context, e audit.Entry)
		List(ctx context.Context, quoteID string) ([]quoteevent.QuoteEvent, error)
	}
	Notifier interface {
		Send(ctx context.Context, msg notification.Message) error
	}
)

type Deps struct {
	// Quotes serves reads and, when it implements quote.LaneClaimer, atomic claims.
	Quotes    quote.Repository
	Profiles  profile.Repository
	UoW       uow.UnitOfWork
	Guardrail LimitReader
	Audit     Auditor
	Notifier  Notifier
	Metrics   *metrics.Metrics
	Log       zerolog.Logger
	// BaseURL prefixes quote links in notifications, e.g. https://app.example.com
	BaseURL string
	Now     func() time.Time
}

type Usecase struct {
	quotes    quote.Repository
	profiles  profile.Repository
	uow       uow.UnitOfWork
	guardrail LimitReader
	audit     Auditor
	notifier  Notifier
	metrics   *metrics.Metrics
	log       zerolog.Logger
	baseURL   string
	now       func() time.Time
}

func NewUsecase(d Deps) *Usecase {
	now := d.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Usecase{
		quotes:    d.Quotes,
		profiles:  d.Profiles,
		uow:       d.UoW,
		guardrail: d.Guardrail,
		audit:     d.Audit,
		notifier:  d.Notifier,
		metrics:   d.Metrics,
		log:       d.Log,
		baseURL:   d.BaseURL,
		now:       now,
	}
}

var errConcurrentChange = apperr.InvalidState("Quote changed while processing; reload and retry")

// mutate re-reads the quote inside a transaction, lets apply validate and
// modify it, and writes it back only if the state it was read in still holds.
// It returns the written quote and the state it was read in.
func (u *Usecase) mutate(ctx context.Context, quoteID string, apply func(q *quote.Quote) error) (*quote.Quote, quote.State, error) {
	var (
		out  *quote.Quote
		prev quote.State
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		q, err := r.Quotes.GetByID(ctx, quoteID)
		if err != nil {
			return mapQuoteErr(err)
		}
		prev = q.WorkflowState
		if err := apply(q); err != nil {
			return err
		}
		q.UpdatedAt = u.now()
		if err := r.Quotes.UpdateFromState(ctx, q, prev); err != nil {
			return mapQuoteErr(err)
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, "", mapQuoteErr(err)
	}
	return out, prev, nil
}

func mapQuoteErr(err error) error {
	switch {
	case errors.Is(err, quote.ErrNotFound):
		return apperr.NotFound("Quote not found")
	case errors.Is(err, quote.ErrStateConflict):
		return errConcurrentChange
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Internal(err)
}

func (u *Usecase) record(op string, err error) {
	if err == nil {
		u.metrics.IncTransition(op, "ok")
		return
	}
	u.metrics.IncTransition(op, string(apperr.KindOf(err)))
}

func (u *Usecase) notify(ctx context.Context, quoteID, kind string, msg notification.Message) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Send(ctx, msg); err != nil {
		u.metrics.IncSideEffectFailure("notification")
		u.log.Warn().Err(err).
			Str("quote_id", quoteID).
			Str("notification", kind).
			Msg("workflow: notification failed")
	}
}

func (u *Usecase) quoteURL(id string) string {
	if u.baseURL == "" {
		return ""
	}
	return u.baseURL + "/quotes/" + id
}

func requireRole(actor profile.RequestContext, msg string, roles ...profile.Role) error {
	if !actor.Role.OneOf(roles...) {
		return apperr.Forbidden(msg)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// Events returns the audit trail of a quote. Reviewers see any quote; other
// callers only their own.
func (u *Usecase) Events(ctx context.Context, actor profile.RequestContext, quoteID string) ([]quoteevent.QuoteEvent, error) {
	if quoteID == "" {
		return nil, apperr.BadInput("quoteId is required")
	}
	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, mapQuoteErr(err)
	}
	if !actor.Role.OneOf(profile.RoleAdmin, profile.RoleFinance, profile.RoleMaster) && !q.IsOwnedBy(actor.UserID) {
		return nil, apperr.Forbidden("Not allowed to view this quote's history")
	}
	return u.audit.List(ctx, quoteID)
}
