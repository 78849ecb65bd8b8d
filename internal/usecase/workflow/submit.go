package workflow

import (
	"context"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/domain/quote"
	"quote-workflow/internal/domain/quoteevent"
	"quote-workflow/internal/usecase/audit"
	"quote-workflow/pkg/apperr"
)

// Submit hands a quote to the admin lane. Resubmitting a submitted quote
// re-stamps the submission metadata.
func (u *Usecase) Submit(ctx context.Context, actor profile.RequestContext, in SubmitInput) (q *quote.Quote, err error) {
	defer func() { u.record("submit", err) }()

	if err := requireRole(actor, "Only sales, admin or master users can submit quotes",
		profile.RoleSales, profile.RoleAdmin, profile.RoleMaster); err != nil {
		return nil, err
	}
	if in.QuoteID == "" {
		return nil, apperr.BadInput("quoteId is required")
	}

	now := u.now()
	q, prev, err := u.mutate(ctx, in.QuoteID, func(q *quote.Quote) error {
		if q.OwnerID != nil && !q.IsOwnedBy(actor.UserID) && actor.Role != profile.RoleMaster {
			return apperr.Forbidden("Only the quote owner can submit this quote")
		}
		if !quote.CanSubmitFrom(q.WorkflowState) {
			return apperr.InvalidState("Quote must be in draft or submitted state to submit")
		}
		if q.OwnerID == nil {
			q.OwnerID = strPtr(actor.UserID)
		}
		q.SubmittedAt = timePtr(now)
		q.SubmittedByEmail = strPtr(actor.Email)
		q.SubmittedByName = strPtr(actor.DisplayName())
		q.SetState(quote.StateSubmitted)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.Append(ctx, audit.Entry{
		QuoteID:       q.ID,
		EventType:     quoteevent.TypeSubmitted,
		Actor:         actor,
		PreviousState: string(prev),
		NewState:      string(q.WorkflowState),
		Payload:       map[string]any{"submittedAt": now},
	})
	return q, nil
}
