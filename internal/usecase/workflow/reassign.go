package workflow

import (
	"context"
	"strings"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/domain/quote"
	"quote-workflow/internal/domain/quoteevent"
	"quote-workflow/internal/usecase/audit"
	"quote-workflow/pkg/apperr"
)

// Reassign sets or clears the owner, admin or finance assignment regardless
// of the workflow state.
func (u *Usecase) Reassign(ctx context.Context, actor profile.RequestContext, in ReassignInput) (q *quote.Quote, err error) {
	defer func() { u.record("reassign", err) }()

	if err := requireRole(actor, "Only master users can reassign quotes", profile.RoleMaster); err != nil {
		return nil, err
	}
	lane := quote.AssignLane(in.Lane)
	if !lane.Valid() {
		return nil, apperr.BadInput("lane must be owner, admin or finance")
	}
	if in.QuoteID == "" {
		return nil, apperr.BadInput("quoteId is required")
	}

	var target *string
	if in.TargetUserID != nil && strings.TrimSpace(*in.TargetUserID) != "" {
		target = strPtr(strings.TrimSpace(*in.TargetUserID))
	}

	var previous *string
	q, prev, err := u.mutate(ctx, in.QuoteID, func(q *quote.Quote) error {
		col := q.ReviewerColumn(lane)
		previous = *col
		*col = target
		q.SyncStatus()
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.Append(ctx, audit.Entry{
		QuoteID:       q.ID,
		EventType:     quoteevent.TypeReassignPrefix + string(lane),
		Actor:         actor,
		PreviousState: string(prev),
		NewState:      string(q.WorkflowState),
		Payload: map[string]any{
			"lane":           string(lane),
			"previousUserId": previous,
			"targetUserId":   target,
		},
	})
	return q, nil
}
