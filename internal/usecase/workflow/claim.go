package workflow

import (
	"context"
	"errors"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/domain/quote"
	"quote-workflow/internal/domain/quoteevent"
	"quote-workflow/internal/usecase/audit"
	"quote-workflow/pkg/apperr"
)

const (
	claimAtomic   = "atomic"
	claimFallback = "fallback"
)

var laneRoles = map[quote.Lane][]profile.Role{
	quote.LaneAdmin:   {profile.RoleAdmin, profile.RoleMaster},
	quote.LaneFinance: {profile.RoleFinance, profile.RoleMaster},
}

// Claim records actor as the reviewer of a lane. When the store supports
// quote.LaneClaimer the claim is one conditional update; otherwise it runs
// as read-then-write, which two concurrent reviewers can both win. That
// degraded path is logged and counted on every use.
func (u *Usecase) Claim(ctx context.Context, actor profile.RequestContext, in ClaimInput) (q *quote.Quote, err error) {
	defer func() { u.record("claim", err) }()

	lane := quote.Lane(in.Lane)
	rule, ok := quote.ClaimRuleFor(lane)
	if !ok {
		return nil, apperr.BadInput("lane must be admin or finance")
	}
	if err := requireRole(actor, "Your role cannot claim the "+in.Lane+" lane", laneRoles[lane]...); err != nil {
		return nil, err
	}
	if in.QuoteID == "" {
		return nil, apperr.BadInput("quoteId is required")
	}

	mode := claimAtomic
	if claimer, ok := u.quotes.(quote.LaneClaimer); ok {
		q, err = claimer.ClaimLane(ctx, in.QuoteID, lane, actor.UserID)
		if errors.Is(err, quote.ErrStateConflict) {
			return nil, u.explainClaimConflict(ctx, in.QuoteID, lane, rule)
		}
		if err != nil {
			return nil, mapQuoteErr(err)
		}
	} else {
		mode = claimFallback
		u.metrics.IncClaimDegraded(string(lane))
		u.log.Warn().
			Str("quote_id", in.QuoteID).
			Str("lane", string(lane)).
			Msg("workflow: atomic claim unavailable, using read-then-write; claim exclusivity is not guaranteed")

		q, _, err = u.mutate(ctx, in.QuoteID, func(q *quote.Quote) error {
			if err := claimPrecondition(q, lane, rule, actor.UserID); err != nil {
				return err
			}
			*q.ReviewerColumn(quote.AssignLane(lane)) = strPtr(actor.UserID)
			q.SetState(rule.To)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	u.metrics.IncClaim(string(lane), mode)

	u.audit.Append(ctx, audit.Entry{
		QuoteID:       q.ID,
		EventType:     quoteevent.TypeClaimedPrefix + string(lane),
		Actor:         actor,
		PreviousState: string(rule.From),
		NewState:      string(q.WorkflowState),
		Payload:       map[string]any{"lane": string(lane), "mode": mode},
	})
	return q, nil
}

func claimPrecondition(q *quote.Quote, lane quote.Lane, rule quote.ClaimRule, reviewerID string) error {
	if q.WorkflowState != rule.From {
		if lane == quote.LaneAdmin {
			return apperr.InvalidState("Quote must be submitted before it can be claimed for admin review")
		}
		return apperr.InvalidState("Quote is not in finance review")
	}
	if rule.ExclusiveOnReviewer {
		cur := *q.ReviewerColumn(quote.AssignLane(lane))
		if cur != nil && *cur != reviewerID {
			return apperr.InvalidState("Quote is already claimed by another " + string(lane) + " reviewer")
		}
	}
	return nil
}

// explainClaimConflict re-reads the quote after a lost compare-and-swap to
// report which precondition failed.
func (u *Usecase) explainClaimConflict(ctx context.Context, quoteID string, lane quote.Lane, rule quote.ClaimRule) error {
	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return mapQuoteErr(err)
	}
	if err := claimPrecondition(q, lane, rule, ""); err != nil {
		return err
	}
	return errConcurrentChange
}
