package workflow

import (
	"context"
	"fmt"
	"html"
	"strings"

	"quote-workflow/internal/domain/emailtemplate"
	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/domain/quote"
	"quote-workflow/internal/domain/quoteevent"
	"quote-workflow/internal/usecase/audit"
	"quote-workflow/internal/usecase/notification"
	"quote-workflow/pkg/apperr"
)

// AdminDecision records the admin lane's outcome. Routing to finance captures
// a guardrail snapshot; an unknown margin counts as breached.
func (u *Usecase) AdminDecision(ctx context.Context, actor profile.RequestContext, in DecisionInput) (q *quote.Quote, err error) {
	defer func() { u.record("admin_decision", err) }()

	if err := requireRole(actor, "Only admin or master users can record admin decisions",
		profile.RoleAdmin, profile.RoleMaster); err != nil {
		return nil, err
	}
	if in.QuoteID == "" {
		return nil, apperr.BadInput("quoteId is required")
	}
	decision := quote.AdminDecision(in.Decision)
	target, ok := decision.TargetState()
	if !ok {
		return nil, apperr.BadInput("decision must be one of approved, rejected, needs_revision, requires_finance")
	}

	limit := in.FinanceLimitPercent
	if decision == quote.AdminRequiresFinance && limit == nil {
		l, err := u.guardrail.Get(ctx)
		if err != nil {
			return nil, err
		}
		limit = &l.Percent
	}

	now := u.now()
	var snapshot *quote.ThresholdSnapshot
	q, prev, err := u.mutate(ctx, in.QuoteID, func(q *quote.Quote) error {
		if q.WorkflowState != quote.StateAdminReview {
			return apperr.InvalidState("Quote is not in admin review")
		}
		q.AdminDecisionStatus = strPtr(in.Decision)
		q.AdminDecisionNotes = in.Notes
		q.AdminDecisionBy = strPtr(actor.UserID)
		q.AdminDecisionAt = timePtr(now)
		if q.AdminReviewerID == nil {
			q.AdminReviewerID = strPtr(actor.UserID)
		}

		switch decision {
		case quote.AdminApproved:
			q.ClearFinanceFlags()
		case quote.AdminRequiresFinance:
			s := quote.ThresholdSnapshot{
				MarginPercent: in.MarginPercent,
				LimitPercent:  *limit,
				Breached:      in.MarginPercent == nil || *in.MarginPercent < *limit,
				CapturedAt:    now,
			}
			q.CaptureSnapshot(s)
			snapshot = &s
		}
		q.SetState(target)
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"decision":            in.Decision,
		"notes":               in.Notes,
		"marginPercent":       in.MarginPercent,
		"financeLimitPercent": in.FinanceLimitPercent,
	}
	if snapshot != nil {
		payload["financeLimitPercent"] = snapshot.LimitPercent
		payload["breached"] = snapshot.Breached
	}
	u.audit.Append(ctx, audit.Entry{
		QuoteID:       q.ID,
		EventType:     quoteevent.TypeAdminDecision,
		Actor:         actor,
		PreviousState: string(prev),
		NewState:      string(q.WorkflowState),
		Payload:       payload,
	})

	if decision == quote.AdminRequiresFinance {
		u.notifyFinanceTeam(ctx, q, actor)
	}
	u.notifyOwner(ctx, q, actor, in)
	return q, nil
}

// FinanceDecision records the finance lane's outcome. Approval below the
// margin floor is refused and leaves the quote untouched.
func (u *Usecase) FinanceDecision(ctx context.Context, actor profile.RequestContext, in DecisionInput) (q *quote.Quote, err error) {
	defer func() { u.record("finance_decision", err) }()

	if err := requireRole(actor, "Only finance or master users can record finance decisions",
		profile.RoleFinance, profile.RoleMaster); err != nil {
		return nil, err
	}
	if in.QuoteID == "" {
		return nil, apperr.BadInput("quoteId is required")
	}
	if strings.TrimSpace(in.Decision) == "" {
		return nil, apperr.BadInput("decision is required")
	}

	// The stored limit is only a last resort behind the explicit value and
	// the snapshot; it is read outside the transaction.
	var (
		storeLimit *float64
		storeErr   error
	)
	if in.FinanceLimitPercent == nil {
		if l, err := u.guardrail.Get(ctx); err != nil {
			storeErr = err
		} else {
			storeLimit = &l.Percent
		}
	}

	now := u.now()
	var (
		margin   *float64
		limit    float64
		breached bool
	)
	q, prev, err := u.mutate(ctx, in.QuoteID, func(q *quote.Quote) error {
		if q.WorkflowState != quote.StateFinanceReview {
			return apperr.InvalidState("Quote is not in finance review")
		}

		snap := q.FinanceThresholdSnapshot
		switch {
		case in.FinanceLimitPercent != nil:
			limit = *in.FinanceLimitPercent
		case snap != nil:
			limit = snap.LimitPercent
		case storeLimit != nil:
			limit = *storeLimit
		default:
			return apperr.Internal(storeErr)
		}
		margin = in.MarginPercent
		if margin == nil && snap != nil {
			margin = snap.MarginPercent
		}

		if in.Decision == string(quote.StateApproved) && margin != nil && *margin < limit {
			return apperr.Guardrail(fmt.Sprintf(
				"Margin %.2f%% is below the finance limit of %.2f%%; quote cannot be approved", *margin, limit))
		}

		breached = margin == nil || *margin < limit
		q.FinanceMarginBreached = breached
		// anything but "approved" is recorded as a rejection
		q.FinanceDecisionStatus = strPtr(string(quote.FinanceTargetState(in.Decision)))
		q.FinanceDecisionNotes = in.Notes
		q.FinanceDecisionBy = strPtr(actor.UserID)
		q.FinanceDecisionAt = timePtr(now)
		if q.FinanceReviewerID == nil {
			q.FinanceReviewerID = strPtr(actor.UserID)
		}
		q.SetState(quote.FinanceTargetState(in.Decision))
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.Append(ctx, audit.Entry{
		QuoteID:       q.ID,
		EventType:     quoteevent.TypeFinanceDecision,
		Actor:         actor,
		PreviousState: string(prev),
		NewState:      string(q.WorkflowState),
		Payload: map[string]any{
			"decision":            string(q.WorkflowState),
			"notes":               in.Notes,
			"marginPercent":       margin,
			"financeLimitPercent": limit,
			"breached":            breached,
		},
	})
	return q, nil
}

func (u *Usecase) notifyFinanceTeam(ctx context.Context, q *quote.Quote, reviewer profile.RequestContext) {
	team, err := u.profiles.ListByRole(ctx, profile.RoleFinance)
	if err != nil {
		u.metrics.IncSideEffectFailure("notification")
		u.log.Warn().Err(err).Str("quote_id", q.ID).Msg("workflow: could not load finance team")
		return
	}
	to := make([]string, 0, len(team))
	for _, p := range team {
		to = append(to, p.Email)
	}

	var b strings.Builder
	b.WriteString("<p>A quote has been routed to finance review.</p><ul>")
	fmt.Fprintf(&b, "<li>Quote: %s</li>", html.EscapeString(q.ID))
	fmt.Fprintf(&b, "<li>Customer: %s</li>", html.EscapeString(q.CustomerName))
	fmt.Fprintf(&b, "<li>Reviewer: %s</li>", html.EscapeString(reviewer.DisplayName()))
	if s := q.FinanceThresholdSnapshot; s != nil {
		fmt.Fprintf(&b, "<li>Margin below limit: %t (limit %.2f%%)</li>", s.Breached, s.LimitPercent)
	}
	b.WriteString("</ul>")
	if link := u.quoteURL(q.ID); link != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Open quote</a></p>`, html.EscapeString(link))
	}

	u.notify(ctx, q.ID, "finance_review", notification.Message{
		To:      to,
		Subject: fmt.Sprintf("Quote %s requires finance review", q.ID),
		HTML:    b.String(),
	})
}

func (u *Usecase) notifyOwner(ctx context.Context, q *quote.Quote, reviewer profile.RequestContext, in DecisionInput) {
	if q.SubmittedByEmail == nil || *q.SubmittedByEmail == "" {
		return
	}
	notes := ""
	if in.Notes != nil {
		notes = *in.Notes
	}
	u.notify(ctx, q.ID, "admin_decision", notification.Message{
		To:           []string{*q.SubmittedByEmail},
		TemplateType: emailtemplate.TypeQuoteAdminDecision,
		TemplateData: map[string]any{
			"quoteId":      q.ID,
			"customerName": q.CustomerName,
			"decision":     in.Decision,
			"notes":        notes,
			"reviewerName": reviewer.DisplayName(),
			"quoteUrl":     u.quoteURL(q.ID),
		},
	})
}
