package quote

import (
	"testing"
	"time"
)

func TestLegacyStatus(t *testing.T) {
	tests := []struct {
		s       State
		claimed bool
		want    string
	}{
		{StateDraft, false, "draft"},
		{StateSubmitted, false, "submitted"},
		{StateAdminReview, false, "under-review"},
		{StateFinanceReview, false, "pending_approval"},
		{StateFinanceReview, true, "under-review"},
		{StateApproved, false, "approved"},
		{StateRejected, true, "rejected"},
		{StateNeedsRevision, false, "draft"},
	}
	for _, tt := range tests {
		if got := LegacyStatus(tt.s, tt.claimed); got != tt.want {
			t.Fatalf("LegacyStatus(%s,%v) = %q, want %q", tt.s, tt.claimed, got, tt.want)
		}
	}
}

func TestSetState_KeepsStatusInSync(t *testing.T) {
	q := &Quote{}
	q.SetState(StateFinanceReview)
	if q.Status != LegacyPendingApproval {
		t.Fatalf("status = %q", q.Status)
	}
	rev := "F1"
	q.FinanceReviewerID = &rev
	q.SyncStatus()
	if q.WorkflowState != StateFinanceReview || q.Status != LegacyUnderReview {
		t.Fatalf("got %s/%s", q.WorkflowState, q.Status)
	}
}

func TestClaimRules(t *testing.T) {
	r, ok := ClaimRuleFor(LaneAdmin)
	if !ok || r.From != StateSubmitted || r.To != StateAdminReview || r.ExclusiveOnReviewer {
		t.Fatalf("admin rule = %+v", r)
	}
	r, ok = ClaimRuleFor(LaneFinance)
	if !ok || r.From != StateFinanceReview || r.To != StateFinanceReview || !r.ExclusiveOnReviewer {
		t.Fatalf("finance rule = %+v", r)
	}
	if _, ok := ClaimRuleFor("owner"); ok {
		t.Fatalf("owner is not a claimable lane")
	}
}

func TestAdminDecisionTargets(t *testing.T) {
	want := map[AdminDecision]State{
		AdminApproved:        StateApproved,
		AdminRejected:        StateRejected,
		AdminNeedsRevision:   StateNeedsRevision,
		AdminRequiresFinance: StateFinanceReview,
	}
	for d, s := range want {
		got, ok := d.TargetState()
		if !ok || got != s {
			t.Fatalf("%s -> %s (%v), want %s", d, got, ok, s)
		}
	}
	if _, ok := AdminDecision("escalate").TargetState(); ok {
		t.Fatalf("unknown decision must not map")
	}
	if FinanceTargetState("approved") != StateApproved || FinanceTargetState("anything") != StateRejected {
		t.Fatalf("finance mapping broken")
	}
}

func TestCaptureSnapshot_SyncsFlags(t *testing.T) {
	q := &Quote{}
	m := 10.0
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	q.CaptureSnapshot(ThresholdSnapshot{MarginPercent: &m, LimitPercent: 22, Breached: true, CapturedAt: at})
	if !q.FinanceMarginBreached || !q.RequiresFinanceApproval {
		t.Fatalf("derived flags not synced: %+v", q)
	}
	s := q.FinanceThresholdSnapshot
	if s == nil || *s.MarginPercent != 10 || s.LimitPercent != 22 || !s.CapturedAt.Equal(at) {
		t.Fatalf("snapshot = %+v", s)
	}

	q.ClearFinanceFlags()
	if q.FinanceMarginBreached || q.RequiresFinanceApproval || q.FinanceThresholdSnapshot == nil {
		t.Fatalf("ClearFinanceFlags must only clear flags: %+v", q)
	}
}
