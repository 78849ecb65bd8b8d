package quote

type State string

const (
	StateDraft         State = "draft"
	StateSubmitted     State = "submitted"
	StateAdminReview   State = "admin_review"
	StateFinanceReview State = "finance_review"
	StateApproved      State = "approved"
	StateRejected      State = "rejected"
	StateNeedsRevision State = "needs_revision"
)

// Legacy status vocabulary accepted by the old check constraint on quotes.status.
const (
	LegacyDraft           = "draft"
	LegacySubmitted       = "submitted"
	LegacyPendingApproval = "pending_approval"
	LegacyApproved        = "approved"
	LegacyRejected        = "rejected"
	LegacyInProcess       = "in_process"
	LegacyUnderReview     = "under-review"
)

var legacyByState = map[State]string{
	StateDraft:         LegacyDraft,
	StateSubmitted:     LegacySubmitted,
	StateAdminReview:   LegacyUnderReview,
	StateFinanceReview: LegacyPendingApproval,
	StateApproved:      LegacyApproved,
	StateRejected:      LegacyRejected,
	StateNeedsRevision: LegacyDraft,
}

// LegacyStatus is the single mapping from workflow state to the legacy status
// column. A finance review that has a reviewer is reported as under-review.
func LegacyStatus(s State, financeClaimed bool) string {
	if s == StateFinanceReview && financeClaimed {
		return LegacyUnderReview
	}
	if v, ok := legacyByState[s]; ok {
		return v
	}
	return LegacyDraft
}

func (s State) Valid() bool {
	_, ok := legacyByState[s]
	return ok
}

// Lane is a review track that can be claimed.
type Lane string

const (
	LaneAdmin   Lane = "admin"
	LaneFinance Lane = "finance"
)

func (l Lane) Valid() bool { return l == LaneAdmin || l == LaneFinance }

// ClaimRule is the compare-and-swap contract of a lane claim: the quote must
// be in From, and after the claim it is in To with the reviewer recorded.
type ClaimRule struct {
	From State
	To   State
	// ExclusiveOnReviewer means the state does not change on claim, so the
	// reviewer column itself (NULL or the caller) guards exclusivity.
	ExclusiveOnReviewer bool
}

var claimRules = map[Lane]ClaimRule{
	LaneAdmin:   {From: StateSubmitted, To: StateAdminReview},
	LaneFinance: {From: StateFinanceReview, To: StateFinanceReview, ExclusiveOnReviewer: true},
}

func ClaimRuleFor(l Lane) (ClaimRule, bool) {
	r, ok := claimRules[l]
	return r, ok
}

// AssignLane names the id column a MASTER can reassign.
type AssignLane string

const (
	AssignOwner   AssignLane = "owner"
	AssignAdmin   AssignLane = "admin"
	AssignFinance AssignLane = "finance"
)

func (l AssignLane) Valid() bool {
	return l == AssignOwner || l == AssignAdmin || l == AssignFinance
}

// submittable lists the states submit may start from.
var submittable = map[State]bool{
	StateDraft:     true,
	StateSubmitted: true,
}

func CanSubmitFrom(s State) bool { return submittable[s] }

// AdminDecision is the outcome an admin reviewer records.
type AdminDecision string

const (
	AdminApproved        AdminDecision = "approved"
	AdminRejected        AdminDecision = "rejected"
	AdminNeedsRevision   AdminDecision = "needs_revision"
	AdminRequiresFinance AdminDecision = "requires_finance"
)

var adminTargets = map[AdminDecision]State{
	AdminApproved:        StateApproved,
	AdminRejected:        StateRejected,
	AdminNeedsRevision:   StateNeedsRevision,
	AdminRequiresFinance: StateFinanceReview,
}

// TargetState returns the state an admin decision leads to.
func (d AdminDecision) TargetState() (State, bool) {
	s, ok := adminTargets[d]
	return s, ok
}

// FinanceTargetState maps a finance decision: only "approved" approves.
func FinanceTargetState(decision string) State {
	if decision == string(StateApproved) {
		return StateApproved
	}
	return StateRejected
}
