package workflow

type SubmitInput struct {
	QuoteID string
}

type ClaimInput struct {
	QuoteID string
	Lane    string
}

// DecisionInput is shared by the admin and finance decisions. Nil pointers
// mean the caller omitted the value.
type DecisionInput struct {
	QuoteID             string
	Decision            string
	Notes               *string
	MarginPercent       *float64
	FinanceLimitPercent *float64
}

// ReassignInput clears the lane's assignment when TargetUserID is nil or empty.
type ReassignInput struct {
	QuoteID      string
	Lane         string
	TargetUserID *string
}
