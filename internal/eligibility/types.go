package eligibility

// CardType identifies a card product.
type CardType string

const (
	CardVisa       CardType = "visa"
	CardMastercard CardType = "mastercard"
	CardAmex       CardType = "amex"
)

// IncreaseRequest is a validated credit limit increase request.
// All numeric fields are finite.
type IncreaseRequest struct {
	Card            CardType `json:"card"`
	FullName        string   `json:"fullName"`
	AccountNumber   string   `json:"accountNumber"`
	CurrentLimit    float64  `json:"currentLimit" validate:"gt=0"`
	RequestedLimit  float64  `json:"requestedLimit" validate:"gt=0"`
	AnnualIncome    float64  `json:"annualIncome" validate:"gt=0"`
	MonthlyExpenses float64  `json:"monthlyExpenses" validate:"gte=0"`
	Reason          string   `json:"reason,omitempty"`
}

// Outcome names the rule that produced a decision.
type Outcome string

const (
	OutcomeApproved        Outcome = "approved"
	OutcomeCeilingExceeded Outcome = "rejected_ceiling"
	OutcomeDTIExceeded     Outcome = "rejected_dti"
	OutcomeCapExceeded     Outcome = "rejected_cap"
)

// Decision is the result of evaluating a request. ApprovedLimit is set only
// when Approved is true.
type Decision struct {
	Approved      bool     `json:"approved"`
	ApprovedLimit *float64 `json:"approvedLimit,omitempty"`
	Message       string   `json:"message"`
	Outcome       Outcome  `json:"-"`
}

func approve(limit float64) Decision {
	return Decision{
		Approved:      true,
		ApprovedLimit: &limit,
		Message:       approvedMessage,
		Outcome:       OutcomeApproved,
	}
}

func reject(outcome Outcome, message string) Decision {
	return Decision{
		Approved: false,
		Message:  message,
		Outcome:  outcome,
	}
}
