package eligibility

import "strings"

// CeilingMultiplier caps any requested limit at this multiple of the current
// limit, regardless of card.
const CeilingMultiplier = 3.0

// Policy holds the thresholds that apply to a single card product.
type Policy struct {
	Card          CardType `json:"card"`
	Name          string   `json:"name"`
	Tagline       string   `json:"tagline"`
	MaxDTI        float64  `json:"maxDti"`
	CapMultiplier float64  `json:"capMultiplier"`
}

// policies is ordered for display and never mutated.
var policies = [...]Policy{
	{Card: CardVisa, Name: "Visa", Tagline: "Standard criteria", MaxDTI: 0.40, CapMultiplier: 1.5},
	{Card: CardMastercard, Name: "Mastercard", Tagline: "Balanced criteria", MaxDTI: 0.45, CapMultiplier: 1.75},
	{Card: CardAmex, Name: "American Express", Tagline: "Flexible criteria", MaxDTI: 0.50, CapMultiplier: 2.0},
}

// cardOneOfTag is the validator tag accepting exactly the known card types.
var cardOneOfTag = func() string {
	names := make([]string, len(policies))
	for i, p := range policies {
		names[i] = string(p.Card)
	}
	return "oneof=" + strings.Join(names, " ")
}()

// PolicyFor returns the policy for a card.
func PolicyFor(card CardType) (Policy, bool) {
	for _, p := range policies {
		if p.Card == card {
			return p, true
		}
	}
	return Policy{}, false
}

// Policies returns a copy of the policy table in display order.
func Policies() []Policy {
	out := make([]Policy, len(policies))
	copy(out, policies[:])
	return out
}
