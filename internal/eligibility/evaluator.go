package eligibility

import (
	"fmt"
	"math"
)

const (
	ceilingMessage  = "Requested limit exceeds 3x your current limit, which is outside our maximum increase policy."
	approvedMessage = "Your request meets the criteria for this card. Your new limit will appear on your account shortly."
)

// Evaluate applies the card policy to a validated request. Guards run in
// order and the first failing guard decides:
//
//  1. requested limit above CeilingMultiplier x current limit
//  2. debt-to-income ratio above the card's MaxDTI
//  3. requested limit above floor(current limit x CapMultiplier)
//
// A request that passes every guard is approved for exactly the requested
// amount. The only error is an unknown card, which Validate already rules out.
func Evaluate(req IncreaseRequest) (Decision, error) {
	if req.RequestedLimit > req.CurrentLimit*CeilingMultiplier {
		return reject(OutcomeCeilingExceeded, ceilingMessage), nil
	}

	policy, ok := PolicyFor(req.Card)
	if !ok {
		return Decision{}, invalidCardType()
	}

	dti := debtToIncome(req.AnnualIncome, req.MonthlyExpenses)
	if dti > policy.MaxDTI {
		return reject(OutcomeDTIExceeded, fmt.Sprintf(
			"Your current debt-to-income ratio (%s%%) exceeds the %s%% limit for this card.",
			toFixed(dti*100, 1),
			toFixed(policy.MaxDTI*100, 0),
		)), nil
	}

	maxAllowed := MaxAllowedLimit(policy, req.CurrentLimit)
	if req.RequestedLimit > maxAllowed {
		return reject(OutcomeCapExceeded, fmt.Sprintf(
			"For this card, the maximum allowable limit is %s. Please request a lower amount.",
			formatCurrency(maxAllowed),
		)), nil
	}

	return approve(req.RequestedLimit), nil
}

// Decide validates a raw payload and evaluates it.
func Decide(raw any) (Decision, error) {
	req, err := Validate(raw)
	if err != nil {
		return Decision{}, err
	}
	return Evaluate(req)
}

// MaxAllowedLimit is the largest limit a card's cap multiplier permits.
func MaxAllowedLimit(policy Policy, currentLimit float64) float64 {
	return math.Floor(currentLimit * policy.CapMultiplier)
}

// debtToIncome treats a non-positive monthly income as a ratio of 1. Validate
// requires a positive annual income, so the fallback only matters for
// requests built without it.
func debtToIncome(annualIncome, monthlyExpenses float64) float64 {
	monthlyIncome := annualIncome / 12
	if monthlyIncome > 0 {
		return monthlyExpenses / monthlyIncome
	}
	return 1
}
