package eligibility

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/upb/credit-limit-service/utils"
)

var requiredFields = []string{
	"card",
	"fullName",
	"accountNumber",
	"currentLimit",
	"requestedLimit",
	"annualIncome",
	"monthlyExpenses",
}

var numericFields = []string{
	"currentLimit",
	"requestedLimit",
	"annualIncome",
	"monthlyExpenses",
}

// decimalLiteral is the decimal form of a numeric string: optional sign,
// digits with an optional fraction, optional exponent. No digit separators.
var decimalLiteral = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)$`)

// Validate checks an untyped payload, typically decoded from a JSON request
// body, and converts it into an IncreaseRequest. Checks run in a fixed order
// and the first failure is returned: required fields, card type, numeric
// coercion, then ranges.
func Validate(raw any) (IncreaseRequest, error) {
	payload, ok := raw.(map[string]any)
	if !ok || payload == nil {
		return IncreaseRequest{}, MalformedPayload("")
	}

	for _, field := range requiredFields {
		value, present := payload[field]
		if !present || value == nil {
			return IncreaseRequest{}, missingField(field)
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			return IncreaseRequest{}, missingField(field)
		}
	}

	card, _ := payload["card"].(string)
	if err := utils.ValidateVar(card, cardOneOfTag); err != nil {
		return IncreaseRequest{}, invalidCardType()
	}

	fullName, ok := payload["fullName"].(string)
	if !ok {
		return IncreaseRequest{}, MalformedPayload("fullName")
	}
	accountNumber, ok := payload["accountNumber"].(string)
	if !ok {
		return IncreaseRequest{}, MalformedPayload("accountNumber")
	}

	req := IncreaseRequest{
		Card:          CardType(card),
		FullName:      strings.TrimSpace(fullName),
		AccountNumber: strings.TrimSpace(accountNumber),
		Reason:        reasonOf(payload["reason"]),
	}

	targets := []*float64{
		&req.CurrentLimit,
		&req.RequestedLimit,
		&req.AnnualIncome,
		&req.MonthlyExpenses,
	}
	for i, field := range numericFields {
		n := toNumber(payload[field])
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return IncreaseRequest{}, invalidNumeric(field)
		}
		*targets[i] = n
	}

	if err := utils.ValidateStruct(req); err != nil {
		for _, field := range numericFields {
			if utils.FailedTag(err, field) != "" {
				return IncreaseRequest{}, outOfRange(field)
			}
		}
		return IncreaseRequest{}, MalformedPayload("")
	}

	return req, nil
}

// toNumber coerces a decoded JSON value to a float64. Values with no numeric
// reading yield NaN.
func toNumber(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		return parseNumber(string(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		return parseNumber(s)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

// parseNumber reads s the way a browser's Number() does: decimal literals,
// and unsigned 0x, 0o or 0b integers. Anything else is NaN. Overflowing
// values come back as ±Inf so they fail the finiteness check instead of being
// treated as unparseable.
func parseNumber(s string) float64 {
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return parseRadixInteger(s[2:], 16)
		case 'o', 'O':
			return parseRadixInteger(s[2:], 8)
		case 'b', 'B':
			return parseRadixInteger(s[2:], 2)
		}
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return n
}

func parseRadixInteger(digits string, base int) float64 {
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return math.NaN()
	}
	i, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return f
}

func reasonOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
