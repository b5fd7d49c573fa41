package eligibility

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// formatCurrency renders a whole dollar amount with en-US digit grouping.
func formatCurrency(amount float64) string {
	return "$" + usPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
}

// toFixed rounds the exact binary value of v to places decimals, with ties
// going away from zero, and renders it without grouping. Magnitudes of 1e21
// and above are printed in shortest exponent form, as Number#toFixed does.
func toFixed(v float64, places int32) string {
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	if math.Abs(v) >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return exactDecimal(v).StringFixed(places)
}

// exactDecimal converts v without the shortest-representation rounding that
// decimal.NewFromFloat applies.
func exactDecimal(v float64) decimal.Decimal {
	mant := new(big.Float)
	exp := new(big.Float).SetFloat64(v).MantExp(mant)
	coef, _ := mant.SetMantExp(mant, 53).Int(nil)

	shift := exp - 53
	if shift >= 0 {
		return decimal.NewFromBigInt(coef.Lsh(coef, uint(shift)), 0)
	}
	// coef / 2^k == coef * 5^k / 10^k
	k := int64(-shift)
	scale := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return decimal.NewFromBigInt(coef.Mul(coef, scale), int32(-k))
}
