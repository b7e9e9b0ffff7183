/*
money.go - Integer-cent money arithmetic

PURPOSE:
  Converts external decimal-dollar input into integer cents and back. The
  computation path never touches a float; decimal.Decimal is used only here,
  at the ingest/egress boundary, to get exact half-to-even rounding for
  at-most-two-fractional-digit dollar strings.

WHY CENTS:
  All solver and ledger arithmetic is int64 cents. That keeps the DP state
  space, the CP-SAT linear expressions, and the ledger identities exact and
  free of floating-point drift.

CEILING:
  A hard cap of 1,000,000,000 cents ($10,000,000) bounds every amount so
  that 30 days * ceiling stays far below the int64 range.

SEE ALSO:
  - types.go: value types built from cents
  - errors.go: InvalidAmountError and friends
*/
package cashflow

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxAmountCents is the hard ceiling on any single monetary amount.
const MaxAmountCents int64 = 1_000_000_000

// ToCents converts a decimal dollar string (at most two fractional digits)
// into signed integer cents. Extra precision is rejected rather than
// silently rounded; rounding mode is half-to-even for the two digits kept.
func ToCents(dollars string) (int64, error) {
	d, err := decimal.NewFromString(dollars)
	if err != nil {
		return 0, &InvalidAmountError{Input: dollars, Reason: "not a decimal number"}
	}
	if d.Exponent() < -2 {
		// More than two fractional digits: reject, don't truncate.
		scaled := d.Shift(2)
		if !scaled.Truncate(0).Equal(scaled) {
			return 0, &InvalidAmountError{Input: dollars, Reason: "more than two fractional digits"}
		}
	}
	cents := d.Shift(2).RoundBank(0)
	if !cents.IsInteger() {
		return 0, &InvalidAmountError{Input: dollars, Reason: "not representable in whole cents"}
	}
	value := cents.IntPart()
	if value > MaxAmountCents || value < -MaxAmountCents {
		return 0, &InvalidAmountError{Input: dollars, Reason: "exceeds amount ceiling"}
	}
	return value, nil
}

// CheckAmount validates that cents is within [-ceiling, +ceiling] (or
// [0, ceiling] when negative is not allowed) without performing conversion.
func CheckAmount(cents int64, allowNegative bool) error {
	if !allowNegative && cents < 0 {
		return &InvalidAmountError{Input: fmt.Sprintf("%d", cents), Reason: "amount must be non-negative"}
	}
	if cents > MaxAmountCents || cents < -MaxAmountCents {
		return &InvalidAmountError{Input: fmt.Sprintf("%d", cents), Reason: "exceeds amount ceiling"}
	}
	return nil
}

// CentsToString renders cents as a "D.CC" dollar string, negative values
// carrying a leading minus sign.
func CentsToString(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100
	s := fmt.Sprintf("%d.%02d", whole, frac)
	if neg {
		return "-" + s
	}
	return s
}
