package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRand renders an amount as South African Rand with thousand separators.
func FormatRand(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	s := amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	return fmt.Sprintf("%sR%s.%s", sign, groupThousands(intPart), fracPart)
}

// ParseAmount parses user-entered currency input like "R 1,250.50" or "350".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToUpper(s), "R")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(s)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
