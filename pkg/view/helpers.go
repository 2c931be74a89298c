package view

import (
	"fmt"
	"strings"
)

// MoneyFromCents formats cents with the currency symbol, e.g. 1099 USD -> "$10.99".
func MoneyFromCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, currencySymbol(currency), cents/100, cents%100)
}

func currencySymbol(code string) string {
	switch strings.ToUpper(code) {
	case "", "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	default:
		return code + " "
	}
}

// Stars renders a 0-5 rating as filled and empty stars, rounding to the nearest whole star.
func Stars(rating float64) string {
	n := int(rating + 0.5)
	n = max(0, min(5, n))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
