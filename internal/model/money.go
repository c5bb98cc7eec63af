package model

import (
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatMoney renders a decimal amount as a localized currency string,
// e.g. FormatMoney(99.5, "USD", "en") = "$ 99.50".
// Unknown currency codes fall back to USD, unknown languages to English.
func FormatMoney(amount float64, currencyCode, lang string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.USD
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	return message.NewPrinter(tag).Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}

// CentsToAmount converts a minor-unit amount to its decimal value.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

// ParseMoney reads the numeric value back out of a formatted currency
// string. Symbols and currency codes are stripped. Of the remaining
// separators, the last one followed by one or two digits is the decimal
// separator; every other separator is grouping. This holds for FormatMoney
// output in both dot-decimal and comma-decimal locales.
func ParseMoney(s string) float64 {
	var digits strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			digits.WriteRune(r)
		}
	}
	num := digits.String()

	decimal := strings.LastIndexAny(num, ".,")
	if decimal >= 0 {
		if frac := len(num) - decimal - 1; frac < 1 || frac > 2 {
			decimal = -1
		}
	}

	var clean strings.Builder
	for i, r := range num {
		switch {
		case (r >= '0' && r <= '9') || r == '-':
			clean.WriteRune(r)
		case i == decimal:
			clean.WriteByte('.')
		}
	}

	f, err := strconv.ParseFloat(clean.String(), 64)
	if err != nil {
		return 0
	}
	return f
}
