// Package money formats currency amounts for Brazilian readers.
package money

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"brl": "R$",
	"usd": "US$",
	"eur": "€",
}

// Format renders amount with pt-BR grouping, e.g. "R$ 440.000,00".
func Format(amount float64, currency string) string {
	cur := strings.ToLower(strings.TrimSpace(currency))
	sym, ok := symbols[cur]
	if !ok {
		sym = strings.ToUpper(cur)
	}
	p := message.NewPrinter(language.BrazilianPortuguese)
	return sym + " " + p.Sprintf("%.2f", amount)
}

// FormatMinor is Format for an amount in minor units.
func FormatMinor(minor int64, currency string) string {
	return Format(float64(minor)/100, currency)
}
