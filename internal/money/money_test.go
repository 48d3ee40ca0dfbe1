package money

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		amount   float64
		currency string
		want     string
	}{
		{440000, "brl", "R$ 440.000,00"},
		{1234.5, "BRL", "R$ 1.234,50"},
		{0.99, "usd", "US$ 0,99"},
		{10, "gbp", "GBP 10,00"},
	}
	for _, tc := range cases {
		if got := Format(tc.amount, tc.currency); got != tc.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestFormatMinor(t *testing.T) {
	if got := FormatMinor(59900, "brl"); got != "R$ 599,00" {
		t.Fatalf("got %q", got)
	}
}
