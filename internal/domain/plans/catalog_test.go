package plans

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Pro(t *testing.T) {
	p, err := Lookup("pro")
	require.NoError(t, err)

	assert.Equal(t, int64(59900), p.AmountMinor)
	assert.Equal(t, CurrencyBRL, p.Currency)
	assert.Equal(t, ModeSubscription, p.Mode)
	assert.Equal(t, "month", p.Interval)
	assert.True(t, p.Recurring())
}

func TestLookup_NormalizesName(t *testing.T) {
	p, err := Lookup("  PREMIUM ")
	require.NoError(t, err)
	assert.Equal(t, "premium", p.Name)
}

func TestLookup_Report(t *testing.T) {
	p, err := Lookup(ReportPlan)
	require.NoError(t, err)
	assert.Equal(t, ModePayment, p.Mode)
	assert.False(t, p.Recurring())
	assert.Empty(t, p.Interval)
}

func TestLookup_Unknown(t *testing.T) {
	for _, name := range []string{"", "enterprise", "pro-anual"} {
		_, err := Lookup(name)
		assert.True(t, errors.Is(err, ErrInvalidPlan), "plan %q", name)
	}
}

func TestCatalog_IsCopyAndSorted(t *testing.T) {
	c := Catalog()
	require.Len(t, c, 4)
	for i := 1; i < len(c); i++ {
		assert.LessOrEqual(t, c[i-1].AmountMinor, c[i].AmountMinor)
	}

	c[0].AmountMinor = 1
	again := Catalog()
	assert.NotEqual(t, int64(1), again[0].AmountMinor)
}
