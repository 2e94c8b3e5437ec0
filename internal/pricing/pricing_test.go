package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func standardRule() Rule {
	return Rule{
		PricePerPerson: d("45"),
		ServiceFeePct:  d("10"),
		DeliveryFee:    d("50"),
		SetupFee:       d("0"),
		AdditionalFees: nil,
		DepositPct:     d("30"),
		MinimumGuests:  25,
	}
}

func TestComputeQuote_StandardBreakdown(t *testing.T) {
	quote := ComputeQuote(100, standardRule(), d("0.085"))
	require.NotNil(t, quote)

	assert.True(t, quote.Base.Equal(d("4500")), "base = %s", quote.Base)
	assert.True(t, quote.ServiceFee.Equal(d("450")), "service fee = %s", quote.ServiceFee)
	assert.True(t, quote.FlatFees.Equal(d("50")), "flat fees = %s", quote.FlatFees)
	assert.True(t, quote.Subtotal.Equal(d("5000")), "subtotal = %s", quote.Subtotal)
	assert.True(t, quote.Tax.Equal(d("425")), "tax = %s", quote.Tax)
	assert.True(t, quote.Total.Equal(d("5425")), "total = %s", quote.Total)
	assert.True(t, quote.Deposit.Equal(d("1627.5")), "deposit = %s", quote.Deposit)
	assert.True(t, quote.Remaining.Equal(d("3797.5")), "remaining = %s", quote.Remaining)
}

func TestComputeQuote_BelowMinimumGuests(t *testing.T) {
	assert.Nil(t, ComputeQuote(10, standardRule(), d("0.085")))
	assert.Nil(t, ComputeQuote(24, standardRule(), d("0.085")))
}

func TestComputeQuote_MissingGuestCount(t *testing.T) {
	assert.Nil(t, ComputeQuote(0, standardRule(), d("0.085")))
	assert.Nil(t, ComputeQuote(-5, standardRule(), d("0.085")))
}

func TestComputeQuote_AtExactMinimum(t *testing.T) {
	quote := ComputeQuote(25, standardRule(), d("0.085"))
	require.NotNil(t, quote)
	assert.True(t, quote.Base.Equal(d("1125")))
}

func TestComputeQuote_TotalIdentity(t *testing.T) {
	rules := []Rule{
		standardRule(),
		{
			PricePerPerson: d("33.33"),
			ServiceFeePct:  d("12.5"),
			DeliveryFee:    d("19.99"),
			SetupFee:       d("75.01"),
			AdditionalFees: []decimal.Decimal{d("10"), d("2.49"), d("0.01")},
			DepositPct:     d("15"),
			MinimumGuests:  1,
		},
		{
			PricePerPerson: d("0.07"),
			ServiceFeePct:  d("3"),
			DeliveryFee:    d("0"),
			SetupFee:       d("0"),
			DepositPct:     d("100"),
			MinimumGuests:  1,
		},
	}

	for _, rule := range rules {
		for _, guests := range []int{1, 7, 100, 9999} {
			quote := ComputeQuote(guests, rule, d("0.085"))
			if guests < rule.MinimumGuests {
				assert.Nil(t, quote, "guests %d below minimum %d must yield no quote", guests, rule.MinimumGuests)
				continue
			}
			require.NotNil(t, quote)

			sum := quote.Base.Add(quote.ServiceFee).Add(quote.FlatFees).Add(quote.Tax)
			assert.True(t, quote.Total.Equal(sum),
				"total %s != base+serviceFee+flatFees+tax %s", quote.Total, sum)

			split := quote.Deposit.Add(quote.Remaining)
			assert.True(t, split.Equal(quote.Total),
				"deposit+remaining %s != total %s", split, quote.Total)
		}
	}
}

func TestComputeQuote_Deterministic(t *testing.T) {
	rule := standardRule()
	first := ComputeQuote(42, rule, d("0.085"))
	second := ComputeQuote(42, rule, d("0.085"))

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestComputeQuote_ZeroDeposit(t *testing.T) {
	rule := standardRule()
	rule.DepositPct = d("0")

	quote := ComputeQuote(50, rule, d("0.085"))
	require.NotNil(t, quote)
	assert.True(t, quote.Deposit.IsZero())
	assert.True(t, quote.Remaining.Equal(quote.Total))
}

func TestComputeQuote_ConfigurableTaxRate(t *testing.T) {
	quote := ComputeQuote(100, standardRule(), d("0"))
	require.NotNil(t, quote)
	assert.True(t, quote.Tax.IsZero())
	assert.True(t, quote.Total.Equal(quote.Subtotal))

	quote = ComputeQuote(100, standardRule(), d("0.2"))
	require.NotNil(t, quote)
	assert.True(t, quote.Tax.Equal(d("1000")))
}

func TestQuoteRounded(t *testing.T) {
	rule := Rule{
		PricePerPerson: d("33.335"),
		ServiceFeePct:  d("10"),
		DeliveryFee:    d("0"),
		SetupFee:       d("0"),
		DepositPct:     d("30"),
		MinimumGuests:  1,
	}

	quote := ComputeQuote(3, rule, d("0.085"))
	require.NotNil(t, quote)

	rounded := quote.Rounded()
	assert.True(t, rounded.Base.Equal(d("100.01")), "rounded base = %s", rounded.Base)
	// Receiver keeps full precision
	assert.True(t, quote.Base.Equal(d("100.005")))
}

func TestEngine(t *testing.T) {
	engine := NewEngine(d("0.085"))

	quote := engine.Quote(100, standardRule())
	require.NotNil(t, quote)
	assert.True(t, quote.Total.Equal(d("5425")))
	assert.True(t, engine.TaxRate().Equal(d("0.085")))

	assert.Nil(t, engine.Quote(10, standardRule()))
}
