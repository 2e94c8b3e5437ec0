package pricing

import (
	"github.com/shopspring/decimal"
)

// Rule carries a catalog item's pricing terms. Percentages are expressed
// 0-100; fees are flat amounts added on top of the per-guest base.
// Rules are read-only inputs sourced from the catalog and never mutated here.
type Rule struct {
	PricePerPerson decimal.Decimal   `json:"price_per_person"`
	ServiceFeePct  decimal.Decimal   `json:"service_fee_pct"`
	DeliveryFee    decimal.Decimal   `json:"delivery_fee"`
	SetupFee       decimal.Decimal   `json:"setup_fee"`
	AdditionalFees []decimal.Decimal `json:"additional_fees,omitempty"`
	DepositPct     decimal.Decimal   `json:"deposit_pct"`
	MinimumGuests  int               `json:"minimum_guests"`
}

// Quote is the full pricing breakdown for a booking request. All values are
// full precision; rounding happens only at the presentation boundary via
// Rounded. Invariants: Total = Base + ServiceFee + FlatFees + Tax and
// Deposit + Remaining = Total.
type Quote struct {
	Base       decimal.Decimal `json:"base"`
	ServiceFee decimal.Decimal `json:"service_fee"`
	FlatFees   decimal.Decimal `json:"flat_fees"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	Deposit    decimal.Decimal `json:"deposit"`
	Remaining  decimal.Decimal `json:"remaining"`
}

var hundred = decimal.NewFromInt(100)

// ComputeQuote derives a priced estimate from the guest count and the
// catalog item's pricing rule. It returns nil when the guest count is
// missing or below the rule's minimum; that is the expected "not enough
// input yet" state consumed by the wizard, not an error.
//
// The computation order is fixed to match the breakdown shown to the user:
// base, service fee on base, flat fees, tax on the subtotal, then the
// deposit split of the total.
func ComputeQuote(guestCount int, rule Rule, taxRate decimal.Decimal) *Quote {
	if guestCount <= 0 || guestCount < rule.MinimumGuests {
		return nil
	}

	base := rule.PricePerPerson.Mul(decimal.NewFromInt(int64(guestCount)))
	serviceFee := base.Mul(rule.ServiceFeePct.Div(hundred))

	flatFees := rule.DeliveryFee.Add(rule.SetupFee)
	for _, fee := range rule.AdditionalFees {
		flatFees = flatFees.Add(fee)
	}

	subtotal := base.Add(serviceFee).Add(flatFees)
	tax := subtotal.Mul(taxRate)
	total := subtotal.Add(tax)
	deposit := total.Mul(rule.DepositPct.Div(hundred))
	remaining := total.Sub(deposit)

	return &Quote{
		Base:       base,
		ServiceFee: serviceFee,
		FlatFees:   flatFees,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		Deposit:    deposit,
		Remaining:  remaining,
	}
}

// Rounded returns a presentation copy with every amount rounded to
// 2 decimal places. The receiver keeps full precision.
func (q *Quote) Rounded() Quote {
	return Quote{
		Base:       q.Base.Round(2),
		ServiceFee: q.ServiceFee.Round(2),
		FlatFees:   q.FlatFees.Round(2),
		Subtotal:   q.Subtotal.Round(2),
		Tax:        q.Tax.Round(2),
		Total:      q.Total.Round(2),
		Deposit:    q.Deposit.Round(2),
		Remaining:  q.Remaining.Round(2),
	}
}

// Engine binds the jurisdiction tax rate from configuration so callers
// don't have to thread it through every call site.
type Engine struct {
	taxRate decimal.Decimal
}

// NewEngine creates a quote engine with the configured tax rate
func NewEngine(taxRate decimal.Decimal) *Engine {
	return &Engine{taxRate: taxRate}
}

// Quote computes a quote using the engine's tax rate
func (e *Engine) Quote(guestCount int, rule Rule) *Quote {
	return ComputeQuote(guestCount, rule, e.taxRate)
}

// TaxRate returns the configured tax rate
func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}
