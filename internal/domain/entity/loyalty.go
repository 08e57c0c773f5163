package entity

// Progression is the derived loyalty state for a given cumulative spend.
// Level and progress are always recomputed from total spend, never
// incremented in place, so repeated application cannot drift.
type Progression struct {
	TotalSpend int64
	Level      int
	Progress   float64
}

// ProgressionForSpend derives level and progress-within-level from total
// spend, given a bracket size in minor units. Progress is a percentage in
// [0, 100).
func ProgressionForSpend(totalSpend, bracketSize int64) Progression {
	if totalSpend < 0 {
		totalSpend = 0
	}
	if bracketSize <= 0 {
		bracketSize = 1000
	}

	return Progression{
		TotalSpend: totalSpend,
		Level:      int(totalSpend/bracketSize) + 1,
		Progress:   float64(totalSpend%bracketSize) / float64(bracketSize) * 100,
	}
}

// CheckoutTotals breaks down the amount charged at checkout.
// All values are integer minor units.
type CheckoutTotals struct {
	Subtotal int64
	Discount int64
	Taxable  int64
	Tax      int64
	Total    int64
}

// ComputeTotals derives the charge amount from a cart subtotal. The flat
// discount applies only to authenticated sessions; tax applies to the
// discounted subtotal. Percent amounts round half-up to the nearest unit.
func ComputeTotals(subtotal int64, discountPercent, taxPercent int64, authenticated bool) CheckoutTotals {
	totals := CheckoutTotals{Subtotal: subtotal}

	if authenticated {
		totals.Discount = roundPercent(subtotal, discountPercent)
	}
	totals.Taxable = subtotal - totals.Discount
	totals.Tax = roundPercent(totals.Taxable, taxPercent)
	totals.Total = totals.Taxable + totals.Tax

	return totals
}

// roundPercent computes round(amount * percent / 100) for non-negative amounts.
func roundPercent(amount, percent int64) int64 {
	return (amount*percent + 50) / 100
}
