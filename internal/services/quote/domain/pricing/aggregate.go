package pricing

import (
	"math"
	"slices"
)

// Breakdown is the four-bucket cost summary shown to customers. Extras are
// reported inside Logistics.
type Breakdown struct {
	Food      float64 `json:"food"`
	Labor     float64 `json:"labor"`
	Equipment float64 `json:"equipment"`
	Logistics float64 `json:"logistics"`
}

// Total sums the four buckets.
func (b Breakdown) Total() float64 {
	return b.Food + b.Labor + b.Equipment + b.Logistics
}

// Quote is a priced set of line items. Every figure is derived from
// LineItems and GuestCount alone.
type Quote struct {
	GuestCount           int        `json:"guest_count"`
	LineItems            []LineItem `json:"line_items"`
	DirectCost           float64    `json:"direct_cost"`
	Overhead             float64    `json:"overhead"`
	ProfitComponent      float64    `json:"profit_component"`
	FinalPriceRaw        float64    `json:"final_price_raw"`
	FinalPrice           float64    `json:"final_price"`
	OutputTax            float64    `json:"output_tax"`
	FinalPriceWithTax    float64    `json:"final_price_with_tax"`
	PricePerGuest        float64    `json:"price_per_guest"`
	PricePerGuestWithTax float64    `json:"price_per_guest_with_tax"`
	Breakdown            Breakdown  `json:"breakdown"`
}

// CategoryTotal sums line totals of one category. Unlike Breakdown, the
// categories partition the lines disjointly.
func (q Quote) CategoryTotal(category Category) float64 {
	var total float64
	for _, item := range q.LineItems {
		if item.Category == category {
			total += item.LineTotal
		}
	}
	return total
}

// Aggregate prices items for guests. It never re-derives line quantities;
// it only sums line totals and applies rates.
func Aggregate(rates Rates, guests int, items []LineItem) (Quote, error) {
	if guests <= 0 {
		return Quote{}, ErrInvalidGuestCount
	}
	if !(rates.RoundingStep > 0) {
		return Quote{}, configError("rounding step %v must be positive", rates.RoundingStep)
	}

	q := Quote{
		GuestCount: guests,
		LineItems:  slices.Clone(items),
	}
	for _, item := range q.LineItems {
		q.DirectCost += item.LineTotal
		switch item.Category {
		case CategoryFood:
			q.Breakdown.Food += item.LineTotal
		case CategoryLabor:
			q.Breakdown.Labor += item.LineTotal
		case CategoryRental:
			q.Breakdown.Equipment += item.LineTotal
		default:
			q.Breakdown.Logistics += item.LineTotal
		}
	}

	q.Overhead = q.DirectCost * rates.Overhead
	q.ProfitComponent = q.DirectCost * rates.Profit
	q.FinalPriceRaw = q.DirectCost + q.Overhead + q.ProfitComponent
	q.FinalPrice = math.Ceil(q.FinalPriceRaw/rates.RoundingStep) * rates.RoundingStep
	q.OutputTax = q.FinalPrice * rates.OutputTax
	q.FinalPriceWithTax = q.FinalPrice + q.OutputTax
	q.PricePerGuest = math.Ceil(q.FinalPrice / float64(guests))
	q.PricePerGuestWithTax = math.Ceil(q.FinalPriceWithTax / float64(guests))
	return q, nil
}
