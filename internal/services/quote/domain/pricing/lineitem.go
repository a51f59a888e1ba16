package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Category tags a line item for reporting.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryLabor     Category = "labor"
	CategoryRental    Category = "rental"
	CategoryLogistics Category = "logistics"
	CategoryExtras    Category = "extras"
)

// Categories lists every category in line order.
var Categories = []Category{CategoryFood, CategoryLabor, CategoryLogistics, CategoryRental, CategoryExtras}

// LineItem is one auditable cost line.
type LineItem struct {
	Category Category `json:"category"`
	// Key identifies the rule that produced the line; extras use "extra".
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	Rationale string  `json:"rationale"`
	// InputTaxApplied records whether UnitPrice includes the input-tax uplift.
	InputTaxApplied bool `json:"input_tax_applied"`
}

const (
	vegetablesLineName = "Vegetables and fruit"
	extraLineKey       = "extra"
)

// InputTaxExempt reports whether a line is priced without the input-tax
// uplift: vegetables, labor, night-station add-ons and travel reimbursements.
func InputTaxExempt(category Category, name string) bool {
	if name == vegetablesLineName || category == CategoryLabor {
		return true
	}
	lower := strings.ToLower(name)
	return strings.Contains(lower, "night station") || strings.Contains(lower, "travel reimbursement")
}

type lineBuilder struct {
	inputTax float64
	items    []LineItem
}

// add appends a line unless qty is not positive.
func (b *lineBuilder) add(category Category, key, name string, qty, basePrice float64, rationale string) {
	if !(qty > 0) {
		return
	}
	item := LineItem{
		Category:  category,
		Key:       key,
		Name:      name,
		Quantity:  qty,
		UnitPrice: basePrice,
		Rationale: rationale,
	}
	if !InputTaxExempt(category, name) {
		item.UnitPrice = basePrice * (1 + b.inputTax)
		item.Rationale += " (incl. " + percent(b.inputTax) + " input tax)"
		item.InputTaxApplied = true
	}
	item.LineTotal = item.Quantity * item.UnitPrice
	b.items = append(b.items, item)
}

func percent(rate float64) string {
	return strconv.FormatFloat(math.Round(rate*1000)/10, 'f', -1, 64) + "%"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
