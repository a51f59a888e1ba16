package pricing

// ChangeKind classifies a line difference.
type ChangeKind string

const (
	ChangeModified ChangeKind = "modified"
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
)

// LineChange describes how one line differs between two quotes.
type LineChange struct {
	Index          int        `json:"index"`
	Kind           ChangeKind `json:"kind"`
	Before         LineItem   `json:"before"`
	After          LineItem   `json:"after"`
	QuantityDelta  float64    `json:"quantity_delta"`
	UnitPriceDelta float64    `json:"unit_price_delta"`
	TotalDelta     float64    `json:"total_delta"`
}

// Diff compares lines position by position and returns only the lines whose
// quantity, unit price or total changed, plus lines present on one side only.
func Diff(original, edited []LineItem) []LineChange {
	var changes []LineChange
	for i := range max(len(original), len(edited)) {
		var c LineChange
		c.Index = i
		switch {
		case i >= len(original):
			c.Kind, c.After = ChangeAdded, edited[i]
		case i >= len(edited):
			c.Kind, c.Before = ChangeRemoved, original[i]
		default:
			c.Kind, c.Before, c.After = ChangeModified, original[i], edited[i]
			if c.Before.Quantity == c.After.Quantity &&
				c.Before.UnitPrice == c.After.UnitPrice &&
				c.Before.LineTotal == c.After.LineTotal {
				continue
			}
		}
		c.QuantityDelta = c.After.Quantity - c.Before.Quantity
		c.UnitPriceDelta = c.After.UnitPrice - c.Before.UnitPrice
		c.TotalDelta = c.After.LineTotal - c.Before.LineTotal
		changes = append(changes, c)
	}
	return changes
}
