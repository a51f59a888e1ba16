package pricing

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
)

// EditField names the editable part of a line item.
type EditField string

const (
	EditQuantity  EditField = "quantity"
	EditUnitPrice EditField = "unit_price"
)

// NormalizeEditField parses an edit field label.
func NormalizeEditField(value string) (EditField, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "quantity", "qty":
		return EditQuantity, true
	case "unit_price", "unitprice", "price":
		return EditUnitPrice, true
	default:
		return "", false
	}
}

// Edit overrides one field of one line.
type Edit struct {
	Index int       `json:"index"`
	Field EditField `json:"field"`
	Value float64   `json:"value"`
}

func (e Edit) String() string {
	return fmt.Sprintf("%d:%s=%s", e.Index, e.Field, num(e.Value))
}

func editMetadata(edit Edit) map[string]string {
	return map[string]string{
		"Index": strconv.Itoa(edit.Index),
		"Field": string(edit.Field),
		"Value": num(edit.Value),
	}
}

// ApplyEdit returns a copy of items with edit applied and the edited line's
// total recomputed. A rejected edit returns items itself and an error.
func ApplyEdit(items []LineItem, edit Edit) ([]LineItem, error) {
	if edit.Index < 0 || edit.Index >= len(items) {
		return items, apperrors.WithMetadata(apperrors.CodeQuoteEditOutOfRange,
			fmt.Sprintf("edit %s: index outside %d lines", edit, len(items)), editMetadata(edit))
	}
	field, ok := NormalizeEditField(string(edit.Field))
	if !ok {
		return items, apperrors.WithMetadata(apperrors.CodeQuoteEditInvalidField,
			fmt.Sprintf("edit %s: unknown field", edit), editMetadata(edit))
	}
	if edit.Value < 0 || math.IsNaN(edit.Value) || math.IsInf(edit.Value, 0) {
		return items, apperrors.WithMetadata(apperrors.CodeQuoteEditRejected,
			fmt.Sprintf("edit %s: value must be a finite non-negative number", edit), editMetadata(edit))
	}

	out := slices.Clone(items)
	line := &out[edit.Index]
	switch field {
	case EditQuantity:
		line.Quantity = edit.Value
	case EditUnitPrice:
		line.UnitPrice = edit.Value
	}
	line.LineTotal = line.Quantity * line.UnitPrice
	return out, nil
}

// ApplyEdits applies edits in order. Rejected edits are skipped and joined
// into the returned error.
func ApplyEdits(items []LineItem, edits ...Edit) ([]LineItem, error) {
	out := items
	var errs []error
	for _, edit := range edits {
		next, err := ApplyEdit(out, edit)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = next
	}
	return out, errors.Join(errs...)
}

// Reconcile applies edits and re-aggregates. An aggregation failure is
// returned alone; otherwise the error carries any rejected edits.
func Reconcile(rates Rates, guests int, items []LineItem, edits ...Edit) (Quote, error) {
	edited, editErr := ApplyEdits(items, edits...)
	q, err := Aggregate(rates, guests, edited)
	if err != nil {
		return Quote{}, err
	}
	return q, editErr
}

// ParseEdit reads an edit written as "index:field=value", e.g. "2:quantity=6".
func ParseEdit(raw string) (Edit, error) {
	malformed := func() error {
		return apperrors.WithMetadata(apperrors.CodeQuoteEditMalformed,
			fmt.Sprintf("malformed edit %q", raw), map[string]string{"Value": raw})
	}
	indexPart, rest, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return Edit{}, malformed()
	}
	fieldPart, valuePart, ok := strings.Cut(rest, "=")
	if !ok {
		return Edit{}, malformed()
	}
	index, err := strconv.Atoi(strings.TrimSpace(indexPart))
	if err != nil {
		return Edit{}, malformed()
	}
	field, ok := NormalizeEditField(fieldPart)
	if !ok {
		return Edit{}, malformed()
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valuePart), 64)
	if err != nil {
		return Edit{}, malformed()
	}
	return Edit{Index: index, Field: field, Value: value}, nil
}
