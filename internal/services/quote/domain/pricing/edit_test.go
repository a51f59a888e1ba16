package pricing

import (
	"errors"
	"math"
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
)

func sampleItems() []LineItem {
	return []LineItem{
		{Category: CategoryFood, Key: "veg_fruit", Name: vegetablesLineName, Quantity: 1, UnitPrice: 400, LineTotal: 400},
		{Category: CategoryLabor, Key: "kitchen_workers", Name: "Kitchen workers", Quantity: 4, UnitPrice: 100, LineTotal: 400},
		{Category: CategoryRental, Key: "fridges", Name: "Fridge", Quantity: 1, UnitPrice: 100, LineTotal: 100, InputTaxApplied: true},
		{Category: CategoryLogistics, Key: "truck_fuel", Name: "Truck fuel", Quantity: 10, UnitPrice: 5, LineTotal: 50, InputTaxApplied: true},
		{Category: CategoryExtras, Key: "extra", Name: "Balloons", Quantity: 1, UnitPrice: 50, LineTotal: 50, InputTaxApplied: true},
	}
}

func TestAggregate(t *testing.T) {
	q, err := Aggregate(DefaultConfig().Rates, 30, sampleItems())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want := Quote{
		GuestCount:           30,
		LineItems:            sampleItems(),
		DirectCost:           1000,
		Overhead:             180,
		ProfitComponent:      200,
		FinalPriceRaw:        1380,
		FinalPrice:           1400,
		OutputTax:            252,
		FinalPriceWithTax:    1652,
		PricePerGuest:        47,
		PricePerGuestWithTax: 56,
		Breakdown:            Breakdown{Food: 400, Labor: 400, Equipment: 100, Logistics: 100},
	}
	for _, got := range []struct {
		name      string
		got, want float64
	}{
		{"direct cost", q.DirectCost, want.DirectCost},
		{"overhead", q.Overhead, want.Overhead},
		{"profit", q.ProfitComponent, want.ProfitComponent},
		{"raw", q.FinalPriceRaw, want.FinalPriceRaw},
		{"final", q.FinalPrice, want.FinalPrice},
		{"output tax", q.OutputTax, want.OutputTax},
		{"with tax", q.FinalPriceWithTax, want.FinalPriceWithTax},
		{"per guest", q.PricePerGuest, want.PricePerGuest},
		{"per guest with tax", q.PricePerGuestWithTax, want.PricePerGuestWithTax},
	} {
		if !approx(got.got, got.want) {
			t.Errorf("%s = %v, want %v", got.name, got.got, got.want)
		}
	}
	if q.Breakdown != want.Breakdown {
		t.Errorf("breakdown = %+v, want %+v", q.Breakdown, want.Breakdown)
	}
	if q.CategoryTotal(CategoryExtras) != 50 || q.CategoryTotal(CategoryLogistics) != 50 {
		t.Errorf("category totals mixed extras and logistics")
	}
}

func TestAggregateExactStepIsKept(t *testing.T) {
	items := []LineItem{{Category: CategoryFood, Quantity: 1, UnitPrice: 1000, LineTotal: 1000}}
	rates := DefaultConfig().Rates
	rates.Overhead, rates.Profit = 0, 0
	q, err := Aggregate(rates, 10, items)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if q.FinalPrice != 1000 {
		t.Fatalf("final price = %v, want 1000", q.FinalPrice)
	}
}

func TestAggregateRejectsGuestCount(t *testing.T) {
	for _, guests := range []int{0, -1} {
		if _, err := Aggregate(DefaultConfig().Rates, guests, sampleItems()); !errors.Is(err, ErrInvalidGuestCount) {
			t.Fatalf("guests %d: error = %v", guests, err)
		}
	}
}

func TestAggregateEmptyItems(t *testing.T) {
	q, err := Aggregate(DefaultConfig().Rates, 10, nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if q.FinalPrice != 0 || q.PricePerGuest != 0 {
		t.Fatalf("empty quote = %+v", q)
	}
}

func TestApplyEdit(t *testing.T) {
	items := sampleItems()
	edited, err := ApplyEdit(items, Edit{Index: 1, Field: EditQuantity, Value: 6})
	if err != nil {
		t.Fatalf("apply edit: %v", err)
	}
	if edited[1].Quantity != 6 || edited[1].LineTotal != 600 {
		t.Fatalf("edited line = %+v", edited[1])
	}
	if items[1].Quantity != 4 {
		t.Fatal("apply edit mutated input")
	}
	for i := range items {
		if i != 1 && edited[i] != items[i] {
			t.Errorf("line %d changed", i)
		}
	}

	edited, err = ApplyEdit(items, Edit{Index: 2, Field: "price", Value: 250})
	if err != nil {
		t.Fatalf("apply price edit: %v", err)
	}
	if edited[2].UnitPrice != 250 || edited[2].LineTotal != 250 || !edited[2].InputTaxApplied {
		t.Fatalf("price edit = %+v", edited[2])
	}
}

func TestApplyEditRejects(t *testing.T) {
	tests := []struct {
		name string
		edit Edit
		code apperrors.Code
	}{
		{"negative index", Edit{Index: -1, Field: EditQuantity, Value: 1}, apperrors.CodeQuoteEditOutOfRange},
		{"index past end", Edit{Index: 5, Field: EditQuantity, Value: 1}, apperrors.CodeQuoteEditOutOfRange},
		{"unknown field", Edit{Index: 0, Field: "name", Value: 1}, apperrors.CodeQuoteEditInvalidField},
		{"negative value", Edit{Index: 0, Field: EditUnitPrice, Value: -1}, apperrors.CodeQuoteEditRejected},
		{"nan value", Edit{Index: 0, Field: EditQuantity, Value: math.NaN()}, apperrors.CodeQuoteEditRejected},
		{"infinite value", Edit{Index: 0, Field: EditQuantity, Value: math.Inf(1)}, apperrors.CodeQuoteEditRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := sampleItems()
			got, err := ApplyEdit(items, tt.edit)
			if !apperrors.IsCode(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			if !reflect.DeepEqual(got, items) {
				t.Fatal("rejected edit changed items")
			}
		})
	}
}

func TestApplyEditIsIdempotent(t *testing.T) {
	edit := Edit{Index: 3, Field: EditQuantity, Value: 12}
	once, err := ApplyEdit(sampleItems(), edit)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	twice, err := ApplyEdit(once, edit)
	if err != nil {
		t.Fatalf("apply again: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("applying the same edit twice changed the result")
	}
}

func TestApplyEditZeroQuantityKeepsLine(t *testing.T) {
	edited, err := ApplyEdit(sampleItems(), Edit{Index: 0, Field: EditQuantity, Value: 0})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(edited) != len(sampleItems()) || edited[0].LineTotal != 0 {
		t.Fatalf("zero edit = %+v", edited[0])
	}
}

func TestApplyEditsSkipsRejected(t *testing.T) {
	edited, err := ApplyEdits(sampleItems(),
		Edit{Index: 0, Field: EditUnitPrice, Value: 500},
		Edit{Index: 9, Field: EditQuantity, Value: 1},
		Edit{Index: 1, Field: EditQuantity, Value: 5},
	)
	if !apperrors.IsCode(err, apperrors.CodeQuoteEditOutOfRange) {
		t.Fatalf("error = %v", err)
	}
	if edited[0].LineTotal != 500 || edited[1].LineTotal != 500 {
		t.Fatalf("accepted edits lost: %+v %+v", edited[0], edited[1])
	}
}

func TestReconcileEditScenario(t *testing.T) {
	engine := newTestEngine(t)
	q, err := engine.Calculate(scenarioSpec())
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	index := -1
	for i, item := range q.LineItems {
		if item.Key == "kitchen_workers" {
			index = i
		}
	}
	if q.LineItems[index].Quantity != 4 {
		t.Fatalf("kitchen workers = %v, want 4", q.LineItems[index].Quantity)
	}

	edited, err := engine.Reconcile(q.GuestCount, q.LineItems, Edit{Index: index, Field: EditQuantity, Value: 6})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if edited.LineItems[index].LineTotal != 3600 {
		t.Fatalf("edited total = %v", edited.LineItems[index].LineTotal)
	}
	if !approx(edited.DirectCost-q.DirectCost, 1200) {
		t.Fatalf("direct cost delta = %v, want 1200", edited.DirectCost-q.DirectCost)
	}
	if !approx(edited.Breakdown.Labor-q.Breakdown.Labor, 1200) {
		t.Fatalf("labor delta = %v", edited.Breakdown.Labor-q.Breakdown.Labor)
	}

	second, err := engine.Reconcile(q.GuestCount, q.LineItems, Edit{Index: 2, Field: EditQuantity, Value: 6})
	if err != nil {
		t.Fatalf("reconcile index 2: %v", err)
	}
	line := second.LineItems[2]
	if line.Quantity != 6 || !approx(line.LineTotal, 6*q.LineItems[2].UnitPrice) {
		t.Fatalf("index 2 after edit = %+v", line)
	}

	fresh, err := Aggregate(engine.Rates(), q.GuestCount, edited.LineItems)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !reflect.DeepEqual(fresh, edited) {
		t.Fatal("reconciled quote differs from a fresh aggregate of its lines")
	}
}

func TestReconcileReportsRejectedEdits(t *testing.T) {
	q, err := Reconcile(DefaultConfig().Rates, 30, sampleItems(), Edit{Index: 0, Field: EditQuantity, Value: -2})
	if !apperrors.IsCode(err, apperrors.CodeQuoteEditRejected) {
		t.Fatalf("error = %v", err)
	}
	if q.DirectCost != 1000 {
		t.Fatalf("direct cost = %v, want unchanged 1000", q.DirectCost)
	}

	if _, err := Reconcile(DefaultConfig().Rates, 0, sampleItems()); !errors.Is(err, ErrInvalidGuestCount) {
		t.Fatalf("error = %v", err)
	}
}

func TestParseEdit(t *testing.T) {
	tests := []struct {
		raw  string
		want Edit
	}{
		{"2:quantity=6", Edit{Index: 2, Field: EditQuantity, Value: 6}},
		{" 0:qty=1.5 ", Edit{Index: 0, Field: EditQuantity, Value: 1.5}},
		{"14:unit_price=99.9", Edit{Index: 14, Field: EditUnitPrice, Value: 99.9}},
		{"3:Price=0", Edit{Index: 3, Field: EditUnitPrice, Value: 0}},
	}
	for _, tt := range tests {
		got, err := ParseEdit(tt.raw)
		if err != nil {
			t.Fatalf("ParseEdit(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("ParseEdit(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
		if round, err := ParseEdit(got.String()); err != nil || round != got {
			t.Errorf("ParseEdit(%q) = %+v, %v", got.String(), round, err)
		}
	}

	for _, raw := range []string{"", "2", "2:quantity", "x:quantity=1", "2:colour=1", "2:quantity=lots"} {
		if _, err := ParseEdit(raw); !apperrors.IsCode(err, apperrors.CodeQuoteEditMalformed) {
			t.Errorf("ParseEdit(%q) error = %v", raw, err)
		}
	}
}

func TestDiff(t *testing.T) {
	original := sampleItems()
	edited, err := ApplyEdits(original,
		Edit{Index: 1, Field: EditQuantity, Value: 6},
		Edit{Index: 3, Field: EditUnitPrice, Value: 4},
	)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	edited = append(edited, LineItem{Key: "extra", Name: "Late add", Quantity: 1, UnitPrice: 10, LineTotal: 10})

	changes := Diff(original, edited)
	if len(changes) != 3 {
		t.Fatalf("changes = %+v", changes)
	}
	if c := changes[0]; c.Index != 1 || c.Kind != ChangeModified || c.QuantityDelta != 2 || c.TotalDelta != 200 {
		t.Errorf("change 0 = %+v", c)
	}
	if c := changes[1]; c.Index != 3 || c.UnitPriceDelta != -1 || c.TotalDelta != -10 {
		t.Errorf("change 1 = %+v", c)
	}
	if c := changes[2]; c.Index != 5 || c.Kind != ChangeAdded || c.TotalDelta != 10 {
		t.Errorf("change 2 = %+v", c)
	}

	removed := Diff(original, original[:4])
	if len(removed) != 1 || removed[0].Kind != ChangeRemoved || removed[0].TotalDelta != -50 {
		t.Fatalf("removed = %+v", removed)
	}
	if Diff(original, sampleItems()) != nil {
		t.Fatal("identical lines produced changes")
	}
}

func TestRequiredStaff(t *testing.T) {
	engine := newTestEngine(t)
	spec := scenarioSpec()
	spec.GuestCount = 141
	spec.IncludeClearingCrew = true
	q, err := engine.Calculate(spec)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	got := RequiredStaff(q.LineItems)
	want := Staffing{Kitchen: 7, Floor: 5, Clearing: 3, Managers: 3}
	if got != want {
		t.Fatalf("staffing = %+v, want %+v", got, want)
	}
}
