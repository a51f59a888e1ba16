package pricing

import (
	"testing"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
)

func TestLookup(t *testing.T) {
	table := ThresholdTable{
		{MaxGuests: 50, Value: 1},
		{MaxGuests: 100, Value: 2},
		{MaxGuests: 200, Value: 3},
	}
	tests := []struct {
		guests int
		want   float64
	}{
		{1, 1},
		{50, 1},
		{51, 2},
		{100, 2},
		{199, 3},
		{200, 3},
		{5000, 3},
	}
	for _, tt := range tests {
		row, ok := Lookup(table, tt.guests)
		if !ok {
			t.Fatalf("Lookup(%d) reported empty table", tt.guests)
		}
		if row.Value != tt.want {
			t.Errorf("Lookup(%d) = %v, want %v", tt.guests, row.Value, tt.want)
		}
	}

	if _, ok := Lookup(ThresholdTable{}, 10); ok {
		t.Fatal("expected empty table to report false")
	}
}

func TestDefaultKitchenAndFloorRows(t *testing.T) {
	tables := DefaultConfig().Tables
	kitchen, _ := Lookup(tables.KitchenStaff, 60)
	if kitchen.MaxGuests != 60 || kitchen.Buffet != 4 {
		t.Fatalf("kitchen row for 60 = %+v", kitchen)
	}
	floor, _ := Lookup(tables.FloorStaff, 60)
	if floor.MaxGuests != 70 || floor.Buffet != 3 {
		t.Fatalf("floor row for 60 = %+v", floor)
	}
}

func TestColumns(t *testing.T) {
	row := FormatRow{MaxGuests: 10, Buffet: 1, Market: 2, StationBites: 3, CirculatingBites: 4}
	for i, format := range ServingFormats {
		got, err := row.Column(format)
		if err != nil {
			t.Fatalf("Column(%s): %v", format, err)
		}
		if got != float64(i+1) {
			t.Errorf("Column(%s) = %v, want %d", format, got, i+1)
		}
	}
	if _, err := row.Column("banquet"); !apperrors.IsCode(err, apperrors.CodeQuoteUnknownServingFormat) {
		t.Fatalf("expected unknown serving format, got %v", err)
	}

	style := StyleRow{MaxGuests: 10, All: 1, MeatNoFish: 2, Vegetarian: 3, Vegan: 4, Pescatarian: 5}
	styles := []CulinaryStyle{CulinaryStyleAll, CulinaryStyleMeatNoFish, CulinaryStyleVegetarian, CulinaryStyleVegan, CulinaryStylePescatarian}
	for i, s := range styles {
		if got, _ := style.Column(s); got != float64(i+1) {
			t.Errorf("Column(%s) = %v, want %d", s, got, i+1)
		}
	}
	if _, err := style.Column("keto"); !apperrors.IsCode(err, apperrors.CodeQuoteUnknownCulinaryStyle) {
		t.Fatalf("expected unknown culinary style, got %v", err)
	}
}

func TestMultiplierIsExact(t *testing.T) {
	tests := []struct {
		m      Multiplier
		guests int
		want   int
		label  string
	}{
		{Multiplier{Num: 13, Den: 10}, 10, 13, "1.3x"},
		{Multiplier{Num: 13, Den: 10}, 11, 15, "1.3x"},
		{Multiplier{Num: 3, Den: 2, Offset: 2}, 60, 92, "1.5x + 2"},
		{Multiplier{Num: 3, Den: 2, Offset: 2}, 61, 94, "1.5x + 2"},
		{Multiplier{Num: 1, Den: 2}, 61, 31, "0.5x"},
		{Multiplier{Num: 1, Den: 1, Offset: 1}, 60, 61, "1x + 1"},
		{Multiplier{Num: 7, Den: 1}, 20, 140, "7x"},
	}
	for _, tt := range tests {
		if got := tt.m.Quantity(tt.guests); got != tt.want {
			t.Errorf("%s for %d guests = %d, want %d", tt.label, tt.guests, got, tt.want)
		}
		if got := tt.m.String(); got != tt.label {
			t.Errorf("String() = %q, want %q", got, tt.label)
		}
	}
}
