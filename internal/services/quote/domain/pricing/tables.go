package pricing

import "fmt"

// Row is one guest-count threshold row of a lookup table.
type Row interface {
	Threshold() int
}

// FormatRow holds one value per serving format.
type FormatRow struct {
	MaxGuests        int
	Buffet           float64
	Market           float64
	StationBites     float64
	CirculatingBites float64
}

// Threshold implements Row.
func (r FormatRow) Threshold() int { return r.MaxGuests }

// Column returns the value for format.
func (r FormatRow) Column(format ServingFormat) (float64, error) {
	switch format {
	case ServingFormatBuffet:
		return r.Buffet, nil
	case ServingFormatMarket:
		return r.Market, nil
	case ServingFormatStationBites:
		return r.StationBites, nil
	case ServingFormatCirculatingBites:
		return r.CirculatingBites, nil
	default:
		return 0, UnknownServingFormatError(string(format))
	}
}

// StyleRow holds one value per culinary style.
type StyleRow struct {
	MaxGuests   int
	All         float64
	MeatNoFish  float64
	Vegetarian  float64
	Vegan       float64
	Pescatarian float64
}

// Threshold implements Row.
func (r StyleRow) Threshold() int { return r.MaxGuests }

// Column returns the value for style.
func (r StyleRow) Column(style CulinaryStyle) (float64, error) {
	switch style {
	case CulinaryStyleAll:
		return r.All, nil
	case CulinaryStyleMeatNoFish:
		return r.MeatNoFish, nil
	case CulinaryStyleVegetarian:
		return r.Vegetarian, nil
	case CulinaryStyleVegan:
		return r.Vegan, nil
	case CulinaryStylePescatarian:
		return r.Pescatarian, nil
	default:
		return 0, UnknownCulinaryStyleError(string(style))
	}
}

// ThresholdRow holds a single value.
type ThresholdRow struct {
	MaxGuests int
	Value     float64
}

// Threshold implements Row.
func (r ThresholdRow) Threshold() int { return r.MaxGuests }

type (
	// FormatTable sizes staffing and stations per serving format.
	FormatTable []FormatRow
	// StyleTable prices food per culinary style.
	StyleTable []StyleRow
	// ThresholdTable sizes equipment by guest count alone.
	ThresholdTable []ThresholdRow
)

// Lookup returns the first row whose threshold is at least guests. Guest
// counts above every threshold get the last row. The boolean is false only
// for an empty table.
func Lookup[S ~[]R, R Row](rows S, guests int) (R, bool) {
	if len(rows) == 0 {
		var zero R
		return zero, false
	}
	for _, row := range rows {
		if row.Threshold() >= guests {
			return row, true
		}
	}
	return rows[len(rows)-1], true
}

func validateTable[S ~[]R, R Row](name string, rows S) error {
	if len(rows) == 0 {
		return configError("table %s is empty", name)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Threshold() <= rows[i-1].Threshold() {
			return configError("table %s row %d: threshold %d does not exceed %d",
				name, i, rows[i].Threshold(), rows[i-1].Threshold())
		}
	}
	return nil
}

// mustLookup is used after Config.Validate has rejected empty tables.
func mustLookup[S ~[]R, R Row](name string, rows S, guests int) R {
	row, ok := Lookup(rows, guests)
	if !ok {
		panic(fmt.Sprintf("pricing: table %s is empty", name))
	}
	return row
}
