package pricing

import (
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Rates are the percentage multipliers applied during pricing.
type Rates struct {
	// InputTax grosses up supplier prices on non-exempt lines.
	InputTax float64
	Overhead float64
	Profit   float64
	// OutputTax is the VAT charged on the rounded customer price.
	OutputTax float64
	// RoundingStep is the currency unit the final price rounds up to.
	RoundingStep float64
}

// UnitCosts are the named unit prices and per-guest portion weights.
type UnitCosts struct {
	OliveOilPerLitre float64
	MeatPerKg        float64
	FishStarterPerKg float64
	FishMainPerKg    float64

	MeatPortionKg        float64
	FishStarterPortionKg float64
	FishMainPortionKg    float64

	KitchenWorker    float64
	KitchenManager   float64
	Waiter           float64
	Dishwasher       float64
	LogisticsManager float64
	LogisticsWorker  float64
	EventManager     float64
	ClearingStaff    float64

	KosherCertificateSmall       float64
	KosherCertificateMediumLarge float64
	KosherSupervisorBase         float64
	KosherSupervisorFar          float64

	Station     float64
	Fridge      float64
	Oven        float64
	Warmer      float64
	WorkTable   float64
	GasCanister float64

	TruckClose   float64
	TruckFar     float64
	TruckSpecial float64

	FuelPerKm        float64
	StaffTravelPerKm float64

	DisposablesSmall  float64
	DisposablesMedium float64
	DisposablesLarge  float64
}

// Distances are the assumed round-trip kilometres per distance tier.
type Distances struct {
	Close   float64
	Far     float64
	Special float64
}

// Km returns the round-trip distance for tier.
func (d Distances) Km(tier DistanceTier) (float64, error) {
	switch tier {
	case DistanceClose:
		return d.Close, nil
	case DistanceFar:
		return d.Far, nil
	case DistanceSpecial:
		return d.Special, nil
	default:
		return 0, unknownDistanceError(string(tier))
	}
}

// Thresholds are the fixed guest-count cut-offs outside the lookup tables.
type Thresholds struct {
	LogisticsWorkerAbove    int
	SeniorEventManagerAbove int
	SeniorEventManagerQty   float64
	OvenAbove               int
	WarmerAbove             int
	GuestsPerClearingStaff  int
	DisposablesSmallMax     int
	DisposablesMediumMax    int
	SmallEventMax           int
	MediumEventMax          int
}

// Tables groups every guest-count lookup table.
type Tables struct {
	KitchenStaff  FormatTable
	FloorStaff    FormatTable
	StaffVehicles FormatTable
	EndStations   FormatTable

	Vegetables     StyleTable
	DryGoods       StyleTable
	Bread          StyleTable
	OliveOilLitres StyleTable

	Fridges         ThresholdTable
	GasCanisters    ThresholdTable
	WorkTables      ThresholdTable
	CoalCost        ThresholdTable
	ServingStations ThresholdTable
}

// FormatLimit is the inclusive guest range a serving format supports.
type FormatLimit struct {
	MinGuests int
	MaxGuests int
}

// Contains reports whether guests falls within the limit.
func (l FormatLimit) Contains(guests int) bool {
	return guests >= l.MinGuests && guests <= l.MaxGuests
}

// Multiplier sizes an item as ceil(guests*Num/Den) + Offset.
type Multiplier struct {
	Num    int
	Den    int
	Offset int
}

// Quantity returns the item count for guests.
func (m Multiplier) Quantity(guests int) int {
	return ceilDiv(guests*m.Num, m.Den) + m.Offset
}

// String renders the multiplier the way rationale text shows it, e.g. "1.5x + 2".
func (m Multiplier) String() string {
	ratio := strconv.FormatFloat(float64(m.Num)/float64(m.Den), 'f', -1, 64)
	if m.Offset == 0 {
		return ratio + "x"
	}
	return ratio + "x + " + strconv.Itoa(m.Offset)
}

// ServingWareRule sizes one rented serving-ware item.
type ServingWareRule struct {
	Key       string
	Name      string
	UnitPrice float64
	// Multipliers applies per serving format; formats absent get no line.
	Multipliers map[ServingFormat]Multiplier
	// Table, when non-empty, sizes the item for every format instead.
	Table ThresholdTable
}

// Quantity returns the item count for format and guests and the rationale
// text describing the rule. A zero count means the item is not used.
func (r ServingWareRule) Quantity(format ServingFormat, guests int) (float64, string) {
	if len(r.Table) > 0 {
		row, _ := Lookup(r.Table, guests)
		return row.Value, "from table"
	}
	m, ok := r.Multipliers[format]
	if !ok {
		return 0, ""
	}
	return float64(m.Quantity(guests)), "factor " + m.String()
}

// Config is the full static pricing configuration. Engines take a private
// copy at construction.
type Config struct {
	Rates        Rates
	Costs        UnitCosts
	Distances    Distances
	Thresholds   Thresholds
	Tables       Tables
	ServingWare  []ServingWareRule
	FormatLimits map[ServingFormat]FormatLimit
	// MaxGuests caps the guest count of any event.
	MaxGuests int
}

// Validate reports the first structural problem in the configuration.
func (c Config) Validate() error {
	r := c.Rates
	for _, rate := range []struct {
		name  string
		value float64
	}{
		{"input tax", r.InputTax},
		{"overhead", r.Overhead},
		{"profit", r.Profit},
		{"output tax", r.OutputTax},
	} {
		if !isNonNegative(rate.value) {
			return configError("%s rate %v is not a finite non-negative number", rate.name, rate.value)
		}
	}
	if !(r.RoundingStep > 0) || math.IsInf(r.RoundingStep, 0) {
		return configError("rounding step %v must be positive", r.RoundingStep)
	}
	if c.MaxGuests <= 0 {
		return configError("max guests must be positive")
	}
	if c.Thresholds.GuestsPerClearingStaff <= 0 {
		return configError("guests per clearing staff must be positive")
	}
	if c.Distances.Close <= 0 || c.Distances.Far <= 0 || c.Distances.Special <= 0 {
		return configError("distances must be positive")
	}
	if err := c.Costs.validate(); err != nil {
		return err
	}
	th := c.Thresholds
	if th.DisposablesSmallMax > th.DisposablesMediumMax {
		return configError("disposables cut-offs %d and %d are out of order", th.DisposablesSmallMax, th.DisposablesMediumMax)
	}
	if th.SmallEventMax > th.MediumEventMax {
		return configError("event scale cut-offs %d and %d are out of order", th.SmallEventMax, th.MediumEventMax)
	}
	if !isNonNegative(th.SeniorEventManagerQty) {
		return configError("senior event manager quantity %v is not a finite non-negative number", th.SeniorEventManagerQty)
	}

	t := c.Tables
	for _, check := range []func() error{
		func() error { return validateTable("kitchen staff", t.KitchenStaff) },
		func() error { return validateTable("floor staff", t.FloorStaff) },
		func() error { return validateTable("staff vehicles", t.StaffVehicles) },
		func() error { return validateTable("end stations", t.EndStations) },
		func() error { return validateTable("vegetables", t.Vegetables) },
		func() error { return validateTable("dry goods", t.DryGoods) },
		func() error { return validateTable("bread", t.Bread) },
		func() error { return validateTable("olive oil", t.OliveOilLitres) },
		func() error { return validateTable("fridges", t.Fridges) },
		func() error { return validateTable("gas canisters", t.GasCanisters) },
		func() error { return validateTable("work tables", t.WorkTables) },
		func() error { return validateTable("coal cost", t.CoalCost) },
		func() error { return validateTable("serving stations", t.ServingStations) },
	} {
		if err := check(); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(c.ServingWare))
	for i, rule := range c.ServingWare {
		key := strings.TrimSpace(rule.Key)
		if key == "" || strings.TrimSpace(rule.Name) == "" {
			return configError("serving ware rule %d needs a key and a name", i)
		}
		if seen[key] {
			return configError("serving ware rule %q is defined twice", key)
		}
		seen[key] = true
		if !isNonNegative(rule.UnitPrice) {
			return configError("serving ware rule %q has invalid unit price %v", key, rule.UnitPrice)
		}
		if len(rule.Table) > 0 {
			if err := validateTable("serving ware "+key, rule.Table); err != nil {
				return err
			}
			continue
		}
		if len(rule.Multipliers) == 0 {
			return configError("serving ware rule %q has no multipliers or table", key)
		}
		for format, m := range rule.Multipliers {
			if m.Den <= 0 || m.Num < 0 || m.Offset < 0 {
				return configError("serving ware rule %q for %s has invalid multiplier %d/%d+%d",
					key, format, m.Num, m.Den, m.Offset)
			}
		}
	}

	for _, format := range ServingFormats {
		limit, ok := c.FormatLimits[format]
		if !ok {
			return configError("no guest range for serving format %s", format)
		}
		if limit.MinGuests < 1 || limit.MaxGuests < limit.MinGuests {
			return configError("guest range %d..%d for %s is invalid", limit.MinGuests, limit.MaxGuests, format)
		}
	}
	return nil
}

// validate rejects negative or non-finite unit costs.
func (u UnitCosts) validate() error {
	v := reflect.ValueOf(u)
	for i := range v.NumField() {
		value := v.Field(i).Float()
		if !isNonNegative(value) {
			return configError("unit cost %s %v is not a finite non-negative number", v.Type().Field(i).Name, value)
		}
	}
	return nil
}

func isNonNegative(value float64) bool {
	return value >= 0 && !math.IsInf(value, 0)
}

func (c Config) clone() Config {
	out := c
	t := &out.Tables
	t.KitchenStaff = slices.Clone(c.Tables.KitchenStaff)
	t.FloorStaff = slices.Clone(c.Tables.FloorStaff)
	t.StaffVehicles = slices.Clone(c.Tables.StaffVehicles)
	t.EndStations = slices.Clone(c.Tables.EndStations)
	t.Vegetables = slices.Clone(c.Tables.Vegetables)
	t.DryGoods = slices.Clone(c.Tables.DryGoods)
	t.Bread = slices.Clone(c.Tables.Bread)
	t.OliveOilLitres = slices.Clone(c.Tables.OliveOilLitres)
	t.Fridges = slices.Clone(c.Tables.Fridges)
	t.GasCanisters = slices.Clone(c.Tables.GasCanisters)
	t.WorkTables = slices.Clone(c.Tables.WorkTables)
	t.CoalCost = slices.Clone(c.Tables.CoalCost)
	t.ServingStations = slices.Clone(c.Tables.ServingStations)

	out.ServingWare = make([]ServingWareRule, len(c.ServingWare))
	for i, rule := range c.ServingWare {
		rule.Multipliers = maps.Clone(rule.Multipliers)
		rule.Table = slices.Clone(rule.Table)
		out.ServingWare[i] = rule
	}
	out.FormatLimits = maps.Clone(c.FormatLimits)
	return out
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
