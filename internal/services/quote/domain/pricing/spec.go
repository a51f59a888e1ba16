package pricing

import (
	"fmt"
	"math"
	"slices"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
)

// ExtraItem is a customer-requested add-on priced by hand.
type ExtraItem struct {
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// EventSpec describes the event being priced.
type EventSpec struct {
	GuestCount           int               `json:"guest_count" yaml:"guest_count"`
	ServingFormat        ServingFormat     `json:"serving_format" yaml:"serving_format"`
	CulinaryStyle        CulinaryStyle     `json:"culinary_style" yaml:"culinary_style"`
	FishPlacement        FishPlacement     `json:"fish_placement,omitempty" yaml:"fish_placement,omitempty"`
	EventScale           EventScale        `json:"event_scale,omitempty" yaml:"event_scale,omitempty"`
	Kosher               KosherRequirement `json:"kosher,omitempty" yaml:"kosher,omitempty"`
	Distance             DistanceTier      `json:"distance" yaml:"distance"`
	IncludeClearingCrew  bool              `json:"include_clearing_crew,omitempty" yaml:"include_clearing_crew,omitempty"`
	IncludeNightStation  bool              `json:"include_night_station,omitempty" yaml:"include_night_station,omitempty"`
	NightStationUnitCost float64           `json:"night_station_unit_cost,omitempty" yaml:"night_station_unit_cost,omitempty"`
	ExtraItems           []ExtraItem       `json:"extra_items,omitempty" yaml:"extra_items,omitempty"`
}

// ScaleForGuests derives the event scale from a guest count using the
// default cut-offs: up to 100 is small, up to 200 medium, above that large.
func ScaleForGuests(guests int) EventScale {
	return scaleFor(guests, DefaultConfig().Thresholds)
}

func scaleFor(guests int, t Thresholds) EventScale {
	switch {
	case guests <= t.SmallEventMax:
		return EventScaleSmall
	case guests <= t.MediumEventMax:
		return EventScaleMedium
	default:
		return EventScaleLarge
	}
}

// ClampGuestCount caps guests at the default maximum and floors it at zero.
func ClampGuestCount(guests int) int {
	return min(max(guests, 0), DefaultConfig().MaxGuests)
}

// CorrectServingFormat returns format when it supports guests, otherwise the
// first serving format that does. When none does, format is returned as is.
func CorrectServingFormat(format ServingFormat, guests int) ServingFormat {
	return correctFormat(format, guests, DefaultConfig().FormatLimits)
}

// CorrectServingFormat is the package-level CorrectServingFormat using the
// engine's guest ranges.
func (e *Engine) CorrectServingFormat(format ServingFormat, guests int) ServingFormat {
	return correctFormat(format, guests, e.cfg.FormatLimits)
}

func correctFormat(format ServingFormat, guests int, limits map[ServingFormat]FormatLimit) ServingFormat {
	if limit, ok := limits[format]; ok && limit.Contains(guests) {
		return format
	}
	for _, candidate := range ServingFormats {
		if limits[candidate].Contains(guests) {
			return candidate
		}
	}
	return format
}

// NormalizeSpec canonicalizes every label on spec, fills defaults and checks
// the guest count against the configured ranges.
func (e *Engine) NormalizeSpec(spec EventSpec) (EventSpec, error) {
	out := spec
	var ok bool
	if out.ServingFormat, ok = NormalizeServingFormat(string(spec.ServingFormat)); !ok {
		return EventSpec{}, UnknownServingFormatError(string(spec.ServingFormat))
	}
	if out.CulinaryStyle, ok = NormalizeCulinaryStyle(string(spec.CulinaryStyle)); !ok {
		return EventSpec{}, UnknownCulinaryStyleError(string(spec.CulinaryStyle))
	}
	if out.FishPlacement, ok = NormalizeFishPlacement(string(spec.FishPlacement)); !ok {
		return EventSpec{}, unknownFishPlacementError(string(spec.FishPlacement))
	}
	if out.EventScale, ok = NormalizeEventScale(string(spec.EventScale)); !ok {
		return EventSpec{}, unknownEventScaleError(string(spec.EventScale))
	}
	if out.Kosher, ok = NormalizeKosher(string(spec.Kosher)); !ok {
		return EventSpec{}, unknownKosherError(string(spec.Kosher))
	}
	if out.Distance, ok = NormalizeDistance(string(spec.Distance)); !ok {
		return EventSpec{}, unknownDistanceError(string(spec.Distance))
	}

	if spec.GuestCount < 1 || spec.GuestCount > e.cfg.MaxGuests {
		return EventSpec{}, guestCountOutOfRangeError(spec.GuestCount, 1, e.cfg.MaxGuests)
	}
	limit := e.cfg.FormatLimits[out.ServingFormat]
	switch {
	case spec.GuestCount < limit.MinGuests:
		return EventSpec{}, formatRangeError(apperrors.CodeQuoteGuestCountUnderFormat, out.ServingFormat, spec.GuestCount, limit)
	case spec.GuestCount > limit.MaxGuests:
		return EventSpec{}, formatRangeError(apperrors.CodeQuoteGuestCountOverFormat, out.ServingFormat, spec.GuestCount, limit)
	}

	if !validAmount(spec.NightStationUnitCost) {
		return EventSpec{}, negativeAmountError("night_station_unit_cost")
	}
	for i, item := range spec.ExtraItems {
		if !validAmount(item.Price) {
			return EventSpec{}, negativeAmountError(fmt.Sprintf("extra_items[%d].price", i))
		}
	}
	out.ExtraItems = slices.Clone(spec.ExtraItems)

	if out.EventScale == EventScaleUnspecified {
		out.EventScale = scaleFor(out.GuestCount, e.cfg.Thresholds)
	}
	return out, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
