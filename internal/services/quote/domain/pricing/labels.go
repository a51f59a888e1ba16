package pricing

import "strings"

// ServingFormat identifies the physical style of food service.
type ServingFormat string

const (
	ServingFormatBuffet           ServingFormat = "buffet"
	ServingFormatMarket           ServingFormat = "market"
	ServingFormatStationBites     ServingFormat = "station_bites"
	ServingFormatCirculatingBites ServingFormat = "circulating_bites"
)

// ServingFormats lists every serving format in table column order.
var ServingFormats = []ServingFormat{
	ServingFormatBuffet,
	ServingFormatMarket,
	ServingFormatStationBites,
	ServingFormatCirculatingBites,
}

// CulinaryStyle identifies the dietary composition of the menu.
type CulinaryStyle string

const (
	CulinaryStyleAll         CulinaryStyle = "all"
	CulinaryStyleVegan       CulinaryStyle = "vegan"
	CulinaryStyleVegetarian  CulinaryStyle = "vegetarian"
	CulinaryStylePescatarian CulinaryStyle = "pescatarian"
	CulinaryStyleMeatNoFish  CulinaryStyle = "meat_no_fish"
)

// FishPlacement identifies which courses carry fish.
type FishPlacement string

const (
	FishPlacementUnspecified FishPlacement = ""
	FishPlacementStarters    FishPlacement = "starters"
	FishPlacementMains       FishPlacement = "mains"
	FishPlacementBoth        FishPlacement = "both"
)

// EventScale is the coarse size class of an event.
type EventScale string

const (
	EventScaleUnspecified EventScale = ""
	EventScaleSmall       EventScale = "small"
	EventScaleMedium      EventScale = "medium"
	EventScaleLarge       EventScale = "large"
)

// KosherRequirement identifies the kosher supervision level.
type KosherRequirement string

const (
	KosherUnspecified KosherRequirement = ""
	KosherNone        KosherRequirement = "none"
	KosherCertificate KosherRequirement = "certificate"
	KosherSupervisor  KosherRequirement = "supervisor"
)

// DistanceTier is the coarse travel-distance bucket of a venue.
type DistanceTier string

const (
	DistanceClose   DistanceTier = "close"
	DistanceFar     DistanceTier = "far"
	DistanceSpecial DistanceTier = "special"
)

func label(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
}

// NormalizeServingFormat parses a serving format label into a canonical value.
func NormalizeServingFormat(value string) (ServingFormat, bool) {
	switch label(value) {
	case "buffet":
		return ServingFormatBuffet, true
	case "market":
		return ServingFormatMarket, true
	case "station_bites", "stations":
		return ServingFormatStationBites, true
	case "circulating_bites", "circulating", "rotating":
		return ServingFormatCirculatingBites, true
	default:
		return "", false
	}
}

// NormalizeCulinaryStyle parses a culinary style label into a canonical value.
func NormalizeCulinaryStyle(value string) (CulinaryStyle, bool) {
	switch label(value) {
	case "all":
		return CulinaryStyleAll, true
	case "vegan":
		return CulinaryStyleVegan, true
	case "vegetarian":
		return CulinaryStyleVegetarian, true
	case "pescatarian", "pescatarian_fish":
		return CulinaryStylePescatarian, true
	case "meat_no_fish":
		return CulinaryStyleMeatNoFish, true
	default:
		return "", false
	}
}

// NormalizeFishPlacement parses a fish placement label. Empty means both.
func NormalizeFishPlacement(value string) (FishPlacement, bool) {
	switch label(value) {
	case "", "both":
		return FishPlacementBoth, true
	case "starters", "starters_only":
		return FishPlacementStarters, true
	case "mains", "mains_only":
		return FishPlacementMains, true
	default:
		return "", false
	}
}

// NormalizeEventScale parses an event scale label. Empty stays unspecified
// and is later derived from the guest count.
func NormalizeEventScale(value string) (EventScale, bool) {
	switch label(value) {
	case "":
		return EventScaleUnspecified, true
	case "small":
		return EventScaleSmall, true
	case "medium":
		return EventScaleMedium, true
	case "large":
		return EventScaleLarge, true
	default:
		return "", false
	}
}

// NormalizeKosher parses a kosher requirement label. Empty means none.
func NormalizeKosher(value string) (KosherRequirement, bool) {
	switch label(value) {
	case "", "none":
		return KosherNone, true
	case "certificate":
		return KosherCertificate, true
	case "supervisor":
		return KosherSupervisor, true
	default:
		return "", false
	}
}

// NormalizeDistance parses a distance tier label.
func NormalizeDistance(value string) (DistanceTier, bool) {
	switch label(value) {
	case "close":
		return DistanceClose, true
	case "far":
		return DistanceFar, true
	case "special":
		return DistanceSpecial, true
	default:
		return "", false
	}
}
