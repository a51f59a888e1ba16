package pricing

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
)

var (
	// ErrInvalidGuestCount indicates a guest count that cannot divide a price.
	ErrInvalidGuestCount = apperrors.New(apperrors.CodeQuoteInvalidEventSpec, "guest count must be positive")
)

func unknownLabelError(code apperrors.Code, kind, value string) error {
	return apperrors.WithMetadata(code,
		fmt.Sprintf("unknown %s %q", kind, value),
		map[string]string{"Value": value},
	)
}

// UnknownServingFormatError reports a serving format outside the known set.
func UnknownServingFormatError(value string) error {
	return unknownLabelError(apperrors.CodeQuoteUnknownServingFormat, "serving format", value)
}

// UnknownCulinaryStyleError reports a culinary style outside the known set.
func UnknownCulinaryStyleError(value string) error {
	return unknownLabelError(apperrors.CodeQuoteUnknownCulinaryStyle, "culinary style", value)
}

func unknownFishPlacementError(value string) error {
	return unknownLabelError(apperrors.CodeQuoteUnknownFishPlacement, "fish placement", value)
}

func unknownEventScaleError(value string) error {
	return unknownLabelError(apperrors.CodeQuoteUnknownEventScale, "event scale", value)
}

func unknownKosherError(value string) error {
	return unknownLabelError(apperrors.CodeQuoteUnknownKosher, "kosher requirement", value)
}

func unknownDistanceError(value string) error {
	return unknownLabelError(apperrors.CodeQuoteUnknownDistance, "distance tier", value)
}

func guestCountOutOfRangeError(guests, lo, hi int) error {
	return apperrors.WithMetadata(apperrors.CodeQuoteGuestCountOutOfRange,
		fmt.Sprintf("guest count %d outside %d..%d", guests, lo, hi),
		map[string]string{
			"GuestCount": strconv.Itoa(guests),
			"Min":        strconv.Itoa(lo),
			"Max":        strconv.Itoa(hi),
		},
	)
}

func formatRangeError(code apperrors.Code, format ServingFormat, guests int, limit FormatLimit) error {
	return apperrors.WithMetadata(code,
		fmt.Sprintf("guest count %d outside %s range %d..%d", guests, format, limit.MinGuests, limit.MaxGuests),
		map[string]string{
			"GuestCount":    strconv.Itoa(guests),
			"ServingFormat": string(format),
			"Min":           strconv.Itoa(limit.MinGuests),
			"Max":           strconv.Itoa(limit.MaxGuests),
		},
	)
}

func negativeAmountError(field string) error {
	return apperrors.WithMetadata(apperrors.CodeQuoteNegativeAmount,
		field+" is negative",
		map[string]string{"Field": field},
	)
}

// configError reports a malformed pricing configuration.
func configError(format string, args ...any) error {
	reason := fmt.Sprintf(format, args...)
	return apperrors.WithMetadata(apperrors.CodePricingConfigInvalid,
		"invalid pricing config: "+reason,
		map[string]string{"Reason": reason},
	)
}
