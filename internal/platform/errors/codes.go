// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Event spec errors
	CodeQuoteInvalidEventSpec      Code = "QUOTE_INVALID_EVENT_SPEC"
	CodeQuoteGuestCountOutOfRange  Code = "QUOTE_GUEST_COUNT_OUT_OF_RANGE"
	CodeQuoteUnknownServingFormat  Code = "QUOTE_UNKNOWN_SERVING_FORMAT"
	CodeQuoteUnknownCulinaryStyle  Code = "QUOTE_UNKNOWN_CULINARY_STYLE"
	CodeQuoteUnknownFishPlacement  Code = "QUOTE_UNKNOWN_FISH_PLACEMENT"
	CodeQuoteUnknownEventScale     Code = "QUOTE_UNKNOWN_EVENT_SCALE"
	CodeQuoteUnknownKosher         Code = "QUOTE_UNKNOWN_KOSHER_REQUIREMENT"
	CodeQuoteUnknownDistance       Code = "QUOTE_UNKNOWN_DISTANCE_TIER"
	CodeQuoteNegativeAmount        Code = "QUOTE_NEGATIVE_AMOUNT"
	CodeQuoteGuestCountOverFormat  Code = "QUOTE_GUEST_COUNT_EXCEEDS_FORMAT"
	CodeQuoteGuestCountUnderFormat Code = "QUOTE_GUEST_COUNT_BELOW_FORMAT"

	// Edit errors
	CodeQuoteEditRejected     Code = "QUOTE_EDIT_REJECTED"
	CodeQuoteEditInvalidField Code = "QUOTE_EDIT_INVALID_FIELD"
	CodeQuoteEditOutOfRange   Code = "QUOTE_EDIT_INDEX_OUT_OF_RANGE"
	CodeQuoteEditMalformed    Code = "QUOTE_EDIT_MALFORMED"

	// Revision errors
	CodeQuoteEmptyEventID  Code = "QUOTE_EMPTY_EVENT_ID"
	CodeQuoteEmptyLineList Code = "QUOTE_EMPTY_LINE_LIST"

	// Configuration errors
	CodePricingConfigInvalid Code = "PRICING_CONFIG_INVALID"

	// Storage errors
	CodeNotFound         Code = "NOT_FOUND"
	CodeInvalidPageToken Code = "INVALID_PAGE_TOKEN"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeQuoteInvalidEventSpec,
		CodeQuoteGuestCountOutOfRange,
		CodeQuoteUnknownServingFormat,
		CodeQuoteUnknownCulinaryStyle,
		CodeQuoteUnknownFishPlacement,
		CodeQuoteUnknownEventScale,
		CodeQuoteUnknownKosher,
		CodeQuoteUnknownDistance,
		CodeQuoteNegativeAmount,
		CodeQuoteGuestCountOverFormat,
		CodeQuoteGuestCountUnderFormat,
		CodeQuoteEditInvalidField,
		CodeQuoteEditOutOfRange,
		CodeQuoteEditMalformed,
		CodeQuoteEmptyEventID,
		CodeQuoteEmptyLineList,
		CodeInvalidPageToken:
		return codes.InvalidArgument

	// FailedPrecondition - the edit cannot apply to the current lines
	case CodeQuoteEditRejected:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
