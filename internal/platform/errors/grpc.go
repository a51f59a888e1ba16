package errors

import (
	"errors"

	"github.com/louisbranch/catering.space/internal/platform/errors/i18n"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// HandleError converts domain errors to gRPC status for client responses.
// The user-facing message is rendered from the catalog for locale.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}

	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		catalog := i18n.GetCatalog(locale)
		userMsg := catalog.Format(string(appErr.Code), appErr.Metadata)
		return appErr.ToGRPCStatus(catalog.Locale(), userMsg)
	}

	return status.Error(codes.Internal, "an unexpected error occurred")
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

// UserMessage renders the localized message for err.
// Non-domain errors render as their plain Error text.
func UserMessage(err error, locale string) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return i18n.GetCatalog(locale).Format(string(e.Code), e.Metadata)
	}
	return err.Error()
}
