package domain

import (
	"fmt"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// toolError carries the user-facing text of a failed quote call while
// keeping the gRPC status in the error chain.
type toolError struct {
	message string
	cause   error
}

func (e *toolError) Error() string { return e.message }

func (e *toolError) Unwrap() error { return e.cause }

// quoteCallError converts a quote service error into tool error text.
// The localized message detail wins over the internal status message.
func quoteCallError(operation string, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("quote %s failed: %w", operation, err)
	}
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok {
			if message := strings.TrimSpace(localized.GetMessage()); message != "" {
				return &toolError{message: message, cause: err}
			}
		}
	}
	return &toolError{message: fmt.Sprintf("quote %s failed: %s", operation, st.Message()), cause: err}
}
