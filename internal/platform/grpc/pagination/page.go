// Package pagination normalizes page sizes and page tokens for list RPCs.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int32, cfg PageSizeConfig) int {
	pageSize := int(value)
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	return max(pageSize, 1)
}

// EncodeOffsetToken returns an opaque token for the next page starting at offset.
// A non-positive offset yields the empty token.
func EncodeOffsetToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// DecodeOffsetToken parses a token produced by EncodeOffsetToken.
// The empty token decodes to offset 0.
func DecodeOffsetToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("decode page token: %w", err)
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid page token %q", token)
	}
	return offset, nil
}
