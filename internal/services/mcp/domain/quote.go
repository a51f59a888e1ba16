package domain

import (
	"time"

	quotegrpc "github.com/louisbranch/catering.space/internal/services/quote/api/grpc/quote"
	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// QuoteCalculateInput represents the MCP tool input for pricing an event.
type QuoteCalculateInput struct {
	Spec              pricing.EventSpec `json:"spec" jsonschema:"event to price: guest_count, serving_format, culinary_style, distance and optional add-ons"`
	AutoCorrectFormat bool              `json:"auto_correct_format,omitempty" jsonschema:"switch to a serving format that supports the guest count instead of failing"`
	Locale            string            `json:"locale,omitempty" jsonschema:"locale for error messages (en-US, he-IL)"`
}

// QuoteCalculateResult represents a priced event.
type QuoteCalculateResult struct {
	Spec     pricing.EventSpec `json:"spec" jsonschema:"normalized event spec that was priced"`
	Quote    pricing.Quote     `json:"quote" jsonschema:"itemised quote with totals"`
	Staffing pricing.Staffing  `json:"staffing" jsonschema:"headcount booked by the labor lines"`
}

// QuoteApplyEditsInput represents the MCP tool input for manual line overrides.
type QuoteApplyEditsInput struct {
	GuestCount int                `json:"guest_count" jsonschema:"guest count the quote was priced for"`
	LineItems  []pricing.LineItem `json:"line_items" jsonschema:"line items of a previously calculated quote"`
	Edits      []string           `json:"edits" jsonschema:"overrides written as index:field=value where field is quantity or unit_price"`
	Locale     string             `json:"locale,omitempty" jsonschema:"locale for error messages (en-US, he-IL)"`
}

// QuoteRejectedEdit reports an edit that was not applied.
type QuoteRejectedEdit struct {
	Edit    string `json:"edit"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// QuoteApplyEditsResult represents a re-priced quote.
type QuoteApplyEditsResult struct {
	Quote    pricing.Quote        `json:"quote"`
	Changes  []pricing.LineChange `json:"changes,omitempty"`
	Rejected []QuoteRejectedEdit  `json:"rejected,omitempty"`
	Staffing pricing.Staffing     `json:"staffing"`
}

// QuoteSaveInput represents the MCP tool input for attaching a quote to an event.
type QuoteSaveInput struct {
	EventID       string             `json:"event_id" jsonschema:"event identifier"`
	Spec          pricing.EventSpec  `json:"spec" jsonschema:"event spec the lines were priced from"`
	LineItems     []pricing.LineItem `json:"line_items" jsonschema:"final line items, including manual edits"`
	PriceVerified bool               `json:"price_verified,omitempty" jsonschema:"whether the price was reviewed"`
	Note          string             `json:"note,omitempty" jsonschema:"activity note stored with the revision"`
	Locale        string             `json:"locale,omitempty" jsonschema:"locale for error messages (en-US, he-IL)"`
}

// QuoteGetInput represents the MCP tool input for reading a stored quote.
type QuoteGetInput struct {
	EventID  string `json:"event_id" jsonschema:"event identifier"`
	Revision int    `json:"revision,omitempty" jsonschema:"revision number; omit for the latest"`
	Locale   string `json:"locale,omitempty" jsonschema:"locale for error messages (en-US, he-IL)"`
}

// QuoteRevisionsInput represents the MCP tool input for listing revisions.
type QuoteRevisionsInput struct {
	EventID   string `json:"event_id" jsonschema:"event identifier"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum revisions to return"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
	Locale    string `json:"locale,omitempty" jsonschema:"locale for error messages (en-US, he-IL)"`
}

// QuoteRevisionResult represents one stored revision.
type QuoteRevisionResult struct {
	ID            string            `json:"id"`
	EventID       string            `json:"event_id"`
	Revision      int               `json:"revision"`
	Spec          pricing.EventSpec `json:"spec"`
	Quote         pricing.Quote     `json:"quote"`
	PriceVerified bool              `json:"price_verified"`
	Note          string            `json:"note,omitempty"`
	CreatedAt     string            `json:"created_at"`
}

// QuoteRevisionsResult represents a page of revisions, newest first.
type QuoteRevisionsResult struct {
	Revisions     []QuoteRevisionResult `json:"revisions"`
	NextPageToken string                `json:"next_page_token,omitempty"`
}

// QuoteCalculateTool defines the MCP tool schema for pricing an event.
func QuoteCalculateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "quote_calculate",
		Description: "Prices a catering event and returns the itemised quote",
	}
}

// QuoteApplyEditsTool defines the MCP tool schema for manual overrides.
func QuoteApplyEditsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "quote_apply_edits",
		Description: "Overrides line quantities or unit prices and re-prices the quote",
	}
}

// QuoteSaveTool defines the MCP tool schema for saving a quote revision.
func QuoteSaveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "quote_save",
		Description: "Attaches a quote to an event as a new revision",
	}
}

// QuoteGetTool defines the MCP tool schema for reading a saved quote.
func QuoteGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "quote_get",
		Description: "Returns the latest or a specific saved revision of an event quote",
	}
}

// QuoteRevisionsTool defines the MCP tool schema for listing revisions.
func QuoteRevisionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "quote_revisions",
		Description: "Lists saved revisions of an event quote, newest first",
	}
}

func revisionResultFromWire(rev quotegrpc.Revision) QuoteRevisionResult {
	return QuoteRevisionResult{
		ID:            rev.ID,
		EventID:       rev.EventID,
		Revision:      rev.Number,
		Spec:          rev.Spec,
		Quote:         rev.Quote,
		PriceVerified: rev.PriceVerified,
		Note:          rev.Note,
		CreatedAt:     formatTimestamp(rev.CreatedAt),
	}
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
