package quote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
	"github.com/louisbranch/catering.space/internal/services/quote/storage"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// CalculateRequest is the Calculate RPC input.
type CalculateRequest struct {
	Spec              pricing.EventSpec `json:"spec"`
	AutoCorrectFormat bool              `json:"auto_correct_format,omitempty"`
}

// CalculateResponse is the Calculate RPC output.
type CalculateResponse struct {
	Spec     pricing.EventSpec `json:"spec"`
	Quote    pricing.Quote     `json:"quote"`
	Staffing pricing.Staffing  `json:"staffing"`
}

// ApplyEditsRequest is the ApplyEdits RPC input.
type ApplyEditsRequest struct {
	GuestCount int                `json:"guest_count"`
	LineItems  []pricing.LineItem `json:"line_items"`
	Edits      []pricing.Edit     `json:"edits"`
}

// RejectedEdit reports an edit that was not applied.
type RejectedEdit struct {
	Edit    pricing.Edit `json:"edit"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
}

// ApplyEditsResponse is the ApplyEdits RPC output.
type ApplyEditsResponse struct {
	Quote    pricing.Quote        `json:"quote"`
	Changes  []pricing.LineChange `json:"changes,omitempty"`
	Rejected []RejectedEdit       `json:"rejected,omitempty"`
	Staffing pricing.Staffing     `json:"staffing"`
}

// SaveQuoteRequest is the SaveQuote RPC input.
type SaveQuoteRequest struct {
	EventID       string             `json:"event_id"`
	Spec          pricing.EventSpec  `json:"spec"`
	LineItems     []pricing.LineItem `json:"line_items"`
	PriceVerified bool               `json:"price_verified,omitempty"`
	Note          string             `json:"note,omitempty"`
}

// Revision is a stored quote revision on the wire.
type Revision struct {
	ID            string            `json:"id"`
	EventID       string            `json:"event_id"`
	Number        int               `json:"number"`
	Spec          pricing.EventSpec `json:"spec"`
	Quote         pricing.Quote     `json:"quote"`
	PriceVerified bool              `json:"price_verified"`
	Note          string            `json:"note,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// RevisionResponse wraps a single revision.
type RevisionResponse struct {
	Revision Revision `json:"revision"`
}

// GetQuoteRequest is the GetQuote RPC input. Revision 0 selects the latest.
type GetQuoteRequest struct {
	EventID  string `json:"event_id"`
	Revision int    `json:"revision,omitempty"`
}

// ListRevisionsRequest is the ListRevisions RPC input.
type ListRevisionsRequest struct {
	EventID   string `json:"event_id"`
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

// ListRevisionsResponse is the ListRevisions RPC output.
type ListRevisionsResponse struct {
	Revisions     []Revision `json:"revisions"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

func revisionToWire(rev storage.Revision) Revision {
	return Revision{
		ID:            rev.ID,
		EventID:       rev.EventID,
		Number:        rev.Number,
		Spec:          rev.Spec,
		Quote:         rev.Quote,
		PriceVerified: rev.PriceVerified,
		Note:          rev.Note,
		CreatedAt:     rev.CreatedAt.UTC(),
	}
}

// toStruct encodes a message as a protobuf Struct through its JSON form.
func toStruct(msg any) (*structpb.Struct, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", msg, err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("encode %T: %w", msg, err)
	}
	return out, nil
}

// fromStruct decodes a protobuf Struct into msg. A nil Struct leaves msg
// at its zero value.
func fromStruct(in *structpb.Struct, msg any) error {
	if in == nil {
		return nil
	}
	raw, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	if err := json.Unmarshal(raw, msg); err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	return nil
}
