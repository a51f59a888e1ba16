package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/catering.space/internal/platform/timeouts"
	quotegrpc "github.com/louisbranch/catering.space/internal/services/quote/api/grpc/quote"
	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

// QuoteClient is the subset of the quote gRPC client the tools call.
type QuoteClient interface {
	Calculate(ctx context.Context, req quotegrpc.CalculateRequest, opts ...grpc.CallOption) (quotegrpc.CalculateResponse, error)
	ApplyEdits(ctx context.Context, req quotegrpc.ApplyEditsRequest, opts ...grpc.CallOption) (quotegrpc.ApplyEditsResponse, error)
	SaveQuote(ctx context.Context, req quotegrpc.SaveQuoteRequest, opts ...grpc.CallOption) (quotegrpc.Revision, error)
	GetQuote(ctx context.Context, req quotegrpc.GetQuoteRequest, opts ...grpc.CallOption) (quotegrpc.Revision, error)
	ListRevisions(ctx context.Context, req quotegrpc.ListRevisionsRequest, opts ...grpc.CallOption) (quotegrpc.ListRevisionsResponse, error)
}

var _ QuoteClient = (*quotegrpc.Client)(nil)

func newCallContext(ctx context.Context, locale string) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	return quotegrpc.WithLocale(callCtx, strings.TrimSpace(locale)), cancel
}

// QuoteCalculateHandler executes a quote calculation.
func QuoteCalculateHandler(client QuoteClient) mcp.ToolHandlerFor[QuoteCalculateInput, QuoteCalculateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QuoteCalculateInput) (*mcp.CallToolResult, QuoteCalculateResult, error) {
		callCtx, cancel := newCallContext(ctx, input.Locale)
		defer cancel()

		response, err := client.Calculate(callCtx, quotegrpc.CalculateRequest{
			Spec:              input.Spec,
			AutoCorrectFormat: input.AutoCorrectFormat,
		})
		if err != nil {
			return nil, QuoteCalculateResult{}, quoteCallError("calculate", err)
		}
		return nil, QuoteCalculateResult{
			Spec:     response.Spec,
			Quote:    response.Quote,
			Staffing: response.Staffing,
		}, nil
	}
}

// QuoteApplyEditsHandler re-prices line items after manual overrides.
func QuoteApplyEditsHandler(client QuoteClient) mcp.ToolHandlerFor[QuoteApplyEditsInput, QuoteApplyEditsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QuoteApplyEditsInput) (*mcp.CallToolResult, QuoteApplyEditsResult, error) {
		edits := make([]pricing.Edit, 0, len(input.Edits))
		for _, raw := range input.Edits {
			edit, err := pricing.ParseEdit(raw)
			if err != nil {
				return nil, QuoteApplyEditsResult{}, fmt.Errorf("edit %q: %w", raw, err)
			}
			edits = append(edits, edit)
		}

		callCtx, cancel := newCallContext(ctx, input.Locale)
		defer cancel()

		response, err := client.ApplyEdits(callCtx, quotegrpc.ApplyEditsRequest{
			GuestCount: input.GuestCount,
			LineItems:  input.LineItems,
			Edits:      edits,
		})
		if err != nil {
			return nil, QuoteApplyEditsResult{}, quoteCallError("apply edits", err)
		}

		result := QuoteApplyEditsResult{
			Quote:    response.Quote,
			Changes:  response.Changes,
			Staffing: response.Staffing,
		}
		for _, rejected := range response.Rejected {
			result.Rejected = append(result.Rejected, QuoteRejectedEdit{
				Edit:    rejected.Edit.String(),
				Code:    rejected.Code,
				Message: rejected.Message,
			})
		}
		return nil, result, nil
	}
}

// QuoteSaveHandler stores a quote as a new event revision.
func QuoteSaveHandler(client QuoteClient) mcp.ToolHandlerFor[QuoteSaveInput, QuoteRevisionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QuoteSaveInput) (*mcp.CallToolResult, QuoteRevisionResult, error) {
		eventID := strings.TrimSpace(input.EventID)
		if eventID == "" {
			return nil, QuoteRevisionResult{}, fmt.Errorf("event_id is required")
		}

		callCtx, cancel := newCallContext(ctx, input.Locale)
		defer cancel()

		revision, err := client.SaveQuote(callCtx, quotegrpc.SaveQuoteRequest{
			EventID:       eventID,
			Spec:          input.Spec,
			LineItems:     input.LineItems,
			PriceVerified: input.PriceVerified,
			Note:          input.Note,
		})
		if err != nil {
			return nil, QuoteRevisionResult{}, quoteCallError("save", err)
		}
		return nil, revisionResultFromWire(revision), nil
	}
}

// QuoteGetHandler reads a saved quote revision.
func QuoteGetHandler(client QuoteClient) mcp.ToolHandlerFor[QuoteGetInput, QuoteRevisionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QuoteGetInput) (*mcp.CallToolResult, QuoteRevisionResult, error) {
		eventID := strings.TrimSpace(input.EventID)
		if eventID == "" {
			return nil, QuoteRevisionResult{}, fmt.Errorf("event_id is required")
		}
		if input.Revision < 0 {
			return nil, QuoteRevisionResult{}, fmt.Errorf("revision must not be negative")
		}

		callCtx, cancel := newCallContext(ctx, input.Locale)
		defer cancel()

		revision, err := client.GetQuote(callCtx, quotegrpc.GetQuoteRequest{
			EventID:  eventID,
			Revision: input.Revision,
		})
		if err != nil {
			return nil, QuoteRevisionResult{}, quoteCallError("get", err)
		}
		return nil, revisionResultFromWire(revision), nil
	}
}

// QuoteRevisionsHandler lists saved revisions of an event quote.
func QuoteRevisionsHandler(client QuoteClient) mcp.ToolHandlerFor[QuoteRevisionsInput, QuoteRevisionsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QuoteRevisionsInput) (*mcp.CallToolResult, QuoteRevisionsResult, error) {
		eventID := strings.TrimSpace(input.EventID)
		if eventID == "" {
			return nil, QuoteRevisionsResult{}, fmt.Errorf("event_id is required")
		}

		callCtx, cancel := newCallContext(ctx, input.Locale)
		defer cancel()

		response, err := client.ListRevisions(callCtx, quotegrpc.ListRevisionsRequest{
			EventID:   eventID,
			PageSize:  int32(min(max(input.PageSize, 0), 1000)),
			PageToken: input.PageToken,
		})
		if err != nil {
			return nil, QuoteRevisionsResult{}, quoteCallError("revisions", err)
		}

		result := QuoteRevisionsResult{
			Revisions:     make([]QuoteRevisionResult, 0, len(response.Revisions)),
			NextPageToken: response.NextPageToken,
		}
		for _, revision := range response.Revisions {
			result.Revisions = append(result.Revisions, revisionResultFromWire(revision))
		}
		return nil, result, nil
	}
}
