package quote

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls quote.v1.QuoteService.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client over conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// WithLocale returns a context asking the server to localize error messages.
func WithLocale(ctx context.Context, locale string) context.Context {
	if locale == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, LocaleHeader, locale)
}

// Calculate prices an event.
func (c *Client) Calculate(ctx context.Context, req CalculateRequest, opts ...grpc.CallOption) (CalculateResponse, error) {
	var out CalculateResponse
	err := c.invoke(ctx, methodCalculate, req, &out, opts...)
	return out, err
}

// ApplyEdits re-prices line items after overrides.
func (c *Client) ApplyEdits(ctx context.Context, req ApplyEditsRequest, opts ...grpc.CallOption) (ApplyEditsResponse, error) {
	var out ApplyEditsResponse
	err := c.invoke(ctx, methodApplyEdits, req, &out, opts...)
	return out, err
}

// SaveQuote stores a new revision.
func (c *Client) SaveQuote(ctx context.Context, req SaveQuoteRequest, opts ...grpc.CallOption) (Revision, error) {
	var out RevisionResponse
	err := c.invoke(ctx, methodSaveQuote, req, &out, opts...)
	return out.Revision, err
}

// GetQuote returns one stored revision.
func (c *Client) GetQuote(ctx context.Context, req GetQuoteRequest, opts ...grpc.CallOption) (Revision, error) {
	var out RevisionResponse
	err := c.invoke(ctx, methodGetQuote, req, &out, opts...)
	return out.Revision, err
}

// ListRevisions returns a page of stored revisions.
func (c *Client) ListRevisions(ctx context.Context, req ListRevisionsRequest, opts ...grpc.CallOption) (ListRevisionsResponse, error) {
	var out ListRevisionsResponse
	err := c.invoke(ctx, methodListRevisions, req, &out, opts...)
	return out, err
}

func (c *Client) invoke(ctx context.Context, method string, req, out any, opts ...grpc.CallOption) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	reply := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, reply, opts...); err != nil {
		return err
	}
	return fromStruct(reply, out)
}
