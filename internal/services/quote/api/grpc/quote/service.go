// Package quote exposes the quote service over gRPC.
package quote

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
	quoteservice "github.com/louisbranch/catering.space/internal/services/quote/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// LocaleHeader is the request metadata key selecting the error message
// locale.
const LocaleHeader = "x-catering-locale"

// Service adapts the quote service to quote.v1.QuoteService.
type Service struct {
	quotes        *quoteservice.Service
	defaultLocale string
}

// NewService creates the gRPC adapter. Errors are localized to
// defaultLocale unless the caller sends LocaleHeader.
func NewService(quotes *quoteservice.Service, defaultLocale string) *Service {
	if strings.TrimSpace(defaultLocale) == "" {
		defaultLocale = apperrors.DefaultLocale
	}
	return &Service{quotes: quotes, defaultLocale: defaultLocale}
}

// Calculate prices an event.
func (s *Service) Calculate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CalculateRequest
	if err := s.decode(in, &req); err != nil {
		return nil, err
	}
	res, err := s.quotes.Calculate(ctx, quoteservice.CalculateRequest{
		Spec:              req.Spec,
		AutoCorrectFormat: req.AutoCorrectFormat,
	})
	if err != nil {
		return nil, s.handleError(ctx, err)
	}
	return s.encode(CalculateResponse{Spec: res.Spec, Quote: res.Quote, Staffing: res.Staffing})
}

// ApplyEdits re-prices line items after overrides.
func (s *Service) ApplyEdits(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ApplyEditsRequest
	if err := s.decode(in, &req); err != nil {
		return nil, err
	}
	res, err := s.quotes.ApplyEdits(ctx, quoteservice.EditRequest{
		GuestCount: req.GuestCount,
		LineItems:  req.LineItems,
		Edits:      req.Edits,
	})
	if err != nil {
		return nil, s.handleError(ctx, err)
	}

	locale := s.locale(ctx)
	out := ApplyEditsResponse{Quote: res.Quote, Changes: res.Changes, Staffing: res.Staffing}
	for _, rejected := range res.Rejected {
		out.Rejected = append(out.Rejected, RejectedEdit{
			Edit:    rejected.Edit,
			Code:    string(apperrors.GetCode(rejected.Err)),
			Message: apperrors.UserMessage(rejected.Err, locale),
		})
	}
	return s.encode(out)
}

// SaveQuote stores a new revision.
func (s *Service) SaveQuote(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SaveQuoteRequest
	if err := s.decode(in, &req); err != nil {
		return nil, err
	}
	rev, err := s.quotes.SaveQuote(ctx, quoteservice.SaveRequest{
		EventID:       req.EventID,
		Spec:          req.Spec,
		LineItems:     req.LineItems,
		PriceVerified: req.PriceVerified,
		Note:          req.Note,
	})
	if err != nil {
		return nil, s.handleError(ctx, err)
	}
	return s.encode(RevisionResponse{Revision: revisionToWire(rev)})
}

// GetQuote returns one stored revision.
func (s *Service) GetQuote(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req GetQuoteRequest
	if err := s.decode(in, &req); err != nil {
		return nil, err
	}
	rev, err := s.quotes.GetQuote(ctx, req.EventID, req.Revision)
	if err != nil {
		return nil, s.handleError(ctx, err)
	}
	return s.encode(RevisionResponse{Revision: revisionToWire(rev)})
}

// ListRevisions returns a page of stored revisions, newest first.
func (s *Service) ListRevisions(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ListRevisionsRequest
	if err := s.decode(in, &req); err != nil {
		return nil, err
	}
	page, err := s.quotes.ListRevisions(ctx, req.EventID, req.PageSize, req.PageToken)
	if err != nil {
		return nil, s.handleError(ctx, err)
	}
	out := ListRevisionsResponse{
		Revisions:     make([]Revision, 0, len(page.Revisions)),
		NextPageToken: page.NextPageToken,
	}
	for _, rev := range page.Revisions {
		out.Revisions = append(out.Revisions, revisionToWire(rev))
	}
	return s.encode(out)
}

func (s *Service) decode(in *structpb.Struct, msg any) error {
	if s == nil || s.quotes == nil {
		return status.Error(codes.Internal, "quote service is not configured")
	}
	if in == nil {
		return status.Error(codes.InvalidArgument, "request is required")
	}
	if err := fromStruct(in, msg); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return nil
}

func (s *Service) encode(msg any) (*structpb.Struct, error) {
	out, err := toStruct(msg)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func (s *Service) handleError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return status.FromContextError(ctxErr).Err()
	}
	return apperrors.HandleError(err, s.locale(ctx))
}

func (s *Service) locale(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(LocaleHeader); len(values) > 0 && strings.TrimSpace(values[0]) != "" {
			return strings.TrimSpace(values[0])
		}
	}
	return s.defaultLocale
}

var _ QuoteServiceServer = (*Service)(nil)
