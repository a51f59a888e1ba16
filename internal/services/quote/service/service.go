// Package service implements quote operations on top of the pricing engine
// and quote storage. Transports (gRPC, MCP, CLI) call into it.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
	"github.com/louisbranch/catering.space/internal/platform/grpc/pagination"
	"github.com/louisbranch/catering.space/internal/platform/id"
	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
	"github.com/louisbranch/catering.space/internal/services/quote/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/catering.space/internal/services/quote/service"

// RevisionPageSize bounds ListRevisions page sizes.
var RevisionPageSize = pagination.PageSizeConfig{Default: 10, Max: 50}

// CalculateRequest asks for a fresh quote.
type CalculateRequest struct {
	Spec pricing.EventSpec
	// AutoCorrectFormat replaces a serving format that cannot host the guest
	// count with the first one that can.
	AutoCorrectFormat bool
}

// CalculateResult is a generated quote.
type CalculateResult struct {
	Spec     pricing.EventSpec
	Quote    pricing.Quote
	Staffing pricing.Staffing
}

// EditRequest re-prices line items after manual overrides.
type EditRequest struct {
	GuestCount int
	LineItems  []pricing.LineItem
	Edits      []pricing.Edit
}

// RejectedEdit is an edit that was skipped.
type RejectedEdit struct {
	Edit pricing.Edit
	Err  error
}

// EditResult is the reconciled quote with its line differences.
type EditResult struct {
	Quote    pricing.Quote
	Changes  []pricing.LineChange
	Rejected []RejectedEdit
	Staffing pricing.Staffing
}

// SaveRequest stores a quote as the next revision of an event.
type SaveRequest struct {
	EventID       string
	Spec          pricing.EventSpec
	LineItems     []pricing.LineItem
	PriceVerified bool
	Note          string
}

// Service prices, edits and stores quotes.
type Service struct {
	engine *pricing.Engine
	store  storage.QuoteStore
	clock  func() time.Time
	newID  func() (string, error)
	tracer trace.Tracer
}

// New creates a quote service. A nil store limits the service to the
// stateless operations.
func New(engine *pricing.Engine, store storage.QuoteStore) *Service {
	return &Service{
		engine: engine,
		store:  store,
		clock:  time.Now,
		newID:  id.NewID,
		tracer: otel.Tracer(tracerName),
	}
}

// Engine returns the pricing engine behind the service.
func (s *Service) Engine() *pricing.Engine {
	return s.engine
}

// Calculate normalizes the event and prices it.
func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (CalculateResult, error) {
	_, span := s.tracer.Start(ctx, "quote.Calculate", trace.WithAttributes(
		attribute.Int("quote.guest_count", req.Spec.GuestCount),
		attribute.String("quote.serving_format", string(req.Spec.ServingFormat)),
	))
	defer span.End()

	spec := req.Spec
	if req.AutoCorrectFormat {
		if format, ok := pricing.NormalizeServingFormat(string(spec.ServingFormat)); ok {
			corrected := s.engine.CorrectServingFormat(format, spec.GuestCount)
			if corrected != format {
				log.Printf("quote: serving format %s cannot host %d guests, using %s", format, spec.GuestCount, corrected)
				span.AddEvent("serving format corrected")
			}
			spec.ServingFormat = corrected
		}
	}

	normalized, err := s.engine.NormalizeSpec(spec)
	if err != nil {
		logSpecError(err)
		return CalculateResult{}, recordError(span, err)
	}
	q, err := s.engine.Calculate(normalized)
	if err != nil {
		return CalculateResult{}, recordError(span, err)
	}
	span.SetAttributes(
		attribute.Int("quote.line_count", len(q.LineItems)),
		attribute.Float64("quote.final_price", q.FinalPrice),
	)
	return CalculateResult{
		Spec:     normalized,
		Quote:    q,
		Staffing: pricing.RequiredStaff(q.LineItems),
	}, nil
}

// ApplyEdits applies overrides to line items and re-aggregates. Rejected
// edits are reported in the result, not as an error.
func (s *Service) ApplyEdits(ctx context.Context, req EditRequest) (EditResult, error) {
	_, span := s.tracer.Start(ctx, "quote.ApplyEdits", trace.WithAttributes(
		attribute.Int("quote.guest_count", req.GuestCount),
		attribute.Int("quote.edit_count", len(req.Edits)),
	))
	defer span.End()

	if len(req.LineItems) == 0 {
		return EditResult{}, recordError(span, apperrors.New(apperrors.CodeQuoteEmptyLineList, "line items are required"))
	}

	items := req.LineItems
	var rejected []RejectedEdit
	for _, edit := range req.Edits {
		next, err := pricing.ApplyEdit(items, edit)
		if err != nil {
			log.Printf("quote: edit rejected: %v", err)
			rejected = append(rejected, RejectedEdit{Edit: edit, Err: err})
			continue
		}
		items = next
	}
	q, err := pricing.Aggregate(s.engine.Rates(), req.GuestCount, items)
	if err != nil {
		return EditResult{}, recordError(span, err)
	}
	if len(rejected) > 0 {
		span.SetAttributes(attribute.Int("quote.rejected_edits", len(rejected)))
	}
	return EditResult{
		Quote:    q,
		Changes:  pricing.Diff(req.LineItems, q.LineItems),
		Rejected: rejected,
		Staffing: pricing.RequiredStaff(q.LineItems),
	}, nil
}

// SaveQuote stores line items as the next revision of an event. Totals are
// recomputed from the lines so a stored quote is always consistent.
func (s *Service) SaveQuote(ctx context.Context, req SaveRequest) (storage.Revision, error) {
	ctx, span := s.tracer.Start(ctx, "quote.SaveQuote", trace.WithAttributes(
		attribute.String("quote.event_id", req.EventID),
	))
	defer span.End()

	if s.store == nil {
		return storage.Revision{}, recordError(span, errors.New("quote store is not configured"))
	}
	eventID := strings.TrimSpace(req.EventID)
	if eventID == "" {
		return storage.Revision{}, recordError(span, apperrors.New(apperrors.CodeQuoteEmptyEventID, "event id is required"))
	}
	if len(req.LineItems) == 0 {
		return storage.Revision{}, recordError(span, apperrors.New(apperrors.CodeQuoteEmptyLineList, "line items are required"))
	}
	spec, err := s.engine.NormalizeSpec(req.Spec)
	if err != nil {
		logSpecError(err)
		return storage.Revision{}, recordError(span, err)
	}
	items, err := consistentLines(req.LineItems)
	if err != nil {
		return storage.Revision{}, recordError(span, err)
	}
	q, err := pricing.Aggregate(s.engine.Rates(), spec.GuestCount, items)
	if err != nil {
		return storage.Revision{}, recordError(span, err)
	}
	revisionID, err := s.newID()
	if err != nil {
		return storage.Revision{}, recordError(span, fmt.Errorf("new revision id: %w", err))
	}

	rev, err := s.store.AppendRevision(ctx, storage.Revision{
		ID:            revisionID,
		EventID:       eventID,
		Spec:          spec,
		Quote:         q,
		PriceVerified: req.PriceVerified,
		Note:          req.Note,
		CreatedAt:     s.clock().UTC(),
	})
	if err != nil {
		return storage.Revision{}, recordError(span, fmt.Errorf("save quote for event %s: %w", eventID, err))
	}
	span.SetAttributes(attribute.Int("quote.revision", rev.Number))
	log.Printf("quote: saved event %s revision %d (%s)", rev.EventID, rev.Number, rev.ID)
	return rev, nil
}

// GetQuote returns one revision of an event. Revision 0 means the latest.
func (s *Service) GetQuote(ctx context.Context, eventID string, revision int) (storage.Revision, error) {
	ctx, span := s.tracer.Start(ctx, "quote.GetQuote", trace.WithAttributes(
		attribute.String("quote.event_id", eventID),
		attribute.Int("quote.revision", revision),
	))
	defer span.End()

	if s.store == nil {
		return storage.Revision{}, recordError(span, errors.New("quote store is not configured"))
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return storage.Revision{}, recordError(span, apperrors.New(apperrors.CodeQuoteEmptyEventID, "event id is required"))
	}

	var (
		rev storage.Revision
		err error
	)
	if revision <= 0 {
		rev, err = s.store.GetLatestRevision(ctx, eventID)
	} else {
		rev, err = s.store.GetRevision(ctx, eventID, revision)
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Revision{}, recordError(span, notFoundError(eventID, revision, err))
		}
		return storage.Revision{}, recordError(span, fmt.Errorf("get quote for event %s: %w", eventID, err))
	}
	return rev, nil
}

// ListRevisions returns one page of an event's revisions, newest first.
func (s *Service) ListRevisions(ctx context.Context, eventID string, pageSize int32, pageToken string) (storage.RevisionPage, error) {
	ctx, span := s.tracer.Start(ctx, "quote.ListRevisions", trace.WithAttributes(
		attribute.String("quote.event_id", eventID),
	))
	defer span.End()

	if s.store == nil {
		return storage.RevisionPage{}, recordError(span, errors.New("quote store is not configured"))
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return storage.RevisionPage{}, recordError(span, apperrors.New(apperrors.CodeQuoteEmptyEventID, "event id is required"))
	}
	page, err := s.store.ListRevisions(ctx, eventID, pagination.ClampPageSize(pageSize, RevisionPageSize), pageToken)
	if err != nil {
		return storage.RevisionPage{}, recordError(span, fmt.Errorf("list revisions for event %s: %w", eventID, err))
	}
	return page, nil
}

// consistentLines copies items with every line total recomputed from its
// quantity and unit price.
func consistentLines(items []pricing.LineItem) ([]pricing.LineItem, error) {
	out := make([]pricing.LineItem, len(items))
	for i, item := range items {
		for _, v := range []struct {
			field string
			value float64
		}{
			{"quantity", item.Quantity},
			{"unit_price", item.UnitPrice},
		} {
			if !(v.value >= 0) || math.IsInf(v.value, 0) {
				field := fmt.Sprintf("line_items[%d].%s", i, v.field)
				return nil, apperrors.WithMetadata(apperrors.CodeQuoteNegativeAmount,
					field+" is not a non-negative number", map[string]string{"Field": field})
			}
		}
		item.LineTotal = item.Quantity * item.UnitPrice
		out[i] = item
	}
	return out, nil
}

func notFoundError(eventID string, revision int, cause error) error {
	resource := "Quote"
	if revision > 0 {
		resource = "Revision " + strconv.Itoa(revision) + " of quote"
	}
	return apperrors.WrapWithMetadata(apperrors.CodeNotFound,
		fmt.Sprintf("quote %s revision %d not found", eventID, revision),
		map[string]string{"Resource": resource, "ID": eventID},
		cause,
	)
}

func logSpecError(err error) {
	switch apperrors.GetCode(err) {
	case apperrors.CodeQuoteUnknownServingFormat,
		apperrors.CodeQuoteUnknownCulinaryStyle,
		apperrors.CodeQuoteUnknownFishPlacement,
		apperrors.CodeQuoteUnknownEventScale,
		apperrors.CodeQuoteUnknownKosher,
		apperrors.CodeQuoteUnknownDistance:
		log.Printf("quote: unknown label in event spec: %v", err)
	}
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
