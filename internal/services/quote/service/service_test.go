package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
	"github.com/louisbranch/catering.space/internal/services/quote/storage"
)

type fakeStore struct {
	mu        sync.Mutex
	revisions map[string][]storage.Revision
	appendErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{revisions: make(map[string][]storage.Revision)}
}

func (f *fakeStore) AppendRevision(_ context.Context, rev storage.Revision) (storage.Revision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return storage.Revision{}, f.appendErr
	}
	rev.Number = len(f.revisions[rev.EventID]) + 1
	f.revisions[rev.EventID] = append(f.revisions[rev.EventID], rev)
	return rev, nil
}

func (f *fakeStore) GetLatestRevision(_ context.Context, eventID string) (storage.Revision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	revs := f.revisions[eventID]
	if len(revs) == 0 {
		return storage.Revision{}, storage.ErrNotFound
	}
	return revs[len(revs)-1], nil
}

func (f *fakeStore) GetRevision(_ context.Context, eventID string, number int) (storage.Revision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	revs := f.revisions[eventID]
	if number < 1 || number > len(revs) {
		return storage.Revision{}, storage.ErrNotFound
	}
	return revs[number-1], nil
}

func (f *fakeStore) ListRevisions(_ context.Context, eventID string, pageSize int, pageToken string) (storage.RevisionPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	revs := f.revisions[eventID]
	var page storage.RevisionPage
	for i := len(revs) - 1; i >= 0 && len(page.Revisions) < pageSize; i-- {
		page.Revisions = append(page.Revisions, revs[i])
	}
	if len(page.Revisions) < len(revs) {
		page.NextPageToken = strconv.Itoa(len(page.Revisions))
	}
	return page, nil
}

func newTestService(t *testing.T, store storage.QuoteStore) *Service {
	t.Helper()
	engine, err := pricing.New(pricing.DefaultConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	svc := New(engine, store)
	svc.clock = func() time.Time { return time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC) }
	next := 0
	svc.newID = func() (string, error) {
		next++
		return "rev-" + strconv.Itoa(next), nil
	}
	return svc
}

func weddingSpec() pricing.EventSpec {
	return pricing.EventSpec{
		GuestCount:    120,
		ServingFormat: pricing.ServingFormatBuffet,
		CulinaryStyle: pricing.CulinaryStyleAll,
		Distance:      pricing.DistanceFar,
	}
}

func TestCalculate(t *testing.T) {
	svc := newTestService(t, nil)
	res, err := svc.Calculate(context.Background(), CalculateRequest{Spec: weddingSpec()})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.Quote.GuestCount != 120 || len(res.Quote.LineItems) == 0 {
		t.Fatalf("quote = %+v", res.Quote)
	}
	if res.Spec.EventScale != pricing.EventScaleMedium || res.Spec.Kosher != pricing.KosherNone {
		t.Fatalf("spec not normalized: %+v", res.Spec)
	}
	if res.Staffing.Kitchen != 6 || res.Staffing.Floor != 4 {
		t.Fatalf("staffing = %+v", res.Staffing)
	}
}

func TestCalculateAutoCorrectsFormat(t *testing.T) {
	svc := newTestService(t, nil)
	spec := weddingSpec()
	spec.GuestCount = 300

	if _, err := svc.Calculate(context.Background(), CalculateRequest{Spec: spec}); !apperrors.IsCode(err, apperrors.CodeQuoteGuestCountOverFormat) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeQuoteGuestCountOverFormat)
	}

	res, err := svc.Calculate(context.Background(), CalculateRequest{Spec: spec, AutoCorrectFormat: true})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.Spec.ServingFormat != pricing.ServingFormatMarket {
		t.Fatalf("format = %s, want market", res.Spec.ServingFormat)
	}
}

func TestCalculateRejectsUnknownLabel(t *testing.T) {
	svc := newTestService(t, nil)
	spec := weddingSpec()
	spec.Distance = "abroad"
	_, err := svc.Calculate(context.Background(), CalculateRequest{Spec: spec, AutoCorrectFormat: true})
	if !apperrors.IsCode(err, apperrors.CodeQuoteUnknownDistance) {
		t.Fatalf("error = %v", err)
	}
}

func TestApplyEdits(t *testing.T) {
	svc := newTestService(t, nil)
	res, err := svc.Calculate(context.Background(), CalculateRequest{Spec: weddingSpec()})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	edited, err := svc.ApplyEdits(context.Background(), EditRequest{
		GuestCount: 120,
		LineItems:  res.Quote.LineItems,
		Edits: []pricing.Edit{
			{Index: 7, Field: pricing.EditQuantity, Value: 8},
			{Index: 500, Field: pricing.EditQuantity, Value: 1},
			{Index: 0, Field: pricing.EditUnitPrice, Value: -1},
		},
	})
	if err != nil {
		t.Fatalf("apply edits: %v", err)
	}
	if len(edited.Rejected) != 2 {
		t.Fatalf("rejected = %+v", edited.Rejected)
	}
	if !apperrors.IsCode(edited.Rejected[0].Err, apperrors.CodeQuoteEditOutOfRange) ||
		!apperrors.IsCode(edited.Rejected[1].Err, apperrors.CodeQuoteEditRejected) {
		t.Fatalf("rejection codes = %v, %v", edited.Rejected[0].Err, edited.Rejected[1].Err)
	}
	if len(edited.Changes) != 1 || edited.Changes[0].Index != 7 || edited.Changes[0].QuantityDelta != 2 {
		t.Fatalf("changes = %+v", edited.Changes)
	}
	if edited.Staffing.Kitchen != 8 {
		t.Fatalf("kitchen staffing = %v, want 8", edited.Staffing.Kitchen)
	}
	if edited.Quote.DirectCost <= res.Quote.DirectCost {
		t.Fatal("direct cost did not grow")
	}
}

func TestApplyEditsRequiresLines(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.ApplyEdits(context.Background(), EditRequest{GuestCount: 10})
	if !apperrors.IsCode(err, apperrors.CodeQuoteEmptyLineList) {
		t.Fatalf("error = %v", err)
	}
}

func TestSaveAndGetQuote(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()
	res, err := svc.Calculate(ctx, CalculateRequest{Spec: weddingSpec()})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	items := append([]pricing.LineItem(nil), res.Quote.LineItems...)
	items[0].LineTotal = 1

	rev, err := svc.SaveQuote(ctx, SaveRequest{
		EventID:   " evt-1 ",
		Spec:      weddingSpec(),
		LineItems: items,
		Note:      "first draft",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if rev.ID != "rev-1" || rev.EventID != "evt-1" || rev.Number != 1 {
		t.Fatalf("revision = %+v", rev)
	}
	if rev.Quote.FinalPrice != res.Quote.FinalPrice {
		t.Fatalf("saved final price %v, want recomputed %v", rev.Quote.FinalPrice, res.Quote.FinalPrice)
	}
	if !rev.CreatedAt.Equal(time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("created at = %v", rev.CreatedAt)
	}

	second, err := svc.SaveQuote(ctx, SaveRequest{EventID: "evt-1", Spec: weddingSpec(), LineItems: items, PriceVerified: true})
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if second.Number != 2 {
		t.Fatalf("second number = %d", second.Number)
	}

	latest, err := svc.GetQuote(ctx, "evt-1", 0)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest.Number != 2 || !latest.PriceVerified {
		t.Fatalf("latest = %+v", latest)
	}
	first, err := svc.GetQuote(ctx, "evt-1", 1)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if first.Note != "first draft" {
		t.Fatalf("first note = %q", first.Note)
	}

	page, err := svc.ListRevisions(ctx, "evt-1", 0, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Revisions) != 2 || page.Revisions[0].Number != 2 {
		t.Fatalf("page = %+v", page)
	}
}

func TestSaveQuoteValidation(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	res, err := svc.Calculate(context.Background(), CalculateRequest{Spec: weddingSpec()})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	badSpec := weddingSpec()
	badSpec.GuestCount = 0

	tests := []struct {
		name string
		req  SaveRequest
		code apperrors.Code
	}{
		{"empty event", SaveRequest{EventID: " ", Spec: weddingSpec(), LineItems: res.Quote.LineItems}, apperrors.CodeQuoteEmptyEventID},
		{"no lines", SaveRequest{EventID: "evt-1", Spec: weddingSpec()}, apperrors.CodeQuoteEmptyLineList},
		{"bad spec", SaveRequest{EventID: "evt-1", Spec: badSpec, LineItems: res.Quote.LineItems}, apperrors.CodeQuoteGuestCountOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SaveQuote(context.Background(), tt.req); !apperrors.IsCode(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSaveQuoteStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.appendErr = errors.New("disk full")
	svc := newTestService(t, store)
	res, err := svc.Calculate(context.Background(), CalculateRequest{Spec: weddingSpec()})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	_, err = svc.SaveQuote(context.Background(), SaveRequest{EventID: "evt-1", Spec: weddingSpec(), LineItems: res.Quote.LineItems})
	if !errors.Is(err, store.appendErr) {
		t.Fatalf("error = %v", err)
	}
}

func TestGetQuoteNotFound(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	_, err := svc.GetQuote(context.Background(), "evt-404", 0)
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("error = %v", err)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("not found error lost its cause")
	}
	if got := apperrors.UserMessage(err, "en-US"); got != "Quote evt-404 was not found." {
		t.Fatalf("message = %q", got)
	}

	_, err = svc.GetQuote(context.Background(), "evt-404", 3)
	if got := apperrors.UserMessage(err, "en-US"); got != "Revision 3 of quote evt-404 was not found." {
		t.Fatalf("message = %q", got)
	}
}

func TestStoreOperationsWithoutStore(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.GetQuote(context.Background(), "evt-1", 0); err == nil {
		t.Fatal("expected error without store")
	}
	if _, err := svc.ListRevisions(context.Background(), "evt-1", 10, ""); err == nil {
		t.Fatal("expected error without store")
	}
}

func TestSaveQuoteRejectsNegativeLine(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	items := []pricing.LineItem{{Category: pricing.CategoryFood, Key: "meat", Name: "Meat", Quantity: -1, UnitPrice: 10}}
	_, err := svc.SaveQuote(context.Background(), SaveRequest{EventID: "evt-1", Spec: weddingSpec(), LineItems: items})
	if !apperrors.IsCode(err, apperrors.CodeQuoteNegativeAmount) {
		t.Fatalf("error = %v", err)
	}
	if got := apperrors.GetMetadata(err)["Field"]; got != "line_items[0].quantity" {
		t.Fatalf("field = %q", got)
	}
}
