package quote

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	apperrors "github.com/louisbranch/catering.space/internal/platform/errors"
	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
	quoteservice "github.com/louisbranch/catering.space/internal/services/quote/service"
	quotesqlite "github.com/louisbranch/catering.space/internal/services/quote/storage/sqlite"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func startTestServer(t *testing.T) *Client {
	t.Helper()

	store, err := quotesqlite.Open(filepath.Join(t.TempDir(), "quote.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	quotes := quoteservice.New(pricing.MustNew(pricing.DefaultConfig()), store)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := grpc.NewServer()
	RegisterQuoteServiceServer(server, NewService(quotes, ""))
	go func() {
		_ = server.Serve(listener)
	}()

	conn, err := grpc.NewClient(listener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial quote server: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
		_ = store.Close()
	})
	return NewClient(conn)
}

func partySpec() pricing.EventSpec {
	return pricing.EventSpec{
		GuestCount:    90,
		ServingFormat: pricing.ServingFormatBuffet,
		CulinaryStyle: pricing.CulinaryStyleAll,
		Distance:      pricing.DistanceClose,
		Kosher:        pricing.KosherSupervisor,
	}
}

func TestCalculateOverGRPC(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	resp, err := client.Calculate(ctx, CalculateRequest{Spec: partySpec()})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	want, err := pricing.MustNew(pricing.DefaultConfig()).Calculate(partySpec())
	if err != nil {
		t.Fatalf("local calculate: %v", err)
	}
	if resp.Quote.FinalPrice != want.FinalPrice || len(resp.Quote.LineItems) != len(want.LineItems) {
		t.Fatalf("remote quote %v with %d lines, want %v with %d",
			resp.Quote.FinalPrice, len(resp.Quote.LineItems), want.FinalPrice, len(want.LineItems))
	}
	for i := range want.LineItems {
		if resp.Quote.LineItems[i] != want.LineItems[i] {
			t.Fatalf("line %d = %+v, want %+v", i, resp.Quote.LineItems[i], want.LineItems[i])
		}
	}
	if resp.Spec.EventScale != pricing.EventScaleSmall {
		t.Fatalf("scale = %q", resp.Spec.EventScale)
	}
}

func TestCalculateErrorDetails(t *testing.T) {
	client := startTestServer(t)
	spec := partySpec()
	spec.GuestCount = 200

	_, err := client.Calculate(WithLocale(context.Background(), "he-IL"), CalculateRequest{Spec: spec})
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected status error, got %v", err)
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %v, want %v", st.Code(), codes.InvalidArgument)
	}
	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.GetReason() != string(apperrors.CodeQuoteGuestCountOverFormat) {
		t.Fatalf("error info = %v", info)
	}
	if info.GetMetadata()["Max"] != "150" {
		t.Fatalf("metadata = %v", info.GetMetadata())
	}
	if localized == nil || localized.GetLocale() != "he-IL" || localized.GetMessage() == "" {
		t.Fatalf("localized = %v", localized)
	}
}

func TestApplyEditsOverGRPC(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()
	calc, err := client.Calculate(ctx, CalculateRequest{Spec: partySpec()})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	resp, err := client.ApplyEdits(ctx, ApplyEditsRequest{
		GuestCount: calc.Quote.GuestCount,
		LineItems:  calc.Quote.LineItems,
		Edits: []pricing.Edit{
			{Index: 2, Field: pricing.EditQuantity, Value: 6},
			{Index: 99, Field: pricing.EditQuantity, Value: 1},
		},
	})
	if err != nil {
		t.Fatalf("apply edits: %v", err)
	}
	if got := resp.Quote.LineItems[2].Quantity; got != 6 {
		t.Fatalf("quantity = %v, want 6", got)
	}
	if len(resp.Changes) != 1 || resp.Changes[0].Index != 2 {
		t.Fatalf("changes = %+v", resp.Changes)
	}
	if len(resp.Rejected) != 1 || resp.Rejected[0].Code != string(apperrors.CodeQuoteEditOutOfRange) {
		t.Fatalf("rejected = %+v", resp.Rejected)
	}
	if resp.Rejected[0].Message != "There is no line 99 in this quote." {
		t.Fatalf("message = %q", resp.Rejected[0].Message)
	}
}

func TestQuoteRevisionsOverGRPC(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()
	calc, err := client.Calculate(ctx, CalculateRequest{Spec: partySpec()})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	for i, note := range []string{"draft", "after call", "final"} {
		rev, err := client.SaveQuote(ctx, SaveQuoteRequest{
			EventID:       "evt-7",
			Spec:          calc.Spec,
			LineItems:     calc.Quote.LineItems,
			PriceVerified: note == "final",
			Note:          note,
		})
		if err != nil {
			t.Fatalf("save %s: %v", note, err)
		}
		if rev.Number != i+1 || rev.ID == "" || rev.CreatedAt.IsZero() {
			t.Fatalf("revision = %+v", rev)
		}
	}

	latest, err := client.GetQuote(ctx, GetQuoteRequest{EventID: "evt-7"})
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest.Number != 3 || !latest.PriceVerified || latest.Quote.FinalPrice != calc.Quote.FinalPrice {
		t.Fatalf("latest = %+v", latest)
	}

	page, err := client.ListRevisions(ctx, ListRevisionsRequest{EventID: "evt-7", PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Revisions) != 2 || page.NextPageToken == "" {
		t.Fatalf("page = %+v", page)
	}
	rest, err := client.ListRevisions(ctx, ListRevisionsRequest{EventID: "evt-7", PageSize: 2, PageToken: page.NextPageToken})
	if err != nil {
		t.Fatalf("list rest: %v", err)
	}
	if len(rest.Revisions) != 1 || rest.Revisions[0].Note != "draft" {
		t.Fatalf("rest = %+v", rest)
	}

	_, err = client.ListRevisions(ctx, ListRevisionsRequest{EventID: "evt-7", PageSize: 2, PageToken: "!!garbage!!"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("bad page token code = %v, want %v", status.Code(err), codes.InvalidArgument)
	}

	_, err = client.GetQuote(ctx, GetQuoteRequest{EventID: "evt-missing"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("missing code = %v", status.Code(err))
	}
	_, err = client.SaveQuote(ctx, SaveQuoteRequest{Spec: calc.Spec, LineItems: calc.Quote.LineItems})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("empty event code = %v", status.Code(err))
	}
}

func TestServiceRejectsNilRequest(t *testing.T) {
	svc := NewService(quoteservice.New(pricing.MustNew(pricing.DefaultConfig()), nil), "en-US")
	if _, err := svc.Calculate(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %v", status.Code(err))
	}
	var unconfigured *Service
	if _, err := unconfigured.GetQuote(context.Background(), &structpb.Struct{}); status.Code(err) != codes.Internal {
		t.Fatalf("code = %v", status.Code(err))
	}
}

func TestStructRoundTripKeepsTypes(t *testing.T) {
	in := ListRevisionsRequest{EventID: "evt-1", PageSize: 25, PageToken: "Mg"}
	st, err := toStruct(in)
	if err != nil {
		t.Fatalf("to struct: %v", err)
	}
	if got := st.GetFields()["page_size"].GetNumberValue(); got != 25 {
		t.Fatalf("page_size = %v", got)
	}
	var out ListRevisionsRequest
	if err := fromStruct(st, &out); err != nil {
		t.Fatalf("from struct: %v", err)
	}
	if out != in {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
}
