// Package storage defines persistence contracts for saved quotes.
//
// Quotes are stored as append-only revisions keyed by event id. A revision
// is never rewritten once stored, so later changes to pricing constants do
// not alter a quote the customer already saw.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
)

var (
	// ErrNotFound indicates a requested event or revision is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a revision id collision.
	ErrAlreadyExists = errors.New("record already exists")
)

// Revision is one saved version of an event quote.
type Revision struct {
	ID      string
	EventID string
	// Number starts at 1 for the first saved quote of an event.
	Number int
	Spec   pricing.EventSpec
	Quote  pricing.Quote

	// PriceVerified marks a quote an operator has checked line by line.
	PriceVerified bool
	Note          string
	CreatedAt     time.Time
}

// RevisionPage stores one page of revisions, newest first.
type RevisionPage struct {
	Revisions     []Revision
	NextPageToken string
}

// QuoteStore persists quote revisions.
type QuoteStore interface {
	// AppendRevision stores rev as the next revision of its event and
	// returns it with Number and CreatedAt filled in.
	AppendRevision(ctx context.Context, rev Revision) (Revision, error)
	GetLatestRevision(ctx context.Context, eventID string) (Revision, error)
	GetRevision(ctx context.Context, eventID string, number int) (Revision, error)
	ListRevisions(ctx context.Context, eventID string, pageSize int, pageToken string) (RevisionPage, error)
}
