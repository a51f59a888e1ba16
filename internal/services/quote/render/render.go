// Package render formats quotes as localized plain-text reports for the
// customer proposal and the operations sheet.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	i18ncatalog "github.com/louisbranch/catering.space/internal/platform/i18n/catalog"
	"github.com/louisbranch/catering.space/internal/services/quote/domain/pricing"
	"golang.org/x/text/message"
)

// Options controls the optional report sections.
type Options struct {
	Locale string
	// EventID and Revision add a revision header when EventID is set.
	EventID  string
	Revision int
	// Verified adds the price-verified line when non-nil.
	Verified *bool
	// Changes lists manual edits relative to the generated quote.
	Changes []pricing.LineChange
	// Staffing adds the kitchen and floor headcount line.
	Staffing bool
}

// Renderer writes quote reports using one message bundle.
type Renderer struct {
	bundle *i18ncatalog.Bundle
}

// New returns a renderer over bundle. A nil bundle uses the embedded one.
func New(bundle *i18ncatalog.Bundle) *Renderer {
	if bundle == nil {
		bundle = i18ncatalog.Default()
	}
	return &Renderer{bundle: bundle}
}

// Text writes q as a localized report grouped by category. Each line keeps
// its quote index so edits can refer to it.
func (r *Renderer) Text(w io.Writer, q pricing.Quote, opts Options) error {
	locale := r.bundle.Match(opts.Locale)
	p := r.bundle.Printer(locale)
	var b strings.Builder

	b.WriteString(p.Sprintf("quote.report.title", q.GuestCount))
	b.WriteByte('\n')
	if opts.EventID != "" {
		b.WriteString(p.Sprintf("quote.report.revision", opts.EventID, opts.Revision))
		b.WriteByte('\n')
	}
	if opts.Verified != nil {
		key := "quote.report.unverified"
		if *opts.Verified {
			key = "quote.report.verified"
		}
		b.WriteString(p.Sprintf(key))
		b.WriteByte('\n')
	}

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, category := range pricing.Categories {
		first := true
		for i, item := range q.LineItems {
			if item.Category != category {
				continue
			}
			if first {
				fmt.Fprintf(tw, "\n%s\t\t\t\t\t\n", p.Sprintf("quote.category."+string(category)))
				fmt.Fprintf(tw, "#\t%s\t%s\t%s\t%s\t\n",
					p.Sprintf("quote.report.col.item"),
					p.Sprintf("quote.report.col.quantity"),
					p.Sprintf("quote.report.col.unit_price"),
					p.Sprintf("quote.report.col.total"))
				first = false
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
				i, r.lineName(locale, item), p.Sprint(item.Quantity), money(p, item.UnitPrice), money(p, item.LineTotal))
		}
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	for _, total := range []struct {
		key   string
		value float64
	}{
		{"quote.report.direct_cost", q.DirectCost},
		{"quote.report.overhead", q.Overhead},
		{"quote.report.profit", q.ProfitComponent},
		{"quote.report.final_price", q.FinalPrice},
		{"quote.report.output_tax", q.OutputTax},
		{"quote.report.final_price_with_tax", q.FinalPriceWithTax},
		{"quote.report.price_per_guest", q.PricePerGuest},
		{"quote.report.price_per_guest_with_tax", q.PricePerGuestWithTax},
	} {
		fmt.Fprintf(tw, "\t%s\t\t\t%s\t\n", p.Sprintf(total.key), money(p, total.value))
	}

	fmt.Fprintf(tw, "\n%s\t\t\t\t\t\n", p.Sprintf("quote.report.breakdown"))
	for _, bucket := range []struct {
		category pricing.Category
		value    float64
	}{
		{pricing.CategoryFood, q.Breakdown.Food},
		{pricing.CategoryLabor, q.Breakdown.Labor},
		{pricing.CategoryRental, q.Breakdown.Equipment},
		{pricing.CategoryLogistics, q.Breakdown.Logistics},
	} {
		fmt.Fprintf(tw, "\t%s\t\t\t%s\t\n", p.Sprintf("quote.category."+string(bucket.category)), money(p, bucket.value))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if opts.Staffing {
		staff := pricing.RequiredStaff(q.LineItems)
		b.WriteByte('\n')
		b.WriteString(p.Sprintf("quote.report.staffing", staff.Kitchen, staff.Floor))
		b.WriteByte('\n')
	}
	if len(opts.Changes) > 0 {
		b.WriteByte('\n')
		b.WriteString(p.Sprintf("quote.report.changes"))
		b.WriteByte('\n')
		for _, c := range opts.Changes {
			item := c.After
			if c.Kind == pricing.ChangeRemoved {
				item = c.Before
			}
			b.WriteString("  ")
			b.WriteString(p.Sprintf("quote.report.changed_line",
				r.lineName(locale, item), c.Before.Quantity, c.After.Quantity, c.Before.UnitPrice, c.After.UnitPrice))
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// lineName returns the catalog name for the line's rule, or the stored name
// for lines without one such as extras.
func (r *Renderer) lineName(locale string, item pricing.LineItem) string {
	if item.Key != "" {
		if name, ok := r.bundle.Message(locale, "quote.line."+item.Key); ok {
			return name
		}
	}
	return item.Name
}

func money(p *message.Printer, v float64) string {
	return p.Sprintf("%.2f", v)
}
