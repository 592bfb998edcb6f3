package stockcheck

import (
	"fmt"
	"io"
	"wishlist-stock/lib/scrapers/hpb"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	colorInfo     = text.Colors{text.FgCyan}
	colorHeader   = text.Colors{text.Underline, text.FgCyan}
	colorFound    = text.Colors{text.FgGreen}
	colorNotFound = text.Colors{text.FgRed}
)

// ConsoleReporter prints line-oriented, colored progress to a writer.
type ConsoleReporter struct {
	out io.Writer
}

func NewConsoleReporter(out io.Writer) ConsoleReporter {
	return ConsoleReporter{out: out}
}

func (r ConsoleReporter) StoreFound(store hpb.Store) {
	fmt.Fprintln(r.out, colorInfo.Sprintf("Found store: %s", store.Name))
}

func (r ConsoleReporter) StoresLocated(stores []hpb.Store) {
	fmt.Fprintf(r.out, "\n%s\n", colorInfo.Sprintf("Total stores: %d", len(stores)))
}

func (r ConsoleReporter) SearchingStore(store hpb.Store) {
	fmt.Fprintf(r.out, "\n%s\n\n", colorHeader.Sprintf("Now searching store: %s (%s)", store.Name, store.ID))
}

func (r ConsoleReporter) Availability(store hpb.Store, result hpb.AvailabilityResult) {
	if result.Found {
		fmt.Fprintln(r.out, colorFound.Sprintf("Found %s (%s) at store %s", result.BookTitle, result.ProductID, store.ID))
		fmt.Fprintln(r.out, colorInfo.Sprint(result.URL))
		return
	}
	fmt.Fprintln(r.out, colorNotFound.Sprintf("Not found %s at store %s", result.BookTitle, store.ID))
}

// RenderSummary writes a table of the books found in stock, grouped by store.
func RenderSummary(out io.Writer, run Run) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("In stock")
	t.AppendHeader(table.Row{"Store", "City", "Miles", "Book", "Product"})

	stores := make(map[string]hpb.Store, len(run.Stores))
	for _, store := range run.Stores {
		stores[store.ID] = store
	}

	found := 0
	for _, result := range run.Results {
		if !result.Found {
			continue
		}
		found++
		store := stores[result.StoreID]
		t.AppendRow(table.Row{
			fmt.Sprintf("%s (%s)", store.Name, store.ID),
			fmt.Sprintf("%s, %s", store.City, store.State),
			fmt.Sprintf("%.1f", store.DistanceMiles),
			result.BookTitle,
			result.ProductID,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", fmt.Sprintf("%d / %d", found, len(run.Results))})
	t.Render()
}
