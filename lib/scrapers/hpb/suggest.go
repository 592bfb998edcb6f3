package hpb

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"wishlist-stock/lib/htmlutil"
	"wishlist-stock/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ProductMatch is a wish list title resolved to a storefront product id.
// Ids starting with "M-" name a book in general, "P-" a specific copy.
type ProductMatch struct {
	ProductID string
	Title     string
}

var productIdPrefixes = []string{"M-", "P-"}

// ProductIDFromHref returns the first path segment of `href` that starts with
// a known product id prefix, without its ".html" suffix.
func ProductIDFromHref(href string) (string, bool) {
	path := href
	parsed, err := url.Parse(href)
	if err == nil {
		path = parsed.Path
	}
	for _, segment := range strings.Split(path, "/") {
		for _, prefix := range productIdPrefixes {
			if strings.HasPrefix(segment, prefix) {
				return strings.TrimSuffix(segment, ".html"), true
			}
		}
	}
	return "", false
}

// suggestionQuery is "<title> <first author>", or the bare title when there
// are no authors.
func suggestionQuery(title string, authors []string) string {
	if len(authors) == 0 || authors[0] == "" {
		return title
	}
	return fmt.Sprintf("%s %s", title, authors[0])
}

func labelMatches(label, title string, similarity float64) bool {
	if textutil.ContainsTitle(label, title) {
		return true
	}
	if similarity <= 0 {
		return false
	}
	return textutil.TitleSimilarity(label, title) >= similarity
}

// ParseSuggestion reads the first product out of a suggestions response. It
// only matches when that product's label contains `title` (ignoring case),
// or, if `similarity` is positive, is at least that similar to it.
func ParseSuggestion(body []byte, title string, similarity float64) (ProductMatch, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return ProductMatch{}, false, &DecodeError{Endpoint: "suggestions", Err: err}
	}

	anchor, ok := htmlutil.GetAnchor(doc.Find(`span[id^="product-"] a`))
	if !ok {
		return ProductMatch{}, false, nil
	}
	if !labelMatches(anchor.Label, title, similarity) {
		slog.Debug(
			"first suggestion does not match title",
			"title", title,
			"label", anchor.Label,
			"text", anchor.Text,
		)
		return ProductMatch{}, false, nil
	}
	productId, ok := ProductIDFromHref(anchor.Href)
	if !ok {
		return ProductMatch{}, false, nil
	}
	return ProductMatch{ProductID: productId, Title: title}, true, nil
}

// ResolveProduct looks a wish list book up through the storefront's search
// suggestions. A book without a confident match returns ok == false and no
// error.
func (c *Client) ResolveProduct(ctx context.Context, title string, authors []string) (ProductMatch, bool, error) {
	ctx, span := tracer.Start(ctx, "client:ResolveProduct")
	defer span.End()

	q := suggestionQuery(title, authors)
	span.SetAttributes(attribute.String("custom.query", q))

	link := fmt.Sprintf("%s?q=%s", suggestionsPath, url.QueryEscape(q))
	res, err := c.get(ctx, "suggestions", link, c.searchTimeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch suggestions")
		return ProductMatch{}, false, err
	}

	match, ok, err := ParseSuggestion(res.Body(), title, c.titleSimilarity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse suggestions")
		return ProductMatch{}, false, err
	}
	if !ok {
		slog.DebugContext(ctx, "no product match", "title", title, "query", q)
		return ProductMatch{}, false, nil
	}

	span.SetAttributes(attribute.String("custom.product_id", match.ProductID))
	return match, true, nil
}
