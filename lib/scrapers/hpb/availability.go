package hpb

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// NoResultsMarker is the text the search page shows when nothing matched.
const NoResultsMarker = "We were not able to find any results for"

type AvailabilityResult struct {
	StoreID   string
	ProductID string
	BookTitle string
	Found     bool
	// URL is the search page that was checked, for following up by hand.
	URL string
}

func searchLink(storeId, productId string) string {
	return fmt.Sprintf(
		"%s?q=%s&prefn1=instorePickUpAvailableStores&prefv1=%s&srule=best-matches&sz=20&bopisStoreId=%s",
		searchPath,
		url.QueryEscape(productId),
		url.QueryEscape(storeId),
		url.QueryEscape(storeId),
	)
}

// AvailabilityURL is the in-store pickup search for one product at one store.
func (c *Client) AvailabilityURL(storeId, productId string) string {
	ref, err := url.Parse(searchLink(storeId, productId))
	if err != nil {
		return c.BaseUrl.String() + searchLink(storeId, productId)
	}
	return c.BaseUrl.ResolveReference(ref).String()
}

// ParseAvailability reports whether a search page lists the product. The page
// never states a positive stock count, so anything other than the "no
// results" message counts as found.
func ParseAvailability(body []byte) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return false, &DecodeError{Endpoint: "search", Err: err}
	}

	found := true
	doc.Find("div.msg").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), NoResultsMarker) {
			found = false
			return false
		}
		return true
	})
	return found, nil
}

// CheckAvailability searches one store's pickup inventory for a product. The
// returned result carries the URL even when an error is returned.
func (c *Client) CheckAvailability(ctx context.Context, storeId, productId, title string) (AvailabilityResult, error) {
	ctx, span := tracer.Start(ctx, "client:CheckAvailability")
	defer span.End()
	span.SetAttributes(
		attribute.String("custom.store_id", storeId),
		attribute.String("custom.product_id", productId),
	)

	result := AvailabilityResult{
		StoreID:   storeId,
		ProductID: productId,
		BookTitle: title,
		URL:       c.AvailabilityURL(storeId, productId),
	}

	res, err := c.get(ctx, "search", searchLink(storeId, productId), c.searchTimeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch search page")
		return result, err
	}

	found, err := ParseAvailability(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse search page")
		return result, err
	}
	result.Found = found
	span.SetAttributes(attribute.Bool("custom.found", found))
	return result, nil
}
