package stockcheck

import (
	"context"
	"fmt"
	"log/slog"
	"wishlist-stock/lib/platforms/hardcover"
	"wishlist-stock/lib/scrapers/hpb"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/stockcheck")

type StoreLocator interface {
	FindStores(ctx context.Context, postalCode string, radius int) ([]hpb.Store, error)
}

type WishlistSource interface {
	WantToRead(ctx context.Context) ([]hardcover.Book, error)
}

type ProductResolver interface {
	ResolveProduct(ctx context.Context, title string, authors []string) (hpb.ProductMatch, bool, error)
}

type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, storeId, productId, title string) (hpb.AvailabilityResult, error)
}

type Reporter interface {
	StoreFound(store hpb.Store)
	StoresLocated(stores []hpb.Store)
	SearchingStore(store hpb.Store)
	Availability(store hpb.Store, result hpb.AvailabilityResult)
}

type Options struct {
	// SoftFail reports an availability check that errored as not found and
	// moves on, instead of aborting the run.
	SoftFail bool
}

// Service runs the whole check: locate stores, fetch the wish list, resolve
// each book to a product and check every product at every store, one
// request at a time.
type Service struct {
	stores       StoreLocator
	wishlist     WishlistSource
	products     ProductResolver
	availability AvailabilityChecker
	reporter     Reporter
	options      Options
	counters     counters
}

func NewService(
	stores StoreLocator,
	wishlist WishlistSource,
	products ProductResolver,
	availability AvailabilityChecker,
	reporter Reporter,
	options Options,
) Service {
	return Service{
		stores:       stores,
		wishlist:     wishlist,
		products:     products,
		availability: availability,
		reporter:     reporter,
		options:      options,
		counters:     newCounters(),
	}
}

type Request struct {
	PostalCode string
	Radius     int
}

func (r Request) Validate() error {
	err := ValidatePostalCode(r.PostalCode)
	if err != nil {
		return err
	}
	return ValidateRadius(r.Radius)
}

type Run struct {
	Stores   []hpb.Store
	Products []hpb.ProductMatch
	Results  []hpb.AvailabilityResult
}

// LocateStores validates the request and finds the stores in range,
// reporting each one as it is found.
func (s Service) LocateStores(ctx context.Context, req Request) ([]hpb.Store, error) {
	err := req.Validate()
	if err != nil {
		return nil, err
	}

	stores, err := s.stores.FindStores(ctx, req.PostalCode, req.Radius)
	if err != nil {
		return nil, fmt.Errorf("find stores: %w", err)
	}
	for _, store := range stores {
		s.reporter.StoreFound(store)
	}
	s.counters.stores.Add(ctx, int64(len(stores)))
	return stores, nil
}

// ResolveWishlist fetches the wish list and resolves each book to a
// product, leaving out books without a match.
func (s Service) ResolveWishlist(ctx context.Context) ([]hpb.ProductMatch, error) {
	books, err := s.wishlist.WantToRead(ctx)
	if err != nil {
		return nil, fmt.Errorf("hardcover want-to-read: %w", err)
	}

	products := []hpb.ProductMatch{}
	for _, book := range books {
		match, ok, err := s.products.ResolveProduct(ctx, book.Title, book.Authors)
		if err != nil {
			return nil, fmt.Errorf("resolve product %q: %w", book.Title, err)
		}
		if !ok {
			slog.DebugContext(ctx, "skipping unresolved book", "title", book.Title)
			s.counters.unresolved.Add(ctx, 1)
			continue
		}
		products = append(products, match)
	}
	s.counters.resolved.Add(ctx, int64(len(products)))
	return products, nil
}

func (s Service) check(ctx context.Context, store hpb.Store, product hpb.ProductMatch) (hpb.AvailabilityResult, error) {
	s.counters.checks.Add(ctx, 1)

	result, err := s.availability.CheckAvailability(ctx, store.ID, product.ProductID, product.Title)
	if err != nil {
		if !s.options.SoftFail {
			return result, fmt.Errorf("check availability of %s at store %s: %w", product.ProductID, store.ID, err)
		}
		slog.WarnContext(
			ctx, "availability check failed, reporting as not found",
			"store", store.ID,
			"product", product.ProductID,
			"err", err,
		)
		result.StoreID = store.ID
		result.ProductID = product.ProductID
		result.BookTitle = product.Title
		result.Found = false
	}
	if result.Found {
		s.counters.found.Add(ctx, 1)
	}
	return result, nil
}

// Run executes the pipeline. Any fatal error discards the work done so far.
func (s Service) Run(ctx context.Context, req Request) (Run, error) {
	ctx, span := tracer.Start(ctx, "service:Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("custom.postal_code", req.PostalCode),
		attribute.Int("custom.radius", req.Radius),
	)

	stores, err := s.LocateStores(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to locate stores")
		return Run{}, err
	}
	s.reporter.StoresLocated(stores)

	products, err := s.ResolveWishlist(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve wish list")
		return Run{}, err
	}

	results := make([]hpb.AvailabilityResult, 0, len(stores)*len(products))
	for _, store := range stores {
		s.reporter.SearchingStore(store)
		for _, product := range products {
			result, err := s.check(ctx, store, product)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to check availability")
				return Run{}, err
			}
			s.reporter.Availability(store, result)
			results = append(results, result)
		}
	}

	span.SetAttributes(attribute.Int("custom.results", len(results)))
	return Run{
		Stores:   stores,
		Products: products,
		Results:  results,
	}, nil
}
