package stockcheck

import (
	"context"
	"log/slog"
	"wishlist-stock/lib/geocode"
	"wishlist-stock/lib/scrapers/hpb"
)

type Geocoder interface {
	Lookup(ctx context.Context, postalCode string) (geocode.Coordinates, error)
}

type StoreFinder interface {
	FindStores(ctx context.Context, postalCode string, radius int, coords *geocode.Coordinates) ([]hpb.Store, error)
}

// GeoLocator finds stores near a postal code, refining the search with the
// postal code's coordinates when they can be resolved.
type GeoLocator struct {
	// Geocoder may be nil, the search then relies on the postal code alone.
	Geocoder Geocoder
	Finder   StoreFinder
}

func (l GeoLocator) FindStores(ctx context.Context, postalCode string, radius int) ([]hpb.Store, error) {
	var coords *geocode.Coordinates
	if l.Geocoder != nil {
		resolved, err := l.Geocoder.Lookup(ctx, postalCode)
		if err != nil {
			slog.WarnContext(ctx, "could not geocode postal code, searching without coordinates", "postal_code", postalCode, "err", err)
		} else {
			coords = &resolved
		}
	}
	return l.Finder.FindStores(ctx, postalCode, radius, coords)
}
