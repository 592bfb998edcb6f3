package hpb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"wishlist-stock/lib/geocode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Store struct {
	ID            string
	Name          string
	City          string
	State         string
	DistanceMiles float64
	PickupEnabled bool
}

// distance accepts both JSON numbers and numeric strings, the store finder
// has been seen to send either.
type distance struct {
	value float64
	valid bool
}

func (d *distance) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = distance{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// unparseable distances are treated the same as missing ones
			*d = distance{}
			return nil
		}
		*d = distance{value: parsed, valid: true}
		return nil
	}
	var f float64
	err := json.Unmarshal(data, &f)
	if err != nil {
		return err
	}
	*d = distance{value: f, valid: true}
	return nil
}

// text accepts a JSON string or a number, store ids have come back as both.
// Any other value reads as empty.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	if json.Unmarshal(data, &n) == nil {
		*t = text(n.String())
		return nil
	}
	*t = ""
	return nil
}

// flag accepts a JSON bool, a string such as "true" or a number. Anything
// unreadable is false.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case bool:
		*f = flag(v)
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		*f = flag(err == nil && parsed)
	case float64:
		*f = flag(v != 0)
	default:
		*f = false
	}
	return nil
}

type storeRecord struct {
	ID                 text     `json:"ID"`
	Name               text     `json:"name"`
	City               text     `json:"city"`
	StateCode          text     `json:"stateCode"`
	DistanceInMiles    distance `json:"distanceinMI"`
	StorePickupEnabled flag     `json:"storePickupEnabled"`
}

type storeFinderResponse struct {
	Stores []storeRecord `json:"stores"`
}

// ParseStores decodes a store finder response and keeps only stores that
// report a distance no greater than `radius`, in the order they were sent.
func ParseStores(body []byte, radius int) ([]Store, error) {
	var res storeFinderResponse
	err := json.Unmarshal(body, &res)
	if err != nil {
		return nil, &DecodeError{Endpoint: "store finder", Err: err}
	}

	stores := []Store{}
	for _, record := range res.Stores {
		if !record.DistanceInMiles.valid || record.DistanceInMiles.value > float64(radius) {
			continue
		}
		stores = append(stores, Store{
			ID:            string(record.ID),
			Name:          string(record.Name),
			City:          string(record.City),
			State:         string(record.StateCode),
			DistanceMiles: record.DistanceInMiles.value,
			PickupEnabled: bool(record.StorePickupEnabled),
		})
	}
	return stores, nil
}

func storeFinderQuery(postalCode string, radius int, coords *geocode.Coordinates) url.Values {
	query := url.Values{}
	query.Set("showMap", "false")
	query.Set("pliUUID", "undefined")
	query.Set("usecurrentlocation", "false")
	query.Set("fromStoreFinder", "true")
	query.Set("radius", strconv.Itoa(radius))
	query.Set("onlyAvailableStores", "false")
	query.Set("isFromPLP", "false")
	query.Set("hiddenPostalCode", postalCode)
	if coords != nil {
		query.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
		query.Set("long", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	}
	return query
}

// FindStores lists the stores within `radius` miles of a postal code. When
// `coords` is nil the search relies on the postal code alone.
func (c *Client) FindStores(ctx context.Context, postalCode string, radius int, coords *geocode.Coordinates) ([]Store, error) {
	ctx, span := tracer.Start(ctx, "client:FindStores")
	defer span.End()
	span.SetAttributes(
		attribute.String("custom.postal_code", postalCode),
		attribute.Int("custom.radius", radius),
		attribute.Bool("custom.geocoded", coords != nil),
	)

	link := fmt.Sprintf("%s?%s", storeFinderPath, storeFinderQuery(postalCode, radius, coords).Encode())
	res, err := c.get(ctx, "store finder", link, c.storeTimeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch stores")
		return nil, err
	}

	stores, err := ParseStores(res.Body(), radius)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse stores")
		return nil, err
	}
	span.SetAttributes(attribute.Int("custom.store_count", len(stores)))
	return stores, nil
}
