// Package geocode resolves US postal codes to approximate coordinates using
// the zippopotam.us postal code service.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
	"wishlist-stock/lib/restyutil"
	"wishlist-stock/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/geocode")

const DefaultBaseUrl = "https://api.zippopotam.us"

var ErrNotFound = errors.New("postal code has no known location")

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type Client struct {
	http    *resty.Client
	country string
	timeout time.Duration
}

type ClientOptions struct {
	BaseUrl string
	// Country is the zippopotam country code, "us" when empty.
	Country string
	Timeout time.Duration
	Dump    restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Country == "" {
		opts.Country = "us"
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 10
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("accept", "application/json")
	telemetry.InstrumentResty(client, "lib/geocode/http")
	restyutil.InstrumentClient(client, "geocode-", opts.Dump)

	return &Client{
		http:    client,
		country: opts.Country,
		timeout: opts.Timeout,
	}
}

type placesResponse struct {
	Places []struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// ParsePlaces reads the coordinates of the first place in a zippopotam
// response body.
func ParsePlaces(body []byte) (Coordinates, error) {
	var res placesResponse
	err := json.Unmarshal(body, &res)
	if err != nil {
		return Coordinates{}, err
	}
	if len(res.Places) == 0 {
		return Coordinates{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(res.Places[0].Latitude, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse latitude: %w", err)
	}
	long, err := strconv.ParseFloat(res.Places[0].Longitude, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse longitude: %w", err)
	}
	return Coordinates{Latitude: lat, Longitude: long}, nil
}

// Lookup returns the approximate location of a postal code.
func (c *Client) Lookup(ctx context.Context, postalCode string) (Coordinates, error) {
	ctx, span := tracer.Start(ctx, "client:Lookup")
	defer span.End()
	span.SetAttributes(attribute.String("custom.postal_code", postalCode))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/%s/%s", url.PathEscape(c.country), url.PathEscape(postalCode)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Coordinates{}, err
	}
	if res.StatusCode() == 404 {
		span.SetStatus(codes.Error, "postal code not found")
		return Coordinates{}, ErrNotFound
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "unexpected status")
		return Coordinates{}, fmt.Errorf("geocoder returned %s", res.Status())
	}

	coords, err := ParsePlaces(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse response")
		return Coordinates{}, err
	}
	return coords, nil
}
