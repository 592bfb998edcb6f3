package hardcover

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"wishlist-stock/lib/restyutil"
	"wishlist-stock/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("platforms/hardcover")

const DefaultBaseUrl = "https://api.hardcover.app"

var (
	ErrMissingCredential = errors.New("hardcover api key is not set")
	ErrUnexpectedShape   = errors.New("unexpected hardcover api response structure")
)

// StatusError is returned when the api answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hardcover api http error %d: %s", e.StatusCode, e.Body)
}

// DecodeError is returned when the api response is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode hardcover api response as json: %s", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type GraphqlError struct {
	Message string `json:"message"`
}

// APIError carries the error list of a GraphQL response.
type APIError struct {
	Errors []GraphqlError
}

func (e *APIError) Error() string {
	messages := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		messages[i] = err.Message
	}
	return fmt.Sprintf("hardcover api graphql errors: %s", strings.Join(messages, "; "))
}

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	BaseUrl string
	ApiKey  string
	// Timeout bounds a single query, 15s when zero.
	Timeout time.Duration
	Dump    restyutil.InstrumentOutput
}

// NewClient fails with ErrMissingCredential before anything touches the
// network when no api key is given.
func NewClient(opts ClientOptions) (*Client, error) {
	if strings.TrimSpace(opts.ApiKey) == "" {
		return nil, ErrMissingCredential
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 15
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("Authorization", opts.ApiKey)
	client.SetHeader("content-type", "application/json")

	telemetry.InstrumentResty(client, "platforms/hardcover/http")
	restyutil.InstrumentClient(client, "hardcover-", opts.Dump)

	return &Client{http: client}, nil
}
