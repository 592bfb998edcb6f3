package hpb

import (
	"context"
	"net/http/cookiejar"
	"net/url"
	"time"
	"wishlist-stock/lib/restyutil"
	"wishlist-stock/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("scrapers/hpb")

const (
	DefaultBaseUrl   = "https://www.hpb.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	storeFinderPath = "/on/demandware.store/Sites-hpb-Site/en_US/Stores-FindStores"
	suggestionsPath = "/on/demandware.store/Sites-hpb-Site/en_US/SearchServices-GetSuggestions"
	searchPath      = "/search"
)

// Client talks to the Half Price Books storefront. A Client holds a cookie
// jar and is meant to live for a single run.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	storeTimeout    time.Duration
	searchTimeout   time.Duration
	titleSimilarity float64
}

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
	// StoreTimeout bounds a single store finder request, 15s when zero.
	StoreTimeout time.Duration
	// SearchTimeout bounds a single suggestion or search request, 10s when zero.
	SearchTimeout time.Duration
	// RequestsPerSecond paces requests to the storefront, 0 means unlimited.
	RequestsPerSecond float64
	// TitleSimilarity enables a Jaro-Winkler fallback when a suggestion label
	// does not contain the title verbatim, 0 disables it.
	TitleSimilarity float64
	Dump            restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.StoreTimeout == 0 {
		opts.StoreTimeout = time.Second * 15
	}
	if opts.SearchTimeout == 0 {
		opts.SearchTimeout = time.Second * 10
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))

	if opts.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, "scrapers/hpb/http")
	restyutil.InstrumentClient(client, "hpb-", opts.Dump)

	return &Client{
		BaseUrl:         baseUrl,
		Http:            client,
		storeTimeout:    opts.StoreTimeout,
		searchTimeout:   opts.SearchTimeout,
		titleSimilarity: opts.TitleSimilarity,
	}, nil
}

// get fetches `link` (relative to the base url) and turns non-2xx responses
// into a *StatusError naming `endpoint`.
func (c *Client) get(ctx context.Context, endpoint, link string, timeout time.Duration) (*resty.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return res, &StatusError{Endpoint: endpoint, StatusCode: res.StatusCode(), Status: res.Status()}
	}
	return res, nil
}
