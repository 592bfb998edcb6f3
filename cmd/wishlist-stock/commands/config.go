package commands

import (
	"errors"
	"io/fs"
	"strings"
	"time"
	"wishlist-stock/lib/configutil"
	"wishlist-stock/lib/geocode"
	"wishlist-stock/lib/platforms/hardcover"
	"wishlist-stock/lib/restyutil"
	"wishlist-stock/lib/scrapers/hpb"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type HpbConfig struct {
	BaseUrl              string  `json:"base_url"`
	UserAgent            string  `json:"user_agent"`
	StoreTimeoutSeconds  int     `json:"store_timeout_seconds"`
	SearchTimeoutSeconds int     `json:"search_timeout_seconds"`
	RequestsPerSecond    float64 `json:"requests_per_second"`
	TitleSimilarity      float64 `json:"title_similarity"`
}

type HardcoverConfig struct {
	BaseUrl        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type GeocoderConfig struct {
	BaseUrl        string `json:"base_url"`
	Country        string `json:"country"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	Disabled       bool   `json:"disabled"`
}

type Config struct {
	Hpb       HpbConfig       `json:"hpb"`
	Hardcover HardcoverConfig `json:"hardcover"`
	Geocoder  GeocoderConfig  `json:"geocoder"`
}

var defaultConfig = Config{
	Hpb: HpbConfig{
		BaseUrl:              hpb.DefaultBaseUrl,
		UserAgent:            hpb.DefaultUserAgent,
		StoreTimeoutSeconds:  15,
		SearchTimeoutSeconds: 10,
	},
	Hardcover: HardcoverConfig{
		BaseUrl:        hardcover.DefaultBaseUrl,
		TimeoutSeconds: 15,
	},
	Geocoder: GeocoderConfig{
		BaseUrl:        geocode.DefaultBaseUrl,
		Country:        "us",
		TimeoutSeconds: 10,
	},
}

func readConfig(path string) (Config, error) {
	return configutil.ReadOptional(path, defaultConfig)
}

type Secrets struct {
	HardcoverApiKey string `envconfig:"HARDCOVER_API_KEY"`
}

// loadSecrets reads secrets from the environment, after loading a .env file
// from the cwd if there is one. Variables already set take precedence.
func loadSecrets() (Secrets, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Secrets{}, err
	}

	var secrets Secrets
	err = envconfig.Process("", &secrets)
	if err != nil {
		return Secrets{}, err
	}
	if strings.TrimSpace(secrets.HardcoverApiKey) == "" {
		return Secrets{}, hardcover.ErrMissingCredential
	}
	return secrets, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func newDumpOutput(dir string) (restyutil.InstrumentOutput, error) {
	if dir == "" {
		return nil, nil
	}
	out, err := restyutil.NewFilesystemOutput(dir)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func newHpbClient(cfg Config, dump restyutil.InstrumentOutput) (*hpb.Client, error) {
	return hpb.NewClient(hpb.ClientOptions{
		BaseUrl:           cfg.Hpb.BaseUrl,
		UserAgent:         cfg.Hpb.UserAgent,
		StoreTimeout:      seconds(cfg.Hpb.StoreTimeoutSeconds),
		SearchTimeout:     seconds(cfg.Hpb.SearchTimeoutSeconds),
		RequestsPerSecond: cfg.Hpb.RequestsPerSecond,
		TitleSimilarity:   cfg.Hpb.TitleSimilarity,
		Dump:              dump,
	})
}

func newHardcoverClient(cfg Config, secrets Secrets, dump restyutil.InstrumentOutput) (*hardcover.Client, error) {
	return hardcover.NewClient(hardcover.ClientOptions{
		BaseUrl: cfg.Hardcover.BaseUrl,
		ApiKey:  secrets.HardcoverApiKey,
		Timeout: seconds(cfg.Hardcover.TimeoutSeconds),
		Dump:    dump,
	})
}

func newGeocoder(cfg Config, dump restyutil.InstrumentOutput) *geocode.Client {
	if cfg.Geocoder.Disabled {
		return nil
	}
	return geocode.NewClient(geocode.ClientOptions{
		BaseUrl: cfg.Geocoder.BaseUrl,
		Country: cfg.Geocoder.Country,
		Timeout: seconds(cfg.Geocoder.TimeoutSeconds),
		Dump:    dump,
	})
}
