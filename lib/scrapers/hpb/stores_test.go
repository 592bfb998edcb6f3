package hpb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"wishlist-stock/lib/geocode"
	"wishlist-stock/lib/restyutil"

	_ "embed"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed stores_test.json
var storesTest []byte

func TestParseStores(t *testing.T) {
	stores, err := ParseStores(storesTest, 15)
	require.NoError(t, err)

	expected := []Store{
		{ID: "042", Name: "Beverly Hills", City: "Beverly Hills", State: "CA", DistanceMiles: 1.2, PickupEnabled: true},
		{ID: "017", Name: "Culver City", City: "Culver City", State: "CA", DistanceMiles: 6.8, PickupEnabled: false},
		{ID: "023", Name: "Torrance", City: "Torrance", State: "CA", DistanceMiles: 15, PickupEnabled: true},
	}
	diff := cmp.Diff(expected, stores)
	if diff != "" {
		t.Fatal(diff)
	}

	for _, radius := range []int{15, 30, 50, 100, 300} {
		stores, err := ParseStores(storesTest, radius)
		require.NoError(t, err)
		for _, s := range stores {
			require.LessOrEqual(t, s.DistanceMiles, float64(radius))
		}
	}
}

func TestParseStoresLooseFieldTypes(t *testing.T) {
	body := []byte(`{"stores": [
		{"ID": 42, "name": "Beverly Hills", "city": "Beverly Hills", "stateCode": "CA", "distanceinMI": 1.2, "storePickupEnabled": "true"},
		{"ID": "017", "name": null, "city": "Culver City", "stateCode": "CA", "distanceinMI": 6.8, "storePickupEnabled": 1},
		{"ID": {"nested": true}, "name": "Torrance", "city": "Torrance", "stateCode": "CA", "distanceinMI": 9, "storePickupEnabled": "maybe"}
	]}`)

	stores, err := ParseStores(body, 15)
	require.NoError(t, err)

	expected := []Store{
		{ID: "42", Name: "Beverly Hills", City: "Beverly Hills", State: "CA", DistanceMiles: 1.2, PickupEnabled: true},
		{ID: "017", Name: "", City: "Culver City", State: "CA", DistanceMiles: 6.8, PickupEnabled: true},
		{ID: "", Name: "Torrance", City: "Torrance", State: "CA", DistanceMiles: 9, PickupEnabled: false},
	}
	diff := cmp.Diff(expected, stores)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestParseStoresEmpty(t *testing.T) {
	stores, err := ParseStores([]byte(`{}`), 15)
	require.NoError(t, err)
	require.Empty(t, stores)
}

func TestParseStoresMalformed(t *testing.T) {
	_, err := ParseStores([]byte(`<html>blocked</html>`), 15)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestFindStores(t *testing.T) {
	var queries []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != storeFinderPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		queries = append(queries, r.URL.Query())
		w.Header().Set("content-type", "application/json")
		w.Write(storesTest)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	coords := &geocode.Coordinates{Latitude: 34.0901, Longitude: -118.4065}
	stores, err := client.FindStores(context.Background(), "90210", 15, coords)
	require.NoError(t, err)
	require.Len(t, stores, 3)
	require.Equal(t, "042", stores[0].ID)

	_, err = client.FindStores(context.Background(), "90210", 30, nil)
	require.NoError(t, err)

	require.Len(t, queries, 2)
	require.Equal(t, "90210", queries[0].Get("hiddenPostalCode"))
	require.Equal(t, "15", queries[0].Get("radius"))
	require.Equal(t, "true", queries[0].Get("fromStoreFinder"))
	require.Equal(t, "34.0901", queries[0].Get("lat"))
	require.Equal(t, "-118.4065", queries[0].Get("long"))

	require.Equal(t, "30", queries[1].Get("radius"))
	require.False(t, queries[1].Has("lat"))
	require.False(t, queries[1].Has("long"))
}

func TestFindStoresDumpsExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.Write(storesTest)
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "dump")
	dump, err := restyutil.NewFilesystemOutput(dir)
	require.NoError(t, err)

	client, err := NewClient(ClientOptions{BaseUrl: server.URL, Dump: dump})
	require.NoError(t, err)

	stores, err := client.FindStores(context.Background(), "90210", 15, nil)
	require.NoError(t, err)
	require.Len(t, stores, 3)

	contents, err := os.ReadFile(filepath.Join(dir, "hpb-1.txt"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "GET "+server.URL+storeFinderPath)
	require.Contains(t, string(contents), "---- RESPONSE ----")
	require.Contains(t, string(contents), "Beverly Hills")
}

func TestFindStoresStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.FindStores(context.Background(), "90210", 15, nil)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, "store finder", statusErr.Endpoint)
	require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestRequestPacing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stores": []}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL, RequestsPerSecond: 1000})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = client.FindStores(context.Background(), "90210", 15, nil)
		require.NoError(t, err)
	}
}
