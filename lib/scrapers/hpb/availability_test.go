package hpb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed search_found_test.html
var searchFoundTest []byte

//go:embed search_empty_test.html
var searchEmptyTest []byte

func TestParseAvailability(t *testing.T) {
	testCases := []struct {
		name     string
		body     []byte
		expected bool
	}{
		{name: "results", body: searchFoundTest, expected: true},
		{name: "no results", body: searchEmptyTest, expected: false},
		{name: "empty page", body: []byte(""), expected: true},
		{name: "unrelated message", body: []byte(`<div class="msg">Free shipping on orders over $35</div>`), expected: true},
		{name: "marker outside a message", body: []byte(`<p>We were not able to find any results for</p>`), expected: true},
		{
			name: "marker in a later message",
			body: []byte(`<div class="msg">Store hours</div><div class="msg">We were not able to find any results for "x"</div>`),
			expected: false,
		},
	}

	for _, test := range testCases {
		found, err := ParseAvailability(test.body)
		require.NoError(t, err, test.name)
		require.Equal(t, test.expected, found, test.name)
	}
}

func TestAvailabilityURL(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	link := client.AvailabilityURL("042", "M-00042-T")
	require.Equal(
		t,
		"https://www.hpb.com/search?q=M-00042-T&prefn1=instorePickUpAvailableStores&prefv1=042&srule=best-matches&sz=20&bopisStoreId=042",
		link,
	)
}

func TestCheckAvailability(t *testing.T) {
	var requests []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Query())
		if r.URL.Query().Get("bopisStoreId") == "042" {
			w.Write(searchFoundTest)
			return
		}
		w.Write(searchEmptyTest)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	result, err := client.CheckAvailability(context.Background(), "042", "M-00042-T", "Dune")
	require.NoError(t, err)
	require.Equal(t, AvailabilityResult{
		StoreID:   "042",
		ProductID: "M-00042-T",
		BookTitle: "Dune",
		Found:     true,
		URL:       client.AvailabilityURL("042", "M-00042-T"),
	}, result)

	result, err = client.CheckAvailability(context.Background(), "017", "M-00042-T", "Dune")
	require.NoError(t, err)
	require.False(t, result.Found)

	require.Len(t, requests, 2)
	require.Equal(t, "M-00042-T", requests[0].Get("q"))
	require.Equal(t, "instorePickUpAvailableStores", requests[0].Get("prefn1"))
	require.Equal(t, "042", requests[0].Get("prefv1"))
	require.Equal(t, "20", requests[0].Get("sz"))
}

func TestCheckAvailabilityStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	result, err := client.CheckAvailability(context.Background(), "042", "M-00042-T", "Dune")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, "search", statusErr.Endpoint)
	require.False(t, result.Found)
	require.NotEmpty(t, result.URL)
}
