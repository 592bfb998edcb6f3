package restyutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestInstrumentClientWritesExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/plain")
		w.Write([]byte("hello from the server"))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "dump")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	client := resty.New()
	InstrumentClient(client, "test-", out)

	_, err = client.R().
		SetHeader("Authorization", "secret-token").
		Get(server.URL + "/greeting")
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "test-1.txt"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "GET "+server.URL+"/greeting")
	require.Contains(t, string(contents), "hello from the server")
	require.Contains(t, string(contents), "Authorization: <redacted>")
	require.NotContains(t, string(contents), "secret-token")
}

func TestInstrumentClientNilOutput(t *testing.T) {
	client := resty.New()
	InstrumentClient(client, "noop-", nil)
}

func TestFormatHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Add("B", "2")
	headers.Add("A", "1")
	headers.Add("A", "3")
	require.Equal(t, "A: 1\nA: 3\nB: 2", formatHeaders(headers))
	require.Equal(t, "", formatHeaders(http.Header{}))
}

func TestFormatRequestBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://localhost/empty", nil)
	require.NoError(t, err)
	require.Equal(t, "", formatRequestBody(req))

	req.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.Equal(t, "", formatRequestBody(req))

	req, err = http.NewRequest(http.MethodPost, "http://localhost/echo", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, formatRequestBody(req))
}
