package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string  `json:"base_url"`
	Timeout int     `json:"timeout"`
	Rate    float64 `json:"rate"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		base_url: "https://example.com",
		timeout: 10,
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ timeout: 30 }`)

	cfg, err := ReadConfig(filepath.Join(dir, "config.json5"), testConfig{Rate: 2})
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl: "https://example.com",
		Timeout: 30,
		Rate:    2,
	}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	defaults := testConfig{BaseUrl: "https://default"}

	cfg, err := ReadConfig(filepath.Join(t.TempDir(), "config.json5"), defaults)
	require.True(t, os.IsNotExist(err))
	require.Equal(t, defaults, cfg)

	cfg, err = ReadOptional(filepath.Join(t.TempDir(), "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ timeout: `)

	_, err := ReadOptional(filepath.Join(dir, "config.json5"), testConfig{})
	require.Error(t, err)
}

func TestLocalName(t *testing.T) {
	require.Equal(t, filepath.Join("a", "config.local.json5"), localName(filepath.Join("a", "config.json5")))
	require.Equal(t, filepath.Join("a", "config.local"), localName(filepath.Join("a", "config")))
}
