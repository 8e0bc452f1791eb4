package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsblocklist/dialcodes/internal/catalog"
	"github.com/mattsblocklist/dialcodes/internal/config"
	"github.com/mattsblocklist/dialcodes/internal/sources"
)

func testConfig(specs ...sources.Spec) *config.Config {
	cfg := config.Default()
	cfg.Sources.Primary = specs[0]
	cfg.Sources.Fallbacks = specs[1:]
	cfg.Sources.Timeout = 2 * time.Second
	return cfg
}

func writeEntries(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codes.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))
	return path
}

func TestBuildFallsBackToFile(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	path := writeEntries(t, "🇹🇬 +228 Togo\n🇫🇷 +33 France\n🇹🇬 +228 Togo Republic\ngarbled\n")
	cfg := testConfig(
		sources.Spec{Type: "http", Location: down.URL},
		sources.Spec{Type: "file", Location: path},
	)

	out, err := build(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "fallback-1", out.Source)
	assert.Equal(t, 0, out.DefaultIndex)
	assert.Equal(t, []catalog.CountryOption{
		{Value: "", Label: catalog.DefaultPlaceholder},
		{Value: "FR", Label: "France"},
		{Value: "TG", Label: "Togo", Selected: true},
	}, out.Countries)
	require.Len(t, out.DialCodes, 3)
	assert.True(t, out.DialCodes[0].Selected)
}

func TestBuildSameOutputForPrimaryAndFallback(t *testing.T) {
	body := "🇧🇯 +229 Bénin\n+1 (264) Anguilla\n🇹🇬 +228 Togo\n"
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer up.Close()

	primary, err := build(context.Background(), testConfig(sources.Spec{Type: "http", Location: up.URL}))
	require.NoError(t, err)
	fallback, err := build(context.Background(), testConfig(sources.Spec{Type: "file", Location: writeEntries(t, body)}))
	require.NoError(t, err)

	assert.Equal(t, primary.Selectors, fallback.Selectors)
}

func TestBuildAppliesFallbackSelection(t *testing.T) {
	cfg := testConfig(sources.Spec{Type: "file", Location: writeEntries(t, "🇫🇷 +33 France\n🇧🇯 +229 Bénin\n")})
	cfg.Default.FallbackISO = "FR"

	out, err := build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, out.DefaultIndex)
	assert.True(t, out.Countries[2].Selected)
	assert.Equal(t, "FR", out.Countries[2].Value)
}

func TestBuildWithoutEntries(t *testing.T) {
	cfg := testConfig(sources.Spec{Type: "file", Location: filepath.Join(t.TempDir(), "missing.txt")})

	out, err := build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []catalog.CountryOption{{Value: "", Label: catalog.DefaultPlaceholder}}, out.Countries)
	assert.Empty(t, out.DialCodes)
	assert.Equal(t, catalog.NoIndex, out.DefaultIndex)
}

func TestBuildBuiltin(t *testing.T) {
	cfg := testConfig(sources.Spec{Type: "builtin"})
	cfg.Reference = config.ReferenceBuiltin

	out, err := build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "builtin", out.Source)

	var selected []string
	for _, c := range out.Countries {
		if c.Selected {
			selected = append(selected, c.Value)
		}
	}
	assert.Equal(t, []string{"TG"}, selected)
	assert.Greater(t, len(out.Countries), 200)
}

func TestBuildExampleConfigWithoutDirectoryURL(t *testing.T) {
	t.Setenv("DIALCODES_DIRECTORY_URL", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir("../.."))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := config.Load("configs/dialcodes.example.yaml")
	require.NoError(t, err)

	out, err := build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "fallback-1", out.Source)
	assert.Equal(t, "data/dialcodes.txt", out.Location)
	assert.Equal(t, 0, out.DefaultIndex)
	require.Len(t, out.DialCodes, 13)
	assert.True(t, out.DialCodes[0].Selected)
}

func TestRunWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(sources.Spec{Type: "file", Location: writeEntries(t, "🇹🇬 +228 Togo\n🇫🇷 +33 France\n")})
	path := filepath.Join(dir, "dialcodes.json")

	require.NoError(t, run(context.Background(), cfg, options{output: path, pretty: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Output
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "primary", decoded.Source)
	assert.Equal(t, 0, decoded.DefaultIndex)
	require.Len(t, decoded.DialCodes, 2)

	err = run(context.Background(), cfg, options{output: filepath.Join(dir, "missing", "out.json")})
	assert.ErrorContains(t, err, "failed to create output file")
}

func TestWriteOutput(t *testing.T) {
	out := &Output{
		Source: "builtin",
		Selectors: catalog.Selectors{
			Countries:    []catalog.CountryOption{{Value: "", Label: catalog.DefaultPlaceholder}},
			DefaultIndex: catalog.NoIndex,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, out, true))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "builtin", decoded["source"])
	assert.EqualValues(t, -1, decoded["default_index"])
	assert.Contains(t, decoded, "countries")
	assert.Contains(t, buf.String(), "Sélectionnez un pays")
}

func TestSourceSpec(t *testing.T) {
	assert.Equal(t, sources.Spec{Type: "http", Location: "https://x.example/c"}, sourceSpec("https://x.example/c"))
	assert.Equal(t, sources.Spec{Type: "file", Location: "data/c.txt"}, sourceSpec("data/c.txt"))
}
