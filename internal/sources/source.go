// Package sources provides the raw dial-code entry sources: a remote
// directory, local files and the builtin catalogue, plus a fallback chain.
package sources

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Source is the interface for all raw-entry sources.
type Source interface {
	// Name returns the name of this source.
	Name() string

	// Location returns the URL or path the entries come from.
	Location() string

	// Load fetches the raw display strings.
	Load(ctx context.Context) (*Result, error)
}

// Result contains the output of a load.
type Result struct {
	Source      string    `json:"source"`
	Location    string    `json:"location"`
	FetchedAt   time.Time `json:"fetched_at"`
	ContentHash string    `json:"content_hash,omitempty"`
	RawEntries  []string  `json:"raw_entries"`
	ParseStatus string    `json:"parse_status"`
}

// HTTPClient is an interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// baseSource provides common functionality for sources.
type baseSource struct {
	name     string
	location string
}

// Name returns the source name.
func (b *baseSource) Name() string {
	return b.name
}

// Location returns the source location.
func (b *baseSource) Location() string {
	return b.location
}

// newResult creates a new Result with common fields populated.
func (b *baseSource) newResult(entries []string, content []byte) *Result {
	r := &Result{
		Source:     b.name,
		Location:   b.location,
		FetchedAt:  time.Now(),
		RawEntries: entries,
	}
	if content != nil {
		r.ContentHash = HashContent(content)
	}
	if len(entries) > 0 {
		r.ParseStatus = "success"
	} else {
		r.ParseStatus = "no_data"
	}
	return r
}

// fetch retrieves content from a URL.
func fetch(ctx context.Context, client HTTPClient, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "dialcodes/1.0")
	req.Header.Set("Accept", "application/json, text/plain;q=0.9, */*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// HashContent returns a SHA256 hash of the content.
func HashContent(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
