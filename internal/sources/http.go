package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mattsblocklist/dialcodes/internal/countries"
)

// HTTPSource loads raw entries from a remote directory. The body may be a
// JSON array of strings, a JSON array of {label, value} objects, or plain
// text with one entry per line.
type HTTPSource struct {
	baseSource
	client HTTPClient
}

// NewHTTPSource creates a remote source. A nil client gets a 30s timeout.
func NewHTTPSource(name, url string, client HTTPClient) *HTTPSource {
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	return &HTTPSource{
		baseSource: baseSource{name: name, location: url},
		client:     client,
	}
}

// Load fetches and decodes the directory.
func (s *HTTPSource) Load(ctx context.Context) (*Result, error) {
	if s.location == "" {
		return nil, fmt.Errorf("%s: %w", s.name, ErrNoLocation)
	}

	content, err := fetch(ctx, s.client, s.location)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	entries, err := decodeEntries(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return s.newResult(entries, content), nil
}

func decodeEntries(content []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return splitLines(content), nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	entries := make([]string, 0, len(items))
	for _, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			entries = append(entries, text)
			continue
		}

		var pair countries.Pair
		if err := json.Unmarshal(item, &pair); err != nil {
			return nil, fmt.Errorf("unsupported entry %s: %w", item, err)
		}
		entries = append(entries, pair.Label)
	}
	return entries, nil
}
