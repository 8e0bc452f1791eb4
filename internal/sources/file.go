package sources

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource loads raw entries from a local file: YAML (.yml, .yaml) holding
// a list of strings, or text with one entry per line. Blank lines and lines
// starting with '#' are skipped in text files.
type FileSource struct {
	baseSource
}

// NewFileSource creates a file source.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{baseSource: baseSource{name: name, location: path}}
}

// Load reads the file.
func (s *FileSource) Load(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.location == "" {
		return nil, fmt.Errorf("%s: %w", s.name, ErrNoLocation)
	}

	content, err := os.ReadFile(s.location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.location, err)
	}

	var entries []string
	switch strings.ToLower(filepath.Ext(s.location)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", s.location, err)
		}
	default:
		entries = splitLines(content)
	}

	return s.newResult(entries, content), nil
}

func splitLines(content []byte) []string {
	var entries []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}
