// Command dialcodes loads raw dial-code entries from a remote directory or a
// local fallback, normalizes them and writes the country and dial-code
// selection lists as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mattsblocklist/dialcodes/internal/catalog"
	"github.com/mattsblocklist/dialcodes/internal/config"
	"github.com/mattsblocklist/dialcodes/internal/countries"
	"github.com/mattsblocklist/dialcodes/internal/logger"
	"github.com/mattsblocklist/dialcodes/internal/sources"
)

// Version of the command.
const Version = "1.0.0"

// Output is the document written by the command.
type Output struct {
	Source      string    `json:"source"`
	Location    string    `json:"location,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	catalog.Selectors
}

type options struct {
	configPath string
	source     string
	output     string
	pretty     bool
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (empty = environment only)")
	flag.StringVar(&opts.source, "source", "", "Override the primary source (URL or file path)")
	flag.StringVar(&opts.output, "output", "", "Output JSON file (empty = stdout)")
	flag.BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	flag.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	version := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *version {
		fmt.Printf("dialcodes v%s\n", Version)
		os.Exit(0)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Log.Level
	if opts.verbose {
		level = "DEBUG"
	}
	rotation := logger.RotationConfig{
		MaxSizeMB:  cfg.Log.Rotation.MaxSizeMB,
		MaxBackups: cfg.Log.Rotation.MaxBackups,
		MaxAgeDays: cfg.Log.Rotation.MaxAgeDays,
		Compress:   cfg.Log.Rotation.Compress,
	}
	if err := logger.Setup(level, cfg.Log.File, rotation); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	if err := run(context.Background(), cfg, opts); err != nil {
		log.WithError(err).Error("dialcodes failed")
		logger.Close()
		os.Exit(1)
	}
}

func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if opts.source != "" {
		cfg.Sources.Primary = sourceSpec(opts.source)
	}
	return cfg, nil
}

// sourceSpec maps a -source value to a URL or file spec.
func sourceSpec(s string) sources.Spec {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return sources.Spec{Type: "http", Location: s}
	}
	return sources.Spec{Type: "file", Location: s}
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	out, err := build(ctx, cfg)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return writeOutput(os.Stdout, out, opts.pretty)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeOutput(f, out, opts.pretty); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// build loads entries through the source chain and assembles both lists.
// A chain where every source failed still yields the placeholder-only list.
func build(ctx context.Context, cfg *config.Config) (*Output, error) {
	tag := cfg.Tag()

	registry, err := sources.FromSpecs(cfg.SourceSpecs(), &http.Client{Timeout: cfg.Sources.Timeout}, tag)
	if err != nil {
		return nil, fmt.Errorf("invalid sources: %w", err)
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Sources.Timeout*time.Duration(len(registry.Names())))
	defer cancel()

	out := &Output{GeneratedAt: time.Now()}

	var raw []string
	result, err := sources.LoadFirst(loadCtx, registry.All())
	switch {
	case err == nil:
		raw = result.RawEntries
		out.Source = result.Source
		out.Location = result.Location
		out.ContentHash = result.ContentHash
	case errors.Is(err, sources.ErrNoEntries):
		log.WithError(err).Error("No raw entries available, emitting empty lists")
	default:
		return nil, err
	}

	var reference []countries.Pair
	if cfg.Reference == config.ReferenceBuiltin {
		reference = countries.BuiltinReference(tag)
	}

	res := catalog.NewEngine(nil, cfg.Default).Normalize(raw, reference)
	for _, i := range res.Dropped {
		log.WithFields(log.Fields{
			"index": i,
			"raw":   raw[i],
		}).Debug("Dropped entry without dial code")
	}

	builder := &catalog.ListBuilder{
		Placeholder: cfg.Placeholder,
		DefaultISO:  cfg.Default.ISO,
		Locale:      tag,
	}
	out.Selectors = catalog.Assemble(res, builder)
	if catalog.ApplyFallback(out.Countries, cfg.Default.FallbackISO) {
		log.WithField("default_iso", cfg.Default.ISO).Info("Default country not listed, applied fallback selection")
	}

	log.WithFields(log.Fields{
		"source":    out.Source,
		"raw":       len(raw),
		"valid":     len(res.Entries),
		"dropped":   len(res.Dropped),
		"countries": len(res.Countries),
		"default":   res.DefaultIndex,
	}).Info("Dial codes normalized")

	return out, nil
}

func writeOutput(w io.Writer, out *Output, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
