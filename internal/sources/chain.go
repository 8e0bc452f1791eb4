package sources

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrNoEntries is returned when no source produced any entry.
var ErrNoEntries = errors.New("no source produced entries")

// ErrNoLocation is returned by Load when a URL or file source was configured
// with an empty location, as happens when its environment variable is unset.
var ErrNoLocation = errors.New("no location configured")

// LoadFirst tries each source in order and returns the first result with
// at least one entry. Failed or empty sources are logged and skipped.
func LoadFirst(ctx context.Context, sources []Source) (*Result, error) {
	var errs []error

	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result, err := s.Load(ctx)
		if err != nil {
			log.WithFields(log.Fields{
				"source":   s.Name(),
				"location": s.Location(),
			}).WithError(err).Warn("Source failed, trying next")
			errs = append(errs, err)
			continue
		}
		if len(result.RawEntries) == 0 {
			log.WithFields(log.Fields{
				"source":   s.Name(),
				"location": s.Location(),
			}).Warn("Source returned no entries, trying next")
			continue
		}

		log.WithFields(log.Fields{
			"source":  s.Name(),
			"entries": len(result.RawEntries),
		}).Debug("Source loaded")
		return result, nil
	}

	if len(errs) == 0 {
		return nil, ErrNoEntries
	}
	return nil, fmt.Errorf("%w: %w", ErrNoEntries, errors.Join(errs...))
}
