package calendar

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Resolver memoises Resolve by the content of its inputs and logs every
// span it has to skip. The cache only saves work: a hit is returned only
// when the cached inputs are equal to the requested ones.
type Resolver struct {
	log   *slog.Logger
	cache *lru.Cache[uint64, cached]
}

type cached struct {
	trips    []Span
	subtrips []Span
	res      *Resolution
}

// NewResolver returns a Resolver holding up to cacheSize resolutions.
// A cacheSize of zero or less disables caching.
func NewResolver(log *slog.Logger, cacheSize int) (*Resolver, error) {
	r := &Resolver{log: log}
	if cacheSize > 0 {
		c, err := lru.New[uint64, cached](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("calendar.NewResolver: %w", err)
		}
		r.cache = c
	}
	return r, nil
}

// Resolve returns the Resolution for trips and subtrips, from cache when
// the same inputs were resolved recently.
func (r *Resolver) Resolve(trips, subtrips []Span) *Resolution {
	if r.cache == nil {
		return r.compute(trips, subtrips)
	}

	key := fingerprint(trips, subtrips)
	if hit, ok := r.cache.Get(key); ok && slices.Equal(hit.trips, trips) && slices.Equal(hit.subtrips, subtrips) {
		return hit.res
	}

	res := r.compute(trips, subtrips)
	r.cache.Add(key, cached{
		trips:    slices.Clone(trips),
		subtrips: slices.Clone(subtrips),
		res:      res,
	})
	return res
}

func (r *Resolver) compute(trips, subtrips []Span) *Resolution {
	res := Resolve(trips, subtrips)
	for _, s := range res.skipped {
		r.log.Warn("calendar: span excluded",
			"owner_id", s.OwnerID,
			"kind", kindOf(s.IsTrip),
			"field", s.Field,
			"value", s.Value,
			"error", s.Err,
		)
	}
	return res
}

// fingerprint hashes every field of both lists, with separators so that
// moving a value between fields or lists changes the key.
func fingerprint(trips, subtrips []Span) uint64 {
	d := xxhash.New()
	write := func(spans []Span) {
		for _, s := range spans {
			for _, f := range [...]string{s.OwnerID, s.Location, s.Start, s.End, s.Color} {
				_, _ = d.WriteString(f)
				_, _ = d.Write([]byte{0})
			}
			_, _ = d.Write([]byte{1})
		}
	}
	write(trips)
	_, _ = d.Write([]byte{2})
	write(subtrips)
	return d.Sum64()
}
