package weather

import (
	"context"
	"fmt"
	"log"

	"github.com/horv1tz/ya-weather-api/internal/cache"
)

// Service orchestrates cache lookups, upstream fetches, and extraction for
// both page scopes.
type Service struct {
	fetcher Fetcher
	baseURL string

	current *cache.Cache[CurrentConditions]
	month   *cache.Cache[MonthForecast]
}

// NewService creates a new Service. The month page is expected at
// <baseURL>/month.
func NewService(fetcher Fetcher, baseURL string, current *cache.Cache[CurrentConditions], month *cache.Cache[MonthForecast]) *Service {
	return &Service{
		fetcher: fetcher,
		baseURL: baseURL,
		current: current,
		month:   month,
	}
}

// Result carries a resolved record along with where it came from.
type Result[T any] struct {
	Data   T
	Source string
	Cached bool
}

// Current returns the current-conditions record for the coordinates.
func (s *Service) Current(ctx context.Context, coords Coordinates) (Result[CurrentConditions], error) {
	url := fmt.Sprintf("%s?lat=%s&lon=%s", s.baseURL, formatCoord(coords.Lat), formatCoord(coords.Lon))
	return resolve(ctx, s.fetcher, s.current, url, coords.Key(), ParseCurrent)
}

// Month returns the day-by-day month forecast for the coordinates.
func (s *Service) Month(ctx context.Context, coords Coordinates) (Result[MonthForecast], error) {
	url := fmt.Sprintf("%s/month?lat=%s&lon=%s", s.baseURL, formatCoord(coords.Lat), formatCoord(coords.Lon))
	return resolve(ctx, s.fetcher, s.month, url, coords.Key(), ParseMonth)
}

// resolve runs the shared pipeline for one scope: serve a fresh cache hit,
// otherwise fetch and extract, falling back to any stale entry when either
// step fails. Concurrent misses for one key may fetch redundantly; that
// duplicate work is accepted in place of single-flight coordination.
func resolve[T any](ctx context.Context, fetcher Fetcher, c *cache.Cache[T], url, key string, parse func(string) (T, error)) (Result[T], error) {
	if data, ok := c.GetFresh(key); ok {
		return Result[T]{Data: data, Source: url, Cached: true}, nil
	}

	markup, err := fetcher.Fetch(ctx, url)
	if err != nil {
		if data, ok := c.GetStale(key); ok {
			log.Printf("fetch failed for %s, serving stale cache: %v", url, err)
			return Result[T]{Data: data, Source: url, Cached: true}, nil
		}
		return Result[T]{}, &UpstreamError{URL: url, Err: err}
	}

	data, err := parse(markup)
	if err != nil {
		if stale, ok := c.GetStale(key); ok {
			log.Printf("extraction failed for %s, serving stale cache: %v", url, err)
			return Result[T]{Data: stale, Source: url, Cached: true}, nil
		}
		return Result[T]{}, err
	}

	c.Set(key, data)
	return Result[T]{Data: data, Source: url, Cached: false}, nil
}
