package source

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// userAgents is the pool a client identity is drawn from per request. The
// source site throttles unfamiliar clients; rotating a few desktop browser
// identities keeps the scraper from being blocked.
var userAgents = []string{
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_6) AppleWebKit/605.1.15 " +
		"(KHTML, like Gecko) Version/17.3 Safari/605.1.15",
}

const acceptLanguage = "ru-RU,ru;q=0.9"

// Yandex fetches raw weather pages from yandex.ru. Each fetch is
// single-shot: no retries, no backoff — the caller's stale cache is the only
// fallback. A circuit breaker fails fast while the upstream stays down.
type Yandex struct {
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewYandex creates a fetcher backed by the given HTTP client. The client's
// timeout bounds how long a single page fetch may block its request.
func NewYandex(client *http.Client) *Yandex {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "yandex-pogoda",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Yandex{client: client, circuit: cb}
}

// Fetch performs a GET for url and returns the page body as text. Any
// non-2xx status is an error.
func (y *Yandex) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept-Language", acceptLanguage)

	body, err := y.circuit.Execute(func() (interface{}, error) {
		resp, err := y.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	})
	if err != nil {
		return "", err
	}

	return body.(string), nil
}
