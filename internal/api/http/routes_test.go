package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/horv1tz/ya-weather-api/internal/cache"
	"github.com/horv1tz/ya-weather-api/internal/weather"
)

const factPage = `<html><body>
<div class="AppFact_wrap__N4SYB">
  <p class="AppFactTemperature_content__Lx4p9">
    <span class="AppFactTemperature_sign__1MeN4">+</span>
    <span class="AppFactTemperature_value__2qhsG">3</span>
    <span class="AppFactTemperature_degree__LL_2v">°</span>
  </p>
  <p class="AppFact_warning__8kUUn">Ясно</p>
</div>
</body></html>`

const monthPage = `<html><body>
<article class="AppMonth_month__CunyE">
  <ul>
    <li class="AppMonthCalendar_item__Pp0Xy">
      <div class="AppMonthCalendarDay_day__GjOhu">
        <a class="AppMonthCalendarDay_day__date__QDruE" aria-label="1 августа, пятница">1</a>
      </div>
    </li>
  </ul>
</article>
</body></html>`

func newTestApp(fetcher weather.Fetcher) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	service := weather.NewService(
		fetcher,
		"https://weather.example/pogoda/ru",
		cache.New[weather.CurrentConditions](time.Minute),
		cache.New[weather.MonthForecast](time.Minute),
	)
	RegisterRoutes(app, service)
	return app
}

func pageFetcher(markup string) weather.Fetcher {
	return weather.FetcherFunc(func(ctx context.Context, url string) (string, error) {
		return markup, nil
	})
}

// Missing or non-numeric coordinates are rejected before any fetch happens.
func TestCoordinateValidation(t *testing.T) {
	app := newTestApp(weather.FetcherFunc(func(ctx context.Context, url string) (string, error) {
		t.Error("fetcher must not be called for invalid queries")
		return "", nil
	}))

	for _, target := range []string{
		"/api/weather/total",
		"/api/weather/total?lat=55.75",
		"/api/weather/total?lat=abc&lon=37.62",
		"/api/weather/month?lon=37.62",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want %d", target, resp.StatusCode, http.StatusBadRequest)
		}
	}
}

func TestTotalEndpoint(t *testing.T) {
	app := newTestApp(pageFetcher(factPage))

	req := httptest.NewRequest(http.MethodGet, "/api/weather/total?lat=55.75&lon=37.62", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
		Source string  `json:"source"`
		Cached bool    `json:"cached"`
		Data   struct {
			Temperature *string `json:"temperature"`
			Condition   *string `json:"condition"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if body.Lat != 55.75 || body.Lon != 37.62 {
		t.Fatalf("coordinates echoed wrong: %+v", body)
	}
	if want := "https://weather.example/pogoda/ru?lat=55.75&lon=37.62"; body.Source != want {
		t.Fatalf("source = %q, want %q", body.Source, want)
	}
	if body.Cached {
		t.Fatal("first response must not be cached")
	}
	if body.Data.Temperature == nil || *body.Data.Temperature != "+3°" {
		t.Fatalf("temperature = %v", body.Data.Temperature)
	}
	if body.Data.Condition == nil || *body.Data.Condition != "clear" {
		t.Fatalf("condition = %v", body.Data.Condition)
	}
}

func TestTotalEndpointServesCacheSecondTime(t *testing.T) {
	app := newTestApp(pageFetcher(factPage))

	target := "/api/weather/total?lat=1&lon=2"
	if _, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Cached bool `json:"cached"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Cached {
		t.Fatal("second response within TTL must be served from cache")
	}
}

func TestMonthEndpoint(t *testing.T) {
	app := newTestApp(pageFetcher(monthPage))

	req := httptest.NewRequest(http.MethodGet, "/api/weather/month?lat=55.75&lon=37.62", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Data []struct {
			Title *string `json:"title"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 {
		t.Fatalf("len(data) = %d, want 1", len(body.Data))
	}
	if body.Data[0].Title == nil || *body.Data[0].Title != "1 августа, пятница" {
		t.Fatalf("title = %v", body.Data[0].Title)
	}
}

func TestUpstreamFailureMapsTo502(t *testing.T) {
	app := newTestApp(weather.FetcherFunc(func(ctx context.Context, url string) (string, error) {
		return "", errors.New("dial tcp: timeout")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/weather/total?lat=1&lon=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadGateway)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Failed to fetch source page: dial tcp: timeout" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestParseFailureMapsTo500(t *testing.T) {
	app := newTestApp(pageFetcher("<html><body>redesigned page</body></html>"))

	req := httptest.NewRequest(http.MethodGet, "/api/weather/total?lat=1&lon=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Weather block not found in the page" {
		t.Fatalf("message = %q", body.Message)
	}
}
