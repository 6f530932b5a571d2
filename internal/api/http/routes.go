package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/horv1tz/ya-weather-api/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	api := app.Group("/api/weather")

	api.Get("/total", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.Current(c.Context(), coords)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(envelope(coords, res.Source, res.Data, res.Cached))
	})

	api.Get("/month", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.Month(c.Context(), coords)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(envelope(coords, res.Source, res.Data, res.Cached))
	})
}

// envelope is the shared response shape of both endpoints.
func envelope(coords weather.Coordinates, source string, data interface{}, cached bool) fiber.Map {
	return fiber.Map{
		"lat":    coords.Lat,
		"lon":    coords.Lon,
		"source": source,
		"data":   data,
		"cached": cached,
	}
}

// mapServiceError translates service failures: upstream transport problems
// become 502, extraction problems 500.
func mapServiceError(err error) error {
	var upstream *weather.UpstreamError
	if errors.As(err, &upstream) {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// coordsQuery holds the raw query parameters identifying a location.
type coordsQuery struct {
	Lat string `validate:"required,numeric"`
	Lon string `validate:"required,numeric"`
}

func parseCoordsQuery(c *fiber.Ctx) (weather.Coordinates, error) {
	q := coordsQuery{
		Lat: c.Query("lat"),
		Lon: c.Query("lon"),
	}
	if err := validate.Struct(q); err != nil {
		return weather.Coordinates{}, err
	}

	lat, err := strconv.ParseFloat(q.Lat, 64)
	if err != nil {
		return weather.Coordinates{}, err
	}
	lon, err := strconv.ParseFloat(q.Lon, 64)
	if err != nil {
		return weather.Coordinates{}, err
	}

	return weather.Coordinates{Lat: lat, Lon: lon}, nil
}
