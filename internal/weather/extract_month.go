package weather

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseMonth extracts the ordered day records from the month-view markup.
// A missing month container is ErrMonthNotFound; a container that yields no
// real day entries is ErrNoDayEntries.
func ParseMonth(html string) (MonthForecast, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	article := doc.Find("article.AppMonth_month__CunyE").First()
	if article.Length() == 0 {
		return nil, ErrMonthNotFound
	}

	var days MonthForecast
	article.Find("div.AppMonthCalendarDay_day__GjOhu").Each(func(_ int, day *goquery.Selection) {
		item := day.Closest("li")
		// The calendar pads its grid with a "climate start" boundary cell
		// that carries no forecast. It is dropped, not emptied.
		if cls, ok := item.Attr("class"); ok && strings.Contains(cls, "climateStart") {
			return
		}
		days = append(days, parseDay(day, item))
	})

	if len(days) == 0 {
		return nil, ErrNoDayEntries
	}
	return days, nil
}

func parseDay(day, item *goquery.Selection) DayForecast {
	var rec DayForecast

	link := day.Find("a.AppMonthCalendarDay_day__date__QDruE").First()
	if link.Length() > 0 {
		if label, ok := link.Attr("aria-label"); ok && label != "" {
			rec.Title = &label
		}
		rec.Label = collapsedOrNil(link)
	}
	if rec.Title == nil {
		rec.Title = rec.Label
	}

	// The first temperature leaf is the day value. The night value is not
	// positional: it is whichever leaf carries the night marker class.
	tempSpans := day.Find("p.AppMonthCalendarDay_temperature__4x_Yx span.AppMonthCalendarDay_temperature__number__VSntF")
	if tempSpans.Length() > 0 {
		rec.DayTemp = textOrNil(tempSpans.First())
	}
	tempSpans.EachWithBreak(func(_ int, span *goquery.Selection) bool {
		if span.HasClass("AppMonthCalendarDay_temperature__number_night__ggkzj") {
			rec.NightTemp = textOrNil(span)
			return false
		}
		return true
	})

	// The detailed-info panel may hang off the list item rather than the
	// day block itself.
	scope := day
	if item.Length() > 0 {
		scope = item
	}
	details := scope.Find("div.AppMonthCalendarDayDetailedInfo_details__Z6kgi").First()
	if details.Length() > 0 {
		rec.FeelsLike = ExtractTemperature(textOrNil(details.Find("p.AppMonthCalendarDayDetailedInfo_details__feelsLike__nXzvQ").First()))

		// Positional params: 0=pressure, 1=humidity, 2=wind, 3=water
		// temperature.
		params := details.Find("ul.AppMonthCalendarDayDetailedInfo_params__7Z8Yt li")
		rec.Pressure = ExtractPressure(itemAt(params, 0))
		rec.Humidity = ExtractHumidity(itemAt(params, 1))
		rec.Wind = ExtractWind(itemAt(params, 2))
		rec.WaterTemperature = itemAt(params, 3)
	}

	return rec
}
