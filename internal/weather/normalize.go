package weather

import (
	"regexp"
	"strings"

	"github.com/horv1tz/ya-weather-api/internal/common"
)

var (
	temperatureRe = regexp.MustCompile(`[+-]?\d+°`)
	digitsRe      = regexp.MustCompile(`\d+`)
)

// ExtractTemperature pulls the first temperature token out of free text,
// e.g. "Ощущается как +3°" -> "+3°". Sign and degree glyph are kept verbatim.
func ExtractTemperature(text *string) *string {
	if text == nil {
		return nil
	}
	if m := temperatureRe.FindString(*text); m != "" {
		return &m
	}
	return nil
}

// ExtractWind trims the free-text wind description, e.g. "СЗ, 3 м/с".
// An empty string counts as absent input; whitespace-only input is present
// and trims down to an empty value.
func ExtractWind(text *string) *string {
	if text == nil || *text == "" {
		return nil
	}
	s := strings.TrimSpace(*text)
	return &s
}

// ExtractPressure keeps only the first digit run,
// e.g. "758 мм рт. ст." -> "758".
func ExtractPressure(text *string) *string {
	return extractDigits(text)
}

// ExtractHumidity keeps only the first digit run, e.g. "65%" -> "65".
func ExtractHumidity(text *string) *string {
	return extractDigits(text)
}

func extractDigits(text *string) *string {
	if text == nil {
		return nil
	}
	if m := digitsRe.FindString(*text); m != "" {
		return &m
	}
	return nil
}

// conditionRule maps Russian condition keywords to a normalized code.
type conditionRule struct {
	code     Condition
	keywords []string
}

// conditionRules is tried top to bottom and the first match wins. The order
// is load-bearing: it resolves phrases containing several keywords (such as
// "облачно" inside "облачно с прояснениями") and must not be resorted.
var conditionRules = []conditionRule{
	{ConditionClear, []string{"ясно"}},
	{ConditionPartlyCloudy, []string{"малооблачно", "переменная облачность"}},
	{ConditionCloudyAndClear, []string{"облачно с прояснениями"}},
	{ConditionCloudy, []string{"облачно"}},
	{ConditionOvercast, []string{"пасмурно"}},
	{ConditionLightRain, []string{"небольшой дождь", "слабый дождь"}},
	{ConditionRain, []string{"дождь"}},
	{ConditionHeavyRain, []string{"ливень", "сильный дождь"}},
	{ConditionThunderstorm, []string{"гроза"}},
	{ConditionLightSnow, []string{"небольшой снег", "слабый снег"}},
	{ConditionSnow, []string{"снег"}},
	{ConditionHeavySnow, []string{"метель", "сильный снег"}},
	{ConditionFog, []string{"туман"}},
	{ConditionHaze, []string{"мгла", "дымка"}},
	{ConditionDrizzle, []string{"морось"}},
	{ConditionHail, []string{"град"}},
}

// MapCondition translates a raw Russian condition phrase into a Condition
// code. Absent or empty text yields an absent code; non-empty text matching
// no rule yields ConditionUnknown.
func MapCondition(text *string) *Condition {
	if text == nil || *text == "" {
		return nil
	}

	lowered := strings.ToLower(*text)
	for _, rule := range conditionRules {
		if common.HasAny(lowered, rule.keywords...) {
			code := rule.code
			return &code
		}
	}

	code := ConditionUnknown
	return &code
}
