package weather

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/horv1tz/ya-weather-api/internal/common"
)

// The source site build-hashes its class names (AppFact_wrap__N4SYB and the
// like). Exact selectors below match the deployment this service was written
// against; the stable part of each name is the prefix before the hash.

// blockStrategy attempts to locate the current-conditions block in a parsed
// document. It returns nil when the block cannot be found that way.
type blockStrategy func(doc *goquery.Document) *goquery.Selection

// factStrategies is tried in order until one finds the block.
var factStrategies = []blockStrategy{
	// Exact class as currently deployed.
	func(doc *goquery.Document) *goquery.Selection {
		return firstOrNil(doc.Find("div.AppFact_wrap__N4SYB"))
	},
	// Any div keeping the stable prefix after a hash drift.
	func(doc *goquery.Document) *goquery.Selection {
		return firstOrNil(doc.Find(`div[class*="AppFact_wrap__"]`))
	},
	// Last resort: find the temperature value leaf and climb to its
	// nearest div ancestor.
	func(doc *goquery.Document) *goquery.Selection {
		leaf := doc.Find(`span[class*="AppFactTemperature_value"]`).First()
		if leaf.Length() == 0 {
			return nil
		}
		return firstOrNil(leaf.ParentsFiltered("div"))
	},
}

func findFactBlock(doc *goquery.Document) *goquery.Selection {
	for _, strategy := range factStrategies {
		if block := strategy(doc); block != nil {
			return block
		}
	}
	return nil
}

// ParseCurrent extracts the current-conditions record from the main page
// markup. Individual missing fragments yield absent fields; a missing fact
// block is ErrBlockNotFound.
func ParseCurrent(html string) (CurrentConditions, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return CurrentConditions{}, err
	}

	wrap := findFactBlock(doc)
	if wrap == nil {
		return CurrentConditions{}, ErrBlockNotFound
	}

	conditionText := textOrNil(wrap.Find("p.AppFact_warning__8kUUn").First())

	record := CurrentConditions{
		Temperature:    joinTemperature(wrap.Find("p.AppFactTemperature_content__Lx4p9").First()),
		Condition:      MapCondition(conditionText),
		ConditionText:  conditionText,
		FeelsLike:      ExtractTemperature(textOrNil(wrap.Find("span.AppFact_feels__IJoel").First())),
		YesterdayFull:  ExtractTemperature(textOrNil(wrap.Find("span.AppFact_yesterday__zTK7e").First())),
		YesterdayShort: ExtractTemperature(textOrNil(wrap.Find("span.AppFact_yesterdayShort__DB943").First())),
	}

	// The details list is positional: the site's labels are unstable but
	// the ordering is assumed stable. 0=wind, 1=pressure, 2=humidity,
	// 3=water temperature.
	details := wrap.Find("ul.AppFact_details__OYahy li.AppFact_details__item__QFIXI")
	record.Wind = ExtractWind(itemAt(details, 0))
	record.Pressure = ExtractPressure(itemAt(details, 1))
	record.Humidity = ExtractHumidity(itemAt(details, 2))
	record.WaterTemperature = itemAt(details, 3)

	return record, nil
}

// joinTemperature concatenates the sign, value, and degree fragments in that
// fixed order; each may be missing. An empty concatenation means absent.
func joinTemperature(block *goquery.Selection) *string {
	if block.Length() == 0 {
		return nil
	}

	joined := strings.TrimSpace(strings.Join([]string{
		block.Find("span.AppFactTemperature_sign__1MeN4").First().Text(),
		block.Find("span.AppFactTemperature_value__2qhsG").First().Text(),
		block.Find("span.AppFactTemperature_degree__LL_2v").First().Text(),
	}, ""))
	if joined == "" {
		return nil
	}
	return &joined
}

func firstOrNil(sel *goquery.Selection) *goquery.Selection {
	if sel.Length() == 0 {
		return nil
	}
	return sel.First()
}

// textOrNil returns the selection's trimmed text, or nil for an empty
// selection.
func textOrNil(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	s := strings.TrimSpace(sel.Text())
	return &s
}

// collapsedOrNil is textOrNil with internal whitespace squeezed, for
// fragments assembled from several inline children.
func collapsedOrNil(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	s := common.CollapseSpace(sel.Text())
	return &s
}

// itemAt returns the collapsed text of the i-th element of sel; an index
// beyond the selection yields absent, not an error.
func itemAt(sel *goquery.Selection, i int) *string {
	if i < 0 || i >= sel.Length() {
		return nil
	}
	s := common.CollapseSpace(sel.Eq(i).Text())
	return &s
}
