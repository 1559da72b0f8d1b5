package detail

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/rshade/holocron/internal/catalog"
)

// NoDetails is shown when every summary field is absent.
const NoDetails = "No details"

// unknownPopulation is the API's placeholder for missing population data.
const unknownPopulation = "unknown"

// Summarize formats detail properties for category.
func Summarize(category catalog.CategoryID, props gjson.Result) string {
	switch category {
	case catalog.People:
		return FormatPerson(props)
	case catalog.Planets:
		return FormatPlanet(props)
	case catalog.Films:
		return NoDetails
	default:
		return NoDetails
	}
}

// FormatPerson renders "<height> cm · gender · birth_year".
func FormatPerson(p gjson.Result) string {
	var height string
	if h := p.Get("height").String(); h != "" {
		height = h + " cm"
	}
	return join(height, p.Get("gender").String(), p.Get("birth_year").String())
}

// FormatPlanet renders "climate · terrain · pop <population>". An unknown
// population is omitted.
func FormatPlanet(p gjson.Result) string {
	var population string
	if pop := p.Get("population").String(); pop != "" && pop != unknownPopulation {
		population = "pop " + pop
	}
	return join(p.Get("climate").String(), p.Get("terrain").String(), population)
}

func join(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return NoDetails
	}
	return strings.Join(kept, catalog.SubtitleSeparator)
}
