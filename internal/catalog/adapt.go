package catalog

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// SubtitleSeparator joins subtitle and detail fragments.
const SubtitleSeparator = " · "

// adaptFilms maps {result: [{properties: {title, release_date, director}}]}.
func adaptFilms(raw []byte) ([]Item, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: films list", ErrMalformedResponse)
	}

	list := gjson.GetBytes(raw, "result")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: films list has no result array", ErrMalformedResponse)
	}
	records := list.Array()
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		props := rec.Get("properties")
		items = append(items, Item{
			Title:    props.Get("title").String(),
			Subtitle: props.Get("release_date").String() + SubtitleSeparator + props.Get("director").String(),
		})
	}
	return items, nil
}

// adaptNamed maps {results: [{name, uid}]} as used by people and planets.
func adaptNamed(raw []byte) ([]Item, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: named list", ErrMalformedResponse)
	}

	list := gjson.GetBytes(raw, "results")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: named list has no results array", ErrMalformedResponse)
	}
	records := list.Array()
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		items = append(items, Item{
			Title:      rec.Get("name").String(),
			Identifier: rec.Get("uid").String(),
		})
	}
	return items, nil
}
