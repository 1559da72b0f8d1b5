// Package catalog maps the fixed set of SWAPI categories to their endpoints
// and to the adapters that turn raw list responses into Items.
package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultBaseURL is the public SWAPI endpoint.
const DefaultBaseURL = "https://swapi.tech/api"

// DefaultPageLimit is the page size requested for people and planets.
const DefaultPageLimit = 100

// CategoryID identifies one of the supported list types.
type CategoryID string

// Supported categories, in tab order.
const (
	Films   CategoryID = "films"
	People  CategoryID = "people"
	Planets CategoryID = "planets"
)

// String implements fmt.Stringer.
func (c CategoryID) String() string { return string(c) }

// Categories returns every category in display order.
func Categories() []CategoryID {
	return []CategoryID{Films, People, Planets}
}

// ParseCategory converts user input to a CategoryID.
func ParseCategory(s string) (CategoryID, error) {
	id := CategoryID(strings.ToLower(strings.TrimSpace(s)))
	switch id {
	case Films, People, Planets:
		return id, nil
	default:
		return "", fmt.Errorf("%w: %q (want one of films, people, planets)", ErrUnknownCategory, s)
	}
}

//nolint:gochecknoglobals // Caser is safe to reuse for the fixed label set.
var titleCaser = cases.Title(language.English)

// Label returns the tab label for a category, e.g. "Planets".
func Label(id CategoryID) string {
	return titleCaser.String(string(id))
}

// Item is a single list entry. Detail and DetailLoaded are owned by the
// detail loader; everything else is set once by the adapter.
type Item struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	Identifier string `json:"uid,omitempty"`
	Detail     string `json:"detail,omitempty"`

	// DetailLoaded becomes true after the first detail fetch completes,
	// whether it succeeded or failed.
	DetailLoaded bool `json:"detail_loaded"`

	detailPending bool
}

// DetailPending reports whether a detail fetch for this item is in flight.
func (it *Item) DetailPending() bool { return it.detailPending }

// SetDetailPending is used by the detail loader to guard against double fetches.
func (it *Item) SetDetailPending(pending bool) { it.detailPending = pending }

// AdaptFunc converts a raw list response body into Items.
type AdaptFunc func(raw []byte) ([]Item, error)

// EndpointSpec describes how to list and look up one category.
type EndpointSpec struct {
	ID             CategoryID
	ListURL        string
	Adapt          AdaptFunc
	SupportsDetail bool

	detailBase string
}

// DetailURL returns the detail endpoint for the item with the given uid.
// The uid is escaped as a single path segment.
func (e EndpointSpec) DetailURL(uid string) string {
	return e.detailBase + "/" + url.PathEscape(uid)
}

// Catalog holds the endpoint specs for a given API base URL.
type Catalog struct {
	baseURL string
	specs   map[CategoryID]EndpointSpec
}

// New builds a catalog rooted at baseURL. A non-positive pageLimit uses
// DefaultPageLimit; an empty baseURL uses DefaultBaseURL.
func New(baseURL string, pageLimit int) *Catalog {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}
	page := "?page=1&limit=" + strconv.Itoa(pageLimit)

	c := &Catalog{baseURL: base, specs: make(map[CategoryID]EndpointSpec, len(Categories()))}
	c.specs[Films] = EndpointSpec{
		ID:         Films,
		ListURL:    base + "/films",
		Adapt:      adaptFilms,
		detailBase: base + "/films",
	}
	c.specs[People] = EndpointSpec{
		ID:             People,
		ListURL:        base + "/people" + page,
		Adapt:          adaptNamed,
		SupportsDetail: true,
		detailBase:     base + "/people",
	}
	c.specs[Planets] = EndpointSpec{
		ID:             Planets,
		ListURL:        base + "/planets" + page,
		Adapt:          adaptNamed,
		SupportsDetail: true,
		detailBase:     base + "/planets",
	}
	return c
}

// BaseURL returns the normalized API root.
func (c *Catalog) BaseURL() string { return c.baseURL }

// Lookup returns the endpoint spec for id. The category set is closed, so
// an id that did not come from ParseCategory or the constants above is a
// programming error and yields the zero EndpointSpec.
func (c *Catalog) Lookup(id CategoryID) EndpointSpec {
	return c.specs[id]
}
