// Package browser owns the category selection and item set of a holocron
// session and projects them into a display-agnostic ViewModel.
//
// Fetching is split in three steps so the controller can sit behind an event
// loop: SelectCategory or Reload issue a tagged ListRequest, FetchList runs
// the request anywhere (it never touches controller state), and ApplyList
// folds the result back in on the event loop, dropping results whose tag is
// no longer current.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/swapi"
)

// ErrListFetch wraps every failure to retrieve or adapt a category list.
var ErrListFetch = errors.New("list fetch failed")

// Phase is the controller's list lifecycle.
type Phase int

const (
	// PhaseIdle means no category has been selected yet.
	PhaseIdle Phase = iota
	// PhaseLoading means a list fetch for the current category is outstanding.
	PhaseLoading
	// PhaseReady means the item set holds the current category's items.
	PhaseReady
	// PhaseError means the last list fetch failed; the item set is empty.
	PhaseError
)

// ListRequest identifies one list fetch. Generation is compared against the
// controller's current generation when the result comes back.
type ListRequest struct {
	Category   catalog.CategoryID
	URL        string
	Generation uint64
}

// ListResult is the outcome of FetchList.
type ListResult struct {
	Request ListRequest
	Items   []catalog.Item
	Err     error
}

// Controller is the list controller. It is not safe for concurrent use;
// all mutating calls belong on one goroutine.
type Controller struct {
	catalog *catalog.Catalog
	fetcher swapi.Fetcher
	logger  zerolog.Logger

	current    catalog.CategoryID
	generation uint64
	phase      Phase
	items      []catalog.Item
	query      string
	err        error
}

// NewController returns a controller with nothing selected.
func NewController(cat *catalog.Catalog, fetcher swapi.Fetcher, logger zerolog.Logger) *Controller {
	return &Controller{
		catalog: cat,
		fetcher: fetcher,
		logger:  logger.With().Str("component", "browser").Logger(),
	}
}

// Current returns the selected category, or "" before the first selection.
func (c *Controller) Current() catalog.CategoryID { return c.current }

// Phase returns the list lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Err returns the last list error while in PhaseError.
func (c *Controller) Err() error { return c.err }

// Query returns the stored lowercase filter.
func (c *Controller) Query() string { return c.query }

// Items returns the underlying item set in fetch order.
func (c *Controller) Items() []catalog.Item { return c.items }

// Item returns a pointer to the underlying item at index, or nil.
func (c *Controller) Item(index int) *catalog.Item {
	if index < 0 || index >= len(c.items) {
		return nil
	}
	return &c.items[index]
}

// SelectCategory switches to id. Selecting the current category is a no-op
// and returns false; otherwise the item set is cleared and the returned
// request must be passed to FetchList.
func (c *Controller) SelectCategory(id catalog.CategoryID) (ListRequest, bool) {
	if id == c.current {
		return ListRequest{}, false
	}
	c.current = id
	return c.issue(), true
}

// Reload re-issues the fetch for the current category, clearing any error.
func (c *Controller) Reload() (ListRequest, bool) {
	if c.current == "" {
		return ListRequest{}, false
	}
	return c.issue(), true
}

func (c *Controller) issue() ListRequest {
	c.generation++
	c.items = nil
	c.err = nil
	c.phase = PhaseLoading

	req := ListRequest{
		Category:   c.current,
		URL:        c.catalog.Lookup(c.current).ListURL,
		Generation: c.generation,
	}
	c.logger.Debug().
		Str("category", req.Category.String()).
		Uint64("generation", req.Generation).
		Msg("list fetch issued")
	return req
}

// FetchList performs the request and adapts the body. It reads only the
// immutable catalog, so it may run on any goroutine.
func (c *Controller) FetchList(ctx context.Context, req ListRequest) ListResult {
	body, err := c.fetcher.Get(ctx, req.URL)
	if err != nil {
		return ListResult{Request: req, Err: fmt.Errorf("%w: %w", ErrListFetch, err)}
	}

	items, err := c.catalog.Lookup(req.Category).Adapt(body)
	if err != nil {
		return ListResult{Request: req, Err: fmt.Errorf("%w: %w", ErrListFetch, err)}
	}
	return ListResult{Request: req, Items: items}
}

// ApplyList folds res into the controller. Results for a superseded request
// are dropped and ApplyList returns false.
func (c *Controller) ApplyList(res ListResult) bool {
	if res.Request.Generation != c.generation || res.Request.Category != c.current {
		c.logger.Debug().
			Str("category", res.Request.Category.String()).
			Uint64("generation", res.Request.Generation).
			Uint64("current_generation", c.generation).
			Msg("discarding stale list response")
		return false
	}

	if res.Err != nil {
		c.items = nil
		c.err = res.Err
		c.phase = PhaseError
		c.logger.Warn().Err(res.Err).Str("category", c.current.String()).Msg("list fetch failed")
		return true
	}

	c.items = res.Items
	c.err = nil
	c.phase = PhaseReady
	c.logger.Debug().Str("category", c.current.String()).Int("items", len(res.Items)).Msg("list loaded")
	return true
}

// Load selects id and fetches it synchronously. Selecting the current
// category performs no fetch. The returned error is the list error, if any.
func (c *Controller) Load(ctx context.Context, id catalog.CategoryID) error {
	req, ok := c.SelectCategory(id)
	if !ok {
		return c.err
	}
	c.ApplyList(c.FetchList(ctx, req))
	return c.err
}

// SetFilter stores the lowercase query. It never refetches.
func (c *Controller) SetFilter(query string) {
	c.query = strings.ToLower(query)
}
