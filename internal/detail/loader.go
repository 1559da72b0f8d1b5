package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/swapi"
)

// Inline texts shown in an item's detail line.
const (
	LoadingText = "Loading details…"
	failPrefix  = "Failed to load details: "
)

// maxSharedRetries bounds how often Fetch restarts a shared request that
// was cancelled by another caller.
const maxSharedRetries = 3

// ErrDetailFetch wraps every failure to retrieve or parse item detail.
var ErrDetailFetch = errors.New("detail fetch failed")

// errAbandoned marks a shared request that failed because the caller that
// started it went away.
var errAbandoned = errors.New("request abandoned by its caller")

// Loader fetches and memoizes item detail.
type Loader struct {
	catalog *catalog.Catalog
	fetcher swapi.Fetcher
	logger  zerolog.Logger
	group   singleflight.Group
}

// NewLoader returns a Loader.
func NewLoader(cat *catalog.Catalog, fetcher swapi.Fetcher, logger zerolog.Logger) *Loader {
	return &Loader{
		catalog: cat,
		fetcher: fetcher,
		logger:  logger.With().Str("component", "detail").Logger(),
	}
}

// Eligible reports whether a detail fetch may be started for item.
func (l *Loader) Eligible(category catalog.CategoryID, item *catalog.Item) bool {
	if item == nil || item.Identifier == "" || item.DetailLoaded || item.DetailPending() {
		return false
	}
	return l.catalog.Lookup(category).SupportsDetail
}

// Begin marks item as loading and reports whether the caller should Fetch.
// Ineligible items are left untouched.
func (l *Loader) Begin(category catalog.CategoryID, item *catalog.Item) bool {
	if !l.Eligible(category, item) {
		return false
	}
	item.SetDetailPending(true)
	item.Detail = LoadingText
	return true
}

// Fetch retrieves and formats the detail summary for uid. It never touches
// an Item. Concurrent calls for the same uid share one request; a caller
// whose context ends stops waiting without failing the others.
func (l *Loader) Fetch(ctx context.Context, category catalog.CategoryID, uid string) (string, error) {
	url := l.catalog.Lookup(category).DetailURL(uid)

	var res singleflight.Result
	for attempt := 0; ; attempt++ {
		ch := l.group.DoChan(url, func() (any, error) {
			summary, err := l.fetchSummary(ctx, category, uid, url)
			if err != nil && ctx.Err() != nil {
				return "", fmt.Errorf("%w: %w", errAbandoned, err)
			}
			return summary, err
		})

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrDetailFetch, ctx.Err())
		case res = <-ch:
		}

		// The shared request ran under another caller's context and was
		// cancelled with it; retry under ours.
		if errors.Is(res.Err, errAbandoned) && ctx.Err() == nil && attempt < maxSharedRetries {
			continue
		}
		break
	}

	if res.Err != nil {
		l.logger.Warn().Ctx(ctx).Err(res.Err).
			Str("category", category.String()).
			Str("uid", uid).
			Msg("detail fetch failed")
		return "", fmt.Errorf("%w: %w", ErrDetailFetch, res.Err)
	}

	l.logger.Debug().Ctx(ctx).
		Str("category", category.String()).
		Str("uid", uid).
		Bool("shared", res.Shared).
		Msg("detail loaded")
	summary, _ := res.Val.(string)
	return summary, nil
}

func (l *Loader) fetchSummary(ctx context.Context, category catalog.CategoryID, uid, url string) (string, error) {
	body, err := l.fetcher.Get(ctx, url)
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: detail for %s/%s", catalog.ErrMalformedResponse, category, uid)
	}
	return Summarize(category, gjson.GetBytes(body, "result.properties")), nil
}

// Complete stores the outcome of Fetch on item. The item is marked loaded
// on success and on failure so it is never fetched again.
func (l *Loader) Complete(item *catalog.Item, summary string, err error) {
	item.SetDetailPending(false)
	item.DetailLoaded = true
	if err != nil {
		item.Detail = FailureText(err)
		return
	}
	item.Detail = summary
}

// LoadDetail runs Begin, Fetch and Complete synchronously. It returns the
// detail error, if any; an ineligible item is a no-op and returns nil.
func (l *Loader) LoadDetail(ctx context.Context, category catalog.CategoryID, item *catalog.Item) error {
	if !l.Begin(category, item) {
		return nil
	}
	summary, err := l.Fetch(ctx, category, item.Identifier)
	l.Complete(item, summary, err)
	return err
}

// FailureText converts a detail error into its inline message.
func FailureText(err error) string {
	var statusErr *swapi.StatusError
	if errors.As(err, &statusErr) {
		return failPrefix + statusErr.Error()
	}
	return failPrefix + strings.TrimPrefix(err.Error(), ErrDetailFetch.Error()+": ")
}
