package detail

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/swapi"
)

const testBase = "http://swapi.test/api"

type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	errs   map[string]error
	calls  atomic.Int32
	gate   chan struct{}
}

func (f *fakeFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.gate:
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, &swapi.StatusError{StatusCode: http.StatusNotFound, URL: url}
	}
	return []byte(body), nil
}

func newTestLoader() (*Loader, *fakeFetcher) {
	f := &fakeFetcher{
		bodies: map[string]string{
			testBase + "/people/1": `{"result":{"uid":"1","properties":{"name":"Luke Skywalker","height":"172","gender":"male","birth_year":"19BBY"}}}`,
			testBase + "/planets/1": `{"result":{"uid":"1","properties":{"name":"Tatooine","climate":"arid","terrain":"desert","population":"unknown"}}}`,
		},
		errs: map[string]error{},
	}
	return NewLoader(catalog.New(testBase, 0), f, zerolog.Nop()), f
}

func TestLoadDetail_Planet(t *testing.T) {
	l, f := newTestLoader()
	item := &catalog.Item{Title: "Tatooine", Identifier: "1"}

	require.NoError(t, l.LoadDetail(context.Background(), catalog.Planets, item))

	assert.Equal(t, "arid · desert", item.Detail)
	assert.True(t, item.DetailLoaded)
	assert.False(t, item.DetailPending())
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestLoadDetail_Person(t *testing.T) {
	l, _ := newTestLoader()
	item := &catalog.Item{Title: "Luke Skywalker", Identifier: "1"}

	require.NoError(t, l.LoadDetail(context.Background(), catalog.People, item))
	assert.Equal(t, "172 cm · male · 19BBY", item.Detail)
}

func TestLoadDetail_IdempotentAfterSuccess(t *testing.T) {
	l, f := newTestLoader()
	item := &catalog.Item{Title: "Tatooine", Identifier: "1"}
	ctx := context.Background()

	require.NoError(t, l.LoadDetail(ctx, catalog.Planets, item))
	first := item.Detail

	require.NoError(t, l.LoadDetail(ctx, catalog.Planets, item))
	assert.Equal(t, first, item.Detail)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestLoadDetail_IdempotentAfterFailure(t *testing.T) {
	l, f := newTestLoader()
	item := &catalog.Item{Title: "Hoth", Identifier: "4"}
	ctx := context.Background()

	err := l.LoadDetail(ctx, catalog.Planets, item)
	require.ErrorIs(t, err, ErrDetailFetch)

	var statusErr *swapi.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Failed to load details: HTTP 404", item.Detail)
	assert.True(t, item.DetailLoaded)

	require.NoError(t, l.LoadDetail(ctx, catalog.Planets, item))
	assert.Equal(t, "Failed to load details: HTTP 404", item.Detail)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestLoadDetail_NetworkFailureText(t *testing.T) {
	l, f := newTestLoader()
	f.errs[testBase+"/people/1"] = errors.New("connection reset")
	item := &catalog.Item{Title: "Luke Skywalker", Identifier: "1"}

	require.Error(t, l.LoadDetail(context.Background(), catalog.People, item))
	assert.Equal(t, "Failed to load details: connection reset", item.Detail)
}

func TestLoadDetail_MalformedBody(t *testing.T) {
	l, f := newTestLoader()
	f.bodies[testBase+"/people/9"] = "<html>"
	item := &catalog.Item{Title: "Biggs", Identifier: "9"}

	err := l.LoadDetail(context.Background(), catalog.People, item)
	require.ErrorIs(t, err, catalog.ErrMalformedResponse)
	assert.True(t, item.DetailLoaded)
}

func TestLoadDetail_MissingProperties(t *testing.T) {
	l, f := newTestLoader()
	f.bodies[testBase+"/people/2"] = `{"result":{}}`
	item := &catalog.Item{Title: "C-3PO", Identifier: "2"}

	require.NoError(t, l.LoadDetail(context.Background(), catalog.People, item))
	assert.Equal(t, NoDetails, item.Detail)
}

func TestLoadDetail_PreconditionsAreNoops(t *testing.T) {
	tests := []struct {
		name     string
		category catalog.CategoryID
		item     *catalog.Item
	}{
		{name: "films never load", category: catalog.Films, item: &catalog.Item{Title: "A New Hope", Identifier: "1"}},
		{name: "no identifier", category: catalog.People, item: &catalog.Item{Title: "Nobody"}},
		{name: "already loaded", category: catalog.People, item: &catalog.Item{Title: "Luke", Identifier: "1", Detail: "cached", DetailLoaded: true}},
		{name: "nil item", category: catalog.People, item: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, f := newTestLoader()
			var before string
			if tt.item != nil {
				before = tt.item.Detail
			}

			require.NoError(t, l.LoadDetail(context.Background(), tt.category, tt.item))

			assert.Zero(t, f.calls.Load())
			if tt.item != nil {
				assert.Equal(t, before, tt.item.Detail)
			}
		})
	}
}

func TestBegin_MarksLoadingAndBlocksSecondBegin(t *testing.T) {
	l, _ := newTestLoader()
	item := &catalog.Item{Title: "Luke Skywalker", Identifier: "1"}

	require.True(t, l.Begin(catalog.People, item))
	assert.Equal(t, LoadingText, item.Detail)
	assert.True(t, item.DetailPending())
	assert.False(t, item.DetailLoaded)

	assert.False(t, l.Begin(catalog.People, item), "pending item must not start a second fetch")

	l.Complete(item, "172 cm", nil)
	assert.False(t, item.DetailPending())
	assert.True(t, item.DetailLoaded)
	assert.False(t, l.Begin(catalog.People, item))
}

func TestFetch_ConcurrentCallersShareResult(t *testing.T) {
	l, f := newTestLoader()
	f.gate = make(chan struct{})

	const callers = 5
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, err := l.Fetch(context.Background(), catalog.Planets, "1")
			assert.NoError(t, err)
			results[i] = summary
		}()
	}

	// Let the first caller reach the fetcher before releasing it.
	require.Eventually(t, func() bool { return f.calls.Load() >= 1 }, timeout, tick)
	close(f.gate)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "arid · desert", r)
	}
	assert.LessOrEqual(t, f.calls.Load(), int32(callers))
}

func TestFetch_CancelledCallerDoesNotFailOthers(t *testing.T) {
	l, f := newTestLoader()
	f.gate = make(chan struct{})

	first, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()

	firstErr := make(chan error, 1)
	go func() {
		_, err := l.Fetch(first, catalog.People, "1")
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return f.calls.Load() >= 1 }, timeout, tick)

	type outcome struct {
		summary string
		err     error
	}
	second := make(chan outcome, 1)
	go func() {
		summary, err := l.Fetch(context.Background(), catalog.People, "1")
		second <- outcome{summary: summary, err: err}
	}()
	time.Sleep(tick)

	cancelFirst()
	err := <-firstErr
	require.ErrorIs(t, err, ErrDetailFetch)
	require.ErrorIs(t, err, context.Canceled)

	close(f.gate)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "172 cm · male · 19BBY", got.summary)
}

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)
