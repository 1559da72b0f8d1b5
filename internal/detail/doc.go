// Package detail lazily loads per-item detail for detail-capable categories.
//
// A detail fetch happens at most once per item. The loader marks the item as
// pending while its fetch is in flight, and once the fetch completes, whether
// it succeeded or failed, the item is flagged DetailLoaded and further
// selections are no-ops. Concurrent fetches for the same category and uid are
// collapsed into one request.
//
// Like the list controller, loading is split so that only Begin and Complete
// touch the item; Fetch is safe to run from a Bubble Tea command goroutine.
package detail
