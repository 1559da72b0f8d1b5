package browser

import (
	"errors"
	"strings"

	"github.com/rshade/holocron/internal/swapi"
)

// Placeholder texts shown in place of the list.
const (
	LoadingText = "Loading…"
	EmptyText   = "Nothing found"
	errorPrefix = "Loading error: "
)

// EntryStatus distinguishes real items from placeholders.
type EntryStatus int

const (
	// StatusItem is a real item; Index points into the controller's item set.
	StatusItem EntryStatus = iota
	// StatusLoading is the single placeholder shown while a list is in flight.
	StatusLoading
	// StatusEmpty is the single placeholder shown when nothing matches.
	StatusEmpty
	// StatusError is the single entry shown when the list fetch failed.
	StatusError
)

// String implements fmt.Stringer.
func (s EntryStatus) String() string {
	switch s {
	case StatusItem:
		return "item"
	case StatusLoading:
		return "loading"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is one rendered row.
type Entry struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle,omitempty"`
	Detail   string      `json:"detail,omitempty"`
	UID      string      `json:"uid,omitempty"`
	Status   EntryStatus `json:"-"`

	// Index is the position in the controller's item set, or -1 for placeholders.
	Index int `json:"-"`
}

// ViewModel is the ordered, display-agnostic projection of the controller.
type ViewModel struct {
	Entries []Entry
}

// Placeholder reports whether the view is a single non-item entry.
func (v ViewModel) Placeholder() bool {
	return len(v.Entries) == 1 && v.Entries[0].Status != StatusItem
}

// Items returns only the real item entries.
func (v ViewModel) Items() []Entry {
	out := make([]Entry, 0, len(v.Entries))
	for _, e := range v.Entries {
		if e.Status == StatusItem {
			out = append(out, e)
		}
	}
	return out
}

// Render projects the current state. It never mutates the item set.
func (c *Controller) Render() ViewModel {
	switch c.phase {
	case PhaseLoading:
		return single(StatusLoading, LoadingText)
	case PhaseError:
		return single(StatusError, ErrorText(c.err))
	case PhaseIdle, PhaseReady:
	}

	var entries []Entry
	for i := range c.items {
		it := &c.items[i]
		if !strings.Contains(strings.ToLower(it.Title), c.query) {
			continue
		}
		entries = append(entries, Entry{
			Title:    it.Title,
			Subtitle: it.Subtitle,
			Detail:   it.Detail,
			UID:      it.Identifier,
			Status:   StatusItem,
			Index:    i,
		})
	}

	if len(entries) == 0 {
		return single(StatusEmpty, EmptyText)
	}
	return ViewModel{Entries: entries}
}

func single(status EntryStatus, title string) ViewModel {
	return ViewModel{Entries: []Entry{{Title: title, Status: status, Index: -1}}}
}

// ErrorText converts a list error into its inline message. Status errors
// render as "HTTP <code>" and everything else by its innermost cause.
func ErrorText(err error) string {
	if err == nil {
		return errorPrefix + "Unknown"
	}
	var statusErr *swapi.StatusError
	if errors.As(err, &statusErr) {
		return errorPrefix + statusErr.Error()
	}
	return errorPrefix + strings.TrimPrefix(err.Error(), ErrListFetch.Error()+": ")
}
