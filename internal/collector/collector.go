// Package collector implements the client side of the submission flow: an
// ordered, id-keyed list of URL entries with pure transition operations,
// normalization and validation, and a single-flight submit to the relay.
package collector

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/DmitryKolesov/url-relay/internal/bufpool"
)

// Entry is one editable row of user-supplied URL text.
type Entry struct {
	ID  string
	URL string
}

// Collector holds the editable entry list and the result of the last
// submission. It is not safe for concurrent use; the intended model is one
// instance per user session driven by sequential events.
type Collector struct {
	app      string
	endpoint string
	client   *http.Client
	buffers  *bufpool.Pool

	entries  []Entry
	result   *Result
	inFlight bool
}

// New creates a Collector targeting the relay endpoint, starting with a
// single empty entry. The app identifier is stamped on every submission.
func New(app, endpoint string) *Collector {
	return &Collector{
		app:      app,
		endpoint: endpoint,
		client:   &http.Client{},
		buffers:  bufpool.New(4),
		entries:  []Entry{{ID: uuid.NewString()}},
	}
}

// Entries returns a copy of the current entry list.
func (c *Collector) Entries() []Entry {
	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Result returns the outcome of the last submission, or nil.
func (c *Collector) Result() *Result {
	return c.result
}

// AddEntry appends one empty entry and returns its id.
func (c *Collector) AddEntry() string {
	id := uuid.NewString()
	c.entries = append(c.entries, Entry{ID: id})
	return id
}

// RemoveEntry removes the entry with the given id. Removing the only
// remaining entry is a no-op: at least one entry must always exist.
func (c *Collector) RemoveEntry(id string) bool {
	if len(c.entries) <= 1 {
		return false
	}

	for i, entry := range c.entries {
		if entry.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}

	return false
}

// SetEntryURL replaces the raw text of the entry with the given id.
// No validation is performed at this point.
func (c *Collector) SetEntryURL(id, text string) bool {
	for i := range c.entries {
		if c.entries[i].ID == id {
			c.entries[i].URL = text
			return true
		}
	}

	return false
}

// IngestPastedText handles text pasted into the entry with the given id.
// When the text splits into more than one token, the first token replaces
// the entry's text and one new entry is appended per remaining token, in
// order; it then reports true so the caller suppresses the default paste.
// Zero or one token reports false, deferring to the default paste behavior.
func (c *Collector) IngestPastedText(id, text string) bool {
	tokens := splitPastedText(text)
	if len(tokens) <= 1 {
		return false
	}

	if !c.SetEntryURL(id, tokens[0]) {
		return false
	}

	for _, token := range tokens[1:] {
		c.entries = append(c.entries, Entry{ID: uuid.NewString(), URL: token})
	}

	return true
}

// Reset discards all entries, restores a single empty entry, and clears the
// last result.
func (c *Collector) Reset() {
	c.entries = []Entry{{ID: uuid.NewString()}}
	c.result = nil
}

// NormalizedURLs trims every entry, drops the empty ones, and prefixes
// https:// where no scheme is present. Duplicates are preserved.
func (c *Collector) NormalizedURLs() []string {
	urls := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		if normalized := NormalizeURL(entry.URL); normalized != "" {
			urls = append(urls, normalized)
		}
	}

	return urls
}

// UniqueURLs returns the normalized URLs with exact-string duplicates
// removed, first occurrence wins, order preserved.
func (c *Collector) UniqueURLs() []string {
	return dedupe(c.NormalizedURLs())
}

// NormalizeURL trims whitespace and prepends https:// when the text lacks
// an http:// or https:// prefix. Empty text normalizes to the empty string.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return trimmed
	}

	return "https://" + trimmed
}

// Validation is the outcome of checking the current entries. Fatal means at
// least one message blocks submission; informational messages do not.
type Validation struct {
	Messages []string
	Fatal    bool
}

// Validate checks the unique URL set and returns human-readable messages.
// Missing targets and malformed URLs are fatal; the deduplication notice is
// informational only.
func (c *Collector) Validate() Validation {
	normalized := c.NormalizedURLs()
	unique := dedupe(normalized)

	var v Validation

	if len(unique) == 0 {
		v.Messages = append(v.Messages, "no target URLs provided")
		v.Fatal = true
		return v
	}

	for i, u := range unique {
		if !wellFormed(u) {
			v.Messages = append(v.Messages, fmt.Sprintf("URL #%d has an invalid format: %s", i+1, u))
			v.Fatal = true
		}
	}

	if removed := len(normalized) - len(unique); removed > 0 {
		v.Messages = append(v.Messages, fmt.Sprintf("%d duplicate URL(s) removed automatically", removed))
	}

	return v
}

func wellFormed(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Host != ""
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		unique = append(unique, u)
	}

	return unique
}

func splitPastedText(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '\n', '\r', '\t', ',', ' ':
			return true
		}
		return false
	})
}
