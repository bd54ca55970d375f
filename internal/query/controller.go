package query

import (
	"github.com/five82/stories/internal/catalog"
	"github.com/five82/stories/internal/persist"
)

// Controller owns the draft search term and the committed query URL. The
// draft follows every keystroke; the committed URL only moves on Submit or
// Mount.
type Controller struct {
	term      *persist.Value
	endpoint  string
	committed string
	commits   uint64
}

// NewController builds a controller over a persisted term.
func NewController(term *persist.Value, endpoint string) *Controller {
	return &Controller{term: term, endpoint: endpoint}
}

// DraftTerm returns the term as currently typed.
func (c *Controller) DraftTerm() string {
	return c.term.Get()
}

// SetDraftTerm assigns the draft term and persists it. The committed URL is
// left alone.
func (c *Controller) SetDraftTerm(value string) error {
	return c.term.Set(value)
}

// CommittedURL returns the URL of the latest commit, or "" before Mount.
func (c *Controller) CommittedURL() string {
	return c.committed
}

// Commits returns how many commits have been published.
func (c *Controller) Commits() uint64 {
	return c.commits
}

// Submit derives the URL from the current draft and commits it. Submitting
// an unchanged term commits an identical URL, which callers must still
// fetch.
func (c *Controller) Submit() string {
	c.committed = catalog.QueryURL(c.endpoint, c.term.Get())
	c.commits++
	return c.committed
}

// Mount performs the initial commit.
func (c *Controller) Mount() string {
	return c.Submit()
}
