package search

import (
	"strings"
	"time"

	"github.com/altinukshini/assetflow-tui/internal/model"
)

// DefaultDebounce is the input quiet period before a search runs.
const DefaultDebounce = 300 * time.Millisecond

// Coordinator owns the global search state: the latest query, the result
// list, the selection cursor and whether the result panel is open.
//
// Once dismissed with Close, late debounce ticks and search responses still
// update the results but leave the panel closed until Reopen or new input.
//
// It does no timing itself. The caller schedules a tick of Debounce after
// each QueryChanged that asks for one and reports it back through Fire; each
// query change bumps the generation, so only the tick for the latest
// keystroke runs a search and only that search's results are accepted.
type Coordinator struct {
	Debounce time.Duration

	query   string
	gen     uint64
	results []model.SearchResult
	cursor  int
	open    bool
	loading bool
	// dismissed is set by Close and cleared by input or Reopen.
	dismissed bool
}

func NewCoordinator(debounce time.Duration) Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return Coordinator{Debounce: debounce}
}

// QueryChanged records new input. It returns the generation to schedule a
// debounce tick for, and false when no tick is needed because the query is
// blank (results are cleared and the panel closed immediately).
func (c *Coordinator) QueryChanged(text string) (uint64, bool) {
	c.query = text
	c.gen++
	c.loading = false
	c.dismissed = false
	if isBlank(text) {
		c.results = nil
		c.cursor = 0
		c.open = false
		return c.gen, false
	}
	return c.gen, true
}

// Fire is called when a debounce tick elapses. It returns the query to search
// for, or false when the tick belongs to a superseded keystroke.
func (c *Coordinator) Fire(gen uint64) (string, bool) {
	if gen != c.gen || isBlank(c.query) {
		return "", false
	}
	c.loading = true
	c.open = !c.dismissed
	return strings.TrimSpace(c.query), true
}

// Resolve installs search results. Results from a stale generation are
// discarded and Resolve reports false.
func (c *Coordinator) Resolve(gen uint64, results []model.SearchResult) bool {
	if gen != c.gen {
		return false
	}
	c.loading = false
	c.results = results
	c.cursor = 0
	c.open = !c.dismissed
	return true
}

// MoveDown advances the cursor, wrapping to the first result.
func (c *Coordinator) MoveDown() {
	if !c.open || len(c.results) == 0 {
		return
	}
	c.cursor = (c.cursor + 1) % len(c.results)
}

// MoveUp moves the cursor back, wrapping to the last result.
func (c *Coordinator) MoveUp() {
	if !c.open || len(c.results) == 0 {
		return
	}
	c.cursor = (c.cursor - 1 + len(c.results)) % len(c.results)
}

func (c *Coordinator) Select(i int) {
	if i >= 0 && i < len(c.results) {
		c.cursor = i
	}
}

func (c Coordinator) Selected() (model.SearchResult, bool) {
	if !c.open || c.cursor < 0 || c.cursor >= len(c.results) {
		return model.SearchResult{}, false
	}
	return c.results[c.cursor], true
}

// Activate returns the selected result, clears the query and closes the
// panel. The caller navigates to the result's link.
func (c *Coordinator) Activate() (model.SearchResult, bool) {
	r, ok := c.Selected()
	if !ok {
		return model.SearchResult{}, false
	}
	c.query = ""
	c.gen++
	c.results = nil
	c.cursor = 0
	c.open = false
	c.loading = false
	return r, true
}

// Close hides the result panel without touching the query.
func (c *Coordinator) Close() {
	c.open = false
	c.dismissed = true
}

// Reopen shows the panel again when there is a query to show results for.
func (c *Coordinator) Reopen() {
	c.dismissed = false
	if !isBlank(c.query) {
		c.open = true
	}
}

func (c Coordinator) Query() string                 { return c.query }
func (c Coordinator) Generation() uint64            { return c.gen }
func (c Coordinator) Results() []model.SearchResult { return c.results }
func (c Coordinator) Cursor() int                   { return c.cursor }
func (c Coordinator) IsOpen() bool                  { return c.open }
func (c Coordinator) IsLoading() bool               { return c.loading }

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
