// Package highlight implements deep links into the data tables and the
// scroller that reveals and flashes the linked row once it is rendered.
package highlight

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ElementPrefix prefixes every highlightable row id.
const ElementPrefix = "highlight-"

// ElementID returns the row element id for an entity id.
func ElementID(id int64) string {
	return ElementPrefix + strconv.FormatInt(id, 10)
}

// Target is the highlight request carried by a link. An empty HighlightID
// means there is nothing to highlight; Page is 0 when the link has no page.
type Target struct {
	HighlightID string
	Page        int
}

func (t Target) Empty() bool {
	return t.HighlightID == ""
}

// ElementID returns the row element id the target points at.
func (t Target) ElementID() string {
	if t.Empty() {
		return ""
	}
	return ElementPrefix + t.HighlightID
}

// Route is a parsed link: the screen path and the highlight target.
type Route struct {
	Path   string
	Target Target
}

// Link builds "<route>?highlight=<id>&page=<page>". A page below 1 is
// omitted so the destination table computes it itself.
func Link(route string, id int64, page int) string {
	v := url.Values{}
	v.Set("highlight", strconv.FormatInt(id, 10))
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	return route + "?" + v.Encode()
}

// ParseLink parses a link produced by Link. A missing or malformed page is
// treated as absent rather than as an error.
func ParseLink(link string) (Route, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return Route{}, fmt.Errorf("parse link %q: %w", link, err)
	}
	path := u.Path
	if path == "" {
		return Route{}, fmt.Errorf("parse link %q: missing route", link)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	q := u.Query()
	target := Target{HighlightID: strings.TrimSpace(q.Get("highlight"))}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		target.Page = p
	}
	return Route{Path: path, Target: target}, nil
}
