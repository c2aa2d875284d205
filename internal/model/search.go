package model

// SearchResult is one navigable match of the global search.
type SearchResult struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EntityType  EntityType `json:"type"`
	PageLabel   string     `json:"page"`
	Link        string     `json:"link"`
	PageNumber  int        `json:"pageNumber"`
	Rank        int        `json:"-"` // lower sorts first
}
