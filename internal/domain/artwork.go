package domain

import "encoding/json"

// Query is an incoming lookup request. Both fields are free text and may be empty.
type Query struct {
	Title  string
	Artist string
}

// SearchResult is the answer of an artist search: the upstream total and the object ids.
type SearchResult struct {
	Total     int
	ObjectIDs []int
}

// Empty reports whether the artist search found nothing. Only the total
// decides: a positive total with no ids is not empty.
func (r SearchResult) Empty() bool {
	return r.Total == 0
}

// Record is one artwork as returned by the per-object fetch.
// Title and ImageLink are optional upstream; every other field is kept in Extra.
type Record struct {
	ID        int                        `json:"id"`
	Title     *string                    `json:"title,omitempty"`
	ImageLink *string                    `json:"imageLink,omitempty"`
	Extra     map[string]json.RawMessage `json:"extra,omitempty"`
}

// HasTitle reports whether the record carries a non-empty title.
func (r *Record) HasTitle() bool {
	return r.Title != nil && *r.Title != ""
}

// TitleOrEmpty returns the title or "" when absent.
func (r *Record) TitleOrEmpty() string {
	if r.Title == nil {
		return ""
	}
	return *r.Title
}

// ImageLinkOrEmpty returns the image link or "" when absent.
func (r *Record) ImageLinkOrEmpty() string {
	if r.ImageLink == nil {
		return ""
	}
	return *r.ImageLink
}

// Batch holds one record per fetched object id, in search order. Every searched
// id is fetched unless a max-objects cap truncates the id list.
type Batch []Record
