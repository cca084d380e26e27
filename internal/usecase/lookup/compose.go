package lookup

import (
	"fmt"

	"github.com/kailas-cloud/smuseum/internal/domain"
	"github.com/kailas-cloud/smuseum/internal/domain/match"
)

// Status is the outcome of a lookup that reached the museum.
type Status string

const (
	// StatusOK means a record titled like the query was found.
	StatusOK Status = "ok"
	// StatusNotFound means either the artist or the title had no match.
	StatusNotFound Status = "not_found"
)

// Result is the lookup answer. Link holds the image link on success and a
// human-readable explanation otherwise.
type Result struct {
	Status     Status
	Reason     error // domain.ErrNoArtistMatch or domain.ErrNoTitleMatch when not found
	Link       string
	Title      string
	Artist     string
	Total      int
	MatchCount int
	Museum     string
}

func composeNoArtist(q domain.Query, total int, museum string) Result {
	return Result{
		Status: StatusNotFound,
		Reason: domain.ErrNoArtistMatch,
		Link:   fmt.Sprintf("no artworks by artist %q at museum %s", q.Artist, museum),
		Title:  q.Title,
		Artist: q.Artist,
		Total:  total,
		Museum: museum,
	}
}

func composeNoTitle(q domain.Query, total int, museum string) Result {
	return Result{
		Status: StatusNotFound,
		Reason: domain.ErrNoTitleMatch,
		Link: fmt.Sprintf("artist has %d works at museum %s but none titled like %q",
			total, museum, q.Title),
		Title:  q.Title,
		Artist: q.Artist,
		Total:  total,
		Museum: museum,
	}
}

func composeFound(q domain.Query, total int, out match.Outcome, museum string) Result {
	return Result{
		Status:     StatusOK,
		Link:       out.Selected.ImageLinkOrEmpty(),
		Title:      q.Title,
		Artist:     q.Artist,
		Total:      total,
		MatchCount: out.Count,
		Museum:     museum,
	}
}
