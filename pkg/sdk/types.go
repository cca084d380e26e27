package smuseum

// Museum describes a collection backend. Empty fields fall back to the
// Metropolitan Museum of Art.
type Museum struct {
	Name      string
	SearchURL string // artist is appended as the q parameter
	ObjectURL string // object id is appended as a path segment

	TitleField     string
	TotalField     string
	ObjectIDsField string
	ImageField     string
}

// Result is the answer to a lookup that reached the museum.
// Link is the image link when Found and a human-readable explanation otherwise.
type Result struct {
	Found      bool
	Reason     error // ErrNoArtistMatch or ErrNoTitleMatch when not Found
	Link       string
	Title      string
	Artist     string
	Total      int
	MatchCount int
	Museum     string
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
