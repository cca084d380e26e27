package domain

// KeyPrefix is the default namespace for keys written to the cache store.
const KeyPrefix = "smuseum:"

// MuseumFields names the upstream JSON fields the lookup reads.
type MuseumFields struct {
	Title     string
	Total     string
	ObjectIDs string
	Image     string
}

// Museum describes one collection backend. Only one is wired at a time.
type Museum struct {
	Name      string
	SearchURL string
	ObjectURL string
	Fields    MuseumFields
}

// MetMuseum returns the Metropolitan Museum of Art collection API definition.
func MetMuseum() Museum {
	return Museum{
		Name:      "MET",
		SearchURL: "https://collectionapi.metmuseum.org/public/collection/v1/search?hasImages=true&artistOrCulture=true",
		ObjectURL: "https://collectionapi.metmuseum.org/public/collection/v1/objects/",
		Fields: MuseumFields{
			Title:     "title",
			Total:     "total",
			ObjectIDs: "objectIDs",
			Image:     "primaryImage",
		},
	}
}

// WithDefaults fills empty values from the MET definition.
func (m Museum) WithDefaults() Museum {
	def := MetMuseum()
	if m.Name == "" {
		m.Name = def.Name
	}
	if m.SearchURL == "" {
		m.SearchURL = def.SearchURL
	}
	if m.ObjectURL == "" {
		m.ObjectURL = def.ObjectURL
	}
	if m.Fields.Title == "" {
		m.Fields.Title = def.Fields.Title
	}
	if m.Fields.Total == "" {
		m.Fields.Total = def.Fields.Total
	}
	if m.Fields.ObjectIDs == "" {
		m.Fields.ObjectIDs = def.Fields.ObjectIDs
	}
	if m.Fields.Image == "" {
		m.Fields.Image = def.Fields.Image
	}
	return m
}
