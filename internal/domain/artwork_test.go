package domain

import (
	"errors"
	"testing"
)

func TestRecord_HasTitle(t *testing.T) {
	empty := ""
	title := "Irises"

	tests := []struct {
		name string
		r    Record
		want bool
	}{
		{"absent", Record{ID: 1}, false},
		{"empty", Record{ID: 1, Title: &empty}, false},
		{"present", Record{ID: 1, Title: &title}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.HasTitle(); got != tc.want {
				t.Errorf("HasTitle() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRecord_OrEmpty(t *testing.T) {
	r := Record{ID: 1}
	if r.TitleOrEmpty() != "" || r.ImageLinkOrEmpty() != "" {
		t.Errorf("expected empty strings for absent fields")
	}

	title, link := "Irises", "http://img/1"
	r = Record{ID: 1, Title: &title, ImageLink: &link}
	if r.TitleOrEmpty() != title {
		t.Errorf("TitleOrEmpty() = %q", r.TitleOrEmpty())
	}
	if r.ImageLinkOrEmpty() != link {
		t.Errorf("ImageLinkOrEmpty() = %q", r.ImageLinkOrEmpty())
	}
}

func TestSearchResult_Empty(t *testing.T) {
	if !(SearchResult{}).Empty() {
		t.Error("zero result must be empty")
	}
	if (SearchResult{Total: 3}).Empty() {
		t.Error("positive total without ids must not be empty")
	}
	if (SearchResult{Total: 1, ObjectIDs: []int{7}}).Empty() {
		t.Error("result with ids must not be empty")
	}
}

func TestMuseum_WithDefaults(t *testing.T) {
	m := Museum{Name: "custom", Fields: MuseumFields{Image: "primaryImageSmall"}}.WithDefaults()

	if m.Name != "custom" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Fields.Image != "primaryImageSmall" {
		t.Errorf("Fields.Image = %q", m.Fields.Image)
	}
	met := MetMuseum()
	if m.SearchURL != met.SearchURL || m.ObjectURL != met.ObjectURL {
		t.Errorf("urls not defaulted: %+v", m)
	}
	if m.Fields.Title != "title" || m.Fields.Total != "total" || m.Fields.ObjectIDs != "objectIDs" {
		t.Errorf("fields not defaulted: %+v", m.Fields)
	}
}

func TestRemoteError(t *testing.T) {
	err := NewRemoteError("search", 500, "Internal Server Error")

	if !errors.Is(err, ErrRemote) {
		t.Error("expected errors.Is(err, ErrRemote)")
	}
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatal("expected *RemoteError")
	}
	if re.StatusCode != 500 || re.Op != "search" {
		t.Errorf("unexpected fields: %+v", re)
	}
	want := "museum backend error: search: status 500: Internal Server Error"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	noStatus := NewRemoteError("fetch", 0, "connection refused")
	if noStatus.Error() != "museum backend error: fetch: connection refused" {
		t.Errorf("Error() = %q", noStatus.Error())
	}
}
