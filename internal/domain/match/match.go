// Package match selects the records whose title contains a query title.
package match

import (
	"strings"

	"github.com/kailas-cloud/smuseum/internal/domain"
)

// Outcome is the result of matching a batch against a title.
// Count always equals len(Indices); Selected points at batch[Indices[0]] or is nil.
type Outcome struct {
	Count    int
	Indices  []int
	Selected *domain.Record
}

// Found reports whether at least one record matched.
func (o Outcome) Found() bool { return o.Count > 0 }

// Match walks the batch in order and keeps every record whose title contains
// title, ignoring case. Records without a title are skipped. The first match wins.
// An empty title matches every titled record.
func Match(batch domain.Batch, title string) Outcome {
	needle := strings.ToLower(title)

	var indices []int
	for i := range batch {
		if !batch[i].HasTitle() {
			continue
		}
		if strings.Contains(strings.ToLower(*batch[i].Title), needle) {
			indices = append(indices, i)
		}
	}

	out := Outcome{Count: len(indices), Indices: indices}
	if len(indices) > 0 {
		out.Selected = &batch[indices[0]]
	}
	return out
}
