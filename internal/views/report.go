// Package views derives read-only projections of the inventory: counts,
// report filtering, exports and the room detail breakdown. Every function is
// pure and recomputes its result from the collections it is given.
package views

import "homeinventory/pkg/domain"

// All is the filter sentinel meaning "no constraint".
const All = "all"

// InsuranceType narrows a report to fixtures or contents.
type InsuranceType string

// Insurance filter values.
const (
	InsuranceAll      InsuranceType = "all"
	InsuranceFixed    InsuranceType = "fixed"
	InsuranceContents InsuranceType = "contents"
)

// ReportFilter combines four optional constraints with AND. Empty fields and
// "all" leave that dimension unconstrained.
type ReportFilter struct {
	RoomID    string        `json:"roomId" form:"room"`
	Category  string        `json:"category" form:"category"`
	ProjectID string        `json:"projectId" form:"project"`
	Insurance InsuranceType `json:"insurance" form:"insurance"`
}

// Report is the filtered item list and its aggregated value.
type Report struct {
	Items      []domain.Item `json:"items"`
	Count      int           `json:"count"`
	TotalValue float64       `json:"totalValue"`
}

func unconstrained(v string) bool { return v == "" || v == All }

// Matches reports whether item satisfies every constraint in f.
func (f ReportFilter) Matches(item domain.Item) bool {
	if !unconstrained(f.RoomID) && item.RoomID != f.RoomID {
		return false
	}
	if !unconstrained(f.Category) && item.Category != f.Category {
		return false
	}
	if !unconstrained(f.ProjectID) && !item.HasProject(f.ProjectID) {
		return false
	}
	switch f.Insurance {
	case InsuranceFixed:
		return item.IsFixed
	case InsuranceContents:
		return !item.IsFixed
	}
	return true
}

// FilterReport keeps the items matching f in their original order and sums
// their values, counting a missing value as zero.
func FilterReport(items []domain.Item, f ReportFilter) Report {
	out := Report{Items: []domain.Item{}}
	for _, it := range items {
		if !f.Matches(it) {
			continue
		}
		out.Items = append(out.Items, it.Clone())
		out.TotalValue += it.ValueOrZero()
	}
	out.Count = len(out.Items)
	return out
}
