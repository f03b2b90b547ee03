package audit

import "strings"

// PageSize is the fixed number of records per viewer page.
const PageSize = 10

// Viewer is the searchable, paginated presentation over a fetched record
// set. It is pure in-memory state: the query service fetches, the viewer
// filters and pages, the reconstructor renders rows.
type Viewer struct {
	records  []Record
	filtered []Record
	term     string
	page     int
}

// NewViewer wraps a record set, starting unfiltered on page 1.
func NewViewer(records []Record) *Viewer {
	v := &Viewer{page: 1}
	v.SetRecords(records)
	return v
}

// SetRecords replaces the backing set (e.g. after a refetch or delete),
// re-applies the current search term, and clamps the current page.
func (v *Viewer) SetRecords(records []Record) {
	v.records = records
	v.applyFilter()
	v.clampPage()
}

// Search filters case-insensitively against the actor name and the displayed
// timestamp string, and resets to page 1. Empty or whitespace-only terms
// restore the full set.
func (v *Viewer) Search(term string) {
	v.term = strings.TrimSpace(term)
	v.applyFilter()
	v.page = 1
	v.clampPage()
}

func (v *Viewer) applyFilter() {
	if v.term == "" {
		v.filtered = v.records
		return
	}
	needle := strings.ToLower(v.term)
	filtered := make([]Record, 0, len(v.records))
	for _, rec := range v.records {
		if strings.Contains(strings.ToLower(rec.ActorDisplayName()), needle) ||
			strings.Contains(strings.ToLower(DisplayTime(rec.Timestamp)), needle) {
			filtered = append(filtered, rec)
		}
	}
	v.filtered = filtered
}

// Term returns the active search term.
func (v *Viewer) Term() string { return v.term }

// TotalRecords returns the filtered record count.
func (v *Viewer) TotalRecords() int { return len(v.filtered) }

// TotalPages returns ceil(filtered/PageSize); 0 when there are no results.
func (v *Viewer) TotalPages() int {
	return (len(v.filtered) + PageSize - 1) / PageSize
}

// CurrentPage returns the current 1-based page. Always >= 1, even with zero
// results.
func (v *Viewer) CurrentPage() int { return v.page }

// SetPage navigates to a page, clamping into the valid range.
func (v *Viewer) SetPage(page int) {
	v.page = page
	v.clampPage()
}

func (v *Viewer) clampPage() {
	if total := v.TotalPages(); v.page > total {
		v.page = total
	}
	if v.page < 1 {
		v.page = 1
	}
}

// Page returns the records on the current page.
func (v *Viewer) Page() []Record {
	start := (v.page - 1) * PageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}
