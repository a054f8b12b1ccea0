package hobbies

import (
	"fmt"
	"reflect"
)

// Page carries one page of listed records plus the counters needed to render
// the pagination block. Fields holds extra top level values the caller wants
// hoisted into the envelope.
type Page struct {
	Items   any
	Total   int
	PerPage int
	Current int
	Path    string
	Fields  map[string]any
}

// Count returns the number of items in this page
func (p *Page) Count() int {
	if p == nil || p.Items == nil {
		return 0
	}
	v := reflect.ValueOf(p.Items)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return v.Len()
	}
	return 1
}

// TotalPages returns the page count for Total at PerPage items each
func (p *Page) TotalPages() int {
	if p.PerPage <= 0 {
		return 0
	}
	pages := p.Total / p.PerPage
	if p.Total%p.PerPage != 0 {
		pages++
	}
	return pages
}

// NextURL returns the link to the following page, empty on the last page
func (p *Page) NextURL() string {
	if p.Current >= p.TotalPages() {
		return ""
	}
	return fmt.Sprintf("%s?page=%d&perPage=%d", p.Path, p.Current+1, p.PerPage)
}

// Block renders the pagination object included next to paginated data
func (p *Page) Block() map[string]any {
	block := map[string]any{
		"total":        p.Total,
		"per_page":     p.PerPage,
		"current_page": p.Current,
		"total_pages":  p.TotalPages(),
	}
	if next := p.NextURL(); next != "" {
		block["next_url"] = next
	}
	return block
}
