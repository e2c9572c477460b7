// Package listview presents a loaded collection: client-side substring
// filtering and server-driven pagination arithmetic.
package listview

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Filter returns the rows whose named display fields contain q,
// case-insensitively. It only ever looks at the in-memory rows; it never
// re-queries the backend. An empty result is a valid empty state, not an
// error.
func Filter(rows []map[string]interface{}, fields []string, q string) []map[string]interface{} {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if matches(row, fields, q) {
			out = append(out, row)
		}
	}
	return out
}

func matches(row map[string]interface{}, fields []string, q string) bool {
	for _, fld := range fields {
		var s string
		switch v := row[fld].(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			continue
		}
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// Pagination describes server-driven paging: page and size go out as query
// parameters, the backend reports the total.
type Pagination struct {
	Page     int
	PageSize int
	Total    int
}

func NewPagination(pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = 20
	}
	return Pagination{Page: 1, PageSize: pageSize}
}

// PageCount derives the displayed page count from the backend-reported total.
func (p Pagination) PageCount() int {
	if p.PageSize <= 0 {
		return 1
	}
	n := int(math.Ceil(float64(p.Total) / float64(p.PageSize)))
	if n < 1 {
		return 1
	}
	return n
}

// Query encodes the paging parameters.
func (p Pagination) Query() url.Values {
	v := make(url.Values)
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("pageSize", strconv.Itoa(p.PageSize))
	return v
}
