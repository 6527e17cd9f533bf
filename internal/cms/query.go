package cms

import (
	"net/url"
	"strconv"
	"strings"
)

// Filter operators understood by the CMS.
const (
	OpEq       = "$eq"
	OpNe       = "$ne"
	OpContains = "$containsi"
	OpIn       = "$in"
	OpGt       = "$gt"
	OpLt       = "$lt"
	OpNull     = "$null"
)

type filter struct {
	field string
	op    string
	value string
}

// Query builds a CMS REST query string. The zero value is an empty query.
type Query struct {
	filters  []filter
	populate []string
	sort     []string
	fields   []string
	page     int
	pageSize int
}

// NewQuery returns an empty query.
func NewQuery() *Query { return &Query{} }

// Filter adds filters[a][b][op]=value for the dotted field path "a.b".
func (q *Query) Filter(field, op, value string) *Query {
	q.filters = append(q.filters, filter{field: field, op: op, value: value})
	return q
}

// Populate requests related entries to be inlined.
func (q *Query) Populate(relations ...string) *Query {
	q.populate = append(q.populate, relations...)
	return q
}

// Sort appends sort keys such as "name:asc".
func (q *Query) Sort(keys ...string) *Query {
	q.sort = append(q.sort, keys...)
	return q
}

// Fields restricts the returned attributes.
func (q *Query) Fields(names ...string) *Query {
	q.fields = append(q.fields, names...)
	return q
}

// Page selects a 1-based page and page size. Non-positive values are
// left to the server default.
func (q *Query) Page(page, size int) *Query {
	q.page = page
	q.pageSize = size
	return q
}

// Clone returns an independent copy.
func (q *Query) Clone() *Query {
	if q == nil {
		return NewQuery()
	}
	c := *q
	c.filters = append([]filter(nil), q.filters...)
	c.populate = append([]string(nil), q.populate...)
	c.sort = append([]string(nil), q.sort...)
	c.fields = append([]string(nil), q.fields...)
	return &c
}

// Values renders the query as url.Values.
func (q *Query) Values() url.Values {
	v := url.Values{}
	if q == nil {
		return v
	}
	for _, f := range q.filters {
		v.Add(filterKey(f.field, f.op), f.value)
	}
	for i, p := range q.populate {
		v.Set("populate["+strconv.Itoa(i)+"]", p)
	}
	for i, s := range q.sort {
		v.Set("sort["+strconv.Itoa(i)+"]", s)
	}
	for i, f := range q.fields {
		v.Set("fields["+strconv.Itoa(i)+"]", f)
	}
	if q.page > 0 {
		v.Set("pagination[page]", strconv.Itoa(q.page))
	}
	if q.pageSize > 0 {
		v.Set("pagination[pageSize]", strconv.Itoa(q.pageSize))
	}
	return v
}

// Encode renders the query string with keys in sorted order.
func (q *Query) Encode() string {
	return q.Values().Encode()
}

func filterKey(field, op string) string {
	var b strings.Builder
	b.WriteString("filters")
	for part := range strings.SplitSeq(field, ".") {
		if part == "" {
			continue
		}
		b.WriteString("[")
		b.WriteString(part)
		b.WriteString("]")
	}
	b.WriteString("[")
	b.WriteString(op)
	b.WriteString("]")
	return b.String()
}
