package cloudstore

import (
	"net/url"
	"strings"
)

// Query builds the PostgREST-style query string: equality filters as
// field=eq.value, ordering as order=field.direction, column projection and
// embedded relations through select.
type Query struct {
	selectExpr string
	filters    [][2]string
	order      string
}

func NewQuery() *Query {
	return &Query{selectExpr: "*"}
}

func (q *Query) Select(expr string) *Query {
	if strings.TrimSpace(expr) != "" {
		q.selectExpr = expr
	}
	return q
}

func (q *Query) Eq(field, value string) *Query {
	q.filters = append(q.filters, [2]string{field, value})
	return q
}

func (q *Query) OrderAsc(field string) *Query {
	q.order = field + ".asc"
	return q
}

func (q *Query) OrderDesc(field string) *Query {
	q.order = field + ".desc"
	return q
}

// Encode renders the query string without a leading separator. Filter order
// is preserved as given.
func (q *Query) Encode() string {
	var b strings.Builder
	b.WriteString("select=")
	b.WriteString(url.QueryEscape(q.selectExpr))
	for _, f := range q.filters {
		b.WriteString("&")
		b.WriteString(url.QueryEscape(f[0]))
		b.WriteString("=eq.")
		b.WriteString(url.QueryEscape(f[1]))
	}
	if q.order != "" {
		b.WriteString("&order=")
		b.WriteString(url.QueryEscape(q.order))
	}
	return b.String()
}
