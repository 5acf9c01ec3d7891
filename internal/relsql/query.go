package relsql

import (
	"fmt"
	"strings"
)

// Join declares one eagerly loaded relation: the relation's projection plus
// the join predicate <primary>.<FK> = <relation alias>.<PK>. Joins are always
// LEFT OUTER so a null foreign key keeps the primary row in the result.
type Join struct {
	Rel Projection
	FK  string
	PK  string
}

// Page describes an ORDER BY / LIMIT / OFFSET slice over the primary table.
type Page struct {
	Limit  int64
	Offset int64
	Sort   string
	Desc   bool
}

// Query assembles SELECT statements for a primary table and its eager
// relations. The column list is the primary projection followed by each
// relation projection in join declaration order, which is the same order the
// row mappers expect their prefixes in.
type Query struct {
	Primary Projection
	Joins   []Join
}

func (q Query) selectFrom() *strings.Builder {
	cols := q.Primary.Select()
	for _, j := range q.Joins {
		cols = append(cols, j.Rel.Select()...)
	}
	b := &strings.Builder{}
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.Primary.Table)
	b.WriteString(" ")
	b.WriteString(q.Primary.Alias)
	for _, j := range q.Joins {
		fmt.Fprintf(b, " LEFT OUTER JOIN %s %s ON %s.%s = %s.%s",
			j.Rel.Table, j.Rel.Alias, q.Primary.Alias, j.FK, j.Rel.Alias, j.PK)
	}
	return b
}

// SelectByID returns the hydration query filtered by the primary table's
// identifier; the id value is bound as $1.
func (q Query) SelectByID() string {
	b := q.selectFrom()
	fmt.Fprintf(b, " WHERE %s.id = $1", q.Primary.Alias)
	return b.String()
}

// SelectAll returns the hydration query over the whole table, optionally
// paged. A nil page yields the unbounded result set. The sort key must be a
// declared column of the primary projection (ORDER BY cannot be bound as a
// statement parameter, so unknown keys are rejected instead of interpolated);
// limit and offset are bound as $1 and $2.
func (q Query) SelectAll(page *Page) (string, []any, error) {
	b := q.selectFrom()
	if page == nil {
		return b.String(), nil, nil
	}
	sort := page.Sort
	if sort == "" {
		sort = "id"
	}
	if !q.Primary.hasColumn(sort) {
		return "", nil, fmt.Errorf("relsql: unknown sort column %q on table %s", sort, q.Primary.Table)
	}
	dir := "ASC"
	if page.Desc {
		dir = "DESC"
	}
	limit := page.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	fmt.Fprintf(b, " ORDER BY %s.%s %s LIMIT $1 OFFSET $2", q.Primary.Alias, sort, dir)
	return b.String(), []any{limit, offset}, nil
}
