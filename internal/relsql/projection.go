// Package relsql builds the single-round-trip SELECT statements used to
// hydrate an entity together with its eagerly loaded relations, and maps the
// flattened rows back into per-table field sets via prefixed column aliases.
package relsql

import "strings"

// Column is one projected column of a table. Cast, when set, is applied in
// the select list (NUMERIC columns carry "text" so the driver hands back a
// canonical string instead of a binary numeric).
type Column struct {
	Name string
	Cast string
}

// Projection is the ordered column list of one table participating in a
// joined query. Alias doubles as the column prefix: every column is selected
// as "<alias>.<name> AS <alias>_<name>" so a flattened multi-table row can be
// split back without name collisions.
type Projection struct {
	Table   string
	Alias   string
	Columns []Column
}

// Select returns the aliased select-list expressions in declaration order.
func (p Projection) Select() []string {
	out := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		var b strings.Builder
		b.WriteString(p.Alias)
		b.WriteString(".")
		b.WriteString(c.Name)
		if c.Cast != "" {
			b.WriteString("::")
			b.WriteString(c.Cast)
		}
		b.WriteString(" AS ")
		b.WriteString(p.Alias)
		b.WriteString("_")
		b.WriteString(c.Name)
		out[i] = b.String()
	}
	return out
}

func (p Projection) hasColumn(name string) bool {
	for _, c := range p.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}
