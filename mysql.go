package quarry

import "strings"

// MysqlQueryBuilder renders statements in MySQL syntax.
type MysqlQueryBuilder struct {
	CommonQueryBuilder
}

// NewMysqlQueryBuilder returns a MySQL builder.
func NewMysqlQueryBuilder() *MysqlQueryBuilder {
	b := &MysqlQueryBuilder{}
	b.self = b
	return b
}

// Dialect returns "MySQL".
func (b *MysqlQueryBuilder) Dialect() string { return "MySQL" }

// Capabilities returns the MySQL feature surface.
func (b *MysqlQueryBuilder) Capabilities() Capabilities {
	return Capabilities{
		RowLocking:         true,
		IndexHints:         true,
		ParenthesizedUnion: true,
		ValuesRowKeyword:   true,
		ReplaceInsert:      true,
		InsertIgnore:       true,
		AnySubQueryOp:      true,
	}
}

// Quote returns backtick identifier quoting.
func (b *MysqlQueryBuilder) Quote() Quote { return Quote{Left: '`', Right: '`'} }

var mysqlEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	"\x00", `\0`,
	"\b", `\b`,
	"\t", `\t`,
	"\x1a", `\z`,
	"\n", `\n`,
	"\r", `\r`,
)

// EscapeString escapes with backslashes, the MySQL convention.
func (b *MysqlQueryBuilder) EscapeString(s string) string {
	return mysqlEscaper.Replace(s)
}

// FunctionName spells the random function RAND.
func (b *MysqlQueryBuilder) FunctionName(f FuncIden) string {
	if f.kind == funcRandom {
		return "RAND"
	}
	return b.CommonQueryBuilder.FunctionName(f)
}

// PrepareOrderExpr emulates NULLS FIRST/LAST with an IS NULL sort key
// prefix; MySQL has no native NULLS placement.
func (b *MysqlQueryBuilder) PrepareOrderExpr(o OrderExpr, w SqlWriter) {
	if o.nulls != nil {
		b.self.PrepareExpr(o.expr, w)
		if *o.nulls == NullsFirst {
			w.WriteString(" IS NULL DESC, ")
		} else {
			w.WriteString(" IS NULL ASC, ")
		}
	}
	b.prepareOrderDirection(o, w)
}

// PrepareOnConflict renders ON DUPLICATE KEY UPDATE. The conflict target
// and WHERE restrictions have no MySQL equivalent and are dropped; a
// targetless DO NOTHING never reaches here because the insert renders
// INSERT IGNORE instead.
func (b *MysqlQueryBuilder) PrepareOnConflict(oc *OnConflict, w SqlWriter) {
	if oc == nil || oc.actionKind == onConflictActionNone {
		return
	}
	if oc.actionKind == onConflictActionDoNothing && len(oc.pkCols) == 0 {
		return
	}
	w.WriteString(" ON DUPLICATE KEY UPDATE ")
	if oc.actionKind == onConflictActionDoNothing {
		for i, col := range oc.pkCols {
			if i > 0 {
				w.WriteString(", ")
			}
			b.self.PrepareIden(col, w)
			w.WriteString(" = ")
			b.self.PrepareIden(col, w)
		}
		return
	}
	for i, u := range oc.updates {
		if i > 0 {
			w.WriteString(", ")
		}
		b.self.PrepareIden(u.col, w)
		w.WriteString(" = ")
		if u.kind == onConflictUpdateColumn {
			w.WriteString("VALUES(")
			b.self.PrepareIden(u.col, w)
			w.WriteString(")")
		} else {
			b.self.PrepareExpr(u.expr, w)
		}
	}
}

// PrepareUpdateStatement rewrites UPDATE ... FROM into MySQL's
// multi-table UPDATE: the first extra source becomes a JOIN whose ON
// condition is the statement's WHERE clause, and the SET targets are
// table-qualified to stay unambiguous.
func (b *MysqlQueryBuilder) PrepareUpdateStatement(s *UpdateStatement, w SqlWriter) {
	if len(s.from) == 0 {
		b.CommonQueryBuilder.PrepareUpdateStatement(s, w)
		return
	}
	if s.with != nil {
		b.self.PrepareWithClause(s.with, w)
	}
	w.WriteString("UPDATE ")
	if s.table == nil {
		panic("quarry: UPDATE requires a target table")
	}
	b.self.PrepareTableRef(*s.table, w)
	w.WriteString(" JOIN ")
	b.self.PrepareTableRef(s.from[0], w)
	b.self.PrepareCondition(&s.where, "ON", w)
	b.prepareUpdateSet(s, true, w)
	b.prepareOrderLimit(s.orders, s.limit, w)
}
