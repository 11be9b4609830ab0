package quarry

import (
	"fmt"
)

// CommonQueryBuilder is the shared traversal all dialects embed. The
// self pointer re-enters the outermost dialect at every recursion site,
// so an embedding dialect's overrides win even deep inside the walk.
type CommonQueryBuilder struct {
	self QueryBuilder
}

// Dialect is overridden by every concrete dialect.
func (c *CommonQueryBuilder) Dialect() string { return "SQL" }

// Capabilities is overridden by every concrete dialect.
func (c *CommonQueryBuilder) Capabilities() Capabilities { return Capabilities{} }

// Placeholder returns the unnumbered `?` convention.
func (c *CommonQueryBuilder) Placeholder() (string, bool) { return "?", false }

// Quote returns double-quote identifier quoting.
func (c *CommonQueryBuilder) Quote() Quote { return Quote{Left: '"', Right: '"'} }

func (c *CommonQueryBuilder) unsupported(feature string) string {
	return fmt.Sprintf("quarry: %s does not support %s", c.self.Dialect(), feature)
}

// PrepareQueryStatement renders any statement kind, dispatching through
// the dialect.
func (c *CommonQueryBuilder) PrepareQueryStatement(s SubQueryStatement, w SqlWriter) {
	switch st := s.(type) {
	case *SelectStatement:
		c.self.PrepareSelectStatement(st, w)
	case *InsertStatement:
		c.self.PrepareInsertStatement(st, w)
	case *UpdateStatement:
		c.self.PrepareUpdateStatement(st, w)
	case *DeleteStatement:
		c.self.PrepareDeleteStatement(st, w)
	case *WithQuery:
		c.self.PrepareWithQuery(st, w)
	}
}

// PrepareSelectStatement renders a SELECT in fixed clause order.
func (c *CommonQueryBuilder) PrepareSelectStatement(s *SelectStatement, w SqlWriter) {
	caps := c.self.Capabilities()
	if s.with != nil {
		c.self.PrepareWithClause(s.with, w)
	}
	w.WriteString("SELECT ")
	switch s.distinct {
	case distinctAll:
		w.WriteString("ALL ")
	case distinctDistinct:
		w.WriteString("DISTINCT ")
	case distinctRow:
		w.WriteString("DISTINCTROW ")
	}
	for i, se := range s.selects {
		if i > 0 {
			w.WriteString(", ")
		}
		c.prepareSelectExpr(se, w)
	}
	if len(s.from) > 0 {
		w.WriteString(" FROM ")
		for i, t := range s.from {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareTableRef(t, w)
		}
		if caps.IndexHints {
			c.prepareIndexHints(s.indexHints, w)
		}
	}
	for _, j := range s.joins {
		c.prepareJoin(j, w)
	}
	c.self.PrepareCondition(&s.where, "WHERE", w)
	if len(s.groups) > 0 {
		w.WriteString(" GROUP BY ")
		for i, g := range s.groups {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareExpr(g, w)
		}
	}
	c.self.PrepareCondition(&s.having, "HAVING", w)
	for _, u := range s.unions {
		w.WriteString(" " + u.typ.Spelling() + " ")
		if caps.ParenthesizedUnion {
			w.WriteString("(")
			c.self.PrepareSelectStatement(u.stmt, w)
			w.WriteString(")")
		} else {
			c.self.PrepareSelectStatement(u.stmt, w)
		}
	}
	if len(s.orders) > 0 {
		w.WriteString(" ORDER BY ")
		for i, o := range s.orders {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareOrderExpr(o, w)
		}
	}
	if s.limit != nil {
		w.WriteString(" LIMIT ")
		c.self.PrepareValue(*s.limit, w)
	}
	if s.offset != nil {
		w.WriteString(" OFFSET ")
		c.self.PrepareValue(*s.offset, w)
	}
	if s.lock != nil && caps.RowLocking {
		c.prepareSelectLock(*s.lock, w)
	}
	for i, nw := range s.windows {
		if i == 0 {
			w.WriteString(" WINDOW ")
		} else {
			w.WriteString(", ")
		}
		c.self.PrepareIden(nw.name, w)
		w.WriteString(" AS (")
		c.prepareWindowStatement(&nw.stmt, w)
		w.WriteString(")")
	}
}

func (c *CommonQueryBuilder) prepareSelectExpr(se SelectExpr, w SqlWriter) {
	c.self.PrepareExpr(se.expr, w)
	if se.window != nil {
		w.WriteString(" OVER ")
		if se.window.inline != nil {
			w.WriteString("( ")
			c.prepareWindowStatement(se.window.inline, w)
			w.WriteString(" )")
		} else {
			c.self.PrepareIden(se.window.name, w)
		}
	}
	if se.alias != "" {
		w.WriteString(" AS ")
		c.self.PrepareIden(se.alias, w)
	}
}

func (c *CommonQueryBuilder) prepareJoin(j JoinExpr, w SqlWriter) {
	if j.join == FullOuterJoin && !c.self.Capabilities().FullOuterJoin {
		panic(c.unsupported("FULL OUTER JOIN"))
	}
	w.WriteString(" " + j.join.Spelling() + " ")
	if j.lateral {
		w.WriteString("LATERAL ")
	}
	c.self.PrepareTableRef(j.table, w)
	if j.on != nil {
		c.self.PrepareCondition(j.on, "ON", w)
	}
}

func (c *CommonQueryBuilder) prepareIndexHints(hints []IndexHint, w SqlWriter) {
	for _, h := range hints {
		w.WriteString(" " + h.Type.Spelling())
		if scope := h.Scope.Spelling(); scope != "" {
			w.WriteString(" " + scope)
		}
		w.WriteString(" (")
		c.self.PrepareIden(h.Index, w)
		w.WriteString(")")
	}
}

func (c *CommonQueryBuilder) prepareSelectLock(l LockClause, w SqlWriter) {
	w.WriteString(" FOR " + l.typ.Spelling())
	if len(l.tables) > 0 {
		w.WriteString(" OF ")
		for i, t := range l.tables {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareTableRef(t, w)
		}
	}
	switch l.behavior {
	case LockNowait:
		w.WriteString(" NOWAIT")
	case LockSkipLocked:
		w.WriteString(" SKIP LOCKED")
	}
}

func (c *CommonQueryBuilder) prepareWindowStatement(ws *WindowStatement, w SqlWriter) {
	if len(ws.partitionBy) > 0 {
		w.WriteString("PARTITION BY ")
		for i, e := range ws.partitionBy {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareExpr(e, w)
		}
	}
	if len(ws.orderBy) > 0 {
		w.WriteString(" ORDER BY ")
		for i, o := range ws.orderBy {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareOrderExpr(o, w)
		}
	}
	if ws.frame != nil {
		if ws.frame.typ == FrameRows {
			w.WriteString(" ROWS ")
		} else {
			w.WriteString(" RANGE ")
		}
		if ws.frame.end != nil {
			w.WriteString("BETWEEN ")
			c.prepareFrameBound(ws.frame.start, w)
			w.WriteString(" AND ")
			c.prepareFrameBound(*ws.frame.end, w)
		} else {
			c.prepareFrameBound(ws.frame.start, w)
		}
	}
}

func (c *CommonQueryBuilder) prepareFrameBound(b FrameBound, w SqlWriter) {
	switch b.kind {
	case frameCurrentRow:
		w.WriteString("CURRENT ROW")
	case framePreceding:
		c.self.PrepareValue(b.offset, w)
		w.WriteString(" PRECEDING")
	case frameFollowing:
		c.self.PrepareValue(b.offset, w)
		w.WriteString(" FOLLOWING")
	case frameUnboundedPreceding:
		w.WriteString("UNBOUNDED PRECEDING")
	case frameUnboundedFollowing:
		w.WriteString("UNBOUNDED FOLLOWING")
	}
}

// PrepareInsertStatement renders an INSERT or REPLACE.
func (c *CommonQueryBuilder) PrepareInsertStatement(s *InsertStatement, w SqlWriter) {
	caps := c.self.Capabilities()
	if s.with != nil {
		c.self.PrepareWithClause(s.with, w)
	}
	insertIgnore := caps.InsertIgnore && s.onConflict != nil &&
		s.onConflict.actionKind == onConflictActionDoNothing && len(s.onConflict.pkCols) == 0
	switch {
	case s.replace:
		if !caps.ReplaceInsert {
			panic(c.unsupported("REPLACE INTO"))
		}
		w.WriteString("REPLACE")
	case insertIgnore:
		w.WriteString("INSERT IGNORE")
	default:
		w.WriteString("INSERT")
	}
	w.WriteString(" INTO ")
	if s.table == nil {
		panic("quarry: INSERT requires a target table")
	}
	c.self.PrepareTableRef(*s.table, w)
	if s.defaultValues > 0 && len(s.columns) == 0 && s.source == nil && len(s.rows) == 0 {
		if caps.DefaultValuesKeyword {
			w.WriteString(" DEFAULT VALUES")
		} else {
			w.WriteString(" VALUES ")
			for i := uint32(0); i < s.defaultValues; i++ {
				if i > 0 {
					w.WriteString(", ")
				}
				w.WriteString("(DEFAULT)")
			}
		}
	} else {
		w.WriteString(" (")
		for i, col := range s.columns {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareIden(col, w)
		}
		w.WriteString(")")
		if s.source != nil {
			w.WriteString(" ")
			c.self.PrepareSelectStatement(s.source, w)
		} else {
			w.WriteString(" VALUES ")
			for i, row := range s.rows {
				if i > 0 {
					w.WriteString(", ")
				}
				w.WriteString("(")
				for j, e := range row {
					if j > 0 {
						w.WriteString(", ")
					}
					c.self.PrepareExpr(e, w)
				}
				w.WriteString(")")
			}
		}
	}
	if s.onConflict != nil && !insertIgnore {
		c.self.PrepareOnConflict(s.onConflict, w)
	}
	if s.returning != nil && caps.Returning {
		c.self.PrepareReturning(s.returning, w)
	}
}

// PrepareUpdateStatement renders an UPDATE with FROM sources after SET.
func (c *CommonQueryBuilder) PrepareUpdateStatement(s *UpdateStatement, w SqlWriter) {
	caps := c.self.Capabilities()
	if s.with != nil {
		c.self.PrepareWithClause(s.with, w)
	}
	w.WriteString("UPDATE ")
	if s.table == nil {
		panic("quarry: UPDATE requires a target table")
	}
	c.self.PrepareTableRef(*s.table, w)
	c.prepareUpdateSet(s, false, w)
	if len(s.from) > 0 {
		w.WriteString(" FROM ")
		for i, t := range s.from {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareTableRef(t, w)
		}
	}
	c.self.PrepareCondition(&s.where, "WHERE", w)
	c.prepareOrderLimit(s.orders, s.limit, w)
	if s.returning != nil && caps.Returning {
		c.self.PrepareReturning(s.returning, w)
	}
}

// prepareUpdateSet renders the SET body. When qualify is set and the
// target is a bare un-aliased table, the left side is table-qualified;
// the MySQL JOIN rewrite needs that to keep references unambiguous.
func (c *CommonQueryBuilder) prepareUpdateSet(s *UpdateStatement, qualify bool, w SqlWriter) {
	w.WriteString(" SET ")
	for i, p := range s.values {
		if i > 0 {
			w.WriteString(", ")
		}
		if qualify && s.table.kind == tableRefTable && s.table.alias == "" && s.table.name.Schema == "" {
			c.self.PrepareIden(Name(s.table.name.Name), w)
			w.WriteString(".")
		}
		c.self.PrepareIden(p.col, w)
		w.WriteString(" = ")
		c.self.PrepareExpr(p.expr, w)
	}
}

func (c *CommonQueryBuilder) prepareOrderLimit(orders []OrderExpr, limit *Value, w SqlWriter) {
	if len(orders) > 0 {
		w.WriteString(" ORDER BY ")
		for i, o := range orders {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareOrderExpr(o, w)
		}
	}
	if limit != nil {
		w.WriteString(" LIMIT ")
		c.self.PrepareValue(*limit, w)
	}
}

// PrepareDeleteStatement renders a DELETE.
func (c *CommonQueryBuilder) PrepareDeleteStatement(s *DeleteStatement, w SqlWriter) {
	caps := c.self.Capabilities()
	if s.with != nil {
		c.self.PrepareWithClause(s.with, w)
	}
	w.WriteString("DELETE FROM ")
	if s.table == nil {
		panic("quarry: DELETE requires a target table")
	}
	c.self.PrepareTableRef(*s.table, w)
	c.self.PrepareCondition(&s.where, "WHERE", w)
	c.prepareOrderLimit(s.orders, s.limit, w)
	if s.returning != nil && caps.Returning {
		c.self.PrepareReturning(s.returning, w)
	}
}

// PrepareWithQuery renders a WITH clause followed by its statement.
func (c *CommonQueryBuilder) PrepareWithQuery(q *WithQuery, w SqlWriter) {
	c.self.PrepareWithClause(&q.with, w)
	c.self.PrepareQueryStatement(q.stmt, w)
}

// PrepareWithClause renders WITH [RECURSIVE] and its CTE list, plus
// SEARCH/CYCLE options where the dialect supports them.
func (c *CommonQueryBuilder) PrepareWithClause(cl *WithClause, w SqlWriter) {
	caps := c.self.Capabilities()
	w.WriteString("WITH ")
	if cl.recursive {
		w.WriteString("RECURSIVE ")
	}
	for i := range cl.ctes {
		if i > 0 {
			w.WriteString(", ")
		}
		c.prepareCte(&cl.ctes[i], w)
	}
	w.WriteString(" ")
	if caps.RecursiveSearchCycle {
		if cl.search != nil {
			if cl.search.Order == SearchBreadthFirst {
				w.WriteString("SEARCH BREADTH FIRST BY ")
			} else {
				w.WriteString("SEARCH DEPTH FIRST BY ")
			}
			c.self.PrepareExpr(cl.search.By, w)
			w.WriteString(" SET ")
			c.self.PrepareIden(cl.search.Set, w)
			w.WriteString(" ")
		}
		if cl.cycle != nil {
			w.WriteString("CYCLE ")
			c.self.PrepareExpr(cl.cycle.Expr, w)
			w.WriteString(" SET ")
			c.self.PrepareIden(cl.cycle.Set, w)
			w.WriteString(" USING ")
			c.self.PrepareIden(cl.cycle.Using, w)
			w.WriteString(" ")
		}
	}
}

func (c *CommonQueryBuilder) prepareCte(cte *CommonTableExpression, w SqlWriter) {
	caps := c.self.Capabilities()
	c.self.PrepareIden(cte.table, w)
	if len(cte.cols) > 0 {
		w.WriteString(" (")
		for i, col := range cte.cols {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareIden(col, w)
		}
		w.WriteString(")")
	}
	w.WriteString(" AS ")
	if cte.materialized != nil && caps.MaterializedCte {
		if *cte.materialized {
			w.WriteString("MATERIALIZED ")
		} else {
			w.WriteString("NOT MATERIALIZED ")
		}
	}
	w.WriteString("(")
	if cte.queryKind == cteQueryValues {
		c.prepareValuesRows(cte.values, w)
	} else {
		c.self.PrepareQueryStatement(cte.query, w)
	}
	w.WriteString(")")
}

// prepareValuesRows renders a VALUES rows list, with the dialect's row
// keyword when used as a table source.
func (c *CommonQueryBuilder) prepareValuesRows(rows [][]Value, w SqlWriter) {
	caps := c.self.Capabilities()
	w.WriteString("VALUES ")
	for i, row := range rows {
		if i > 0 {
			w.WriteString(", ")
		}
		if caps.ValuesRowKeyword {
			w.WriteString("ROW")
		}
		w.WriteString("(")
		for j, v := range row {
			if j > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareValue(v, w)
		}
		w.WriteString(")")
	}
}

// PrepareTableRef renders a table source with its alias.
func (c *CommonQueryBuilder) PrepareTableRef(t TableRef, w SqlWriter) {
	switch t.kind {
	case tableRefTable:
		if t.name.Schema != "" {
			c.self.PrepareIden(Name(t.name.Schema), w)
			w.WriteString(".")
		}
		c.self.PrepareIden(Name(t.name.Name), w)
	case tableRefSubQuery:
		w.WriteString("(")
		c.self.PrepareSelectStatement(t.sub, w)
		w.WriteString(")")
	case tableRefValuesList:
		w.WriteString("(")
		c.prepareValuesRows(t.values, w)
		w.WriteString(")")
	case tableRefFunctionCall:
		c.prepareFunctionCall(t.fn, w)
	}
	if t.alias != "" {
		w.WriteString(" AS ")
		c.self.PrepareIden(t.alias, w)
	}
}

// PrepareColumnRef renders a possibly qualified column or asterisk.
func (c *CommonQueryBuilder) PrepareColumnRef(col ColumnRef, w SqlWriter) {
	if col.schema != "" {
		c.self.PrepareIden(col.schema, w)
		w.WriteString(".")
	}
	if col.table != "" {
		c.self.PrepareIden(col.table, w)
		w.WriteString(".")
	}
	if col.kind == colRefAsterisk {
		w.WriteString("*")
	} else {
		c.self.PrepareIden(col.column, w)
	}
}

// PrepareIden writes a quoted identifier, doubling embedded right-quote
// characters.
func (c *CommonQueryBuilder) PrepareIden(iden Iden, w SqlWriter) {
	q := c.self.Quote()
	s := iden.Unquoted()
	var out []byte
	out = append(out, q.Left)
	for i := 0; i < len(s); i++ {
		if s[i] == q.Right {
			out = append(out, q.Right, q.Right)
		} else {
			out = append(out, s[i])
		}
	}
	out = append(out, q.Right)
	w.WriteString(string(out))
}

// PrepareValue hands a bind value to the sink.
func (c *CommonQueryBuilder) PrepareValue(v Value, w SqlWriter) {
	w.PushValue(v)
}

// PrepareOrderExpr renders one ORDER BY item with trailing NULLS
// placement.
func (c *CommonQueryBuilder) PrepareOrderExpr(o OrderExpr, w SqlWriter) {
	c.prepareOrderDirection(o, w)
	if o.nulls != nil {
		if *o.nulls == NullsFirst {
			w.WriteString(" NULLS FIRST")
		} else {
			w.WriteString(" NULLS LAST")
		}
	}
}

// prepareOrderDirection renders the expression and direction, expanding
// FIELD orderings into a CASE that preserves the caller's value order.
func (c *CommonQueryBuilder) prepareOrderDirection(o OrderExpr, w SqlWriter) {
	if o.order.kind == orderField {
		w.WriteString("CASE")
		for i, v := range o.order.field {
			w.WriteString(" WHEN ")
			c.self.PrepareExpr(o.expr, w)
			w.WriteString("=")
			c.self.PrepareValue(v, w)
			w.Writef(" THEN %d", i)
		}
		w.Writef(" ELSE %d END", len(o.order.field))
		return
	}
	c.self.PrepareExpr(o.expr, w)
	if o.order.kind == orderDesc {
		w.WriteString(" DESC")
	} else {
		w.WriteString(" ASC")
	}
}

// PrepareOnConflict renders the ON CONFLICT form shared by Postgres and
// SQLite; MySQL overrides with ON DUPLICATE KEY.
func (c *CommonQueryBuilder) PrepareOnConflict(oc *OnConflict, w SqlWriter) {
	if oc == nil {
		return
	}
	w.WriteString(" ON CONFLICT ")
	switch oc.targetKind {
	case onConflictTargetColumns:
		w.WriteString("(")
		for i, col := range oc.targetCols {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareIden(col, w)
		}
		w.WriteString(")")
	case onConflictTargetConstraint:
		w.WriteString("ON CONSTRAINT ")
		c.self.PrepareIden(oc.constraint, w)
	}
	c.self.PrepareCondition(&oc.targetWhere, "WHERE", w)
	switch oc.actionKind {
	case onConflictActionDoNothing:
		w.WriteString(" DO NOTHING")
	case onConflictActionUpdate:
		w.WriteString(" DO UPDATE SET ")
		for i, u := range oc.updates {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareIden(u.col, w)
			w.WriteString(" = ")
			if u.kind == onConflictUpdateColumn {
				c.self.PrepareIden(Name("excluded"), w)
				w.WriteString(".")
				c.self.PrepareIden(u.col, w)
			} else {
				c.self.PrepareExpr(u.expr, w)
			}
		}
		c.self.PrepareCondition(&oc.actionWhere, "WHERE", w)
	}
}

// PrepareReturning renders the RETURNING clause.
func (c *CommonQueryBuilder) PrepareReturning(r *ReturningClause, w SqlWriter) {
	w.WriteString(" RETURNING ")
	switch r.kind {
	case returningAll:
		w.WriteString("*")
	case returningColumns:
		for i, col := range r.cols {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareColumnRef(col, w)
		}
	case returningExprs:
		for i, e := range r.exprs {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareExpr(e, w)
		}
	}
}

// PrepareAsEnum falls through to the inner expression; Postgres
// overrides with a CAST.
func (c *CommonQueryBuilder) PrepareAsEnum(_ TableName, inner Expr, w SqlWriter) {
	c.self.PrepareExpr(inner, w)
}
