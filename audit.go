package quarry

// AccessType classifies how a statement touches a table.
type AccessType uint8

// Access types.
const (
	AccessSelect AccessType = iota
	AccessInsert
	AccessUpdate
	AccessDelete
)

// QueryAccessRequest records one table access a statement performs.
type QueryAccessRequest struct {
	AccessType AccessType
	Table      TableName
}

// QueryAccessAudit is the de-duplicated set of table accesses found by
// walking a statement, in discovery order.
type QueryAccessAudit struct {
	requests []QueryAccessRequest
}

// Requests returns every recorded access.
func (a QueryAccessAudit) Requests() []QueryAccessRequest { return a.requests }

func (a QueryAccessAudit) tablesOf(t AccessType) []TableName {
	var out []TableName
	for _, r := range a.requests {
		if r.AccessType == t {
			out = append(out, r.Table)
		}
	}
	return out
}

// Selects returns the read accesses.
func (a QueryAccessAudit) Selects() []QueryAccessRequest {
	var out []QueryAccessRequest
	for _, r := range a.requests {
		if r.AccessType == AccessSelect {
			out = append(out, r)
		}
	}
	return out
}

// SelectedTables returns the tables the statement reads.
func (a QueryAccessAudit) SelectedTables() []TableName { return a.tablesOf(AccessSelect) }

// InsertedTables returns the tables the statement inserts into.
func (a QueryAccessAudit) InsertedTables() []TableName { return a.tablesOf(AccessInsert) }

// UpdatedTables returns the tables the statement updates.
func (a QueryAccessAudit) UpdatedTables() []TableName { return a.tablesOf(AccessUpdate) }

// DeletedTables returns the tables the statement deletes from.
func (a QueryAccessAudit) DeletedTables() []TableName { return a.tablesOf(AccessDelete) }

// Audit walks the select and reports every table it touches.
func (s *SelectStatement) Audit() (QueryAccessAudit, error) {
	return runAudit(func(a *auditor) { a.walkSelect(s) })
}

// Audit walks the insert and reports every table it touches. Fails with
// ErrUnableToParseQuery when the target is not a plain table.
func (s *InsertStatement) Audit() (QueryAccessAudit, error) {
	return runAudit(func(a *auditor) { a.walkInsert(s) })
}

// Audit walks the update and reports every table it touches. Fails with
// ErrUnableToParseQuery when the target is not a plain table.
func (s *UpdateStatement) Audit() (QueryAccessAudit, error) {
	return runAudit(func(a *auditor) { a.walkUpdate(s) })
}

// Audit walks the delete and reports every table it touches. Fails with
// ErrUnableToParseQuery when the target is not a plain table.
func (s *DeleteStatement) Audit() (QueryAccessAudit, error) {
	return runAudit(func(a *auditor) { a.walkDelete(s) })
}

// Audit walks the WITH query and reports every table it touches.
func (q *WithQuery) Audit() (QueryAccessAudit, error) {
	return runAudit(func(a *auditor) { a.walkWithQuery(q) })
}

func runAudit(walk func(*auditor)) (QueryAccessAudit, error) {
	a := &auditor{}
	walk(a)
	if a.err != nil {
		return QueryAccessAudit{}, a.err
	}
	return QueryAccessAudit{requests: a.reqs}, nil
}

type auditor struct {
	reqs []QueryAccessRequest
	err  error
}

func (a *auditor) add(t AccessType, table TableName) {
	for _, r := range a.reqs {
		if r.AccessType == t && r.Table == table {
			return
		}
	}
	a.reqs = append(a.reqs, QueryAccessRequest{AccessType: t, Table: table})
}

// withScope walks the CTE bodies, runs the owning statement's walk, and
// then drops every unqualified reference that resolves to a CTE declared
// here. Only accesses recorded inside this scope are filtered, so an
// outer table sharing a CTE's name survives.
func (a *auditor) withScope(with *WithClause, body func()) {
	if with == nil {
		body()
		return
	}
	mark := len(a.reqs)
	names := make(map[string]bool, len(with.ctes))
	for i := range with.ctes {
		cte := &with.ctes[i]
		names[string(cte.table)] = true
		if cte.queryKind == cteQuerySub && cte.query != nil {
			a.walkStmt(cte.query)
		}
	}
	body()
	kept := a.reqs[:mark]
	for _, r := range a.reqs[mark:] {
		if r.Table.Schema == "" && names[r.Table.Name] {
			continue
		}
		kept = append(kept, r)
	}
	a.reqs = kept
}

func (a *auditor) walkStmt(s SubQueryStatement) {
	switch st := s.(type) {
	case *SelectStatement:
		a.walkSelect(st)
	case *InsertStatement:
		a.walkInsert(st)
	case *UpdateStatement:
		a.walkUpdate(st)
	case *DeleteStatement:
		a.walkDelete(st)
	case *WithQuery:
		a.walkWithQuery(st)
	}
}

func (a *auditor) walkWithQuery(q *WithQuery) {
	a.withScope(&q.with, func() { a.walkStmt(q.stmt) })
}

func (a *auditor) walkSelect(s *SelectStatement) {
	a.withScope(s.with, func() {
		for _, t := range s.from {
			a.walkTableSource(t)
		}
		for _, j := range s.joins {
			a.walkTableSource(j.table)
			a.walkHolder(j.on)
		}
		for _, se := range s.selects {
			a.walkExpr(se.expr)
		}
		a.walkHolder(&s.where)
		for _, g := range s.groups {
			a.walkExpr(g)
		}
		a.walkHolder(&s.having)
		for _, u := range s.unions {
			a.walkSelect(u.stmt)
		}
	})
}

func (a *auditor) walkInsert(s *InsertStatement) {
	a.withScope(s.with, func() {
		name, ok := a.targetTable(s.table)
		if !ok {
			return
		}
		if s.returning != nil {
			a.add(AccessSelect, name)
		}
		a.add(AccessInsert, name)
		for _, row := range s.rows {
			for _, e := range row {
				a.walkExpr(e)
			}
		}
		if s.source != nil {
			a.walkSelect(s.source)
		}
		if s.onConflict != nil {
			for _, u := range s.onConflict.updates {
				if u.kind == onConflictUpdateExpr {
					a.walkExpr(u.expr)
				}
			}
			a.walkHolder(&s.onConflict.targetWhere)
			a.walkHolder(&s.onConflict.actionWhere)
		}
	})
}

func (a *auditor) walkUpdate(s *UpdateStatement) {
	a.withScope(s.with, func() {
		name, ok := a.targetTable(s.table)
		if !ok {
			return
		}
		if s.returning != nil {
			a.add(AccessSelect, name)
		}
		a.add(AccessUpdate, name)
		for _, t := range s.from {
			a.walkTableSource(t)
		}
		for _, p := range s.values {
			a.walkExpr(p.expr)
		}
		a.walkHolder(&s.where)
	})
}

func (a *auditor) walkDelete(s *DeleteStatement) {
	a.withScope(s.with, func() {
		name, ok := a.targetTable(s.table)
		if !ok {
			return
		}
		if s.returning != nil {
			a.add(AccessSelect, name)
		}
		a.add(AccessDelete, name)
		a.walkHolder(&s.where)
	})
}

func (a *auditor) targetTable(t *TableRef) (TableName, bool) {
	if t == nil || t.kind != tableRefTable {
		a.err = ErrUnableToParseQuery
		return TableName{}, false
	}
	return t.name, true
}

func (a *auditor) walkTableSource(t TableRef) {
	switch t.kind {
	case tableRefTable:
		a.add(AccessSelect, t.name)
	case tableRefSubQuery:
		a.walkSelect(t.sub)
	case tableRefValuesList:
		// Inline rows touch no tables.
	case tableRefFunctionCall:
		for _, arg := range t.fn.args {
			a.walkExpr(arg)
		}
	}
}

func (a *auditor) walkHolder(h *ConditionHolder) {
	if h == nil {
		return
	}
	switch h.contents {
	case holderChain:
		for _, link := range h.chain {
			a.walkExpr(link.expr)
		}
	case holderCondition:
		a.walkCondition(h.cond)
	}
}

func (a *auditor) walkCondition(c Condition) {
	for _, ch := range c.children {
		switch x := ch.(type) {
		case Condition:
			a.walkCondition(x)
		case Expr:
			a.walkExpr(x)
		}
	}
}

func (a *auditor) walkExpr(e Expr) {
	switch e.kind {
	case exprUnary, exprAsEnum:
		a.walkExpr(*e.left)
	case exprBinary:
		a.walkExpr(*e.left)
		a.walkExpr(*e.right)
	case exprTuple, exprCustomWithExpr:
		for _, x := range e.list {
			a.walkExpr(x)
		}
	case exprFunctionCall:
		for _, arg := range e.fn.args {
			a.walkExpr(arg)
		}
	case exprCase:
		for _, wh := range e.cases.whens {
			a.walkCondition(wh.cond)
			a.walkExpr(wh.then)
		}
		if e.cases.els != nil {
			a.walkExpr(*e.cases.els)
		}
	case exprSubQuery:
		a.walkStmt(e.sub)
	}
}
