package quarry

type onConflictTargetKind uint8

const (
	onConflictTargetNone onConflictTargetKind = iota
	onConflictTargetColumns
	onConflictTargetConstraint
)

type onConflictActionKind uint8

const (
	onConflictActionNone onConflictActionKind = iota
	onConflictActionDoNothing
	onConflictActionUpdate
)

type onConflictUpdateKind uint8

const (
	onConflictUpdateColumn onConflictUpdateKind = iota
	onConflictUpdateExpr
)

type onConflictUpdate struct {
	kind onConflictUpdateKind
	col  Name
	expr Expr
}

// OnConflict describes upsert behaviour: a conflict target (columns or a
// named constraint, ignored by MySQL), an optional target condition, and
// an action (do nothing, or update a set of columns).
type OnConflict struct {
	targetKind  onConflictTargetKind
	targetCols  []Name
	constraint  Name
	targetWhere ConditionHolder
	actionKind  onConflictActionKind
	pkCols      []Name
	updates     []onConflictUpdate
	actionWhere ConditionHolder
}

// NewOnConflict starts an upsert clause with no explicit target.
func NewOnConflict() *OnConflict {
	return &OnConflict{}
}

// OnConflictColumn starts an upsert clause targeting one column.
func OnConflictColumn(col string) *OnConflict {
	return OnConflictColumns(col)
}

// OnConflictColumns starts an upsert clause targeting several columns.
func OnConflictColumns(cols ...string) *OnConflict {
	oc := &OnConflict{targetKind: onConflictTargetColumns}
	for _, c := range cols {
		oc.targetCols = append(oc.targetCols, Name(c))
	}
	return oc
}

// OnConstraint starts an upsert clause targeting a named constraint
// (Postgres).
func OnConstraint(name string) *OnConflict {
	return &OnConflict{targetKind: onConflictTargetConstraint, constraint: Name(name)}
}

// DoNothing resolves conflicts by ignoring the insert.
func (oc *OnConflict) DoNothing() *OnConflict {
	oc.actionKind = onConflictActionDoNothing
	oc.pkCols = nil
	return oc
}

// DoNothingOn resolves conflicts by an idempotent no-op update of the
// given primary-key columns; MySQL needs them because ON DUPLICATE KEY
// has no DO NOTHING form.
func (oc *OnConflict) DoNothingOn(pkCols ...string) *OnConflict {
	oc.actionKind = onConflictActionDoNothing
	oc.pkCols = oc.pkCols[:0]
	for _, c := range pkCols {
		oc.pkCols = append(oc.pkCols, Name(c))
	}
	return oc
}

// UpdateColumn resolves conflicts by updating a column from the
// conflicting row's proposed value.
func (oc *OnConflict) UpdateColumn(col string) *OnConflict {
	return oc.UpdateColumns(col)
}

// UpdateColumns resolves conflicts by updating the given columns from
// the conflicting row's proposed values.
func (oc *OnConflict) UpdateColumns(cols ...string) *OnConflict {
	oc.actionKind = onConflictActionUpdate
	for _, c := range cols {
		oc.updates = append(oc.updates, onConflictUpdate{kind: onConflictUpdateColumn, col: Name(c)})
	}
	return oc
}

// Value resolves conflicts by setting a column to a bind value.
func (oc *OnConflict) Value(col string, v any) *OnConflict {
	return oc.Expr(col, Val(v))
}

// Values resolves conflicts by setting columns to bind values, in map
// iteration-independent call order.
func (oc *OnConflict) Values(pairs ...ColumnValue) *OnConflict {
	for _, p := range pairs {
		oc.Value(p.Column, p.Value)
	}
	return oc
}

// Expr resolves conflicts by setting a column to an expression.
func (oc *OnConflict) Expr(col string, e Expr) *OnConflict {
	oc.actionKind = onConflictActionUpdate
	oc.updates = append(oc.updates, onConflictUpdate{kind: onConflictUpdateExpr, col: Name(col), expr: e})
	return oc
}

// TargetAndWhere restricts the conflict target (Postgres/SQLite partial
// index upserts). MySQL suppresses it.
func (oc *OnConflict) TargetAndWhere(e Expr) *OnConflict {
	oc.targetWhere.addChain(e, false)
	return oc
}

// ActionAndWhere restricts the conflict action. MySQL suppresses it.
func (oc *OnConflict) ActionAndWhere(e Expr) *OnConflict {
	oc.actionWhere.addChain(e, false)
	return oc
}

// ColumnValue pairs a column name with a bind value for bulk setters.
type ColumnValue struct {
	Column string
	Value  any
}
