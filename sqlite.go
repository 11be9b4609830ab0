package quarry

// SqliteQueryBuilder renders statements in SQLite syntax.
type SqliteQueryBuilder struct {
	CommonQueryBuilder
}

// NewSqliteQueryBuilder returns a SQLite builder.
func NewSqliteQueryBuilder() *SqliteQueryBuilder {
	b := &SqliteQueryBuilder{}
	b.self = b
	return b
}

// Dialect returns "SQLite".
func (b *SqliteQueryBuilder) Dialect() string { return "SQLite" }

// Capabilities returns the SQLite feature surface.
func (b *SqliteQueryBuilder) Capabilities() Capabilities {
	return Capabilities{
		Returning:            true,
		ReplaceInsert:        true,
		FullOuterJoin:        true,
		DefaultValuesKeyword: true,
	}
}

// FunctionName maps the portable spellings SQLite lacks: CHAR_LENGTH to
// LENGTH, and the variadic GREATEST/LEAST to MAX/MIN.
func (b *SqliteQueryBuilder) FunctionName(f FuncIden) string {
	switch f.kind {
	case funcCharLength:
		return "LENGTH"
	case funcGreatest:
		return "MAX"
	case funcLeast:
		return "MIN"
	}
	return b.CommonQueryBuilder.FunctionName(f)
}
