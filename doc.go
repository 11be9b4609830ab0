// Package quarry builds SQL programmatically: statements are assembled
// as expression trees through fluent builders, then rendered for a
// concrete dialect.
//
// # Basic Usage
//
// Statements are built with the package-level constructors and rendered
// against a dialect builder:
//
//	sql, values := quarry.Select().
//		Columns("id", "name").
//		From("character").
//		CondWhere(quarry.Col("size_w").Gt(100)).
//		OrderBy("id", quarry.Asc).
//		Limit(10).
//		Build(quarry.NewPostgresQueryBuilder())
//	// sql:    SELECT "id", "name" FROM "character" WHERE "size_w" > $1 ORDER BY "id" ASC LIMIT $2
//	// values: the bind list, in placeholder order
//
// # Dialects
//
// MySQL, Postgres and SQLite are supported; the same statement renders
// for each through NewMysqlQueryBuilder, NewPostgresQueryBuilder and
// NewSqliteQueryBuilder. Dialect-only features either degrade (MySQL
// emulates NULLS FIRST, SQLite drops row locks) or panic at render time
// when no sound rendering exists (REPLACE on Postgres, inline arrays
// outside Postgres).
//
// # Output Forms
//
// Build returns SQL with dialect placeholders plus the collected bind
// values. ToString inlines every value as a literal for logging and
// debugging; InjectParameters does the same to already-rendered SQL.
//
// # Auditing
//
// Audit walks a statement and reports every table it reads or writes,
// resolving sub-queries and CTE shadowing, for permission checks ahead
// of execution.
package quarry
