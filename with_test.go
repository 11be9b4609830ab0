package quarry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	quarry "github.com/quarrydb/quarry"
)

func TestWithSimpleCte(t *testing.T) {
	with := quarry.NewWithClause().
		CTE(quarry.NewCTE("big_glyph").
			Columns("id", "aspect").
			Query(quarry.Select().Columns("id", "aspect").From("glyph").AndWhere(quarry.Col("aspect").Gt(1))))

	sql := quarry.Select().
		With(with).
		Column("id").
		From("big_glyph").
		ToString(postgres())

	require.Equal(t,
		`WITH "big_glyph" ("id", "aspect") AS `+
			`(SELECT "id", "aspect" FROM "glyph" WHERE "aspect" > 1) SELECT "id" FROM "big_glyph"`,
		sql)
}

func TestWithRecursiveSearchCycle(t *testing.T) {
	with := quarry.NewWithClause().
		Recursive().
		CTE(quarry.NewCTE("tree").
			Columns("id", "parent_id").
			Query(quarry.Select().Columns("id", "parent_id").From("node").AndWhere(quarry.Col("parent_id").IsNull()).
				UnionAll(quarry.Select().Column("node", "id").Column("node", "parent_id").From("node")))).
		Search(quarry.Search{Order: quarry.SearchBreadthFirst, By: quarry.Col("id"), Set: quarry.N("ordercol")}).
		Cycle(quarry.Cycle{Expr: quarry.Col("id"), Set: quarry.N("looped"), Using: quarry.N("path")})

	stmt := quarry.Select().With(with).Column("id").From("tree")

	require.Equal(t,
		`WITH RECURSIVE "tree" ("id", "parent_id") AS `+
			`(SELECT "id", "parent_id" FROM "node" WHERE "parent_id" IS NULL `+
			`UNION ALL (SELECT "node"."id", "node"."parent_id" FROM "node")) `+
			`SEARCH BREADTH FIRST BY "id" SET "ordercol" `+
			`CYCLE "id" SET "looped" USING "path" `+
			`SELECT "id" FROM "tree"`,
		stmt.ToString(postgres()))

	// SEARCH/CYCLE are Postgres-only; SQLite keeps the recursive CTE.
	require.Equal(t,
		`WITH RECURSIVE "tree" ("id", "parent_id") AS `+
			`(SELECT "id", "parent_id" FROM "node" WHERE "parent_id" IS NULL `+
			`UNION ALL SELECT "node"."id", "node"."parent_id" FROM "node") `+
			`SELECT "id" FROM "tree"`,
		stmt.ToString(sqlite()))
}

func TestWithMaterialized(t *testing.T) {
	with := quarry.NewWithClause().
		CTE(quarry.NewCTE("src").
			Query(quarry.Select().Column("id").From("glyph")).
			Materialized(false))

	stmt := quarry.Select().With(with).Column("id").From("src")

	require.Equal(t,
		`WITH "src" AS NOT MATERIALIZED (SELECT "id" FROM "glyph") SELECT "id" FROM "src"`,
		stmt.ToString(postgres()))

	// The hint is Postgres-only.
	require.Equal(t,
		"WITH `src` AS (SELECT `id` FROM `glyph`) SELECT `id` FROM `src`",
		stmt.ToString(mysql()))
}

func TestWithValuesCte(t *testing.T) {
	with := quarry.NewWithClause().
		CTE(quarry.NewCTE("vals").
			Columns("id", "name").
			ValuesRows([]any{1, "a"}, []any{2, "b"}))

	stmt := quarry.Select().With(with).Column("id").From("vals")

	require.Equal(t,
		`WITH "vals" ("id", "name") AS (VALUES (1, 'a'), (2, 'b')) SELECT "id" FROM "vals"`,
		stmt.ToString(postgres()))
	require.Equal(t,
		"WITH `vals` (`id`, `name`) AS (VALUES ROW(1, 'a'), ROW(2, 'b')) SELECT `id` FROM `vals`",
		stmt.ToString(mysql()))
}

func TestWithQueryBuild(t *testing.T) {
	with := quarry.NewWithClause().
		CTE(quarry.NewCTE("src").Query(quarry.Select().Column("id").From("glyph").AndWhere(quarry.Col("aspect").Gt(1))))

	q := with.Query(quarry.Select().Column("id").From("src"))

	sql, values := q.Build(postgres())
	require.Equal(t,
		`WITH "src" AS (SELECT "id" FROM "glyph" WHERE "aspect" > $1) SELECT "id" FROM "src"`,
		sql)
	require.Len(t, values, 1)
}
