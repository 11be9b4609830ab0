package quarry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	quarry "github.com/quarrydb/quarry"
)

func TestInsertValues(t *testing.T) {
	sql, values := quarry.Insert().
		Into("glyph").
		Columns("aspect", "image").
		ValuesPanic(2.1345, "24B0E11A-4B79-4AD4-9A02-7B12B34AC9BF").
		ValuesPanic(5.15, "12A").
		Build(postgres())

	require.Equal(t,
		`INSERT INTO "glyph" ("aspect", "image") VALUES ($1, $2), ($3, $4)`,
		sql)
	require.Len(t, values, 4)
}

func TestInsertArityMismatch(t *testing.T) {
	_, err := quarry.Insert().
		Into("glyph").
		Columns("aspect", "image").
		Values(1.0)
	require.Error(t, err)
	var mismatch quarry.ColValNumMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, 2, mismatch.ColLen)
	require.Equal(t, 1, mismatch.ValLen)
}

func TestInsertOnConflictUpdate(t *testing.T) {
	stmt := quarry.Insert().
		Into("glyph").
		Columns("aspect", "image").
		ValuesPanic("fading", 3.1415).
		OnConflict(quarry.OnConflictColumn("id").UpdateColumns("aspect", "image"))

	require.Equal(t,
		"INSERT INTO `glyph` (`aspect`, `image`) VALUES ('fading', 3.1415) "+
			"ON DUPLICATE KEY UPDATE `aspect` = VALUES(`aspect`), `image` = VALUES(`image`)",
		stmt.ToString(mysql()))

	expected := `INSERT INTO "glyph" ("aspect", "image") VALUES ('fading', 3.1415) ` +
		`ON CONFLICT ("id") DO UPDATE SET "aspect" = "excluded"."aspect", "image" = "excluded"."image"`
	require.Equal(t, expected, stmt.ToString(postgres()))
	require.Equal(t, expected, stmt.ToString(sqlite()))
}

func TestInsertOnConflictDoNothing(t *testing.T) {
	stmt := quarry.Insert().
		Into("glyph").
		Columns("image").
		ValuesPanic("12A").
		OnConflict(quarry.OnConflictColumn("id").DoNothing())

	// MySQL has no DO NOTHING action; the whole insert degrades to
	// INSERT IGNORE.
	require.Equal(t,
		"INSERT IGNORE INTO `glyph` (`image`) VALUES ('12A')",
		stmt.ToString(mysql()))

	require.Equal(t,
		`INSERT INTO "glyph" ("image") VALUES ('12A') ON CONFLICT ("id") DO NOTHING`,
		stmt.ToString(postgres()))
}

func TestInsertOnConflictDoNothingOnPk(t *testing.T) {
	stmt := quarry.Insert().
		Into("glyph").
		Columns("image").
		ValuesPanic("12A").
		OnConflict(quarry.OnConflictColumn("id").DoNothingOn("id"))

	require.Equal(t,
		"INSERT INTO `glyph` (`image`) VALUES ('12A') ON DUPLICATE KEY UPDATE `id` = `id`",
		stmt.ToString(mysql()))
	require.Equal(t,
		`INSERT INTO "glyph" ("image") VALUES ('12A') ON CONFLICT ("id") DO NOTHING`,
		stmt.ToString(postgres()))
}

func TestInsertOnConflictTargetAndActionWhere(t *testing.T) {
	sql := quarry.Insert().
		Into("glyph").
		Columns("image").
		ValuesPanic("12A").
		OnConflict(quarry.OnConflictColumn("id").
			TargetAndWhere(quarry.Col("aspect").Gt(1)).
			UpdateColumn("image").
			ActionAndWhere(quarry.Col("image").Ne("12A"))).
		ToString(postgres())

	require.Equal(t,
		`INSERT INTO "glyph" ("image") VALUES ('12A') ON CONFLICT ("id") WHERE "aspect" > 1 `+
			`DO UPDATE SET "image" = "excluded"."image" WHERE "image" <> '12A'`,
		sql)
}

func TestInsertOnConstraint(t *testing.T) {
	sql := quarry.Insert().
		Into("glyph").
		Columns("image").
		ValuesPanic("12A").
		OnConflict(quarry.OnConstraint("glyph_pkey").DoNothing()).
		ToString(postgres())

	require.Equal(t,
		`INSERT INTO "glyph" ("image") VALUES ('12A') ON CONFLICT ON CONSTRAINT "glyph_pkey" DO NOTHING`,
		sql)
}

func TestInsertDefaultValues(t *testing.T) {
	stmt := quarry.Insert().Into("glyph").OrDefaultValues(2)

	require.Equal(t, "INSERT INTO `glyph` VALUES (DEFAULT), (DEFAULT)", stmt.ToString(mysql()))
	require.Equal(t, `INSERT INTO "glyph" VALUES (DEFAULT), (DEFAULT)`, stmt.ToString(postgres()))
	// SQLite has the dedicated keyword, regardless of the count.
	require.Equal(t, `INSERT INTO "glyph" DEFAULT VALUES`, stmt.ToString(sqlite()))
}

func TestInsertFromSelect(t *testing.T) {
	sql := quarry.Insert().
		Into("glyph_copy").
		Columns("aspect", "image").
		SelectFrom(quarry.Select().Columns("aspect", "image").From("glyph").AndWhere(quarry.Col("id").Gt(10))).
		ToString(postgres())

	require.Equal(t,
		`INSERT INTO "glyph_copy" ("aspect", "image") SELECT "aspect", "image" FROM "glyph" WHERE "id" > 10`,
		sql)
}

func TestInsertReplace(t *testing.T) {
	stmt := quarry.Insert().Replace().Into("glyph").Columns("image").ValuesPanic("12A")

	require.Equal(t, "REPLACE INTO `glyph` (`image`) VALUES ('12A')", stmt.ToString(mysql()))
	require.Equal(t, `REPLACE INTO "glyph" ("image") VALUES ('12A')`, stmt.ToString(sqlite()))
	require.PanicsWithValue(t,
		"quarry: Postgres does not support REPLACE INTO",
		func() { stmt.ToString(postgres()) })
}

func TestInsertReturning(t *testing.T) {
	stmt := quarry.Insert().
		Into("glyph").
		Columns("image").
		ValuesPanic("12A").
		ReturningColumn("id")

	require.Equal(t,
		`INSERT INTO "glyph" ("image") VALUES ($1) RETURNING "id"`,
		func() string { sql, _ := stmt.Build(postgres()); return sql }())
	require.Equal(t,
		`INSERT INTO "glyph" ("image") VALUES (?) RETURNING "id"`,
		func() string { sql, _ := stmt.Build(sqlite()); return sql }())

	// MySQL has no RETURNING; the clause is suppressed.
	require.Equal(t,
		"INSERT INTO `glyph` (`image`) VALUES (?)",
		func() string { sql, _ := stmt.Build(mysql()); return sql }())
}

func TestInsertWithCte(t *testing.T) {
	with := quarry.NewWithClause().
		CTE(quarry.NewCTE("src").Query(quarry.Select().Columns("aspect", "image").From("glyph")))

	sql := quarry.Insert().
		With(with).
		Into("glyph_copy").
		Columns("aspect", "image").
		SelectFrom(quarry.Select().Columns("aspect", "image").From("src")).
		ToString(postgres())

	require.Equal(t,
		`WITH "src" AS (SELECT "aspect", "image" FROM "glyph") `+
			`INSERT INTO "glyph_copy" ("aspect", "image") SELECT "aspect", "image" FROM "src"`,
		sql)
}
