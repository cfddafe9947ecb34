package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rendering a parsed tree and re-parsing the output must reproduce the same
// tree, and a second render must reproduce the same text. Formatting of the
// input is free to change; structure is not.
func TestRoundTrip(t *testing.T) {
	statements := []string{
		"SELECT * FROM foo",
		"select distinct a, b from t where a > 0 and b < 10",
		"SELECT a.x, b.y FROM a INNER JOIN b ON a.id = b.id WHERE a.x IS NOT NULL",
		"SELECT * FROM a LEFT JOIN b USING (id) RIGHT JOIN c ON 1 = 1",
		"SELECT * FROM s.a NATURAL JOIN s.b",
		"SELECT count(*), sum(price) FROM orders GROUP BY region HAVING count(*) > 5",
		"SELECT a FROM t ORDER BY a DESC, b ASC LIMIT 100 OFFSET 20",
		"SELECT x BETWEEN lo AND hi FROM t",
		"SELECT a IN (1, 2, 3), b LIKE '%x%' FROM t",
		"SELECT -a, -(b + c), (a + b) * c, a % 2 FROM t",
		"SELECT arr[1], m[k].f FROM t",
		`SELECT "Mixed Case", 'it''s', b'0101', x'1F', 1.5e-3, NULL`,
		"SELECT 1 UNION SELECT 2 INTERSECT SELECT 3 EXCEPT SELECT 4",
		"INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')",
		"INSERT INTO t VALUES (DEFAULT_RATE, 2)",
		"INSERT INTO t DEFAULT VALUES",
		"UPDATE t SET a = a + 1, b = 'z' WHERE c IN (1, 2)",
		"DELETE FROM t WHERE x IS NULL OR y = 0",
		"CREATE TABLE IF NOT EXISTS t (id integer PRIMARY KEY IDENTITY, " +
			"name varchar NOT NULL UNIQUE, price numeric DEFAULT 0 CHECK (price >= 0), " +
			"other_id integer REFERENCES other (id), " +
			"CONSTRAINT pos CHECK (id > 0), PRIMARY KEY (id, name), " +
			"FOREIGN KEY (other_id) REFERENCES other (id))",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx ON t (a, b)",
		"CREATE INDEX idx ON s.t (a)",
		"CREATE TYPE mood AS ENUM ('sad', 'ok', 'happy')",
		"SELECT 1; UPDATE t SET a = 2; DELETE FROM t;",
	}
	for _, sql := range statements {
		for _, typeParams := range []bool{false, true} {
			sql, typeParams := sql, typeParams
			t.Run(sql, func(t *testing.T) {
				first, err := Parse(sql, "", typeParams)
				require.NoError(t, err)
				text := Render(first, false)

				second, err := Parse(text, "", typeParams)
				require.NoError(t, err, "re-parse of %q", text)
				assert.True(t, Equal(first, second),
					"rendered %q\nfirst:\n%s\nsecond:\n%s", text, Dump(first), Dump(second))

				assert.Equal(t, text, Render(second, false), "render not stable")
			})
		}
	}
}

// Type parameters survive a round trip only when both parses consider them.
func TestRoundTripTypeParams(t *testing.T) {
	sql := "CREATE TABLE t (name VARCHAR(255))"
	first, err := Parse(sql, "", true)
	require.NoError(t, err)
	text := Render(first, false)
	second, err := Parse(text, "", true)
	require.NoError(t, err)
	assert.True(t, Equal(first, second))
}

// Upper case rendering parses back to the same tree as lower case rendering.
func TestRoundTripUpper(t *testing.T) {
	sql := "select a from t where b between 1 and 2 order by a desc"
	n, err := Parse(sql, "", false)
	require.NoError(t, err)
	again, err := Parse(Render(n, true), "", false)
	require.NoError(t, err)
	assert.True(t, Equal(n, again))
}
