package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderSQL(t *testing.T, sql string, upper bool) string {
	t.Helper()
	n, err := Parse(sql, "", false)
	require.NoError(t, err)
	return Render(n, upper)
}

func TestRenderCanonical(t *testing.T) {
	cases := []struct {
		sql  string
		want string
	}{
		{"select   *   from foo", "select * from foo"},
		{"SELECT a+b*c FROM t", "select a + b * c from t"},
		{"SELECT DISTINCT a FROM t ORDER BY a DESC, b LIMIT 10 OFFSET 5",
			"select distinct a from t order by a desc, b limit 10 offset 5"},
		{"SELECT * FROM a JOIN b ON a.x = b.x",
			"select * from a join b on a.x = b.x"},
		{"SELECT * FROM a LEFT OUTER JOIN b USING (x, y)",
			"select * from a left join b using (x, y)"},
		{"SELECT * FROM a CROSS JOIN b", "select * from a cross join b"},
		{"SELECT count(*), coalesce(a, 0) FROM t GROUP BY a HAVING count(*) > 1",
			"select count(*), coalesce(a, 0) from t group by a having count(*) > 1"},
		{"SELECT x BETWEEN 1 AND 2", "select x between 1 and 2"},
		{"SELECT a IN (1, 2, 3)", "select a in (1, 2, 3)"},
		{"SELECT a LIKE 'x%'", "select a like 'x%'"},
		{"SELECT x IS NULL, y IS NOT NULL", "select x is null, y is not null"},
		{"SELECT NULL, -1, 'it''s', b'0101', x'1F', 3.14",
			"select null, -1, 'it''s', b'0101', x'1F', 3.14"},
		{`SELECT "a""b" FROM "T"`, `select "a""b" from "T"`},
		{"SELECT arr[i + 1]", "select arr[i + 1]"},
		{"INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')",
			"insert into t (a, b) values (1, 'x'), (2, 'y')"},
		{"INSERT INTO t DEFAULT VALUES", "insert into t default values"},
		{"UPDATE t SET a = a + 1, b = 2 WHERE c = 3",
			"update t set a = a + 1, b = 2 where c = 3"},
		{"DELETE FROM t WHERE x <> 1", "delete from t where x <> 1"},
		{"DELETE FROM t WHERE x != 1", "delete from t where x <> 1"},
		{"CREATE TABLE IF NOT EXISTS t (id integer PRIMARY KEY, name varchar NOT NULL)",
			"create table if not exists t (id integer primary key, name varchar not null)"},
		{"CREATE TABLE t (a integer, PRIMARY KEY (a, b), FOREIGN KEY (a) REFERENCES o (id))",
			"create table t (a integer, primary key (a, b), foreign key (a) references o (id))"},
		{"CREATE UNIQUE INDEX IF NOT EXISTS idx ON t (a, b)",
			"create unique index if not exists idx on t (a, b)"},
		{"CREATE TYPE mood AS ENUM ('sad', 'ok')",
			"create type mood as enum ('sad', 'ok')"},
		{"SELECT 1; SELECT 2;", "select 1;\nselect 2"},
		{"SELECT 1 UNION SELECT 2 EXCEPT SELECT 3",
			"select 1 union select 2 except select 3"},
	}
	for _, c := range cases {
		t.Run(c.sql, func(t *testing.T) {
			assert.Equal(t, c.want, renderSQL(t, c.sql, false))
		})
	}
}

func TestRenderUpperKeywords(t *testing.T) {
	got := renderSQL(t, "select a from t where b is null union select x'ff'", true)
	assert.Equal(t, "SELECT a FROM t WHERE b IS NULL UNION SELECT X'ff'", got)
}

func TestRenderParenthesization(t *testing.T) {
	cases := []struct {
		sql  string
		want string
	}{
		// structure-bearing parentheses survive
		{"SELECT (a + b) * c", "select (a + b) * c"},
		{"SELECT a * (b + c)", "select a * (b + c)"},
		{"SELECT (a OR b) AND c", "select (a or b) and c"},
		{"SELECT id FROM t WHERE (a = 1 OR b = 2) AND c = 3",
			"select id from t where (a = 1 or b = 2) and c = 3"},
		// redundant parentheses do not
		{"SELECT (a * b) + c", "select a * b + c"},
		{"SELECT ((a))", "select a"},
		{"SELECT a + (b + c)", "select a + (b + c)"}, // right nesting is structure
		// a doubled minus would open a line comment
		{"SELECT - -a", "select -(-a)"},
		{"SELECT -(a + b)", "select -(a + b)"},
	}
	for _, c := range cases {
		t.Run(c.sql, func(t *testing.T) {
			assert.Equal(t, c.want, renderSQL(t, c.sql, false))
		})
	}
}

func TestRenderTypeParams(t *testing.T) {
	sql := "CREATE TABLE t (name VARCHAR(255), price NUMERIC(10, 2))"

	n, err := Parse(sql, "", true)
	require.NoError(t, err)
	assert.Equal(t, "create table t (name VARCHAR(255), price NUMERIC(10, 2))",
		Render(n, false))

	n, err = Parse(sql, "", false)
	require.NoError(t, err)
	assert.Equal(t, "create table t (name VARCHAR, price NUMERIC)", Render(n, false))
}

// Rendering must not fail on hand built trees, including branches missing
// the operands the parser would always supply.
func TestRenderEmptyBranches(t *testing.T) {
	for kind, name := range nodeKindNames {
		if _, isLeaf := leafKinds[kind]; isLeaf {
			continue
		}
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				Render(NewBranch(kind), false)
				Render(NewBranch(kind), true)
			})
		})
	}
}

func TestRenderPartialTrees(t *testing.T) {
	assert.Equal(t, "where ", Render(NewBranch(NodeWhere), false))

	trees := []*SqlNode{
		NewBranch(NodeSelect, NewBranch(NodeColumnList), NewBranch(NodeWhere)),
		NewBranch(NodeInnerJoin, NewLeaf(NodeIdentifier, "a")),
		NewBranch(NodeInsert),
		NewBranch(NodeUpdate),
		NewBranch(NodeDelete),
		NewBranch(NodeCreateTable, NewBranch(NodeIfNotExists)),
		NewBranch(NodeCreateIndex, NewBranch(NodeUnique), NewLeaf(NodeIdentifier, "idx")),
		NewBranch(NodeCreateType),
		NewBranch(NodeColumnDef, NewLeaf(NodeIdentifier, "c")),
		NewBranch(NodeAssign, NewLeaf(NodeIdentifier, "a")),
		NewBranch(NodeBetween, NewLeaf(NodeIdentifier, "x")),
		NewBranch(NodeAnd, NewLeaf(NodeIdentifier, "p")),
		NewBranch(NodeCall),
		NewBranch(NodeDot, NewLeaf(NodeIdentifier, "t")),
	}
	for _, tree := range trees {
		assert.NotPanics(t, func() { Render(tree, false) })
	}
}

func TestRenderHandBuiltTree(t *testing.T) {
	n := NewBranch(NodeSelect,
		NewBranch(NodeColumnList,
			NewBranch(NodeCall,
				NewLeaf(NodeIdentifier, "count"),
				NewBranch(NodeAllColumns),
			),
		),
		NewBranch(NodeFrom, NewLeaf(NodeIdentifier, "users")),
	)
	assert.Equal(t, "select count(*) from users", Render(n, false))
}
