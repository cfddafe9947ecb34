package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderFromStdin(t *testing.T) {
	out, _, err := execute(t, "select    1   ;", "render")
	require.NoError(t, err)
	assert.Equal(t, "select 1\n", out)
}

func TestRenderUpperKeywordsFlag(t *testing.T) {
	out, _, err := execute(t, "select 1;", "render", "--upper-keywords")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1\n", out)
}

func TestRenderTypeParamsFlag(t *testing.T) {
	sql := "CREATE TABLE t (n VARCHAR(7));"

	out, _, err := execute(t, sql, "render", "--type-params")
	require.NoError(t, err)
	assert.Equal(t, "create table t (n VARCHAR(7))\n", out)

	out, _, err = execute(t, sql, "render")
	require.NoError(t, err)
	assert.Equal(t, "create table t (n VARCHAR)\n", out)
}

func TestRenderFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(p, []byte("SELECT a FROM t WHERE a>1;"), 0644))

	out, _, err := execute(t, "", "render", p)
	require.NoError(t, err)
	assert.Equal(t, "select a from t where a > 1\n", out)
}

func TestRenderSyntaxErrorCarriesLabel(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.sql")
	require.NoError(t, os.WriteFile(p, []byte("SELECT FROM t;"), 0644))

	_, _, err := execute(t, "", "render", p)
	require.Error(t, err)
	assert.Equal(t, p+":1:8: expression expected", err.Error())
}

func TestCheck(t *testing.T) {
	out, _, err := execute(t, "SELECT 1; SELECT 2;", "check")
	require.NoError(t, err)
	assert.Equal(t, "<stdin>: ok\n", out)

	_, errOut, err := execute(t, "SELECT FROM;", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 inputs failed")
	assert.Contains(t, errOut, "<stdin>:1:8: expression expected")
}

func TestDump(t *testing.T) {
	out, _, err := execute(t, "SELECT id FROM t;", "dump")
	require.NoError(t, err)
	want := `StatementList
  Select
    ColumnList
      Identifier 'id'
    From
      Identifier 't'
`
	assert.Equal(t, want, out)
}

func TestTokens(t *testing.T) {
	out, _, err := execute(t, "SELECT x;", "tokens")
	require.NoError(t, err)
	for _, want := range []string{"<stdin>", "keyword", "SELECT", "identifier", "x"} {
		assert.Contains(t, out, want)
	}
}

func TestMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "check", filepath.Join(t.TempDir(), "missing.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.sql")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "sqlparse "+Version+"\n", out)
}
