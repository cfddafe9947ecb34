package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.False(t, cfg.UpperKeywords)
	assert.False(t, cfg.TypeParams)
	assert.Equal(t, OutputSQL, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(t, "upper_keywords: true\noutput: ast\n")
	cfg, err := Load(p, nil)
	require.NoError(t, err)
	assert.True(t, cfg.UpperKeywords)
	assert.Equal(t, OutputAST, cfg.Output)
	// untouched keys keep their defaults
	assert.False(t, cfg.TypeParams)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	p := writeConfig(t, "output: ast\n")
	t.Setenv("SQLPARSE_OUTPUT", "tokens")
	t.Setenv("SQLPARSE_TYPE_PARAMS", "true")

	cfg, err := Load(p, nil)
	require.NoError(t, err)
	assert.Equal(t, OutputTokens, cfg.Output)
	assert.True(t, cfg.TypeParams)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SQLPARSE_OUTPUT", "tokens")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.Bool("upper-keywords", false, "")
	require.NoError(t, flags.Set("output", "sql"))
	require.NoError(t, flags.Set("upper-keywords", "true"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, OutputSQL, cfg.Output)
	assert.True(t, cfg.UpperKeywords)
}

func TestLoadUnsetFlagsDoNotOverride(t *testing.T) {
	p := writeConfig(t, "output: ast\n")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", OutputSQL, "")

	cfg, err := Load(p, flags)
	require.NoError(t, err)
	assert.Equal(t, OutputAST, cfg.Output)
}

func TestLoadRejectsBadOutput(t *testing.T) {
	p := writeConfig(t, "output: graphviz\n")
	_, err := Load(p, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graphviz")
}

func TestFindIn(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", FindIn(dir))

	p := filepath.Join(dir, ConfigFileNameAlt)
	require.NoError(t, os.WriteFile(p, []byte("verbose: true\n"), 0644))
	assert.Equal(t, p, FindIn(dir))
}
