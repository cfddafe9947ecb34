package repl

import (
	"strings"
	"testing"

	"github.com/astrel/sqlparse"
	"github.com/astrel/sqlparse/config"
)

func testRepl() *repl {
	return &repl{cfg: &config.Config{Output: config.OutputSQL}}
}

func TestEvalModes(t *testing.T) {
	r := testRepl()

	if got := r.eval("SELECT 1;"); got != "select 1" {
		t.Errorf("sql mode: got %q", got)
	}

	r.cfg.UpperKeywords = true
	if got := r.eval("select 1;"); got != "SELECT 1" {
		t.Errorf("upper keywords: got %q", got)
	}

	r.cfg.Output = config.OutputAST
	got := r.eval("SELECT 1;")
	if !strings.HasPrefix(got, "StatementList\n  Select\n") {
		t.Errorf("ast mode: got %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("ast mode output ends with a newline: %q", got)
	}

	r.cfg.Output = config.OutputTokens
	got = r.eval("SELECT 1;")
	for _, want := range []string{"KIND", "VALUE", "keyword", "SELECT"} {
		if !strings.Contains(got, want) {
			t.Errorf("token mode output missing %q:\n%s", want, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("token mode output ends with a newline: %q", got)
	}
}

func TestEvalParseError(t *testing.T) {
	r := testRepl()
	got := r.eval("SELECT FROM;")
	if got != "Err: 1:8: expression expected" {
		t.Errorf("got %q", got)
	}
}

func TestRunCommand(t *testing.T) {
	r := testRepl()

	r.runCommand(".mode ast")
	if r.cfg.Output != config.OutputAST {
		t.Errorf("mode not switched, got %s", r.cfg.Output)
	}
	r.runCommand(".mode nope")
	if r.cfg.Output != config.OutputAST {
		t.Errorf("bad mode changed config, got %s", r.cfg.Output)
	}

	r.runCommand(".upper on")
	if !r.cfg.UpperKeywords {
		t.Error("upper not switched on")
	}
	r.runCommand(".upper off")
	if r.cfg.UpperKeywords {
		t.Error("upper not switched off")
	}

	r.runCommand(".typeparams on")
	if !r.cfg.TypeParams {
		t.Error("typeparams not switched on")
	}

	if got := r.runCommand(".bogus"); got != "Command not supported" {
		t.Errorf("got %q", got)
	}
}

func TestPrintTokens(t *testing.T) {
	got := printTokens(sqlparse.Tokens("SELECT x"))
	for _, want := range []string{"keyword", "SELECT", "identifier", "x", "1", "8"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}
