// repl (read eval print loop) adapts the parser to the command line. Input
// is buffered until a statement terminator, parsed, and printed back in the
// configured output mode.
package repl

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/astrel/sqlparse"
	"github.com/astrel/sqlparse/config"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

const (
	// prompt is the prompt.
	prompt = "sqlparse> "
	// promptContinued is the prompt when input is pending termination for
	// example by a semi colon.
	promptContinued = "     ...> "
)

type repl struct {
	cfg      *config.Config
	terminal *term.Terminal
}

func New(cfg *config.Config) *repl {
	r := &repl{
		cfg:      cfg,
		terminal: term.NewTerminal(os.Stdin, prompt),
	}
	r.loadHistory()
	return r
}

func (r *repl) Run() {
	r.writeLn("Welcome to sqlparse. Type .help for commands, .exit to exit")

	// When the terminal is in raw mode kill signals arrive through readline
	// as bytes. When it is not in raw mode they are caught by this channel.
	// Either way the history file gets written before exiting.
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		r.exitGracefully()
	}()

	previousInput := ""
	for {
		line := r.readLine(previousInput)
		input := previousInput + line
		if len(input) == 0 {
			continue
		}
		if previousInput == "" && input[0] == '.' {
			if input == ".exit" {
				r.exitGracefully()
			}
			r.writeLn(r.runCommand(input))
			continue
		}

		if !sqlparse.IsTerminated(input) {
			previousInput = input + "\n"
			continue
		}
		previousInput = ""
		r.writeLn(r.eval(input))
	}
}

// eval parses the buffered input and returns the text to print for the
// configured output mode. The result carries no trailing newline; writeLn
// adds the one that ends the output.
func (r *repl) eval(input string) string {
	if r.cfg.Output == config.OutputTokens {
		return strings.TrimRight(printTokens(sqlparse.Tokens(input)), "\n")
	}
	tree, err := sqlparse.Parse(input, "", r.cfg.TypeParams)
	if err != nil {
		return "Err: " + err.Error()
	}
	if r.cfg.Output == config.OutputAST {
		return strings.TrimRight(sqlparse.Dump(tree), "\n")
	}
	return sqlparse.Render(tree, r.cfg.UpperKeywords)
}

const helpText = `.exit                   exit the repl
.help                   show this help
.mode sql|ast|tokens    set the output mode
.upper on|off           render keywords upper case
.typeparams on|off      keep column type parameters`

// runCommand handles dot commands, which configure the session rather than
// feed the parser. It returns the text to print.
func (r *repl) runCommand(input string) string {
	fields := strings.Fields(input)
	switch fields[0] {
	case ".help":
		return helpText
	case ".mode":
		if len(fields) == 2 {
			switch fields[1] {
			case config.OutputSQL, config.OutputAST, config.OutputTokens:
				r.cfg.Output = fields[1]
				return "Output mode is " + fields[1]
			}
		}
		return "Usage: .mode sql|ast|tokens"
	case ".upper":
		if v, ok := onOff(fields); ok {
			r.cfg.UpperKeywords = v
			return "Upper case keywords " + fields[1]
		}
		return "Usage: .upper on|off"
	case ".typeparams":
		if v, ok := onOff(fields); ok {
			r.cfg.TypeParams = v
			return "Type parameters " + fields[1]
		}
		return "Usage: .typeparams on|off"
	}
	return "Command not supported"
}

func onOff(fields []string) (value, ok bool) {
	if len(fields) != 2 {
		return false, false
	}
	switch fields[1] {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}

func printTokens(tokens []sqlparse.Token) string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Kind", "Value", "Line", "Col"})
	for _, t := range tokens {
		table.Append([]string{
			t.Kind.String(),
			t.Value,
			strconv.Itoa(t.Line),
			strconv.Itoa(t.Col),
		})
	}
	table.Render()
	return sb.String()
}

func (r *repl) readLine(previousInput string) string {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		panic(err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)
	if previousInput == "" {
		r.terminal.SetPrompt(prompt)
	} else {
		r.terminal.SetPrompt(promptContinued)
	}
	line, err := r.terminal.ReadLine()
	if err != nil {
		if err == io.EOF {
			term.Restore(int(os.Stdin.Fd()), oldState)
			r.exitGracefully()
		}
		panic("err reading line: " + err.Error())
	}
	return line
}

func (r *repl) writeLn(text string) {
	r.terminal.Write(([]byte)(text + "\n"))
}

func (r *repl) writeWarning(text string) {
	r.terminal.Write(r.terminal.Escape.Yellow)
	r.writeLn(text)
	r.terminal.Write(r.terminal.Escape.Reset)
}

func (r *repl) exitGracefully() {
	r.saveHistory()
	os.Exit(0)
}

func (r *repl) loadHistory() {
	p, err := r.getHistoryPath()
	if err != nil {
		r.writeWarning("failed to get history path " + err.Error())
		return
	}
	contents, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return
		}
		r.writeWarning("failed to load history " + err.Error())
		return
	}
	lines := strings.Split((string)(contents), "\n")
	slices.Reverse(lines)
	for _, line := range lines {
		if line == "" {
			continue
		}
		r.terminal.History.Add(line)
	}
}

func (r *repl) saveHistory() {
	history := []byte{}
	for i := range r.terminal.History.Len() {
		entry := r.terminal.History.At(i)
		history = append(history, ([]byte)(entry+"\n")...)
	}
	p, err := r.getHistoryPath()
	if err != nil {
		r.writeWarning("failed to get history path for saving " + err.Error())
		return
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		r.writeWarning("failed to open history file for saving " + err.Error())
		return
	}
	defer f.Close()
	err = f.Truncate(0)
	if err != nil {
		r.writeWarning("failed to overwrite history " + err.Error())
		return
	}
	_, err = f.Write(history)
	if err != nil {
		r.writeWarning("failed to write history " + err.Error())
		return
	}
}

func (r *repl) getHistoryPath() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return dir + "/.sqlparse_history", nil
}
