package cli

import (
	"github.com/astrel/sqlparse/repl"
	"github.com/spf13/cobra"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Statements are parsed when terminated by a
semi colon and printed in the configured output mode. Dot commands
switch modes; type .help inside the session to list them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repl.New(GetConfig(cmd.Context())).Run()
			return nil
		},
	}
}
