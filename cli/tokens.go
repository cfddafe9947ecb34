package cli

import (
	"strconv"

	"github.com/astrel/sqlparse"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file...]",
		Short: "Print the token stream of SQL input",
		Long: `Scan the given files, or standard input, and print every token with its
position. Scanning stops at the first illegal token, which appears in
the table with its diagnostic as the value.`,
		Example: `  echo 'SELECT 1;' | sqlparse tokens`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Label", "Kind", "Value", "Line", "Col"})
			for _, in := range inputs {
				for _, t := range sqlparse.Tokens(in.SQL) {
					table.Append([]string{
						in.Label,
						t.Kind.String(),
						t.Value,
						strconv.Itoa(t.Line),
						strconv.Itoa(t.Col),
					})
				}
			}
			table.Render()
			return nil
		},
	}
}
