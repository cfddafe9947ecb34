package cli

import (
	"fmt"

	"github.com/astrel/sqlparse"
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render [file...]",
		Short: "Parse SQL and print it back in canonical form",
		Long: `Parse the given files, or standard input, and print each back as one
canonical statement per line. Formatting of the input is discarded;
the output parses to the same tree.`,
		Example: `  # Normalize a file
  sqlparse render messy.sql

  # Upper case keywords
  sqlparse render --upper-keywords messy.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())

			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			for _, in := range inputs {
				tree, err := sqlparse.Parse(in.SQL, in.Label, cfg.TypeParams)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sqlparse.Render(tree, cfg.UpperKeywords))
			}
			return nil
		},
	}
}
