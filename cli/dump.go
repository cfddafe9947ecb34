package cli

import (
	"fmt"

	"github.com/astrel/sqlparse"
	"github.com/spf13/cobra"
)

// NewDumpCommand creates the dump command.
func NewDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file...]",
		Short: "Parse SQL and print the syntax tree",
		Long: `Parse the given files, or standard input, and print the syntax tree of
each, one line per node with children indented under their parent.`,
		Example: `  echo 'SELECT id FROM t;' | sqlparse dump`,
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
				fmt.Fprint(cmd.OutOrStdout(), sqlparse.Dump(tree))
			}
			return nil
		},
	}
}
