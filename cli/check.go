package cli

import (
	"fmt"

	"github.com/astrel/sqlparse"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate SQL syntax",
		Long: `Parse the given files, or standard input, and report the first syntax
error in each. Exits non zero when any input fails to parse.`,
		Example: `  # Check a file
  sqlparse check schema.sql

  # Check a statement from a pipe
  echo 'SELECT 1;' | sqlparse check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			logger := GetLogger(cmd.Context())

			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			failed := 0
			for _, in := range inputs {
				logger.Debug("checking", "label", in.Label, "bytes", len(in.SQL))
				if _, err := sqlparse.Parse(in.SQL, in.Label, cfg.TypeParams); err != nil {
					failed++
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", in.Label)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed to parse", failed, len(inputs))
			}
			return nil
		},
	}
}
