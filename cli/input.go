package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// stdinLabel names standard input in error positions.
const stdinLabel = "<stdin>"

// input is one SQL source to process.
type input struct {
	Label string
	SQL   string
}

// readInputs resolves the file arguments to SQL sources. With no arguments,
// or the argument "-", standard input is read instead.
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) == 0 {
		return readStdin(cmd)
	}
	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			in, err := readStdin(cmd)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, in...)
			continue
		}
		b, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		inputs = append(inputs, input{Label: arg, SQL: string(b)})
	}
	return inputs, nil
}

func readStdin(cmd *cobra.Command) ([]input, error) {
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read standard input: %w", err)
	}
	return []input{{Label: stdinLabel, SQL: string(b)}}, nil
}
