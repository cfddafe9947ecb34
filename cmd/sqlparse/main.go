// Command sqlparse parses SQL text and prints it back as canonical SQL, a
// syntax tree, or a token table.
package main

import (
	"os"

	"github.com/astrel/sqlparse/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
