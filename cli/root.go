// Package cli provides the command line interface for sqlparse.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/astrel/sqlparse/config"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var cfgFile string

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlparse",
		Short: "sqlparse - SQL parser, renderer, and tree inspector",
		Long: `sqlparse parses SQL text into a syntax tree and prints it back as
canonical SQL, as an indented tree, or as a token table. It validates
syntax only and needs no database.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqlparse.yaml)")
	rootCmd.PersistentFlags().Bool("upper-keywords", false, "Render keywords upper case")
	rootCmd.PersistentFlags().Bool("type-params", false, "Keep column type parameters like VARCHAR(255) in the tree")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode (sql|ast|tokens)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputSQL, config.OutputAST, config.OutputTokens}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewDumpCommand())
	rootCmd.AddCommand(NewTokensCommand())
	rootCmd.AddCommand(NewReplCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{Output: config.DefaultOutput}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
