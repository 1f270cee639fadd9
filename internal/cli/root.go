// Package cli provides the command-line interface for doclet.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the doclet command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "doclet",
		Short: "Extract structured documentation from annotated source",
	}

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newGrammarsCommand())
	rootCmd.AddCommand(newVerifyCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the doclet version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version)
		},
	}
}
