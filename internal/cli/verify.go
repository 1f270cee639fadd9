package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/doclet-labs/doclet/internal/validator"
)

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <database>",
		Short: "Check an exported doclet database for structural integrity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := validator.CheckFile(args[0])
			if err != nil {
				return err
			}

			cmd.Printf("grammar: %s\n", summary.Grammar)
			cmd.Printf("doclets: %d\n", summary.Doclets)
			cmd.Printf("links:   %d\n", summary.Links)
			for _, w := range summary.Warnings {
				cmd.Println(color.YellowString("warning: %s", w))
			}
			cmd.Println(color.GreenString("ok"))
			return nil
		},
	}
}
