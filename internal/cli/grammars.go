package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doclet-labs/doclet/internal/tagdict"
)

func newGrammarsCommand() *cobra.Command {
	var grammar string

	cmd := &cobra.Command{
		Use:   "grammars",
		Short: "List built-in tag grammars",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if grammar == "" {
				for _, name := range tagdict.BuiltinNames() {
					cmd.Println(name)
				}
				return nil
			}

			dict, err := tagdict.Builtin(grammar, false)
			if err != nil {
				return err
			}
			cmd.Printf("grammar: %s\n", dict.Name)
			cmd.Println("namespace kinds:")
			for _, k := range dict.NamespaceKinds() {
				cmd.Printf("  %s\n", k)
			}
			cmd.Println("tags:")
			for _, name := range dict.TagNames() {
				def, _ := dict.Lookup(name)
				line := "  @" + name
				if len(def.Synonyms) > 0 {
					line += fmt.Sprintf(" (synonyms: %v)", def.Synonyms)
				}
				cmd.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammar, "grammar", "", "Show the tag set of one grammar")
	return cmd
}
