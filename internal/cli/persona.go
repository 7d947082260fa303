package cli

import (
	"github.com/spf13/cobra"
)

func newPersonaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "persona",
		Short: "Persona commands",
	}

	cmd.AddCommand(newPersonaListCmd())

	return cmd
}

func newPersonaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the cast of personas",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PersonaList

			if err := client.Get("/api/personas", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCluesCmd() *cobra.Command {
	var murder bool

	cmd := &cobra.Command{
		Use:   "clues",
		Short: "Show your clues, or the murder clues with --murder (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if murder {
				var result MurderClues
				if err := client.Get("/api/clues/murder", &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result Clues
			if err := client.Get("/api/clues", &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&murder, "murder", false, "Show the murder clue sets (admin only)")

	return cmd
}
