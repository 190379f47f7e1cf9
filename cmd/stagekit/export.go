package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var minimise bool
	var structure bool

	cmd := &cobra.Command{
		Use:   "export <definition>",
		Short: "Print the exported state of a stage definition",
		Long: `Export builds the view tree described by a definition, tracks it,
and prints the resulting state: one active-frame path per layer, in
visual order. With --minimise, entries implied by defaults are
omitted; with --structure, every tracked path is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			eng, _, err := buildEngine(def)
			if err != nil {
				return err
			}

			var paths []string
			if structure {
				paths = eng.ExportStructure()
			} else {
				paths = eng.ExportState(minimise)
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&minimise, "minimise", "m", false, "Omit entries implied by layer defaults")
	cmd.Flags().BoolVar(&structure, "structure", false, "Print every tracked path instead of active state")

	return cmd
}
