package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <definition> <path>...",
		Short: "Resolve path expressions against a stage definition",
		Long: `Resolve builds the view tree described by a definition and prints
what each path expression resolves to. Expressions may name any
trailing portion of a registered path; a final segment starting with
"!" selects the enclosing layer.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			eng, _, err := buildEngine(def)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, expr := range args[1:] {
				descs, err := eng.ResolvePath(expr, nil)
				if err != nil {
					return err
				}
				for _, d := range descs {
					switch {
					case d.View != nil && d.Layer != nil:
						active := ""
						if d.Active {
							active = " (active)"
						}
						fmt.Fprintf(out, "%s -> frame %s in layer %s%s\n", expr, d.Path, d.Layer.Name(), active)
					case d.Layer != nil:
						fmt.Fprintf(out, "%s -> layer %s, selector %s\n", expr, d.Layer.Name(), d.FrameName)
					default:
						fmt.Fprintf(out, "%s -> view %s\n", expr, d.View.ID())
					}
				}
			}
			return nil
		},
	}

	return cmd
}
