package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/engine"
	"github.com/chalkgo/chalk/internal/gallery"
)

func newBoundsCmd(_ *app) *cobra.Command {
	var sub string

	cmd := &cobra.Command{
		Use:   "bounds NAME",
		Short: "Print the bounding box of a diagram as JSON",
		Long: `Print the bounding box of a gallery diagram, or of its first subdiagram
named --name, as {"x","y","width","height"} JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := gallery.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", engine.ErrUnknownDiagram, args[0])
			}

			box := diagram.BoundingBox(d)
			if sub != "" {
				if box, ok = diagram.SubdiagramBoundingBox(d, sub); !ok {
					return fmt.Errorf("%s: no subdiagram named %q", args[0], sub)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), engine.RectToJSON(engine.RectFromBox(box)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&sub, "name", "n", "", "subdiagram name")
	return cmd
}
