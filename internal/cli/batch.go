package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomPlan/internal/project"
)

func (c *CLI) batchCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "batch [dir]",
		Short: "Solve every scenario in a directory",
		Long:  `Solve every *.json scenario in a directory, writing <name>.output.json next to each and a drawing for every feasible layout.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.settings()
			if err != nil {
				return err
			}

			opts := project.BatchOptions{Settings: settings, Logger: c.Logger}
			if format != "" && format != "none" {
				ext := "." + format
				render, err := rendererFor("layout"+ext, settings)
				if err != nil {
					return err
				}
				opts.Render = render
				opts.DrawingExt = ext
			}

			prog := newProgress(c.Logger)
			entries, err := project.RunBatch(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("processed %d scenarios", len(entries)))

			failed := 0
			for _, e := range entries {
				name := filepath.Base(e.Input)
				switch {
				case e.Err != nil:
					failed++
					printError(c.Out, "%s: %v", name, e.Err)
				case e.Result.Feasible:
					printSuccess(c.Out, "%s: %d items placed", name, len(e.Result.Placements))
				default:
					printWarning(c.Out, "%s: %s", name, e.Result.Message)
				}
				if e.Drawing != "" {
					printFile(c.Out, e.Drawing)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(entries))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "draw", "svg", "drawing format for feasible layouts (svg, pdf, dxf, geojson, xlsx or none)")
	return cmd
}
