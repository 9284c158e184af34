package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomPlan/internal/engine"
	"github.com/piwi3910/RoomPlan/internal/export"
	"github.com/piwi3910/RoomPlan/internal/project"
)

type solveOpts struct {
	output string   // result document path, defaults to <scenario>.output.json
	draw   []string // drawings to render (extension picks the format)
	labels string   // QR label sheet PDF
}

func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [scenario.json]",
		Short: "Place the items of a scenario and write the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "result file (default <scenario>.output.json)")
	cmd.Flags().StringSliceVar(&opts.draw, "draw", nil, "render the layout (.svg, .pdf, .dxf, .geojson, .xlsx), repeatable")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write QR-coded installation labels to this PDF")

	return cmd
}

func (c *CLI) runSolve(input string, opts solveOpts) error {
	settings, err := c.settings()
	if err != nil {
		return err
	}
	sc, err := c.loadScenario(input)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	room := sc.Room()
	res := engine.New(settings, engine.WithLogger(c.Logger)).Solve(room, sc.Items())
	prog.done("solved " + input)

	output := opts.output
	if output == "" {
		output = project.OutputPath(input)
	}
	if err := project.SaveResult(output, res); err != nil {
		return err
	}

	printResult(c.Out, res)
	printFile(c.Out, output)

	for _, path := range opts.draw {
		render, err := rendererFor(path, settings)
		if err != nil {
			return err
		}
		if err := render(path, room, res); err != nil {
			return err
		}
		printFile(c.Out, path)
	}

	if opts.labels != "" {
		if len(res.Placements) == 0 {
			printWarning(c.Out, "no placements, skipping labels")
		} else {
			if err := export.ExportLabels(opts.labels, res); err != nil {
				return err
			}
			printFile(c.Out, opts.labels)
		}
	}
	return nil
}
