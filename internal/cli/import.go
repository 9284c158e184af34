package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomPlan/internal/importer"
	"github.com/piwi3910/RoomPlan/internal/model"
	"github.com/piwi3910/RoomPlan/internal/project"
)

type importOpts struct {
	room   string
	items  string
	inward bool
	output string
}

func (c *CLI) importCommand() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build a scenario from a DXF room and an item list",
		Long: `Build a scenario from a DXF room outline and a CSV or XLSX item list.

The largest closed shape in the DXF becomes the room boundary. A LINE lying
on the boundary, but not one of its edges, is taken as the door.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.room, "room", "", "DXF file with the room outline (required)")
	cmd.Flags().StringVar(&opts.items, "items", "", "CSV or XLSX item list (required)")
	cmd.Flags().BoolVar(&opts.inward, "inward", false, "door opens into the room")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "scenario.json", "scenario file to write")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("items")

	return cmd
}

func (c *CLI) runImport(opts importOpts) error {
	rooms := importer.ImportRoomDXF(opts.room, opts.inward)
	for _, w := range rooms.Warnings {
		printWarning(c.Out, "%s", w)
	}
	for _, e := range rooms.Errors {
		printError(c.Out, "%s", e)
	}
	if len(rooms.Errors) > 0 {
		return model.NewError(model.ErrCodeInvalidGeometry, "no usable room in %s", opts.room)
	}

	items := importer.ImportItems(opts.items)
	for _, w := range items.Warnings {
		printWarning(c.Out, "%s", w)
	}
	for _, e := range items.Errors {
		printError(c.Out, "%s", e)
	}
	if len(items.Errors) > 0 {
		return fmt.Errorf("%d errors in %s", len(items.Errors), opts.items)
	}
	if len(items.Items) == 0 {
		return model.NewError(model.ErrCodeInvalidInput, "no items in %s", opts.items)
	}

	sc := model.NewScenario(rooms.Room, items.Items)
	if err := sc.Validate(); err != nil {
		return err
	}
	if err := project.SaveScenario(opts.output, sc); err != nil {
		return err
	}

	printSuccess(c.Out, "imported %d items", len(items.Items))
	if rooms.Room.Door == nil {
		printDetail(c.Out, "no door")
	}
	printFile(c.Out, opts.output)
	return nil
}
