package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomPlan/internal/engine"
)

func (c *CLI) compareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [scenario.json]",
		Short: "Solve a scenario under several settings variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.settings()
			if err != nil {
				return err
			}
			sc, err := c.loadScenario(args[0])
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(settings)
			results := engine.CompareScenarios(scenarios, sc.Room(), sc.Items(), engine.WithLogger(c.Logger))
			printComparison(c.Out, results)
			return nil
		},
	}
}
