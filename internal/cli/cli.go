// Package cli implements the roomplan command-line interface.
//
// The main commands are:
//   - solve: place the items of one scenario and write the result
//   - batch: solve every scenario in a directory
//   - compare: run one scenario under several settings variants
//   - import: build a scenario from a DXF room and a CSV/XLSX item list
//   - serve: expose the solver over HTTP
//
// All commands support --verbose (-v) for debug-level logging and --config
// for a settings file (JSON, YAML or TOML).
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomPlan/internal/model"
	"github.com/piwi3910/RoomPlan/internal/project"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer

	configPath string
	workers    int
}

// New creates a CLI that logs to logw and prints results to out.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		Out:    out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "roomplan",
		Short:        "RoomPlan places appliances in a room",
		Long:         `RoomPlan places fridges, ice makers and shelves inside a room outline, hugging the walls while keeping the door swing and fridge door clearances free.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(fmt.Sprintf("roomplan %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVar(&c.configPath, "config", project.DefaultConfigPath(), "settings file (.json, .yaml or .toml)")
	root.PersistentFlags().IntVar(&c.workers, "workers", 0, "goroutines evaluating candidates (0 keeps the configured value)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// settings loads the configured settings and applies flag overrides.
func (c *CLI) settings() (model.Settings, error) {
	s, err := project.LoadSettings(c.configPath)
	if err != nil {
		return model.Settings{}, err
	}
	if c.workers > 0 {
		s.Workers = c.workers
	}
	c.Logger.Debug("settings loaded", "path", c.configPath, "grid", s.GridSpacing, "workers", s.Workers)
	return s, nil
}

// loadScenario reads and validates a scenario file.
func (c *CLI) loadScenario(path string) (model.Scenario, error) {
	sc, err := project.LoadScenario(path)
	if err != nil {
		return model.Scenario{}, err
	}
	if err := sc.Validate(); err != nil {
		return model.Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}
