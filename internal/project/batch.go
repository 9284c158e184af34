package project

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/RoomPlan/internal/engine"
	"github.com/piwi3910/RoomPlan/internal/model"
)

const outputSuffix = ".output.json"

// Renderer draws a solved layout to path.
type Renderer func(path string, room model.Room, res model.Result) error

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Settings model.Settings
	Logger   *log.Logger

	// Render, when set, is called for feasible results only. The drawing is
	// written next to the scenario with DrawingExt as extension.
	Render     Renderer
	DrawingExt string
}

// BatchEntry reports the outcome for one scenario file.
type BatchEntry struct {
	Input   string
	Output  string
	Drawing string
	Result  model.Result
	Err     error
}

// ScenarioFiles lists the scenario documents in dir, skipping result files.
func ScenarioFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	files := matches[:0]
	for _, m := range matches {
		if !strings.HasSuffix(m, outputSuffix) {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath returns the result document path for a scenario file.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + outputSuffix
}

// RunBatch solves every scenario in dir and writes a result document for
// each. A file that cannot be read or solved is reported in its entry and
// does not stop the batch. Cancelling ctx stops before the next file.
func RunBatch(ctx context.Context, dir string, opts BatchOptions) ([]BatchEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, model.WrapError(model.ErrCodeFileNotFound, err, "batch directory %s", dir)
	}
	if !info.IsDir() {
		return nil, model.NewError(model.ErrCodeInvalidInput, "%s is not a directory", dir)
	}

	files, err := ScenarioFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	solver := engine.New(opts.Settings, engine.WithLogger(logger))

	entries := make([]BatchEntry, 0, len(files))
	for _, input := range files {
		if err := ctx.Err(); err != nil {
			return entries, err
		}

		entry := runOne(solver, input, opts)
		switch {
		case entry.Err != nil:
			logger.Error("scenario failed", "file", filepath.Base(input), "err", entry.Err)
		case entry.Result.Feasible:
			logger.Info("solved", "file", filepath.Base(input), "placed", len(entry.Result.Placements))
		default:
			logger.Warn("infeasible", "file", filepath.Base(input), "message", entry.Result.Message)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func runOne(solver *engine.Solver, input string, opts BatchOptions) BatchEntry {
	entry := BatchEntry{Input: input}

	sc, err := LoadScenario(input)
	if err != nil {
		entry.Err = err
		return entry
	}
	if err := sc.Validate(); err != nil {
		entry.Err = err
		return entry
	}

	room := sc.Room()
	entry.Result = solver.Solve(room, sc.Items())

	entry.Output = OutputPath(input)
	if err := SaveResult(entry.Output, entry.Result); err != nil {
		entry.Err = err
		return entry
	}

	if opts.Render != nil && entry.Result.Feasible {
		ext := opts.DrawingExt
		if ext == "" {
			ext = ".svg"
		}
		drawing := strings.TrimSuffix(input, filepath.Ext(input)) + ext
		if err := opts.Render(drawing, room, entry.Result); err != nil {
			entry.Err = fmt.Errorf("failed to render %s: %w", filepath.Base(drawing), err)
			return entry
		}
		entry.Drawing = drawing
	}
	return entry
}
