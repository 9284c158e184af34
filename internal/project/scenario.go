package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/RoomPlan/internal/model"
)

// ResultDocument is the on-disk form of a solve result.
type ResultDocument struct {
	Feasible   bool              `json:"feasible"`
	Placements []model.Placement `json:"placements"`
	Message    string            `json:"message,omitempty"`
	FailedItem string            `json:"failedItem,omitempty"`
}

// NewResultDocument converts a solve result to its file form.
func NewResultDocument(res model.Result) ResultDocument {
	placements := res.Placements
	if placements == nil {
		placements = []model.Placement{}
	}
	return ResultDocument{
		Feasible:   res.Feasible,
		Placements: placements,
		Message:    res.Message,
		FailedItem: res.FailedItem,
	}
}

// LoadScenario reads a scenario document from a JSON file.
func LoadScenario(path string) (model.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Scenario{}, model.WrapError(model.ErrCodeFileNotFound, err, "scenario %s not found", path)
		}
		return model.Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario document.
func ParseScenario(data []byte) (model.Scenario, error) {
	var sc model.Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		if model.CodeOf(err) != "" {
			return model.Scenario{}, err
		}
		return model.Scenario{}, model.WrapError(model.ErrCodeInvalidFormat, err, "failed to parse scenario")
	}
	return sc, nil
}

// SaveScenario writes a scenario document as indented JSON.
func SaveScenario(path string, sc model.Scenario) error {
	return writeJSON(path, sc)
}

// SaveResult writes the solve result next to its scenario.
func SaveResult(path string, res model.Result) error {
	return writeJSON(path, NewResultDocument(res))
}

// LoadResult reads a result document written by SaveResult.
func LoadResult(path string) (ResultDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultDocument{}, fmt.Errorf("failed to read result: %w", err)
	}
	var doc ResultDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ResultDocument{}, model.WrapError(model.ErrCodeInvalidFormat, err, "failed to parse result")
	}
	return doc, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
