package cli

import (
	"path/filepath"
	"strings"

	"github.com/piwi3910/RoomPlan/internal/export"
	"github.com/piwi3910/RoomPlan/internal/model"
	"github.com/piwi3910/RoomPlan/internal/project"
)

// drawingFormats lists the extensions accepted by --draw.
var drawingFormats = []string{".svg", ".pdf", ".dxf", ".geojson", ".xlsx"}

// rendererFor picks the exporter matching the file extension.
func rendererFor(path string, settings model.Settings) (project.Renderer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return export.ExportSVG, nil
	case ".pdf":
		return func(p string, room model.Room, res model.Result) error {
			return export.ExportPDF(p, room, res, settings)
		}, nil
	case ".dxf":
		return export.ExportDXF, nil
	case ".geojson":
		return export.ExportGeoJSON, nil
	case ".xlsx":
		return export.ExportXLSX, nil
	default:
		return nil, model.NewError(model.ErrCodeInvalidFormat,
			"unsupported drawing format %q (want one of %s)", filepath.Ext(path), strings.Join(drawingFormats, ", "))
	}
}
