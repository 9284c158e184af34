package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RoomPlan/internal/model"
)

const kitchenBody = `{
  "boundary": [[0, 0], [6000, 0], [6000, 4000], [0, 4000]],
  "door": [[2000, 0], [2900, 0]],
  "isOpenInward": true,
  "algoToPlace": {"shelf_b": [1200, 400], "fridge_1": [800, 700]}
}`

type solveResponse struct {
	Feasible   bool `json:"feasible"`
	Placements []struct {
		Item     string     `json:"item"`
		Center   [2]float64 `json:"center"`
		Rotation int        `json:"rotation"`
	} `json:"placements"`
	Message    string `json:"message"`
	FailedItem string `json:"failedItem"`
	Stats      struct {
		Candidates int `json:"candidates"`
	} `json:"stats"`
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, New(model.DefaultSettings(), nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestDefaultSettings(t *testing.T) {
	rec := do(t, New(model.DefaultSettings(), nil), http.MethodGet, "/api/v1/settings/default", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var s model.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, model.DefaultSettings(), s)
}

func TestSolve_Feasible(t *testing.T) {
	rec := do(t, New(model.DefaultSettings(), nil), http.MethodPost, "/api/v1/solve", kitchenBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp solveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Feasible)
	require.Len(t, resp.Placements, 2)
	assert.Equal(t, "fridge_1", resp.Placements[0].Item, "fridges are placed first")
	assert.Positive(t, resp.Stats.Candidates)
	assert.Empty(t, resp.Message)
}

func TestSolve_Infeasible(t *testing.T) {
	body := `{"boundary": [[0,0],[500,0],[500,500],[0,500]], "door": [], "isOpenInward": false,
	          "algoToPlace": {"shelf_1": [2000, 1000]}}`
	rec := do(t, New(model.DefaultSettings(), nil), http.MethodPost, "/api/v1/solve", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp solveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Feasible)
	assert.Empty(t, resp.Placements)
	assert.Equal(t, "cannot place item: shelf_1", resp.Message)
	assert.Equal(t, "shelf_1", resp.FailedItem)
}

func TestSolve_RequestSettings(t *testing.T) {
	body := strings.TrimSuffix(strings.TrimSpace(kitchenBody), "}") + `, "settings": {"grid_spacing": 1000}}`
	coarse := do(t, New(model.DefaultSettings(), nil), http.MethodPost, "/api/v1/solve", body)
	fine := do(t, New(model.DefaultSettings(), nil), http.MethodPost, "/api/v1/solve", kitchenBody)
	require.Equal(t, http.StatusOK, coarse.Code, coarse.Body.String())

	var a, b solveResponse
	require.NoError(t, json.Unmarshal(coarse.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(fine.Body.Bytes(), &b))
	assert.Less(t, a.Stats.Candidates, b.Stats.Candidates)
}

func TestSolve_BadRequests(t *testing.T) {
	s := New(model.DefaultSettings(), nil)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   model.Code
	}{
		{"malformed json", "/api/v1/solve", `{`, http.StatusBadRequest, model.ErrCodeInvalidFormat},
		{"bad item dims", "/api/v1/solve", `{"algoToPlace": {"a": [1]}}`, http.StatusBadRequest, model.ErrCodeInvalidFormat},
		{"two vertices", "/api/v1/solve", `{"boundary": [[0,0],[1,0]]}`, http.StatusUnprocessableEntity, model.ErrCodeInvalidGeometry},
		{"zero door", "/api/v1/solve", `{"boundary": [[0,0],[1,0],[1,1]], "door": [[0,0],[0,0]]}`, http.StatusUnprocessableEntity, model.ErrCodeInvalidGeometry},
		{"unknown format", "/api/v1/solve?format=png", kitchenBody, http.StatusBadRequest, model.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestSolve_SVGAndGeoJSON(t *testing.T) {
	s := New(model.DefaultSettings(), nil)

	rec := do(t, s, http.MethodPost, "/api/v1/solve?format=svg", kitchenBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = do(t, s, http.MethodPost, "/api/v1/solve?format=geojson", kitchenBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"FeatureCollection"`)
}
