package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tablewise/tablewise"
	"github.com/tablewise/tablewise/internal/config"
)

// maxUploadBytes caps the accepted CSV payload size (32 MiB)
const maxUploadBytes = 32 << 20

// tablePayload is the JSON shape for table contents. Cells are rendered
// to text; nulls render as empty strings.
type tablePayload struct {
	Columns   []string   `json:"columns"`
	Kinds     []string   `json:"kinds"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
	Truncated bool       `json:"truncated"`
}

// uploadResponse describes a freshly loaded session
type uploadResponse struct {
	SessionID string   `json:"session_id"`
	Name      string   `json:"name"`
	Rows      int      `json:"rows"`
	Columns   []string `json:"columns"`
	Kinds     []string `json:"kinds"`
}

// errorResponse is the JSON error envelope
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts a CSV payload, either as a multipart "file" field
// or as the raw request body, and creates a session holding the parsed
// table. Unreadable CSV input is a 400 with the parser's message.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	data, name, err := readUpload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tbl, err := tablewise.LoadCSVBytes(data)
	if err != nil {
		if errors.Is(err, tablewise.ErrParse) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	session := tablewise.NewSession().WithTable(name, tbl)
	s.store.Put(session)

	respondJSON(w, http.StatusCreated, uploadResponse{
		SessionID: session.ID.String(),
		Name:      session.Name,
		Rows:      tbl.Len(),
		Columns:   tbl.Columns(),
		Kinds:     columnKinds(tbl),
	})
}

// handlePreview returns the first rows of the session's table
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", config.GetGlobalConfig().PreviewRows)
	limited, truncated := tablewise.Limit(session.Table, limit)

	payload := renderTable(limited)
	payload.TotalRows = session.Table.Len()
	payload.Truncated = truncated
	respondJSON(w, http.StatusOK, payload)
}

// handleFilter returns the rows matching the q parameter
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	result := tablewise.Filter(session.Table, r.URL.Query().Get("q"))

	limit := queryInt(r, "limit", config.GetGlobalConfig().PreviewRows)
	limited, truncated := tablewise.Limit(result.Table, limit)

	payload := renderTable(limited)
	payload.TotalRows = result.MatchCount
	payload.Truncated = truncated
	respondJSON(w, http.StatusOK, payload)
}

// statsPayload mirrors DescribeResult with JSON-safe floats: NaN becomes
// null, which encoding/json cannot represent on a plain float64
type statsPayload struct {
	Columns []columnStatsPayload `json:"columns"`
	Summary tablewise.Summary    `json:"summary"`
}

type columnStatsPayload struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Sum    float64  `json:"sum"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Median *float64 `json:"median"`
	StdDev *float64 `json:"std_dev"`
}

// handleStats returns descriptive statistics for the named columns, or
// for all numeric columns when none are named
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var columns []string
	if raw := r.URL.Query().Get("columns"); raw != "" {
		columns = strings.Split(raw, ",")
	}

	result := tablewise.Describe(session.Table, columns...)

	payload := statsPayload{Columns: []columnStatsPayload{}, Summary: result.Summary}
	for _, cs := range result.Columns {
		payload.Columns = append(payload.Columns, columnStatsPayload{
			Name:   cs.Name,
			Count:  cs.Count,
			Mean:   jsonFloat(cs.Mean),
			Sum:    cs.Sum,
			Min:    jsonFloat(cs.Min),
			Max:    jsonFloat(cs.Max),
			Median: jsonFloat(cs.Median),
			StdDev: jsonFloat(cs.StdDev),
		})
	}
	respondJSON(w, http.StatusOK, payload)
}

// chartPayload couples the chart metadata with the rendered rows
type chartPayload struct {
	Data  tablewise.ChartData `json:"data"`
	Table tablePayload        `json:"table"`
}

// handleChart returns a chart-ready dataset for the x/y selection.
// Missing columns produce an empty dataset, not an error.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	xColumn := query.Get("x")
	if xColumn == "" {
		xColumn = tablewise.IndexColumn
	}

	var yColumns []string
	if raw := query.Get("y"); raw != "" {
		yColumns = strings.Split(raw, ",")
	}

	maxPoints := queryInt(r, "max", config.GetGlobalConfig().MaxChartPoints)

	chart := tablewise.PrepareChart(session.Table, xColumn, yColumns, maxPoints)
	respondJSON(w, http.StatusOK, chartPayload{
		Data:  chart,
		Table: renderTable(chart.Table),
	})
}

// handleInfo returns the dataset summary
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, tablewise.Inspect(session.Table))
}

// handleClear discards the session and its table
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	s.store.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// sessionFromRequest resolves the session named in the URL; it writes
// the error response itself when resolution fails
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (tablewise.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return tablewise.Session{}, false
	}

	session, ok := s.store.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return tablewise.Session{}, false
	}
	if !session.HasTable() {
		respondError(w, http.StatusConflict, "session has no table loaded")
		return tablewise.Session{}, false
	}
	return session, true
}

// readUpload extracts the CSV payload from a multipart form or the raw body
func readUpload(r *http.Request) ([]byte, string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", errors.New("missing multipart field 'file'")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", err
		}
		return data, header.Filename, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", err
	}
	return data, "upload.csv", nil
}

// renderTable converts a table to its JSON payload form
func renderTable(t *tablewise.Table) tablePayload {
	payload := tablePayload{
		Columns:   t.Columns(),
		Kinds:     columnKinds(t),
		Rows:      make([][]string, t.Len()),
		TotalRows: t.Len(),
	}

	rendered := make([][]string, 0, t.Width())
	for _, name := range payload.Columns {
		if values, ok := t.ColumnStrings(name); ok {
			rendered = append(rendered, values)
		}
	}

	for i := 0; i < t.Len(); i++ {
		row := make([]string, len(rendered))
		for j := range rendered {
			row[j] = rendered[j][i]
		}
		payload.Rows[i] = row
	}
	return payload
}

// columnKinds renders the kind tag of each column in order
func columnKinds(t *tablewise.Table) []string {
	kinds := make([]string, 0, t.Width())
	for _, name := range t.Columns() {
		if kind, ok := t.Kind(name); ok {
			kinds = append(kinds, kind.String())
		}
	}
	return kinds
}

// queryInt reads an integer query parameter with a fallback default
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// jsonFloat maps NaN to null for JSON encoding
func jsonFloat(v float64) *float64 {
	if v != v {
		return nil
	}
	return &v
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
