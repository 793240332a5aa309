package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsbot/pkg/domain"
)

// statusHandler returns server and scheduler status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	if s.scheduler != nil {
		status["scheduler"] = s.scheduler.Status()
	}
	if s.reporter != nil {
		status["sources"] = s.reporter.Sources()
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// reportHandler returns the report of the last completed poll cycle
func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reporter.LastReport()
	if !ok {
		RenderError(w, r, fmt.Errorf("no completed poll cycle yet"), http.StatusNotFound)
		return
	}

	type outcomes struct {
		Started  time.Time              `json:"started"`
		Finished time.Time              `json:"finished"`
		Duration string                 `json:"duration"`
		Sources  []domain.SourceOutcome `json:"sources"`
	}
	RenderJSON(w, r, http.StatusOK, outcomes{
		Started:  report.Started,
		Finished: report.Finished,
		Duration: report.Finished.Sub(report.Started).Round(time.Millisecond).String(),
		Sources:  report.Sorted(),
	})
}

// sourcesHandler returns last notified titles of all sources, sources never notified have no record
func (s *Server) sourcesHandler(w http.ResponseWriter, r *http.Request) {
	recs, err := s.records.Records(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get source records: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []domain.SourceRecord{}
	}
	RenderJSON(w, r, http.StatusOK, recs)
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
