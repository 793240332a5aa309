package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsbot/pkg/domain"
	"github.com/umputun/newsbot/pkg/scheduler"
	"github.com/umputun/newsbot/server/mocks"
)

func testConfig(listen string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return listen, 30 * time.Second },
	}
}

func testReport() domain.CycleReport {
	started := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	report := domain.NewCycleReport(started)
	report.Finished = started.Add(1500 * time.Millisecond)
	report.Outcomes[domain.AgencyC] = domain.SourceOutcome{Source: domain.AgencyC, Status: domain.StatusFetchFailed, Reason: "timeout"}
	report.Outcomes[domain.AgencyA] = domain.SourceOutcome{Source: domain.AgencyA, Status: domain.StatusNotified, Title: "T1"}
	report.Outcomes[domain.AgencyB] = domain.SourceOutcome{Source: domain.AgencyB, Status: domain.StatusUnchanged}
	return report
}

func TestServer_New(t *testing.T) {
	srv := New(Params{Config: testConfig(":8080"), Version: "1.0.0"})
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	reporter := &mocks.ReporterMock{
		LastReportFunc: func() (domain.CycleReport, bool) { return testReport(), true },
	}
	srv := New(Params{Config: testConfig(fmt.Sprintf("127.0.0.1:%d", port)), Reporter: reporter, Version: "1.0.0", Debug: true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/api/v1/report", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "newsbot", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("server not stopped")
	}
}

func TestServer_statusHandler(t *testing.T) {
	sched := &mocks.SchedulerMock{StatusFunc: func() scheduler.Status {
		return scheduler.Status{State: scheduler.StateRunning, Interval: 5 * time.Minute, Cycles: 7}
	}}
	reporter := &mocks.ReporterMock{SourcesFunc: func() []domain.SourceID { return domain.AllSources() }}
	srv := New(Params{Config: testConfig(":8080"), Scheduler: sched, Reporter: reporter, Version: "1.2.3"})

	req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status struct {
		Status    string            `json:"status"`
		Version   string            `json:"version"`
		Time      time.Time         `json:"time"`
		Scheduler scheduler.Status  `json:"scheduler"`
		Sources   []domain.SourceID `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.False(t, status.Time.IsZero())
	assert.Equal(t, scheduler.StateRunning, status.Scheduler.State)
	assert.Equal(t, 7, status.Scheduler.Cycles)
	assert.Equal(t, domain.AllSources(), status.Sources)
}

func TestServer_reportHandler(t *testing.T) {
	t.Run("last report", func(t *testing.T) {
		reporter := &mocks.ReporterMock{LastReportFunc: func() (domain.CycleReport, bool) { return testReport(), true }}
		srv := New(Params{Config: testConfig(":8080"), Reporter: reporter})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/report", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Duration string                 `json:"duration"`
			Sources  []domain.SourceOutcome `json:"sources"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1.5s", resp.Duration)
		require.Len(t, resp.Sources, 3)
		assert.Equal(t, domain.AgencyA, resp.Sources[0].Source, "ordered by source")
		assert.Equal(t, domain.StatusNotified, resp.Sources[0].Status)
		assert.Equal(t, "T1", resp.Sources[0].Title)
		assert.Equal(t, domain.StatusFetchFailed, resp.Sources[2].Status)
		assert.Equal(t, "timeout", resp.Sources[2].Reason)
	})

	t.Run("no cycle yet", func(t *testing.T) {
		reporter := &mocks.ReporterMock{LastReportFunc: func() (domain.CycleReport, bool) { return domain.CycleReport{}, false }}
		srv := New(Params{Config: testConfig(":8080"), Reporter: reporter})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/report", http.NoBody))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "no completed poll cycle yet")
	})
}

func TestServer_sourcesHandler(t *testing.T) {
	updated := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("records", func(t *testing.T) {
		records := &mocks.RecordsMock{RecordsFunc: func(context.Context) ([]domain.SourceRecord, error) {
			return []domain.SourceRecord{{Source: domain.AgencyA, LastTitle: "T1", UpdatedAt: updated}}, nil
		}}
		srv := New(Params{Config: testConfig(":8080"), Records: records})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/sources", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)

		var recs []domain.SourceRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
		require.Len(t, recs, 1)
		assert.Equal(t, "T1", recs[0].LastTitle)
		assert.True(t, updated.Equal(recs[0].UpdatedAt))
		assert.Len(t, records.RecordsCalls(), 1)
	})

	t.Run("empty store", func(t *testing.T) {
		records := &mocks.RecordsMock{RecordsFunc: func(context.Context) ([]domain.SourceRecord, error) { return nil, nil }}
		srv := New(Params{Config: testConfig(":8080"), Records: records})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/sources", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		records := &mocks.RecordsMock{RecordsFunc: func(context.Context) ([]domain.SourceRecord, error) {
			return nil, errors.New("db closed")
		}}
		srv := New(Params{Config: testConfig(":8080"), Records: records})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/sources", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "db closed")
	})
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := New(Params{Config: testConfig(":8080")})
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/report", http.NoBody))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"))

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/unknown", http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenderJSON(t *testing.T) {
	data := map[string]string{
		"message": "test",
		"status":  "ok",
	}

	req := httptest.NewRequest("GET", "/test", http.NoBody)
	w := httptest.NewRecorder()

	RenderJSON(w, req, http.StatusOK, data)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, data, result)
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "generic error",
			err:          errors.New("something went wrong"),
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "something went wrong",
		},
		{
			name:         "nil error",
			err:          nil,
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", http.NoBody)
			w := httptest.NewRecorder()

			RenderError(w, req, tt.err, tt.expectedCode)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var result map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &result)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedMsg, result["error"])
		})
	}
}
