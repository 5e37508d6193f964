package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-insight/service"
)

func assessForReport(t *testing.T) (*fixture, string) {
	t.Helper()
	f := newFixture(t, http.StatusOK, approveResponse)

	var form service.ApplicationForm
	require.NoError(t, readJSON(postJSON(validBody), &form))
	a, err := f.assessments.Assess(context.Background(), "10.1.1.1", form)
	require.NoError(t, err)
	return f, a.ID
}

func reportRequest(id, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/reports/"+id+query, nil)
	req.SetPathValue("id", id)
	return req
}

func TestReportHandler_Text(t *testing.T) {
	f, id := assessForReport(t)
	handler := NewReportHandler(f.assessments, discardLogger())
	handler.now = func() time.Time { return time.UnixMilli(1773480600000).UTC() }

	w := httptest.NewRecorder()
	handler.Download(w, reportRequest(id, ""))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="loan-prediction-report-1773480600000.txt"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Loan Prediction Assessment Report\n"))
	assert.Contains(t, w.Body.String(), "Result: APPROVED")
	assert.Contains(t, w.Body.String(), "Confidence Level: High")
}

func TestReportHandler_PDF(t *testing.T) {
	f, id := assessForReport(t)
	handler := NewReportHandler(f.assessments, discardLogger())

	w := httptest.NewRecorder()
	handler.Download(w, reportRequest(id, "?format=pdf"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestReportHandler_UnknownFormat(t *testing.T) {
	f, id := assessForReport(t)
	handler := NewReportHandler(f.assessments, discardLogger())

	w := httptest.NewRecorder()
	handler.Download(w, reportRequest(id, "?format=docx"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_NotFound(t *testing.T) {
	f := newFixture(t, http.StatusOK, approveResponse)
	handler := NewReportHandler(f.assessments, discardLogger())

	for _, id := range []string{"missing", "7d444840-9dc0-11d1-b245-5ffdce74fad2"} {
		w := httptest.NewRecorder()
		handler.Download(w, reportRequest(id, ""))
		assert.Equal(t, http.StatusNotFound, w.Code, id)
	}
}
