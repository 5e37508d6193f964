package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"loan-insight/domain"
	"loan-insight/report"
	"loan-insight/service"
	"loan-insight/view"
)

type ReportHandler struct {
	service *service.AssessmentService
	logger  *slog.Logger
	now     func() time.Time
}

func NewReportHandler(service *service.AssessmentService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger, now: time.Now}
}

// Download handles GET /api/reports/{id}. ?format=pdf selects the PDF
// rendition; the default is plain text.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.service.Report(r.Context(), r.PathValue("id"))
	if errors.Is(err, domain.ErrReportNotFound) {
		writeError(w, http.StatusNotFound, "report not found or expired")
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "load report", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "unable to load report")
		return
	}

	assessment.ReportStored = true
	v := view.Build(assessment)
	now := h.now()

	switch format := r.URL.Query().Get("format"); format {
	case "", "txt", "text":
		attachment(w, "text/plain; charset=utf-8", report.Filename(now, "txt"))
		_, _ = w.Write([]byte(report.Text(v, now)))

	case "pdf":
		data, err := report.PDF(v, now)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "render pdf", "id", assessment.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "unable to render report")
			return
		}
		attachment(w, "application/pdf", report.Filename(now, "pdf"))
		_, _ = w.Write(data)

	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
	}
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
}
