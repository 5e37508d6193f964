package http

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"loan-insight/domain"
	"loan-insight/service"
	"loan-insight/view"
)

type AssessmentHandler struct {
	service *service.AssessmentService
	logger  *slog.Logger
}

func NewAssessmentHandler(service *service.AssessmentService, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{service: service, logger: logger}
}

// Assess handles POST /api/assess with a JSON or url-encoded form body.
func (h *AssessmentHandler) Assess(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}

	assessment, err := h.service.Assess(r.Context(), clientKey(r), form)
	if err != nil {
		h.writeAssessError(w, r, err)
		return
	}

	v := view.Build(assessment)
	renderer := view.ForAccept(r.Header.Get("Accept"))
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if err := renderer.Render(w, v); err != nil {
		h.logger.ErrorContext(r.Context(), "render assessment", "assessment_id", assessment.ID, "error", err)
	}
}

func (h *AssessmentHandler) decodeForm(w http.ResponseWriter, r *http.Request) (service.ApplicationForm, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		var form service.ApplicationForm
		if err := readJSON(r, &form); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return service.ApplicationForm{}, false
		}
		return form, true

	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return service.ApplicationForm{}, false
		}
		return service.ApplicationFormFromValues(r.Form), true

	default:
		writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json or a form")
		return service.ApplicationForm{}, false
	}
}

func (h *AssessmentHandler) writeAssessError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		transportErr  *domain.TransportError
	)

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, domain.ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, "A submission is already being processed. Please wait.")
	case errors.As(err, &transportErr):
		writeError(w, http.StatusBadGateway, domain.TransportUserMessage)
	default:
		h.logger.ErrorContext(r.Context(), "assessment failed", "error", err)
		writeError(w, http.StatusInternalServerError, domain.TransportUserMessage)
	}
}
