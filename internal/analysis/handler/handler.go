package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/validaeja/validaeja-backend/internal/analysis/approval"
	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
	"github.com/validaeja/validaeja-backend/internal/analysis/service"
	"github.com/validaeja/validaeja-backend/internal/analysis/session"
	"github.com/validaeja/validaeja-backend/pkg/errors"
	"github.com/validaeja/validaeja-backend/pkg/httputil"
	"github.com/validaeja/validaeja-backend/pkg/i18n"
	"github.com/validaeja/validaeja-backend/pkg/logger"
)

// maxUploadBytes caps the document upload size at 10MB
const maxUploadBytes = 10 << 20

// Handler exposes the document analysis HTTP API
type Handler struct {
	service *service.Service
	logger  *logger.Logger
}

// New creates a new analysis handler
func New(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		logger:  log.WithComponent("analysis-handler"),
	}
}

// RegisterRoutes mounts the analysis routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyses", h.CreateAnalysis)
	r.Get("/sessions/{sessionID}", h.GetSession)
	r.Post("/sessions/{sessionID}/reset", h.ResetSession)
}

// analyzeForm carries the optional multipart fields of an analysis request
type analyzeForm struct {
	SessionID string `validate:"omitempty,len=32,hexadecimal"`
	Language  string `validate:"omitempty,max=16"`
}

// sessionResponse is the API view of an analysis session. The verdict is
// recomputed from the stored result on every read using the request locale.
type sessionResponse struct {
	SessionID    string                  `json:"session_id"`
	State        session.State           `json:"state"`
	ErrorMessage string                  `json:"error_message,omitempty"`
	Result       *domain.AnalysisResult  `json:"result,omitempty"`
	Verdict      *domain.ApprovalVerdict `json:"verdict,omitempty"`
}

func toSessionResponse(sess *session.Session, loc *i18n.Localizer) *sessionResponse {
	resp := &sessionResponse{
		SessionID:    sess.ID,
		State:        sess.State,
		ErrorMessage: sess.ErrorMessage,
		Result:       sess.Result,
	}
	if sess.Result != nil {
		resp.Verdict = approval.Evaluate(sess.Result, loc)
	}
	return resp
}

// CreateAnalysis handles POST /analyses. It accepts a multipart form with
// the document image under "file" plus optional "session_id" and
// "language" fields, runs the analysis pipeline and returns the session
// with its result and verdict.
func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.ErrorLocalized(w, r, errors.BadRequestWithKey("upload.too_large"))
		return
	}

	form := analyzeForm{
		SessionID: r.FormValue("session_id"),
		Language:  r.FormValue("language"),
	}
	if err := httputil.Validate(form); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.ErrorLocalized(w, r, errors.BadRequestWithKey("upload.missing_file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.ErrorLocalized(w, r, errors.BadRequestWithKey("upload.missing_file"))
		return
	}

	if form.SessionID != "" {
		if sess, getErr := h.service.GetSession(form.SessionID); getErr == nil && sess.State == session.StateShowingResult {
			httputil.ErrorLocalized(w, r, errors.NewWithKey("SESSION_BUSY", "errors.session_busy", http.StatusConflict))
			return
		}
	}

	sess, err := h.service.Analyze(r.Context(), form.SessionID, data, form.Language)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	loc := i18n.LocalizerFromContext(r.Context())
	httputil.JSON(w, http.StatusOK, toSessionResponse(sess, loc))
}

// GetSession handles GET /sessions/{sessionID}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	loc := i18n.LocalizerFromContext(r.Context())
	httputil.JSON(w, http.StatusOK, toSessionResponse(sess, loc))
}

// ResetSession handles POST /sessions/{sessionID}/reset. It discards the
// stored result and error so another document can be analyzed.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Reset(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	loc := i18n.LocalizerFromContext(r.Context())
	httputil.JSON(w, http.StatusOK, toSessionResponse(sess, loc))
}
