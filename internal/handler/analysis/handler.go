package analysis

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DomRamond/feeling-whatsapp-app/internal/render"
	analysisservice "github.com/DomRamond/feeling-whatsapp-app/internal/service/analysis"
	"github.com/DomRamond/feeling-whatsapp-app/pkg/utils"
)

const (
	defaultSampleLimit = 20
	maxSampleLimit     = 200
)

// Handler serves transcript uploads and analysis retrieval.
type Handler struct {
	svc      *analysisservice.Service
	maxBytes int64
}

// New creates the analysis handler. maxBytes caps uploads.
func New(svc *analysisservice.Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// RegisterRoutes mounts the analysis routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyses", h.handleCreate)
	r.Get("/analyses/{analysisID}", h.handleGet)
	r.Get("/analyses/{analysisID}/messages", h.handleMessages)
	r.Get("/analyses/{analysisID}/report", h.handleReport)
}

// summary is the JSON shape returned after a finished run.
type summary struct {
	ID           string      `json:"id"`
	FileName     string      `json:"fileName"`
	Charset      string      `json:"charset"`
	CreatedAt    string      `json:"createdAt"`
	MessageCount int         `json:"messageCount"`
	Report       interface{} `json:"report"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "unable to read upload; the transcript must be sent as multipart form data")
		return
	}

	file, header, err := r.FormFile("transcript")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "transcript file field is required")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "unable to read transcript file")
		return
	}

	token := r.FormValue("progressToken")
	result, err := h.svc.Run(r.Context(), token, header.Filename, raw)
	switch {
	case errors.Is(err, analysisservice.ErrNoMessages):
		utils.RespondError(w, http.StatusUnprocessableEntity,
			"no messages recognized; make sure the file is a plain-text WhatsApp chat export (.txt)")
		return
	case errors.Is(err, analysisservice.ErrAllFiltered):
		utils.RespondError(w, http.StatusUnprocessableEntity,
			"every message was filtered out as a system notice or too short; try FILTER_SYSTEM_MESSAGES=false")
		return
	case err != nil:
		log.Printf("[analysis] run failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	// Plain form posts from the upload page land on the report directly.
	if prefersHTML(r) {
		http.Redirect(w, r, "/api/analyses/"+result.ID+"/report", http.StatusSeeOther)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, summary{
		ID:           result.ID,
		FileName:     result.FileName,
		Charset:      result.Charset,
		CreatedAt:    result.CreatedAt.Format(time.RFC3339),
		MessageCount: len(result.Messages),
		Report:       result.Report,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Find(chi.URLParam(r, "analysisID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "analysis not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, summary{
		ID:           result.ID,
		FileName:     result.FileName,
		Charset:      result.Charset,
		CreatedAt:    result.CreatedAt.Format(time.RFC3339),
		MessageCount: len(result.Messages),
		Report:       result.Report,
	})
}

func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Find(chi.URLParam(r, "analysisID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "analysis not found")
		return
	}

	limit := defaultSampleLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxSampleLimit {
		limit = maxSampleLimit
	}

	msgs := result.Messages
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	utils.RespondJSON(w, http.StatusOK, msgs)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Find(chi.URLParam(r, "analysisID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "analysis not found")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Report(w, result, defaultSampleLimit); err != nil {
		log.Printf("[analysis] report render failed: %v", err)
	}
}

func prefersHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}
