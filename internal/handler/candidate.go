package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/repository"
	"github.com/sakif/hiredesk/internal/service"
)

// CandidateHandler serves the /candidates CRUD endpoints.
type CandidateHandler struct {
	candidates *service.CandidateService
	logger     *slog.Logger
}

// NewCandidateHandler creates a CandidateHandler.
func NewCandidateHandler(candidates *service.CandidateService, logger *slog.Logger) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, logger: logger}
}

type createCandidateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PositionApplied string `json:"positionApplied"`
	ResumeLink      string `json:"resumeLink"`
	Status          string `json:"status"`
	PositionID      *int64 `json:"positionId"`
}

// HandleList returns candidates matching the query filters, newest first.
//
// HTTP: GET /candidates?position=&status=&search=
// All three query parameters are optional and combine with AND; search
// matches name or email case-insensitively.
func (h *CandidateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.CandidateFilter{
		Position: q.Get("position"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
	}

	candidates, err := h.candidates.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// HandleCreate stores a new candidate.
//
// HTTP: POST /candidates → 201, 400 when a required field is missing or the
// status is outside the known set. Omitted status defaults to "New".
func (h *CandidateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCandidateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	candidate, err := h.candidates.Create(r.Context(), service.CreateCandidateInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		PositionApplied: req.PositionApplied,
		ResumeLink:      req.ResumeLink,
		Status:          req.Status,
		PositionID:      req.PositionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}

// HandleUpdate applies a partial update.
//
// HTTP: PUT /candidates/{id} → 200 with the merged record, 404 when absent.
func (h *CandidateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var upd model.CandidateUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}

	candidate, err := h.candidates.Update(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, candidate)
}

// HandleDelete removes a candidate.
//
// HTTP: DELETE /candidates/{id} → 204, 404 when absent.
func (h *CandidateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.candidates.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
