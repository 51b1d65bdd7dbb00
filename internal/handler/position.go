package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/service"
)

// PositionHandler serves the /positions CRUD endpoints.
type PositionHandler struct {
	positions *service.PositionService
	logger    *slog.Logger
}

// NewPositionHandler creates a PositionHandler.
func NewPositionHandler(positions *service.PositionService, logger *slog.Logger) *PositionHandler {
	return &PositionHandler{positions: positions, logger: logger}
}

// createPositionRequest is the POST body: the position fields minus id and
// timestamps, which the store assigns.
type createPositionRequest struct {
	Title       string `json:"title"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// HandleList returns every position, newest first.
//
// HTTP: GET /positions
func (h *PositionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positions.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positions)
}

// HandleCreate stores a new position.
//
// HTTP: POST /positions → 201 with the created record (including assigned
// id and timestamps), 400 when a required field is missing.
func (h *PositionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPositionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	position, err := h.positions.Create(r.Context(),
		req.Title, req.Department, req.Location, req.Description, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, position)
}

// HandleUpdate applies a partial update.
//
// HTTP: PUT /positions/{id} → 200 with the full merged record, 404 when the
// id is absent. Fields omitted from the body keep their stored values —
// the pointer-field request struct makes "omitted" and "empty" distinct.
func (h *PositionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var upd model.PositionUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}

	position, err := h.positions.Update(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, position)
}

// HandleDelete removes a position.
//
// HTTP: DELETE /positions/{id} → 204 empty body, 404 when the id is absent.
func (h *PositionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.positions.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
