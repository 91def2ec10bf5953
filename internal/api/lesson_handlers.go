package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/picourse/api/internal/model"
	"github.com/picourse/api/internal/service"
)

func (h *Handler) ListLessonRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	requests, err := h.lessons.List(
		r.Context(),
		principal,
		r.URL.Query().Get("role"),
		r.URL.Query().Get("status"),
	)
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newLessonRequestPayloads(requests))
}

func (h *Handler) CreateLessonRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	var req createLessonRequest
	if !h.decode(w, r, &req) {
		return
	}

	created, err := h.lessons.Create(r.Context(), principal, service.CreateLessonInput{
		TutorID:         req.TutorID,
		SubjectID:       req.SubjectID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Note:            req.Note,
	})
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newLessonRequestPayload(created))
}

func (h *Handler) UpdateLessonRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lesson request id"})
		return
	}

	var req updateLessonRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.lessons.UpdateStatus(r.Context(), principal, id, model.LessonStatus(req.Status))
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newLessonRequestPayload(updated))
}
