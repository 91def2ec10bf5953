package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/picourse/api/internal/service"
)

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.tutors.ListSubjects(r.Context())
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSubjectPayloads(subjects))
}

func (h *Handler) ListTutors(w http.ResponseWriter, r *http.Request) {
	in := service.ListTutorsInput{
		Search:   r.URL.Query().Get("search"),
		Ordering: r.URL.Query().Get("ordering"),
	}

	if raw := r.URL.Query().Get("subject"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "subject must be an integer id"})
			return
		}
		in.SubjectID = &id
	}

	tutors, err := h.tutors.ListTutors(r.Context(), in)
	if err != nil {
		h.error(w, err)
		return
	}

	payloads := make([]tutorPayload, 0, len(tutors))
	for _, t := range tutors {
		payloads = append(payloads, newTutorPayload(t))
	}

	writeJSON(w, http.StatusOK, payloads)
}

func (h *Handler) GetTutor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid tutor id"})
		return
	}

	tutor, err := h.tutors.GetTutor(r.Context(), id)
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newTutorDetailPayload(tutor))
}
