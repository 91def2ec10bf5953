package api

import (
	"net/http"

	"github.com/picourse/api/internal/model"
	"github.com/picourse/api/internal/service"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            model.Role(req.Role),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		h.error(w, err)
		return
	}

	view, err := h.auth.Profile(r.Context(), model.Principal{ID: user.ID, Role: user.Role})
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    newProfilePayload(view),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	pair, _, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !h.decode(w, r, &req) {
		return
	}

	pair, err := h.auth.Refresh(r.Context(), req.Refresh)
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	view, err := h.auth.Profile(r.Context(), principal)
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newProfilePayload(view))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	var req updateProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.auth.UpdateProfile(r.Context(), principal, service.UpdateProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		GradeLevel: req.GradeLevel,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
		SubjectIDs: req.SubjectIDs,
	})
	if err != nil {
		h.error(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newProfilePayload(view))
}
