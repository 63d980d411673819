package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type TreatmentHandler struct {
	Repo repository.TreatmentRepository
}

func (h TreatmentHandler) RegisterViewRoutes(r chi.Router) {
	r.Get("/treatments", h.list)
	r.Get("/treatments/{id}", h.get)
}

func (h TreatmentHandler) RegisterManageRoutes(r chi.Router) {
	r.Post("/treatments", h.save)
	r.Delete("/treatments/{id}", h.delete)
}

func (h TreatmentHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, t := range items {
		resp = append(resp, toTreatmentResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h TreatmentHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	t, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTreatmentResponse(*t))
}

func (h TreatmentHandler) save(w http.ResponseWriter, r *http.Request) {
	var req treatmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t := domain.Treatment{
		ParentID:        req.ParentID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	}
	if req.ID != nil {
		t.ID = *req.ID
	}
	saved, err := h.Repo.Save(r.Context(), t)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTreatmentResponse(*saved))
}

func (h TreatmentHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func toTreatmentResponse(t domain.Treatment) map[string]any {
	subs := make([]map[string]any, 0, len(t.SubTreatments))
	for _, s := range t.SubTreatments {
		subs = append(subs, toTreatmentResponse(s))
	}
	return map[string]any{
		"id":              t.ID,
		"parentId":        t.ParentID,
		"name":            t.Name,
		"description":     t.Description,
		"price":           t.Price,
		"durationMinutes": t.DurationMinutes,
		"subTreatments":   subs,
	}
}
