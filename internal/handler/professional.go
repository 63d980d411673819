package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type ProfessionalHandler struct {
	Repo repository.ProfessionalRepository
}

func (h ProfessionalHandler) RegisterViewRoutes(r chi.Router) {
	r.Get("/professionals", h.list)
}

func (h ProfessionalHandler) RegisterManageRoutes(r chi.Router) {
	r.Post("/professionals", h.upsert)
	r.Delete("/professionals/{id}", h.delete)
}

func (h ProfessionalHandler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"
	items, err := h.Repo.List(r.Context(), activeOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, toProfessionalResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ProfessionalHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req professionalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p := domain.Professional{
		Name:      strings.TrimSpace(req.Name),
		Specialty: strings.TrimSpace(req.Specialty),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Active:    true,
	}
	if req.ID != nil {
		p.ID = *req.ID
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	saved, err := h.Repo.Upsert(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfessionalResponse(*saved))
}

func (h ProfessionalHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func toProfessionalResponse(p domain.Professional) map[string]any {
	return map[string]any{
		"id":        p.ID,
		"name":      p.Name,
		"specialty": p.Specialty,
		"phone":     p.Phone,
		"email":     p.Email,
		"active":    p.Active,
	}
}
