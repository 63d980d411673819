package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type ClientHandler struct {
	Repo repository.ClientRepository
}

func (h ClientHandler) RegisterRoutes(r chi.Router) {
	r.Get("/clients", h.list)
	r.Get("/clients/{id}", h.get)
	r.Post("/clients", h.upsert)
	r.Delete("/clients/{id}", h.delete)
}

func (h ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 500
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v < limit {
		limit = v
	}
	items, err := h.Repo.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, toClientResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ClientHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	c, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(*c))
}

func (h ClientHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c := domain.Client{
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
		Email: strings.TrimSpace(req.Email),
		Notes: req.Notes,
	}
	if req.ID != nil {
		c.ID = *req.ID
	}
	saved, err := h.Repo.Upsert(r.Context(), c)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(*saved))
}

func (h ClientHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func toClientResponse(c domain.Client) map[string]any {
	return map[string]any{
		"id":    c.ID,
		"name":  c.Name,
		"phone": c.Phone,
		"email": c.Email,
		"notes": c.Notes,
	}
}
