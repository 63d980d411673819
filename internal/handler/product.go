package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type ProductHandler struct {
	Repo repository.ProductRepository
}

func (h ProductHandler) RegisterViewRoutes(r chi.Router) {
	r.Get("/products", h.list)
	r.Get("/products/low-stock", h.lowStock)
}

func (h ProductHandler) RegisterManageRoutes(r chi.Router) {
	r.Post("/products", h.save)
	r.Delete("/products/{id}", h.delete)
}

func (h ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(items))
}

func (h ProductHandler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.LowStock(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(items))
}

func (h ProductHandler) save(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p := domain.Product{
		Name:     strings.TrimSpace(req.Name),
		Price:    req.Price,
		Stock:    req.Stock,
		MinStock: req.MinStock,
	}
	if req.ID != nil {
		p.ID = *req.ID
	}
	saved, err := h.Repo.Save(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses([]domain.Product{*saved})[0])
}

func (h ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func toProductResponses(items []domain.Product) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, p := range items {
		out = append(out, map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"price":    p.Price,
			"stock":    p.Stock,
			"minStock": p.MinStock,
			"lowStock": p.Stock <= p.MinStock,
		})
	}
	return out
}
