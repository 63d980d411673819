package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type PaymentMethodHandler struct {
	Repo repository.PaymentMethodRepository
}

func (h PaymentMethodHandler) RegisterViewRoutes(r chi.Router) {
	r.Get("/payment-methods", h.list)
}

func (h PaymentMethodHandler) RegisterManageRoutes(r chi.Router) {
	r.Post("/payment-methods", h.save)
}

func (h PaymentMethodHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, m := range items {
		resp = append(resp, toPaymentMethodResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h PaymentMethodHandler) save(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m := domain.PaymentMethod{Name: strings.TrimSpace(req.Name), Active: true}
	if req.ID != nil {
		m.ID = *req.ID
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	saved, err := h.Repo.Save(r.Context(), m)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentMethodResponse(*saved))
}

func toPaymentMethodResponse(m domain.PaymentMethod) map[string]any {
	return map[string]any{
		"id":     m.ID,
		"name":   m.Name,
		"active": m.Active,
	}
}
