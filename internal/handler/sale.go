package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
	"salonpos-backend/internal/service"
)

type SaleHandler struct {
	Service service.SaleService
}

func (h SaleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sales", h.list)
	r.Get("/sales/{id}", h.get)
	r.Post("/sales", h.create)
}

func (h SaleHandler) list(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r, "date")
	if !ok {
		return
	}
	items, err := h.Service.List(r.Context(), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, toSaleResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h SaleHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	s, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleResponse(*s))
}

func (h SaleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := repository.CreateSaleInput{
		AppointmentID: req.AppointmentID,
		ClientID:      req.ClientID,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, repository.CreateSaleItem{
			ProductID:   it.ProductID,
			TreatmentID: it.TreatmentID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	for _, p := range req.Payments {
		in.Payments = append(in.Payments, repository.CreateSalePayment{
			PaymentMethodID: p.PaymentMethodID,
			Amount:          p.Amount,
		})
	}
	sale, err := h.Service.Record(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSaleResponse(*sale))
}

func toSaleResponse(s domain.Sale) map[string]any {
	items := make([]map[string]any, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, map[string]any{
			"id":          it.ID,
			"kind":        string(it.Kind),
			"productId":   it.ProductID,
			"treatmentId": it.TreatmentID,
			"name":        it.Name,
			"quantity":    it.Quantity,
			"unitPrice":   it.UnitPrice,
			"subtotal":    it.Subtotal,
		})
	}
	payments := make([]map[string]any, 0, len(s.Payments))
	for _, p := range s.Payments {
		payments = append(payments, map[string]any{
			"id":            p.ID,
			"amount":        p.Amount,
			"paymentMethod": toPaymentMethodResponse(p.PaymentMethod),
		})
	}
	return map[string]any{
		"id":            s.ID,
		"code":          s.Code,
		"appointmentId": s.AppointmentID,
		"clientId":      s.ClientID,
		"total":         s.Total,
		"items":         items,
		"payments":      payments,
		"createdAt":     s.CreatedAt,
	}
}
