package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/service"
)

type SettingsHandler struct {
	Service service.SettingsService
}

func (h SettingsHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/settings/logo", h.logo)
}

func (h SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.get)
	r.Put("/settings", h.save)
	r.Post("/settings/logo", h.uploadLogo)
	r.Delete("/settings/logo", h.clearLogo)
}

func (h SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.Get(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeSettings(w, r, s)
}

func (h SettingsHandler) save(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.Service.Update(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeSettings(w, r, s)
}

// writeSettings returns the stored values together with the effective
// schedule the calculators use after configuration defaults apply.
func (h SettingsHandler) writeSettings(w http.ResponseWriter, r *http.Request, s *domain.Settings) {
	sched, err := h.Service.Schedule(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var commission any
	if s.CommissionPercentage.Valid {
		commission = s.CommissionPercentage.Decimal
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"businessName":         s.BusinessName,
		"businessAddress":      s.BusinessAddress,
		"businessPhone":        s.BusinessPhone,
		"currencyCode":         s.CurrencyCode,
		"workdayStart":         s.WorkdayStart,
		"workdayEnd":           s.WorkdayEnd,
		"slotMinutes":          s.SlotMinutes,
		"commissionPercentage": commission,
		"hasLogo":              s.HasLogo,
		"effective": map[string]any{
			"workdayStart":         sched.WorkdayStart.String(),
			"workdayEnd":           sched.WorkdayEnd.String(),
			"slotMinutes":          int(sched.Granularity.Minutes()),
			"clipToWorkday":        sched.ClipToWorkday,
			"commissionPercentage": sched.CommissionPercentage,
			"currencyCode":         sched.CurrencyCode,
		},
	})
}

func (h SettingsHandler) logo(w http.ResponseWriter, r *http.Request) {
	data, mime, err := h.Service.Logo(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h SettingsHandler) uploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxLogoBytes + 1<<20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxLogoBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}
	if err := h.Service.UploadLogo(r.Context(), data, header.Header.Get("Content-Type")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h SettingsHandler) clearLogo(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ClearLogo(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
