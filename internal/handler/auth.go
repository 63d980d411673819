package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/server/authctx"
	"salonpos-backend/internal/service"
)

type AuthHandler struct {
	Service      service.AuthService
	CookieName   string
	CookieSecure bool
}

func (h AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
	r.Post("/auth/google", h.loginGoogle)
	r.Post("/auth/logout", h.logout)
}

func (h AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/auth/me", h.me)
}

func (h AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.Service.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeAuthResponse(w, res)
}

func (h AuthHandler) loginGoogle(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.Service.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeAuthResponse(w, res)
}

func (h AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.Service.Me(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

func (h AuthHandler) writeAuthResponse(w http.ResponseWriter, res *service.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    res.AccessToken,
		Path:     "/",
		Expires:  time.Unix(res.ExpiresAt, 0),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"token":     res.AccessToken,
		"expiresAt": time.Unix(res.ExpiresAt, 0).UTC().Format(time.RFC3339),
		"user":      toUserResponse(res.User),
	})
}

func toUserResponse(u domain.User) map[string]any {
	return map[string]any{
		"id":           strconv.FormatInt(u.ID, 10),
		"name":         u.Name,
		"email":        u.Email,
		"role":         string(u.Role),
		"capabilities": domain.Capabilities(u.Role),
	}
}

type UserHandler struct {
	Service service.AuthService
}

func (h UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.list)
	r.Post("/users", h.create)
}

func (h UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.Service.CreateUser(r.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(*u))
}
