package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	httpx "github.com/neogulmap/neogulmap/internal/http"
	"github.com/neogulmap/neogulmap/internal/store/core"
	"github.com/neogulmap/neogulmap/internal/util"
)

// refreshFromRequest extrae el refresh token de la cookie refreshToken o, si
// no vino, del header Authorization (clientes móviles sin cookies).
func refreshFromRequest(r *http.Request) string {
	if ck, err := r.Cookie(RefreshTokenCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah != "" && strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return strings.TrimSpace(ah[len("bearer "):])
	}
	return ""
}

// Refresh renueva el access token a partir de un refresh token válido.
// POST /v1/auth/refresh
//
// El refresh exige typ=refresh; la cuenta se relee del store para que un
// refresh de una cuenta borrada no resucite la sesión. El refresh token no
// rota: vive sus 30 días y el front vuelve al login social cuando vence.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	raw := refreshFromRequest(r)
	if raw == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "falta refresh token", 1107)
		return
	}
	claims, err := h.Issuer.ValidateRefresh(raw)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "refresh token inválido o expirado", 1108)
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "cuenta inexistente", 1109)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "no se pudo leer el usuario", 1110)
		return
	}

	access, _, err := h.Issuer.IssueAccess(user.ID, user.Email)
	if err != nil {
		h.Log.Error("refresh_issue_failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "no se pudo emitir el access token", 1111)
		return
	}

	ck := h.Cfg.Cookie
	http.SetCookie(w, BuildTokenCookie(AccessTokenCookie, access, ck.Domain, ck.SameSite, ck.Secure, h.Issuer.AccessTTL))
	w.Header().Set("Cache-Control", "no-store")

	h.Log.Info("token_refreshed", zap.String("email", util.MaskEmail(user.Email)))
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "access token renovado",
		"accessToken": access,
		"user":        publicUser(user),
	})
}
