package handlers

import (
	"errors"
	"net/http"

	httpx "github.com/neogulmap/neogulmap/internal/http"
	"github.com/neogulmap/neogulmap/internal/store/core"
)

// Me devuelve el usuario autenticado. Los claims del token alcanzan para
// identificarlo, pero el perfil se relee del store: los tokens no son
// revocables y pueden sobrevivir a mutaciones de la cuenta.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := h.authenticate(w, r)
	if claims == nil {
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Token válido de una cuenta borrada.
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "cuenta inexistente", 1104)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "no se pudo leer el usuario", 1106)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user":            publicUser(user),
		"profileComplete": user.ProfileComplete(),
		"provider":        user.Provider,
	})
}

// Logout borra las cookies de tokens. Los JWT emitidos siguen siendo válidos
// hasta su exp (no hay revocación); el TTL corto del access acota la ventana.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookies(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "sesión cerrada"})
}
