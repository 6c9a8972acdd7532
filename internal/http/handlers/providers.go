package handlers

import (
	"net/http"

	httpx "github.com/neogulmap/neogulmap/internal/http"
	"github.com/neogulmap/neogulmap/internal/oauth"
)

// Providers lista los providers habilitados, para que la página de login
// sepa qué botones pintar.
func (h *Handlers) Providers(w http.ResponseWriter, r *http.Request) {
	type providerInfo struct {
		Name     string `json:"name"`
		StartURL string `json:"startUrl"`
	}
	out := make([]providerInfo, 0, len(h.Exchangers))
	for _, p := range oauth.Providers() {
		if _, ok := h.Exchangers[p]; ok {
			out = append(out, providerInfo{
				Name:     p.String(),
				StartURL: "/v1/auth/social/" + p.String() + "/start",
			})
		}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"providers": out})
}
