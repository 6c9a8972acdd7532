package handlers

import (
	"net/http"
	"strings"

	httpx "github.com/neogulmap/neogulmap/internal/http"
	jwtx "github.com/neogulmap/neogulmap/internal/jwt"
)

// bearerOrCookie extrae el access token del header Authorization o, si no
// vino, de la cookie accessToken (el front web usa cookies HttpOnly).
func bearerOrCookie(r *http.Request) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah != "" && strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return strings.TrimSpace(ah[len("bearer "):])
	}
	if ck, err := r.Cookie(AccessTokenCookie); err == nil {
		return ck.Value
	}
	return ""
}

// authenticate valida el access token del request y devuelve sus claims.
// Cualquier problema (sin token, firma mala, vencido, typ!=access) es un 401
// uniforme: para el caller son todos "no autenticado".
func (h *Handlers) authenticate(w http.ResponseWriter, r *http.Request) *jwtx.Claims {
	raw := bearerOrCookie(r)
	if raw == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "falta access token", 1105)
		return nil
	}
	claims, err := h.Issuer.ValidateAccess(raw)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "token inválido o expirado", 1103)
		return nil
	}
	return claims
}
