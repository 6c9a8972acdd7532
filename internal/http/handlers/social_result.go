package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	httpx "github.com/neogulmap/neogulmap/internal/http"
	"github.com/neogulmap/neogulmap/internal/oauth/redirect"
	"github.com/neogulmap/neogulmap/internal/store/core"
)

// Este archivo es el único punto que decide la forma de la respuesta del
// flujo social (JSON vs redirect vs deep link), para éxito y para falla.
// La negociación es una sola: Accept incluye application/json ⇒ JSON.

// loginUser es la vista pública del usuario en las respuestas JSON.
type loginUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type loginSuccess struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	RequiresSignup bool      `json:"requiresSignup"`
	User           loginUser `json:"user"`
}

type loginFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func publicUser(u *core.User) loginUser {
	out := loginUser{ID: u.ID, Email: u.Email}
	if u.Nickname != nil {
		out.Nickname = *u.Nickname
	}
	return out
}

// dispatchSuccess cierra un login exitoso:
//
//   - Accept JSON ⇒ cookies de tokens + cuerpo {success, requiresSignup, user}
//   - destino deep link (esquema de app móvil, ya allow-listed) ⇒ redirect con
//     access_token y profile_complete en la query; trade-off deliberado para
//     el handoff a la app, único caso de token en URL
//   - resto ⇒ cookies HttpOnly y redirect: signup si falta completar perfil,
//     si no el destino resuelto o el home configurado
func (h *Handlers) dispatchSuccess(w http.ResponseWriter, r *http.Request, u *core.User, access, refresh, target string) {
	profileComplete := u.ProfileComplete()

	if httpx.AcceptsJSON(r) {
		h.setTokenCookies(w, access, refresh)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		httpx.WriteJSON(w, http.StatusOK, loginSuccess{
			Success:        true,
			Message:        "login social completado",
			RequiresSignup: !profileComplete,
			User:           publicUser(u),
		})
		return
	}

	if target != "" && redirect.IsDeepLink(target) {
		http.Redirect(w, r, withQuery(target, map[string]string{
			"access_token":     access,
			"profile_complete": strconv.FormatBool(profileComplete),
		}), http.StatusFound)
		return
	}

	h.setTokenCookies(w, access, refresh)

	var dest string
	switch {
	case !profileComplete:
		dest = withQuery(h.Cfg.OAuth2.SignupRedirectURL, map[string]string{"email": u.Email})
	case target != "":
		dest = target
	default:
		dest = h.Cfg.OAuth2.SuccessRedirectURL
	}
	http.Redirect(w, r, dest, http.StatusFound)
}

// dispatchFailure cierra un intento fallido con un código sanitizado del
// enum de social_callback.go. La cookie del authorization request ya fue
// borrada por el caller.
func (h *Handlers) dispatchFailure(w http.ResponseWriter, r *http.Request, provider, code string, status int) {
	httpx.ObserveSocialLogin(provider, code)

	if httpx.AcceptsJSON(r) {
		httpx.WriteJSON(w, status, loginFailure{
			Success: false,
			Message: "el login social falló",
			Error:   code,
		})
		return
	}
	// Página de falla fija same-origin; solo viaja el código enumerable.
	http.Redirect(w, r, withQuery(h.Cfg.OAuth2.FailureRedirectURL, map[string]string{"error": code}), http.StatusFound)
}

// withQuery agrega parámetros preservando la query existente del destino.
func withQuery(target string, params map[string]string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
