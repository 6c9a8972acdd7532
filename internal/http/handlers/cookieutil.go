package handlers

import (
	"net/http"
	"strings"
	"time"
)

// Nombres de cookies de tokens: contrato observable con el front.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// BuildTokenCookie arma la cookie HttpOnly de un token.
// SameSite=None sin Secure lo rechazan los navegadores; se degrada a Lax.
func BuildTokenCookie(name, value, domain, sameSite string, secure bool, ttl time.Duration) *http.Cookie {
	ss := parseSameSite(sameSite)
	if ss == http.SameSiteNoneMode && !secure {
		ss = http.SameSiteLaxMode
	}
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().UTC().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: ss,
	}
	if domain != "" {
		c.Domain = domain
	}
	return c
}

// BuildDeletionCookie devuelve una cookie que borra la original en el browser.
func BuildDeletionCookie(name, domain, sameSite string, secure bool) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		Secure:   secure,
		HttpOnly: true,
		SameSite: parseSameSite(sameSite),
	}
	if domain != "" {
		c.Domain = domain
	}
	return c
}

// setTokenCookies deja access y refresh como cookies HttpOnly.
func (h *Handlers) setTokenCookies(w http.ResponseWriter, access, refresh string) {
	ck := h.Cfg.Cookie
	http.SetCookie(w, BuildTokenCookie(AccessTokenCookie, access, ck.Domain, ck.SameSite, ck.Secure, h.Issuer.AccessTTL))
	http.SetCookie(w, BuildTokenCookie(RefreshTokenCookie, refresh, ck.Domain, ck.SameSite, ck.Secure, h.Issuer.RefreshTTL))
}

// clearTokenCookies borra ambas cookies de tokens (logout).
func (h *Handlers) clearTokenCookies(w http.ResponseWriter) {
	ck := h.Cfg.Cookie
	http.SetCookie(w, BuildDeletionCookie(AccessTokenCookie, ck.Domain, ck.SameSite, ck.Secure))
	http.SetCookie(w, BuildDeletionCookie(RefreshTokenCookie, ck.Domain, ck.SameSite, ck.Secure))
}
