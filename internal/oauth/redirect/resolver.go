// Package redirect valida el destino post-login pedido por el cliente.
//
// Es la guarda anti open-redirect: el flujo de login termina con un redirect
// que puede llevar un token fresco, así que el destino tiene que salir de la
// allow-list. Todo lo demás se trata como "no pidió redirect" y se cae al
// default same-origin; nunca es un error visible para el usuario.
package redirect

import (
	"net/url"
	"strings"
)

// Resolver compara contra orígenes exactos y prefijos permitidos
// (case-insensitive).
type Resolver struct {
	Allowed  []string
	Prefixes []string
}

func New(allowed, prefixes []string) *Resolver {
	return &Resolver{Allowed: allowed, Prefixes: prefixes}
}

// Resolve decodifica y normaliza el valor crudo (viene de la cookie
// redirect_uri) y devuelve el destino aceptado, o "" si no hay destino
// válido.
func (r *Resolver) Resolve(raw string) string {
	if raw == "" {
		return ""
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	target := normalize(decoded)
	if target == "" || !r.isAllowed(target) {
		return ""
	}
	return target
}

func (r *Resolver) isAllowed(target string) bool {
	lower := strings.ToLower(target)
	for _, a := range r.Allowed {
		if a = normalize(a); a != "" && strings.EqualFold(a, target) {
			return true
		}
	}
	for _, p := range r.Prefixes {
		p = strings.ToLower(normalize(p))
		if p == "" {
			continue
		}
		// el prefijo tiene que cortar en un límite de path para que
		// "https://app.com" no matchee "https://app.com.evil.example"
		if lower == p || strings.HasPrefix(lower, p+"/") {
			return true
		}
	}
	return false
}

// normalize recorta espacios y barras finales para que "https://app/" y
// "https://app" comparen igual.
func normalize(uri string) string {
	t := strings.TrimSpace(uri)
	for strings.HasSuffix(t, "/") {
		t = strings.TrimSuffix(t, "/")
	}
	return t
}

// IsDeepLink reporta si el destino es un esquema de app móvil
// (ej. nugulmap://oauth/callback): ni http ni https.
func IsDeepLink(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "":
		return false
	default:
		return true
	}
}
