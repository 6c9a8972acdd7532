// Package authrequest transporta el authorization request pendiente a través
// del redirect al provider, en cookies del propio cliente en vez de estado de
// sesión del server. Así el servicio escala horizontal sin session affinity.
//
// El record viaja firmado (JWT EdDSA) en una cookie HttpOnly de 180s. Una
// cookie forjada o corrupta falla cerrada: se trata como "no hay request
// pendiente". El consumo es de un solo uso; el anti-replay se marca en cache.
package authrequest

import (
	"context"
	"net/http"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/neogulmap/neogulmap/internal/cache"
	jwtx "github.com/neogulmap/neogulmap/internal/jwt"
	"github.com/neogulmap/neogulmap/internal/oauth"
)

const (
	// Nombres y TTL son contrato observable (el front y la app móvil los ven).
	CookieName         = "oauth2_auth_request"
	RedirectCookieName = "redirect_uri"
	TTL                = 180 * time.Second

	// aud del JWT del record; separa estos tokens de los access/refresh.
	audience = "oauth2-auth-request"

	// recordVersion permite cambiar el formato del record sin romper
	// callbacks en vuelo (un version desconocido falla cerrado).
	recordVersion = 1
)

// Record es el authorization request pendiente: lo necesario para correlacionar
// el start con su callback, más el destino post-login que pidió el caller.
type Record struct {
	Provider oauth.Provider
	State    string
	// Nonce viaja firmado pero hoy no se verifica contra ningún claim:
	// queda reservado para el check de nonce del ID token OIDC.
	Nonce    string
	Verifier string // PKCE code verifier
	// PostLoginRedirect es el valor CRUDO pedido por el caller; se valida
	// contra la allow-list recién en el callback, no acá.
	PostLoginRedirect string
	IssuedAt          time.Time
}

// Transport firma, persiste y consume el record vía cookies.
type Transport struct {
	Issuer   *jwtx.Issuer
	Cache    cache.Client
	Secure   bool
	SameSite string // "", "lax", "strict", "none"
}

func New(issuer *jwtx.Issuer, c cache.Client, secure bool, sameSite string) *Transport {
	return &Transport{Issuer: issuer, Cache: c, Secure: secure, SameSite: sameSite}
}

// Save serializa el record firmado y lo deja en las cookies de la respuesta.
func (t *Transport) Save(w http.ResponseWriter, rec *Record) error {
	now := time.Now().UTC()
	claims := jwtv5.MapClaims{
		"iss":      t.Issuer.Iss,
		"aud":      audience,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(TTL).Unix(),
		"v":        recordVersion,
		"provider": string(rec.Provider),
		"state":    rec.State,
		"nonce":    rec.Nonce,
		"verifier": rec.Verifier,
	}
	signed, err := t.Issuer.SignRaw(claims)
	if err != nil {
		return err
	}

	http.SetCookie(w, t.cookie(CookieName, signed, TTL))
	if rec.PostLoginRedirect != "" {
		http.SetCookie(w, t.cookie(RedirectCookieName, rec.PostLoginRedirect, TTL))
	} else {
		// Un start sin destino pisa el redirect de un intento abandonado:
		// cada attempt es autocontenido.
		http.SetCookie(w, t.deletion(RedirectCookieName))
	}
	return nil
}

// Load lee y verifica el record desde las cookies del request. Devuelve nil
// ante cualquier problema (cookie ausente, firma mala, vencida, versión
// desconocida): fail closed, nunca un default explotable.
func (t *Transport) Load(r *http.Request) *Record {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return nil
	}

	tok, err := jwtv5.Parse(ck.Value, t.Issuer.Keyfunc(),
		jwtv5.WithValidMethods([]string{"EdDSA"}),
		jwtv5.WithIssuer(t.Issuer.Iss),
		jwtv5.WithAudience(audience),
	)
	if err != nil || !tok.Valid {
		return nil
	}
	mc, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil
	}
	if v, _ := mc["v"].(float64); int(v) != recordVersion {
		return nil
	}

	providerRaw, _ := mc["provider"].(string)
	provider, err := oauth.ParseProvider(providerRaw)
	if err != nil {
		return nil
	}
	rec := &Record{Provider: provider}
	rec.State, _ = mc["state"].(string)
	rec.Nonce, _ = mc["nonce"].(string)
	rec.Verifier, _ = mc["verifier"].(string)
	if f, ok := mc["iat"].(float64); ok {
		rec.IssuedAt = time.Unix(int64(f), 0)
	}
	if rec.State == "" {
		return nil
	}

	if rc, err := r.Cookie(RedirectCookieName); err == nil {
		rec.PostLoginRedirect = rc.Value
	}
	return rec
}

// Clear borra ambas cookies. Corre exactamente una vez por callback, con
// éxito o con falla, para que un record viejo no se pueda reusar.
func (t *Transport) Clear(w http.ResponseWriter) {
	http.SetCookie(w, t.deletion(CookieName))
	http.SetCookie(w, t.deletion(RedirectCookieName))
}

// Consume marca el state como usado (TTL igual al del record). Devuelve
// false si ya estaba marcado: replay de un callback anterior.
func (t *Transport) Consume(ctx context.Context, rec *Record) bool {
	if t.Cache == nil {
		return true
	}
	ok, err := t.Cache.SetNX(ctx, "authreq:seen:"+rec.State, "1", TTL)
	if err != nil {
		// Cache caído no bloquea logins; la cookie borrada sigue cubriendo
		// el caso normal.
		return true
	}
	return ok
}

func (t *Transport) cookie(name, value string, ttl time.Duration) *http.Cookie {
	ss := parseSameSite(t.SameSite)
	if ss == http.SameSiteNoneMode && !t.Secure {
		// SameSite=None sin Secure lo rechazan los browsers; degradamos.
		ss = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().UTC().Add(ttl),
		Secure:   t.Secure,
		HttpOnly: true,
		SameSite: ss,
	}
}

func (t *Transport) deletion(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		Secure:   t.Secure,
		HttpOnly: true,
		SameSite: parseSameSite(t.SameSite),
	}
}

func parseSameSite(s string) http.SameSite {
	switch s {
	case "", "lax", "Lax":
		return http.SameSiteLaxMode
	case "strict", "Strict":
		return http.SameSiteStrictMode
	case "none", "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
