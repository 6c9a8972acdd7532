package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	httpx "github.com/neogulmap/neogulmap/internal/http"
	oauthx "github.com/neogulmap/neogulmap/internal/oauth"
	"github.com/neogulmap/neogulmap/internal/oauth/authrequest"
)

func randB64(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// SocialStart inicia el login social.
// GET /v1/auth/social/{provider}/start?redirect_uri=...
//
// Persiste el authorization request en la cookie firmada y redirige al
// provider. El redirect_uri pedido viaja crudo en su cookie; la allow-list
// recién se aplica en el callback (si no pasa, simplemente no hay redirect
// custom: nunca es un error de login).
func (h *Handlers) SocialStart(w http.ResponseWriter, r *http.Request) {
	provider, err := oauthx.ParseProvider(chi.URLParam(r, "provider"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "unsupported_provider", "provider no soportado", 1601)
		return
	}
	ex := h.exchangerFor(provider)
	if ex == nil {
		httpx.WriteError(w, http.StatusNotFound, "provider_disabled", "provider deshabilitado", 1602)
		return
	}

	verifier := oauth2.GenerateVerifier()
	rec := &authrequest.Record{
		Provider:          provider,
		State:             randB64(24),
		Nonce:             randB64(16),
		Verifier:          verifier,
		PostLoginRedirect: strings.TrimSpace(r.URL.Query().Get("redirect_uri")),
	}
	if err := h.Transport.Save(w, rec); err != nil {
		h.Log.Error("authrequest_save_failed", zap.String("provider", provider.String()), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "no se pudo firmar el authorization request", 1603)
		return
	}

	authURL := ex.AuthCodeURL(rec.State, oauth2.S256ChallengeOption(verifier))
	h.Log.Info("social_start",
		zap.String("provider", provider.String()),
		zap.Bool("redirect_requested", rec.PostLoginRedirect != ""),
	)
	http.Redirect(w, r, authURL, http.StatusFound)
}
