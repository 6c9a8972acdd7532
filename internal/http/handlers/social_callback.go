package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	httpx "github.com/neogulmap/neogulmap/internal/http"
	"github.com/neogulmap/neogulmap/internal/identity"
	oauthx "github.com/neogulmap/neogulmap/internal/oauth"
	"github.com/neogulmap/neogulmap/internal/util"
)

// Códigos de error sanitizados del flujo social. Son el enum completo que
// puede ver un browser en ?error=; nunca se filtra el mensaje interno.
const (
	errUnsupportedProvider = "unsupported_provider"
	errNoPendingRequest    = "no_pending_request"
	errReplayedRequest     = "replayed_request"
	errStateMismatch       = "state_mismatch"
	errProviderDenied      = "provider_denied"
	errExchangeFailed      = "exchange_failed"
	errIdentityInvalid     = "identity_invalid"
	errEmailMissing        = "email_missing"
	errAccountConflict     = "account_conflict"
	errServerError         = "server_error"
)

// SocialCallback procesa el retorno del provider.
// GET /v1/auth/social/{provider}/callback?code=...&state=... (o error=...)
//
// La cookie del authorization request se consume y borra exactamente una vez,
// con éxito o con falla, antes de despachar el resultado: un callback viejo o
// repetido no encuentra request pendiente.
func (h *Handlers) SocialCallback(w http.ResponseWriter, r *http.Request) {
	provider, err := oauthx.ParseProvider(chi.URLParam(r, "provider"))
	if err != nil {
		// Sin provider válido no hay request que consumir, pero limpiamos
		// igual por si quedó una cookie colgada.
		h.Transport.Clear(w)
		h.dispatchFailure(w, r, "unknown", errUnsupportedProvider, http.StatusBadRequest)
		return
	}
	p := provider.String()

	rec := h.Transport.Load(r)
	// Borrado incondicional: éxito, falla o cookie forjada, el record no se
	// reusa. Las deletion cookies salen antes de escribir el cuerpo.
	h.Transport.Clear(w)

	if rec == nil || rec.Provider != provider {
		h.dispatchFailure(w, r, p, errNoPendingRequest, http.StatusBadRequest)
		return
	}
	if !h.Transport.Consume(r.Context(), rec) {
		h.dispatchFailure(w, r, p, errReplayedRequest, http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	if e := strings.TrimSpace(q.Get("error")); e != "" {
		h.Log.Warn("social_provider_error", zap.String("provider", p), zap.String("error", e))
		h.dispatchFailure(w, r, p, errProviderDenied, http.StatusUnauthorized)
		return
	}
	state := strings.TrimSpace(q.Get("state"))
	code := strings.TrimSpace(q.Get("code"))
	if state == "" || code == "" || state != rec.State {
		h.dispatchFailure(w, r, p, errStateMismatch, http.StatusBadRequest)
		return
	}

	ex := h.exchangerFor(provider)
	if ex == nil {
		h.dispatchFailure(w, r, p, errUnsupportedProvider, http.StatusBadRequest)
		return
	}

	// Code exchange + userinfo: corre el colaborador, este handler nunca ve
	// el client secret.
	raw, err := ex.FetchIdentity(r.Context(), code, oauth2.VerifierOption(rec.Verifier))
	if err != nil {
		h.Log.Warn("social_exchange_failed", zap.String("provider", p), zap.Error(err))
		h.dispatchFailure(w, r, p, errExchangeFailed, http.StatusBadGateway)
		return
	}

	id, err := oauthx.Normalize(provider, raw)
	if err != nil {
		h.Log.Warn("social_identity_invalid", zap.String("provider", p), zap.Error(err))
		h.dispatchFailure(w, r, p, errIdentityInvalid, http.StatusUnauthorized)
		return
	}

	user, err := h.Identity.Resolve(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingEmail):
			h.dispatchFailure(w, r, p, errEmailMissing, http.StatusUnauthorized)
		case errors.Is(err, identity.ErrCrossProviderConflict):
			h.Log.Warn("social_account_conflict",
				zap.String("provider", p),
				zap.String("email", util.MaskEmail(id.Email)),
			)
			h.dispatchFailure(w, r, p, errAccountConflict, http.StatusConflict)
		default:
			h.Log.Error("social_provision_failed", zap.String("provider", p), zap.Error(err))
			h.dispatchFailure(w, r, p, errServerError, http.StatusInternalServerError)
		}
		return
	}

	access, _, err := h.Issuer.IssueAccess(user.ID, user.Email)
	if err == nil {
		var refresh string
		refresh, _, err = h.Issuer.IssueRefresh(user.ID, user.Email)
		if err == nil {
			target := h.Redirects.Resolve(rec.PostLoginRedirect)
			h.Log.Info("social_login_ok",
				zap.String("provider", p),
				zap.String("email", util.MaskEmail(user.Email)),
				zap.Bool("profile_complete", user.ProfileComplete()),
				zap.String("request_id", w.Header().Get("X-Request-ID")),
			)
			httpx.ObserveSocialLogin(p, "success")
			h.dispatchSuccess(w, r, user, access, refresh, target)
			return
		}
	}
	h.Log.Error("social_token_issue_failed", zap.String("provider", p), zap.Error(err))
	h.dispatchFailure(w, r, p, errServerError, http.StatusInternalServerError)
}
