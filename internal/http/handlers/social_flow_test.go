package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/neogulmap/neogulmap/internal/cache"
	"github.com/neogulmap/neogulmap/internal/config"
	"github.com/neogulmap/neogulmap/internal/http/handlers"
	"github.com/neogulmap/neogulmap/internal/http/router"
	"github.com/neogulmap/neogulmap/internal/identity"
	jwtx "github.com/neogulmap/neogulmap/internal/jwt"
	"github.com/neogulmap/neogulmap/internal/oauth"
	"github.com/neogulmap/neogulmap/internal/oauth/authrequest"
	"github.com/neogulmap/neogulmap/internal/oauth/redirect"
	"github.com/neogulmap/neogulmap/internal/store/core"
	"github.com/neogulmap/neogulmap/internal/store/memory"
)

// fakeExchanger reemplaza el code exchange real: devuelve el payload crudo
// configurado sin salir a la red.
type fakeExchanger struct {
	provider oauth.Provider
	raw      map[string]any
	err      error
}

func (f *fakeExchanger) Provider() oauth.Provider { return f.provider }

func (f *fakeExchanger) AuthCodeURL(state string, _ ...oauth2.AuthCodeOption) string {
	return "https://provider.example/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeExchanger) FetchIdentity(_ context.Context, _ string, _ ...oauth2.AuthCodeOption) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

type env struct {
	store   *memory.Store
	issuer  *jwtx.Issuer
	handler http.Handler
}

func newEnv(t *testing.T, exchangers map[oauth.Provider]oauth.Exchanger) *env {
	t.Helper()

	kp, err := jwtx.LoadOrGenerateKey("")
	require.NoError(t, err)
	issuer := jwtx.NewIssuer("neogulmap-test", kp)

	cfg := &config.Config{}
	cfg.Cookie.SameSite = "lax"
	cfg.OAuth2.SuccessRedirectURL = "http://localhost:3000"
	cfg.OAuth2.SignupRedirectURL = "http://localhost:3000/signup"
	cfg.OAuth2.FailureRedirectURL = "http://localhost:3000/login"
	cfg.OAuth2.AllowedRedirectURIs = []string{
		"http://localhost:3000",
		"nugulmap://oauth/callback",
	}

	st := memory.New()
	h := handlers.New(
		cfg,
		zap.NewNop(),
		st,
		issuer,
		authrequest.New(issuer, cache.NewMemory("t"), false, "lax"),
		redirect.New(cfg.OAuth2.AllowedRedirectURIs, cfg.OAuth2.AllowedRedirectURIPrefixes),
		identity.NewResolver(st),
		exchangers,
	)

	return &env{
		store:  st,
		issuer: issuer,
		handler: router.New(router.Deps{
			Log:      zap.NewNop(),
			Handlers: h,
			Store:    st,
			Registry: prometheus.NewRegistry(),
		}),
	}
}

func googleEnv(t *testing.T, raw map[string]any) *env {
	return newEnv(t, map[oauth.Provider]oauth.Exchanger{
		oauth.ProviderGoogle: &fakeExchanger{provider: oauth.ProviderGoogle, raw: raw},
	})
}

func (e *env) do(r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, r)
	return rr
}

// startLogin corre el start y devuelve las cookies emitidas y el state que
// viajó al provider.
func startLogin(t *testing.T, e *env, provider, redirectURI string) ([]*http.Cookie, string) {
	t.Helper()
	path := "/v1/auth/social/" + provider + "/start"
	if redirectURI != "" {
		path += "?redirect_uri=" + url.QueryEscape(redirectURI)
	}
	rr := e.do(httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusFound, rr.Code)

	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)
	// PKCE: el challenge va en la URL de autorización real; el fake solo
	// propaga el state, que es lo que correlaciona el callback.

	var cookies []*http.Cookie
	for _, ck := range rr.Result().Cookies() {
		if ck.MaxAge >= 0 {
			cookies = append(cookies, ck)
		}
	}
	return cookies, state
}

func callbackRequest(provider, state string, cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet,
		"/v1/auth/social/"+provider+"/callback?code=fake-code&state="+url.QueryEscape(state), nil)
	for _, ck := range cookies {
		r.AddCookie(ck)
	}
	return r
}

func cookieByName(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == name && ck.MaxAge >= 0 {
			return ck
		}
	}
	return nil
}

func assertClearsAuthRequest(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	cleared := false
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == authrequest.CookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared, "la cookie del authorization request tiene que borrarse")
}

// Primer login de un browser: crea la cuenta con perfil incompleto y manda a
// completar el signup con el email en la query.
func TestCallbackNewUserRedirectsToSignup(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com", "name": "A"})

	cookies, state := startLogin(t, e, "google", "")
	rr := e.do(callbackRequest("google", state, cookies))

	require.Equal(t, http.StatusFound, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/signup", loc.Path)
	require.Equal(t, "a@x.com", loc.Query().Get("email"))

	// sesión lista aunque falte el perfil
	require.NotNil(t, cookieByName(rr, handlers.AccessTokenCookie))
	require.NotNil(t, cookieByName(rr, handlers.RefreshTokenCookie))
	assertClearsAuthRequest(t, rr)

	u, err := e.store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Nil(t, u.Nickname)
	require.False(t, u.ProfileComplete())
}

// Cliente API (Accept: application/json) con perfil ya completo: JSON sin
// redirect, requiresSignup=false.
func TestCallbackReturningUserJSON(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	nick := "neogul"
	_, err := e.store.CreateUser(context.Background(), &core.User{
		ID: "u1", Email: "a@x.com", Nickname: &nick,
		Provider: "google", ProviderID: "g-1",
	})
	require.NoError(t, err)

	cookies, state := startLogin(t, e, "google", "")
	req := callbackRequest("google", state, cookies)
	req.Header.Set("Accept", "application/json")
	rr := e.do(req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var body struct {
		Success        bool `json:"success"`
		RequiresSignup bool `json:"requiresSignup"`
		User           struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Nickname string `json:"nickname"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.False(t, body.RequiresSignup)
	require.Equal(t, "u1", body.User.ID)
	require.Equal(t, "neogul", body.User.Nickname)

	// los tokens viajan en cookies, no en el cuerpo
	require.NotContains(t, rr.Body.String(), "access_token")
	access := cookieByName(rr, handlers.AccessTokenCookie)
	require.NotNil(t, access)
	claims, err := e.issuer.ValidateAccess(access.Value)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.Subject)
}

// Destino deep link allow-listed: handoff a la app móvil con el token y el
// estado del perfil en la query, sin cookies de tokens.
func TestCallbackDeepLinkHandoff(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	cookies, state := startLogin(t, e, "google", "nugulmap://oauth/callback")
	rr := e.do(callbackRequest("google", state, cookies))

	require.Equal(t, http.StatusFound, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "nugulmap", loc.Scheme)
	require.Equal(t, "false", loc.Query().Get("profile_complete"))

	token := loc.Query().Get("access_token")
	require.NotEmpty(t, token)
	_, err = e.issuer.ValidateAccess(token)
	require.NoError(t, err)

	require.Nil(t, cookieByName(rr, handlers.AccessTokenCookie))
	require.Nil(t, cookieByName(rr, handlers.RefreshTokenCookie))
}

// Un destino fuera de la allow-list no es error: se ignora y cae al default.
func TestCallbackRejectedRedirectFallsBack(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	nick := "neogul"
	_, err := e.store.CreateUser(context.Background(), &core.User{
		ID: "u1", Email: "a@x.com", Nickname: &nick,
		Provider: "google", ProviderID: "g-1",
	})
	require.NoError(t, err)

	cookies, state := startLogin(t, e, "google", "https://evil.example/phish")
	rr := e.do(callbackRequest("google", state, cookies))

	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "http://localhost:3000", rr.Header().Get("Location"))
}

func TestCallbackWithoutPendingRequest(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	t.Run("browser", func(t *testing.T) {
		rr := e.do(callbackRequest("google", "whatever", nil))
		require.Equal(t, http.StatusFound, rr.Code)
		loc, err := url.Parse(rr.Header().Get("Location"))
		require.NoError(t, err)
		require.Equal(t, "/login", loc.Path)
		require.Equal(t, "no_pending_request", loc.Query().Get("error"))
	})

	t.Run("json", func(t *testing.T) {
		req := callbackRequest("google", "whatever", nil)
		req.Header.Set("Accept", "application/json")
		rr := e.do(req)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var body struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.False(t, body.Success)
		require.Equal(t, "no_pending_request", body.Error)
	})
}

// Repetir el mismo callback (cookie aún válida criptográficamente) es replay.
func TestCallbackReplay(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	cookies, state := startLogin(t, e, "google", "")
	first := e.do(callbackRequest("google", state, cookies))
	require.Equal(t, http.StatusFound, first.Code)

	req := callbackRequest("google", state, cookies)
	req.Header.Set("Accept", "application/json")
	rr := e.do(req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "replayed_request")
}

func TestCallbackStateMismatch(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	cookies, _ := startLogin(t, e, "google", "")
	req := callbackRequest("google", "otro-state", cookies)
	req.Header.Set("Accept", "application/json")
	rr := e.do(req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "state_mismatch")
	assertClearsAuthRequest(t, rr)
}

// El usuario canceló en el provider: ?error=access_denied.
func TestCallbackProviderDenied(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	cookies, _ := startLogin(t, e, "google", "")
	req := httptest.NewRequest(http.MethodGet,
		"/v1/auth/social/google/callback?error=access_denied", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	req.Header.Set("Accept", "application/json")
	rr := e.do(req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "provider_denied")
}

func TestCallbackUnsupportedProvider(t *testing.T) {
	e := googleEnv(t, nil)
	req := callbackRequest("github", "s", nil)
	req.Header.Set("Accept", "application/json")
	rr := e.do(req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "unsupported_provider")
}

func TestCallbackExchangeFailed(t *testing.T) {
	e := newEnv(t, map[oauth.Provider]oauth.Exchanger{
		oauth.ProviderGoogle: &fakeExchanger{
			provider: oauth.ProviderGoogle,
			err:      errors.New("token endpoint caído"),
		},
	})

	cookies, state := startLogin(t, e, "google", "")
	req := callbackRequest("google", state, cookies)
	req.Header.Set("Accept", "application/json")
	rr := e.do(req)

	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Contains(t, rr.Body.String(), "exchange_failed")
	// el mensaje interno no se filtra al cliente
	require.NotContains(t, rr.Body.String(), "token endpoint")
}

// Provider sin email (kakao sin consentimiento de casilla, p.ej.).
func TestCallbackEmailMissing(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1"})

	cookies, state := startLogin(t, e, "google", "")
	req := callbackRequest("google", state, cookies)
	req.Header.Set("Accept", "application/json")
	rr := e.do(req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "email_missing")
}

// El mismo email desde otro provider no se fusiona: 409.
func TestCallbackCrossProviderConflict(t *testing.T) {
	e := newEnv(t, map[oauth.Provider]oauth.Exchanger{
		oauth.ProviderKakao: &fakeExchanger{
			provider: oauth.ProviderKakao,
			raw: map[string]any{
				"id":            float64(99),
				"kakao_account": map[string]any{"email": "a@x.com"},
			},
		},
	})
	_, err := e.store.CreateUser(context.Background(), &core.User{
		ID: "u1", Email: "a@x.com", Provider: "google", ProviderID: "g-1",
	})
	require.NoError(t, err)

	cookies, state := startLogin(t, e, "kakao", "")
	req := callbackRequest("kakao", state, cookies)
	req.Header.Set("Accept", "application/json")
	rr := e.do(req)

	require.Equal(t, http.StatusConflict, rr.Code)
	require.Contains(t, rr.Body.String(), "account_conflict")
}

func TestStartUnknownProvider(t *testing.T) {
	e := googleEnv(t, nil)

	rr := e.do(httptest.NewRequest(http.MethodGet, "/v1/auth/social/github/start", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// soportado pero no habilitado en la config
	rr = e.do(httptest.NewRequest(http.MethodGet, "/v1/auth/social/naver/start", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStartSetsSignedCookie(t *testing.T) {
	e := googleEnv(t, nil)
	cookies, _ := startLogin(t, e, "google", "http://localhost:3000/after")

	names := map[string]bool{}
	for _, ck := range cookies {
		names[ck.Name] = true
	}
	require.True(t, names[authrequest.CookieName])
	require.True(t, names[authrequest.RedirectCookieName])
}

// Login → signup → me: el flujo completo de una cuenta nueva.
func TestCompleteProfileFlow(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	cookies, state := startLogin(t, e, "google", "")
	req := callbackRequest("google", state, cookies)
	req.Header.Set("Accept", "application/json")
	login := e.do(req)
	require.Equal(t, http.StatusOK, login.Code)
	require.Contains(t, login.Body.String(), `"requiresSignup":true`)

	access := cookieByName(login, handlers.AccessTokenCookie)
	require.NotNil(t, access)

	body, _ := json.Marshal(handlers.CompleteProfileRequest{Nickname: "neogul"})
	signup := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", bytes.NewReader(body))
	signup.Header.Set("Content-Type", "application/json")
	signup.AddCookie(access)
	rr := e.do(signup)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"requiresSignup":false`)

	// el mismo token de antes del alta ya ve el perfil completo
	me := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	me.Header.Set("Authorization", "Bearer "+access.Value)
	rr = e.do(me)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"profileComplete":true`)
}

func TestCompleteProfileValidation(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	cookies, state := startLogin(t, e, "google", "")
	req := callbackRequest("google", state, cookies)
	req.Header.Set("Accept", "application/json")
	login := e.do(req)
	access := cookieByName(login, handlers.AccessTokenCookie)
	require.NotNil(t, access)

	post := func(body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", bytes.NewReader([]byte(body)))
		r.Header.Set("Content-Type", "application/json")
		r.AddCookie(access)
		return e.do(r)
	}

	require.Equal(t, http.StatusBadRequest, post(`{"nickname":"   "}`).Code)

	long := make([]byte, 0, 40)
	for i := 0; i < 40; i++ {
		long = append(long, 'x')
	}
	require.Equal(t, http.StatusBadRequest, post(`{"nickname":"`+string(long)+`"}`).Code)
}

// Login → refresh: la cookie refreshToken de 30 días renueva el access token.
func TestRefreshFlow(t *testing.T) {
	e := googleEnv(t, map[string]any{"sub": "g-1", "email": "a@x.com"})

	cookies, state := startLogin(t, e, "google", "")
	req := callbackRequest("google", state, cookies)
	req.Header.Set("Accept", "application/json")
	login := e.do(req)
	require.Equal(t, http.StatusOK, login.Code)

	refresh := cookieByName(login, handlers.RefreshTokenCookie)
	require.NotNil(t, refresh)

	r := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	r.AddCookie(refresh)
	rr := e.do(r)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var body struct {
		Success     bool   `json:"success"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.True(t, body.Success)

	claims, err := e.issuer.ValidateAccess(body.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)

	// el access nuevo también queda como cookie HttpOnly
	access := cookieByName(rr, handlers.AccessTokenCookie)
	require.NotNil(t, access)
	require.Equal(t, body.AccessToken, access.Value)

	// y autentica de verdad
	me := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	me.Header.Set("Authorization", "Bearer "+body.AccessToken)
	require.Equal(t, http.StatusOK, e.do(me).Code)
}

// El refresh también acepta el token por Authorization (clientes sin cookies).
func TestRefreshViaBearer(t *testing.T) {
	e := googleEnv(t, nil)
	_, err := e.store.CreateUser(context.Background(), &core.User{
		ID: "u1", Email: "a@x.com", Provider: "google", ProviderID: "g-1",
	})
	require.NoError(t, err)

	token, _, err := e.issuer.IssueRefresh("u1", "a@x.com")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rr := e.do(r)
	require.Equal(t, http.StatusOK, rr.Code)
}

// Un access token no renueva sesiones, y sin token es 401.
func TestRefreshRejectsAccessToken(t *testing.T) {
	e := googleEnv(t, nil)
	_, err := e.store.CreateUser(context.Background(), &core.User{
		ID: "u1", Email: "a@x.com", Provider: "google", ProviderID: "g-1",
	})
	require.NoError(t, err)

	access, _, err := e.issuer.IssueAccess("u1", "a@x.com")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	r.AddCookie(&http.Cookie{Name: handlers.RefreshTokenCookie, Value: access})
	require.Equal(t, http.StatusUnauthorized, e.do(r).Code)

	require.Equal(t, http.StatusUnauthorized,
		e.do(httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)).Code)
}

// Refresh válido de una cuenta borrada no resucita la sesión.
func TestRefreshDeletedAccount(t *testing.T) {
	e := googleEnv(t, nil)

	token, _, err := e.issuer.IssueRefresh("fantasma", "a@x.com")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	r.AddCookie(&http.Cookie{Name: handlers.RefreshTokenCookie, Value: token})
	require.Equal(t, http.StatusUnauthorized, e.do(r).Code)
}

func TestMeUnauthorized(t *testing.T) {
	e := googleEnv(t, nil)

	rr := e.do(httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer basura")
	require.Equal(t, http.StatusUnauthorized, e.do(req).Code)
}

// Token válido de una cuenta borrada ⇒ 401, no 500.
func TestMeDeletedAccount(t *testing.T) {
	e := googleEnv(t, nil)

	token, _, err := e.issuer.IssueAccess("fantasma", "a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, e.do(req).Code)
}

func TestLogoutClearsCookies(t *testing.T) {
	e := googleEnv(t, nil)

	rr := e.do(httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	cleared := map[string]bool{}
	for _, ck := range rr.Result().Cookies() {
		if ck.MaxAge < 0 {
			cleared[ck.Name] = true
		}
	}
	require.True(t, cleared[handlers.AccessTokenCookie])
	require.True(t, cleared[handlers.RefreshTokenCookie])
}

func TestProvidersListsEnabled(t *testing.T) {
	e := newEnv(t, map[oauth.Provider]oauth.Exchanger{
		oauth.ProviderGoogle: &fakeExchanger{provider: oauth.ProviderGoogle},
		oauth.ProviderNaver:  &fakeExchanger{provider: oauth.ProviderNaver},
	})

	rr := e.do(httptest.NewRequest(http.MethodGet, "/v1/auth/providers", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Providers []struct {
			Name     string `json:"name"`
			StartURL string `json:"startUrl"`
		} `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Providers, 2)
	require.Equal(t, "google", body.Providers[0].Name)
	require.Equal(t, "/v1/auth/social/google/start", body.Providers[0].StartURL)
	require.Equal(t, "naver", body.Providers[1].Name)
}
