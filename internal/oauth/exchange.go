package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Los endpoints van en duro: son contratos públicos estables de cada
// provider y evita depender de discovery en el arranque.
var endpoints = map[Provider]oauth2.Endpoint{
	ProviderGoogle: {
		AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
		TokenURL: "https://oauth2.googleapis.com/token",
	},
	ProviderKakao: {
		AuthURL:  "https://kauth.kakao.com/oauth/authorize",
		TokenURL: "https://kauth.kakao.com/oauth/token",
	},
	ProviderNaver: {
		AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
		TokenURL: "https://nid.naver.com/oauth2.0/token",
	},
}

var userinfoURLs = map[Provider]string{
	ProviderGoogle: "https://openidconnect.googleapis.com/v1/userinfo",
	ProviderKakao:  "https://kapi.kakao.com/v2/user/me",
	ProviderNaver:  "https://openapi.naver.com/v1/nid/me",
}

var defaultScopes = map[Provider][]string{
	ProviderGoogle: {"openid", "email", "profile"},
	ProviderKakao:  {"account_email", "profile_nickname", "profile_image"},
	ProviderNaver:  nil, // naver define los scopes en la consola de la app
}

// Exchanger es el colaborador que ejecuta el authorization-code exchange y
// trae el payload crudo de userinfo. El resto del flujo nunca ve el code ni
// el client secret.
type Exchanger interface {
	Provider() Provider
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	FetchIdentity(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (map[string]any, error)
}

// ClientConfig son las credenciales registradas ante un provider.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

type client struct {
	provider    Provider
	conf        *oauth2.Config
	userinfoURL string
	http        *http.Client
}

// NewClient arma el Exchanger de un provider sobre golang.org/x/oauth2.
func NewClient(p Provider, cc ClientConfig) (Exchanger, error) {
	if cc.ClientID == "" || cc.ClientSecret == "" {
		return nil, fmt.Errorf("oauth %s: falta client_id/client_secret", p)
	}
	if cc.RedirectURL == "" {
		return nil, fmt.Errorf("oauth %s: falta redirect_url", p)
	}
	ep, ok := endpoints[p]
	if !ok {
		return nil, ErrUnsupportedProvider
	}
	scopes := cc.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes[p]
	}
	return &client{
		provider: p,
		conf: &oauth2.Config{
			ClientID:     cc.ClientID,
			ClientSecret: cc.ClientSecret,
			RedirectURL:  cc.RedirectURL,
			Endpoint:     ep,
			Scopes:       scopes,
		},
		userinfoURL: userinfoURLs[p],
		http:        &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *client) Provider() Provider { return c.provider }

func (c *client) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return c.conf.AuthCodeURL(state, opts...)
}

// FetchIdentity intercambia el code y consulta userinfo con el access token
// del provider. Devuelve el JSON crudo; la forma se interpreta en Normalize.
func (c *client) FetchIdentity(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (map[string]any, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.conf.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, fmt.Errorf("oauth %s: exchange: %w", c.provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	tok.SetAuthHeader(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oauth %s: userinfo: %w", c.provider, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("oauth %s: userinfo http %d", c.provider, resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("oauth %s: userinfo decode: %w", c.provider, err)
	}
	return raw, nil
}
