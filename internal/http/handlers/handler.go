// Package handlers implementa los endpoints del flujo de login social y del
// bootstrap de sesión. Cada handler recibe sus dependencias explícitas; acá
// no hay contexto de autenticación ambiente/global.
package handlers

import (
	"go.uber.org/zap"

	"github.com/neogulmap/neogulmap/internal/config"
	"github.com/neogulmap/neogulmap/internal/identity"
	jwtx "github.com/neogulmap/neogulmap/internal/jwt"
	"github.com/neogulmap/neogulmap/internal/oauth"
	"github.com/neogulmap/neogulmap/internal/oauth/authrequest"
	"github.com/neogulmap/neogulmap/internal/oauth/redirect"
	"github.com/neogulmap/neogulmap/internal/store/core"
)

// Handlers agrupa las dependencias compartidas por los endpoints de auth.
type Handlers struct {
	Cfg        *config.Config
	Log        *zap.Logger
	Store      core.UserRepository
	Issuer     *jwtx.Issuer
	Transport  *authrequest.Transport
	Redirects  *redirect.Resolver
	Identity   *identity.Resolver
	Exchangers map[oauth.Provider]oauth.Exchanger
}

func New(
	cfg *config.Config,
	log *zap.Logger,
	store core.UserRepository,
	issuer *jwtx.Issuer,
	transport *authrequest.Transport,
	redirects *redirect.Resolver,
	resolver *identity.Resolver,
	exchangers map[oauth.Provider]oauth.Exchanger,
) *Handlers {
	return &Handlers{
		Cfg:        cfg,
		Log:        log,
		Store:      store,
		Issuer:     issuer,
		Transport:  transport,
		Redirects:  redirects,
		Identity:   resolver,
		Exchangers: exchangers,
	}
}

// exchangerFor devuelve el colaborador del provider, nil si no está habilitado.
func (h *Handlers) exchangerFor(p oauth.Provider) oauth.Exchanger {
	return h.Exchangers[p]
}
