// neogulmap es el backend de mapas: acá vive el arranque del servicio HTTP
// y el cableado del flujo de login social.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/neogulmap/neogulmap/internal/cache"
	"github.com/neogulmap/neogulmap/internal/config"
	"github.com/neogulmap/neogulmap/internal/http"
	"github.com/neogulmap/neogulmap/internal/http/handlers"
	"github.com/neogulmap/neogulmap/internal/http/router"
	"github.com/neogulmap/neogulmap/internal/identity"
	jwtx "github.com/neogulmap/neogulmap/internal/jwt"
	"github.com/neogulmap/neogulmap/internal/oauth"
	"github.com/neogulmap/neogulmap/internal/oauth/authrequest"
	"github.com/neogulmap/neogulmap/internal/oauth/redirect"
	"github.com/neogulmap/neogulmap/internal/observability/logger"
	"github.com/neogulmap/neogulmap/internal/store/core"
	"github.com/neogulmap/neogulmap/internal/store/memory"
	"github.com/neogulmap/neogulmap/internal/store/pg"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:   "neogulmap",
		Short: "Backend de neogulmap (login social + sesión)",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfgPath)
		},
	}
	serve.Flags().StringVar(&cfgPath, "config", os.Getenv("NEOGULMAP_CONFIG"), "ruta del YAML de configuración")
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cfgPath string) error {
	// .env es best-effort: en prod las vars vienen del entorno real.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Env:         cfg.App.Env,
		ServiceName: "neogulmap",
	})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer store.Close()

	cacheCfg := cache.Config{Kind: cfg.Cache.Kind, Prefix: cfg.Cache.Redis.Prefix}
	cacheCfg.Redis.Addr = cfg.Cache.Redis.Addr
	cacheCfg.Redis.DB = cfg.Cache.Redis.DB
	cacheClient, err := cache.New(cacheCfg)
	if err != nil {
		return err
	}
	defer func() { _ = cacheClient.Close() }()

	keys, err := jwtx.LoadOrGenerateKey(cfg.JWT.KeyFile)
	if err != nil {
		return fmt.Errorf("jwt keys: %w", err)
	}
	issuer := jwtx.NewIssuer(cfg.JWT.Issuer, keys)
	issuer.AccessTTL = cfg.AccessTTL()
	issuer.RefreshTTL = cfg.RefreshTTL()

	exchangers, err := buildExchangers(cfg)
	if err != nil {
		return err
	}
	if len(exchangers) == 0 {
		log.Warn("ningún provider social habilitado")
	}

	h := handlers.New(
		cfg,
		log,
		store,
		issuer,
		authrequest.New(issuer, cacheClient, cfg.Cookie.Secure, cfg.Cookie.SameSite),
		redirect.New(cfg.OAuth2.AllowedRedirectURIs, cfg.OAuth2.AllowedRedirectURIPrefixes),
		identity.NewResolver(store),
		exchangers,
	)

	handler := router.New(router.Deps{
		Log:      log,
		Handlers: h,
		Store:    store,
	})

	log.Info("arrancando",
		zap.String("addr", cfg.Server.Addr),
		zap.String("env", cfg.App.Env),
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("providers", len(exchangers)),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return http.Start(gctx, cfg.Server.Addr, handler) })
	return g.Wait()
}

func buildStore(ctx context.Context, cfg *config.Config) (core.UserRepository, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return pg.New(ctx, cfg.Storage.DSN, pg.Tuning{
			MaxConns:    cfg.Storage.Postgres.MaxConns,
			MinConns:    cfg.Storage.Postgres.MinConns,
			MaxLifetime: cfg.Storage.Postgres.MaxLifetime,
		})
	case "", "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("storage driver desconocido %q", cfg.Storage.Driver)
	}
}

func buildExchangers(cfg *config.Config) (map[oauth.Provider]oauth.Exchanger, error) {
	out := make(map[oauth.Provider]oauth.Exchanger)
	for p, pc := range map[oauth.Provider]config.ProviderConfig{
		oauth.ProviderGoogle: cfg.OAuth2.Providers.Google,
		oauth.ProviderKakao:  cfg.OAuth2.Providers.Kakao,
		oauth.ProviderNaver:  cfg.OAuth2.Providers.Naver,
	} {
		if !pc.Enabled {
			continue
		}
		ex, err := oauth.NewClient(p, oauth.ClientConfig{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			RedirectURL:  pc.RedirectURL,
			Scopes:       pc.Scopes,
		})
		if err != nil {
			return nil, err
		}
		out[p] = ex
	}
	return out, nil
}
