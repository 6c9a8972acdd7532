// Package config carga la configuración YAML del servicio con overrides por
// variables de entorno para secretos y despliegue.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type ProviderConfig struct {
	Enabled      bool     `yaml:"enabled"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURL  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
}

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
		// PublicURL es la base pública del servicio (issuer de los JWT y
		// base para derivar redirect_url de providers si no viene en YAML).
		PublicURL string `yaml:"public_url"`
	} `yaml:"server"`

	Storage struct {
		Driver   string `yaml:"driver"` // postgres | memory
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns    int    `yaml:"max_conns"`
			MinConns    int    `yaml:"min_conns"`
			MaxLifetime string `yaml:"max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		Issuer     string `yaml:"issuer"`
		KeyFile    string `yaml:"key_file"`
		AccessTTL  string `yaml:"access_ttl"`  // default 2h
		RefreshTTL string `yaml:"refresh_ttl"` // default 720h (30d)
	} `yaml:"jwt"`

	Cookie struct {
		Secure   bool   `yaml:"secure"`
		SameSite string `yaml:"samesite"` // lax | strict | none
		Domain   string `yaml:"domain"`
	} `yaml:"cookie"`

	OAuth2 struct {
		// Destinos fijos del dispatcher.
		SuccessRedirectURL string `yaml:"success_redirect_url"`
		SignupRedirectURL  string `yaml:"signup_redirect_url"`
		FailureRedirectURL string `yaml:"failure_redirect_url"`

		// Allow-list del destino post-login pedido por el caller.
		AllowedRedirectURIs        []string `yaml:"allowed_redirect_uris"`
		AllowedRedirectURIPrefixes []string `yaml:"allowed_redirect_uri_prefixes"`

		Providers struct {
			Google ProviderConfig `yaml:"google"`
			Kakao  ProviderConfig `yaml:"kakao"`
			Naver  ProviderConfig `yaml:"naver"`
		} `yaml:"providers"`
	} `yaml:"oauth2"`
}

// Load lee el YAML (path vacío ⇒ config vacía + defaults) y aplica env
// overrides y Normalize.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: leer %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parsear %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.Normalize()
	return cfg, nil
}

// applyEnv pisa valores con NEOGULMAP_*. Solo lo que tiene sentido inyectar
// por entorno (secretos, DSN, addr).
func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Server.Addr, "NEOGULMAP_ADDR")
	set(&c.Server.PublicURL, "NEOGULMAP_PUBLIC_URL")
	set(&c.Storage.DSN, "NEOGULMAP_DB_DSN")
	set(&c.Cache.Redis.Addr, "NEOGULMAP_REDIS_ADDR")
	set(&c.JWT.KeyFile, "NEOGULMAP_JWT_KEY_FILE")
	set(&c.OAuth2.Providers.Google.ClientID, "NEOGULMAP_GOOGLE_CLIENT_ID")
	set(&c.OAuth2.Providers.Google.ClientSecret, "NEOGULMAP_GOOGLE_CLIENT_SECRET")
	set(&c.OAuth2.Providers.Kakao.ClientID, "NEOGULMAP_KAKAO_CLIENT_ID")
	set(&c.OAuth2.Providers.Kakao.ClientSecret, "NEOGULMAP_KAKAO_CLIENT_SECRET")
	set(&c.OAuth2.Providers.Naver.ClientID, "NEOGULMAP_NAVER_CLIENT_ID")
	set(&c.OAuth2.Providers.Naver.ClientSecret, "NEOGULMAP_NAVER_CLIENT_SECRET")
}

// Normalize completa defaults. TTLs inválidos caen al default en vez de
// fallar el arranque.
func (c *Config) Normalize() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = "http://localhost:8080"
	}
	c.Server.PublicURL = strings.TrimRight(c.Server.PublicURL, "/")
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = c.Server.PublicURL
	}
	if c.Cookie.SameSite == "" {
		c.Cookie.SameSite = "lax"
	}
	if c.OAuth2.SuccessRedirectURL == "" {
		c.OAuth2.SuccessRedirectURL = "http://localhost:3000"
	}
	if c.OAuth2.SignupRedirectURL == "" {
		c.OAuth2.SignupRedirectURL = "http://localhost:3000/signup"
	}
	if c.OAuth2.FailureRedirectURL == "" {
		c.OAuth2.FailureRedirectURL = "http://localhost:3000/login"
	}
	if len(c.OAuth2.AllowedRedirectURIs) == 0 {
		c.OAuth2.AllowedRedirectURIs = []string{
			"http://localhost:3000",
			"https://nugulmap.com",
			"https://www.nugulmap.com",
			"nugulmap://oauth/callback",
		}
	}
	for p, pc := range map[string]*ProviderConfig{
		"google": &c.OAuth2.Providers.Google,
		"kakao":  &c.OAuth2.Providers.Kakao,
		"naver":  &c.OAuth2.Providers.Naver,
	} {
		if pc.Enabled && pc.RedirectURL == "" {
			pc.RedirectURL = c.Server.PublicURL + "/v1/auth/social/" + p + "/callback"
		}
	}
}

// AccessTTL parsea jwt.access_ttl; default 2h.
func (c *Config) AccessTTL() time.Duration { return ttlOr(c.JWT.AccessTTL, 2*time.Hour) }

// RefreshTTL parsea jwt.refresh_ttl; default 30 días.
func (c *Config) RefreshTTL() time.Duration { return ttlOr(c.JWT.RefreshTTL, 30*24*time.Hour) }

func ttlOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// IsProd reporta si corremos en prod (afecta formato de logs).
func (c *Config) IsProd() bool { return strings.ToLower(c.App.Env) == "prod" }
