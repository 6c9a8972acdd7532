// Package oauth normaliza los payloads de identidad de los providers
// sociales soportados y arma la configuración del code exchange.
package oauth

import (
	"errors"
	"strings"
)

// Provider es el conjunto cerrado de providers soportados. Cualquier otro
// identificador es error explícito: no hay fallback silencioso a google.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderKakao  Provider = "kakao"
	ProviderNaver  Provider = "naver"
)

var (
	ErrUnsupportedProvider = errors.New("provider no soportado")
	ErrMissingProviderID   = errors.New("payload sin id de provider")
)

// Providers lista los providers soportados en orden estable.
func Providers() []Provider {
	return []Provider{ProviderGoogle, ProviderKakao, ProviderNaver}
}

// ParseProvider valida un identificador externo (path param, config).
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderKakao:
		return ProviderKakao, nil
	case ProviderNaver:
		return ProviderNaver, nil
	default:
		return "", ErrUnsupportedProvider
	}
}

func (p Provider) String() string { return string(p) }
