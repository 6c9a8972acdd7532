package oauth

import (
	"fmt"
	"strconv"
)

// Identity es la forma provider-agnóstica con la que trabaja el resto del
// flujo. ProviderID siempre presente; el resto puede venir vacío según qué
// tan flaco sea el payload del provider.
type Identity struct {
	Provider     Provider
	ProviderID   string
	Email        string
	Nickname     string
	ProfileImage string
}

// Normalize convierte el payload crudo de userinfo de cada provider en una
// Identity uniforme.
//
// Formas conocidas:
//
//	google: plano            {sub, email, name, picture}
//	kakao:  anidado          {id, kakao_account: {email, profile: {nickname, profile_image_url}}}
//	naver:  sobre "response" {response: {id, email, nickname, profile_image}}
//
// Cada nivel intermedio puede faltar: campos ausentes quedan vacíos en vez de
// panic. La única excepción es el id del provider, que es obligatorio.
func Normalize(provider Provider, raw map[string]any) (*Identity, error) {
	var id *Identity
	switch provider {
	case ProviderGoogle:
		id = normalizeGoogle(raw)
	case ProviderKakao:
		id = normalizeKakao(raw)
	case ProviderNaver:
		id = normalizeNaver(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
	if id.ProviderID == "" {
		return nil, fmt.Errorf("%w (provider=%s)", ErrMissingProviderID, provider)
	}
	return id, nil
}

func normalizeGoogle(raw map[string]any) *Identity {
	return &Identity{
		Provider:     ProviderGoogle,
		ProviderID:   asString(raw["sub"]),
		Email:        asString(raw["email"]),
		Nickname:     asString(raw["name"]),
		ProfileImage: asString(raw["picture"]),
	}
}

func normalizeKakao(raw map[string]any) *Identity {
	id := &Identity{
		Provider: ProviderKakao,
		// kakao manda el id como número.
		ProviderID: asString(raw["id"]),
	}
	account := asMap(raw["kakao_account"])
	if account == nil {
		return id
	}
	id.Email = asString(account["email"])
	if profile := asMap(account["profile"]); profile != nil {
		id.Nickname = asString(profile["nickname"])
		id.ProfileImage = asString(profile["profile_image_url"])
	}
	return id
}

func normalizeNaver(raw map[string]any) *Identity {
	id := &Identity{Provider: ProviderNaver}
	resp := asMap(raw["response"])
	if resp == nil {
		return id
	}
	id.ProviderID = asString(resp["id"])
	id.Email = asString(resp["email"])
	id.Nickname = asString(resp["nickname"])
	id.ProfileImage = asString(resp["profile_image"])
	return id
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asString tolera string, números JSON y nil.
func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		// ids numéricos (kakao) sin notación científica
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case nil:
		return ""
	default:
		return ""
	}
}
