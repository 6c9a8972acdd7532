package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid colapsa firma inválida, estructura rota y expiración en un
// solo resultado: para el caller todo significa "no autenticado".
var ErrTokenInvalid = errors.New("token inválido")

// Validate verifica firma EdDSA, iss y ventana temporal, y devuelve los
// claims tipados. Cualquier problema ⇒ ErrTokenInvalid.
func (i *Issuer) Validate(token string) (*Claims, error) {
	tok, err := jwtv5.Parse(token, i.Keyfunc(),
		jwtv5.WithValidMethods([]string{"EdDSA"}),
		jwtv5.WithIssuer(i.Iss),
		jwtv5.WithLeeway(30*time.Second),
	)
	if err != nil || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, ErrTokenInvalid
	}
	email, _ := mc["email"].(string)
	typ, _ := mc["typ"].(string)

	c := &Claims{Subject: sub, Email: email, TokenType: typ}
	if f, ok := mc["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(f), 0)
	}
	if f, ok := mc["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(f), 0)
	}
	return c, nil
}

// ValidateAccess exige además typ=access (un refresh no autentica requests).
func (i *Issuer) ValidateAccess(token string) (*Claims, error) {
	return i.validateTyped(token, TokenTypeAccess)
}

// ValidateRefresh exige typ=refresh (un access no renueva sesiones).
func (i *Issuer) ValidateRefresh(token string) (*Claims, error) {
	return i.validateTyped(token, TokenTypeRefresh)
}

func (i *Issuer) validateTyped(token, typ string) (*Claims, error) {
	c, err := i.Validate(token)
	if err != nil {
		return nil, err
	}
	if c.TokenType != typ {
		return nil, ErrTokenInvalid
	}
	return c, nil
}
