// Package jwt emite y valida los tokens firmados del servicio (EdDSA).
package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Issuer firma access/refresh tokens con la clave activa.
type Issuer struct {
	Iss        string
	Keys       *Keypair
	AccessTTL  time.Duration // default 2h
	RefreshTTL time.Duration // default 30d
}

func NewIssuer(iss string, kp *Keypair) *Issuer {
	return &Issuer{
		Iss:        iss,
		Keys:       kp,
		AccessTTL:  2 * time.Hour,
		RefreshTTL: 30 * 24 * time.Hour,
	}
}

// Claims son los claims propios que viajan en cada token. Alcanzan para
// autorizar sin ir a la base; el estado mutable (perfil) se relee del store.
type Claims struct {
	Subject   string // id de la cuenta
	Email     string
	TokenType string // "access" | "refresh"
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issue firma un token del tipo dado con el TTL pedido.
func (i *Issuer) Issue(sub, email, tokenType string, ttl time.Duration) (string, time.Time, error) {
	if sub == "" {
		return "", time.Time{}, errors.New("jwt: sub vacío")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)

	claims := jwtv5.MapClaims{
		"iss":   i.Iss,
		"sub":   sub,
		"email": email,
		"typ":   tokenType,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   exp.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodEdDSA, claims)
	tk.Header["kid"] = i.Keys.KID
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.Keys.Private)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// IssueAccess emite el access token (TTL configurado, default 2h).
func (i *Issuer) IssueAccess(sub, email string) (string, time.Time, error) {
	return i.Issue(sub, email, TokenTypeAccess, i.AccessTTL)
}

// IssueRefresh emite el refresh token (TTL configurado, default 30d).
func (i *Issuer) IssueRefresh(sub, email string) (string, time.Time, error) {
	return i.Issue(sub, email, TokenTypeRefresh, i.RefreshTTL)
}

// SignRaw firma MapClaims arbitrarios (state/authorization request de flows
// sociales). No inyecta iss/exp; el caller arma sus claims completos.
func (i *Issuer) SignRaw(claims jwtv5.MapClaims) (string, error) {
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodEdDSA, claims)
	tk.Header["kid"] = i.Keys.KID
	tk.Header["typ"] = "JWT"
	return tk.SignedString(i.Keys.Private)
}

// Keyfunc expone la pubkey activa para validar firmas.
func (i *Issuer) Keyfunc() jwtv5.Keyfunc {
	return func(t *jwtv5.Token) (any, error) {
		// Con una sola clave activa el kid solo se chequea si viene.
		if kid, _ := t.Header["kid"].(string); kid != "" && kid != i.Keys.KID {
			return nil, errors.New("kid desconocido")
		}
		return i.Keys.Public, nil
	}
}
