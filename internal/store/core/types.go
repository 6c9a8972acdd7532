package core

import "time"

// User es la cuenta local creada a partir de un login social.
// Nickname y ProfileImage quedan nil hasta que el usuario complete su perfil:
// el alta automática NO copia el display name del provider.
type User struct {
	ID           string
	Email        string
	Nickname     *string
	ProfileImage *string

	// Vínculo con el provider OAuth2 que originó la cuenta.
	Provider   string
	ProviderID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileComplete indica si el usuario ya pasó por el alta explícita de perfil.
// Una cuenta recién provisionada nunca está completa.
func (u *User) ProfileComplete() bool {
	return u != nil && u.Nickname != nil && *u.Nickname != ""
}
