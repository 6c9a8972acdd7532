package core

import "context"

// UserRepository es el contrato mínimo que necesita el flujo de login social.
// La unicidad de email la garantiza el backend (constraint UNIQUE), no la app:
// CreateUser debe devolver ErrConflict ante un duplicado para que el caller
// pueda releer en vez de fallar.
type UserRepository interface {
	// GetUserByEmail retorna ErrNotFound si no existe.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID retorna ErrNotFound si no existe.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// CreateUser inserta y devuelve la fila persistida.
	// Email duplicado ⇒ ErrConflict. Nickname duplicado ⇒ ErrConflict.
	CreateUser(ctx context.Context, u *User) (*User, error)

	// UpdateUser persiste cambios sobre una fila existente.
	// ErrNotFound si el id no existe; ErrConflict si el nickname choca.
	UpdateUser(ctx context.Context, u *User) (*User, error)

	// Ping verifica conectividad (readiness).
	Ping(ctx context.Context) error

	Close()
}
