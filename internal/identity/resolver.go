// Package identity mapea una identidad social normalizada a exactamente una
// cuenta local.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/neogulmap/neogulmap/internal/oauth"
	"github.com/neogulmap/neogulmap/internal/store/core"
)

var (
	// ErrMissingEmail: el email es la clave de cuenta; sin email no hay login.
	ErrMissingEmail = errors.New("el provider no entregó email")

	// ErrCrossProviderConflict: el email ya pertenece a una cuenta ligada a
	// OTRO provider. Se rechaza para que un segundo provider no se fusione
	// silenciosamente con la casilla de otra persona.
	ErrCrossProviderConflict = errors.New("email ya ligado a otro provider")
)

// Resolver crea o recupera la cuenta local de una identidad social.
type Resolver struct {
	store core.UserRepository
}

func NewResolver(store core.UserRepository) *Resolver {
	return &Resolver{store: store}
}

// Resolve garantiza una sola cuenta por email:
//
//  1. busca por email
//  2. ausente ⇒ crea con perfil incompleto (nickname nil: el display name
//     del provider NO se copia; completar perfil es un paso explícito)
//  3. presente y mismo provider ⇒ refresca provider_id idempotente
//  4. presente y otro provider ⇒ ErrCrossProviderConflict
//
// Dos primeros logins concurrentes del mismo email corren el paso 2 a la
// vez; la constraint UNIQUE(email) de la base es la fuente de verdad. El
// insert perdedor recibe ErrConflict, relee y sigue por el paso 3.
func (r *Resolver) Resolve(ctx context.Context, id *oauth.Identity) (*core.User, error) {
	if id == nil || id.Email == "" {
		return nil, fmt.Errorf("%w (provider=%s)", ErrMissingEmail, providerOf(id))
	}

	u, err := r.store.GetUserByEmail(ctx, id.Email)
	switch {
	case err == nil:
		return r.link(ctx, u, id)

	case errors.Is(err, core.ErrNotFound):
		created, err := r.store.CreateUser(ctx, &core.User{
			ID:         uuid.NewString(),
			Email:      id.Email,
			Provider:   id.Provider.String(),
			ProviderID: id.ProviderID,
			CreatedAt:  time.Now().UTC(),
		})
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, core.ErrConflict) {
			return nil, err
		}
		// Otro request acaba de crear la cuenta; releer y ligar como si
		// hubiera existido desde el principio.
		u, err2 := r.store.GetUserByEmail(ctx, id.Email)
		if err2 != nil {
			return nil, err2
		}
		return r.link(ctx, u, id)

	default:
		return nil, err
	}
}

// link refresca el vínculo provider→cuenta de una fila existente.
func (r *Resolver) link(ctx context.Context, u *core.User, id *oauth.Identity) (*core.User, error) {
	if u.Provider != "" && u.Provider != id.Provider.String() {
		return nil, fmt.Errorf("%w (cuenta=%s, intento=%s)", ErrCrossProviderConflict, u.Provider, id.Provider)
	}
	if u.Provider == id.Provider.String() && u.ProviderID == id.ProviderID {
		return u, nil // nada que escribir
	}
	u.Provider = id.Provider.String()
	u.ProviderID = id.ProviderID
	return r.store.UpdateUser(ctx, u)
}

func providerOf(id *oauth.Identity) oauth.Provider {
	if id == nil {
		return ""
	}
	return id.Provider
}
