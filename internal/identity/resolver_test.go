package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/neogulmap/neogulmap/internal/oauth"
	"github.com/neogulmap/neogulmap/internal/store/core"
	"github.com/neogulmap/neogulmap/internal/store/memory"
)

func googleIdentity(email string) *oauth.Identity {
	return &oauth.Identity{
		Provider:   oauth.ProviderGoogle,
		ProviderID: "g-1",
		Email:      email,
		Nickname:   "Display Name",
	}
}

func TestResolveCreatesAccount(t *testing.T) {
	st := memory.New()
	r := NewResolver(st)

	u, err := r.Resolve(context.Background(), googleIdentity("a@x.com"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if u.ID == "" || u.Email != "a@x.com" || u.Provider != "google" || u.ProviderID != "g-1" {
		t.Fatalf("cuenta mal creada: %+v", u)
	}
	// el display name del provider no se copia: perfil incompleto hasta que el
	// usuario lo complete explícitamente
	if u.Nickname != nil {
		t.Fatalf("nickname copiado del provider: %v", *u.Nickname)
	}
	if u.ProfileComplete() {
		t.Fatal("perfil recién creado no puede estar completo")
	}
}

func TestResolveIdempotent(t *testing.T) {
	st := memory.New()
	r := NewResolver(st)
	ctx := context.Background()

	first, err := r.Resolve(ctx, googleIdentity("a@x.com"))
	if err != nil {
		t.Fatalf("primer Resolve: %v", err)
	}
	second, err := r.Resolve(ctx, googleIdentity("a@x.com"))
	if err != nil {
		t.Fatalf("segundo Resolve: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("dos cuentas para el mismo email: %s vs %s", first.ID, second.ID)
	}
}

// El email compara case-insensitive: A@X.com y a@x.com son la misma cuenta.
func TestResolveEmailCaseInsensitive(t *testing.T) {
	st := memory.New()
	r := NewResolver(st)
	ctx := context.Background()

	first, err := r.Resolve(ctx, googleIdentity("A@X.com"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := r.Resolve(ctx, googleIdentity("a@x.com"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("el case del email partió la cuenta: %s vs %s", first.ID, second.ID)
	}
}

func TestResolveMissingEmail(t *testing.T) {
	r := NewResolver(memory.New())

	id := googleIdentity("")
	if _, err := r.Resolve(context.Background(), id); !errors.Is(err, ErrMissingEmail) {
		t.Fatalf("esperaba ErrMissingEmail, vino %v", err)
	}
	if _, err := r.Resolve(context.Background(), nil); !errors.Is(err, ErrMissingEmail) {
		t.Fatalf("identity nil: esperaba ErrMissingEmail, vino %v", err)
	}
}

// El mismo email desde otro provider se rechaza sin tocar la cuenta existente.
func TestResolveCrossProviderConflict(t *testing.T) {
	st := memory.New()
	r := NewResolver(st)
	ctx := context.Background()

	u, err := r.Resolve(ctx, googleIdentity("a@x.com"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	_, err = r.Resolve(ctx, &oauth.Identity{
		Provider:   oauth.ProviderKakao,
		ProviderID: "k-9",
		Email:      "a@x.com",
	})
	if !errors.Is(err, ErrCrossProviderConflict) {
		t.Fatalf("esperaba ErrCrossProviderConflict, vino %v", err)
	}

	// la fila quedó intacta
	after, err := st.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if after.Provider != "google" || after.ProviderID != "g-1" {
		t.Fatalf("cuenta mutada por el intento rechazado: %+v", after)
	}
}

// conflictStore fuerza la carrera del primer login: el lookup inicial ve la
// base vacía, el insert pierde contra un request concurrente.
type conflictStore struct {
	*memory.Store
	misses  int // lookups que devuelven ErrNotFound antes de ver la fila
	gets    int
	creates int
}

func (s *conflictStore) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	s.gets++
	if s.gets <= s.misses {
		return nil, core.ErrNotFound
	}
	return s.Store.GetUserByEmail(ctx, email)
}

func (s *conflictStore) CreateUser(ctx context.Context, u *core.User) (*core.User, error) {
	s.creates++
	return s.Store.CreateUser(ctx, u)
}

func TestResolveLosingInsertRereads(t *testing.T) {
	st := &conflictStore{Store: memory.New(), misses: 1}
	ctx := context.Background()

	// el "ganador" ya insertó la fila
	winner, err := st.Store.CreateUser(ctx, &core.User{
		ID:         "winner-id",
		Email:      "a@x.com",
		Provider:   "google",
		ProviderID: "g-1",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// el perdedor no la ve en el lookup, su insert da ErrConflict, relee y liga
	u, err := NewResolver(st).Resolve(ctx, googleIdentity("a@x.com"))
	if err != nil {
		t.Fatalf("Resolve perdedor: %v", err)
	}
	if u.ID != winner.ID {
		t.Fatalf("el perdedor creó una segunda cuenta: %s vs %s", u.ID, winner.ID)
	}
	if st.creates != 1 { // solo el intento perdedor pasa por el wrapper
		t.Fatalf("creates = %d", st.creates)
	}
}

// Un ErrConflict espurio (sin fila que releer) no entra en loop: burbujea.
func TestResolveConflictWithoutRow(t *testing.T) {
	st := &conflictStore{Store: memory.New(), misses: 100}
	if _, err := st.Store.CreateUser(context.Background(), &core.User{ID: "x", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := NewResolver(st).Resolve(context.Background(), googleIdentity("a@x.com"))
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("esperaba ErrNotFound burbujeado, vino %v", err)
	}
}
