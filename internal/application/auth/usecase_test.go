package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookstore-api/internal/application/auth"
	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/domain"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/pkg/jwt"
)

type fakeUserRepo struct {
	byID   map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "bookstore-test"}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewAuthUseCase(newFakeUserRepo(), jwtCfg)

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: " Ana@Libros.test ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@libros.test", user.Email)
	assert.Equal(t, int64(1), user.ID)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@libros.test", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, 3600, out.ExpiresIn)

	claims, err := jwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)

	me, err := uc.Me(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewAuthUseCase(newFakeUserRepo(), jwtCfg)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@libros.test", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Otra", Email: "ana@libros.test", Password: "secreto456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validacion(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), jwtCfg)
	cases := map[string]dto.RegisterRequest{
		"sin nombre":      {Email: "a@b.test", Password: "secreto123"},
		"email inválido":  {Name: "A", Email: "no-es-email", Password: "secreto123"},
		"password cortos": {Name: "A", Email: "a@b.test", Password: "123"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.RegisterUser(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewAuthUseCase(newFakeUserRepo(), jwtCfg)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@libros.test", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@libros.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@libros.test", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), jwtCfg)
	_, err := uc.Me(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
