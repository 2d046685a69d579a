package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightstage/rentalops-api/internal/application/auth"
	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{byEmail: map[string]*entity.User{}} }

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) List() ([]*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) AwardPoints(string, string, int, string) (bool, error) {
	return false, nil
}
func (f *fakeUserRepo) PointsHistory(string) ([]*entity.PointsEntry, error) { return nil, nil }

var tokenCfg = auth.TokenConfig{Secret: "secreto-de-prueba", Issuer: "rentalops", ExpMinutes: 60}

func TestRegister_YLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, tokenCfg)

	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "Amira@BrightStage.TN",
		Password: "contraseña-larga",
		Name:     "Amira",
	})
	require.NoError(t, err)
	assert.Equal(t, "amira@brightstage.tn", user.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.RoleWorker, user.Role, "rol por defecto")

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "amira@brightstage.tn",
		Password: "contraseña-larga",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, name, role, err := jwt.Parse(tokenCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "Amira", name)
	assert.Equal(t, entity.RoleWorker, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, tokenCfg)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "a@b.tn", Password: "12345678x", Name: "A",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email: "A@B.TN", Password: "12345678x", Name: "A2",
	})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), tokenCfg)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.tn", Password: "corta", Name: "A"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.tn", Password: "12345678x", Name: "A", Role: "Jefe"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, tokenCfg)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "a@b.tn", Password: "12345678x", Name: "A",
	})
	require.NoError(t, err)

	// Mismo error para contraseña mala y usuario inexistente.
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.tn", Password: "otra"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@b.tn", Password: "12345678x"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioSuspendido(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, tokenCfg)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "a@b.tn", Password: "12345678x", Name: "A",
	})
	require.NoError(t, err)
	repo.byEmail["a@b.tn"].Status = "suspended"

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.tn", Password: "12345678x"})
	require.ErrorIs(t, err, domain.ErrForbidden)
}
