// Package auth registro y login de usuarios con JWT.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
	"github.com/brightstage/rentalops-api/pkg/jwt"
)

var validRoles = map[string]struct{}{
	entity.RoleFounder:     {},
	entity.RoleManager:     {},
	entity.RoleStorekeeper: {},
	entity.RoleSiteManager: {},
	entity.RoleWorker:      {},
}

// TokenConfig parámetros de emisión del JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase registro, login y consulta de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	token    TokenConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, token TokenConfig) *UseCase {
	return &UseCase{userRepo: userRepo, token: token}
}

// Register da de alta un usuario con la contraseña hasheada (bcrypt).
// El rol por defecto es Worker.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: email, password y name son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleWorker
	}
	if _, ok := validRoles[role]; !ok {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}

	if existing, err := uc.userRepo.FindByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hasheando contraseña: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Login verifica credenciales y emite el JWT. Credenciales incorrectas y
// usuarios inexistentes devuelven el mismo error.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.token.Secret, user.ID, user.Name, user.Role, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitiendo token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Me devuelve el usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers listado para administración y asignación de equipo.
func (uc *UseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// PointsHistory historial de puntos de un usuario.
func (uc *UseCase) PointsHistory(ctx context.Context, userID string) ([]*entity.PointsEntry, error) {
	return uc.userRepo.PointsHistory(userID)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		Points:    u.Points,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
