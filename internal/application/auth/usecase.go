package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Seeder crea los catálogos por defecto de una empresa nueva.
type Seeder interface {
	SeedDefaults(ctx context.Context, companyID string) error
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	seeder      Seeder
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. seeder puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, seeder Seeder, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, seeder: seeder, jwtCfg: jwtCfg}
}

// Register crea la empresa y su primer usuario (password con bcrypt) y siembra unidades y categorías.
// Devuelve domain.ErrDuplicate si el login ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	companyName := strings.TrimSpace(in.CompanyName)
	login := strings.TrimSpace(in.Login)
	if companyName == "" {
		return nil, domain.Invalid("company_name", "es requerido")
	}
	if login == "" {
		return nil, domain.Invalid("login", "es requerido")
	}
	if len(in.Password) < 6 {
		return nil, domain.Invalid("password", "debe tener al menos 6 caracteres")
	}
	existing, err := uc.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{ID: uuid.New().String(), Name: companyName, CreatedAt: now}
	if err := uc.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Login:        login,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if uc.seeder != nil {
		if err := uc.seeder.SeedDefaults(ctx, company.ID); err != nil {
			return nil, err
		}
	}
	return &dto.RegisterResponse{CompanyID: company.ID, UserID: user.ID}, nil
}

// Login verifica login/password, genera JWT y retorna token + empresa.
// Usuario inexistente y password incorrecto responden igual (domain.ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByLogin(ctx, strings.TrimSpace(in.Login))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:       token,
		UserID:      user.ID,
		CompanyID:   company.ID,
		CompanyName: company.Name,
	}, nil
}
