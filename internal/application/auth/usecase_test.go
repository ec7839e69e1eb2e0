package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/auth"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Produccion-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(st *memory.Store) *auth.AuthUseCase {
	catalog := usecase.NewCatalogUseCase(st.Categories(), st.Units(), st.Products(), nil)
	return auth.NewAuthUseCase(st.Users(), st.Companies(), catalog, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestRegisterYLogin(t *testing.T) {
	st := memory.NewStore()
	uc := newAuth(st)
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterRequest{CompanyName: "Panadería Sol", Login: "ana", Password: "secreto1"})
	require.NoError(t, err)

	units, err := st.Units().ListByCompany(ctx, reg.CompanyID)
	require.NoError(t, err)
	assert.Len(t, units, len(usecase.DefaultUnits))

	res, err := uc.Login(ctx, dto.LoginRequest{Login: "ana", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "Panadería Sol", res.CompanyName)
	userID, companyID, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, userID)
	assert.Equal(t, reg.CompanyID, companyID)
}

func TestRegister_LoginDuplicado(t *testing.T) {
	uc := newAuth(memory.NewStore())
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{CompanyName: "A", Login: "ana", Password: "secreto1"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.RegisterRequest{CompanyName: "B", Login: "ANA", Password: "secreto2"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestRegister_Validaciones(t *testing.T) {
	uc := newAuth(memory.NewStore())
	_, err := uc.Register(context.Background(), dto.RegisterRequest{CompanyName: "A", Login: "ana", Password: "123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	uc := newAuth(memory.NewStore())
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{CompanyName: "A", Login: "ana", Password: "secreto1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "ana", Password: "otra"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	_, err = uc.Login(ctx, dto.LoginRequest{Login: "nadie", Password: "secreto1"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
