package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// countingQuerier cuenta las consultas; con ids mal formados ninguna debe llegar a la base.
type countingQuerier struct{ calls int }

func (q *countingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.calls++
	return pgconn.CommandTag{}, nil
}

func (q *countingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.calls++
	return nil, pgx.ErrNoRows
}

func (q *countingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.calls++
	return noRow{}
}

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

const testCompanyID = "8c0f5b4e-1d7a-4f0e-9a57-3b1f1f0c2d11"

func TestValidID(t *testing.T) {
	assert.True(t, validID("8c0f5b4e-1d7a-4f0e-9a57-3b1f1f0c2d11"))
	assert.False(t, validID("abc"))
	assert.False(t, validID(""))
	assert.False(t, validID("123"))
}

func TestRepos_IdMalFormadoEsNoEncontrado(t *testing.T) {
	ctx := context.Background()
	q := &countingQuerier{}

	prod, err := NewProductionRepository(q).GetByID(ctx, testCompanyID, "abc")
	require.NoError(t, err)
	assert.Nil(t, prod)
	assert.ErrorIs(t, NewProductionRepository(q).Delete(ctx, "abc"), domain.ErrNotFound)
	n, err := NewProductionRepository(q).CountByOutputProduct(ctx, testCompanyID, "abc")
	require.NoError(t, err)
	assert.Zero(t, n)

	products := NewProductRepository(q)
	p, err := products.GetByID(ctx, testCompanyID, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)
	p, err = products.GetForUpdate(ctx, testCompanyID, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, products.Delete(ctx, testCompanyID, "abc"), domain.ErrNotFound)
	assert.ErrorIs(t, products.Update(ctx, &entity.Product{ID: "abc", CompanyID: testCompanyID}), domain.ErrNotFound)
	n, err = products.CountByCategory(ctx, testCompanyID, "abc")
	require.NoError(t, err)
	assert.Zero(t, n)

	emp, err := NewEmployeeRepository(q).GetByID(ctx, testCompanyID, "abc")
	require.NoError(t, err)
	assert.Nil(t, emp)
	assert.ErrorIs(t, NewEmployeeRepository(q).Delete(ctx, testCompanyID, "abc"), domain.ErrNotFound)

	cat, err := NewCategoryRepository(q).GetByID(ctx, testCompanyID, "abc")
	require.NoError(t, err)
	assert.Nil(t, cat)
	assert.ErrorIs(t, NewCategoryRepository(q).Delete(ctx, testCompanyID, "abc"), domain.ErrNotFound)

	unit, err := NewUnitRepository(q).GetByID(ctx, testCompanyID, "abc")
	require.NoError(t, err)
	assert.Nil(t, unit)
	assert.ErrorIs(t, NewExpenseRepository(q).Delete(ctx, testCompanyID, "abc"), domain.ErrNotFound)

	company, err := NewCompanyRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, company)

	list, err := NewMovementRepository(q).List(ctx, repository.MovementFilter{CompanyID: testCompanyID, ProductID: "abc"})
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.Zero(t, q.calls)
}

func TestRepos_IdValidoConsulta(t *testing.T) {
	q := &countingQuerier{}
	p, err := NewProductRepository(q).GetByID(context.Background(), testCompanyID, "5d7e3f0a-8a51-4e8c-b0a4-0f6f4bd2a9c3")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 1, q.calls)
}
