package favorite

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodbox-be/internal/partner"
)

func TestRepository_Toggle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("adds when absent", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM favorites").
			WithArgs("u-1", "biz-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO favorites").
			WithArgs("u-1", "biz-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		favorited, err := repo.Toggle(ctx, "u-1", "biz-1")
		require.NoError(t, err)
		assert.True(t, favorited)
	})

	t.Run("removes when present", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM favorites").
			WithArgs("u-1", "biz-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		favorited, err := repo.Toggle(ctx, "u-1", "biz-1")
		require.NoError(t, err)
		assert.False(t, favorited)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListBusinessIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"business_id"}).
		AddRow("biz-2").
		AddRow("biz-1")
	mock.ExpectQuery("SELECT business_id").
		WithArgs("u-1").
		WillReturnRows(rows)

	ids, err := repo.ListBusinessIDs(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"biz-2", "biz-1"}, ids)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Toggle(ctx context.Context, customerID, businessID string) (bool, error) {
	args := m.Called(ctx, customerID, businessID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListBusinessIDs(ctx context.Context, customerID string) ([]string, error) {
	args := m.Called(ctx, customerID)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) IsFavorite(ctx context.Context, customerID, businessID string) (bool, error) {
	args := m.Called(ctx, customerID, businessID)
	return args.Bool(0), args.Error(1)
}

type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) GetPartners(ctx context.Context) ([]partner.Partner, error) {
	args := m.Called(ctx)
	if ps := args.Get(0); ps != nil {
		return ps.([]partner.Partner), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPartnerRepository) GetPartner(ctx context.Context, id string) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*partner.Partner), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestService_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		partners := new(MockPartnerRepository)
		partners.On("GetPartner", ctx, "biz-1").Return(&partner.Partner{ID: "biz-1"}, nil)
		repo.On("Toggle", ctx, "u-1", "biz-1").Return(true, nil)

		svc := NewService(repo, partners)
		favorited, err := svc.Toggle(ctx, "u-1", "biz-1")

		require.NoError(t, err)
		assert.True(t, favorited)
	})

	t.Run("unknown business", func(t *testing.T) {
		repo := new(MockRepository)
		partners := new(MockPartnerRepository)
		partners.On("GetPartner", ctx, "biz-x").Return(nil, partner.ErrPartnerNotFound)

		svc := NewService(repo, partners)
		_, err := svc.Toggle(ctx, "u-1", "biz-x")

		assert.ErrorIs(t, err, partner.ErrPartnerNotFound)
		repo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_ListPartners(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	partners := new(MockPartnerRepository)
	repo.On("ListBusinessIDs", ctx, "u-1").Return([]string{"biz-1", "biz-2"}, nil)
	partners.On("GetPartner", ctx, "biz-1").Return(&partner.Partner{ID: "biz-1"}, nil)
	partners.On("GetPartner", ctx, "biz-2").Return(nil, partner.ErrPartnerNotFound)

	svc := NewService(repo, partners)
	result, err := svc.ListPartners(ctx, "u-1")

	require.NoError(t, err)
	require.Len(t, result, 1, "vanished partner is skipped")
	assert.Equal(t, "biz-1", result[0].ID)
}
