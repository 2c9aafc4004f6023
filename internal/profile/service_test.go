package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hitoshi/startuplaunch/internal/model"
)

// MockProfileRepository はrepository.ProfileRepositoryのモック実装。
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*model.Profile), args.Bool(1), args.Error(2)
}

func (m *MockProfileRepository) Update(ctx context.Context, id string, patch model.ProfilePatch) (*model.Profile, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func TestService_Get_NotFound(t *testing.T) {
	repo := new(MockProfileRepository)
	repo.On("FindByID", mock.Anything, "nonexistent").Return(nil, nil).Once()

	_, err := NewService(repo).Get(context.Background(), "nonexistent")

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, model.ErrCodeProfileNotFound, apiErr.Code)
}

func TestService_Get_Found(t *testing.T) {
	repo := new(MockProfileRepository)
	repo.On("FindByID", mock.Anything, "u1").Return(&model.Profile{ID: "u1", Email: "u1@example.com"}, nil).Once()

	p, err := NewService(repo).Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", p.Email)
}

func TestService_Get_PropagatesError(t *testing.T) {
	repo := new(MockProfileRepository)
	dbErr := errors.New("db down")
	repo.On("FindByID", mock.Anything, "u1").Return(nil, dbErr).Once()

	_, err := NewService(repo).Get(context.Background(), "u1")

	assert.ErrorIs(t, err, dbErr)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(MockProfileRepository)
	repo.On("Update", mock.Anything, "ghost", model.ProfilePatch{}).Return(nil, nil).Once()

	_, err := NewService(repo).Update(context.Background(), "ghost", model.ProfilePatch{})

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, model.ErrCodeProfileNotFound, apiErr.Code)
}

func TestService_Ensure_PassesThroughCreatedFlag(t *testing.T) {
	repo := new(MockProfileRepository)
	in := &model.Profile{ID: "u1", Email: "u1@example.com"}
	repo.On("Create", mock.Anything, in).Return(in, false, nil).Once()

	p, created, err := NewService(repo).Ensure(context.Background(), in)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "u1", p.ID)
	repo.AssertExpectations(t)
}
