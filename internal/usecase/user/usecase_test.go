package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	domain "user-service/internal/domain/user"
	pkgerrors "user-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, patch domain.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupTestUsecase(t *testing.T) (*Usecase, *MockRepository) {
	mockRepo := new(MockRepository)
	uc := New(mockRepo, zaptest.NewLogger(t))
	return uc, mockRepo
}

func strPtr(s string) *string { return &s }

// ==================== CREATE USER TESTS ====================

func TestCreateUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Alice" && u.Email == "a@x.com" && u.ID == 0
	})).Return(int64(7), nil)

	resp, err := uc.CreateUser(ctx, CreateUserRequest{Name: "Alice", Email: "a@x.com"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "User created successfully", resp.Message)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  CreateUserRequest
	}{
		{"missing name", CreateUserRequest{Email: "a@x.com"}},
		{"missing email", CreateUserRequest{Name: "Alice"}},
		{"both missing", CreateUserRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, mockRepo := setupTestUsecase(t)

			resp, err := uc.CreateUser(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, pkgerrors.ErrMissingFields)
			assert.EqualError(t, err, "Missing required fields")
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUser_StorageError(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	dup := pkgerrors.NewAlreadyExistsError("user", "email", errors.New(`duplicate key value violates unique constraint "users_email_key"`))
	mockRepo.On("Create", ctx, mock.Anything).Return(int64(0), dup)

	resp, err := uc.CreateUser(ctx, CreateUserRequest{Name: "Alice", Email: "a@x.com"})

	assert.Nil(t, resp)
	assert.Same(t, dup, err)
	assert.Equal(t, 500, pkgerrors.StatusOf(err))
}

func TestCreateUser_DuplicateEmailLoggedAsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mockRepo := new(MockRepository)
	uc := New(mockRepo, zap.New(core))
	ctx := context.Background()

	dup := pkgerrors.NewAlreadyExistsError("user", "email", errors.New("UNIQUE constraint failed: users.email"))
	mockRepo.On("Create", ctx, mock.Anything).Return(int64(0), dup)

	_, err := uc.CreateUser(ctx, CreateUserRequest{Name: "Alice", Email: "a@x.com"})
	require.Error(t, err)

	entries := logs.FilterMessage("email already in use").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

// ==================== GET USER TESTS ====================

func TestGetUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Name: "Alice", Email: "a@x.com"}, nil)

	resp, err := uc.GetUser(ctx, GetUserRequest{ID: 1})

	require.NoError(t, err)
	assert.Equal(t, User{ID: 1, Name: "Alice", Email: "a@x.com"}, resp.User)
}

func TestGetUser_NotFound(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(999999)).Return(nil, pkgerrors.ErrNotFound)

	resp, err := uc.GetUser(ctx, GetUserRequest{ID: 999999})

	assert.Nil(t, resp)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetUser_InvalidID(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)

	for _, id := range []int64{0, -1} {
		resp, err := uc.GetUser(context.Background(), GetUserRequest{ID: id})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidID)
	}
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

// ==================== LIST USERS TESTS ====================

func TestListUsers_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]domain.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com"},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com"},
	}, nil)

	resp, err := uc.ListUsers(ctx)

	require.NoError(t, err)
	assert.Equal(t, []User{
		{ID: 1, Name: "John Doe", Email: "john@example.com"},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com"},
	}, resp.Users)
}

func TestListUsers_Empty(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]domain.User{}, nil)

	resp, err := uc.ListUsers(ctx)

	require.NoError(t, err)
	assert.NotNil(t, resp.Users)
	assert.Empty(t, resp.Users)
}

func TestListUsers_StorageError(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(nil, pkgerrors.NewInternalError("failed to list users", errors.New("connection refused")))

	resp, err := uc.ListUsers(ctx)

	assert.Nil(t, resp)
	assert.EqualError(t, err, "connection refused")
}

// ==================== UPDATE USER TESTS ====================

func TestUpdateUser_Success(t *testing.T) {
	tests := []struct {
		name  string
		req   UpdateUserRequest
		patch domain.Patch
	}{
		{
			name:  "name only",
			req:   UpdateUserRequest{ID: 1, Name: strPtr("Bob")},
			patch: domain.Patch{Name: strPtr("Bob")},
		},
		{
			name:  "email only",
			req:   UpdateUserRequest{ID: 1, Email: strPtr("b@x.com")},
			patch: domain.Patch{Email: strPtr("b@x.com")},
		},
		{
			name:  "both fields",
			req:   UpdateUserRequest{ID: 1, Name: strPtr("Bob"), Email: strPtr("b@x.com")},
			patch: domain.Patch{Name: strPtr("Bob"), Email: strPtr("b@x.com")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, mockRepo := setupTestUsecase(t)
			ctx := context.Background()

			mockRepo.On("Update", ctx, int64(1), tt.patch).Return(nil)

			resp, err := uc.UpdateUser(ctx, tt.req)

			require.NoError(t, err)
			assert.Equal(t, "User updated successfully", resp.Message)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateUser_NoValidFields(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)

	resp, err := uc.UpdateUser(context.Background(), UpdateUserRequest{ID: 1})

	assert.Nil(t, resp)
	assert.EqualError(t, err, "No valid fields to update")
	assert.Equal(t, 400, pkgerrors.StatusOf(err))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_NotFound(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Update", ctx, int64(42), mock.Anything).Return(pkgerrors.ErrNotFound)

	resp, err := uc.UpdateUser(ctx, UpdateUserRequest{ID: 42, Name: strPtr("Bob")})

	assert.Nil(t, resp)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestUpdateUser_InvalidID(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)

	resp, err := uc.UpdateUser(context.Background(), UpdateUserRequest{ID: 0, Name: strPtr("Bob")})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidID)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_DuplicateEmailLoggedAsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mockRepo := new(MockRepository)
	uc := New(mockRepo, zap.New(core))
	ctx := context.Background()

	dup := pkgerrors.NewAlreadyExistsError("user", "email", errors.New("UNIQUE constraint failed: users.email"))
	mockRepo.On("Update", ctx, int64(2), mock.Anything).Return(dup)

	_, err := uc.UpdateUser(ctx, UpdateUserRequest{ID: 2, Email: strPtr("a@x.com")})
	assert.Same(t, dup, err)

	require.Equal(t, 1, logs.FilterMessage("email already in use").Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

// ==================== DELETE USER TESTS ====================

func TestDeleteUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(1)).Return(nil)

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: 1})

	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully", resp.Message)
	mockRepo.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(5)).Return(pkgerrors.ErrNotFound)

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: 5})

	assert.Nil(t, resp)
	assert.EqualError(t, err, "User not found")
}

func TestDeleteUser_InvalidID(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)

	resp, err := uc.DeleteUser(context.Background(), DeleteUserRequest{ID: -3})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidID)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
