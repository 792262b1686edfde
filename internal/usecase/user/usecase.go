package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-service/internal/domain/user"
	pkgerrors "user-service/pkg/errors"
	"user-service/pkg/logger"
)

// Repository defines the interface for user data access operations.
// Update and Delete return pkgerrors.ErrNotFound when no row matches.
type Repository interface {
	List(ctx context.Context) ([]domain.User, error)                // List every user
	GetByID(ctx context.Context, id int64) (*domain.User, error)    // Retrieve user by ID
	Create(ctx context.Context, u *domain.User) (int64, error)      // Insert and return the new ID
	Update(ctx context.Context, id int64, patch domain.Patch) error // Write only the supplied columns
	Delete(ctx context.Context, id int64) error                     // Hard delete by ID
}

// Usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Usecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log, validate: validator.New()}
}

// ListUsers returns every stored user.
func (uc *Usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	l := logger.WithContext(ctx, uc.log)
	l.Info("listing users")

	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		l.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = toDTO(du)
	}
	return &ListUsersResponse{Users: users}, nil
}

// GetUser retrieves a user by ID.
func (uc *Usecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	l := logger.WithContext(ctx, uc.log)

	if in.ID <= 0 {
		l.Warn("get user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, pkgerrors.ErrInvalidID
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			l.Info("user not found", zap.Int64("id", in.ID))
		} else {
			l.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}
	return &GetUserResponse{User: toDTO(*u)}, nil
}

// CreateUser creates a new user once both fields are present. Email
// uniqueness is left to the storage constraint.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	l := logger.WithContext(ctx, uc.log)
	l.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		l.Warn("validate failed", zap.Error(err))
		return nil, pkgerrors.ErrMissingFields
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		if pkgerrors.IsAlreadyExists(err) {
			l.Warn("email already in use", zap.String("email", in.Email), zap.Error(err))
		} else {
			l.Error("failed to create user", zap.Error(err))
		}
		return nil, err
	}
	return &CreateUserResponse{ID: id, Message: MsgUserCreated}, nil
}

// UpdateUser applies a partial update. Fields left nil keep their stored value.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	l := logger.WithContext(ctx, uc.log)
	l.Info("updating user", zap.Int64("id", in.ID), zap.Stringp("name", in.Name), zap.Stringp("email", in.Email))

	if in.ID <= 0 {
		l.Warn("update user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, pkgerrors.ErrInvalidID
	}

	patch := domain.Patch{Name: in.Name, Email: in.Email}
	if patch.IsEmpty() {
		l.Warn("update user validation failed", zap.Int64("id", in.ID), zap.String("reason", "no valid fields"))
		return nil, pkgerrors.ErrNoValidFields
	}

	if err := uc.repo.Update(ctx, in.ID, patch); err != nil {
		switch {
		case pkgerrors.IsNotFound(err):
			l.Info("user not found", zap.Int64("id", in.ID))
		case pkgerrors.IsAlreadyExists(err):
			l.Warn("email already in use", zap.Int64("id", in.ID), zap.Stringp("email", in.Email), zap.Error(err))
		default:
			l.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}
	return &UpdateUserResponse{Message: MsgUserUpdated}, nil
}

// DeleteUser hard-deletes a user.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	l := logger.WithContext(ctx, uc.log)
	l.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		l.Warn("delete user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, pkgerrors.ErrInvalidID
	}

	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		if pkgerrors.IsNotFound(err) {
			l.Info("user not found", zap.Int64("id", in.ID))
		} else {
			l.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}
	return &DeleteUserResponse{Message: MsgUserDeleted}, nil
}

func toDTO(u domain.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email}
}
