package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-service/internal/domain/user"
	pkgerrors "user-service/pkg/errors"
	"user-service/pkg/logger"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// UserRepoPG implements the user repository on top of GORM. It targets
// PostgreSQL in production; the statements are portable to SQLite.
type UserRepoPG struct {
	db  *gorm.DB    // GORM connection pool
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255;not null;unique"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() user.User {
	return user.User{ID: m.ID, Name: m.Name, Email: m.Email}
}

// EnsureSchema creates the users table when it does not exist yet. An existing
// table is left exactly as it is.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	m := db.WithContext(ctx).Migrator()
	if m.HasTable(&UserSchema{}) {
		return nil
	}
	if err := m.CreateTable(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// List returns every user in storage order.
func (r *UserRepoPG) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to list users", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}
	return users, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithContext(ctx, r.log).Debug("user not found", zap.Int64("id", id))
			return nil, pkgerrors.ErrNotFound
		}
		logger.WithContext(ctx, r.log).Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, pkgerrors.NewInternalError("failed to get user", err)
	}

	u := model.toDomain()
	return &u, nil
}

// Create inserts a new user and returns the storage-assigned ID.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return 0, r.writeError(ctx, "create", err, zap.String("email", u.Email))
	}

	logger.WithContext(ctx, r.log).Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// Update writes only the columns present in patch. It returns ErrNotFound
// when no row has the given ID.
func (r *UserRepoPG) Update(ctx context.Context, id int64, patch user.Patch) error {
	if patch.IsEmpty() {
		return pkgerrors.ErrNoValidFields
	}

	res := r.db.WithContext(ctx).
		Model(&UserSchema{}).
		Where("id = ?", id).
		Updates(patch.Columns())
	if res.Error != nil {
		return r.writeError(ctx, "update", res.Error, zap.Int64("id", id))
	}
	if res.RowsAffected == 0 {
		logger.WithContext(ctx, r.log).Debug("update matched no rows", zap.Int64("id", id))
		return pkgerrors.ErrNotFound
	}

	logger.WithContext(ctx, r.log).Info("user updated in db", zap.Int64("id", id))
	return nil
}

// Delete hard-deletes a user. It returns ErrNotFound when no row has the given ID.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserSchema{})
	if res.Error != nil {
		logger.WithContext(ctx, r.log).Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return pkgerrors.NewInternalError("failed to delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		logger.WithContext(ctx, r.log).Debug("delete matched no rows", zap.Int64("id", id))
		return pkgerrors.ErrNotFound
	}

	logger.WithContext(ctx, r.log).Info("user deleted in db", zap.Int64("id", id))
	return nil
}

// writeError classifies an INSERT/UPDATE failure. The driver error is kept
// intact so its text reaches the caller unchanged.
func (r *UserRepoPG) writeError(ctx context.Context, op string, err error, fields ...zap.Field) error {
	l := logger.WithContext(ctx, r.log)
	if isUniqueViolation(err) {
		l.Warn("email already exists", append(fields, zap.String("op", op), zap.Error(err))...)
		return pkgerrors.NewAlreadyExistsError("user", "email", err)
	}
	l.Error("failed to "+op+" user in db", append(fields, zap.Error(err))...)
	return pkgerrors.NewInternalError("failed to "+op+" user", err)
}

// isUniqueViolation recognises unique-constraint failures from PostgreSQL
// (SQLSTATE 23505) and SQLite ("UNIQUE constraint failed").
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
