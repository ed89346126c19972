package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/infra/storage"
	"github.com/m04kA/EventsBookingService/pkg/dbmetrics"
	"github.com/m04kA/EventsBookingService/pkg/psqlbuilder"
)

const (
	tableName          = "users"
	usernameConstraint = "users_username_key"
)

var columns = []string{"id", "username", "email", "role", "password_hash", "created_at", "last_login"}

// UserRow строка таблицы users
type UserRow struct {
	ID           int64
	Username     string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

func (r *UserRow) scanTargets() []interface{} {
	return []interface{}{&r.ID, &r.Username, &r.Email, &r.Role, &r.PasswordHash, &r.CreatedAt, &r.LastLogin}
}

func (r *UserRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		Role:         domain.Role(r.Role),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		LastLogin:    r.LastLogin,
	}
}

// Repository репозиторий пользователей админки
type Repository struct {
	db           DBExecutor
	queryTimeout time.Duration
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor, queryTimeout time.Duration) *Repository {
	return &Repository{db: db, queryTimeout: queryTimeout}
}

// GetByUsername получает пользователя по логину
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "user.GetByUsername", username, squirrel.Eq{"username": username})
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "user.GetByID", strconv.FormatInt(id, 10), squirrel.Eq{"id": id})
}

// Create создает пользователя
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("username", "email", "role", "password_hash").
		Values(u.Username, u.Email, string(u.Role), u.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *u
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if storage.IsUniqueViolation(err, usernameConstraint) {
			return nil, fmt.Errorf("%w: Create - username=%s", ErrUsernameTaken, u.Username)
		}
		return nil, storage.NewError(ErrExecQuery, "user.Create", u.Username, err)
	}

	return &created, nil
}

// UpdateLastLogin фиксирует время последнего входа
func (r *Repository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("last_login", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return storage.NewError(ErrExecQuery, "user.UpdateLastLogin", strconv.FormatInt(id, 10), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storage.NewError(ErrExecQuery, "user.UpdateLastLogin", strconv.FormatInt(id, 10), err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Count возвращает количество пользователей
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, storage.NewError(ErrScanRow, "user.Count", "", err)
	}

	return count, nil
}

func (r *Repository) getOne(ctx context.Context, op, key string, where squirrel.Eq) (*domain.User, error) {
	ctx, cancel := storage.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var row UserRow
	err = executor.QueryRowContext(ctx, query, args...).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storage.NewError(ErrScanRow, op, key, err)
	}

	return row.toDomain(), nil
}
