package user

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodbox-be/internal/logger"
)

type Repository interface {
	GetByPhone(ctx context.Context, phone string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, phone string) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByPhone(ctx context.Context, phone string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "userRepository"),
		zap.String("method", "GetByPhone"),
	)

	row := r.db.QueryRowContext(ctx, `
		SELECT id, phone, role, created_at
		FROM users
		WHERE phone = $1`, phone)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to query user by phone", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "userRepository"),
		zap.String("method", "GetByID"),
	)

	row := r.db.QueryRowContext(ctx, `
		SELECT id, phone, role, created_at
		FROM users
		WHERE id = $1`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to query user by id", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *repository) Create(ctx context.Context, phone string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "userRepository"),
		zap.String("method", "Create"),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, phone, role)
		VALUES ($1, $2, $3)
		RETURNING id, phone, role, created_at`,
		uuid.NewString(), phone, RoleCustomer)

	u, err := scanUser(row)
	if err != nil {
		log.Error("failed to insert user", zap.Error(err))
		return nil, err
	}
	log.Info("user created", zap.String("userID", u.ID))
	return u, nil
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Phone, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
