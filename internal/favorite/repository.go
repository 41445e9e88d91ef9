package favorite

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"foodbox-be/internal/logger"
)

type Repository interface {
	// Toggle flips the favorite mark for (customer, business) and
	// reports the resulting state: true when the row now exists.
	Toggle(ctx context.Context, customerID, businessID string) (bool, error)
	ListBusinessIDs(ctx context.Context, customerID string) ([]string, error)
	IsFavorite(ctx context.Context, customerID, businessID string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Toggle(ctx context.Context, customerID, businessID string) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "favoriteRepository"),
		zap.String("method", "Toggle"),
		zap.String("business_id", businessID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE customer_id = $1 AND business_id = $2
	`, customerID, businessID)
	if err != nil {
		log.Error("failed to delete favorite", zap.Error(err))
		return false, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	favorited := false
	if deleted == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO favorites (customer_id, business_id, created_at)
			VALUES ($1, $2, NOW())
		`, customerID, businessID)
		if err != nil {
			log.Error("failed to insert favorite", zap.Error(err))
			return false, err
		}
		favorited = true
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	log.Info("favorite toggled", zap.Bool("favorited", favorited))
	return favorited, nil
}

func (r *repository) ListBusinessIDs(ctx context.Context, customerID string) ([]string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "favoriteRepository"),
		zap.String("method", "ListBusinessIDs"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT business_id
		FROM favorites
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		log.Error("failed to query favorites", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repository) IsFavorite(ctx context.Context, customerID, businessID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM favorites
			WHERE customer_id = $1 AND business_id = $2
		)
	`, customerID, businessID).Scan(&exists)
	return exists, err
}
